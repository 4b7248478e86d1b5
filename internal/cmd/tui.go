package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cheerioskun/prfilter/internal/scanner"
	"github.com/cheerioskun/prfilter/internal/utils"
	"github.com/cheerioskun/prfilter/ui"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui [manifests]",
	Short: "Try patterns interactively against pull request manifests",
	Long: `Start an interactive pattern tester.

The left panel edits the inclusion and exclusion patterns and shows their
validation; the right panel lists every pull request with its live
decision and the file that matched.

Examples:
  prfilter tui ./prs
  prfilter tui ./prs --inclusion 'src/.*' --max-depth 2`,
	Args: cobra.ExactArgs(1),
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)

	tuiCmd.Flags().IntVar(&maxDepth, "max-depth", 10, "maximum directory depth to scan")
}

func runTUI(cmd *cobra.Command, args []string) error {
	absPath, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	manifestScanner := scanner.NewManifestScanner(afero.NewOsFs())
	manifestScanner.SetMaxDepth(maxDepth)

	req, err := manifestScanner.Scan(absPath, nil)
	if err != nil {
		return err
	}

	prs, err := req.PullRequests(context.Background())
	if err != nil {
		return err
	}
	utils.Debug("loaded %d pull requests from %s", len(prs), absPath)

	model := ui.NewAppModel(absPath, prs, loadTraitConfig())

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	cfg := model.Config()
	fmt.Fprintf(cmd.OutOrStdout(), "inclusion: %q\nexclusion: %q\n", cfg.Inclusion, cfg.Exclusion)
	return nil
}
