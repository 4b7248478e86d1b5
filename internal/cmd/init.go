package cmd

import (
	"fmt"

	"github.com/cheerioskun/prfilter/internal/export"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	outputConfig string
	forceInit    bool
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a validated trait configuration file",
	Long: `Validate the patterns given on the command line and save them as a
configuration file that later commands pick up automatically.

Examples:
  prfilter init --inclusion 'src/.*'
  prfilter init --inclusion '.*' --exclusion '(docs/.*|.*\.md)' --output ci/.prfilter.yaml
  prfilter init --inclusion 'charts/.*' --force`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)

	// Init-specific flags
	initCmd.Flags().StringVarP(&outputConfig, "output", "o", ".prfilter.yaml", "output configuration file")
	initCmd.Flags().BoolVar(&forceInit, "force", false, "overwrite an existing configuration file")
}

func runInit(cmd *cobra.Command, args []string) error {
	return writeConfig(cmd, afero.NewOsFs(), outputConfig, forceInit)
}

func writeConfig(cmd *cobra.Command, fs afero.Fs, path string, overwrite bool) error {
	cfg := loadTraitConfig()

	if _, err := buildTrait(cfg); err != nil {
		return err
	}

	svc := export.NewService(fs)
	err := svc.WriteConfig(cfg, export.WriteOptions{
		DestinationPath: path,
		Overwrite:       overwrite,
	})
	if err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Configuration saved to: %s\n", path)
	return nil
}
