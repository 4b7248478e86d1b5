package cmd

import (
	"fmt"
	"io"

	"github.com/cheerioskun/prfilter/internal/filter"
	"github.com/cheerioskun/prfilter/internal/trait"
	"github.com/spf13/cobra"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the inclusion and exclusion patterns",
	Long: `Check the configured patterns the way the configuration form does.

Errors (blank inclusion, invalid regex) make the command fail. Warnings
(match-all inclusion, match-all exclusion) are printed but do not.

Examples:
  prfilter validate --inclusion 'src/.*\.go'
  prfilter validate --inclusion '.*' --exclusion 'docs/.*'`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg := loadTraitConfig()
	results := trait.CheckConfig(cfg)

	printValidation(cmd.OutOrStdout(), "inclusion", cfg.Inclusion, results["inclusion"])
	printValidation(cmd.OutOrStdout(), "exclusion", cfg.Exclusion, results["exclusion"])

	if trait.Blocking(results) {
		return fmt.Errorf("configuration is invalid")
	}
	return nil
}

func printValidation(w io.Writer, field, value string, v filter.Validation) {
	if v.Message == "" {
		fmt.Fprintf(w, "%-9s %-7s %q\n", field, v.Kind, value)
		return
	}
	fmt.Fprintf(w, "%-9s %-7s %q: %s\n", field, v.Kind, value, v.Message)
}
