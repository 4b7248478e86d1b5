package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cheerioskun/prfilter/internal/filter"
	"github.com/cheerioskun/prfilter/internal/trait"
	"github.com/cheerioskun/prfilter/internal/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "prfilter",
	Short: "Include discovered pull requests by the files they change",
	Long: `prfilter decides which open pull requests are worth building by matching
the paths of their changed files against an inclusion and an exclusion
regular expression. Matching is case-insensitive and covers the whole path.

A pull request is built when at least one changed file (or, for renames,
its previous path) matches the inclusion pattern and not the exclusion
pattern.

Configuration is read from flags, PRFILTER_* environment variables and
.prfilter.yaml in the working directory.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

// Execute adds all child commands to the root command and runs it
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ./.prfilter.yaml)")
	flags.String("inclusion", filter.MatchAll, "regex a changed file path must fully match")
	flags.String("exclusion", "", "regex excluding changed file paths (empty excludes nothing)")
	flags.BoolP("verbose", "v", false, "enable debug logging")
	flags.String("log-file", "", "write logs to this file instead of stderr")

	// Bind flags to viper
	viper.BindPFlag("inclusion", flags.Lookup("inclusion"))
	viper.BindPFlag("exclusion", flags.Lookup("exclusion"))
	viper.BindPFlag("verbose", flags.Lookup("verbose"))
	viper.BindPFlag("log-file", flags.Lookup("log-file"))
}

// initConfig reads in config file and ENV variables if set
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(".prfilter")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("PRFILTER")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()
	viper.BindEnv("github.token", "PRFILTER_GITHUB_TOKEN", "GITHUB_TOKEN")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			utils.Warning("failed to read config file: %v", err)
		}
		return
	}
	utils.Debug("using config file %s", viper.ConfigFileUsed())
}

func setupLogging(cmd *cobra.Command, args []string) error {
	if logFile := viper.GetString("log-file"); logFile != "" {
		l, err := utils.NewLogger(logFile)
		if err != nil {
			return err
		}
		utils.SetDefault(l)
	}
	utils.GetLogger().SetVerbose(viper.GetBool("verbose"))
	return nil
}

// loadTraitConfig returns the patterns from flags, environment and config file
func loadTraitConfig() trait.Config {
	return trait.Config{
		Inclusion: viper.GetString("inclusion"),
		Exclusion: viper.GetString("exclusion"),
	}
}

// buildTrait validates the configured patterns, logs warnings and compiles them.
// Validation errors are blocking.
func buildTrait(cfg trait.Config) (*trait.Trait, error) {
	results := trait.CheckConfig(cfg)
	for _, field := range []string{"inclusion", "exclusion"} {
		switch v := results[field]; v.Kind {
		case filter.KindWarning:
			utils.Warning("%s: %s", field, v.Message)
		case filter.KindError:
			return nil, fmt.Errorf("invalid %s pattern: %s", field, v.Message)
		}
	}

	t, err := trait.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid trait configuration: %w", err)
	}
	return t, nil
}
