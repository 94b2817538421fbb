package cmd

import (
	"codecat/pkg/logging"
	"codecat/pkg/version"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// logger is the application logger shared by all commands. Execute
// installs it; --verbose swaps in a development logger.
var logger = zap.NewNop()

var (
	flagConfigPath string
	flagVerbose    bool
	flagSilent     bool
)

// RootCmd is the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "codecat",
	Short: "Codecat aggregates source code into a single Markdown file",
	Long: `Codecat scans a project directory, filters files by include/exclude
glob rules, and aggregates all readable text files into one Markdown
document with fenced, language-tagged code blocks.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A .env in the working directory may carry CODECAT_* settings;
		// its absence is not an error.
		if err := godotenv.Load(); err == nil {
			logger.Debug("Loaded environment from .env")
		}

		if flagVerbose {
			verboseLogger, err := logging.Setup(true, "codecat", version.Get().Version)
			if err != nil {
				return err
			}
			logger = verboseLogger
		}
		return nil
	},
}

// Execute adds all child commands to the root command and runs it with
// the provided logger.
func Execute(appLogger *zap.Logger) error {
	if appLogger != nil {
		logger = appLogger
	}
	return RootCmd.Execute()
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&flagConfigPath, "config", "c", "",
		"Path to a custom config file (default: .codecat.yaml in the project path)")
	RootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false,
		"Enable detailed, step-by-step log output")
	RootCmd.PersistentFlags().BoolVarP(&flagSilent, "silent", "s", false,
		"Suppress all informational output")
}
