// File: cmd/stats.go
package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"codecat/pkg/scan"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats [project-path]",
	Short: "Scan a project and display file and line count statistics",
	Long: `Run the same scanning, classification, and reading pipeline as 'run',
but produce only a statistics summary: per-language file and line
counts plus the per-status breakdown. No document is written, so the
report is a faithful prediction of what a full run would contain.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	root, cfg, err := resolveRunConfig(cmd, args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := scan.Run(ctx, cfg.ScanConfig(root), logger)
	if err != nil {
		return err
	}

	if err := checkCandidates(cfg, result); err != nil {
		return err
	}

	printLanguageTable(cmd.OutOrStdout(), result.Stats)
	printSummary(cmd.OutOrStdout(), result)
	return nil
}

func init() {
	statsCmd.Flags().StringArrayP("include", "i", nil,
		"Glob pattern for files to include; repeat for multiple patterns")
	statsCmd.Flags().StringArrayP("exclude", "e", nil,
		"Glob pattern to exclude files or directories; repeat for multiple patterns")
	statsCmd.Flags().Int("max-file-size", 0,
		"Maximum size of files to process, in KB")
	statsCmd.Flags().Int("max-workers", 0,
		"Number of parallel readers (0 = available parallelism)")
	statsCmd.Flags().Bool("follow-symlinks", false,
		"Follow symlinks that resolve to regular files")
	statsCmd.Flags().Bool("ignore-case", false,
		"Match include/exclude patterns case-insensitively")
	statsCmd.Flags().Bool("fail-empty", false,
		"Exit with an error when no files qualify for aggregation")

	RootCmd.AddCommand(statsCmd)
}
