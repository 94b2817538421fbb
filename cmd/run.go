// File: cmd/run.go
package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"codecat/pkg/config"
	"codecat/pkg/markdown"
	"codecat/pkg/scan"
	"codecat/pkg/writer"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var runCmd = &cobra.Command{
	Use:   "run [project-path]",
	Short: "Scan a project and aggregate its files into one Markdown document",
	Long: `Scan a project directory, read every qualifying text file, and compile
the results into a single Markdown document. Binary, oversized, and
unreadable files are listed in a skipped-files summary instead of
aborting the run.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
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

	if !flagSilent {
		printSummary(cmd.OutOrStdout(), result)
	}

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	if dryRun {
		fmt.Fprintln(cmd.OutOrStdout(), "--dry-run enabled, no output file written")
		return nil
	}

	doc := markdown.Generate(result, markdown.Options{
		Header: cfg.GenerateHeader,
		Tree:   cfg.GenerateTree,
	})

	outputPath := cfg.OutputPath(root)
	if err := writer.Write(outputPath, []byte(doc), logger); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if !flagSilent {
		fmt.Fprintf(cmd.OutOrStdout(), "Aggregated %d files into %s\n",
			result.Stats.Included, outputPath)
	}
	logger.Info("Aggregation completed",
		zap.String("outputFile", outputPath),
		zap.Int("includedFiles", result.Stats.Included))
	return nil
}

// resolveRunConfig resolves the project root and merges configuration
// from defaults, the config file, and command-line flags.
func resolveRunConfig(cmd *cobra.Command, args []string) (string, *config.Config, error) {
	projectPath := "."
	if len(args) == 1 {
		projectPath = args[0]
	}
	root, err := filepath.Abs(projectPath)
	if err != nil {
		return "", nil, fmt.Errorf("failed to resolve project path: %w", err)
	}

	cfg, err := config.Load(root, flagConfigPath)
	if err != nil {
		return "", nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.OutputFile, _ = flags.GetString("output")
	}
	if flags.Changed("include") {
		cfg.IncludePatterns, _ = flags.GetStringArray("include")
	}
	if flags.Changed("exclude") {
		cfg.ExcludePatterns, _ = flags.GetStringArray("exclude")
	}
	if flags.Changed("max-file-size") {
		cfg.MaxFileSizeKB, _ = flags.GetInt("max-file-size")
	}
	if flags.Changed("max-workers") {
		cfg.MaxWorkers, _ = flags.GetInt("max-workers")
	}
	if flags.Changed("follow-symlinks") {
		cfg.FollowSymlinks, _ = flags.GetBool("follow-symlinks")
	}
	if flags.Changed("ignore-case") {
		ignoreCase, _ := flags.GetBool("ignore-case")
		cfg.CaseSensitive = !ignoreCase
	}
	if flags.Changed("fail-empty") {
		cfg.FailIfEmpty, _ = flags.GetBool("fail-empty")
	}
	if noHeader, _ := flags.GetBool("no-header"); noHeader {
		cfg.GenerateHeader = false
	}
	if noTree, _ := flags.GetBool("no-tree"); noTree {
		cfg.GenerateTree = false
	}

	if err := cfg.Validate(); err != nil {
		return "", nil, err
	}
	return root, cfg, nil
}

// checkCandidates enforces the fail_if_empty policy: a scan that passed
// zero files through include/exclude filtering is fatal only when
// configured to be.
func checkCandidates(cfg *config.Config, result *scan.Result) error {
	candidates := result.Stats.Total() - result.Stats.Excluded
	if candidates > 0 {
		return nil
	}
	if cfg.FailIfEmpty {
		return fmt.Errorf("no files to aggregate under %s", result.Root)
	}
	logger.Warn("No files to aggregate", zap.String("root", result.Root))
	return nil
}

func init() {
	runCmd.Flags().StringP("output", "o", "",
		"Name for the output Markdown file (overrides config)")
	runCmd.Flags().StringArrayP("include", "i", nil,
		"Glob pattern for files to include; repeat for multiple patterns")
	runCmd.Flags().StringArrayP("exclude", "e", nil,
		"Glob pattern to exclude files or directories; repeat for multiple patterns")
	runCmd.Flags().Int("max-file-size", 0,
		"Maximum size of files to process, in KB")
	runCmd.Flags().Int("max-workers", 0,
		"Number of parallel readers (0 = available parallelism)")
	runCmd.Flags().Bool("follow-symlinks", false,
		"Follow symlinks that resolve to regular files")
	runCmd.Flags().Bool("ignore-case", false,
		"Match include/exclude patterns case-insensitively")
	runCmd.Flags().Bool("fail-empty", false,
		"Exit with an error when no files qualify for aggregation")
	runCmd.Flags().Bool("dry-run", false,
		"Run the full pipeline but do not write the output file")
	runCmd.Flags().Bool("no-header", false,
		"Omit the document metadata header")
	runCmd.Flags().Bool("no-tree", false,
		"Omit the project tree section")

	RootCmd.AddCommand(runCmd)
}
