// File: cmd/generate_config.go
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"codecat/pkg/config"

	"github.com/spf13/cobra"
)

var generateConfigCmd = &cobra.Command{
	Use:   "generate-config",
	Short: "Generate a documented default configuration file",
	Long: `Write a default .codecat.yaml into the chosen directory. The file
documents every setting; edit it to tailor include/exclude patterns,
size limits, and language hints for a project.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		outputDir, err := cmd.Flags().GetString("output-dir")
		if err != nil {
			return fmt.Errorf("error reading flags: %w", err)
		}
		fileName, _ := cmd.Flags().GetString("config-file-name")
		force, _ := cmd.Flags().GetBool("force")

		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}

		path := filepath.Join(outputDir, fileName)
		if err := config.WriteDefault(path, force); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Generated config file: %s\n", path)
		return nil
	},
}

func init() {
	generateConfigCmd.Flags().StringP("output-dir", "o", ".",
		"Directory to generate the config file in")
	generateConfigCmd.Flags().String("config-file-name", config.DefaultConfigFilename,
		"Name of the generated config file")
	generateConfigCmd.Flags().Bool("force", false,
		"Overwrite an existing config file")

	RootCmd.AddCommand(generateConfigCmd)
}
