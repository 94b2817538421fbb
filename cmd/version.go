// File: cmd/version.go
package cmd

import (
	"fmt"

	"codecat/pkg/version"

	"github.com/spf13/cobra"
)

// versionCmd displays the current version of the codecat application.
// The --short flag allows users to retrieve a concise version string.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the version of codecat",
	Long:  `Display the current version information of the codecat CLI tool.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		short, err := cmd.Flags().GetBool("short")
		if err != nil {
			return fmt.Errorf("error reading flags: %w", err)
		}

		v := version.Get()

		if short {
			fmt.Fprintln(cmd.OutOrStdout(), v.Version)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), v.String())
		}

		return nil
	},
}

func init() {
	versionCmd.Flags().Bool("short", false, "Print the version number only")

	RootCmd.AddCommand(versionCmd)
}
