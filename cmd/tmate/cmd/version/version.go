package version

import (
	"fmt"

	"github.com/spf13/cobra"
)

var version = "v0.1.0"

// Cmd represents the version command
var Cmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of tmate",
	Long:  `All software has versions. This is tmate's.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		printVersion(cmd)
		return nil
	},
}

func printVersion(cmd *cobra.Command) {
	fmt.Fprintln(cmd.OutOrStdout(), version)
}
