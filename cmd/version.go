package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Overridden via ldflags in release builds.
var version = "unknown"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the jd-mailer version",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("%s version: %s\n", app, version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
