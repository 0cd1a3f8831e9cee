package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

var versionCommand = &cobra.Command{
	Use:   "version",
	Short: "Print the matcher version",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "matcher", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCommand)
}
