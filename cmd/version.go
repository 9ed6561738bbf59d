package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the chorogen version",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Printf("chorogen %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
