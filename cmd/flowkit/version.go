package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quotedeck/flowkit"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of flowkit",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("flowkit version %s\n", flowkit.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
