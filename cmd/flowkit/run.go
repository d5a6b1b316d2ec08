package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quotedeck/flowkit"
	"github.com/quotedeck/flowkit/internal/presentation/tui"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <flow-file>",
	Short: "Run an interactive intake session",
	Long:  `Walks a flow document interactively on the terminal and prints the resulting quote draft.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		flow, err := loadFlowFile(args[0])
		if err != nil {
			fmt.Printf("Error loading flow: %v\n", err)
			os.Exit(1)
		}
		headless, _ := cmd.Flags().GetBool("headless")

		engine := flowkit.New(flow)
		runner := &flowkit.Runner{
			Input:  os.Stdin,
			Output: os.Stdout,
		}
		if !headless && tui.Interactive() {
			runner.Renderer = tui.NewRenderer()
		}

		if _, err := runner.Run(context.Background(), engine); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Bool("headless", false, "Disable terminal rendering (plain IO)")
}
