package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quotedeck/flowkit/internal/presentation/graph"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <flow-file>",
	Short: "Export the flow as a Mermaid diagram",
	Long:  `Reads a flow document and outputs a Mermaid flowchart (graph TD) representing the intake logic.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		flow, err := loadFlowFile(args[0])
		if err != nil {
			fmt.Printf("Error loading flow: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(graph.GenerateMermaid(flow, nil))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
