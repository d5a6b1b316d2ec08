package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quotedeck/flowkit/pkg/domain"
)

var validateCmd = &cobra.Command{
	Use:   "validate <flow-file>",
	Short: "Check a flow document for structural issues",
	Long: `Validates a flow document: dangling node references, duplicate answer IDs,
action nodes without an exit, and questions that cannot reach an end node.
Warnings are reported but do not fail the command.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		flow, err := loadFlowFile(args[0])
		if err != nil {
			fmt.Printf("Error loading flow: %v\n", err)
			os.Exit(1)
		}

		issues := flow.Validate()
		for _, issue := range issues {
			fmt.Printf("%s: %s (node %s): %s\n", issue.Severity, issue.Kind, issue.NodeID, issue.Detail)
		}

		if blocking := domain.Blocking(issues); len(blocking) > 0 {
			fmt.Printf("Flow %s has %d blocking issue(s)\n", flow.ID, len(blocking))
			os.Exit(1)
		}
		fmt.Printf("Flow %s is valid (%d warning(s))\n", flow.ID, len(issues))
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
