package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quotedeck/flowkit/pkg/domain"
	"github.com/quotedeck/flowkit/pkg/schema"
)

var rootCmd = &cobra.Command{
	Use:   "flowkit",
	Short: "Flowkit builds and runs conversational quote-intake flows",
	Long: `Flowkit works with flow documents: directed graphs of question, action,
and end nodes that walk a customer through a quote questionnaire.
Documents are JSON (or YAML) files; see the validate, graph, run, and
serve subcommands.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
}

// loadFlowFile reads a flow document, decoding YAML for .yaml/.yml paths and
// JSON otherwise.
func loadFlowFile(path string) (*domain.Flow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		return schema.DecodeYAML(data)
	}
	return schema.Decode(data)
}
