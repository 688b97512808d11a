// Package main provides the entry point for the docrisk CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for docrisk.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docrisk",
		Short: "Multimodal document risk analyzer",
		Long: `docrisk analyzes documents for risk by fusing two evidence channels:
the text (risk vocabulary, high-risk clauses, monetary amounts) and the
rendered page images (signatures, stamps, layout irregularity).

Each analysis produces sub-scores, a fused overall score on a 0-100 scale,
a triage tier (low, medium, high) and a list of findings explaining the
verdict.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewAnalyzeCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
