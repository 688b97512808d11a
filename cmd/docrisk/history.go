package main

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/docrisk/docrisk/internal/config"
	"github.com/docrisk/docrisk/internal/database"
	"github.com/docrisk/docrisk/internal/report"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [document]",
		Short: "Show past analysis results",
		Long: `History lists analyses recorded in the local history database.

Without arguments it prints a summary table of past runs, newest first.
With a document name it prints the full report of that document's most
recent analysis.

Examples:
  # List the last 20 analyses
  docrisk history

  # List everything
  docrisk history --limit 0

  # Show the latest full report for a document
  docrisk history contract.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", 20,
		"Maximum number of entries to list (0 for all)")
	cmd.Flags().BoolP("json", "j", false,
		"Output the full report as JSON (only with a document argument)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	// History is read-only: never create the database here, so a fresh
	// install gets a clear message instead of an empty file.
	db, err := database.Open(config.XDGDataDir(), database.Options{
		CreateIfNotExists: false,
		EnableWAL:         true,
	})
	if err != nil {
		return fmt.Errorf("no analysis history found (run 'docrisk analyze' first): %w", err)
	}
	defer func() { _ = db.Close() }()

	ctx := cmd.Context()
	if len(args) == 1 {
		return showLatestResult(ctx, cmd, db, args[0], jsonOutput)
	}
	return listHistory(ctx, cmd, db, limit)
}

// listHistory prints a summary table of past analyses.
func listHistory(ctx context.Context, cmd *cobra.Command, db *database.HistoryDB, limit int) error {
	records, err := db.ListResults(ctx, limit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No analyses recorded yet.")
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ANALYZED\tDOCUMENT\tRISK\tTIER\tFINGERPRINT")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%.1f\t%s\t%s\n",
			r.AnalyzedAt.Local().Format("2006-01-02 15:04"),
			r.Document,
			r.OverallRisk,
			r.Tier,
			shortFingerprint(r.Fingerprint),
		)
	}
	return tw.Flush()
}

// showLatestResult prints the full stored report for one document.
func showLatestResult(ctx context.Context, cmd *cobra.Command, db *database.HistoryDB, document string, jsonOutput bool) error {
	result, err := db.LatestResult(ctx, document)
	if errors.Is(err, database.ErrNotFound) {
		return fmt.Errorf("no recorded analysis for %s", document)
	}
	if err != nil {
		return err
	}

	var writer report.Writer
	if jsonOutput {
		writer = report.NewJSONWriter(cmd.OutOrStdout(), report.WithPrettyPrint())
	} else {
		writer = report.NewSimpleWriter(cmd.OutOrStdout())
	}
	_, err = writer.Write(result)
	return err
}

// shortFingerprint abbreviates a content fingerprint for table display.
func shortFingerprint(fp string) string {
	if len(fp) > 12 {
		return fp[:12]
	}
	return fp
}
