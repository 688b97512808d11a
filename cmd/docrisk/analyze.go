package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/docrisk/docrisk/internal/config"
	"github.com/docrisk/docrisk/internal/database"
	"github.com/docrisk/docrisk/internal/log"
	"github.com/docrisk/docrisk/internal/model"
	"github.com/docrisk/docrisk/internal/pipeline"
	"github.com/docrisk/docrisk/internal/report"
)

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [document]...",
		Short: "Analyze documents for risk",
		Long: `Analyze scores one or more documents for risk.

A document is either a directory of rendered pages (page-001.png with an
optional page-001.txt text sidecar per page) or a plain text file whose
pages are separated by form feeds.

The analysis extracts textual evidence (risk vocabulary, high-risk clause
patterns, monetary amounts) and visual evidence (signature and stamp shaped
regions, layout consistency, image metadata), fuses them into an overall
0-100 risk score and assigns a triage tier.

Examples:
  # Analyze a page directory
  docrisk analyze ./contract-pages/

  # Analyze several documents concurrently
  docrisk analyze a.txt b.txt c.txt

  # Output JSON report to a file
  docrisk analyze --json -o report.json ./contract-pages/

  # Use a custom configuration file
  docrisk analyze -c myrules.yml contract.txt

Configuration file (.docrisk) example:
  vocabulary:
    liability: 8
    penalty: 8
  clause_patterns:
    - unlimited liability
  monetary_ceiling: 2000000
  fusion: {text: 0.6, visual: 0.4}`,
		Args: cobra.ArbitraryArgs,
		RunE: runAnalyzeCmd,
	}

	// Detection flags
	cmd.Flags().IntP("workers", "w", config.DefaultWorkers,
		"Number of concurrent per-page visual analysis workers")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .docrisk in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	// History flags
	cmd.Flags().Bool("no-save", false,
		"Do not record this analysis in the history database")

	return cmd
}

// runAnalyzeCmd executes the analyze command.
func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging with content masking
	logger := log.NewRedactLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runAnalyze(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.Workers, err = cmd.Flags().GetInt("workers")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load overrides from the config file.
	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently keep defaults when no file is found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		overrides, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		overrides.ApplyTo(cfg)
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	noSave, err := cmd.Flags().GetBool("no-save")
	if err != nil {
		return nil, err
	}
	cfg.SaveToDB = !noSave
	cfg.DBDir = config.XDGDataDir()

	cfg.Verbose = getVerboseFlag(cmd)

	// Positional arguments are the document paths.
	cfg.Targets = args

	return cfg, nil
}

// runAnalyze executes the analysis.
func runAnalyze(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting analysis",
		"documents", len(cfg.Targets),
		"workers", cfg.Workers,
		"saveToDB", cfg.SaveToDB,
	)

	// Open database connection if saving is enabled
	var db *database.HistoryDB
	if cfg.SaveToDB {
		var err error
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer func() { _ = db.Close() }()
		logger.Debug("history database opened", "dir", cfg.DBDir)
	}

	analyzer := pipeline.NewAnalyzer(cfg, logger)
	startTime := time.Now()

	// Serialize report output and database writes; analyses themselves run
	// concurrently.
	var mu sync.Mutex
	handleResult := func(result *model.AnalysisResult) {
		mu.Lock()
		defer mu.Unlock()

		if err := outputReport(cfg, result); err != nil {
			logger.Error("report failed", "document", result.DocumentName, "error", err)
		}
		if err := saveResult(ctx, db, result, logger); err != nil {
			logger.Error("failed to save result", "document", result.DocumentName, "error", err)
		}
	}

	bp := pipeline.NewBatchProcessor(analyzer,
		pipeline.WithBatchConcurrency(batchConcurrency(cfg)),
		pipeline.WithBatchLogger(logger),
		pipeline.WithResultCallback(handleResult),
	)

	results, err := bp.ProcessBatch(ctx, cfg.Targets)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Analyzed %d document(s) in %s\n",
		len(results), time.Since(startTime).Round(time.Millisecond))
	return nil
}

// batchConcurrency derives the document-level concurrency from the config.
// A single document always runs alone.
func batchConcurrency(cfg *config.Config) int {
	if len(cfg.Targets) <= 1 {
		return 1
	}
	return cfg.Workers
}

// outputReport outputs the analysis result in the requested format.
func outputReport(cfg *config.Config, result *model.AnalysisResult) error {
	var output *os.File
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		// Reports quote document content, so restrict them to the owner.
		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600) //nolint:gosec // user-provided output path is intentional
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		output = f
	} else {
		output = os.Stdout
	}

	var writer report.Writer
	switch {
	case cfg.JSONReport:
		writer = report.NewVersionedJSONWriter(output, getVersion(), report.WithPrettyPrint())
	case cfg.MarkdownReport:
		writer = report.NewMarkdownWriter(output)
	default:
		writer = report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}

	_, err := writer.Write(result)
	return err
}

// saveResult saves the analysis result to the database if enabled.
// If db is nil, this function is a no-op.
func saveResult(ctx context.Context, db *database.HistoryDB, result *model.AnalysisResult, logger *slog.Logger) error {
	if db == nil {
		return nil
	}

	if err := db.SaveResult(ctx, result); err != nil {
		return fmt.Errorf("failed to save analysis result: %w", err)
	}

	logger.Debug("analysis result saved", "document", result.DocumentName)
	return nil
}
