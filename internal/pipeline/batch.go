package pipeline

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/docrisk/docrisk/internal/model"
)

// BatchProcessor analyzes multiple documents concurrently.
// It uses errgroup to manage goroutines and respect concurrency limits.
//
// Design decision: We use a separate BatchProcessor rather than adding
// batch functionality to Analyzer because it keeps the Analyzer focused on
// single-document execution and gives batch policy (concurrency, progress
// callbacks) its own home.
type BatchProcessor struct {
	// analyzer runs the per-document pipeline.
	analyzer *Analyzer

	// concurrency is the maximum number of documents analyzed at once.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger

	// onResult, when set, is called with each completed result as soon as
	// it is available. Calls may come from different goroutines.
	onResult func(*model.AnalysisResult)
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithBatchConcurrency sets the maximum number of concurrent analyses.
// Default is 2 if not specified.
func WithBatchConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// WithResultCallback registers a callback invoked for each completed
// result. The callback must be safe for concurrent calls.
func WithResultCallback(fn func(*model.AnalysisResult)) BatchOption {
	return func(b *BatchProcessor) {
		b.onResult = fn
	}
}

// NewBatchProcessor creates a new BatchProcessor around the given analyzer.
func NewBatchProcessor(analyzer *Analyzer, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		analyzer:    analyzer,
		concurrency: 2,
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatch analyzes multiple document paths concurrently.
// Results are returned in input order regardless of completion order.
//
// Design decision: We use errgroup.SetLimit rather than a hand-rolled
// worker pool because it is simpler and handles the concurrency limit
// correctly. Each document gets its own goroutine writing only its own
// result slot, so no mutex is needed for the results.
//
// The first document error cancels the remaining analyses and is returned.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, paths []string) ([]*model.AnalysisResult, error) {
	bp.logger.Info("starting batch analysis",
		"total_documents", len(paths),
		"concurrency", bp.concurrency,
	)

	startTime := time.Now()
	results := make([]*model.AnalysisResult, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			bp.logger.Info("analyzing document",
				"document", path,
				"index", i+1,
				"total", len(paths),
			)

			result, err := bp.analyzer.AnalyzePath(ctx, path)
			if err != nil {
				return err
			}

			results[i] = result
			if bp.onResult != nil {
				bp.onResult(result)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	bp.logger.Info("batch analysis complete",
		"total_documents", len(paths),
		"elapsed", time.Since(startTime),
	)
	return results, nil
}
