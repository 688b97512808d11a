package pipeline

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/docrisk/docrisk/internal/config"
	"github.com/docrisk/docrisk/internal/extractor"
	"github.com/docrisk/docrisk/internal/model"
	"github.com/docrisk/docrisk/internal/score"
)

// TextExtractionStep runs the text extractor over the document's pages and
// records the textual evidence in the result.
type TextExtractionStep struct {
	extractor *extractor.TextExtractor
	logger    *slog.Logger
}

// NewTextExtractionStep creates the text extraction step.
func NewTextExtractionStep(cfg *config.Config, logger *slog.Logger) *TextExtractionStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &TextExtractionStep{
		extractor: extractor.NewTextExtractor(cfg),
		logger:    logger,
	}
}

// Name returns the step name.
func (s *TextExtractionStep) Name() string {
	return "text_extraction"
}

// Do executes text extraction. Extraction itself cannot fail; empty text
// simply yields empty features.
func (s *TextExtractionStep) Do(_ context.Context, analysis *Analysis) error {
	analysis.Result.Text = s.extractor.Extract(analysis.Pages)

	s.logger.Debug("text extracted",
		"document", analysis.DocumentName,
		"words", analysis.Result.Text.WordCount,
		"keyword_hits", analysis.Result.Text.TotalKeywordHits(),
		"amounts", len(analysis.Result.Text.Amounts),
	)
	return nil
}

// VisualExtractionStep runs the visual extractor over the document's pages
// concurrently and records the aggregated visual evidence in the result.
//
// Design decision: Pages are independent, so each page is analyzed in its
// own goroutine with errgroup.SetLimit bounding parallelism. Each goroutine
// writes only its own slot of a pre-allocated slice, which keeps the merge
// in page order without locks and keeps output deterministic regardless of
// completion order.
type VisualExtractionStep struct {
	extractor *extractor.VisualExtractor
	workers   int
	logger    *slog.Logger
}

// NewVisualExtractionStep creates the visual extraction step.
func NewVisualExtractionStep(cfg *config.Config, logger *slog.Logger) *VisualExtractionStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &VisualExtractionStep{
		extractor: extractor.NewVisualExtractor(cfg),
		workers:   cfg.Workers,
		logger:    logger,
	}
}

// Name returns the step name.
func (s *VisualExtractionStep) Name() string {
	return "visual_extraction"
}

// Do executes visual extraction across all pages.
func (s *VisualExtractionStep) Do(ctx context.Context, analysis *Analysis) error {
	perPage := make([]model.PageVisual, len(analysis.Pages))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, page := range analysis.Pages {
		i, page := i, page
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			perPage[i] = s.extractor.ExtractPage(page)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	analysis.Result.Visual = s.extractor.Aggregate(perPage)

	s.logger.Debug("visual features extracted",
		"document", analysis.DocumentName,
		"pages", len(perPage),
		"signatures", analysis.Result.Visual.SignatureCount,
		"stamps", analysis.Result.Visual.StampCount,
	)
	return nil
}

// ScoreStep derives sub-scores, the fused overall score, the tier and the
// findings from the extracted evidence.
type ScoreStep struct {
	scorer *score.Scorer
	logger *slog.Logger
}

// NewScoreStep creates the scoring step.
func NewScoreStep(cfg *config.Config, logger *slog.Logger) *ScoreStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &ScoreStep{
		scorer: score.NewScorer(cfg),
		logger: logger,
	}
}

// Name returns the step name.
func (s *ScoreStep) Name() string {
	return "scoring"
}

// Do executes scoring. Scoring is pure and never fails.
func (s *ScoreStep) Do(_ context.Context, analysis *Analysis) error {
	s.scorer.Score(analysis.Result)

	s.logger.Debug("document scored",
		"document", analysis.DocumentName,
		"text_risk", analysis.Result.TextRisk,
		"visual_risk", analysis.Result.VisualRisk,
		"overall_risk", analysis.Result.OverallRisk,
		"tier", analysis.Result.TierText,
	)
	return nil
}
