package pipeline

import (
	"context"
	"errors"
	"log/slog"

	"github.com/docrisk/docrisk/internal/config"
	"github.com/docrisk/docrisk/internal/model"
	"github.com/docrisk/docrisk/internal/score"
	"github.com/docrisk/docrisk/internal/source"
)

// Analyzer runs the full analysis pipeline for one document at a time.
// It is safe for concurrent use; every Analyze call builds fresh working
// state.
type Analyzer struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewAnalyzer creates an analyzer bound to the given configuration.
// A nil logger falls back to slog.Default().
func NewAnalyzer(cfg *config.Config, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{cfg: cfg, logger: logger}
}

// Analyze loads the document from the given source and runs the pipeline.
//
// An unreadable document (no pages at all) is a successful analysis with
// the unanalyzable tier, not an error: the caller still gets a report and a
// finding explaining the verdict. Errors are reserved for I/O failures and
// cancellation.
func (a *Analyzer) Analyze(ctx context.Context, documentName string, src source.PageSource) (*model.AnalysisResult, error) {
	result := model.NewAnalysisResult(documentName)

	pages, err := src.Pages()
	if err != nil {
		if errors.Is(err, source.ErrDocumentUnreadable) {
			a.logger.Warn("document unreadable", "document", documentName)
			score.NewScorer(a.cfg).Score(result)
			return result, nil
		}
		return nil, err
	}

	result.PageCount = len(pages)
	result.DocumentID = model.FingerprintPages(pages)

	analysis := &Analysis{
		DocumentName: documentName,
		Pages:        pages,
		Result:       result,
	}

	p := New(WithLogger(a.logger))
	p.AddSteps(
		NewTextExtractionStep(a.cfg, a.logger),
		NewVisualExtractionStep(a.cfg, a.logger),
		NewScoreStep(a.cfg, a.logger),
	)

	if err := p.Execute(ctx, analysis); err != nil {
		return nil, err
	}

	return analysis.Result, nil
}

// AnalyzePath resolves the path into a page source and analyzes it.
func (a *Analyzer) AnalyzePath(ctx context.Context, path string) (*model.AnalysisResult, error) {
	src, err := source.FromPath(path)
	if err != nil {
		return nil, err
	}
	return a.Analyze(ctx, path, src)
}
