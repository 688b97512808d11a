package pipeline

import (
	"context"
	"log/slog"

	"github.com/docrisk/docrisk/internal/model"
)

// Analysis is the working state threaded through the pipeline steps.
// Steps fill in the result as they run; once the pipeline finishes, only
// the Result is kept.
type Analysis struct {
	// DocumentName is the caller-supplied name of the document.
	DocumentName string

	// Pages are the loaded document pages, in page order.
	Pages []model.Page

	// Result accumulates the analysis output across steps.
	Result *model.AnalysisResult
}

// Step defines the interface that all pipeline steps must implement.
// Steps are executed in sequence, with each step receiving the accumulated
// analysis state from previous steps.
//
// Design decision: We use an interface rather than function types because:
// 1. It allows steps to carry configuration state
// 2. It provides a Name() method for logging and debugging
// 3. It's more extensible for future features (e.g., optional steps)
type Step interface {
	// Do executes the pipeline step.
	// It receives the context for cancellation, and the analysis to modify.
	// Returns an error only for failures that invalidate the analysis;
	// degraded evidence (a blank page, a corrupt image) is recorded in the
	// result and returns nil.
	Do(ctx context.Context, analysis *Analysis) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline orchestrates the execution of multiple steps.
// It maintains a list of steps and executes them in order.
type Pipeline struct {
	// steps contains the ordered list of steps to execute.
	steps []Step

	// logger is used for structured logging during execution.
	logger *slog.Logger
}

// Option is a function that configures a Pipeline.
// This follows the functional options pattern for clean API design.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates a new Pipeline with the given options.
// Steps should be added using AddStep after creation.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps: make([]Step, 0),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// AddStep appends a step to the pipeline.
// Steps are executed in the order they are added.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs all pipeline steps in sequence.
// It respects context cancellation and logs each step's execution.
// The pipeline stops on the first step error; a half-analyzed document must
// not be scored as if fully analyzed.
func (p *Pipeline) Execute(ctx context.Context, analysis *Analysis) error {
	for _, step := range p.steps {
		// Check for cancellation before starting each step.
		select {
		case <-ctx.Done():
			p.logger.Warn("analysis cancelled",
				"step", step.Name(),
				"document", analysis.DocumentName,
				"reason", ctx.Err(),
			)
			return ctx.Err()
		default:
		}

		p.logger.Debug("executing step",
			"step", step.Name(),
			"document", analysis.DocumentName,
		)

		if err := step.Do(ctx, analysis); err != nil {
			p.logger.Error("step failed",
				"step", step.Name(),
				"document", analysis.DocumentName,
				"error", err,
			)
			return err
		}

		analysis.Result.Stages = append(analysis.Result.Stages, step.Name())
	}

	return nil
}

// StepCount returns the number of steps in the pipeline.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
