package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages. Using errors.New() here rather than fmt.Errorf()
// because we don't need to include dynamic values in these messages.
var (
	// ErrNoInput is returned when no document path is specified.
	ErrNoInput = errors.New("no input specified: provide a document directory or text file")

	// ErrEmptyVocabulary is returned when the keyword vocabulary has no terms.
	// An empty vocabulary would make the text sub-score meaningless.
	ErrEmptyVocabulary = errors.New("empty vocabulary: at least one risk keyword is required")

	// ErrInvalidKeywordWeight is returned when a keyword carries a negative
	// severity weight. Weights must be non-negative.
	ErrInvalidKeywordWeight = errors.New("invalid keyword weight: must be non-negative")

	// ErrInvalidMonetaryCeiling is returned when the monetary saturation
	// ceiling is not positive. The ceiling divides the aggregate amount.
	ErrInvalidMonetaryCeiling = errors.New("invalid monetary ceiling: must be positive")

	// ErrInvalidAreaRange is returned when a region area range is not a
	// positive, properly ordered interval.
	ErrInvalidAreaRange = errors.New("invalid area range: min must be positive and less than max")

	// ErrInvalidAspectRange is returned when the signature aspect-ratio
	// range is not a positive, properly ordered interval.
	ErrInvalidAspectRange = errors.New("invalid aspect ratio range: min must be positive and less than max")

	// ErrInvalidAspectTolerance is returned when the stamp aspect tolerance
	// falls outside (0, 1].
	ErrInvalidAspectTolerance = errors.New("invalid stamp aspect tolerance: must be in (0, 1]")

	// ErrInvalidLayoutWeight is returned when the layout weighting falls
	// outside [0, 1].
	ErrInvalidLayoutWeight = errors.New("invalid layout weight: must be in [0, 1]")

	// ErrInvalidFusionWeights is returned when the text/visual fusion
	// weights are negative or sum to zero.
	ErrInvalidFusionWeights = errors.New("invalid fusion weights: must be non-negative and sum to a positive value")

	// ErrInvalidTierThresholds is returned when the tier thresholds are not
	// ordered low < high within (0, 100).
	ErrInvalidTierThresholds = errors.New("invalid tier thresholds: require 0 < low < high < 100")

	// ErrInvalidWorkers is returned when the visual worker count is not
	// positive. Zero workers would stall per-page extraction.
	ErrInvalidWorkers = errors.New("invalid worker count: must be positive")

	// ErrInvalidStampBaseline is returned when the expected stamp baseline
	// is negative.
	ErrInvalidStampBaseline = errors.New("invalid stamp baseline: must be non-negative")

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")
)
