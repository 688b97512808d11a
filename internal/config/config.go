package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default configuration values.
// The detection thresholds follow the original heuristics the tool was
// calibrated with; everything is overridable via the .docrisk file.
const (
	// DefaultInkThreshold is the intensity below which a pixel counts as
	// ink. Page renders are mostly white paper; 200 tolerates scanner
	// gray while still separating text from background.
	DefaultInkThreshold = 200

	// DefaultSignatureMinArea and DefaultSignatureMaxArea bound the ink
	// area (in px²) of a signature-candidate region. Below the minimum a
	// region is ordinary text; above the maximum it is a figure or block.
	DefaultSignatureMinArea = 5000
	DefaultSignatureMaxArea = 50000

	// DefaultSignatureMinAspect and DefaultSignatureMaxAspect bound the
	// width/height ratio of a signature-candidate. Handwritten signatures
	// are wide strokes, typically 2x-6x wider than tall.
	DefaultSignatureMinAspect = 2.0
	DefaultSignatureMaxAspect = 6.0

	// DefaultStampMinArea and DefaultStampMaxArea bound stamp-candidate
	// regions. Stamps are generally smaller than signatures.
	DefaultStampMinArea = 3000
	DefaultStampMaxArea = 20000

	// DefaultStampAspectTolerance is how far from square (aspect 1.0) a
	// stamp-candidate may deviate.
	DefaultStampAspectTolerance = 0.25

	// DefaultMonetaryCeiling is the aggregate dollar value at which the
	// monetary contribution to the text sub-score saturates.
	DefaultMonetaryCeiling = 1_000_000.0

	// DefaultTextWeight and DefaultVisualWeight are the fusion weights.
	// Equal weighting; the weights are normalized so only their ratio
	// matters.
	DefaultTextWeight   = 0.5
	DefaultVisualWeight = 0.5

	// DefaultLayoutWeight scales the layout-irregularity contribution to
	// the visual sub-score. 1.0 applies the full contribution.
	DefaultLayoutWeight = 1.0

	// DefaultTierLowThreshold and DefaultTierHighThreshold bound the
	// medium tier: overall < low is LOW, overall > high is HIGH.
	DefaultTierLowThreshold  = 40.0
	DefaultTierHighThreshold = 70.0

	// DefaultWorkers is the bounded worker-pool size for per-page visual
	// extraction. Region detection is CPU-bound, so a small fixed pool
	// avoids oversubscription on typical machines.
	DefaultWorkers = 4

	// DefaultStampBaseline is the number of stamps considered normal for
	// a document. Counts above this raise the visual sub-score.
	DefaultStampBaseline = 2

	// AppName is the application name used for XDG directory paths.
	AppName = "docrisk"
)

// Keyword is one risk vocabulary entry: a term and its severity weight.
// Matching is case-insensitive and whole-word.
type Keyword struct {
	// Term is the vocabulary word, stored lowercase.
	Term string `yaml:"term"`

	// Weight is the per-occurrence contribution to the keyword points of
	// the text sub-score. Must be non-negative.
	Weight float64 `yaml:"weight"`
}

// DefaultVocabulary returns the built-in risk keyword list with weights.
// Heavier weights mark terms that almost always signal one-sided or
// punitive clauses.
func DefaultVocabulary() []Keyword {
	return []Keyword{
		{Term: "liability", Weight: 8},
		{Term: "penalty", Weight: 8},
		{Term: "breach", Weight: 8},
		{Term: "indemnify", Weight: 8},
		{Term: "termination", Weight: 6},
		{Term: "damages", Weight: 6},
		{Term: "lawsuit", Weight: 6},
		{Term: "non-compete", Weight: 5},
		{Term: "irrevocable", Weight: 5},
		{Term: "waive", Weight: 5},
		{Term: "negligence", Weight: 5},
		{Term: "arbitration", Weight: 4},
		{Term: "perpetual", Weight: 4},
		{Term: "violation", Weight: 4},
		{Term: "confidential", Weight: 3},
		{Term: "proprietary", Weight: 3},
		{Term: "exclusive", Weight: 3},
		{Term: "warranty", Weight: 3},
		{Term: "default", Weight: 3},
	}
}

// DefaultClausePatterns returns the built-in high-risk clause phrases.
// These match case-insensitively with flexible internal whitespace.
func DefaultClausePatterns() []string {
	return []string{
		"unlimited liability",
		"personal guarantee",
		"joint and several",
		"automatic renewal",
		"no right to terminate",
		"waive all rights",
	}
}

// AreaRange bounds a region area in px².
type AreaRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// AspectRange bounds a region width/height ratio.
type AspectRange struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Config holds all configuration options for docrisk.
// This struct is populated from defaults, optionally a .docrisk YAML file,
// and CLI flags, then validated once and passed through the application via
// dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., TextConfig, VisualConfig) for simplicity, mirroring how the number
// of options stays manageable. If the configuration grows significantly,
// consider refactoring into sub-structs.
type Config struct {
	// Vocabulary is the risk keyword list used by the text extractor.
	Vocabulary []Keyword

	// ClausePatterns are high-risk clause phrases matched verbatim
	// (case-insensitive) against the document text.
	ClausePatterns []string

	// MonetaryCeiling is the aggregate amount at which monetary risk
	// saturates.
	MonetaryCeiling float64

	// InkThreshold is the binarization threshold for region detection.
	InkThreshold uint8

	// SignatureArea bounds signature-candidate region areas.
	SignatureArea AreaRange

	// SignatureAspect bounds signature-candidate aspect ratios.
	SignatureAspect AspectRange

	// StampArea bounds stamp-candidate region areas.
	StampArea AreaRange

	// StampAspectTolerance is the allowed deviation from aspect 1.0 for
	// stamp-candidates.
	StampAspectTolerance float64

	// StampBaseline is the stamp count considered normal; only counts
	// above it raise risk.
	StampBaseline int

	// LayoutWeight scales the layout-irregularity term of the visual
	// sub-score. Must be in [0,1].
	LayoutWeight float64

	// TextWeight and VisualWeight are the fusion weights. They are
	// normalized during fusion, so only the ratio matters.
	TextWeight   float64
	VisualWeight float64

	// TierLowThreshold and TierHighThreshold bound the medium tier.
	TierLowThreshold  float64
	TierHighThreshold float64

	// Workers is the bounded worker-pool size for per-page visual
	// extraction.
	Workers int

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// JSONReport enables JSON report output instead of human-readable
	// format. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output instead of
	// human-readable format. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	ReportFile string

	// ConfigFilePath is an explicit path to the .docrisk overrides file.
	// If empty, the tool searches the current directory and then the
	// user's home directory.
	ConfigFilePath string

	// DBDir is the directory for the analysis history database.
	// Defaults to the XDG data directory.
	DBDir string

	// SaveToDB indicates whether to persist results to the history
	// database.
	SaveToDB bool

	// Targets is the list of document paths to analyze.
	Targets []string
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for most use
// cases. Users can override specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because almost every default is non-zero (thresholds,
// ranges, weights). This also serves as documentation of the defaults.
func NewConfig() *Config {
	return &Config{
		Vocabulary:           DefaultVocabulary(),
		ClausePatterns:       DefaultClausePatterns(),
		MonetaryCeiling:      DefaultMonetaryCeiling,
		InkThreshold:         DefaultInkThreshold,
		SignatureArea:        AreaRange{Min: DefaultSignatureMinArea, Max: DefaultSignatureMaxArea},
		SignatureAspect:      AspectRange{Min: DefaultSignatureMinAspect, Max: DefaultSignatureMaxAspect},
		StampArea:            AreaRange{Min: DefaultStampMinArea, Max: DefaultStampMaxArea},
		StampAspectTolerance: DefaultStampAspectTolerance,
		StampBaseline:        DefaultStampBaseline,
		LayoutWeight:         DefaultLayoutWeight,
		TextWeight:           DefaultTextWeight,
		VisualWeight:         DefaultVisualWeight,
		TierLowThreshold:     DefaultTierLowThreshold,
		TierHighThreshold:    DefaultTierHighThreshold,
		Workers:              DefaultWorkers,
	}
}

// XDGDataDir returns the XDG data directory for docrisk.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.local/share/docrisk
// On macOS: ~/Library/Application Support/docrisk
// On Windows: %LOCALAPPDATA%\docrisk
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for docrisk.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific sentinel error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after flag and file loading, before any analysis
// begins. We return the first error found rather than collecting all
// errors because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	if len(c.Targets) == 0 {
		return ErrNoInput
	}

	if len(c.Vocabulary) == 0 {
		return ErrEmptyVocabulary
	}
	for _, kw := range c.Vocabulary {
		if kw.Term == "" {
			return ErrEmptyVocabulary
		}
		if kw.Weight < 0 {
			return ErrInvalidKeywordWeight
		}
	}

	if c.MonetaryCeiling <= 0 {
		return ErrInvalidMonetaryCeiling
	}

	if c.SignatureArea.Min <= 0 || c.SignatureArea.Max <= c.SignatureArea.Min {
		return ErrInvalidAreaRange
	}
	if c.StampArea.Min <= 0 || c.StampArea.Max <= c.StampArea.Min {
		return ErrInvalidAreaRange
	}

	if c.SignatureAspect.Min <= 0 || c.SignatureAspect.Max <= c.SignatureAspect.Min {
		return ErrInvalidAspectRange
	}

	if c.StampAspectTolerance <= 0 || c.StampAspectTolerance > 1 {
		return ErrInvalidAspectTolerance
	}

	if c.StampBaseline < 0 {
		return ErrInvalidStampBaseline
	}

	if c.LayoutWeight < 0 || c.LayoutWeight > 1 {
		return ErrInvalidLayoutWeight
	}

	if c.TextWeight < 0 || c.VisualWeight < 0 || c.TextWeight+c.VisualWeight <= 0 {
		return ErrInvalidFusionWeights
	}

	if c.TierLowThreshold <= 0 || c.TierHighThreshold >= 100 ||
		c.TierLowThreshold >= c.TierHighThreshold {
		return ErrInvalidTierThresholds
	}

	if c.Workers <= 0 {
		return ErrInvalidWorkers
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	return nil
}
