package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default overrides file name.
const DefaultConfigFile = ".docrisk"

// ErrConfigNotFound is returned when the overrides file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File is the on-disk shape of the .docrisk overrides file.
// Every field is optional; absent fields keep their defaults.
//
// Example:
//
//	vocabulary:
//	  liability: 8
//	  penalty: 8
//	clause_patterns:
//	  - unlimited liability
//	monetary_ceiling: 2000000
//	signature_area: {min: 5000, max: 50000}
//	fusion: {text: 0.6, visual: 0.4}
//	tiers: {low: 40, high: 70}
type File struct {
	// Vocabulary maps keyword term to severity weight. When present it
	// replaces the default vocabulary entirely.
	Vocabulary map[string]float64 `yaml:"vocabulary"`

	// ClausePatterns replaces the default high-risk clause phrases.
	ClausePatterns []string `yaml:"clause_patterns"`

	// MonetaryCeiling overrides the monetary saturation ceiling.
	MonetaryCeiling *float64 `yaml:"monetary_ceiling"`

	// InkThreshold overrides the binarization threshold.
	InkThreshold *uint8 `yaml:"ink_threshold"`

	// SignatureArea and StampArea override the region area bounds.
	SignatureArea *AreaRange `yaml:"signature_area"`
	StampArea     *AreaRange `yaml:"stamp_area"`

	// SignatureAspect overrides the signature aspect-ratio bounds.
	SignatureAspect *AspectRange `yaml:"signature_aspect"`

	// StampAspectTolerance overrides the stamp squareness tolerance.
	StampAspectTolerance *float64 `yaml:"stamp_aspect_tolerance"`

	// StampBaseline overrides the expected stamp count.
	StampBaseline *int `yaml:"stamp_baseline"`

	// LayoutWeight overrides the layout contribution scaling.
	LayoutWeight *float64 `yaml:"layout_weight"`

	// Fusion overrides the text/visual fusion weights.
	Fusion *FusionWeights `yaml:"fusion"`

	// Tiers overrides the tier thresholds.
	Tiers *TierThresholds `yaml:"tiers"`

	// Workers overrides the visual worker-pool size.
	Workers *int `yaml:"workers"`
}

// FusionWeights is the fusion section of the overrides file.
type FusionWeights struct {
	Text   float64 `yaml:"text"`
	Visual float64 `yaml:"visual"`
}

// TierThresholds is the tiers section of the overrides file.
type TierThresholds struct {
	Low  float64 `yaml:"low"`
	High float64 `yaml:"high"`
}

// LoadConfigFile loads overrides from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound. Callers should
// handle this based on whether the path was explicitly specified.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	return &cf, nil
}

// ApplyTo merges the file's overrides into the given config.
// Only fields present in the file are touched; validation happens
// afterwards on the merged result so file values go through the same
// checks as flags.
func (f *File) ApplyTo(cfg *Config) {
	if len(f.Vocabulary) > 0 {
		vocab := make([]Keyword, 0, len(f.Vocabulary))
		for term, weight := range f.Vocabulary {
			vocab = append(vocab, Keyword{Term: strings.ToLower(term), Weight: weight})
		}
		// Map iteration order is random; keep the vocabulary stable so
		// findings and reports are reproducible across runs.
		sortKeywords(vocab)
		cfg.Vocabulary = vocab
	}

	if len(f.ClausePatterns) > 0 {
		cfg.ClausePatterns = f.ClausePatterns
	}

	if f.MonetaryCeiling != nil {
		cfg.MonetaryCeiling = *f.MonetaryCeiling
	}
	if f.InkThreshold != nil {
		cfg.InkThreshold = *f.InkThreshold
	}
	if f.SignatureArea != nil {
		cfg.SignatureArea = *f.SignatureArea
	}
	if f.StampArea != nil {
		cfg.StampArea = *f.StampArea
	}
	if f.SignatureAspect != nil {
		cfg.SignatureAspect = *f.SignatureAspect
	}
	if f.StampAspectTolerance != nil {
		cfg.StampAspectTolerance = *f.StampAspectTolerance
	}
	if f.StampBaseline != nil {
		cfg.StampBaseline = *f.StampBaseline
	}
	if f.LayoutWeight != nil {
		cfg.LayoutWeight = *f.LayoutWeight
	}
	if f.Fusion != nil {
		cfg.TextWeight = f.Fusion.Text
		cfg.VisualWeight = f.Fusion.Visual
	}
	if f.Tiers != nil {
		cfg.TierLowThreshold = f.Tiers.Low
		cfg.TierHighThreshold = f.Tiers.High
	}
	if f.Workers != nil {
		cfg.Workers = *f.Workers
	}
}

// sortKeywords orders keywords by descending weight, then term.
func sortKeywords(vocab []Keyword) {
	for i := 1; i < len(vocab); i++ {
		for j := i; j > 0; j-- {
			a, b := vocab[j-1], vocab[j]
			if a.Weight > b.Weight || (a.Weight == b.Weight && a.Term <= b.Term) {
				break
			}
			vocab[j-1], vocab[j] = b, a
		}
	}
}

// FindConfigFile searches for the overrides file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .docrisk in the current directory
// 3. Look for .docrisk in the user's home directory
//
// Returns the path to the file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}
