package model

// Severity represents the weight of a single risk finding.
// This allows sorting findings so the most actionable ones surface first.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons and sorting. The String() method provides
// human-readable output when needed.
type Severity int

const (
	// SeverityInfo indicates informational findings with no direct risk impact.
	// Examples: a list of detected monetary amounts, missing layout evidence.
	// These give reviewers context but do not by themselves demand action.
	SeverityInfo Severity = iota

	// SeverityWarning indicates findings that warrant careful review.
	// Examples: high monetary exposure, irregular page layout, excess stamps.
	// These raise the risk score moderately and should be checked by a human.
	SeverityWarning

	// SeverityHigh indicates findings that significantly raise document risk.
	// Examples: no signature detected anywhere, document could not be analyzed.
	// These typically block sign-off until resolved.
	SeverityHigh
)

// String returns a human-readable representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityHigh:
		return "HIGH"
	default:
		return "UNKNOWN"
	}
}

// RiskTier is the discrete bucket derived from the overall risk score.
// It gives reviewers a quick triage signal without reading the numbers.
type RiskTier int

const (
	// TierLow indicates a document that appears standard.
	TierLow RiskTier = iota

	// TierMedium indicates a document whose flagged sections deserve review.
	TierMedium

	// TierHigh indicates a document that should not be signed without
	// a full review of every finding.
	TierHigh

	// TierUnanalyzable indicates the document yielded no pages at all.
	// The scores attached to this tier are floor values, not evidence of
	// low risk.
	TierUnanalyzable
)

// String returns a human-readable representation of the risk tier.
func (t RiskTier) String() string {
	switch t {
	case TierLow:
		return "LOW"
	case TierMedium:
		return "MEDIUM"
	case TierHigh:
		return "HIGH"
	case TierUnanalyzable:
		return "UNANALYZABLE"
	default:
		return "UNKNOWN"
	}
}

// FindingInfo contains metadata about a finding type including severity,
// impact description, and remediation recommendation.
type FindingInfo struct {
	Severity       Severity
	Impact         string
	Recommendation string
}

// findingInfoMapping maps finding types to their metadata.
// This centralized mapping ensures consistent risk assessment across the
// application.
//
// Design decision: We use a map rather than embedding severity in each finding
// type because:
// 1. It allows updating risk assessments without modifying type definitions
// 2. It provides a single source of truth for severity levels
// 3. It makes it easy to generate severity documentation
var findingInfoMapping = map[string]FindingInfo{
	// HIGH - should block sign-off until resolved
	"document_unreadable": {
		Severity:       SeverityHigh,
		Impact:         "The document produced no analyzable pages, so no risk evidence exists either way.",
		Recommendation: "Re-render or re-export the document and run the analysis again.",
	},
	"no_signature": {
		Severity:       SeverityHigh,
		Impact:         "No signature-shaped region was found on any page. An unsigned agreement may not be executed or may have had signatures removed.",
		Recommendation: "Verify the document is properly signed before relying on it.",
	},

	// WARNING - deserves careful human review
	"high_monetary_exposure": {
		Severity:       SeverityWarning,
		Impact:         "Large monetary amounts were found, indicating significant financial exposure.",
		Recommendation: "Verify every monetary commitment against the agreed terms.",
	},
	"layout_irregular": {
		Severity:       SeverityWarning,
		Impact:         "The page layout is unusually irregular, which can indicate pasted-in or altered content.",
		Recommendation: "Compare the flagged pages against a known-good copy of the document.",
	},
	"excess_stamps": {
		Severity:       SeverityWarning,
		Impact:         "More stamp-shaped marks were found than expected. Unexplained official-looking marks are suspicious.",
		Recommendation: "Confirm each stamp or seal has a known origin.",
	},
	"heavy_risk_language": {
		Severity:       SeverityWarning,
		Impact:         "Several distinct risk terms appear in the text, suggesting unfavorable or one-sided clauses.",
		Recommendation: "Have the flagged clauses reviewed by counsel before signing.",
	},
	"clause_pattern": {
		Severity:       SeverityWarning,
		Impact:         "A known high-risk clause pattern (e.g. unlimited liability) appears verbatim in the text.",
		Recommendation: "Review the matched clauses; these patterns are rarely favorable to the signer.",
	},
	"image_editor_trace": {
		Severity:       SeverityWarning,
		Impact:         "Page image metadata references image-editing software, which can indicate post-render modification.",
		Recommendation: "Obtain the original document and verify its integrity.",
	},

	// INFO - context for reviewers, no direct action required
	"risk_keywords": {
		Severity:       SeverityInfo,
		Impact:         "Some risk vocabulary appears in the text. A small number of matches is normal for contracts.",
		Recommendation: "Skim the matched terms for anything unexpected.",
	},
	"monetary_amounts": {
		Severity:       SeverityInfo,
		Impact:         "Monetary amounts were detected and parsed from the text.",
		Recommendation: "Confirm the listed amounts match expectations.",
	},
	"no_layout_evidence": {
		Severity:       SeverityInfo,
		Impact:         "No page yielded a layout-consistency score, so the visual score is based on signature and stamp signals alone.",
		Recommendation: "Provide page images with visible content for a complete visual assessment.",
	},
}

// GetSeverity returns the severity level for a finding type.
// Returns SeverityInfo if the finding type is not in the mapping.
func GetSeverity(findingType string) Severity {
	if info, ok := findingInfoMapping[findingType]; ok {
		return info.Severity
	}
	return SeverityInfo
}

// GetFindingInfo returns the full finding information for a finding type.
// Returns a default FindingInfo with SeverityInfo if the type is not in the mapping.
func GetFindingInfo(findingType string) FindingInfo {
	if info, ok := findingInfoMapping[findingType]; ok {
		return info
	}
	return FindingInfo{
		Severity:       SeverityInfo,
		Impact:         "Unknown finding type. Review manually.",
		Recommendation: "Investigate the finding and assess risk.",
	}
}
