package model

import "time"

// AnalysisResult is the single externally visible artifact of an analysis.
// It is assembled once by the pipeline and treated as immutable afterwards.
//
// Design decision: We use a single struct holding both feature records and
// the derived scores rather than splitting evidence and verdict, because
// every consumer (report writers, history DB) wants both together and the
// result is write-once.
type AnalysisResult struct {
	// DocumentID is a stable fingerprint of the analyzed page content.
	// Identical input pages always produce the same DocumentID.
	DocumentID string `json:"document_id"`

	// DocumentName is the caller-supplied name (usually the input path).
	DocumentName string `json:"document_name"`

	// AnalyzedAt is when the analysis was performed.
	AnalyzedAt time.Time `json:"analyzed_at"`

	// PageCount is the number of pages analyzed.
	PageCount int `json:"page_count"`

	// Text holds the textual risk evidence.
	Text TextFeatures `json:"text"`

	// Visual holds the visual risk evidence.
	Visual VisualFeatures `json:"visual"`

	// TextRisk is the textual sub-score in [0,100].
	TextRisk float64 `json:"text_risk"`

	// VisualRisk is the visual sub-score in [0,100].
	VisualRisk float64 `json:"visual_risk"`

	// OverallRisk is the fused score in [0,100].
	OverallRisk float64 `json:"overall_risk"`

	// Tier is the discrete triage bucket derived from OverallRisk.
	Tier RiskTier `json:"tier"`

	// TierText is the human-readable tier for serialized output.
	TierText string `json:"tier_text"`

	// Findings are the triggered risk statements in deterministic
	// rule-evaluation order.
	Findings []Finding `json:"findings,omitempty"`

	// Stages lists the pipeline stages that ran, in order.
	Stages []string `json:"stages,omitempty"`
}

// Finding represents a single risk statement in the result.
type Finding struct {
	// Type is the finding type identifier.
	// This maps to the findingInfoMapping in severity.go.
	Type string `json:"type"`

	// Severity is the risk level.
	Severity Severity `json:"severity"`

	// SeverityText is the human-readable severity.
	SeverityText string `json:"severity_text"`

	// Message is the short human-readable statement.
	Message string `json:"message"`

	// Impact explains why this finding matters.
	Impact string `json:"impact,omitempty"`

	// Recommendation provides guidance on how to address the finding.
	Recommendation string `json:"recommendation,omitempty"`
}

// NewFinding builds a Finding of the given type, filling severity, impact
// and recommendation from the finding catalog.
func NewFinding(findingType, message string) Finding {
	info := GetFindingInfo(findingType)
	return Finding{
		Type:           findingType,
		Severity:       info.Severity,
		SeverityText:   info.Severity.String(),
		Message:        message,
		Impact:         info.Impact,
		Recommendation: info.Recommendation,
	}
}

// NewAnalysisResult creates a result shell for the given document.
// Feature records and scores are filled in by the pipeline stages.
func NewAnalysisResult(documentName string) *AnalysisResult {
	return &AnalysisResult{
		DocumentName: documentName,
		AnalyzedAt:   time.Now(),
		TierText:     TierLow.String(),
	}
}

// SetTier assigns the tier and keeps the serialized text in sync.
func (r *AnalysisResult) SetTier(tier RiskTier) {
	r.Tier = tier
	r.TierText = tier.String()
}

// CountBySeverity returns the number of findings at the given severity.
func (r *AnalysisResult) CountBySeverity(severity Severity) int {
	count := 0
	for _, f := range r.Findings {
		if f.Severity == severity {
			count++
		}
	}
	return count
}

// FindingsBySeverity returns findings filtered by severity, preserving
// generation order.
func (r *AnalysisResult) FindingsBySeverity(severity Severity) []Finding {
	var result []Finding
	for _, f := range r.Findings {
		if f.Severity == severity {
			result = append(result, f)
		}
	}
	return result
}

// HasFindings returns true if any finding was generated.
func (r *AnalysisResult) HasFindings() bool {
	return len(r.Findings) > 0
}
