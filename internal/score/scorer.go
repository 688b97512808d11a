package score

import (
	"fmt"
	"sort"
	"strings"

	"github.com/docrisk/docrisk/internal/config"
	"github.com/docrisk/docrisk/internal/model"
)

// Scoring constants. These partition each sub-score's [0,100] range among
// its evidence channels.
const (
	// languagePointsCap bounds the combined keyword and clause contribution
	// to the text sub-score; the remainder of the range is reserved for
	// monetary exposure.
	languagePointsCap = 60.0

	// clausePoints is the per-matched-clause contribution.
	clausePoints = 10.0

	// monetaryPointsCap bounds the monetary contribution, reached when the
	// aggregate amount hits the configured ceiling.
	monetaryPointsCap = 40.0

	// heavyLanguageThreshold is the language-point level at which the
	// keyword finding escalates from informational to a warning.
	heavyLanguageThreshold = 40.0

	// missingSignaturePoints is the visual contribution of an absent
	// signature, the strongest single visual signal.
	missingSignaturePoints = 40.0

	// excessStampPoints is the visual contribution of a stamp count above
	// the configured baseline.
	excessStampPoints = 20.0

	// layoutPointsCap bounds the layout-irregularity contribution, reached
	// at layout consistency 0.
	layoutPointsCap = 30.0

	// irregularLayoutThreshold is the consistency level below which a
	// layout finding is emitted.
	irregularLayoutThreshold = 0.5
)

// Scorer derives risk scores and findings from feature records.
// It holds only configuration and is safe for concurrent use.
type Scorer struct {
	cfg *config.Config
}

// NewScorer creates a scorer bound to the given configuration.
func NewScorer(cfg *config.Config) *Scorer {
	return &Scorer{cfg: cfg}
}

// Score fills the result's sub-scores, overall score, tier and findings
// from its feature records. The result must already carry Text, Visual and
// PageCount.
//
// Design decision: Findings are generated in a fixed rule order, not by
// severity or score contribution. Deterministic order is what makes two
// runs over the same document byte-identical, and reports group by severity
// themselves when they want that view.
func (s *Scorer) Score(result *model.AnalysisResult) {
	if result.PageCount == 0 {
		// Nothing was extracted; scoring evidence-free input would
		// fabricate a verdict. The tier says so explicitly.
		result.TextRisk = 0
		result.VisualRisk = 0
		result.OverallRisk = 0
		result.SetTier(model.TierUnanalyzable)
		result.Findings = []model.Finding{
			model.NewFinding("document_unreadable",
				"no pages could be read from the document"),
		}
		return
	}

	result.TextRisk = s.textRisk(&result.Text)
	result.VisualRisk = s.visualRisk(&result.Visual)
	result.OverallRisk = s.fuse(result.TextRisk, result.VisualRisk)
	result.SetTier(s.tier(result.OverallRisk))
	result.Findings = s.findings(result)
}

// textRisk computes the textual sub-score in [0,100]: weighted keyword and
// clause points capped at languagePointsCap, plus monetary exposure scaled
// linearly up to monetaryPointsCap at the configured ceiling.
func (s *Scorer) textRisk(text *model.TextFeatures) float64 {
	lang := s.languagePoints(text)
	if lang > languagePointsCap {
		lang = languagePointsCap
	}

	exposure := text.TotalAmount() / s.cfg.MonetaryCeiling
	if exposure > 1 {
		exposure = 1
	}

	return clamp(lang+monetaryPointsCap*exposure, 0, 100)
}

// languagePoints is the uncapped keyword-plus-clause point total.
func (s *Scorer) languagePoints(text *model.TextFeatures) float64 {
	var points float64
	for _, kw := range s.cfg.Vocabulary {
		if n, ok := text.KeywordCounts[strings.ToLower(kw.Term)]; ok {
			points += kw.Weight * float64(n)
		}
	}
	return points + clausePoints*float64(len(text.ClauseMatches))
}

// visualRisk computes the visual sub-score in [0,100] from three signals:
// a missing signature, stamps beyond the baseline, and layout irregularity
// scaled by the configured layout weight. An undefined layout consistency
// contributes nothing rather than counting as maximally irregular.
func (s *Scorer) visualRisk(visual *model.VisualFeatures) float64 {
	var points float64

	if visual.SignatureCount == 0 {
		points += missingSignaturePoints
	}
	if visual.StampCount > s.cfg.StampBaseline {
		points += excessStampPoints
	}
	if visual.LayoutConsistency != nil {
		irregularity := 1 - clamp(*visual.LayoutConsistency, 0, 1)
		points += layoutPointsCap * s.cfg.LayoutWeight * irregularity
	}

	return clamp(points, 0, 100)
}

// fuse combines the sub-scores as a weighted mean. Validate guarantees the
// weights sum to a positive value.
func (s *Scorer) fuse(textRisk, visualRisk float64) float64 {
	total := s.cfg.TextWeight + s.cfg.VisualWeight
	fused := (s.cfg.TextWeight*textRisk + s.cfg.VisualWeight*visualRisk) / total
	return clamp(fused, 0, 100)
}

// tier maps the overall score onto the triage buckets.
func (s *Scorer) tier(overall float64) model.RiskTier {
	switch {
	case overall < s.cfg.TierLowThreshold:
		return model.TierLow
	case overall > s.cfg.TierHighThreshold:
		return model.TierHigh
	default:
		return model.TierMedium
	}
}

// findings evaluates the finding rules in their fixed order.
func (s *Scorer) findings(result *model.AnalysisResult) []model.Finding {
	var findings []model.Finding
	text := &result.Text
	visual := &result.Visual

	if visual.PagesAnalyzed > 0 && visual.SignatureCount == 0 {
		findings = append(findings, model.NewFinding("no_signature",
			"no signature-shaped region was detected on any page"))
	}

	totalAmount := text.TotalAmount()
	highExposure := totalAmount >= s.cfg.MonetaryCeiling
	if highExposure {
		findings = append(findings, model.NewFinding("high_monetary_exposure",
			fmt.Sprintf("aggregate monetary exposure %.0f meets or exceeds the ceiling of %.0f",
				totalAmount, s.cfg.MonetaryCeiling)))
	}

	if visual.LayoutConsistency != nil && *visual.LayoutConsistency < irregularLayoutThreshold {
		findings = append(findings, model.NewFinding("layout_irregular",
			fmt.Sprintf("layout consistency %.2f indicates unevenly distributed page content",
				*visual.LayoutConsistency)))
	}

	if visual.StampCount > s.cfg.StampBaseline {
		findings = append(findings, model.NewFinding("excess_stamps",
			fmt.Sprintf("%d stamp-shaped regions detected, above the expected %d",
				visual.StampCount, s.cfg.StampBaseline)))
	}

	if len(text.KeywordCounts) > 0 {
		findingType := "risk_keywords"
		if s.languagePoints(text) >= heavyLanguageThreshold {
			findingType = "heavy_risk_language"
		}
		findings = append(findings, model.NewFinding(findingType,
			fmt.Sprintf("%d risk keyword occurrences across %d distinct terms: %s",
				text.TotalKeywordHits(), len(text.KeywordCounts), keywordSummary(text.KeywordCounts))))
	}

	for _, clause := range text.ClauseMatches {
		findings = append(findings, model.NewFinding("clause_pattern",
			fmt.Sprintf("high-risk clause pattern matched: %q", clause)))
	}

	for _, trace := range visual.EditorTraces {
		findings = append(findings, model.NewFinding("image_editor_trace",
			"page image metadata names editing software ("+trace+")"))
	}

	if visual.PagesAnalyzed > 0 && visual.LayoutConsistency == nil {
		findings = append(findings, model.NewFinding("no_layout_evidence",
			"no page carried enough ink to judge layout consistency"))
	}

	if len(text.Amounts) > 0 && !highExposure {
		findings = append(findings, model.NewFinding("monetary_amounts",
			fmt.Sprintf("%d monetary amounts detected totaling %.2f",
				len(text.Amounts), totalAmount)))
	}

	return findings
}

// keywordSummary renders keyword counts as "term xN" pairs in
// deterministic alphabetical order.
func keywordSummary(counts map[string]int) string {
	terms := make([]string, 0, len(counts))
	for term := range counts {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	parts := make([]string, 0, len(terms))
	for _, term := range terms {
		parts = append(parts, fmt.Sprintf("%s x%d", term, counts[term]))
	}
	return strings.Join(parts, ", ")
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
