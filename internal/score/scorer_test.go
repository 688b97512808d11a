package score

import (
	"testing"

	"github.com/docrisk/docrisk/internal/config"
	"github.com/docrisk/docrisk/internal/model"
)

func floatPtr(v float64) *float64 { return &v }

// scoredResult builds and scores a one-page result with the given features.
func scoredResult(t *testing.T, cfg *config.Config, text model.TextFeatures, visual model.VisualFeatures) *model.AnalysisResult {
	t.Helper()

	result := model.NewAnalysisResult("test-document")
	result.PageCount = 1
	result.Text = text
	result.Visual = visual

	NewScorer(cfg).Score(result)
	return result
}

func TestScorerTextRisk(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()

	t.Run("keyword weights multiply occurrence counts", func(t *testing.T) {
		t.Parallel()

		result := scoredResult(t, cfg, model.TextFeatures{
			KeywordCounts: map[string]int{"termination": 1, "penalty": 1},
		}, model.VisualFeatures{})

		// termination 6 + penalty 8.
		if result.TextRisk != 14 {
			t.Errorf("TextRisk = %v, want 14", result.TextRisk)
		}
	})

	t.Run("language points cap at 60", func(t *testing.T) {
		t.Parallel()

		result := scoredResult(t, cfg, model.TextFeatures{
			KeywordCounts: map[string]int{"liability": 100},
		}, model.VisualFeatures{})

		if result.TextRisk != 60 {
			t.Errorf("TextRisk = %v, want 60", result.TextRisk)
		}
	})

	t.Run("monetary exposure saturates at the ceiling", func(t *testing.T) {
		t.Parallel()

		result := scoredResult(t, cfg, model.TextFeatures{
			Amounts: []model.MonetaryAmount{
				{Raw: "$5M", Value: 5_000_000, Currency: "USD"},
			},
		}, model.VisualFeatures{})

		// 5M is far past the 1M ceiling; the monetary channel maxes at 40.
		if result.TextRisk != 40 {
			t.Errorf("TextRisk = %v, want 40", result.TextRisk)
		}
	})

	t.Run("clause matches add points", func(t *testing.T) {
		t.Parallel()

		result := scoredResult(t, cfg, model.TextFeatures{
			ClauseMatches: []string{"unlimited liability", "personal guarantee"},
		}, model.VisualFeatures{})

		if result.TextRisk != 20 {
			t.Errorf("TextRisk = %v, want 20", result.TextRisk)
		}
	})

	t.Run("saturated channels stay within 100", func(t *testing.T) {
		t.Parallel()

		result := scoredResult(t, cfg, model.TextFeatures{
			KeywordCounts: map[string]int{"liability": 100, "penalty": 100},
			Amounts: []model.MonetaryAmount{
				{Raw: "$99M", Value: 99_000_000, Currency: "USD"},
			},
		}, model.VisualFeatures{})

		if result.TextRisk != 100 {
			t.Errorf("TextRisk = %v, want 100", result.TextRisk)
		}
	})
}

func TestScorerVisualRisk(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()

	t.Run("missing signature dominates", func(t *testing.T) {
		t.Parallel()

		result := scoredResult(t, cfg, model.TextFeatures{}, model.VisualFeatures{
			PagesAnalyzed:     1,
			LayoutConsistency: floatPtr(1.0),
		})

		if result.VisualRisk != 40 {
			t.Errorf("VisualRisk = %v, want 40", result.VisualRisk)
		}
	})

	t.Run("decreasing layout consistency never lowers the score", func(t *testing.T) {
		t.Parallel()

		prev := -1.0
		for _, layout := range []float64{1.0, 0.8, 0.6, 0.4, 0.2, 0.0} {
			result := scoredResult(t, cfg, model.TextFeatures{}, model.VisualFeatures{
				PagesAnalyzed:     1,
				SignatureCount:    1,
				LayoutConsistency: floatPtr(layout),
			})
			if result.VisualRisk < prev {
				t.Errorf("VisualRisk = %v at layout %v, below previous %v",
					result.VisualRisk, layout, prev)
			}
			prev = result.VisualRisk
		}
	})

	t.Run("undefined layout contributes nothing", func(t *testing.T) {
		t.Parallel()

		result := scoredResult(t, cfg, model.TextFeatures{}, model.VisualFeatures{
			PagesAnalyzed:  1,
			SignatureCount: 1,
		})

		if result.VisualRisk != 0 {
			t.Errorf("VisualRisk = %v, want 0", result.VisualRisk)
		}
	})

	t.Run("all signals stay within 100", func(t *testing.T) {
		t.Parallel()

		result := scoredResult(t, cfg, model.TextFeatures{}, model.VisualFeatures{
			PagesAnalyzed:     1,
			StampCount:        5,
			LayoutConsistency: floatPtr(0.0),
		})

		// 40 + 20 + 30 = 90.
		if result.VisualRisk != 90 {
			t.Errorf("VisualRisk = %v, want 90", result.VisualRisk)
		}
	})
}

func TestScorerTiers(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	scorer := NewScorer(cfg)

	tests := []struct {
		name    string
		overall float64
		want    model.RiskTier
	}{
		{name: "zero is low", overall: 0, want: model.TierLow},
		{name: "just under low threshold", overall: 39.9, want: model.TierLow},
		{name: "at low threshold is medium", overall: 40, want: model.TierMedium},
		{name: "at high threshold is medium", overall: 70, want: model.TierMedium},
		{name: "just over high threshold", overall: 70.1, want: model.TierHigh},
		{name: "maximum is high", overall: 100, want: model.TierHigh},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := scorer.tier(tt.overall); got != tt.want {
				t.Errorf("tier(%v) = %v, want %v", tt.overall, got, tt.want)
			}
		})
	}
}

func TestScorerZeroPages(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	result := model.NewAnalysisResult("empty-document")
	result.PageCount = 0

	NewScorer(cfg).Score(result)

	if result.Tier != model.TierUnanalyzable {
		t.Errorf("Tier = %v, want %v", result.Tier, model.TierUnanalyzable)
	}
	if result.OverallRisk != 0 {
		t.Errorf("OverallRisk = %v, want 0", result.OverallRisk)
	}
	if len(result.Findings) != 1 || result.Findings[0].Type != "document_unreadable" {
		t.Fatalf("Findings = %+v, want single document_unreadable", result.Findings)
	}
	if result.Findings[0].Severity != model.SeverityHigh {
		t.Errorf("Severity = %v, want %v", result.Findings[0].Severity, model.SeverityHigh)
	}
}

func TestScorerContractScenario(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()

	// One page mentioning termination and a penalty of $5M, with a present
	// signature and heavily irregular layout.
	result := scoredResult(t, cfg, model.TextFeatures{
		KeywordCounts: map[string]int{"termination": 1, "penalty": 1},
		Amounts: []model.MonetaryAmount{
			{Raw: "$5M", Value: 5_000_000, Currency: "USD"},
		},
	}, model.VisualFeatures{
		PagesAnalyzed:     1,
		SignatureCount:    1,
		LayoutConsistency: floatPtr(0.0),
	})

	// Text 14 + 40 = 54, visual 30, fused 42.
	if result.TextRisk != 54 {
		t.Errorf("TextRisk = %v, want 54", result.TextRisk)
	}
	if result.VisualRisk != 30 {
		t.Errorf("VisualRisk = %v, want 30", result.VisualRisk)
	}
	if result.OverallRisk != 42 {
		t.Errorf("OverallRisk = %v, want 42", result.OverallRisk)
	}
	if result.Tier != model.TierMedium {
		t.Errorf("Tier = %v, want %v", result.Tier, model.TierMedium)
	}

	t.Run("same document without a signature scores higher", func(t *testing.T) {
		t.Parallel()

		unsigned := scoredResult(t, cfg, result.Text, model.VisualFeatures{
			PagesAnalyzed:     1,
			LayoutConsistency: floatPtr(0.0),
		})

		if unsigned.OverallRisk <= result.OverallRisk {
			t.Errorf("unsigned OverallRisk = %v, want above %v",
				unsigned.OverallRisk, result.OverallRisk)
		}
	})
}

func TestScorerFindingsOrder(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()

	result := scoredResult(t, cfg, model.TextFeatures{
		KeywordCounts: map[string]int{"liability": 1},
		ClauseMatches: []string{"unlimited liability"},
		Amounts: []model.MonetaryAmount{
			{Raw: "$2M", Value: 2_000_000, Currency: "USD"},
		},
	}, model.VisualFeatures{
		PagesAnalyzed:     1,
		StampCount:        3,
		LayoutConsistency: floatPtr(0.2),
		EditorTraces:      []string{"page 1: GIMP"},
	})

	want := []string{
		"no_signature",
		"high_monetary_exposure",
		"layout_irregular",
		"excess_stamps",
		"risk_keywords",
		"clause_pattern",
		"image_editor_trace",
	}

	if len(result.Findings) != len(want) {
		t.Fatalf("got %d findings, want %d: %+v", len(result.Findings), len(want), result.Findings)
	}
	for i, findingType := range want {
		if result.Findings[i].Type != findingType {
			t.Errorf("finding[%d].Type = %q, want %q", i, result.Findings[i].Type, findingType)
		}
	}

	t.Run("identical input produces identical findings", func(t *testing.T) {
		t.Parallel()

		again := scoredResult(t, cfg, result.Text, result.Visual)
		for i := range result.Findings {
			if again.Findings[i] != result.Findings[i] {
				t.Errorf("finding[%d] differs between runs: %+v vs %+v",
					i, again.Findings[i], result.Findings[i])
			}
		}
	})
}

func TestScorerHeavyLanguageEscalation(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()

	result := scoredResult(t, cfg, model.TextFeatures{
		KeywordCounts: map[string]int{"liability": 3, "penalty": 3},
	}, model.VisualFeatures{PagesAnalyzed: 1, SignatureCount: 1})

	// 48 language points pass the warning threshold.
	found := false
	for _, f := range result.Findings {
		if f.Type == "heavy_risk_language" {
			found = true
			if f.Severity != model.SeverityWarning {
				t.Errorf("Severity = %v, want %v", f.Severity, model.SeverityWarning)
			}
		}
		if f.Type == "risk_keywords" {
			t.Error("risk_keywords emitted alongside heavy_risk_language")
		}
	}
	if !found {
		t.Error("heavy_risk_language finding missing")
	}
}
