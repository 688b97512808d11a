package extractor

import (
	"regexp"
	"strings"

	"github.com/docrisk/docrisk/internal/config"
	"github.com/docrisk/docrisk/internal/model"
)

// TextExtractor scans document text for risk keywords, high-risk clause
// phrases and monetary amounts. It is built once per run from the validated
// configuration and is safe for concurrent use.
//
// Design decision: Every keyword gets its own compiled word-boundary regexp
// instead of a single substring scan. Substring matching over-counts badly
// ("liability" inside "reliability"); \b anchors make each term match whole
// words only, and compiling once up front keeps per-document cost to the
// scans themselves.
type TextExtractor struct {
	keywords []keywordMatcher
	clauses  []clauseMatcher
	money    *moneyParser
}

type keywordMatcher struct {
	term string
	re   *regexp.Regexp
}

type clauseMatcher struct {
	pattern string
	re      *regexp.Regexp
}

// NewTextExtractor compiles the matchers for the configured vocabulary and
// clause patterns.
func NewTextExtractor(cfg *config.Config) *TextExtractor {
	ex := &TextExtractor{
		keywords: make([]keywordMatcher, 0, len(cfg.Vocabulary)),
		clauses:  make([]clauseMatcher, 0, len(cfg.ClausePatterns)),
		money:    newMoneyParser(),
	}

	for _, kw := range cfg.Vocabulary {
		term := strings.ToLower(kw.Term)
		ex.keywords = append(ex.keywords, keywordMatcher{
			term: term,
			re:   regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`),
		})
	}

	for _, p := range cfg.ClausePatterns {
		// Clause phrases tolerate any run of whitespace between words so
		// line-wrapped clauses still match.
		words := strings.Fields(p)
		for i, w := range words {
			words[i] = regexp.QuoteMeta(w)
		}
		ex.clauses = append(ex.clauses, clauseMatcher{
			pattern: p,
			re:      regexp.MustCompile(`(?i)\b` + strings.Join(words, `\s+`) + `\b`),
		})
	}

	return ex
}

// Extract scans the concatenated text of all pages and returns the textual
// risk evidence. Empty text yields a zero-valued feature record, never an
// error.
func (e *TextExtractor) Extract(pages []model.Page) model.TextFeatures {
	var sb strings.Builder
	for i, p := range pages {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(p.Text)
	}
	text := sb.String()

	features := model.TextFeatures{
		PageCount: len(pages),
		WordCount: len(strings.Fields(text)),
	}

	for _, kw := range e.keywords {
		n := len(kw.re.FindAllStringIndex(text, -1))
		if n == 0 {
			continue
		}
		if features.KeywordCounts == nil {
			features.KeywordCounts = make(map[string]int)
		}
		features.KeywordCounts[kw.term] = n
	}

	for _, c := range e.clauses {
		if c.re.MatchString(text) {
			features.ClauseMatches = append(features.ClauseMatches, c.pattern)
		}
	}

	features.Amounts = e.money.parse(text)

	return features
}
