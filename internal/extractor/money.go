package extractor

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/currency"

	"github.com/docrisk/docrisk/internal/model"
)

// moneyParser detects monetary literals in document text and canonicalizes
// them to numeric values with ISO 4217 currency codes.
//
// Three shapes are recognized:
//
//	$1,500,000.50   currency symbol, optional thousands separators
//	USD 2.5M        ISO code with optional magnitude suffix
//	3 million dollars  spelled-out magnitude
//
// Malformed candidates ("$--", "USD ???") simply never match; detection is
// best-effort and never fails the analysis.
type moneyParser struct {
	symbolRe *regexp.Regexp
	codeRe   *regexp.Regexp
	wordRe   *regexp.Regexp
}

// symbolCurrencies maps currency markers to their ISO 4217 units.
var symbolCurrencies = map[string]currency.Unit{
	"$": currency.USD,
	"€": currency.EUR,
	"£": currency.GBP,
	"¥": currency.JPY,
}

// magnitudeSuffixes expands single-letter and spelled-out magnitude markers.
var magnitudeSuffixes = map[string]float64{
	"k":        1e3,
	"m":        1e6,
	"b":        1e9,
	"thousand": 1e3,
	"million":  1e6,
	"billion":  1e9,
}

func newMoneyParser() *moneyParser {
	return &moneyParser{
		symbolRe: regexp.MustCompile(`(?i)[$€£¥]\s?[0-9][0-9,]*(?:\.[0-9]+)?(?:\s?[KMB]\b|\s(?:thousand|million|billion)\b)?`),
		codeRe:   regexp.MustCompile(`(?i)\b(USD|EUR|GBP|JPY)\s?[0-9][0-9,]*(?:\.[0-9]+)?(?:\s?[KMB]\b|\s(?:thousand|million|billion)\b)?`),
		wordRe:   regexp.MustCompile(`(?i)\b[0-9][0-9,]*(?:\.[0-9]+)?\s(thousand|million|billion)(?:\s(?:dollars|euros|pounds|yen))?\b`),
	}
}

// parse returns all monetary amounts in document order. Overlapping matches
// from different patterns are deduplicated in favor of the earlier, longer
// match so "USD 1.5M" is not double-counted by the bare-number pattern.
func (p *moneyParser) parse(text string) []model.MonetaryAmount {
	type span struct {
		start, end int
		amount     model.MonetaryAmount
		ok         bool
	}

	var spans []span
	collect := func(re *regexp.Regexp, parse func(string) (model.MonetaryAmount, bool)) {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			a, ok := parse(text[loc[0]:loc[1]])
			spans = append(spans, span{start: loc[0], end: loc[1], amount: a, ok: ok})
		}
	}

	collect(p.symbolRe, p.parseSymbol)
	collect(p.codeRe, p.parseCode)
	collect(p.wordRe, p.parseWord)

	sort.SliceStable(spans, func(i, j int) bool {
		if spans[i].start != spans[j].start {
			return spans[i].start < spans[j].start
		}
		return spans[i].end > spans[j].end
	})

	var amounts []model.MonetaryAmount
	lastEnd := -1
	for _, s := range spans {
		if s.start < lastEnd {
			continue // overlaps an earlier match
		}
		lastEnd = s.end
		if s.ok {
			amounts = append(amounts, s.amount)
		}
	}

	return amounts
}

func (p *moneyParser) parseSymbol(raw string) (model.MonetaryAmount, bool) {
	symbol := string([]rune(raw)[0])
	unit, ok := symbolCurrencies[symbol]
	if !ok {
		return model.MonetaryAmount{}, false
	}

	rest := strings.TrimSpace(strings.TrimPrefix(raw, symbol))
	value, ok := parseNumber(rest)
	if !ok {
		return model.MonetaryAmount{}, false
	}

	return model.MonetaryAmount{Raw: raw, Value: value, Currency: unit.String()}, true
}

func (p *moneyParser) parseCode(raw string) (model.MonetaryAmount, bool) {
	code := strings.ToUpper(raw[:3])
	unit, err := currency.ParseISO(code)
	if err != nil {
		return model.MonetaryAmount{}, false
	}

	value, ok := parseNumber(strings.TrimSpace(raw[3:]))
	if !ok {
		return model.MonetaryAmount{}, false
	}

	return model.MonetaryAmount{Raw: raw, Value: value, Currency: unit.String()}, true
}

func (p *moneyParser) parseWord(raw string) (model.MonetaryAmount, bool) {
	fields := strings.Fields(strings.ToLower(raw))
	if len(fields) < 2 {
		return model.MonetaryAmount{}, false
	}

	mult, ok := magnitudeSuffixes[fields[1]]
	if !ok {
		return model.MonetaryAmount{}, false
	}

	base, err := strconv.ParseFloat(strings.ReplaceAll(fields[0], ",", ""), 64)
	if err != nil {
		return model.MonetaryAmount{}, false
	}

	unit := currency.USD
	if len(fields) >= 3 {
		switch fields[2] {
		case "euros":
			unit = currency.EUR
		case "pounds":
			unit = currency.GBP
		case "yen":
			unit = currency.JPY
		}
	}

	return model.MonetaryAmount{Raw: raw, Value: base * mult, Currency: unit.String()}, true
}

// parseNumber parses a digit string with optional thousands separators and
// an optional magnitude suffix, either single-letter ("1.5M") or spelled
// out ("1.5 million").
func parseNumber(s string) (float64, bool) {
	mult := 1.0
	lower := strings.ToLower(s)
	for _, word := range []string{"thousand", "million", "billion"} {
		if strings.HasSuffix(lower, word) {
			mult = magnitudeSuffixes[word]
			s = strings.TrimSpace(s[:len(s)-len(word)])
			break
		}
	}
	if mult == 1.0 && len(s) > 0 {
		if m, ok := magnitudeSuffixes[strings.ToLower(s[len(s)-1:])]; ok {
			mult = m
			s = strings.TrimSpace(s[:len(s)-1])
		}
	}

	value, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, false
	}

	return value * mult, true
}
