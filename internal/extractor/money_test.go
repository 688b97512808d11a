package extractor

import (
	"math"
	"testing"
)

func TestMoneyParser(t *testing.T) {
	t.Parallel()

	p := newMoneyParser()

	tests := []struct {
		name         string
		text         string
		wantValues   []float64
		wantCurrency []string
	}{
		{
			name:         "magnitude suffix expands",
			text:         "a cap of $1.5M applies",
			wantValues:   []float64{1_500_000},
			wantCurrency: []string{"USD"},
		},
		{
			name:         "thousands separators",
			text:         "payable: $250,000 on signing",
			wantValues:   []float64{250_000},
			wantCurrency: []string{"USD"},
		},
		{
			name:         "iso code with suffix",
			text:         "limited to USD 2.5M overall",
			wantValues:   []float64{2_500_000},
			wantCurrency: []string{"USD"},
		},
		{
			name:         "spelled out magnitude",
			text:         "damages of 3 million dollars",
			wantValues:   []float64{3_000_000},
			wantCurrency: []string{"USD"},
		},
		{
			name:         "symbol with spelled magnitude",
			text:         "up to $2.5 million in fees",
			wantValues:   []float64{2_500_000},
			wantCurrency: []string{"USD"},
		},
		{
			name:         "euro symbol resolves to EUR",
			text:         "a fee of €500 per incident",
			wantValues:   []float64{500},
			wantCurrency: []string{"EUR"},
		},
		{
			name:         "pound symbol resolves to GBP",
			text:         "rent of £1,200 monthly",
			wantValues:   []float64{1200},
			wantCurrency: []string{"GBP"},
		},
		{
			name:         "multiple amounts in document order",
			text:         "first $100, then USD 50K, then 1 million dollars",
			wantValues:   []float64{100, 50_000, 1_000_000},
			wantCurrency: []string{"USD", "USD", "USD"},
		},
		{
			name:         "malformed amount skipped",
			text:         "amount TBD: $-- pending review",
			wantValues:   nil,
			wantCurrency: nil,
		},
		{
			name:         "plain numbers are not amounts",
			text:         "section 5 paragraph 1000",
			wantValues:   nil,
			wantCurrency: nil,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			amounts := p.parse(tt.text)

			if len(amounts) != len(tt.wantValues) {
				t.Fatalf("parse(%q) = %d amounts, want %d: %+v",
					tt.text, len(amounts), len(tt.wantValues), amounts)
			}
			for i, a := range amounts {
				if math.Abs(a.Value-tt.wantValues[i]) > 1e-9 {
					t.Errorf("amount[%d].Value = %v, want %v", i, a.Value, tt.wantValues[i])
				}
				if a.Currency != tt.wantCurrency[i] {
					t.Errorf("amount[%d].Currency = %q, want %q", i, a.Currency, tt.wantCurrency[i])
				}
			}
		})
	}
}

func TestMoneyParserOverlapDedupe(t *testing.T) {
	t.Parallel()

	p := newMoneyParser()

	// "USD 1.5M" must not be counted once by the code pattern and again by
	// a magnitude pattern.
	amounts := p.parse("capped at USD 1.5M total")
	if len(amounts) != 1 {
		t.Fatalf("parse() = %d amounts, want 1: %+v", len(amounts), amounts)
	}
	if amounts[0].Value != 1_500_000 {
		t.Errorf("Value = %v, want 1500000", amounts[0].Value)
	}
}

func TestMoneyParserPreservesRaw(t *testing.T) {
	t.Parallel()

	p := newMoneyParser()

	amounts := p.parse("a penalty of $250,000 applies")
	if len(amounts) != 1 {
		t.Fatalf("parse() = %d amounts, want 1", len(amounts))
	}
	if amounts[0].Raw != "$250,000" {
		t.Errorf("Raw = %q, want %q", amounts[0].Raw, "$250,000")
	}
}
