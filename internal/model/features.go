package model

// TextFeatures holds the structured risk evidence extracted from the
// document text. It is produced once per document over the concatenated
// text of all pages.
type TextFeatures struct {
	// KeywordCounts maps each matched risk keyword to its occurrence count.
	// Matching is case-insensitive and whole-word; counts are always >= 1
	// for present keys.
	KeywordCounts map[string]int `json:"keyword_counts,omitempty"`

	// ClauseMatches lists high-risk clause patterns that matched, in the
	// order the patterns are configured. Each entry appears at most once.
	ClauseMatches []string `json:"clause_matches,omitempty"`

	// Amounts lists detected monetary amounts in document order.
	Amounts []MonetaryAmount `json:"amounts,omitempty"`

	// WordCount is the number of whitespace-separated tokens.
	WordCount int `json:"word_count"`

	// PageCount is the number of pages the text was drawn from.
	PageCount int `json:"page_count"`
}

// TotalKeywordHits returns the sum of all keyword occurrence counts.
func (t *TextFeatures) TotalKeywordHits() int {
	total := 0
	for _, c := range t.KeywordCounts {
		total += c
	}
	return total
}

// TotalAmount returns the sum of all parsed monetary values.
func (t *TextFeatures) TotalAmount() float64 {
	var total float64
	for _, a := range t.Amounts {
		total += a.Value
	}
	return total
}

// MonetaryAmount is a single detected monetary literal.
// The raw string is preserved verbatim for reporting while the parsed
// value is used for risk comparisons.
type MonetaryAmount struct {
	// Raw is the matched text exactly as it appeared in the document.
	Raw string `json:"raw"`

	// Value is the canonical numeric value with magnitude suffixes
	// expanded ("$1.5M" -> 1500000).
	Value float64 `json:"value"`

	// Currency is the ISO 4217 code resolved from the currency marker
	// ("$" -> "USD"). Amounts written with magnitude words and no marker
	// default to USD.
	Currency string `json:"currency"`
}

// RegionKind classifies a detected ink region.
type RegionKind int

const (
	// RegionNone marks a region matching neither heuristic. Such regions
	// are discarded after detection.
	RegionNone RegionKind = iota

	// RegionSignature marks a region shaped and placed like a handwritten
	// signature (wide, mid-sized, lower half of the page).
	RegionSignature

	// RegionStamp marks a roughly square region sized like an official
	// stamp or seal.
	RegionStamp
)

// String returns a human-readable representation of the region kind.
func (k RegionKind) String() string {
	switch k {
	case RegionSignature:
		return "signature"
	case RegionStamp:
		return "stamp"
	default:
		return "none"
	}
}

// VisualRegion is a connected cluster of ink pixels with its geometry.
// Regions exist only during per-page analysis and aggregation; they are
// never persisted.
type VisualRegion struct {
	// X, Y are the top-left corner of the bounding box.
	X int `json:"x"`
	Y int `json:"y"`

	// Width and Height are the bounding box dimensions.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Area is the number of ink pixels in the region.
	Area int `json:"area"`

	// AspectRatio is Width / Height of the bounding box.
	AspectRatio float64 `json:"aspect_ratio"`

	// Kind is the heuristic classification of the region.
	Kind RegionKind `json:"kind"`
}

// PageVisual holds the per-page visual detections. The page index is kept
// so concurrent extraction can merge results in page order regardless of
// completion order.
type PageVisual struct {
	// PageIndex is the 1-based index of the analyzed page.
	PageIndex int `json:"page_index"`

	// Regions are the classified regions found on the page. Regions with
	// RegionNone are already filtered out.
	Regions []VisualRegion `json:"regions,omitempty"`

	// SignatureCount is the number of signature-candidate regions.
	SignatureCount int `json:"signature_count"`

	// StampCount is the number of stamp-candidate regions.
	StampCount int `json:"stamp_count"`

	// LayoutScore is the layout-consistency score in [0,1] for this page.
	// Nil means the page yielded no score (no ink, or no image); nil is
	// deliberately distinct from 0, which would mean "maximally irregular".
	LayoutScore *float64 `json:"layout_score,omitempty"`

	// EditorSoftware is the image-editing software named in the page
	// image's EXIF metadata, if any.
	EditorSoftware string `json:"editor_software,omitempty"`
}

// VisualFeatures is the document-level aggregate of per-page visual
// detections.
type VisualFeatures struct {
	// SignatureCount is the total signature-candidate regions across pages.
	SignatureCount int `json:"signature_count"`

	// StampCount is the total stamp-candidate regions across pages.
	StampCount int `json:"stamp_count"`

	// LayoutConsistency is the arithmetic mean of the defined per-page
	// layout scores. Nil when no page produced a score; scoring then
	// proceeds from signature and stamp signals alone.
	LayoutConsistency *float64 `json:"layout_consistency,omitempty"`

	// PagesAnalyzed is the number of pages that contributed to this
	// aggregate.
	PagesAnalyzed int `json:"pages_analyzed"`

	// EditorTraces lists pages whose image metadata named editing
	// software, formatted for display ("page 2: Adobe Photoshop").
	EditorTraces []string `json:"editor_traces,omitempty"`

	// Pages keeps the per-page detections for diagnostics, ordered by
	// page index.
	Pages []PageVisual `json:"pages,omitempty"`
}
