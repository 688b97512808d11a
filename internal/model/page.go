package model

import (
	"encoding/binary"
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// Page represents one rendered page of a document: the text extracted for it
// and the rasterized page image as a grayscale pixel grid.
//
// Pages are produced by a source (see internal/source) and are read-only
// inputs to the extractors. A page with empty text and a blank image is
// valid; it simply contributes zero features.
type Page struct {
	// Index is the 1-based page number within the document.
	Index int `json:"index"`

	// Text is the extracted text of the page. May be empty.
	Text string `json:"-"` // Excluded from JSON; document text may be confidential

	// Image is the grayscale pixel grid of the rendered page.
	// May be a blank placeholder if rasterization partially failed.
	Image *ImageGrid `json:"-"` // Excluded from JSON due to size

	// ImageRaw holds the original encoded image bytes when available.
	// Used for metadata (EXIF) analysis; nil for synthetic or text-only pages.
	ImageRaw []byte `json:"-"`

	// SourcePath is where the page was loaded from, for diagnostics.
	SourcePath string `json:"source_path,omitempty"`
}

// ImageGrid is a single-channel intensity grid. 0 is black ink, 255 is white
// background. Multi-channel source images are converted to luma on load.
type ImageGrid struct {
	// Width is the grid width in pixels.
	Width int

	// Height is the grid height in pixels.
	Height int

	// Pix holds row-major intensities, len = Width*Height.
	Pix []uint8
}

// NewImageGrid creates a blank (all-white) grid of the given dimensions.
// Non-positive dimensions yield an empty grid.
func NewImageGrid(width, height int) *ImageGrid {
	if width <= 0 || height <= 0 {
		return &ImageGrid{}
	}
	pix := make([]uint8, width*height)
	for i := range pix {
		pix[i] = 255
	}
	return &ImageGrid{Width: width, Height: height, Pix: pix}
}

// At returns the intensity at (x, y). Out-of-range coordinates return
// background white so callers need no bounds checks on borders.
func (g *ImageGrid) At(x, y int) uint8 {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return 255
	}
	return g.Pix[y*g.Width+x]
}

// Set writes the intensity at (x, y). Out-of-range coordinates are ignored.
func (g *ImageGrid) Set(x, y int, v uint8) {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return
	}
	g.Pix[y*g.Width+x] = v
}

// Empty reports whether the grid has no pixels at all.
func (g *ImageGrid) Empty() bool {
	return g == nil || g.Width <= 0 || g.Height <= 0
}

// FingerprintPages computes a stable content fingerprint over a page
// sequence. Identical input pages always produce an identical fingerprint,
// which makes the whole pipeline idempotent: the fingerprint doubles as the
// document identifier in results and the history database.
//
// Design decision: We use BLAKE2b rather than SHA-256 because page images
// make the hashed input large and BLAKE2b is considerably faster at the
// same security level.
func FingerprintPages(pages []Page) string {
	h, err := blake2b.New256(nil)
	if err != nil {
		// blake2b.New256 only fails for oversized keys; we pass none.
		panic(err)
	}

	var idx [8]byte
	for _, p := range pages {
		binary.LittleEndian.PutUint64(idx[:], uint64(p.Index)) //nolint:gosec // page index is small and non-negative
		_, _ = h.Write(idx[:])
		_, _ = h.Write([]byte(p.Text))
		if !p.Image.Empty() {
			binary.LittleEndian.PutUint64(idx[:], uint64(p.Image.Width)) //nolint:gosec // dimension is non-negative
			_, _ = h.Write(idx[:])
			_, _ = h.Write(p.Image.Pix)
		}
	}

	return hex.EncodeToString(h.Sum(nil))
}
