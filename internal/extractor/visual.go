package extractor

import (
	"fmt"
	"math"

	"github.com/docrisk/docrisk/internal/config"
	"github.com/docrisk/docrisk/internal/model"
)

// VisualExtractor scans rendered page images for signature and stamp shaped
// ink regions, layout irregularity and editing-software traces. It is safe
// for concurrent use: ExtractPage touches only its own page.
type VisualExtractor struct {
	cfg *config.Config
}

// NewVisualExtractor creates a visual extractor bound to the given
// configuration.
func NewVisualExtractor(cfg *config.Config) *VisualExtractor {
	return &VisualExtractor{cfg: cfg}
}

// ExtractPage analyzes a single page and returns its visual detections.
// A page without a usable image yields empty detections and a nil layout
// score; it never fails.
func (e *VisualExtractor) ExtractPage(page model.Page) model.PageVisual {
	pv := model.PageVisual{PageIndex: page.Index}

	if !page.Image.Empty() {
		pv.Regions = detectRegions(page.Image, e.cfg)
		for _, r := range pv.Regions {
			switch r.Kind {
			case model.RegionSignature:
				pv.SignatureCount++
			case model.RegionStamp:
				pv.StampCount++
			}
		}
		pv.LayoutScore = layoutScore(page.Image, e.cfg.InkThreshold)
	}

	if len(page.ImageRaw) > 0 {
		pv.EditorSoftware = editorSoftware(page.ImageRaw)
	}

	return pv
}

// Aggregate merges per-page detections, already ordered by page index, into
// the document-level visual features.
func (e *VisualExtractor) Aggregate(pages []model.PageVisual) model.VisualFeatures {
	features := model.VisualFeatures{
		PagesAnalyzed: len(pages),
		Pages:         pages,
	}

	var layoutSum float64
	layoutN := 0

	for _, pv := range pages {
		features.SignatureCount += pv.SignatureCount
		features.StampCount += pv.StampCount
		if pv.LayoutScore != nil {
			layoutSum += *pv.LayoutScore
			layoutN++
		}
		if pv.EditorSoftware != "" {
			features.EditorTraces = append(features.EditorTraces,
				fmt.Sprintf("page %d: %s", pv.PageIndex, pv.EditorSoftware))
		}
	}

	// Pages without a layout score are left out of the mean rather than
	// counted as zero; a blank page is not evidence of irregular layout.
	if layoutN > 0 {
		mean := layoutSum / float64(layoutN)
		features.LayoutConsistency = &mean
	}

	return features
}

// layoutScore measures how evenly ink is distributed across the page.
// The page is split into four quadrants; the score is
// 1 - clamp01(stddev/mean) of the quadrant ink densities, so 1.0 means
// perfectly even distribution and 0.0 means all ink bunched in one corner.
//
// Returns nil when the page carries no ink at all: an empty page has no
// layout to judge, which is different from a maximally irregular one.
func layoutScore(grid *model.ImageGrid, threshold uint8) *float64 {
	w, h := grid.Width, grid.Height
	if w < 2 || h < 2 {
		return nil
	}

	midX, midY := w/2, h/2
	var counts [4]float64
	var sizes [4]float64

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			q := 0
			if x >= midX {
				q++
			}
			if y >= midY {
				q += 2
			}
			sizes[q]++
			if grid.Pix[y*w+x] < threshold {
				counts[q]++
			}
		}
	}

	var densities [4]float64
	var mean float64
	for i := range counts {
		densities[i] = counts[i] / sizes[i]
		mean += densities[i]
	}
	mean /= 4

	if mean == 0 {
		return nil
	}

	var variance float64
	for _, d := range densities {
		variance += (d - mean) * (d - mean)
	}
	variance /= 4

	score := 1 - math.Sqrt(variance)/mean
	if score < 0 {
		score = 0
	}
	return &score
}
