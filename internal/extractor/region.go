package extractor

import (
	"github.com/docrisk/docrisk/internal/config"
	"github.com/docrisk/docrisk/internal/model"
)

// detectRegions binarizes the page image at the configured ink threshold and
// groups ink pixels into 4-connected regions. Only regions classified as a
// signature or stamp candidate are returned.
//
// Design decision: Flood fill is iterative with an explicit stack. Page
// renders run to millions of pixels, and a recursive fill on a large solid
// region would overflow the goroutine stack long before finishing.
func detectRegions(grid *model.ImageGrid, cfg *config.Config) []model.VisualRegion {
	if grid.Empty() {
		return nil
	}

	w, h := grid.Width, grid.Height
	visited := make([]bool, w*h)
	var regions []model.VisualRegion

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			if visited[idx] || grid.Pix[idx] >= cfg.InkThreshold {
				continue
			}

			region := fillRegion(grid, visited, x, y, cfg.InkThreshold)
			region.Kind = classifyRegion(region, h, cfg)
			if region.Kind != model.RegionNone {
				regions = append(regions, region)
			}
		}
	}

	return regions
}

// fillRegion flood-fills the 4-connected ink region containing (x, y),
// marking every member pixel visited, and returns its geometry.
func fillRegion(grid *model.ImageGrid, visited []bool, x, y int, threshold uint8) model.VisualRegion {
	w, h := grid.Width, grid.Height
	minX, minY, maxX, maxY := x, y, x, y
	area := 0

	stack := [][2]int{{x, y}}
	visited[y*w+x] = true

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		px, py := p[0], p[1]
		area++

		if px < minX {
			minX = px
		}
		if px > maxX {
			maxX = px
		}
		if py < minY {
			minY = py
		}
		if py > maxY {
			maxY = py
		}

		for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			nx, ny := px+d[0], py+d[1]
			if nx < 0 || ny < 0 || nx >= w || ny >= h {
				continue
			}
			nidx := ny*w + nx
			if visited[nidx] || grid.Pix[nidx] >= threshold {
				continue
			}
			visited[nidx] = true
			stack = append(stack, [2]int{nx, ny})
		}
	}

	width := maxX - minX + 1
	height := maxY - minY + 1

	return model.VisualRegion{
		X:           minX,
		Y:           minY,
		Width:       width,
		Height:      height,
		Area:        area,
		AspectRatio: float64(width) / float64(height),
	}
}

// classifyRegion applies the signature and stamp heuristics to a region's
// geometry. A region can satisfy at most one heuristic: the aspect-ratio
// windows (wide strokes vs. near-square) do not overlap for sane
// configurations, and signatures additionally require a lower-half position.
func classifyRegion(r model.VisualRegion, pageHeight int, cfg *config.Config) model.RegionKind {
	centerY := float64(r.Y) + float64(r.Height)/2

	if r.Area >= cfg.SignatureArea.Min && r.Area <= cfg.SignatureArea.Max &&
		r.AspectRatio >= cfg.SignatureAspect.Min && r.AspectRatio <= cfg.SignatureAspect.Max &&
		centerY > float64(pageHeight)/2 {
		return model.RegionSignature
	}

	if r.Area >= cfg.StampArea.Min && r.Area <= cfg.StampArea.Max &&
		r.AspectRatio >= 1-cfg.StampAspectTolerance &&
		r.AspectRatio <= 1+cfg.StampAspectTolerance {
		return model.RegionStamp
	}

	return model.RegionNone
}
