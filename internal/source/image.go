package source

import (
	"image"
	"image/color"

	"github.com/docrisk/docrisk/internal/model"
)

// toGrid converts a decoded image into a single-channel intensity grid.
// Color images are reduced to luma with the standard library's grayscale
// conversion.
func toGrid(img image.Image) *model.ImageGrid {
	bounds := img.Bounds()
	grid := model.NewImageGrid(bounds.Dx(), bounds.Dy())
	if grid.Empty() {
		return grid
	}

	// Fast path for images that are already 8-bit grayscale.
	if gray, ok := img.(*image.Gray); ok {
		for y := 0; y < grid.Height; y++ {
			row := gray.Pix[y*gray.Stride : y*gray.Stride+grid.Width]
			copy(grid.Pix[y*grid.Width:(y+1)*grid.Width], row)
		}
		return grid
	}

	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			c := color.GrayModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.Gray)
			grid.Pix[y*grid.Width+x] = c.Y
		}
	}
	return grid
}
