package png

import (
	"image"

	"golang.org/x/image/draw"
)

// Resample scales img to fill bounds using Catmull-Rom interpolation. Images
// already of the target size are copied without interpolation.
func Resample(img image.Image, bounds image.Rectangle) *image.NRGBA {
	out := image.NewNRGBA(bounds)
	if img.Bounds().Size() == bounds.Size() {
		draw.Draw(out, bounds, img, img.Bounds().Min, draw.Src)
		return out
	}
	draw.CatmullRom.Scale(out, bounds, img, img.Bounds(), draw.Src, nil)
	return out
}
