package pipeline

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/rm-hull/image-channel-filters/internal/raster"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Decoder turns encoded image bytes into an RGBA raster.
type Decoder interface {
	Decode(data []byte) (raster.Raster, error)
}

// ImageDecoder sniffs the container format using the registered image
// decoders: JPEG, PNG, GIF, BMP, TIFF and WebP.
type ImageDecoder struct{}

func (ImageDecoder) Decode(data []byte) (raster.Raster, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return raster.Raster{}, err
	}
	return raster.FromImage(img), nil
}
