package raster

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

var ErrInvalidGeometry = errors.New("invalid raster geometry")

type Format int

const (
	Gray Format = iota
	RGBA
)

func (f Format) Channels() int {
	if f == RGBA {
		return 4
	}
	return 1
}

func (f Format) String() string {
	switch f {
	case Gray:
		return "gray"
	case RGBA:
		return "rgba"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// Raster is an immutable row-major pixel grid. Producers build a new Raster
// rather than mutating one in place.
type Raster struct {
	width  int
	height int
	format Format
	pix    []uint8
}

// NewGray creates a single-channel raster. It takes ownership of pix.
func NewGray(width, height int, pix []uint8) (Raster, error) {
	return newRaster(width, height, Gray, pix)
}

// NewRGBA creates a non-premultiplied four-channel raster. It takes ownership of pix.
func NewRGBA(width, height int, pix []uint8) (Raster, error) {
	return newRaster(width, height, RGBA, pix)
}

func newRaster(width, height int, format Format, pix []uint8) (Raster, error) {
	if width < 0 || height < 0 {
		return Raster{}, fmt.Errorf("%w: negative size %dx%d", ErrInvalidGeometry, width, height)
	}
	if want := width * height * format.Channels(); len(pix) != want {
		return Raster{}, fmt.Errorf("%w: %s %dx%d needs %d samples, got %d",
			ErrInvalidGeometry, format, width, height, want, len(pix))
	}
	return Raster{width: width, height: height, format: format, pix: pix}, nil
}

func (r Raster) Width() int     { return r.width }
func (r Raster) Height() int    { return r.height }
func (r Raster) Format() Format { return r.format }
func (r Raster) Channels() int  { return r.format.Channels() }

// Pix returns a copy of the raw samples.
func (r Raster) Pix() []uint8 {
	out := make([]uint8, len(r.pix))
	copy(out, r.pix)
	return out
}

// GrayAt returns the intensity at (x, y). For RGBA rasters it returns the red sample.
func (r Raster) GrayAt(x, y int) uint8 {
	return r.pix[(y*r.width+x)*r.format.Channels()]
}

func (r Raster) RGBAAt(x, y int) (red, green, blue, alpha uint8) {
	if r.format == Gray {
		v := r.pix[y*r.width+x]
		return v, v, v, 255
	}
	i := (y*r.width + x) * 4
	return r.pix[i], r.pix[i+1], r.pix[i+2], r.pix[i+3]
}

func (r Raster) Equal(other Raster) bool {
	if r.width != other.width || r.height != other.height || r.format != other.format {
		return false
	}
	for i := range r.pix {
		if r.pix[i] != other.pix[i] {
			return false
		}
	}
	return true
}

// FromImage converts any decoded image to an RGBA raster.
func FromImage(img image.Image) Raster {
	b := img.Bounds()
	nrgba := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	if src, ok := img.(*image.NRGBA); ok {
		// copy rows directly; going through premultiplied colour loses
		// precision at low alpha
		for y := 0; y < b.Dy(); y++ {
			off := src.PixOffset(b.Min.X, b.Min.Y+y)
			copy(nrgba.Pix[y*nrgba.Stride:(y+1)*nrgba.Stride], src.Pix[off:off+b.Dx()*4])
		}
	} else {
		draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)
	}
	return Raster{width: b.Dx(), height: b.Dy(), format: RGBA, pix: nrgba.Pix}
}

// Image renders the raster as a standard library image. The returned image
// owns a copy of the samples.
func (r Raster) Image() image.Image {
	rect := image.Rect(0, 0, r.width, r.height)
	if r.format == Gray {
		return &image.Gray{Pix: r.Pix(), Stride: r.width, Rect: rect}
	}
	return &image.NRGBA{Pix: r.Pix(), Stride: r.width * 4, Rect: rect}
}
