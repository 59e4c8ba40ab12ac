package raster

import "fmt"

// Channel names one colour channel of an RGBA raster.
type Channel int

const (
	Red Channel = iota
	Green
	Blue
)

func (c Channel) String() string {
	switch c {
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	default:
		return fmt.Sprintf("channel(%d)", int(c))
	}
}

// Isolate returns an RGBA raster keeping only channel c of src; the other
// colour channels are zeroed and alpha is copied verbatim. A Gray source is
// treated as opaque grey.
func Isolate(src Raster, c Channel) Raster {
	pix := make([]uint8, src.width*src.height*4)
	for y := 0; y < src.height; y++ {
		for x := 0; x < src.width; x++ {
			r, g, b, a := src.RGBAAt(x, y)
			i := (y*src.width + x) * 4
			switch c {
			case Red:
				pix[i] = r
			case Green:
				pix[i+1] = g
			case Blue:
				pix[i+2] = b
			}
			pix[i+3] = a
		}
	}
	return Raster{width: src.width, height: src.height, format: RGBA, pix: pix}
}

// Split decomposes src into red-only, green-only and blue-only rasters.
func Split(src Raster) (red, green, blue Raster) {
	return Isolate(src, Red), Isolate(src, Green), Isolate(src, Blue)
}
