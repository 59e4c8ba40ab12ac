package raster

// Rec. 709 luma coefficients, scaled by 10000.
const (
	lumaR     = 2126
	lumaG     = 7152
	lumaB     = 722
	lumaScale = 10000
)

// Luminance reduces an RGBA raster to a single-channel raster of the same
// dimensions. Alpha is ignored. A Gray raster is already luminance and is
// returned unchanged.
func Luminance(src Raster) Raster {
	if src.format == Gray {
		return src
	}

	n := src.width * src.height
	pix := make([]uint8, n)
	for i := 0; i < n; i++ {
		r := uint32(src.pix[i*4])
		g := uint32(src.pix[i*4+1])
		b := uint32(src.pix[i*4+2])
		pix[i] = uint8((lumaR*r + lumaG*g + lumaB*b) / lumaScale)
	}
	return Raster{width: src.width, height: src.height, format: Gray, pix: pix}
}
