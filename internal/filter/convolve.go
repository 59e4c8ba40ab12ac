package filter

import (
	"errors"
	"fmt"
	"math"

	"github.com/rm-hull/image-channel-filters/internal/raster"
)

var (
	ErrNotGray       = errors.New("convolution requires a single-channel raster")
	ErrTooSmall      = errors.New("raster too small for kernel")
	ErrShapeMismatch = errors.New("kernel pair sizes differ")
)

// Convolve applies k to the single-channel src and divides each weighted sum
// by divisor before clamping to [0,255] and truncating. Pixels within the
// kernel margin of any edge are clipped, so the output is 2*margin smaller
// than src in each dimension.
func Convolve(src raster.Raster, k Kernel, divisor float64) (raster.Raster, error) {
	if divisor == 0 {
		divisor = 1
	}
	return convolve(src, k.Margin(), func(pix []uint8, stride, x, y int) uint8 {
		return clamp(weightedSum(pix, stride, x, y, k) / divisor)
	})
}

// ConvolvePair applies the gradient kernels gx and gy independently and
// combines the unclamped sums by Euclidean magnitude.
func ConvolvePair(src raster.Raster, gx, gy Kernel) (raster.Raster, error) {
	if gx.Size() != gy.Size() {
		return raster.Raster{}, fmt.Errorf("%w: %d and %d", ErrShapeMismatch, gx.Size(), gy.Size())
	}
	return convolve(src, gx.Margin(), func(pix []uint8, stride, x, y int) uint8 {
		sx := weightedSum(pix, stride, x, y, gx)
		sy := weightedSum(pix, stride, x, y, gy)
		return clamp(math.Round(math.Sqrt(sx*sx + sy*sy)))
	})
}

// Bounds returns the output size of convolving a width x height raster with
// a kernel of the given margin.
func Bounds(width, height, margin int) (int, int, error) {
	if width <= 2*margin || height <= 2*margin {
		return 0, 0, fmt.Errorf("%w: %dx%d needs to exceed %dx%d", ErrTooSmall, width, height, 2*margin, 2*margin)
	}
	return width - 2*margin, height - 2*margin, nil
}

func convolve(src raster.Raster, margin int, fn func(pix []uint8, stride, x, y int) uint8) (raster.Raster, error) {
	if src.Format() != raster.Gray {
		return raster.Raster{}, fmt.Errorf("%w: got %s", ErrNotGray, src.Format())
	}
	w, h, err := Bounds(src.Width(), src.Height(), margin)
	if err != nil {
		return raster.Raster{}, err
	}

	pix := src.Pix()
	stride := src.Width()
	out := make([]uint8, 0, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			// (x, y) is the top-left of the neighbourhood centred on (x+margin, y+margin)
			out = append(out, fn(pix, stride, x, y))
		}
	}
	return raster.NewGray(w, h, out)
}

func weightedSum(pix []uint8, stride, x, y int, k Kernel) float64 {
	var sum float64
	for ky := 0; ky < k.size; ky++ {
		row := (y+ky)*stride + x
		for kx := 0; kx < k.size; kx++ {
			sum += k.weights[ky*k.size+kx] * float64(pix[row+kx])
		}
	}
	return sum
}

func clamp(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
