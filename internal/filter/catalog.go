package filter

import (
	"fmt"

	"github.com/rm-hull/image-channel-filters/internal/raster"
)

// Filter is one of the fixed convolution operators.
type Filter int

const (
	Gaussian Filter = iota
	LowPass
	Laplacian
	Sobel
)

// Spec associates a filter with its kernel (or kernel pair) and normaliser.
type Spec struct {
	Name    string
	Kernel  Kernel
	Pair    *Kernel // second gradient kernel; combined by magnitude when set
	Divisor float64
}

// gaussian5 is a binomial approximation of a 5x5 Gaussian; its weights sum to 273.
var gaussian5 = mustKernel([][]float64{
	{1, 4, 7, 4, 1},
	{4, 16, 26, 16, 4},
	{7, 26, 41, 26, 7},
	{4, 16, 26, 16, 4},
	{1, 4, 7, 4, 1},
})

var (
	laplacian3 = mustKernel([][]float64{
		{-1, -1, -1},
		{-1, 9, -1},
		{-1, -1, -1},
	})

	sobelX = mustKernel([][]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	})

	sobelY = mustKernel([][]float64{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	})
)

// LowPass deliberately shares the Gaussian table; both outputs are kept.
var specs = map[Filter]Spec{
	Gaussian:  {Name: "gaussian", Kernel: gaussian5, Divisor: 273},
	LowPass:   {Name: "low-pass", Kernel: gaussian5, Divisor: 273},
	Laplacian: {Name: "laplacian", Kernel: laplacian3, Divisor: 1},
	Sobel:     {Name: "sobel", Kernel: sobelX, Pair: &sobelY},
}

// All returns every filter in presentation order.
func All() []Filter {
	return []Filter{Sobel, Gaussian, Laplacian, LowPass}
}

func (f Filter) Spec() Spec {
	return specs[f]
}

func (f Filter) String() string {
	if s, ok := specs[f]; ok {
		return s.Name
	}
	return fmt.Sprintf("filter(%d)", int(f))
}

// Margin is the number of border pixels the filter clips from each edge.
func (f Filter) Margin() int {
	return specs[f].Kernel.Margin()
}

// Apply runs the filter over a single-channel raster.
func (f Filter) Apply(gray raster.Raster) (raster.Raster, error) {
	s, ok := specs[f]
	if !ok {
		return raster.Raster{}, fmt.Errorf("unknown filter %d", int(f))
	}

	var (
		out raster.Raster
		err error
	)
	if s.Pair != nil {
		out, err = ConvolvePair(gray, s.Kernel, *s.Pair)
	} else {
		out, err = Convolve(gray, s.Kernel, s.Divisor)
	}
	if err != nil {
		return raster.Raster{}, fmt.Errorf("failed to apply %s filter: %w", s.Name, err)
	}
	return out, nil
}
