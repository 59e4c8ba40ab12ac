package filter

import (
	"errors"
	"fmt"
)

var ErrInvalidKernel = errors.New("invalid kernel")

// Kernel is an immutable odd-sided square weight matrix anchored at its centre.
type Kernel struct {
	size    int
	weights []float64
}

func NewKernel(rows [][]float64) (Kernel, error) {
	size := len(rows)
	if size < 3 || size%2 == 0 {
		return Kernel{}, fmt.Errorf("%w: side length %d must be odd and at least 3", ErrInvalidKernel, size)
	}

	weights := make([]float64, 0, size*size)
	for i, row := range rows {
		if len(row) != size {
			return Kernel{}, fmt.Errorf("%w: row %d has %d weights, want %d", ErrInvalidKernel, i, len(row), size)
		}
		weights = append(weights, row...)
	}
	return Kernel{size: size, weights: weights}, nil
}

func mustKernel(rows [][]float64) Kernel {
	k, err := NewKernel(rows)
	if err != nil {
		panic(err)
	}
	return k
}

func (k Kernel) Size() int { return k.size }

// Margin is the border width excluded from a convolution's output.
func (k Kernel) Margin() int { return (k.size - 1) / 2 }

func (k Kernel) At(row, col int) float64 { return k.weights[row*k.size+col] }

func (k Kernel) Sum() float64 {
	var sum float64
	for _, w := range k.weights {
		sum += w
	}
	return sum
}
