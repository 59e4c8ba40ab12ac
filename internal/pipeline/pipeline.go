package pipeline

import (
	"errors"
	"fmt"

	"github.com/rm-hull/image-channel-filters/internal/filter"
	"github.com/rm-hull/image-channel-filters/internal/raster"
)

var (
	ErrDecode      = errors.New("failed to decode image")
	ErrUnknownName = errors.New("unknown output name")
)

// Name identifies one of the nine pipeline outputs.
type Name int

const (
	Original Name = iota
	Red
	Green
	Blue
	Grayscale
	Sobel
	Gaussian
	Laplacian
	LowPass
	numNames
)

var titles = [numNames]string{"Original", "Red", "Green", "Blue", "Grayscale", "Sobel", "Gaussian", "Laplacian", "Low-Pass"}
var slugs = [numNames]string{"original", "red", "green", "blue", "grayscale", "sobel", "gaussian", "laplacian", "low-pass"}

// Names returns every output name in presentation order.
func Names() []Name {
	names := make([]Name, numNames)
	for i := range names {
		names[i] = Name(i)
	}
	return names
}

func ParseName(slug string) (Name, error) {
	for i, s := range slugs {
		if s == slug {
			return Name(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownName, slug)
}

func (n Name) String() string {
	if n >= 0 && n < numNames {
		return titles[n]
	}
	return fmt.Sprintf("name(%d)", int(n))
}

// Slug is the lower-case form used in file names and URLs.
func (n Name) Slug() string {
	if n >= 0 && n < numNames {
		return slugs[n]
	}
	return fmt.Sprintf("name-%d", int(n))
}

// Presenter receives the pipeline outputs, e.g. to display or persist them.
type Presenter interface {
	Present(name Name, r raster.Raster) error
}

type PresenterFunc func(name Name, r raster.Raster) error

func (f PresenterFunc) Present(name Name, r raster.Raster) error {
	return f(name, r)
}

type Result struct {
	rasters [numNames]raster.Raster
}

func (r *Result) Get(name Name) raster.Raster {
	return r.rasters[name]
}

// Present hands every output to p in presentation order, stopping at the
// first error.
func (r *Result) Present(p Presenter) error {
	for _, name := range Names() {
		if err := p.Present(name, r.rasters[name]); err != nil {
			return fmt.Errorf("failed to present %s: %w", name, err)
		}
	}
	return nil
}

type Pipeline struct {
	decoder Decoder
	workers int
}

type Option func(*Pipeline)

// WithWorkers computes the outputs on n goroutines. The outputs are
// independent, so the result does not depend on n.
func WithWorkers(n int) Option {
	return func(p *Pipeline) {
		p.workers = n
	}
}

func New(decoder Decoder, opts ...Option) *Pipeline {
	p := &Pipeline{decoder: decoder, workers: 1}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run decodes data once and derives all nine outputs. Either every output is
// computed or an error is returned with no result.
func (p *Pipeline) Run(data []byte) (*Result, error) {
	rgba, err := p.decoder.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	gray := raster.Luminance(rgba)

	jobs := []job{
		{Original, func() (raster.Raster, error) { return rgba, nil }},
		{Red, isolate(rgba, raster.Red)},
		{Green, isolate(rgba, raster.Green)},
		{Blue, isolate(rgba, raster.Blue)},
		{Grayscale, func() (raster.Raster, error) { return gray, nil }},
		{Sobel, apply(filter.Sobel, gray)},
		{Gaussian, apply(filter.Gaussian, gray)},
		{Laplacian, apply(filter.Laplacian, gray)},
		{LowPass, apply(filter.LowPass, gray)},
	}

	outputs, err := runJobs(jobs, p.workers)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	for _, o := range outputs {
		res.rasters[o.name] = o.raster
	}
	return res, nil
}

func isolate(src raster.Raster, c raster.Channel) func() (raster.Raster, error) {
	return func() (raster.Raster, error) {
		return raster.Isolate(src, c), nil
	}
}

func apply(f filter.Filter, gray raster.Raster) func() (raster.Raster, error) {
	return func() (raster.Raster, error) {
		return f.Apply(gray)
	}
}
