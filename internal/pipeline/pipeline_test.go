package pipeline

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/rm-hull/image-channel-filters/internal/filter"
	"github.com/rm-hull/image-channel-filters/internal/raster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func flatImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func patternImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 23 % 256),
				G: uint8(y * 41 % 256),
				B: uint8((x + y) * 17 % 256),
				A: uint8(255 - x%3),
			})
		}
	}
	return img
}

type mockDecoder struct {
	DecodeFunc func(data []byte) (raster.Raster, error)
}

func (m *mockDecoder) Decode(data []byte) (raster.Raster, error) {
	return m.DecodeFunc(data)
}

func assertAll(t *testing.T, r raster.Raster, want ...uint8) {
	t.Helper()
	pix := r.Pix()
	ch := r.Channels()
	require.Len(t, want, ch)
	for i := 0; i < len(pix); i += ch {
		if !assert.Equal(t, want, pix[i:i+ch], "sample %d", i/ch) {
			return
		}
	}
}

func TestRunFlatGrey(t *testing.T) {
	data := encodePNG(t, flatImage(10, 10, color.NRGBA{R: 128, G: 128, B: 128, A: 255}))

	res, err := New(ImageDecoder{}).Run(data)
	require.NoError(t, err)
	require.NotNil(t, res)

	cases := []struct {
		name   Name
		w, h   int
		format raster.Format
		want   []uint8
	}{
		{Original, 10, 10, raster.RGBA, []uint8{128, 128, 128, 255}},
		{Red, 10, 10, raster.RGBA, []uint8{128, 0, 0, 255}},
		{Green, 10, 10, raster.RGBA, []uint8{0, 128, 0, 255}},
		{Blue, 10, 10, raster.RGBA, []uint8{0, 0, 128, 255}},
		{Grayscale, 10, 10, raster.Gray, []uint8{128}},
		{Sobel, 8, 8, raster.Gray, []uint8{0}},
		{Gaussian, 6, 6, raster.Gray, []uint8{128}},
		{Laplacian, 8, 8, raster.Gray, []uint8{128}},
		{LowPass, 6, 6, raster.Gray, []uint8{128}},
	}
	for _, tc := range cases {
		t.Run(tc.name.String(), func(t *testing.T) {
			r := res.Get(tc.name)
			assert.Equal(t, tc.w, r.Width())
			assert.Equal(t, tc.h, r.Height())
			assert.Equal(t, tc.format, r.Format())
			assertAll(t, r, tc.want...)
		})
	}
}

func TestRunDecodeFailure(t *testing.T) {
	t.Run("garbage bytes", func(t *testing.T) {
		res, err := New(ImageDecoder{}).Run([]byte("definitely not an image"))
		assert.ErrorIs(t, err, ErrDecode)
		assert.ErrorIs(t, err, image.ErrFormat)
		assert.Nil(t, res)
	})

	t.Run("empty input", func(t *testing.T) {
		res, err := New(ImageDecoder{}).Run(nil)
		assert.ErrorIs(t, err, ErrDecode)
		assert.Nil(t, res)
	})

	t.Run("truncated png", func(t *testing.T) {
		data := encodePNG(t, patternImage(16, 16))
		res, err := New(ImageDecoder{}).Run(data[:len(data)/2])
		assert.ErrorIs(t, err, ErrDecode)
		assert.Nil(t, res)
	})

	t.Run("decoder error is wrapped", func(t *testing.T) {
		boom := errors.New("boom")
		dec := &mockDecoder{DecodeFunc: func([]byte) (raster.Raster, error) {
			return raster.Raster{}, boom
		}}
		_, err := New(dec).Run([]byte{1})
		assert.ErrorIs(t, err, boom)
		assert.EqualError(t, err, "failed to decode image: boom")
	})
}

func TestRunDegenerateGeometry(t *testing.T) {
	for _, workers := range []int{1, 4} {
		data := encodePNG(t, flatImage(4, 4, color.NRGBA{R: 1, G: 2, B: 3, A: 255}))
		res, err := New(ImageDecoder{}, WithWorkers(workers)).Run(data)
		assert.ErrorIs(t, err, filter.ErrTooSmall)
		assert.Contains(t, err.Error(), "gaussian")
		assert.Nil(t, res)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	data := encodePNG(t, patternImage(23, 17))

	first, err := New(ImageDecoder{}).Run(data)
	require.NoError(t, err)
	second, err := New(ImageDecoder{}).Run(data)
	require.NoError(t, err)
	pooled, err := New(ImageDecoder{}, WithWorkers(3)).Run(data)
	require.NoError(t, err)

	for _, name := range Names() {
		assert.True(t, first.Get(name).Equal(second.Get(name)), name.String())
		assert.True(t, first.Get(name).Equal(pooled.Get(name)), name.String())
	}
}

func TestRunPreservesAlpha(t *testing.T) {
	res, err := New(ImageDecoder{}).Run(encodePNG(t, patternImage(8, 8)))
	require.NoError(t, err)

	orig := res.Get(Original)
	for _, name := range []Name{Red, Green, Blue} {
		out := res.Get(name)
		for y := 0; y < 8; y++ {
			for x := 0; x < 8; x++ {
				_, _, _, a := orig.RGBAAt(x, y)
				_, _, _, oa := out.RGBAAt(x, y)
				assert.Equal(t, a, oa)
			}
		}
	}
}

func TestRunDecodesJPEG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, patternImage(12, 9), &jpeg.Options{Quality: 90}))

	res, err := New(ImageDecoder{}).Run(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 12, res.Get(Original).Width())
	assert.Equal(t, 9, res.Get(Original).Height())
	assert.Equal(t, 8, res.Get(Gaussian).Width())
	assert.Equal(t, 5, res.Get(Gaussian).Height())
}

func TestResultPresent(t *testing.T) {
	res, err := New(ImageDecoder{}).Run(encodePNG(t, patternImage(6, 6)))
	require.NoError(t, err)

	t.Run("presents all outputs in order", func(t *testing.T) {
		var seen []Name
		err := res.Present(PresenterFunc(func(name Name, r raster.Raster) error {
			seen = append(seen, name)
			assert.True(t, r.Equal(res.Get(name)))
			return nil
		}))
		assert.NoError(t, err)
		assert.Equal(t, Names(), seen)
		assert.Len(t, seen, 9)
	})

	t.Run("stops at first error", func(t *testing.T) {
		calls := 0
		err := res.Present(PresenterFunc(func(name Name, _ raster.Raster) error {
			calls++
			if name == Blue {
				return errors.New("disk full")
			}
			return nil
		}))
		assert.EqualError(t, err, "failed to present Blue: disk full")
		assert.Equal(t, 4, calls)
	})
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"Original", "Red", "Green", "Blue", "Grayscale", "Sobel", "Gaussian", "Laplacian", "Low-Pass"},
		func() []string {
			var out []string
			for _, n := range Names() {
				out = append(out, n.String())
			}
			return out
		}())

	for _, n := range Names() {
		parsed, err := ParseName(n.Slug())
		require.NoError(t, err)
		assert.Equal(t, n, parsed)
	}

	_, err := ParseName("sepia")
	assert.ErrorIs(t, err, ErrUnknownName)
	assert.Equal(t, "name(42)", Name(42).String())
}

func TestRunJobsReportsEarliestError(t *testing.T) {
	first := errors.New("first")
	second := errors.New("second")
	ok := func() (raster.Raster, error) { return raster.Raster{}, nil }
	jobs := []job{
		{Original, ok},
		{Red, func() (raster.Raster, error) { return raster.Raster{}, first }},
		{Green, ok},
		{Blue, func() (raster.Raster, error) { return raster.Raster{}, second }},
	}

	for _, workers := range []int{1, 2, 8} {
		_, err := runJobs(jobs, workers)
		assert.ErrorIs(t, err, first)
	}
}
