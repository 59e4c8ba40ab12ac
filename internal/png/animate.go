package png

import (
	"bytes"
	"errors"
	"image"

	"github.com/kettek/apng"
	"github.com/rm-hull/image-channel-filters/internal/pipeline"
)

// Animate encodes frames as a looping animated PNG, showing each frame for
// frameDelay seconds.
func Animate(frames []image.Image, frameDelay float64) ([]byte, error) {
	if len(frames) == 0 {
		return nil, errors.New("no frames to animate")
	}

	a := apng.APNG{
		Frames:    make([]apng.Frame, len(frames)),
		LoopCount: 0,
	}

	for i, img := range frames {
		a.Frames[i] = apng.Frame{
			Image:            img,
			DelayNumerator:   uint16(frameDelay * 1000),
			DelayDenominator: 1000,
		}
	}

	var buf bytes.Buffer
	if err := apng.Encode(&buf, a); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// ContactSheet animates every pipeline output in presentation order. Cropped
// filter outputs are resampled to the original frame size.
func ContactSheet(res *pipeline.Result, frameDelay float64) ([]byte, error) {
	bounds := res.Get(pipeline.Original).Image().Bounds()

	frames := make([]image.Image, 0, len(pipeline.Names()))
	for _, name := range pipeline.Names() {
		frames = append(frames, Resample(res.Get(name).Image(), bounds))
	}
	return Animate(frames, frameDelay)
}
