package png

import (
	"fmt"
	"io"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/rm-hull/image-channel-filters/internal/raster"
)

type Format string

const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
)

const jpegQuality = 95

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "png":
		return PNG, nil
	case "jpeg", "jpg":
		return JPEG, nil
	default:
		return "", fmt.Errorf("unsupported output format %q", s)
	}
}

func (f Format) Ext() string {
	if f == JPEG {
		return "jpg"
	}
	return "png"
}

func (f Format) ContentType() string {
	if f == JPEG {
		return "image/jpeg"
	}
	return "image/png"
}

func (f Format) encoder() imgio.Encoder {
	if f == JPEG {
		return imgio.JPEGEncoder(jpegQuality)
	}
	return imgio.PNGEncoder()
}

// Encode writes r to w in the given format.
func Encode(w io.Writer, r raster.Raster, f Format) error {
	return f.encoder()(w, r.Image())
}
