package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rm-hull/image-channel-filters/internal"
	"github.com/rm-hull/image-channel-filters/internal/filter"
	"github.com/rm-hull/image-channel-filters/internal/pipeline"
	"github.com/rm-hull/image-channel-filters/internal/png"
)

type Handlers struct {
	pipeline       *pipeline.Pipeline
	maxUploadBytes int64
	frameDelay     float64
}

func NewHandlers(p *pipeline.Pipeline, cfg internal.Config) *Handlers {
	return &Handlers{
		pipeline:       p,
		maxUploadBytes: cfg.MaxUploadBytes,
		frameDelay:     cfg.FrameDelay,
	}
}

func (h *Handlers) Register(r gin.IRouter) {
	v1 := r.Group("/v1/filters")
	v1.POST("", h.ContactSheet)
	v1.POST("/:name", h.Output)
}

// ContactSheet responds with an animated PNG cycling through all nine outputs.
func (h *Handlers) ContactSheet(c *gin.Context) {
	res, ok := h.run(c)
	if !ok {
		return
	}

	data, err := png.ContactSheet(res, h.frameDelay)
	if err != nil {
		log.Printf("failed to build contact sheet: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build contact sheet"})
		return
	}
	c.Data(http.StatusOK, "image/apng", data)
}

// Output responds with a single named output, as PNG unless ?format=jpeg.
func (h *Handlers) Output(c *gin.Context) {
	name, err := pipeline.ParseName(c.Param("name"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	format, err := png.ParseFormat(c.DefaultQuery("format", string(png.PNG)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, ok := h.run(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, res.Get(name), format); err != nil {
		log.Printf("failed to encode %s: %v", name, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("failed to encode %s", name)})
		return
	}
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

func (h *Handlers) run(c *gin.Context) (*pipeline.Result, bool) {
	body := http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	data, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": fmt.Sprintf("upload exceeds %d bytes", tooLarge.Limit)})
			return nil, false
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return nil, false
	}
	if len(data) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must contain an encoded image"})
		return nil, false
	}

	res, err := h.pipeline.Run(data)
	switch {
	case err == nil:
		return res, true
	case errors.Is(err, pipeline.ErrDecode), errors.Is(err, filter.ErrTooSmall):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		log.Printf("pipeline failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process image"})
	}
	return nil, false
}
