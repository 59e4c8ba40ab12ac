package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/rm-hull/image-channel-filters/internal"
	"github.com/rm-hull/image-channel-filters/internal/pipeline"
	"github.com/rm-hull/image-channel-filters/internal/png"
	"github.com/rm-hull/image-channel-filters/internal/raster"
)

// Process runs the filter pipeline over inFile and writes the nine outputs to
// outDir. With animate set, a contact.png APNG of all outputs is written too.
func Process(inFile, outDir, format string, animate bool) error {
	cfg, err := internal.LoadConfig()
	if err != nil {
		return err
	}

	f, err := png.ParseFormat(format)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(inFile)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", inFile, err)
	}

	startTime := time.Now()
	res, err := pipeline.New(pipeline.ImageDecoder{}, pipeline.WithWorkers(cfg.Workers)).Run(data)
	if err != nil {
		for _, name := range pipeline.Names() {
			log.Printf("Failed to load %s", name)
		}
		return fmt.Errorf("failed to process %s: %w", inFile, err)
	}
	log.Printf("Processed %s in %s", inFile, time.Since(startTime))

	presenter, err := png.NewDirPresenter(outDir, f)
	if err != nil {
		return err
	}

	logging := pipeline.PresenterFunc(func(name pipeline.Name, r raster.Raster) error {
		if err := presenter.Present(name, r); err != nil {
			return err
		}
		log.Printf("Wrote %s (%dx%d) to %s", name, r.Width(), r.Height(), presenter.Filename(name))
		return nil
	})
	if err := res.Present(logging); err != nil {
		return err
	}

	if !animate {
		return nil
	}

	apng, err := png.ContactSheet(res, cfg.FrameDelay)
	if err != nil {
		return fmt.Errorf("failed to build contact sheet: %w", err)
	}
	contact := filepath.Join(outDir, "contact.png")
	if err := png.WriteFile(contact, apng); err != nil {
		return err
	}
	log.Printf("Wrote contact sheet to %s", contact)
	return nil
}
