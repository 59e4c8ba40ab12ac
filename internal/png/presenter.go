package png

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rm-hull/image-channel-filters/internal/pipeline"
	"github.com/rm-hull/image-channel-filters/internal/raster"
)

// DirPresenter writes each pipeline output to its own file in Dir.
type DirPresenter struct {
	Dir    string
	Format Format
}

func NewDirPresenter(dir string, format Format) (*DirPresenter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &DirPresenter{Dir: dir, Format: format}, nil
}

func (d *DirPresenter) Filename(name pipeline.Name) string {
	return filepath.Join(d.Dir, fmt.Sprintf("%02d-%s.%s", int(name), name.Slug(), d.Format.Ext()))
}

// Present writes to a temporary file first so a reader never sees a
// partially written image.
func (d *DirPresenter) Present(name pipeline.Name, r raster.Raster) error {
	return writeAtomic(d.Dir, d.Filename(name), func(f *os.File) error {
		return Encode(f, r, d.Format)
	})
}

func writeAtomic(dir, filename string, write func(f *os.File) error) error {
	tmpFile, err := os.CreateTemp(dir, "output-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	cleanupTemp := true
	defer func() {
		_ = tmpFile.Close()
		if cleanupTemp {
			_ = os.Remove(tmpFile.Name())
		}
	}()

	if err := write(tmpFile); err != nil {
		return fmt.Errorf("failed to write image to temporary file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file before rename: %w", err)
	}

	if err := os.Rename(tmpFile.Name(), filename); err != nil {
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	cleanupTemp = false // Successfully renamed, don't delete
	return nil
}

// WriteFile writes data atomically to filename.
func WriteFile(filename string, data []byte) error {
	return writeAtomic(filepath.Dir(filename), filename, func(f *os.File) error {
		_, err := f.Write(data)
		return err
	})
}
