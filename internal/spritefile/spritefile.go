// Package spritefile reads and writes sprites as PNG files.
package spritefile

import (
	"fmt"
	"image/png"
	"log"
	"os"
	"path/filepath"

	"github.com/example/pixler/internal/raster"
)

// Load decodes the PNG at path.
func Load(path string) (*raster.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("error closing %q: %v", f.Name(), err)
		}
	}()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return raster.FromImage(img), nil
}

// Save writes b to path as PNG. The file is written next to path and
// renamed into place so a failed encode never truncates an existing sprite.
func Save(path string, b *raster.Buffer) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".pixler-*.png")
	if err != nil {
		return err
	}
	if err := png.Encode(tmp, b.Image()); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return nil
}

// LoadOrNew loads path, or returns a transparent width x height sprite when
// the file does not exist yet.
func LoadOrNew(path string, width, height int) (*raster.Buffer, error) {
	b, err := Load(path)
	if os.IsNotExist(err) {
		if width < 1 || height < 1 {
			return nil, fmt.Errorf("%s does not exist and no size was given", path)
		}
		return raster.NewBuffer(width, height), nil
	}
	return b, err
}
