// Package clipboard moves sprites and colours between the editor and the
// system clipboard. Sprites travel as PNG, colours as "#rrggbbaa" text.
package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"image/png"
	"os"
	"strings"

	"github.com/example/pixler/internal/raster"
	"github.com/example/pixler/internal/theme"
)

var (
	errNoDisplay = errors.New("clipboard initialization requires DISPLAY or WAYLAND_DISPLAY")
	errNoImage   = errors.New("clipboard does not contain image data")
	errNoText    = errors.New("clipboard does not contain text data")
)

func hasDisplay() bool {
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}

// WriteSprite publishes b as a PNG image.
func WriteSprite(b *raster.Buffer) error {
	data, err := encodeSprite(b)
	if err != nil {
		return err
	}
	return writeImage(data)
}

// ReadSprite decodes the PNG image on the clipboard.
func ReadSprite() (*raster.Buffer, error) {
	data, err := readImage()
	if err != nil {
		return nil, err
	}
	return decodeSprite(data)
}

// WriteColor publishes c as hex text.
func WriteColor(c color.RGBA) error {
	return writeText(theme.Hex(c))
}

// ReadColor parses the clipboard text as a colour. Any form accepted by
// theme.ParseColor works, so "#f00" and "teal" are both fine.
func ReadColor() (color.RGBA, error) {
	text, err := readText()
	if err != nil {
		return color.RGBA{}, err
	}
	return decodeColor(text)
}

func encodeSprite(b *raster.Buffer) ([]byte, error) {
	if b == nil || b.Bounds().Empty() {
		return nil, fmt.Errorf("nothing to copy")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, b.Image()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeSprite(data []byte) (*raster.Buffer, error) {
	if len(data) == 0 {
		return nil, errNoImage
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode clipboard image: %w", err)
	}
	return raster.FromImage(img), nil
}

func decodeColor(text string) (color.RGBA, error) {
	// Some X11 owners append a NUL to STRING targets.
	text = strings.TrimSpace(strings.TrimRight(text, "\x00"))
	if text == "" {
		return color.RGBA{}, errNoText
	}
	c, err := theme.ParseColor(text)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("clipboard text %q: %w", text, err)
	}
	return c, nil
}
