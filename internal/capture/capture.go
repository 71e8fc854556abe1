// Package capture imports pixels from the X11 screen: a region becomes a
// new sprite and the pixel under the pointer can be sampled as a colour.
package capture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"

	"github.com/example/pixler/internal/raster"
)

// ErrNoDisplay is returned when no X server can be reached.
var ErrNoDisplay = errors.New("no X display available")

var errNoMonitors = errors.New("no monitors available")

// MonitorInfo describes an individual monitor in the display layout.
type MonitorInfo struct {
	Index   int
	Name    string
	Rect    image.Rectangle
	Primary bool
}

type platformBackend interface {
	// Grab returns the pixels of rect in root window coordinates. The
	// result may be smaller when rect extends past the screen.
	Grab(rect image.Rectangle) (*image.RGBA, error)
	Pointer() (image.Point, error)
	Monitors() ([]MonitorInfo, error)
}

var backend platformBackend = x11Backend{}

// Region grabs rect from the screen as a sprite.
func Region(rect image.Rectangle) (*raster.Buffer, error) {
	rect = rect.Canon()
	if rect.Empty() {
		return nil, fmt.Errorf("capture region %v: region is empty", rect)
	}
	img, err := backend.Grab(rect)
	if err != nil {
		return nil, fmt.Errorf("capture region %v: %w", rect, err)
	}
	return raster.FromImage(img), nil
}

// Monitor grabs a whole monitor chosen by selector (see FindMonitor).
func Monitor(selector string) (*raster.Buffer, error) {
	monitors, err := backend.Monitors()
	if err != nil {
		return nil, fmt.Errorf("capture monitor %q: %w", selector, err)
	}
	mon, err := FindMonitor(monitors, selector)
	if err != nil {
		return nil, err
	}
	return Region(mon.Rect)
}

// ListMonitors returns the connected monitors.
func ListMonitors() ([]MonitorInfo, error) {
	return backend.Monitors()
}

// ColorAtPointer samples the screen pixel under the mouse pointer.
func ColorAtPointer() (color.RGBA, image.Point, error) {
	at, err := backend.Pointer()
	if err != nil {
		return color.RGBA{}, image.Point{}, fmt.Errorf("query pointer: %w", err)
	}
	img, err := backend.Grab(image.Rect(at.X, at.Y, at.X+1, at.Y+1))
	if err != nil {
		return color.RGBA{}, at, fmt.Errorf("sample %v: %w", at, err)
	}
	if img.Bounds().Empty() {
		return color.RGBA{}, at, fmt.Errorf("sample %v: outside the screen", at)
	}
	return img.RGBAAt(img.Bounds().Min.X, img.Bounds().Min.Y), at, nil
}

// FindMonitor picks a monitor by "primary", index ("1" or "#1") or a
// case-insensitive name fragment. An empty selector picks the first.
func FindMonitor(monitors []MonitorInfo, selector string) (MonitorInfo, error) {
	if len(monitors) == 0 {
		return MonitorInfo{}, errNoMonitors
	}
	lower := strings.ToLower(strings.TrimSpace(selector))
	switch lower {
	case "":
		return monitors[0], nil
	case "primary":
		for _, mon := range monitors {
			if mon.Primary {
				return mon, nil
			}
		}
		return monitors[0], nil
	}
	if idx, err := strconv.Atoi(strings.TrimPrefix(lower, "#")); err == nil {
		if idx < 0 || idx >= len(monitors) {
			return MonitorInfo{}, fmt.Errorf("monitor index %d out of range", idx)
		}
		return monitors[idx], nil
	}
	for _, mon := range monitors {
		if strings.Contains(strings.ToLower(mon.Name), lower) {
			return mon, nil
		}
	}
	return MonitorInfo{}, fmt.Errorf("monitor %q not found", selector)
}
