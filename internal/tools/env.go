// Package tools implements the editing tools of the sprite editor and the
// toolbox that routes pointer and key events to the active one.
//
// Tools never own the surface they edit. Every event carries an Env holding
// the surface, the primary and secondary paints and the brush size for the
// duration of that call only.
package tools

import (
	"image"
	"image/color"

	"github.com/example/pixler/internal/ink"
	"github.com/example/pixler/internal/raster"
)

// Button identifies the held mouse button.
type Button int

const (
	ButtonNone Button = iota
	ButtonPrimary
	ButtonSecondary
)

func (b Button) String() string {
	switch b {
	case ButtonPrimary:
		return "primary"
	case ButtonSecondary:
		return "secondary"
	default:
		return "none"
	}
}

// Key is a keyboard command forwarded to the active tool.
type Key int

const (
	KeyNone Key = iota
	// KeyConfirm commits a pending selection (Return).
	KeyConfirm
)

// MouseState is the pointer position in buffer coordinates. It is owned by
// the Toolbox and handed to tools by value.
type MouseState struct {
	Pos    image.Point
	Last   image.Point
	Press  image.Point
	Button Button
}

// Delta is the movement since the previous event.
func (m MouseState) Delta() image.Point { return m.Pos.Sub(m.Last) }

// Paint pairs a colour with the ink used to lay it down.
type Paint struct {
	Color color.RGBA
	Ink   ink.Ink
}

// Listener receives surface notifications. SurfaceChanging fires for every
// incremental change during a drag, SurfaceChanged once when an edit is
// complete.
type Listener interface {
	SurfaceChanging()
	SurfaceChanged()
	ColorPicked(c color.RGBA, b Button)
}

// ListenerFuncs adapts optional functions to a Listener.
type ListenerFuncs struct {
	Changing func()
	Changed  func()
	Picked   func(color.RGBA, Button)
}

func (l ListenerFuncs) SurfaceChanging() {
	if l.Changing != nil {
		l.Changing()
	}
}

func (l ListenerFuncs) SurfaceChanged() {
	if l.Changed != nil {
		l.Changed()
	}
}

func (l ListenerFuncs) ColorPicked(c color.RGBA, b Button) {
	if l.Picked != nil {
		l.Picked(c, b)
	}
}

// Env is what a single event handler may use. Surface may be nil, in which
// case every event is ignored.
type Env struct {
	Surface   *raster.Buffer
	Primary   Paint
	Secondary Paint
	BrushSize int
	Listener  Listener
}

// PaintFor returns the paint bound to b; ok is false when no button is held.
func (e *Env) PaintFor(b Button) (Paint, bool) {
	switch b {
	case ButtonPrimary:
		return e.Primary, true
	case ButtonSecondary:
		return e.Secondary, true
	}
	return Paint{}, false
}

func (e *Env) changing() {
	if e.Listener != nil {
		e.Listener.SurfaceChanging()
	}
}

func (e *Env) changed() {
	if e.Listener != nil {
		e.Listener.SurfaceChanged()
	}
}

func (e *Env) picked(c color.RGBA, b Button) {
	if e.Listener != nil {
		e.Listener.ColorPicked(c, b)
	}
}
