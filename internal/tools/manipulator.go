package tools

import (
	"image"

	"github.com/example/pixler/internal/raster"
)

const PropCutOnSelect = "cut_on_select"

// ManipulatorState is the phase of a selection or move gesture.
type ManipulatorState int

const (
	StateIdle ManipulatorState = iota
	StateMovingPixels
	StateMovingSelection
	StateSelecting
	// StateScalingSelection is accepted but changes no geometry yet.
	StateScalingSelection
)

func (s ManipulatorState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateMovingPixels:
		return "moving-pixels"
	case StateMovingSelection:
		return "moving-selection"
	case StateSelecting:
		return "selecting"
	case StateScalingSelection:
		return "scaling-selection"
	}
	return "unknown"
}

// Manipulator selects rectangles, lifts them into a floating image, moves
// them and pastes them back. Without a selection a primary drag moves the
// whole surface.
//
// A secondary drag draws the selection. On release the covered pixels are
// copied out; with cut_on_select the source area is cleared by the first
// move. A primary press inside the selection drags it, a primary press
// outside or KeyConfirm pastes it where it lies.
type Manipulator struct {
	props Properties

	state     ManipulatorState
	selection image.Rectangle
	floating  *raster.Buffer
	eraseNext bool
	origin    image.Point
}

func NewManipulator() *Manipulator {
	m := &Manipulator{}
	m.props.Add(NewBool(PropCutOnSelect, "Clear the source area when a selection is first moved", true))
	return m
}

func (m *Manipulator) Kind() Kind              { return KindManipulator }
func (m *Manipulator) Properties() *Properties { return &m.props }

// State is the current gesture phase.
func (m *Manipulator) State() ManipulatorState { return m.state }

// Selection is the selection rectangle in buffer coordinates. It may extend
// past the surface once moved.
func (m *Manipulator) Selection() image.Rectangle { return m.selection }

// HasSelection reports whether a non-empty rectangle is selected.
func (m *Manipulator) HasSelection() bool { return !m.selection.Empty() }

// HasImage reports whether lifted pixels are floating above the surface.
func (m *Manipulator) HasImage() bool { return m.floating != nil }

// Image is the floating image, or nil.
func (m *Manipulator) Image() *raster.Buffer { return m.floating }

func (m *Manipulator) setState(s ManipulatorState) {
	if s != m.state {
		Logger().Debug("manipulator", "from", m.state, "to", s)
	}
	m.state = s
}

func (m *Manipulator) Press(env *Env, ms MouseState) {
	switch ms.Button {
	case ButtonPrimary:
		switch {
		case m.selection.Empty():
			m.setState(StateMovingPixels)
		case ms.Pos.In(m.selection):
			m.setState(StateMovingSelection)
		default:
			m.Commit(env)
			m.setState(StateIdle)
		}
	case ButtonSecondary:
		m.Commit(env)
		m.origin = ms.Pos
		m.setState(StateSelecting)
	}
}

func (m *Manipulator) Move(env *Env, ms MouseState) {
	switch m.state {
	case StateSelecting:
		m.selection = raster.Span(m.origin, ms.Pos)
	case StateMovingPixels:
		d := ms.Delta()
		if d == (image.Point{}) {
			return
		}
		raster.Translate(env.Surface, d.X, d.Y)
		env.changing()
	case StateMovingSelection:
		if m.eraseNext {
			env.Surface.ClearRegion(m.selection)
			m.eraseNext = false
			env.changed()
		}
		m.selection = m.selection.Add(ms.Delta())
	}
}

func (m *Manipulator) Release(env *Env, _ MouseState) {
	switch m.state {
	case StateSelecting:
		m.selection = raster.Clip(m.selection, env.Surface.Bounds())
		if m.selection.Empty() {
			m.selection = image.Rectangle{}
		} else {
			m.floating = env.Surface.CopyRegion(m.selection)
			m.eraseNext = m.props.Bool(PropCutOnSelect)
		}
	case StateMovingPixels:
		env.changed()
	}
	m.setState(StateIdle)
}

func (m *Manipulator) Key(env *Env, k Key) {
	if k == KeyConfirm && m.HasSelection() && m.floating != nil {
		m.Commit(env)
	}
}

// BeginScaling enters the scaling phase when a selection exists. Moves in
// that phase leave the selection alone; release returns to idle.
func (m *Manipulator) BeginScaling() {
	if m.HasSelection() {
		m.setState(StateScalingSelection)
	}
}

// Commit pastes any floating image at the selection and drops the
// selection. It reports whether the surface was written.
func (m *Manipulator) Commit(env *Env) bool {
	pasted := false
	if m.floating != nil && env.Surface != nil {
		env.Surface.Paste(m.floating, m.selection)
		pasted = true
	}
	m.clear()
	if pasted {
		env.changed()
	}
	return pasted
}

// Float places img above the surface with its origin at at, as a selection
// that has already been lifted. A pending selection is committed first.
func (m *Manipulator) Float(env *Env, img *raster.Buffer, at image.Point) {
	m.Commit(env)
	if img == nil || img.Bounds().Empty() {
		return
	}
	m.floating = img.Clone()
	m.selection = img.Bounds().Add(at)
	m.setState(StateIdle)
}

// Cancel drops the selection and any floating image without writing.
// Pixels already cleared by a cut stay cleared.
func (m *Manipulator) Cancel() {
	m.clear()
	m.setState(StateIdle)
}

func (m *Manipulator) clear() {
	m.selection = image.Rectangle{}
	m.floating = nil
	m.eraseNext = false
}
