package tools

import (
	"fmt"
	"image"
)

// Toolbox owns one instance of every tool, tracks the pointer and routes
// events to the active tool.
type Toolbox struct {
	pen         *Pen
	filler      *Filler
	picker      *Picker
	manipulator *Manipulator

	active   Kind
	previous Kind
	mouse    MouseState
}

// NewToolbox starts with the pen selected.
func NewToolbox() *Toolbox {
	return &Toolbox{
		pen:         NewPen(),
		filler:      NewFiller(),
		picker:      NewPicker(),
		manipulator: NewManipulator(),
	}
}

func (t *Toolbox) Pen() *Pen                 { return t.pen }
func (t *Toolbox) Filler() *Filler           { return t.filler }
func (t *Toolbox) Picker() *Picker           { return t.picker }
func (t *Toolbox) Manipulator() *Manipulator { return t.manipulator }

// Active is the kind of the tool receiving events.
func (t *Toolbox) Active() Kind { return t.active }

// Mouse is the pointer state as of the last event.
func (t *Toolbox) Mouse() MouseState { return t.mouse }

// Tool returns the instance for k.
func (t *Toolbox) Tool(k Kind) Tool {
	switch k {
	case KindFiller:
		return t.filler
	case KindPicker:
		return t.picker
	case KindManipulator:
		return t.manipulator
	default:
		return t.pen
	}
}

// Select makes k the active tool. A selection in progress keeps floating
// until the manipulator is used again or committed.
func (t *Toolbox) Select(k Kind) {
	if k == t.active {
		return
	}
	t.previous = t.active
	t.active = k
	Logger().Debug("tool selected", "tool", k)
}

// SetProperty sets a property on the tool of kind k from its text form.
func (t *Toolbox) SetProperty(k Kind, name, value string) error {
	if err := t.Tool(k).Properties().Set(name, value); err != nil {
		return fmt.Errorf("%s: %w", k, err)
	}
	return nil
}

// Press starts a gesture at pos with button b.
func (t *Toolbox) Press(env *Env, b Button, pos image.Point) {
	if env.Surface == nil || b == ButtonNone {
		return
	}
	t.mouse = MouseState{Pos: pos, Last: pos, Press: pos, Button: b}
	t.Tool(t.active).Press(env, t.mouse)
}

// Move updates the pointer. Tools only see moves while a button is held.
func (t *Toolbox) Move(env *Env, pos image.Point) {
	t.mouse.Last = t.mouse.Pos
	t.mouse.Pos = pos
	if env.Surface == nil || t.mouse.Button == ButtonNone {
		return
	}
	t.Tool(t.active).Move(env, t.mouse)
}

// Release ends the gesture of button b. A release of a button other than
// the one that started the gesture is ignored.
func (t *Toolbox) Release(env *Env, b Button) {
	if t.mouse.Button == ButtonNone || b != t.mouse.Button {
		return
	}
	if env.Surface != nil {
		t.Tool(t.active).Release(env, t.mouse)
	}
	t.mouse.Button = ButtonNone
	if t.active == KindPicker && t.picker.ReturnsToLastTool() && t.previous != KindPicker {
		t.Select(t.previous)
	}
}

// Key forwards a keyboard command to the active tool.
func (t *Toolbox) Key(env *Env, k Key) {
	if env.Surface == nil {
		return
	}
	t.Tool(t.active).Key(env, k)
}

// Commit pastes any floating selection so the surface is complete, e.g.
// before saving.
func (t *Toolbox) Commit(env *Env) bool {
	if env.Surface == nil {
		return false
	}
	return t.manipulator.Commit(env)
}
