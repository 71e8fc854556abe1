package tools

import "github.com/example/pixler/internal/raster"

// Filler flood fills the region under the pointer with the button's colour.
// The ink is not consulted: the region takes the colour as is.
type Filler struct {
	props Properties
}

func NewFiller() *Filler { return &Filler{} }

func (f *Filler) Kind() Kind               { return KindFiller }
func (f *Filler) Properties() *Properties  { return &f.props }
func (f *Filler) Move(*Env, MouseState)    {}
func (f *Filler) Release(*Env, MouseState) {}
func (f *Filler) Key(*Env, Key)            {}

func (f *Filler) Press(env *Env, m MouseState) {
	if !env.Surface.In(m.Pos.X, m.Pos.Y) {
		return
	}
	paint, ok := env.PaintFor(m.Button)
	if !ok {
		return
	}
	n := raster.FloodFill(env.Surface, m.Pos.X, m.Pos.Y, paint.Color)
	Logger().Debug("flood fill", "at", m.Pos, "pixels", n)
	if n > 0 {
		env.changed()
	}
}
