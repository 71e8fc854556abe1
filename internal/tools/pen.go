package tools

import (
	"image"

	"github.com/example/pixler/internal/brush"
)

const (
	PropLockHorizontal = "lock_horizontal"
	PropLockVertical   = "lock_vertical"
)

// Pen paints the brush footprint with the paint of the held button. A drag
// joins successive positions with a line so fast motion leaves no gaps.
type Pen struct {
	props Properties

	last       image.Point
	stroking   bool
	dirty      bool
	wasLocking bool
}

func NewPen() *Pen {
	p := &Pen{}
	p.props.Add(NewBool(PropLockHorizontal, "Keep the stroke on the row it started on", false))
	p.props.Add(NewBool(PropLockVertical, "Keep the stroke on the column it started on", false))
	return p
}

func (p *Pen) Kind() Kind              { return KindPen }
func (p *Pen) Properties() *Properties { return &p.props }
func (p *Pen) Key(*Env, Key)           {}

func (p *Pen) Press(env *Env, m MouseState) {
	p.last = m.Pos
	p.stroking = true
	p.dirty = false
	p.wasLocking = false
	p.paint(env, m, true)
}

func (p *Pen) Move(env *Env, m MouseState) {
	if !p.stroking {
		return
	}
	p.paint(env, m, false)
}

func (p *Pen) Release(env *Env, _ MouseState) {
	if p.stroking && p.dirty {
		env.changed()
	}
	p.stroking = false
	p.dirty = false
}

// cursor applies the axis locks. Holding both locks or neither leaves the
// position untouched; releasing a lock resyncs the stroke to the pointer
// without drawing the jump.
func (p *Pen) cursor(pos image.Point) image.Point {
	h := p.props.Bool(PropLockHorizontal)
	v := p.props.Bool(PropLockVertical)
	switch {
	case h && !v:
		pos.Y = p.last.Y
		p.wasLocking = true
	case v && !h:
		pos.X = p.last.X
		p.wasLocking = true
	case p.wasLocking:
		p.last = pos
		p.wasLocking = false
	}
	return pos
}

func (p *Pen) paint(env *Env, m MouseState, pressed bool) {
	paint, ok := env.PaintFor(m.Button)
	if !ok || paint.Ink == nil {
		return
	}
	cur := p.cursor(m.Pos)
	if cur == p.last && !pressed {
		return
	}

	var n int
	if pressed {
		n = brush.Stamp(env.Surface, cur, env.BrushSize, paint.Ink, paint.Color)
	} else {
		n = brush.Line(env.Surface, p.last, cur, env.BrushSize, paint.Ink, paint.Color, true)
	}
	p.last = cur
	if n > 0 {
		p.dirty = true
		env.changing()
	}
}
