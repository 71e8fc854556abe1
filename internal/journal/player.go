package journal

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"strconv"
	"strings"

	"github.com/example/pixler/internal/ink"
	"github.com/example/pixler/internal/raster"
	"github.com/example/pixler/internal/theme"
	"github.com/example/pixler/internal/tools"
)

// Player feeds events to a Toolbox. When Session is set every applied event
// is also recorded.
type Player struct {
	Toolbox *tools.Toolbox
	Env     *tools.Env
	Session *Session

	held tools.Button
}

func NewPlayer(tb *tools.Toolbox, env *tools.Env) *Player {
	return &Player{Toolbox: tb, Env: env}
}

// Apply performs ev. Malformed arguments are reported and leave the state
// untouched; pointer events themselves never fail.
func (p *Player) Apply(ev Event) error {
	if err := p.apply(ev); err != nil {
		return fmt.Errorf("%s: %w", ev, err)
	}
	if p.Session != nil {
		ev.Tool = p.Toolbox.Active().String()
		if err := p.Session.Record(ev); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll stops at the first failing event.
func (p *Player) ApplyAll(events []Event) error {
	for _, ev := range events {
		if err := p.Apply(ev); err != nil {
			return err
		}
	}
	return nil
}

func (p *Player) apply(ev Event) error {
	tb, env := p.Toolbox, p.Env
	switch ev.Kind {
	case KindPress:
		tb.Press(env, ev.Button, image.Pt(ev.X, ev.Y))
		p.held = ev.Button
	case KindMove:
		tb.Move(env, image.Pt(ev.X, ev.Y))
	case KindRelease:
		b := ev.Button
		if b == tools.ButtonNone {
			b = p.held
		}
		tb.Release(env, b)
		p.held = tools.ButtonNone
	case KindKey:
		tb.Key(env, ev.Key)
	case KindCancel:
		tb.Manipulator().Cancel()
	case KindFloat:
		img, err := DecodeImage(ev.Arg)
		if err != nil {
			return err
		}
		tb.Select(tools.KindManipulator)
		tb.Manipulator().Float(env, img, image.Pt(ev.X, ev.Y))
	case KindTool:
		k, err := tools.ParseKind(ev.Arg)
		if err != nil {
			return err
		}
		tb.Select(k)
	case KindColor:
		c, err := theme.ParseColor(ev.Arg)
		if err != nil {
			return err
		}
		paint := p.paint(ev.Button)
		if paint == nil {
			return fmt.Errorf("no paint for button %s", ev.Button)
		}
		paint.Color = c
	case KindInk:
		in, err := ink.Parse(ev.Arg)
		if err != nil {
			return err
		}
		paint := p.paint(ev.Button)
		if paint == nil {
			return fmt.Errorf("no paint for button %s", ev.Button)
		}
		paint.Ink = in
	case KindSize:
		n, err := strconv.Atoi(ev.Arg)
		if err != nil || n < 1 {
			return fmt.Errorf("invalid brush size %q", ev.Arg)
		}
		env.BrushSize = n
	case KindSet:
		name, rest, _ := strings.Cut(ev.Arg, " ")
		k, err := tools.ParseKind(name)
		if err != nil {
			return err
		}
		prop, value, ok := strings.Cut(rest, "=")
		if !ok {
			return fmt.Errorf("expected property=value")
		}
		return tb.SetProperty(k, prop, value)
	default:
		return fmt.Errorf("unknown event kind %q", ev.Kind)
	}
	return nil
}

// FloatEvent builds the event that pastes img as a floating selection at
// (x, y).
func FloatEvent(img *raster.Buffer, x, y int) (Event, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img.Image()); err != nil {
		return Event{}, fmt.Errorf("encode float image: %w", err)
	}
	return Event{Kind: KindFloat, X: x, Y: y, Arg: base64.StdEncoding.EncodeToString(buf.Bytes())}, nil
}

// DecodeImage reverses the encoding used by FloatEvent.
func DecodeImage(arg string) (*raster.Buffer, error) {
	data, err := base64.StdEncoding.DecodeString(arg)
	if err != nil {
		return nil, fmt.Errorf("float image: %w", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("float image: %w", err)
	}
	return raster.FromImage(img), nil
}

func (p *Player) paint(b tools.Button) *tools.Paint {
	switch b {
	case tools.ButtonPrimary:
		return &p.Env.Primary
	case tools.ButtonSecondary:
		return &p.Env.Secondary
	}
	return nil
}

// Replay applies events to env with a fresh toolbox and returns it, so the
// caller can commit a selection left floating.
func Replay(events []Event, env *tools.Env) (*tools.Toolbox, error) {
	tb := tools.NewToolbox()
	if err := NewPlayer(tb, env).ApplyAll(events); err != nil {
		return tb, err
	}
	return tb, nil
}
