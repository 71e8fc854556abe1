// Package journal records editing sessions as event streams in SQLite and
// plays them back through a Toolbox.
//
// The same events drive the headless "apply" command, so a script line and
// a stored row carry identical information.
package journal

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/pixler/internal/tools"
)

// Kind is the type of a recorded event.
type Kind string

const (
	KindPress   Kind = "press"
	KindMove    Kind = "move"
	KindRelease Kind = "release"
	KindKey     Kind = "key"
	KindTool    Kind = "tool"
	KindColor   Kind = "color"
	KindInk     Kind = "ink"
	KindSize    Kind = "size"
	KindSet     Kind = "set"
	KindFloat   Kind = "float"
	KindCancel  Kind = "cancel"
)

// Event is one input to the toolbox.
//
// Press and release use Button; press, move and float use X and Y. Arg
// carries the tool name, colour, ink name, brush size, "tool property=value"
// or, for float, the base64 PNG of the pasted image. Tool is the active tool when the event was recorded and
// is informational only.
type Event struct {
	Kind   Kind
	Button tools.Button
	X, Y   int
	Key    tools.Key
	Arg    string
	Tool   string
}

// String formats e as a script line that ParseLine reads back.
func (e Event) String() string {
	switch e.Kind {
	case KindPress:
		return fmt.Sprintf("press %s %d %d", e.Button, e.X, e.Y)
	case KindMove:
		return fmt.Sprintf("move %d %d", e.X, e.Y)
	case KindRelease:
		if e.Button == tools.ButtonNone {
			return "release"
		}
		return fmt.Sprintf("release %s", e.Button)
	case KindKey:
		return "key " + keyName(e.Key)
	case KindCancel:
		return "cancel"
	case KindFloat:
		return fmt.Sprintf("float %d %d %s", e.X, e.Y, e.Arg)
	case KindColor, KindInk:
		return fmt.Sprintf("%s %s %s", e.Kind, e.Button, e.Arg)
	default:
		return fmt.Sprintf("%s %s", e.Kind, e.Arg)
	}
}

// ParseScript reads one event per line. Blank lines and lines starting with
// '#' are skipped.
func ParseScript(r io.Reader) ([]Event, error) {
	var events []Event
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ev, err := ParseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		events = append(events, ev)
	}
	return events, scanner.Err()
}

// ParseLine parses a single script line.
func ParseLine(line string) (Event, error) {
	f := strings.Fields(line)
	if len(f) == 0 {
		return Event{}, fmt.Errorf("empty line")
	}
	ev := Event{Kind: Kind(strings.ToLower(f[0]))}
	args := f[1:]
	var err error
	switch ev.Kind {
	case KindPress:
		if len(args) != 3 {
			return ev, fmt.Errorf("usage: press primary|secondary X Y")
		}
		if ev.Button, err = parseButton(args[0]); err != nil {
			return ev, err
		}
		ev.X, ev.Y, err = parsePoint(args[1], args[2])
	case KindMove:
		if len(args) != 2 {
			return ev, fmt.Errorf("usage: move X Y")
		}
		ev.X, ev.Y, err = parsePoint(args[0], args[1])
	case KindRelease:
		switch len(args) {
		case 0:
		case 1:
			ev.Button, err = parseButton(args[0])
		default:
			return ev, fmt.Errorf("usage: release [primary|secondary]")
		}
	case KindKey:
		if len(args) != 1 {
			return ev, fmt.Errorf("usage: key confirm")
		}
		ev.Key, err = parseKey(args[0])
	case KindCancel:
		if len(args) != 0 {
			return ev, fmt.Errorf("usage: cancel")
		}
	case KindFloat:
		if len(args) != 3 {
			return ev, fmt.Errorf("usage: float X Y BASE64PNG")
		}
		ev.X, ev.Y, err = parsePoint(args[0], args[1])
		ev.Arg = args[2]
	case KindColor, KindInk:
		if len(args) != 2 {
			return ev, fmt.Errorf("usage: %s primary|secondary VALUE", ev.Kind)
		}
		if ev.Button, err = parseButton(args[0]); err != nil {
			return ev, err
		}
		ev.Arg = args[1]
	case KindTool, KindSize:
		if len(args) != 1 {
			return ev, fmt.Errorf("usage: %s VALUE", ev.Kind)
		}
		ev.Arg = args[0]
	case KindSet:
		if len(args) != 2 || !strings.Contains(args[1], "=") {
			return ev, fmt.Errorf("usage: set TOOL property=value")
		}
		ev.Arg = args[0] + " " + args[1]
	default:
		return ev, fmt.Errorf("unknown command %q", f[0])
	}
	return ev, err
}

func parseButton(s string) (tools.Button, error) {
	switch strings.ToLower(s) {
	case "primary", "left", "1":
		return tools.ButtonPrimary, nil
	case "secondary", "right", "2":
		return tools.ButtonSecondary, nil
	}
	return tools.ButtonNone, fmt.Errorf("unknown button %q", s)
}

func parseKey(s string) (tools.Key, error) {
	switch strings.ToLower(s) {
	case "confirm", "return", "enter":
		return tools.KeyConfirm, nil
	}
	return tools.KeyNone, fmt.Errorf("unknown key %q", s)
}

func keyName(k tools.Key) string {
	if k == tools.KeyConfirm {
		return "confirm"
	}
	return "none"
}

func parsePoint(xs, ys string) (int, int, error) {
	x, err := strconv.Atoi(xs)
	if err != nil {
		return 0, 0, fmt.Errorf("bad x %q", xs)
	}
	y, err := strconv.Atoi(ys)
	if err != nil {
		return 0, 0, fmt.Errorf("bad y %q", ys)
	}
	return x, y, nil
}
