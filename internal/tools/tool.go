package tools

import (
	"fmt"
	"strings"
)

// Kind names a tool variant.
type Kind int

const (
	KindPen Kind = iota
	KindFiller
	KindPicker
	KindManipulator
)

var kindNames = [...]string{
	KindPen:         "pen",
	KindFiller:      "filler",
	KindPicker:      "picker",
	KindManipulator: "manipulator",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Kinds lists every tool variant in toolbar order.
func Kinds() []Kind {
	return []Kind{KindPen, KindFiller, KindPicker, KindManipulator}
}

// ParseKind accepts a tool name or a common alias.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pen", "pencil", "brush":
		return KindPen, nil
	case "filler", "fill", "bucket":
		return KindFiller, nil
	case "picker", "pick", "eyedropper":
		return KindPicker, nil
	case "manipulator", "select", "move":
		return KindManipulator, nil
	}
	return 0, fmt.Errorf("unknown tool %q", s)
}

// Tool is the capability set shared by every variant. Handlers receive the
// toolbox's mouse state after it has been updated for the event.
type Tool interface {
	Kind() Kind
	Properties() *Properties
	Press(env *Env, m MouseState)
	Move(env *Env, m MouseState)
	Release(env *Env, m MouseState)
	Key(env *Env, k Key)
}
