package tools

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownProperty is returned when a tool has no property of that name.
var ErrUnknownProperty = errors.New("unknown property")

// Property is a named, user adjustable tool setting.
type Property interface {
	Name() string
	Description() string
	String() string
	// Parse sets the value from its textual form.
	Parse(s string) error
}

// Bool is an on/off property.
type Bool struct {
	name, desc string
	On         bool
}

func NewBool(name, desc string, on bool) *Bool { return &Bool{name: name, desc: desc, On: on} }

func (b *Bool) Name() string        { return b.name }
func (b *Bool) Description() string { return b.desc }
func (b *Bool) String() string      { return strconv.FormatBool(b.On) }
func (b *Bool) Toggle()             { b.On = !b.On }

func (b *Bool) Parse(s string) error {
	v, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("%s: invalid boolean %q", b.name, s)
	}
	b.On = v
	return nil
}

// Number is an unbounded integer property.
type Number struct {
	name, desc string
	Value      int
}

func NewNumber(name, desc string, v int) *Number { return &Number{name: name, desc: desc, Value: v} }

func (n *Number) Name() string        { return n.name }
func (n *Number) Description() string { return n.desc }
func (n *Number) String() string      { return strconv.Itoa(n.Value) }

func (n *Number) Parse(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("%s: invalid integer %q", n.name, s)
	}
	n.Value = v
	return nil
}

// Ranged is an integer property clamped to [Min, Max].
type Ranged struct {
	name, desc string
	Min, Max   int
	value      int
}

// NewRanged starts at v, or at min when v is out of range.
func NewRanged(name, desc string, min, max, v int) *Ranged {
	r := &Ranged{name: name, desc: desc, Min: min, Max: max, value: min}
	if v >= min && v <= max {
		r.value = v
	}
	return r
}

func (r *Ranged) Name() string        { return r.name }
func (r *Ranged) Description() string { return r.desc }
func (r *Ranged) Value() int          { return r.value }
func (r *Ranged) String() string      { return strconv.Itoa(r.value) }

// Set stores v clamped to the range.
func (r *Ranged) Set(v int) {
	switch {
	case v < r.Min:
		v = r.Min
	case v > r.Max:
		v = r.Max
	}
	r.value = v
}

func (r *Ranged) Parse(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("%s: invalid integer %q", r.name, s)
	}
	r.Set(v)
	return nil
}

// Properties keeps a tool's properties in declaration order.
type Properties struct {
	order []string
	byKey map[string]Property
}

func (p *Properties) Add(prop Property) {
	if p.byKey == nil {
		p.byKey = map[string]Property{}
	}
	if _, ok := p.byKey[prop.Name()]; !ok {
		p.order = append(p.order, prop.Name())
	}
	p.byKey[prop.Name()] = prop
}

// Get looks a property up by name.
func (p *Properties) Get(name string) (Property, bool) {
	prop, ok := p.byKey[name]
	return prop, ok
}

// Has reports whether name is declared.
func (p *Properties) Has(name string) bool {
	_, ok := p.byKey[name]
	return ok
}

// All returns the properties in declaration order.
func (p *Properties) All() []Property {
	out := make([]Property, 0, len(p.order))
	for _, n := range p.order {
		out = append(out, p.byKey[n])
	}
	return out
}

// Set parses value into the named property.
func (p *Properties) Set(name, value string) error {
	prop, ok := p.byKey[name]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownProperty, name)
	}
	return prop.Parse(value)
}

// Bool returns the value of a boolean property, false when absent.
func (p *Properties) Bool(name string) bool {
	if b, ok := p.byKey[name].(*Bool); ok {
		return b.On
	}
	return false
}
