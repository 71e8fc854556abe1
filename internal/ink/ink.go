// Package ink implements the compositing rules brushes use when they lay a
// colour over an existing pixel.
package ink

import (
	"errors"
	"fmt"
	"image/color"
	"sort"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ErrUnknownInk is returned by Parse for names that are not registered.
var ErrUnknownInk = errors.New("unknown ink")

// Kind tags an ink variant.
type Kind int

const (
	KindOverwrite Kind = iota
	KindBlend
	KindErase
	KindLighten
	KindDarken
	KindMix
)

// Ink combines the pixel already on the surface with an incoming colour.
// Implementations hold no surface state.
type Ink interface {
	Kind() Kind
	Name() string
	Apply(existing, incoming color.RGBA) color.RGBA
}

// Overwrite replaces the pixel with the incoming colour.
type Overwrite struct{}

func (Overwrite) Kind() Kind                              { return KindOverwrite }
func (Overwrite) Name() string                            { return "overwrite" }
func (Overwrite) Apply(_, incoming color.RGBA) color.RGBA { return incoming }

// Blend composites the incoming colour over the pixel using the incoming
// alpha: out = in*a + existing*(1-a) for each colour channel, a = in.A/255.
// Alpha follows the over rule, in.A + existing.A*(1-a), so opaque pixels
// stay opaque.
type Blend struct{}

func (Blend) Kind() Kind   { return KindBlend }
func (Blend) Name() string { return "blend" }

func (Blend) Apply(existing, incoming color.RGBA) color.RGBA {
	a := uint32(incoming.A)
	switch a {
	case 0:
		return existing
	case 255:
		return incoming
	}
	mix := func(in, ex uint8) uint8 {
		return uint8((uint32(in)*a + uint32(ex)*(255-a) + 127) / 255)
	}
	return color.RGBA{
		R: mix(incoming.R, existing.R),
		G: mix(incoming.G, existing.G),
		B: mix(incoming.B, existing.B),
		A: uint8(a + (uint32(existing.A)*(255-a)+127)/255),
	}
}

// Erase clears the pixel to transparent regardless of the colour.
type Erase struct{}

func (Erase) Kind() Kind                       { return KindErase }
func (Erase) Name() string                     { return "erase" }
func (Erase) Apply(_, _ color.RGBA) color.RGBA { return color.RGBA{} }

// Lighten raises the luminance of the existing pixel in HCL space. The
// incoming alpha sets the strength; a fully opaque colour adds Step.
type Lighten struct{ Step float64 }

func (Lighten) Kind() Kind   { return KindLighten }
func (Lighten) Name() string { return "lighten" }

func (l Lighten) Apply(existing, incoming color.RGBA) color.RGBA {
	return shiftLuminance(existing, stepOrDefault(l.Step)*float64(incoming.A)/255)
}

// Darken lowers the luminance of the existing pixel in HCL space.
type Darken struct{ Step float64 }

func (Darken) Kind() Kind   { return KindDarken }
func (Darken) Name() string { return "darken" }

func (d Darken) Apply(existing, incoming color.RGBA) color.RGBA {
	return shiftLuminance(existing, -stepOrDefault(d.Step)*float64(incoming.A)/255)
}

// Mix interpolates towards the incoming colour in CIE L*a*b*, weighted by
// the incoming alpha. The existing alpha is kept.
type Mix struct{}

func (Mix) Kind() Kind   { return KindMix }
func (Mix) Name() string { return "mix" }

func (Mix) Apply(existing, incoming color.RGBA) color.RGBA {
	if existing.A == 0 {
		return incoming
	}
	t := float64(incoming.A) / 255
	src := toColorful(existing)
	dst := toColorful(incoming)
	return fromColorful(src.BlendLab(dst, t).Clamped(), existing.A)
}

const defaultStep = 0.1

func stepOrDefault(step float64) float64 {
	if step <= 0 {
		return defaultStep
	}
	return step
}

func shiftLuminance(c color.RGBA, delta float64) color.RGBA {
	if c.A == 0 || delta == 0 {
		return c
	}
	h, ch, l := toColorful(c).Hcl()
	return fromColorful(colorful.Hcl(h, ch, l+delta).Clamped(), c.A)
}

// toColorful drops alpha; surface pixels are stored unpremultiplied so the
// channels can be used as-is.
func toColorful(c color.RGBA) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func fromColorful(c colorful.Color, a uint8) color.RGBA {
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: a}
}

var registry = map[string]func() Ink{
	"overwrite": func() Ink { return Overwrite{} },
	"blend":     func() Ink { return Blend{} },
	"erase":     func() Ink { return Erase{} },
	"lighten":   func() Ink { return Lighten{} },
	"darken":    func() Ink { return Darken{} },
	"mix":       func() Ink { return Mix{} },
}

// Parse returns the ink registered under name (case insensitive).
func Parse(name string) (Ink, error) {
	fn, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownInk, name)
	}
	return fn(), nil
}

// Names lists the registered ink names in sorted order.
func Names() []string {
	out := make([]string, 0, len(registry))
	for n := range registry {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
