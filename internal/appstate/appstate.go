package appstate

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"time"

	"github.com/example/pixler/internal/theme"
	"github.com/example/pixler/internal/tools"
)

const (
	toolbarHeight = 24
	statusHeight  = 24
	paletteWidth  = 44
	toolWidth     = 64

	swatchSize = 16
	swatchGap  = 2
)

// frameDropThreshold specifies how many consecutive frames can be canceled
// before a draw is allowed to complete to keep the UI responsive.
const frameDropThreshold = 10

// Palette is the set of swatches shown down the left edge.
var Palette = []color.RGBA{
	{0, 0, 0, 255},
	{255, 255, 255, 255},
	{255, 0, 0, 255},
	{0, 255, 0, 255},
	{0, 0, 255, 255},
	{255, 255, 0, 255},
	{0, 255, 255, 255},
	{255, 0, 255, 255},
	{128, 0, 0, 255},
	{0, 128, 0, 255},
	{0, 0, 128, 255},
	{128, 128, 0, 255},
	{0, 128, 128, 255},
	{128, 0, 128, 255},
	{192, 192, 192, 255},
	{128, 128, 128, 255},
	{0, 0, 0, 0},
}

// ButtonState describes the visual state of a button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
)

// Button represents an interactive UI element.
// Activate performs the button's action when clicked.
type Button interface {
	Draw(dst *image.RGBA, th *theme.Theme, state ButtonState)
	Rect() image.Rectangle
	Activate()
}

// ToolButton selects a tool in the toolbar.
type ToolButton struct {
	label    string
	kind     tools.Kind
	rect     image.Rectangle
	onSelect func(tools.Kind)
}

func (tb *ToolButton) Draw(dst *image.RGBA, th *theme.Theme, state ButtonState) {
	drawButton(dst, tb.rect, tb.label, th, state)
}

func (tb *ToolButton) Rect() image.Rectangle { return tb.rect }

func (tb *ToolButton) Activate() {
	if tb.onSelect != nil {
		tb.onSelect(tb.kind)
	}
}

// Shortcut is a clickable hint in the status bar.
type Shortcut struct {
	label  string
	action string
	rect   image.Rectangle
	run    func(string)
}

func (s *Shortcut) Draw(dst *image.RGBA, th *theme.Theme, state ButtonState) {
	drawButton(dst, s.rect, s.label, th, state)
}

func (s *Shortcut) Rect() image.Rectangle { return s.rect }

func (s *Shortcut) Activate() {
	if s.run != nil {
		s.run(s.action)
	}
}

func drawButton(dst *image.RGBA, r image.Rectangle, label string, th *theme.Theme, state ButtonState) {
	bg := th.ButtonBackground
	switch state {
	case StateHover:
		bg = th.ButtonBackgroundHover
	case StatePressed:
		bg = th.ButtonActive
	}
	fillRect(dst, r, bg)
	drawRect(dst, r, th.ButtonBorder, 1)
	drawText(dst, labelFace, r.Min.X+4, r.Min.Y+r.Dy()/2+4, label, th.ButtonText)
}

// toolLabels are shown in toolbar order; the first letter is the hot key.
var toolLabels = []struct {
	label string
	kind  tools.Kind
}{
	{"P:Pen", tools.KindPen},
	{"F:Fill", tools.KindFiller},
	{"K:Pick", tools.KindPicker},
	{"M:Move", tools.KindManipulator},
}

func toolButtons(onSelect func(tools.Kind)) []*ToolButton {
	out := make([]*ToolButton, len(toolLabels))
	x := paletteWidth
	for i, t := range toolLabels {
		out[i] = &ToolButton{
			label:    t.label,
			kind:     t.kind,
			rect:     image.Rect(x, 0, x+toolWidth, toolbarHeight),
			onSelect: onSelect,
		}
		x += toolWidth
	}
	return out
}

var shortcutLabels = []struct{ label, action string }{
	{"^S:save", "save"},
	{"^C:copy", "copy"},
	{"^V:paste", "paste"},
	{"G:grab", "grab"},
	{"+/-:zoom", "zoomin"},
	{"Enter:commit", "commit"},
	{"Esc:cancel", "cancel"},
	{"Q:quit", "quit"},
}

func shortcuts(height int, run func(string)) []*Shortcut {
	out := make([]*Shortcut, len(shortcutLabels))
	x := paletteWidth + 4
	top := height - statusHeight + 3
	for i, sc := range shortcutLabels {
		w := measureText(labelFace, sc.label) + 8
		out[i] = &Shortcut{label: sc.label, action: sc.action, run: run, rect: image.Rect(x, top, x+w, top+statusHeight-6)}
		x += w + 4
	}
	return out
}

// swatchRect is the screen rectangle of palette entry i. The two large
// swatches above the grid show the primary and secondary colours.
func swatchRect(i int) image.Rectangle {
	col, row := i%2, i/2
	x := 4 + col*(swatchSize+swatchGap)
	y := toolbarHeight + 48 + row*(swatchSize+swatchGap)
	return image.Rect(x, y, x+swatchSize, y+swatchSize)
}

func paintRect(b tools.Button) image.Rectangle {
	y := toolbarHeight + 4
	if b == tools.ButtonSecondary {
		y += 20
	}
	return image.Rect(4, y, paletteWidth-4, y+18)
}

func canvasRect(width, height int) image.Rectangle {
	return image.Rect(paletteWidth, toolbarHeight, width, height-statusHeight)
}

// paintState is a snapshot of everything a frame needs, so drawing can run
// off the event goroutine.
type paintState struct {
	width, height int
	theme         *theme.Theme
	canvas        *image.RGBA
	canvasAt      image.Point
	active        tools.Kind
	primary       color.RGBA
	secondary     color.RGBA
	info          string
	hoverTool     int
	hoverShortcut int
	hoverSwatch   int
	message       string
	messageUntil  time.Time
}

// composeFrame draws st into dst. It returns false when ctx was canceled
// part way through.
func composeFrame(ctx context.Context, dst *image.RGBA, st paintState) bool {
	th := st.theme
	fillRect(dst, dst.Bounds(), th.Background)

	area := canvasRect(st.width, st.height)
	if st.canvas != nil {
		r := st.canvas.Bounds().Add(st.canvasAt).Intersect(area)
		draw.Draw(dst, r, st.canvas, r.Min.Sub(st.canvasAt), draw.Src)
	}
	if ctx.Err() != nil {
		return false
	}

	fillRect(dst, image.Rect(0, 0, st.width, toolbarHeight), th.ToolbarBackground)
	drawText(dst, labelFace, 4, 16, "pixler", th.Foreground)
	x := paletteWidth
	for i, tb := range toolButtons(nil) {
		state := StateDefault
		if tb.kind == st.active {
			state = StatePressed
		} else if i == st.hoverTool {
			state = StateHover
		}
		tb.Draw(dst, th, state)
		x = tb.rect.Max.X
	}
	drawText(dst, labelFace, x+8, 16, st.info, th.Foreground)

	fillRect(dst, image.Rect(0, toolbarHeight, paletteWidth, st.height-statusHeight), th.ToolbarBackground)
	drawSwatch(dst, paintRect(tools.ButtonPrimary), st.primary, th)
	drawSwatch(dst, paintRect(tools.ButtonSecondary), st.secondary, th)
	for i, c := range Palette {
		r := swatchRect(i)
		drawSwatch(dst, r, c, th)
		if i == st.hoverSwatch {
			drawRect(dst, r, th.ButtonBackgroundHover, 1)
		}
	}
	if ctx.Err() != nil {
		return false
	}

	fillRect(dst, image.Rect(0, st.height-statusHeight, st.width, st.height), th.StatusBackground)
	for i, sc := range shortcuts(st.height, nil) {
		state := StateDefault
		if i == st.hoverShortcut {
			state = StateHover
		}
		sc.Draw(dst, th, state)
	}

	if st.message != "" && time.Now().Before(st.messageUntil) {
		drawMessage(dst, st.message, th.StatusText, th.StatusBackground)
	}
	return ctx.Err() == nil
}

// drawSwatch shows transparent colours over a small checkerboard.
func drawSwatch(dst *image.RGBA, r image.Rectangle, c color.RGBA, th *theme.Theme) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if ((x-r.Min.X)/4+(y-r.Min.Y)/4)%2 == 0 {
				dst.SetRGBA(x, y, th.CheckerLight)
			} else {
				dst.SetRGBA(x, y, th.CheckerDark)
			}
		}
	}
	draw.Draw(dst, r, &image.Uniform{c}, image.Point{}, draw.Over)
	drawRect(dst, r, th.ButtonBorder, 1)
}

func fillRect(dst *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r, &image.Uniform{c}, image.Point{}, draw.Over)
}

// drawRect outlines r with lines thick pixels wide, inside r.
func drawRect(dst *image.RGBA, r image.Rectangle, c color.Color, thick int) {
	u := &image.Uniform{c}
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+thick), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Max.Y-thick, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+thick, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Max.X-thick, r.Min.Y, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
}
