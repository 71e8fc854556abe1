package appstate

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"time"
	"unicode"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/pixler/internal/capture"
	"github.com/example/pixler/internal/clipboard"
	"github.com/example/pixler/internal/ink"
	"github.com/example/pixler/internal/journal"
	"github.com/example/pixler/internal/notify"
	"github.com/example/pixler/internal/raster"
	"github.com/example/pixler/internal/render"
	"github.com/example/pixler/internal/spritefile"
	"github.com/example/pixler/internal/theme"
	"github.com/example/pixler/internal/tools"
)

const (
	minZoom      = 1
	maxZoom      = 32
	maxBrushSize = 64
	messageTime  = 2 * time.Second
)

// KeyShortcut describes a keyboard combination that triggers an action.
// Letter shortcuts match on Rune, the rest on Code.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

var keyboardActions = map[KeyShortcut]string{
	{Rune: 's', Modifiers: key.ModControl}:                "save",
	{Rune: 'c', Modifiers: key.ModControl}:                "copy",
	{Rune: 'c', Modifiers: key.ModControl | key.ModShift}: "copycolor",
	{Rune: 'v', Modifiers: key.ModControl}:                "paste",
	{Rune: 'g'}:                                           "grab",
	{Rune: '+'}:                                           "zoomin",
	{Rune: '='}:                                           "zoomin",
	{Rune: '-'}:                                           "zoomout",
	{Rune: ']'}:                                           "size+",
	{Rune: '['}:                                           "size-",
	{Rune: 'i'}:                                           "ink",
	{Rune: 'x'}:                                           "swap",
	{Rune: 'h'}:                                           "lockh",
	{Rune: 'v'}:                                           "lockv",
	{Rune: 'c'}:                                           "cut",
	{Rune: 'p'}:                                           "pen",
	{Rune: 'f'}:                                           "filler",
	{Rune: 'k'}:                                           "picker",
	{Rune: 'm'}:                                           "manipulator",
	{Rune: 'q'}:                                           "quit",
	{Code: key.CodeReturnEnter}:                           "commit",
	{Code: key.CodeEscape}:                                "cancel",
	{Code: key.CodeLeftArrow}:                             "left",
	{Code: key.CodeRightArrow}:                            "right",
	{Code: key.CodeUpArrow}:                               "up",
	{Code: key.CodeDownArrow}:                             "down",
}

func lookupKey(e key.Event) (string, bool) {
	if e.Rune > 0 {
		r := unicode.ToLower(e.Rune)
		mods := e.Modifiers
		if !unicode.IsLetter(r) {
			mods &^= key.ModShift
		}
		if name, ok := keyboardActions[KeyShortcut{Rune: r, Modifiers: mods}]; ok {
			return name, true
		}
	}
	name, ok := keyboardActions[KeyShortcut{Code: e.Code, Modifiers: e.Modifiers}]
	return name, ok
}

type pickedColor struct {
	c color.RGBA
	b tools.Button
}

// editor is the window independent part of the GUI: it turns mouse and key
// events into journal events and produces paint snapshots.
type editor struct {
	player   *journal.Player
	theme    *theme.Theme
	notifier *notify.Notifier
	output   string

	width, height int
	zoom          int
	scroll        image.Point
	pressed       tools.Button
	pick          *pickedColor
	dirty         bool
	quit          bool

	hoverTool, hoverShortcut, hoverSwatch int

	message      string
	messageUntil time.Time

	writeFile    func(string, *raster.Buffer) error
	copySprite   func(*raster.Buffer) error
	pasteSprite  func() (*raster.Buffer, error)
	copyColor    func(color.RGBA) error
	sampleScreen func() (color.RGBA, image.Point, error)
}

func newEditor(a *AppState) *editor {
	tb := a.Toolbox
	if tb == nil {
		tb = tools.NewToolbox()
	}
	th := a.Theme
	if th == nil {
		th = theme.Default()
	}
	ed := &editor{
		theme:         th,
		notifier:      a.Notifier,
		output:        a.Output,
		width:         640,
		height:        480,
		zoom:          minZoom,
		hoverTool:     -1,
		hoverShortcut: -1,
		hoverSwatch:   -1,
		writeFile:     spritefile.Save,
		copySprite:    clipboard.WriteSprite,
		pasteSprite:   clipboard.ReadSprite,
		copyColor:     clipboard.WriteColor,
		sampleScreen:  capture.ColorAtPointer,
	}
	ed.player = journal.NewPlayer(tb, a.Env)
	ed.player.Session = a.Session
	a.Env.Listener = tools.ListenerFuncs{
		Changing: func() { ed.dirty = true },
		Changed: func() {
			ed.dirty = true
			a.NotifyImageChanged()
		},
		Picked: func(c color.RGBA, b tools.Button) { ed.pick = &pickedColor{c: c, b: b} },
	}
	return ed
}

func (ed *editor) env() *tools.Env           { return ed.player.Env }
func (ed *editor) toolbox() *tools.Toolbox   { return ed.player.Toolbox }
func (ed *editor) surface() *raster.Buffer   { return ed.player.Env.Surface }
func (ed *editor) canvasOrigin() image.Point { return canvasRect(ed.width, ed.height).Min.Add(ed.scroll) }

// fitZoom picks the largest zoom that shows the whole sprite.
func (ed *editor) fitZoom() {
	area := canvasRect(ed.width, ed.height)
	s := ed.surface()
	if s.Width() == 0 || s.Height() == 0 {
		return
	}
	ed.zoom = min(max(min(area.Dx()/s.Width(), area.Dy()/s.Height()), minZoom), maxZoom)
}

func (ed *editor) resize(w, h int) {
	ed.width, ed.height = w, h
}

func (ed *editor) setMessage(format string, args ...any) {
	ed.message = fmt.Sprintf(format, args...)
	ed.messageUntil = time.Now().Add(messageTime)
	log.Print(ed.message)
}

func (ed *editor) apply(ev journal.Event) {
	if err := ed.player.Apply(ev); err != nil {
		ed.setMessage("%v", err)
	}
	if p := ed.pick; p != nil {
		ed.pick = nil
		ed.apply(journal.Event{Kind: journal.KindColor, Button: p.b, Arg: theme.Hex(p.c)})
	}
}

// toSprite maps a window position to sprite coordinates, rounding toward
// negative infinity so positions left of the sprite stay negative.
func (ed *editor) toSprite(p image.Point) image.Point {
	d := p.Sub(ed.canvasOrigin())
	return image.Pt(floorDiv(d.X, ed.zoom), floorDiv(d.Y, ed.zoom))
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func buttonOf(b mouse.Button) tools.Button {
	switch b {
	case mouse.ButtonLeft:
		return tools.ButtonPrimary
	case mouse.ButtonRight:
		return tools.ButtonSecondary
	}
	return tools.ButtonNone
}

// handleMouse reports whether the window needs repainting.
func (ed *editor) handleMouse(e mouse.Event) bool {
	p := image.Pt(int(e.X), int(e.Y))
	if e.Direction == mouse.DirStep {
		switch e.Button {
		case mouse.ButtonWheelUp:
			return ed.run("zoomin")
		case mouse.ButtonWheelDown:
			return ed.run("zoomout")
		}
		return false
	}

	if ed.pressed != tools.ButtonNone {
		sp := ed.toSprite(p)
		if sp != ed.toolbox().Mouse().Pos {
			ed.apply(journal.Event{Kind: journal.KindMove, X: sp.X, Y: sp.Y})
		}
		if e.Direction == mouse.DirRelease && buttonOf(e.Button) == ed.pressed {
			ed.apply(journal.Event{Kind: journal.KindRelease, Button: ed.pressed})
			ed.pressed = tools.ButtonNone
		}
		return true
	}

	b := buttonOf(e.Button)
	if e.Direction != mouse.DirPress || b == tools.ButtonNone {
		return ed.hover(p)
	}
	for _, tb := range toolButtons(ed.selectTool) {
		if p.In(tb.Rect()) {
			tb.Activate()
			return true
		}
	}
	for _, sc := range shortcuts(ed.height, func(name string) { ed.run(name) }) {
		if p.In(sc.Rect()) {
			sc.Activate()
			return true
		}
	}
	for i, c := range Palette {
		if p.In(swatchRect(i)) {
			ed.apply(journal.Event{Kind: journal.KindColor, Button: b, Arg: theme.Hex(c)})
			return true
		}
	}
	if !p.In(canvasRect(ed.width, ed.height)) {
		return false
	}
	sp := ed.toSprite(p)
	ed.pressed = b
	ed.apply(journal.Event{Kind: journal.KindPress, Button: b, X: sp.X, Y: sp.Y})
	return true
}

func (ed *editor) hover(p image.Point) bool {
	tool, sc, sw := -1, -1, -1
	for i, tb := range toolButtons(nil) {
		if p.In(tb.Rect()) {
			tool = i
		}
	}
	for i, s := range shortcuts(ed.height, nil) {
		if p.In(s.Rect()) {
			sc = i
		}
	}
	for i := range Palette {
		if p.In(swatchRect(i)) {
			sw = i
		}
	}
	changed := tool != ed.hoverTool || sc != ed.hoverShortcut || sw != ed.hoverSwatch
	ed.hoverTool, ed.hoverShortcut, ed.hoverSwatch = tool, sc, sw
	return changed
}

// handleKey reports whether the window needs repainting. ed.quit is set
// when the user asked to close the window.
func (ed *editor) handleKey(e key.Event) bool {
	if e.Direction == key.DirRelease {
		return false
	}
	name, ok := lookupKey(e)
	if !ok {
		return false
	}
	return ed.run(name)
}

func (ed *editor) selectTool(k tools.Kind) {
	ed.apply(journal.Event{Kind: journal.KindTool, Arg: k.String()})
}

func (ed *editor) toggle(k tools.Kind, name string) {
	prop, ok := ed.toolbox().Tool(k).Properties().Get(name)
	if !ok {
		return
	}
	next := "true"
	if prop.String() == "true" {
		next = "false"
	}
	ed.apply(journal.Event{Kind: journal.KindSet, Arg: fmt.Sprintf("%s %s=%s", k, name, next)})
	ed.setMessage("%s %s", name, next)
}

func (ed *editor) cycleInk() {
	names := ink.Names()
	cur := 0
	if in := ed.env().Primary.Ink; in != nil {
		for i, n := range names {
			if n == in.Name() {
				cur = i
			}
		}
	}
	ed.apply(journal.Event{Kind: journal.KindInk, Button: tools.ButtonPrimary, Arg: names[(cur+1)%len(names)]})
}

func (ed *editor) flattened() *raster.Buffer {
	m := ed.toolbox().Manipulator()
	return render.Flatten(ed.surface(), render.Overlay{Selection: m.Selection(), Floating: m.Image()})
}

// run performs a named action and reports whether a repaint is needed.
func (ed *editor) run(name string) bool {
	env := ed.env()
	switch name {
	case "pen", "filler", "picker", "manipulator":
		k, _ := tools.ParseKind(name)
		ed.selectTool(k)
	case "save":
		ed.save()
	case "copy":
		ed.copy()
	case "copycolor":
		if err := ed.copyColor(env.Primary.Color); err != nil {
			ed.setMessage("copy: %v", err)
			break
		}
		ed.notifier.Copy(theme.Hex(env.Primary.Color))
		ed.setMessage("copied %s", theme.Hex(env.Primary.Color))
	case "paste":
		ed.paste()
	case "grab":
		c, at, err := ed.sampleScreen()
		if err != nil {
			ed.setMessage("grab: %v", err)
			break
		}
		ed.apply(journal.Event{Kind: journal.KindColor, Button: tools.ButtonPrimary, Arg: theme.Hex(c)})
		ed.setMessage("grabbed %s at %d,%d", theme.Hex(c), at.X, at.Y)
	case "zoomin":
		ed.zoom = min(ed.zoom+1, maxZoom)
	case "zoomout":
		ed.zoom = max(ed.zoom-1, minZoom)
	case "size+", "size-":
		n := env.BrushSize + 1
		if name == "size-" {
			n = env.BrushSize - 1
		}
		n = min(max(n, 1), maxBrushSize)
		ed.apply(journal.Event{Kind: journal.KindSize, Arg: fmt.Sprint(n)})
	case "ink":
		ed.cycleInk()
	case "swap":
		p, s := env.Primary.Color, env.Secondary.Color
		ed.apply(journal.Event{Kind: journal.KindColor, Button: tools.ButtonPrimary, Arg: theme.Hex(s)})
		ed.apply(journal.Event{Kind: journal.KindColor, Button: tools.ButtonSecondary, Arg: theme.Hex(p)})
	case "lockh":
		ed.toggle(tools.KindPen, tools.PropLockHorizontal)
	case "lockv":
		ed.toggle(tools.KindPen, tools.PropLockVertical)
	case "cut":
		ed.toggle(tools.KindManipulator, tools.PropCutOnSelect)
	case "commit":
		ed.apply(journal.Event{Kind: journal.KindKey, Key: tools.KeyConfirm})
	case "cancel":
		ed.apply(journal.Event{Kind: journal.KindCancel})
	case "left":
		ed.scroll.X += 4 * ed.zoom
	case "right":
		ed.scroll.X -= 4 * ed.zoom
	case "up":
		ed.scroll.Y += 4 * ed.zoom
	case "down":
		ed.scroll.Y -= 4 * ed.zoom
	case "quit":
		ed.quit = true
	default:
		return false
	}
	return true
}

func (ed *editor) save() {
	if ed.output == "" {
		ed.setMessage("no output file")
		return
	}
	if err := ed.writeFile(ed.output, ed.flattened()); err != nil {
		ed.setMessage("save: %v", err)
		return
	}
	ed.dirty = false
	ed.notifier.Save(ed.output)
	ed.setMessage("saved %s", ed.output)
}

// copy puts the floating image, the selected pixels or the whole sprite on
// the clipboard, in that order of preference.
func (ed *editor) copy() {
	m := ed.toolbox().Manipulator()
	img, what := ed.flattened(), "sprite"
	switch {
	case m.HasImage():
		img, what = m.Image(), "selection"
	case m.HasSelection():
		img, what = ed.surface().CopyRegion(m.Selection()), "selection"
	}
	if err := ed.copySprite(img); err != nil {
		ed.setMessage("copy: %v", err)
		return
	}
	ed.notifier.Copy(what)
	ed.setMessage("copied %s", what)
}

// paste floats the clipboard image at the top-left of the visible canvas.
func (ed *editor) paste() {
	img, err := ed.pasteSprite()
	if err != nil {
		ed.setMessage("paste: %v", err)
		return
	}
	at := ed.toSprite(canvasRect(ed.width, ed.height).Min)
	at = image.Pt(max(at.X, 0), max(at.Y, 0))
	ev, err := journal.FloatEvent(img, at.X, at.Y)
	if err != nil {
		ed.setMessage("paste: %v", err)
		return
	}
	ed.apply(ev)
	ed.setMessage("pasted %dx%d", img.Width(), img.Height())
}

func (ed *editor) info() string {
	env := ed.env()
	inkName := "none"
	if env.Primary.Ink != nil {
		inkName = env.Primary.Ink.Name()
	}
	s := fmt.Sprintf("ink %s  size %d  zoom %dx", inkName, env.BrushSize, ed.zoom)
	if ed.dirty {
		s += "  *"
	}
	return s
}

func (ed *editor) snapshot() paintState {
	m := ed.toolbox().Manipulator()
	opts := render.Options{Zoom: ed.zoom, Checker: 8, Theme: ed.theme, Outline: true}
	if m.HasImage() {
		opts.Shadow = render.DefaultShadowOptions()
	}
	return paintState{
		width:         ed.width,
		height:        ed.height,
		theme:         ed.theme,
		canvas:        render.View(ed.surface(), render.Overlay{Selection: m.Selection(), Floating: m.Image()}, opts),
		canvasAt:      ed.canvasOrigin(),
		active:        ed.toolbox().Active(),
		primary:       ed.env().Primary.Color,
		secondary:     ed.env().Secondary.Color,
		info:          ed.info(),
		hoverTool:     ed.hoverTool,
		hoverShortcut: ed.hoverShortcut,
		hoverSwatch:   ed.hoverSwatch,
		message:       ed.message,
		messageUntil:  ed.messageUntil,
	}
}
