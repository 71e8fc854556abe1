// Package termview is a terminal sprite editor built on tcell. Every sprite
// pixel is two terminal cells wide, so mouse positions map exactly onto
// pixels.
package termview

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/example/pixler/internal/ink"
	"github.com/example/pixler/internal/journal"
	"github.com/example/pixler/internal/raster"
	"github.com/example/pixler/internal/render"
	"github.com/example/pixler/internal/theme"
	"github.com/example/pixler/internal/tools"
)

const (
	cellsPerPixel = 2
	toolbarRows   = 1
	statusRows    = 1
)

// Options configures an Editor.
type Options struct {
	Theme   *theme.Theme
	Env     *tools.Env
	Toolbox *tools.Toolbox
	// Session, when set, records every action for later replay.
	Session *journal.Session
	// Save receives the flattened sprite when the user presses 's'.
	Save func(*raster.Buffer) error
}

// Editor holds the terminal UI state.
type Editor struct {
	screen tcell.Screen
	player *journal.Player
	theme  *theme.Theme
	save   func(*raster.Buffer) error

	scroll  image.Point // sprite pixel shown at the canvas top-left
	buttons tcell.ButtonMask
	pick    *pickedColor
	dirty   bool
	status  string
}

type pickedColor struct {
	c color.RGBA
	b tools.Button
}

// New wires an editor to screen. The screen must already be initialised.
func New(screen tcell.Screen, opts Options) *Editor {
	th := opts.Theme
	if th == nil {
		th = theme.Default()
	}
	tb := opts.Toolbox
	if tb == nil {
		tb = tools.NewToolbox()
	}
	e := &Editor{
		screen: screen,
		theme:  th,
		save:   opts.Save,
		status: "p pen  f fill  k pick  m move  +/- size  [ ] ink  s save  q quit",
	}
	e.player = journal.NewPlayer(tb, opts.Env)
	e.player.Session = opts.Session
	opts.Env.Listener = tools.ListenerFuncs{
		Changing: func() { e.dirty = true },
		Changed:  func() { e.dirty = true },
		Picked: func(c color.RGBA, b tools.Button) {
			e.pick = &pickedColor{c: c, b: b}
		},
	}
	return e
}

// Dirty reports whether the sprite changed since the last save.
func (e *Editor) Dirty() bool { return e.dirty }

// Status is the text of the status line.
func (e *Editor) Status() string { return e.status }

// Run draws and processes events until the user quits.
func (e *Editor) Run() error {
	e.screen.EnableMouse()
	defer e.screen.DisableMouse()
	e.Draw()
	for {
		ev := e.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if e.HandleEvent(ev) {
			return nil
		}
		e.Draw()
	}
}

// HandleEvent processes one event and reports whether the editor should
// exit.
func (e *Editor) HandleEvent(ev tcell.Event) bool {
	switch tev := ev.(type) {
	case *tcell.EventResize:
		e.screen.Sync()
	case *tcell.EventMouse:
		e.handleMouse(tev)
	case *tcell.EventKey:
		return e.handleKey(tev)
	}
	return false
}

func (e *Editor) apply(ev journal.Event) {
	if err := e.player.Apply(ev); err != nil {
		e.status = err.Error()
		log.Printf("termview: %v", err)
	}
	if p := e.pick; p != nil {
		e.pick = nil
		e.apply(journal.Event{Kind: journal.KindColor, Button: p.b, Arg: theme.Hex(p.c)})
		e.status = fmt.Sprintf("picked %s for %s", theme.Hex(p.c), p.b)
	}
}

// pixelAt maps a screen cell to sprite coordinates. ok is false outside
// the canvas rows.
func (e *Editor) pixelAt(x, y int) (image.Point, bool) {
	_, h := e.screen.Size()
	if y < toolbarRows || y >= h-statusRows {
		return image.Point{}, false
	}
	return image.Pt(x/cellsPerPixel, y-toolbarRows).Add(e.scroll), true
}

func mouseButton(b tcell.ButtonMask) tools.Button {
	switch {
	case b&tcell.Button1 != 0:
		return tools.ButtonPrimary
	case b&tcell.Button2 != 0:
		return tools.ButtonSecondary
	}
	return tools.ButtonNone
}

func (e *Editor) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	pt, onCanvas := e.pixelAt(x, y)
	prev := mouseButton(e.buttons)
	cur := mouseButton(ev.Buttons())
	e.buttons = ev.Buttons()

	switch {
	case prev == tools.ButtonNone && cur != tools.ButtonNone:
		if onCanvas {
			e.apply(journal.Event{Kind: journal.KindPress, Button: cur, X: pt.X, Y: pt.Y})
		} else if y < toolbarRows {
			e.clickToolbar(x)
		}
	case prev != tools.ButtonNone && cur == tools.ButtonNone:
		if onCanvas {
			e.apply(journal.Event{Kind: journal.KindMove, X: pt.X, Y: pt.Y})
		}
		e.apply(journal.Event{Kind: journal.KindRelease, Button: prev})
	case prev != tools.ButtonNone && onCanvas:
		if pt != e.player.Toolbox.Mouse().Pos {
			e.apply(journal.Event{Kind: journal.KindMove, X: pt.X, Y: pt.Y})
		}
	}
}

func (e *Editor) selectTool(k tools.Kind) {
	e.apply(journal.Event{Kind: journal.KindTool, Arg: k.String()})
	e.status = "tool: " + k.String()
}

func (e *Editor) toggle(k tools.Kind, name string) {
	prop, ok := e.player.Toolbox.Tool(k).Properties().Get(name)
	if !ok {
		return
	}
	next := "true"
	if prop.String() == "true" {
		next = "false"
	}
	e.apply(journal.Event{Kind: journal.KindSet, Arg: fmt.Sprintf("%s %s=%s", k, name, next)})
	e.status = fmt.Sprintf("%s %s = %s", k, name, next)
}

func (e *Editor) cycleInk(step int) {
	names := ink.Names()
	cur := 0
	if in := e.player.Env.Primary.Ink; in != nil {
		for i, n := range names {
			if n == in.Name() {
				cur = i
			}
		}
	}
	next := names[(cur+step+len(names))%len(names)]
	e.apply(journal.Event{Kind: journal.KindInk, Button: tools.ButtonPrimary, Arg: next})
	e.status = "ink: " + next
}

func (e *Editor) resize(delta int) {
	n := min(max(e.player.Env.BrushSize+delta, 1), 64)
	e.apply(journal.Event{Kind: journal.KindSize, Arg: fmt.Sprint(n)})
	e.status = fmt.Sprintf("brush size %d", n)
}

func (e *Editor) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return true
	case tcell.KeyEnter:
		e.apply(journal.Event{Kind: journal.KindKey, Key: tools.KeyConfirm})
	case tcell.KeyEsc:
		e.apply(journal.Event{Kind: journal.KindCancel})
	case tcell.KeyUp:
		e.scroll.Y = max(e.scroll.Y-1, 0)
	case tcell.KeyDown:
		e.scroll.Y++
	case tcell.KeyLeft:
		e.scroll.X = max(e.scroll.X-1, 0)
	case tcell.KeyRight:
		e.scroll.X++
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case 'p':
			e.selectTool(tools.KindPen)
		case 'f':
			e.selectTool(tools.KindFiller)
		case 'k':
			e.selectTool(tools.KindPicker)
		case 'm':
			e.selectTool(tools.KindManipulator)
		case '+', '=':
			e.resize(1)
		case '-':
			e.resize(-1)
		case ']':
			e.cycleInk(1)
		case '[':
			e.cycleInk(-1)
		case 'h':
			e.toggle(tools.KindPen, tools.PropLockHorizontal)
		case 'v':
			e.toggle(tools.KindPen, tools.PropLockVertical)
		case 'c':
			e.toggle(tools.KindManipulator, tools.PropCutOnSelect)
		case 'x':
			env := e.player.Env
			p, s := env.Primary.Color, env.Secondary.Color
			e.apply(journal.Event{Kind: journal.KindColor, Button: tools.ButtonPrimary, Arg: theme.Hex(s)})
			e.apply(journal.Event{Kind: journal.KindColor, Button: tools.ButtonSecondary, Arg: theme.Hex(p)})
		case 's':
			e.doSave()
		}
	}
	return false
}

func (e *Editor) doSave() {
	if e.save == nil {
		e.status = "no output file"
		return
	}
	m := e.player.Toolbox.Manipulator()
	img := render.Flatten(e.player.Env.Surface, render.Overlay{Selection: m.Selection(), Floating: m.Image()})
	if err := e.save(img); err != nil {
		e.status = "save failed: " + err.Error()
		log.Printf("termview: save: %v", err)
		return
	}
	e.dirty = false
	e.status = "saved"
}

// toolbar entries in display order with the hot key shown first.
var toolbar = []struct {
	label string
	kind  tools.Kind
}{
	{"p:pen", tools.KindPen},
	{"f:fill", tools.KindFiller},
	{"k:pick", tools.KindPicker},
	{"m:move", tools.KindManipulator},
}

func (e *Editor) clickToolbar(x int) {
	col := 0
	for _, item := range toolbar {
		w := runewidth.StringWidth(item.label) + 2
		if x >= col && x < col+w {
			e.selectTool(item.kind)
			return
		}
		col += w
	}
}

func style(fg, bg color.RGBA) tcell.Style {
	return tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(int32(fg.R), int32(fg.G), int32(fg.B))).
		Background(tcell.NewRGBColor(int32(bg.R), int32(bg.G), int32(bg.B)))
}

func (e *Editor) putString(x, y int, s string, st tcell.Style) int {
	for _, r := range s {
		e.screen.SetContent(x, y, r, nil, st)
		x += runewidth.RuneWidth(r)
	}
	return x
}

// Draw renders the toolbar, canvas and status line.
func (e *Editor) Draw() {
	w, h := e.screen.Size()
	th := e.theme
	e.screen.Clear()

	bar := style(th.ButtonText, th.ToolbarBackground)
	for x := 0; x < w; x++ {
		e.screen.SetContent(x, 0, ' ', nil, bar)
	}
	x := 0
	active := e.player.Toolbox.Active()
	for _, item := range toolbar {
		st := style(th.ButtonText, th.ButtonBackground)
		if item.kind == active {
			st = style(th.ButtonText, th.ButtonActive)
		}
		x = e.putString(x, 0, " "+item.label+" ", st)
	}
	env := e.player.Env
	x = e.putString(x+1, 0, fmt.Sprintf("size %d ", env.BrushSize), bar)
	x = e.putString(x, 0, "  ", style(env.Primary.Color, env.Primary.Color))
	x = e.putString(x, 0, "  ", style(env.Secondary.Color, env.Secondary.Color))
	if env.Primary.Ink != nil {
		e.putString(x+1, 0, env.Primary.Ink.Name(), bar)
	}

	e.drawCanvas(w, h)

	st := style(th.StatusText, th.StatusBackground)
	line := runewidth.FillRight(runewidth.Truncate(e.statusLine(), w, "…"), w)
	e.putString(0, h-1, line, st)
	e.screen.Show()
}

func (e *Editor) statusLine() string {
	m := e.player.Toolbox.Mouse()
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d,%d ", m.Pos.X, m.Pos.Y)
	if e.dirty {
		sb.WriteString("* ")
	}
	if sel := e.player.Toolbox.Manipulator().Selection(); !sel.Empty() {
		fmt.Fprintf(&sb, "sel %dx%d ", sel.Dx(), sel.Dy())
	}
	sb.WriteString(e.status)
	return sb.String()
}

func (e *Editor) drawCanvas(w, h int) {
	m := e.player.Toolbox.Manipulator()
	view := render.View(e.player.Env.Surface, render.Overlay{Selection: m.Selection(), Floating: m.Image()},
		render.Options{Zoom: 1, Checker: 4, Theme: e.theme})
	sel := m.Selection()
	bg := style(e.theme.Foreground, e.theme.Background)
	for row := toolbarRows; row < h-statusRows; row++ {
		for col := 0; col < w; col++ {
			p := image.Pt(col/cellsPerPixel, row-toolbarRows).Add(e.scroll)
			if !p.In(view.Bounds()) {
				e.screen.SetContent(col, row, ' ', nil, bg)
				continue
			}
			c := view.RGBAAt(p.X, p.Y)
			st := style(e.theme.SelectionDark, c)
			ch := ' '
			if p.In(sel) && onEdge(p, sel) {
				ch = '·'
			}
			e.screen.SetContent(col, row, ch, nil, st)
		}
	}
}

func onEdge(p image.Point, r image.Rectangle) bool {
	return p.X == r.Min.X || p.Y == r.Min.Y || p.X == r.Max.X-1 || p.Y == r.Max.Y-1
}
