package appstate

import (
	"context"
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/pixler/internal/ink"
	"github.com/example/pixler/internal/journal"
	"github.com/example/pixler/internal/notify"
	"github.com/example/pixler/internal/platform"
	"github.com/example/pixler/internal/raster"
	"github.com/example/pixler/internal/spritefile"
	"github.com/example/pixler/internal/tools"
)

var (
	red   = color.RGBA{255, 0, 0, 255}
	green = color.RGBA{0, 255, 0, 255}
	blue  = color.RGBA{0, 0, 255, 255}
)

const zoom = 4

func newEnv() *tools.Env {
	return &tools.Env{
		Surface:   raster.NewBuffer(8, 8),
		Primary:   tools.Paint{Color: red, Ink: ink.Overwrite{}},
		Secondary: tools.Paint{Color: color.RGBA{255, 255, 255, 255}, Ink: ink.Overwrite{}},
		BrushSize: 1,
	}
}

func newTestEditor(t *testing.T, env *tools.Env, opts ...Option) *editor {
	t.Helper()
	ed := newEditor(New(env, opts...))
	ed.resize(640, 480)
	ed.zoom = zoom
	ed.copySprite = func(*raster.Buffer) error { return errors.New("no clipboard") }
	ed.pasteSprite = func() (*raster.Buffer, error) { return nil, errors.New("no clipboard") }
	ed.copyColor = func(color.RGBA) error { return errors.New("no clipboard") }
	ed.sampleScreen = func() (color.RGBA, image.Point, error) { return color.RGBA{}, image.Point{}, errors.New("no display") }
	return ed
}

// at returns the window position of the centre of sprite pixel (x, y).
func at(x, y int) (float32, float32) {
	return float32(paletteWidth + x*zoom + zoom/2), float32(toolbarHeight + y*zoom + zoom/2)
}

func press(ed *editor, b mouse.Button, x, y int) {
	px, py := at(x, y)
	ed.handleMouse(mouse.Event{X: px, Y: py, Button: b, Direction: mouse.DirPress})
}

func drag(ed *editor, x, y int) {
	px, py := at(x, y)
	ed.handleMouse(mouse.Event{X: px, Y: py, Direction: mouse.DirNone})
}

func release(ed *editor, b mouse.Button, x, y int) {
	px, py := at(x, y)
	ed.handleMouse(mouse.Event{X: px, Y: py, Button: b, Direction: mouse.DirRelease})
}

func click(ed *editor, b mouse.Button, x, y int) {
	press(ed, b, x, y)
	release(ed, b, x, y)
}

func typeKey(ed *editor, r rune, mods key.Modifiers) bool {
	return ed.handleKey(key.Event{Rune: r, Modifiers: mods, Direction: key.DirPress})
}

func TestClickPaintsPixel(t *testing.T) {
	env := newEnv()
	ed := newTestEditor(t, env)
	click(ed, mouse.ButtonLeft, 2, 3)
	if c, _ := env.Surface.Get(2, 3); c != red {
		t.Fatalf("(2,3) = %v", c)
	}
	if !ed.dirty {
		t.Fatal("editor not dirty after painting")
	}
}

func TestDragDrawsLine(t *testing.T) {
	env := newEnv()
	ed := newTestEditor(t, env)
	press(ed, mouse.ButtonLeft, 0, 0)
	drag(ed, 5, 0)
	release(ed, mouse.ButtonLeft, 5, 0)
	for x := 0; x <= 5; x++ {
		if c, _ := env.Surface.Get(x, 0); c != red {
			t.Fatalf("(%d,0) = %v", x, c)
		}
	}
	if ed.pressed != tools.ButtonNone {
		t.Fatal("button still held after release")
	}
}

func TestToolbarAndKeys(t *testing.T) {
	env := newEnv()
	tb := tools.NewToolbox()
	ed := newTestEditor(t, env, WithToolbox(tb))

	ed.handleMouse(mouse.Event{X: paletteWidth + toolWidth + 10, Y: 10, Button: mouse.ButtonLeft, Direction: mouse.DirPress})
	if tb.Active() != tools.KindFiller {
		t.Fatalf("active = %v", tb.Active())
	}
	typeKey(ed, 'p', 0)
	if tb.Active() != tools.KindPen {
		t.Fatalf("active = %v", tb.Active())
	}
	typeKey(ed, '+', key.ModShift)
	if ed.zoom != zoom+1 {
		t.Fatalf("zoom = %d", ed.zoom)
	}
	typeKey(ed, ']', 0)
	if env.BrushSize != 2 {
		t.Fatalf("brush size = %d", env.BrushSize)
	}
	typeKey(ed, 'i', 0)
	if env.Primary.Ink.Name() == "overwrite" {
		t.Fatal("ink did not cycle")
	}
	typeKey(ed, 'x', 0)
	if env.Secondary.Color != red {
		t.Fatalf("swap: secondary = %v", env.Secondary.Color)
	}
	if ed.handleKey(key.Event{Rune: 'z', Direction: key.DirPress}) {
		t.Fatal("unbound key repainted")
	}
	typeKey(ed, 'q', 0)
	if !ed.quit {
		t.Fatal("q did not quit")
	}
}

func TestPenLockToggle(t *testing.T) {
	tb := tools.NewToolbox()
	ed := newTestEditor(t, newEnv(), WithToolbox(tb))
	typeKey(ed, 'h', 0)
	if !tb.Pen().Properties().Bool(tools.PropLockHorizontal) {
		t.Fatal("horizontal lock not enabled")
	}
	typeKey(ed, 'c', 0)
	if tb.Manipulator().Properties().Bool(tools.PropCutOnSelect) {
		t.Fatal("cut_on_select not toggled off")
	}
}

func TestPaletteSetsColors(t *testing.T) {
	env := newEnv()
	ed := newTestEditor(t, env)
	r := swatchRect(4)
	ed.handleMouse(mouse.Event{X: float32(r.Min.X + 2), Y: float32(r.Min.Y + 2), Button: mouse.ButtonRight, Direction: mouse.DirPress})
	if env.Secondary.Color != blue {
		t.Fatalf("secondary = %v", env.Secondary.Color)
	}
	r = swatchRect(3)
	ed.handleMouse(mouse.Event{X: float32(r.Min.X + 2), Y: float32(r.Min.Y + 2), Button: mouse.ButtonLeft, Direction: mouse.DirPress})
	if env.Primary.Color != green {
		t.Fatalf("primary = %v", env.Primary.Color)
	}
}

func TestPickerSetsColor(t *testing.T) {
	env := newEnv()
	_ = env.Surface.Set(1, 1, green)
	tb := tools.NewToolbox()
	ed := newTestEditor(t, env, WithToolbox(tb))
	typeKey(ed, 'k', 0)
	click(ed, mouse.ButtonRight, 1, 1)
	if env.Secondary.Color != green {
		t.Fatalf("secondary = %v", env.Secondary.Color)
	}
	if tb.Active() != tools.KindPen {
		t.Fatalf("picker did not return to the pen: %v", tb.Active())
	}
}

func TestPasteSaveAndNotify(t *testing.T) {
	env := newEnv()
	tb := tools.NewToolbox()
	var notes []string
	n := notify.New(nil).WithSender(func(_, body string, _ platform.Options) error {
		notes = append(notes, body)
		return nil
	})
	n.Enable(notify.EventSave, true)
	out := filepath.Join(t.TempDir(), "out.png")
	ed := newTestEditor(t, env, WithToolbox(tb), WithOutput(out), WithNotifier(n))

	clip := raster.NewBuffer(2, 2)
	clip.Fill(green)
	ed.pasteSprite = func() (*raster.Buffer, error) { return clip, nil }
	typeKey(ed, 'v', key.ModControl)
	if !tb.Manipulator().HasImage() || tb.Active() != tools.KindManipulator {
		t.Fatal("paste did not float the clipboard image")
	}

	typeKey(ed, 's', key.ModControl)
	saved, err := spritefile.Load(out)
	if err != nil {
		t.Fatal(err)
	}
	if c, _ := saved.Get(1, 1); c != green {
		t.Fatalf("saved (1,1) = %v", c)
	}
	if c, _ := env.Surface.Get(1, 1); c != raster.Transparent {
		t.Fatal("saving committed the floating image")
	}
	if len(notes) != 1 || notes[0] != "Saved "+out {
		t.Fatalf("notifications = %q", notes)
	}

	ed.handleKey(key.Event{Code: key.CodeReturnEnter, Direction: key.DirPress})
	if c, _ := env.Surface.Get(1, 1); c != green {
		t.Fatal("enter did not commit the floating image")
	}
}

func TestCopyPrefersFloatingImage(t *testing.T) {
	env := newEnv()
	ed := newTestEditor(t, env)
	var copied *raster.Buffer
	ed.copySprite = func(b *raster.Buffer) error {
		copied = b
		return nil
	}
	typeKey(ed, 'c', key.ModControl)
	if copied == nil || copied.Width() != 8 {
		t.Fatalf("copied %v, want whole sprite", copied)
	}

	clip := raster.NewBuffer(3, 1)
	ed.pasteSprite = func() (*raster.Buffer, error) { return clip, nil }
	typeKey(ed, 'v', key.ModControl)
	typeKey(ed, 'c', key.ModControl)
	if copied.Width() != 3 || copied.Height() != 1 {
		t.Fatalf("copied %dx%d, want the floating image", copied.Width(), copied.Height())
	}
}

func TestGrabSetsPrimary(t *testing.T) {
	env := newEnv()
	ed := newTestEditor(t, env)
	typeKey(ed, 'g', 0)
	if env.Primary.Color != red {
		t.Fatal("failed grab changed the colour")
	}
	if ed.message == "" {
		t.Fatal("failed grab left no message")
	}
	ed.sampleScreen = func() (color.RGBA, image.Point, error) { return blue, image.Pt(3, 4), nil }
	typeKey(ed, 'g', 0)
	if env.Primary.Color != blue {
		t.Fatalf("primary = %v", env.Primary.Color)
	}
}

func TestWheelAndScroll(t *testing.T) {
	ed := newTestEditor(t, newEnv())
	ed.handleMouse(mouse.Event{X: 200, Y: 200, Button: mouse.ButtonWheelDown, Direction: mouse.DirStep})
	if ed.zoom != zoom-1 {
		t.Fatalf("zoom = %d", ed.zoom)
	}
	ed.handleKey(key.Event{Code: key.CodeLeftArrow, Direction: key.DirPress})
	if ed.scroll.X <= 0 {
		t.Fatalf("scroll = %v", ed.scroll)
	}
	if got := ed.toSprite(ed.canvasOrigin().Sub(image.Pt(1, 1))); got != image.Pt(-1, -1) {
		t.Fatalf("toSprite left of origin = %v", got)
	}
}

func TestFitZoom(t *testing.T) {
	ed := newTestEditor(t, newEnv())
	ed.fitZoom()
	area := canvasRect(640, 480)
	if want := min(area.Dx()/8, area.Dy()/8, maxZoom); ed.zoom != want {
		t.Fatalf("zoom = %d, want %d", ed.zoom, want)
	}
}

func TestComposeFrame(t *testing.T) {
	env := newEnv()
	_ = env.Surface.Set(0, 0, red)
	ed := newTestEditor(t, env)
	st := ed.snapshot()
	dst := image.NewRGBA(image.Rect(0, 0, 640, 480))
	if !composeFrame(context.Background(), dst, st) {
		t.Fatal("frame not completed")
	}
	px, py := at(0, 0)
	if got := dst.RGBAAt(int(px), int(py)); got != red {
		t.Fatalf("canvas pixel = %v", got)
	}
	if got := dst.RGBAAt(paletteWidth+toolWidth-4, 3); got != ed.theme.ButtonActive {
		t.Fatalf("active tool button = %v", got)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if composeFrame(ctx, dst, st) {
		t.Fatal("canceled frame reported complete")
	}
}

func TestSessionReplaysGUIEdits(t *testing.T) {
	store, err := journal.Open(filepath.Join(t.TempDir(), "j.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	session, err := store.Begin(8, 8, "gui")
	if err != nil {
		t.Fatal(err)
	}

	env := newEnv()
	ed := newTestEditor(t, env, WithSession(session))
	click(ed, mouse.ButtonLeft, 4, 4)
	clip := raster.NewBuffer(2, 1)
	clip.Fill(blue)
	ed.pasteSprite = func() (*raster.Buffer, error) { return clip, nil }
	typeKey(ed, 'v', key.ModControl)
	ed.handleKey(key.Event{Code: key.CodeReturnEnter, Direction: key.DirPress})

	events, err := store.Events(session.ID)
	if err != nil {
		t.Fatal(err)
	}
	replayed := newEnv()
	if _, err := journal.Replay(events, replayed); err != nil {
		t.Fatal(err)
	}
	if !replayed.Surface.Equal(env.Surface) {
		t.Fatal("replayed session differs")
	}
}

func TestLookupKey(t *testing.T) {
	cases := []struct {
		e    key.Event
		want string
	}{
		{key.Event{Rune: 'S', Modifiers: key.ModControl | key.ModShift}, ""},
		{key.Event{Rune: 'c', Modifiers: key.ModControl | key.ModShift}, "copycolor"},
		{key.Event{Rune: '+', Modifiers: key.ModShift}, "zoomin"},
		{key.Event{Rune: 'P'}, "pen"},
		{key.Event{Code: key.CodeEscape}, "cancel"},
	}
	for _, c := range cases {
		got, _ := lookupKey(c.e)
		if got != c.want {
			t.Errorf("lookupKey(%+v) = %q, want %q", c.e, got, c.want)
		}
	}
}
