package journal

import (
	"errors"
	"image/color"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/pixler/internal/ink"
	"github.com/example/pixler/internal/raster"
	"github.com/example/pixler/internal/tools"
)

const script = `
# draw a red dot, then fill the rest blue
color primary red
ink primary overwrite
press primary 1 1
release
tool filler
color primary #0000FF
press primary 0 0
release primary
`

func newEnv(w, h int) *tools.Env {
	b := raster.NewBuffer(w, h)
	b.Fill(color.RGBA{A: 255})
	return &tools.Env{
		Surface:   b,
		Primary:   tools.Paint{Color: color.RGBA{A: 255}, Ink: ink.Overwrite{}},
		Secondary: tools.Paint{Color: color.RGBA{255, 255, 255, 255}, Ink: ink.Overwrite{}},
		BrushSize: 1,
	}
}

func TestParseScriptAndReplay(t *testing.T) {
	events, err := ParseScript(strings.NewReader(script))
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 8 {
		t.Fatalf("parsed %d events", len(events))
	}

	env := newEnv(4, 4)
	tb, err := Replay(events, env)
	if err != nil {
		t.Fatal(err)
	}
	if tb.Active() != tools.KindFiller {
		t.Errorf("active tool = %v", tb.Active())
	}
	if c, _ := env.Surface.Get(1, 1); c != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("(1,1) = %v", c)
	}
	if c, _ := env.Surface.Get(3, 3); c != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("(3,3) = %v", c)
	}
}

func TestParseLineErrors(t *testing.T) {
	for _, line := range []string{
		"press primary 1",
		"press middle 1 1",
		"move x 1",
		"key escape",
		"color 1 2 3",
		"set pen",
		"teleport 1 1",
	} {
		if _, err := ParseLine(line); err == nil {
			t.Errorf("ParseLine(%q) succeeded", line)
		}
	}
	_, err := ParseScript(strings.NewReader("move 1 1\nbogus\n"))
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("err = %v", err)
	}
}

func TestEventStringRoundTrip(t *testing.T) {
	for _, line := range []string{
		"press secondary 3 -2",
		"move 5 6",
		"release",
		"release primary",
		"key confirm",
		"tool manipulator",
		"color secondary #FF00FF80",
		"ink primary blend",
		"size 4",
		"set manipulator cut_on_select=false",
		"cancel",
		"float 2 -1 iVBORw0KGgo=",
	} {
		ev, err := ParseLine(line)
		if err != nil {
			t.Fatalf("ParseLine(%q): %v", line, err)
		}
		if got := ev.String(); got != line {
			t.Errorf("String() = %q, want %q", got, line)
		}
	}
}

func TestFloatEventPastesImage(t *testing.T) {
	img := raster.NewBuffer(2, 1)
	_ = img.Set(0, 0, color.RGBA{0, 255, 0, 255})
	_ = img.Set(1, 0, color.RGBA{0, 255, 0, 255})
	ev, err := FloatEvent(img, 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	parsed, err := ParseLine(ev.String())
	if err != nil {
		t.Fatal(err)
	}

	env := newEnv(4, 4)
	p := NewPlayer(tools.NewToolbox(), env)
	if err := p.ApplyAll([]Event{parsed, {Kind: KindKey, Key: tools.KeyConfirm}}); err != nil {
		t.Fatal(err)
	}
	if p.Toolbox.Active() != tools.KindManipulator {
		t.Errorf("active = %v", p.Toolbox.Active())
	}
	for _, x := range []int{1, 2} {
		if c, _ := env.Surface.Get(x, 2); c != (color.RGBA{0, 255, 0, 255}) {
			t.Errorf("(%d,2) = %v", x, c)
		}
	}
}

func TestCancelDropsFloatingImage(t *testing.T) {
	img := raster.NewBuffer(1, 1)
	_ = img.Set(0, 0, color.RGBA{255, 255, 0, 255})
	ev, err := FloatEvent(img, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	env := newEnv(2, 2)
	tb, err := Replay([]Event{ev, {Kind: KindCancel}}, env)
	if err != nil {
		t.Fatal(err)
	}
	if tb.Manipulator().HasImage() {
		t.Fatal("floating image survived cancel")
	}
	if c, _ := env.Surface.Get(0, 0); c != (color.RGBA{A: 255}) {
		t.Fatalf("(0,0) = %v", c)
	}
	if _, err := DecodeImage("!!"); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestPlayerRejectsBadArguments(t *testing.T) {
	p := NewPlayer(tools.NewToolbox(), newEnv(2, 2))
	for _, ev := range []Event{
		{Kind: KindTool, Arg: "lasso"},
		{Kind: KindColor, Button: tools.ButtonPrimary, Arg: "nocolor"},
		{Kind: KindInk, Button: tools.ButtonPrimary, Arg: "glitter"},
		{Kind: KindSize, Arg: "0"},
		{Kind: KindSet, Arg: "pen nope=1"},
		{Kind: "warp"},
	} {
		if err := p.Apply(ev); err == nil {
			t.Errorf("Apply(%+v) succeeded", ev)
		}
	}
	if err := p.Apply(Event{Kind: KindInk, Button: tools.ButtonPrimary, Arg: "glitter"}); !errors.Is(err, ink.ErrUnknownInk) {
		t.Errorf("err = %v", err)
	}
}

func TestStoreRecordsAndReplays(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "sub", "journal.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	if _, err := store.Latest(); !errors.Is(err, ErrNoSession) {
		t.Fatalf("Latest on empty journal: %v", err)
	}

	events, err := ParseScript(strings.NewReader(script))
	if err != nil {
		t.Fatal(err)
	}

	session, err := store.Begin(4, 4, "dot and fill")
	if err != nil {
		t.Fatal(err)
	}
	env := newEnv(4, 4)
	p := NewPlayer(tools.NewToolbox(), env)
	p.Session = session
	if err := p.ApplyAll(events); err != nil {
		t.Fatal(err)
	}

	infos, err := store.Sessions()
	if err != nil {
		t.Fatal(err)
	}
	if len(infos) != 1 || infos[0].Events != len(events) || infos[0].Width != 4 || infos[0].Note != "dot and fill" {
		t.Fatalf("sessions = %+v", infos)
	}
	latest, err := store.Latest()
	if err != nil || latest != session.ID {
		t.Fatalf("Latest = %d, %v", latest, err)
	}

	stored, err := store.Events(session.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != len(events) {
		t.Fatalf("stored %d events", len(stored))
	}
	if stored[0].Tool != "pen" || stored[len(stored)-1].Tool != "filler" {
		t.Errorf("tool column = %q .. %q", stored[0].Tool, stored[len(stored)-1].Tool)
	}

	replayed := newEnv(4, 4)
	if _, err := Replay(stored, replayed); err != nil {
		t.Fatal(err)
	}
	if !replayed.Surface.Equal(env.Surface) {
		t.Fatal("replay differs from the recorded edit")
	}

	if err := store.Delete(session.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Events(session.ID); !errors.Is(err, ErrNoSession) {
		t.Fatalf("Events after delete: %v", err)
	}
}

func TestReopenKeepsSessions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	store, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	s, err := store.Begin(8, 8, "")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Record(Event{Kind: KindMove, X: 1, Y: 2}); err != nil {
		t.Fatal(err)
	}
	store.Close()

	store, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	evs, err := store.Events(s.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(evs) != 1 || evs[0].X != 1 || evs[0].Y != 2 {
		t.Fatalf("events = %+v", evs)
	}
}
