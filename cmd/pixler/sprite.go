package main

import (
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/example/pixler/internal/clipboard"
	"github.com/example/pixler/internal/config"
	"github.com/example/pixler/internal/ink"
	"github.com/example/pixler/internal/journal"
	"github.com/example/pixler/internal/raster"
	"github.com/example/pixler/internal/render"
	"github.com/example/pixler/internal/spritefile"
	"github.com/example/pixler/internal/theme"
	"github.com/example/pixler/internal/tools"
)

var (
	writeClipboardFn = clipboard.WriteSprite
	readClipboardFn  = clipboard.ReadSprite
)

func (r *root) cfg() *config.Config {
	if r == nil || r.config == nil {
		return config.New()
	}
	return r.config
}

func (r *root) theme() *theme.Theme {
	if r == nil || r.activeTheme == nil {
		return theme.Default()
	}
	return r.activeTheme
}

// baseEnv is the state every editing session starts from before the
// configured setup events run. Replays start from it too.
func baseEnv(b *raster.Buffer) *tools.Env {
	return &tools.Env{
		Surface:   b,
		Primary:   tools.Paint{Color: color.RGBA{0, 0, 0, 255}, Ink: ink.Overwrite{}},
		Secondary: tools.Paint{Color: color.RGBA{255, 255, 255, 255}, Ink: ink.Overwrite{}},
		BrushSize: 1,
	}
}

// setupEvents turns the configured colours, inks and tool settings into
// journal events so that a recorded session carries its own starting state.
func setupEvents(cfg *config.Config) []journal.Event {
	size := min(max(cfg.BrushSize, 1), 64)
	events := []journal.Event{
		{Kind: journal.KindColor, Button: tools.ButtonPrimary, Arg: theme.Hex(cfg.PrimaryColor)},
		{Kind: journal.KindColor, Button: tools.ButtonSecondary, Arg: theme.Hex(cfg.SecondaryColor)},
		{Kind: journal.KindSize, Arg: strconv.Itoa(size)},
		{Kind: journal.KindSet, Arg: fmt.Sprintf("%s %s=%t", tools.KindManipulator, tools.PropCutOnSelect, cfg.Tools.CutOnSelect)},
		{Kind: journal.KindSet, Arg: fmt.Sprintf("%s %s=%t", tools.KindPicker, tools.PropReturnLastTool, cfg.Tools.ReturnLastTool)},
	}
	if cfg.PrimaryInk != "" {
		events = append(events, journal.Event{Kind: journal.KindInk, Button: tools.ButtonPrimary, Arg: cfg.PrimaryInk})
	}
	if cfg.SecondaryInk != "" {
		events = append(events, journal.Event{Kind: journal.KindInk, Button: tools.ButtonSecondary, Arg: cfg.SecondaryInk})
	}
	if cfg.Tools.DefaultTool != "" {
		events = append(events, journal.Event{Kind: journal.KindTool, Arg: cfg.Tools.DefaultTool})
	}
	return events
}

// prepare builds the environment and toolbox for editing b, recording the
// setup into session when one is given.
func (r *root) prepare(b *raster.Buffer, session *journal.Session) (*tools.Env, *tools.Toolbox, error) {
	env := baseEnv(b)
	tb := tools.NewToolbox()
	p := journal.NewPlayer(tb, env)
	p.Session = session
	if err := p.ApplyAll(setupEvents(r.cfg())); err != nil {
		return nil, nil, fmt.Errorf("config: %w", err)
	}
	return env, tb, nil
}

// loadSprite reads the input sprite. An empty path or a missing file gives
// a blank sprite of the fallback size; fromClipboard reads the clipboard.
func loadSprite(path string, fromClipboard bool, width, height int) (*raster.Buffer, error) {
	if fromClipboard {
		b, err := readClipboardFn()
		if err != nil {
			return nil, fmt.Errorf("read clipboard: %w", err)
		}
		return b, nil
	}
	if path == "" {
		return raster.NewBuffer(width, height), nil
	}
	b, err := spritefile.LoadOrNew(path, width, height)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return b, nil
}

// flatten pastes a selection left floating so the result matches what the
// editor showed.
func flatten(env *tools.Env, tb *tools.Toolbox) *raster.Buffer {
	m := tb.Manipulator()
	return render.Flatten(env.Surface, render.Overlay{Selection: m.Selection(), Floating: m.Image()})
}

// writeSprite saves b to output and, when asked, copies it to the
// clipboard. Either may be skipped but not both.
func (r *root) writeSprite(b *raster.Buffer, output string, toClipboard bool) error {
	if output == "" && !toClipboard {
		return fmt.Errorf("output file is required unless -to-clipboard is set")
	}
	if output != "" {
		if dir := r.cfg().SaveDir; dir != "" && !filepath.IsAbs(output) && filepath.Dir(output) == "." {
			output = filepath.Join(dir, output)
		}
		if err := spritefile.Save(output, b); err != nil {
			return fmt.Errorf("save %s: %w", output, err)
		}
		fmt.Fprintf(os.Stderr, "saved %s\n", output)
		r.notifySave(output)
	}
	if toClipboard {
		if err := writeClipboardFn(b); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		r.notifyCopy(fmt.Sprintf("%dx%d sprite", b.Width(), b.Height()))
	}
	return nil
}

// openJournal opens path and starts a session when path is set.
func openJournal(path string, b *raster.Buffer, note string) (*journal.Store, *journal.Session, error) {
	if path == "" {
		return nil, nil, nil
	}
	store, err := journal.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open journal: %w", err)
	}
	session, err := store.Begin(b.Width(), b.Height(), note)
	if err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("begin session: %w", err)
	}
	log.Printf("recording session %d to %s", session.ID, path)
	return store, session, nil
}

func sessionNote(cmd, file string) string {
	return fmt.Sprintf("%s %s %s", cmd, file, time.Now().Format(time.RFC3339))
}

func (r *root) notifySave(path string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Save(path)
}

func (r *root) notifyCopy(detail string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Copy(detail)
}

func (r *root) notifyGrab(b *raster.Buffer) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Grab(b)
}
