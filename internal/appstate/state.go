// Package appstate is the windowed sprite editor. It draws with shiny and
// turns window events into journal events for the tool engine.
package appstate

import (
	"context"
	"image"
	"log"
	"sync"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/pixler/internal/journal"
	"github.com/example/pixler/internal/notify"
	"github.com/example/pixler/internal/theme"
	"github.com/example/pixler/internal/tools"
)

// AppState holds what the editor window works on.
type AppState struct {
	Env      *tools.Env
	Toolbox  *tools.Toolbox
	Session  *journal.Session
	Theme    *theme.Theme
	Notifier *notify.Notifier
	// Output is where ^S writes the flattened sprite.
	Output string

	updateCh  chan struct{}
	onClose   func()
	closeOnce sync.Once
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithToolbox starts the editor with an existing toolbox and its state.
func WithToolbox(tb *tools.Toolbox) Option { return func(a *AppState) { a.Toolbox = tb } }

// WithSession records every edit into s.
func WithSession(s *journal.Session) Option { return func(a *AppState) { a.Session = s } }

// WithTheme sets the UI colours.
func WithTheme(t *theme.Theme) Option { return func(a *AppState) { a.Theme = t } }

// WithOutput sets the file saved by ^S.
func WithOutput(out string) Option { return func(a *AppState) { a.Output = out } }

// WithNotifier announces saves and clipboard copies.
func WithNotifier(n *notify.Notifier) Option { return func(a *AppState) { a.Notifier = n } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *AppState) { a.onClose = fn } }

// New creates an AppState editing env.Surface.
func New(env *tools.Env, opts ...Option) *AppState {
	a := &AppState{Env: env, updateCh: make(chan struct{}, 1)}
	for _, o := range opts {
		o(a)
	}
	return a
}

// NotifyImageChanged requests a repaint of the UI when the image mutates.
func (a *AppState) NotifyImageChanged() {
	if a.updateCh == nil {
		return
	}
	select {
	case a.updateCh <- struct{}{}:
	default:
	}
}

func (a *AppState) notifyClose() {
	a.closeOnce.Do(func() {
		if a.onClose != nil {
			a.onClose()
		}
	})
}

// Run executes the UI loop using shiny's driver.
func (a *AppState) Run() { driver.Main(a.Main) }

func (a *AppState) Main(s screen.Screen) {
	ed := newEditor(a)
	sw, sh := a.Env.Surface.Width(), a.Env.Surface.Height()
	width := max(paletteWidth+sw*8, 640)
	height := max(toolbarHeight+statusHeight+sh*8, 480)
	ed.resize(width, height)
	ed.fitZoom()

	w, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: "pixler"})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()
	defer a.notifyClose()

	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case <-a.updateCh:
				w.Send(paint.Event{})
			case <-done:
				return
			}
		}
	}()

	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	paintCh := make(chan paintState, 1)
	defer close(paintCh)
	go func() {
		for st := range paintCh {
			ctx, cancel := context.WithCancel(context.Background())
			paintMu.Lock()
			paintCancel = cancel
			paintMu.Unlock()
			drawFrame(ctx, s, w, st)
			paintMu.Lock()
			paintCancel = nil
			if ctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
			cancel()
		}
	}()

	var shownUntil time.Time
	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
		case size.Event:
			ed.resize(e.WidthPx, e.HeightPx)
			w.Send(paint.Event{})
		case paint.Event:
			paintMu.Lock()
			if paintCancel != nil && dropCount < frameDropThreshold {
				paintCancel()
				dropCount++
			}
			paintMu.Unlock()
			st := ed.snapshot()
			select {
			case paintCh <- st:
			default:
				<-paintCh
				paintCh <- st
			}
		case mouse.Event:
			if ed.handleMouse(e) {
				w.Send(paint.Event{})
			}
		case key.Event:
			if ed.handleKey(e) {
				w.Send(paint.Event{})
			}
			if ed.quit {
				return
			}
		}
		if ed.messageUntil != shownUntil {
			// Repaint once more to take the message down.
			shownUntil = ed.messageUntil
			time.AfterFunc(messageTime, func() { w.Send(paint.Event{}) })
		}
	}
}

func drawFrame(ctx context.Context, s screen.Screen, w screen.Window, st paintState) {
	b, err := s.NewBuffer(image.Point{st.width, st.height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()
	if !composeFrame(ctx, b.RGBA(), st) {
		return
	}
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}
