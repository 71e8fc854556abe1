package notify

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/pixler/internal/config"
	"github.com/example/pixler/internal/platform"
	"github.com/example/pixler/internal/raster"
)

// Event identifies a notification trigger.
type Event string

const (
	// EventSave fires when a sprite is written to disk.
	EventSave Event = "save"
	// EventCopy fires when a sprite or colour lands on the clipboard.
	EventCopy Event = "copy"
	// EventGrab fires when pixels are imported from the screen.
	EventGrab Event = "grab"
)

var templates = map[Event]string{
	EventSave: "Saved %s",
	EventCopy: "Copied %s to clipboard",
	EventGrab: "Grabbed %s",
}

// Sender delivers a notification. platform.Notify is the default.
type Sender func(title, body string, opts platform.Options) error

// Notifier sends desktop notifications for the events enabled in config.
type Notifier struct {
	Title   string
	enabled map[Event]bool
	send    Sender
}

// New enables events according to cfg. A nil cfg enables nothing.
func New(cfg *config.Config) *Notifier {
	n := &Notifier{Title: "Pixler", enabled: make(map[Event]bool), send: platform.Notify}
	if cfg != nil {
		n.enabled[EventSave] = cfg.Notify.Save
		n.enabled[EventCopy] = cfg.Notify.Copy
		n.enabled[EventGrab] = cfg.Notify.Grab
	}
	return n
}

// WithSender replaces the delivery function, mostly for tests.
func (n *Notifier) WithSender(s Sender) *Notifier {
	n.send = s
	return n
}

// Enable toggles the notifier for the provided event.
func (n *Notifier) Enable(event Event, on bool) {
	if n == nil {
		return
	}
	n.enabled[event] = on
}

// Enabled reports whether event will produce a notification.
func (n *Notifier) Enabled(event Event) bool {
	return n != nil && n.enabled[event]
}

// Save announces a written file and uses it as the notification icon.
func (n *Notifier) Save(path string) {
	if !n.Enabled(EventSave) {
		return
	}
	detail := strings.TrimSpace(path)
	opts := platform.Options{}
	if abs, err := filepath.Abs(path); err == nil {
		detail = abs
		if _, err := os.Stat(abs); err == nil {
			opts.IconPath = abs
		}
	}
	n.dispatch(EventSave, detail, opts)
}

// Copy announces a clipboard write. detail defaults to "sprite".
func (n *Notifier) Copy(detail string) {
	if !n.Enabled(EventCopy) {
		return
	}
	if strings.TrimSpace(detail) == "" {
		detail = "sprite"
	}
	n.dispatch(EventCopy, detail, platform.Options{})
}

// Grab announces a screen import with the sprite dimensions.
func (n *Notifier) Grab(b *raster.Buffer) {
	if !n.Enabled(EventGrab) || b == nil {
		return
	}
	n.dispatch(EventGrab, fmt.Sprintf("%dx%d pixels", b.Width(), b.Height()), platform.Options{})
}

func (n *Notifier) dispatch(event Event, detail string, opts platform.Options) {
	body := fmt.Sprintf(templates[event], strings.TrimSpace(detail))
	if err := n.send(n.Title, body, opts); err != nil {
		log.Printf("notification %s: %v", event, err)
	}
}
