package notify

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/example/pixler/internal/config"
	"github.com/example/pixler/internal/platform"
	"github.com/example/pixler/internal/raster"
)

type sent struct {
	title, body string
	opts        platform.Options
}

func recorder(out *[]sent) Sender {
	return func(title, body string, opts platform.Options) error {
		*out = append(*out, sent{title, body, opts})
		return nil
	}
}

func TestEventsFollowConfig(t *testing.T) {
	cfg := config.New()
	cfg.Notify.Copy = true
	var got []sent
	n := New(cfg).WithSender(recorder(&got))

	n.Save("a.png")
	n.Grab(raster.NewBuffer(4, 3))
	n.Copy("")
	if len(got) != 1 {
		t.Fatalf("sent %d notifications, want 1", len(got))
	}
	if got[0].body != "Copied sprite to clipboard" || got[0].title != "Pixler" {
		t.Fatalf("got %+v", got[0])
	}

	n.Enable(EventGrab, true)
	n.Grab(raster.NewBuffer(4, 3))
	if got[1].body != "Grabbed 4x3 pixels" {
		t.Fatalf("grab body %q", got[1].body)
	}
}

func TestSaveUsesFileAsIcon(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.png")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	var got []sent
	n := New(nil).WithSender(recorder(&got))
	n.Enable(EventSave, true)
	n.Save(path)
	if len(got) != 1 || got[0].opts.IconPath != path || got[0].body != "Saved "+path {
		t.Fatalf("got %+v", got)
	}
}

func TestSendErrorIsLogged(t *testing.T) {
	n := New(nil).WithSender(func(string, string, platform.Options) error { return errors.New("no bus") })
	n.Enable(EventCopy, true)
	n.Copy("#FF0000")
}

func TestNilNotifier(t *testing.T) {
	var n *Notifier
	n.Save("x")
	n.Copy("x")
	n.Enable(EventSave, true)
	if n.Enabled(EventSave) {
		t.Fatal("nil notifier enabled")
	}
}
