package spritefile

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/example/pixler/internal/raster"
)

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.png")
	b := raster.NewBuffer(3, 3)
	_ = b.Set(1, 2, color.RGBA{9, 8, 7, 255})
	if err := Save(path, b); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(b) {
		t.Fatal("loaded sprite differs")
	}
	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Fatalf("left %d files behind", len(entries))
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.png")); !os.IsNotExist(err) {
		t.Fatalf("err = %v", err)
	}
	bad := filepath.Join(dir, "bad.png")
	if err := os.WriteFile(bad, []byte("nope"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestLoadOrNew(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.png")
	b, err := LoadOrNew(path, 4, 2)
	if err != nil {
		t.Fatal(err)
	}
	if b.Width() != 4 || b.Height() != 2 {
		t.Fatalf("size %dx%d", b.Width(), b.Height())
	}
	if _, err := LoadOrNew(path, 0, 0); err == nil {
		t.Fatal("expected error without a size")
	}
}
