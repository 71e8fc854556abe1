package config

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	input := `
theme = my_custom_theme
save_dir = /tmp/sprites
brush_size = 4
primary_color = #FF000080
secondary_color = navy
primary_ink = blend

[notify]
save = true
copy = false
grab = true

[tools]
cut_on_select = false
default_tool = filler

[theme.my_custom_theme]
Background = #111111
Foreground = #FFFFFF
`
	r := strings.NewReader(input)
	cfg, err := Parse(r)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Theme != "my_custom_theme" {
		t.Errorf("Expected theme 'my_custom_theme', got '%s'", cfg.Theme)
	}
	if cfg.SaveDir != "/tmp/sprites" {
		t.Errorf("Expected save_dir '/tmp/sprites', got '%s'", cfg.SaveDir)
	}
	if cfg.BrushSize != 4 {
		t.Errorf("Expected brush_size 4, got %d", cfg.BrushSize)
	}
	if cfg.PrimaryColor != (color.RGBA{255, 0, 0, 128}) {
		t.Errorf("Unexpected primary_color: %+v", cfg.PrimaryColor)
	}
	if cfg.SecondaryColor != (color.RGBA{0, 0, 128, 255}) {
		t.Errorf("Unexpected secondary_color: %+v", cfg.SecondaryColor)
	}
	if cfg.PrimaryInk != "blend" || cfg.SecondaryInk != "overwrite" {
		t.Errorf("Unexpected inks: %q %q", cfg.PrimaryInk, cfg.SecondaryInk)
	}

	if !cfg.Notify.Save || cfg.Notify.Copy || !cfg.Notify.Grab {
		t.Errorf("Unexpected notify: %+v", cfg.Notify)
	}
	if cfg.Tools.CutOnSelect {
		t.Error("Expected tools.cut_on_select to be false")
	}
	if !cfg.Tools.ReturnLastTool {
		t.Error("Expected tools.return_last_tool to keep its default")
	}
	if cfg.Tools.DefaultTool != "filler" {
		t.Errorf("Expected default_tool 'filler', got %q", cfg.Tools.DefaultTool)
	}

	theme, ok := cfg.Themes["my_custom_theme"]
	if !ok {
		t.Fatal("Expected theme 'my_custom_theme' to be loaded")
	}

	if theme.Background.R != 0x11 || theme.Background.G != 0x11 || theme.Background.B != 0x11 {
		t.Errorf("Unexpected Background color: %+v", theme.Background)
	}
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{
		"brush_size = 0",
		"brush_size = big",
		"primary_color = #12",
		"[notify]\nsave = sometimes",
		"[tools]\ncut_on_select = perhaps",
		"[theme.x]\nBackground: nothing",
	} {
		if _, err := Parse(strings.NewReader(input)); err == nil {
			t.Errorf("Parse(%q) succeeded", input)
		}
	}
}

func TestCircular(t *testing.T) {
	input := `theme = dark
save_dir = /home/user/sprites
brush_size = 3
primary_color = #102030
secondary_color = #FFFFFF00
primary_ink = lighten
secondary_ink = erase

[notify]
save = true
copy = false
grab = true

[tools]
cut_on_select = false
return_last_tool = false
default_tool = manipulator

[theme.custom]
Name = custom
Background = #000000
Foreground = #FFFFFF
`
	// 1. Parse initial input
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}

	// 2. Generate string representation
	generated := cfg.String()

	// 3. Parse generated string
	cfg2, err := Parse(strings.NewReader(generated))
	if err != nil {
		t.Fatalf("Circular parse failed: %v", err)
	}

	// 4. Compare relevant fields
	if cfg.Theme != cfg2.Theme {
		t.Errorf("Theme mismatch: %q vs %q", cfg.Theme, cfg2.Theme)
	}
	if cfg.SaveDir != cfg2.SaveDir {
		t.Errorf("SaveDir mismatch: %q vs %q", cfg.SaveDir, cfg2.SaveDir)
	}
	if cfg.BrushSize != cfg2.BrushSize {
		t.Errorf("BrushSize mismatch: %d vs %d", cfg.BrushSize, cfg2.BrushSize)
	}
	if cfg.PrimaryColor != cfg2.PrimaryColor || cfg.SecondaryColor != cfg2.SecondaryColor {
		t.Errorf("Color mismatch: %v/%v vs %v/%v", cfg.PrimaryColor, cfg.SecondaryColor, cfg2.PrimaryColor, cfg2.SecondaryColor)
	}
	if cfg.PrimaryInk != cfg2.PrimaryInk || cfg.SecondaryInk != cfg2.SecondaryInk {
		t.Errorf("Ink mismatch")
	}
	if cfg.Notify != cfg2.Notify {
		t.Errorf("Notify mismatch: %+v vs %+v", cfg.Notify, cfg2.Notify)
	}
	if cfg.Tools != cfg2.Tools {
		t.Errorf("Tools mismatch: %+v vs %+v", cfg.Tools, cfg2.Tools)
	}

	// Check theme persistence
	t1 := cfg.Themes["custom"]
	t2 := cfg2.Themes["custom"]
	if t1 == nil || t2 == nil {
		t.Fatalf("Custom theme missing in one config")
	}
	if *t1 != *t2 {
		t.Errorf("Theme mismatch: %+v vs %+v", t1, t2)
	}
}

func TestLoaderOverrideAndSave(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "pixler.rc")
	l := NewLoader("v1", path)

	if l.GetConfigPath() != "" {
		t.Fatalf("expected no config before saving")
	}
	cfg, err := l.Load()
	if err != nil {
		t.Fatal(err)
	}
	cfg.BrushSize = 7
	written, err := l.Save(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if written != path {
		t.Fatalf("saved to %s", written)
	}

	loaded, err := l.Load()
	if err != nil {
		t.Fatal(err)
	}
	if loaded.BrushSize != 7 {
		t.Errorf("BrushSize = %d", loaded.BrushSize)
	}
}

func TestLoaderDevModeLocalFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile(filepath.Join(dir, ".pixlerrc"), []byte("brush_size = 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := NewLoader("dev", "").Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BrushSize != 2 {
		t.Errorf("BrushSize = %d", cfg.BrushSize)
	}

	cfg, err = NewLoader("v1.0.0", "").Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BrushSize != 1 {
		t.Errorf("release build read the local rc file")
	}
}
