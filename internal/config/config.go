package config

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/example/pixler/internal/theme"
)

// Notify holds notification settings.
type Notify struct {
	Save bool
	Copy bool
	Grab bool
}

// Tools holds the initial tool properties.
type Tools struct {
	CutOnSelect    bool
	ReturnLastTool bool
	DefaultTool    string
}

// Config holds the application configuration.
type Config struct {
	Theme          string
	SaveDir        string
	BrushSize      int
	PrimaryColor   color.RGBA
	SecondaryColor color.RGBA
	PrimaryInk     string
	SecondaryInk   string
	Notify         Notify
	Tools          Tools
	Themes         map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme:          "", // Default to empty to allow fallback to Env/Default
		BrushSize:      1,
		PrimaryColor:   color.RGBA{0, 0, 0, 255},
		SecondaryColor: color.RGBA{255, 255, 255, 255},
		PrimaryInk:     "overwrite",
		SecondaryInk:   "overwrite",
		Tools: Tools{
			CutOnSelect:    true,
			ReturnLastTool: true,
			DefaultTool:    "pen",
		},
		Themes: make(map[string]*theme.Theme),
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	// Root section
	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	fmt.Fprintf(&sb, "brush_size = %d\n", c.BrushSize)
	fmt.Fprintf(&sb, "primary_color = %s\n", theme.Hex(c.PrimaryColor))
	fmt.Fprintf(&sb, "secondary_color = %s\n", theme.Hex(c.SecondaryColor))
	fmt.Fprintf(&sb, "primary_ink = %s\n", c.PrimaryInk)
	fmt.Fprintf(&sb, "secondary_ink = %s\n", c.SecondaryInk)
	sb.WriteString("\n")

	// Notify section
	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	fmt.Fprintf(&sb, "grab = %v\n", c.Notify.Grab)
	sb.WriteString("\n")

	// Tools section
	sb.WriteString("[tools]\n")
	fmt.Fprintf(&sb, "cut_on_select = %v\n", c.Tools.CutOnSelect)
	fmt.Fprintf(&sb, "return_last_tool = %v\n", c.Tools.ReturnLastTool)
	if c.Tools.DefaultTool != "" {
		fmt.Fprintf(&sb, "default_tool = %s\n", c.Tools.DefaultTool)
	}
	sb.WriteString("\n")

	// Themes sections
	// Sort keys for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		for _, f := range theme.Fields(t) {
			fmt.Fprintf(&sb, "%s: %s\n", f.Name, theme.Hex(f.Color))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
