package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/example/pixler/internal/appstate"
	"github.com/example/pixler/internal/ink"
	"github.com/example/pixler/internal/raster"
	"github.com/example/pixler/internal/theme"
)

// newCmd writes a blank sprite.
type newCmd struct {
	command
	width       int
	height      int
	colorSpec   string
	output      string
	toClipboard bool
}

func parseNewCmd(args []string, r *root) (*newCmd, error) {
	n := &newCmd{command: newCommand(r, "new")}
	n.fs.Usage = usageFunc(n)
	n.fs.IntVar(&n.width, "w", 32, "sprite width")
	n.fs.IntVar(&n.height, "h", 32, "sprite height")
	n.fs.StringVar(&n.colorSpec, "color", "transparent", "fill color name or hex value")
	n.fs.StringVar(&n.output, "output", "", "output file path")
	n.fs.BoolVar(&n.toClipboard, "to-clipboard", false, "copy the sprite to the clipboard")
	n.fs.BoolVar(&n.toClipboard, "to-clip", false, "copy the sprite to the clipboard (alias)")
	if err := n.fs.Parse(args); err != nil {
		return nil, err
	}
	if n.fs.NArg() != 0 {
		return nil, &UsageError{of: n}
	}
	if n.width < 1 || n.height < 1 {
		return nil, fmt.Errorf("sprite size must be positive, got %dx%d", n.width, n.height)
	}
	if n.output == "" && !n.toClipboard {
		return nil, fmt.Errorf("output file is required unless -to-clipboard is set")
	}
	return n, nil
}

func (n *newCmd) Run() error {
	c, err := theme.ParseColor(n.colorSpec)
	if err != nil {
		return fmt.Errorf("new: %w", err)
	}
	b := raster.NewBuffer(n.width, n.height)
	b.Fill(c)
	return n.writeSprite(b, n.output, n.toClipboard)
}

type inksCmd struct {
	command
}

func parseInksCmd(args []string, r *root) (*inksCmd, error) {
	c := &inksCmd{command: newCommand(r, "inks")}
	c.fs.Usage = usageFunc(c)
	if err := c.fs.Parse(args); err != nil {
		return nil, err
	}
	if c.fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *inksCmd) Run() error {
	current := strings.ToLower(c.cfg().PrimaryInk)
	fmt.Fprintln(c.stdout(), "available inks (* marks the configured primary ink):")
	for _, name := range ink.Names() {
		marker := " "
		if name == current {
			marker = "*"
		}
		fmt.Fprintf(c.stdout(), "%s %s\n", marker, name)
	}
	return nil
}

type colorsCmd struct {
	command
}

func parseColorsCmd(args []string, r *root) (*colorsCmd, error) {
	c := &colorsCmd{command: newCommand(r, "colors")}
	c.fs.Usage = usageFunc(c)
	if err := c.fs.Parse(args); err != nil {
		return nil, err
	}
	if c.fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *colorsCmd) Run() error {
	primary := c.cfg().PrimaryColor
	swatches := isTerminal(c.stdout())
	fmt.Fprintln(c.stdout(), "palette colors (* marks the configured primary color):")
	for idx, col := range appstate.Palette {
		marker := " "
		if col == primary {
			marker = "*"
		}
		block := ""
		if swatches && col.A != 0 {
			block = fmt.Sprintf("\x1b[48;2;%d;%d;%dm  \x1b[0m", col.R, col.G, col.B)
		}
		fmt.Fprintf(c.stdout(), "%s %2d: %-10s %s\n", marker, idx, theme.Hex(col), block)
	}
	return nil
}

// isTerminal reports whether w is a terminal that can show colour swatches.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

type themesCmd struct {
	command
}

func parseThemesCmd(args []string, r *root) (*themesCmd, error) {
	c := &themesCmd{command: newCommand(r, "themes")}
	c.fs.Usage = usageFunc(c)
	if err := c.fs.Parse(args); err != nil {
		return nil, err
	}
	if c.fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *themesCmd) Run() error {
	active := c.theme().Name
	names := append([]string{"default"}, theme.NewLoader().Names()...)
	for name := range c.cfg().Themes {
		names = append(names, name)
	}
	fmt.Fprintln(c.stdout(), "available themes (* marks the active theme):")
	seen := map[string]bool{}
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		marker := " "
		if strings.EqualFold(name, active) {
			marker = "*"
		}
		fmt.Fprintf(c.stdout(), "%s %s\n", marker, name)
	}
	return nil
}
