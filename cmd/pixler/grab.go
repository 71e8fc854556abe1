package main

import (
	"fmt"
	"image"

	"github.com/example/pixler/internal/capture"
	"github.com/example/pixler/internal/raster"
)

var (
	grabRegionFn   = capture.Region
	grabMonitorFn  = capture.Monitor
	listMonitorsFn = capture.ListMonitors
)

// grabCmd imports pixels from the screen as a new sprite.
type grabCmd struct {
	command
	x, y, w, h  int
	monitor     string
	list        bool
	output      string
	toClipboard bool
}

func parseGrabCmd(args []string, r *root) (*grabCmd, error) {
	g := &grabCmd{command: newCommand(r, "grab")}
	g.fs.Usage = usageFunc(g)
	g.fs.IntVar(&g.x, "x", 0, "left edge of the region in screen pixels")
	g.fs.IntVar(&g.y, "y", 0, "top edge of the region in screen pixels")
	g.fs.IntVar(&g.w, "w", 0, "region width")
	g.fs.IntVar(&g.h, "h", 0, "region height")
	g.fs.StringVar(&g.monitor, "monitor", "", "grab a whole monitor: primary, an index or part of its name")
	g.fs.BoolVar(&g.list, "list", false, "list monitors instead of grabbing")
	g.fs.StringVar(&g.output, "output", "", "output file path")
	g.fs.BoolVar(&g.toClipboard, "to-clipboard", false, "copy the grabbed sprite to the clipboard")
	g.fs.BoolVar(&g.toClipboard, "to-clip", false, "copy the grabbed sprite to the clipboard (alias)")
	if err := g.fs.Parse(args); err != nil {
		return nil, err
	}
	if g.fs.NArg() != 0 {
		return nil, &UsageError{of: g}
	}
	if g.list {
		return g, nil
	}
	if g.monitor == "" && (g.w <= 0 || g.h <= 0) {
		return nil, fmt.Errorf("either -monitor or a positive -w and -h is required")
	}
	if g.output == "" && !g.toClipboard {
		return nil, fmt.Errorf("output file is required unless -to-clipboard is set")
	}
	return g, nil
}

func (g *grabCmd) Run() error {
	if g.list {
		return g.listMonitors()
	}
	var (
		b    *raster.Buffer
		err  error
		what string
	)
	if g.monitor != "" {
		what = "monitor " + g.monitor
		b, err = grabMonitorFn(g.monitor)
	} else {
		rect := image.Rect(g.x, g.y, g.x+g.w, g.y+g.h)
		what = "region " + rect.String()
		b, err = grabRegionFn(rect)
	}
	if err != nil {
		return fmt.Errorf("grab %s: %w", what, err)
	}
	g.notifyGrab(b)
	return g.writeSprite(b, g.output, g.toClipboard)
}

func (g *grabCmd) listMonitors() error {
	monitors, err := listMonitorsFn()
	if err != nil {
		return fmt.Errorf("grab: %w", err)
	}
	fmt.Fprintln(g.stdout(), "available monitors (* marks the primary monitor):")
	for _, m := range monitors {
		marker := " "
		if m.Primary {
			marker = "*"
		}
		fmt.Fprintf(g.stdout(), "%s %d: %-12s %dx%d+%d+%d\n",
			marker, m.Index, m.Name, m.Rect.Dx(), m.Rect.Dy(), m.Rect.Min.X, m.Rect.Min.Y)
	}
	return nil
}
