// Package render turns a sprite and its pending selection into the images
// the editors put on screen.
package render

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"

	"github.com/example/pixler/internal/raster"
	"github.com/example/pixler/internal/theme"
)

// Overlay is the selection state drawn above the surface.
type Overlay struct {
	Selection image.Rectangle
	Floating  *raster.Buffer
}

// Options controls View.
type Options struct {
	Zoom    int // screen pixels per sprite pixel, at least 1
	Checker int // checkerboard cell size in screen pixels
	Theme   *theme.Theme
	Shadow  ShadowOptions // cast by the floating image; zero opacity disables
	Outline bool          // draw the dashed selection outline
	Phase   int           // dash offset, advanced by the caller to animate
}

// View renders the surface over a checkerboard at the requested zoom, with
// the floating image and selection outline on top.
func View(surface *raster.Buffer, ov Overlay, opts Options) *image.RGBA {
	zoom := max(opts.Zoom, 1)
	th := opts.Theme
	if th == nil {
		th = theme.Default()
	}
	out := image.NewRGBA(image.Rect(0, 0, surface.Width()*zoom, surface.Height()*zoom))
	Checkerboard(out, out.Bounds(), max(opts.Checker, 1), th.CheckerLight, th.CheckerDark)
	draw.Draw(out, out.Bounds(), Scale(surface.Image(), zoom), image.Point{}, draw.Over)

	sel := image.Rectangle{Min: ov.Selection.Min.Mul(zoom), Max: ov.Selection.Max.Mul(zoom)}
	if ov.Floating != nil {
		lifted := DropShadow(Scale(ov.Floating.Image(), zoom), opts.Shadow)
		at := sel.Min.Sub(lifted.Offset)
		draw.Draw(out, lifted.Image.Bounds().Add(at), lifted.Image, image.Point{}, draw.Over)
	}
	if opts.Outline && !sel.Empty() {
		Outline(out, sel, opts.Phase, th.SelectionLight, th.SelectionDark)
	}
	return out
}

// Flatten returns the sprite as it would be after committing the floating
// image, without any decoration.
func Flatten(surface *raster.Buffer, ov Overlay) *raster.Buffer {
	out := surface.Clone()
	if ov.Floating != nil {
		out.Paste(ov.Floating, ov.Selection)
	}
	return out
}

// Scale enlarges src by an integer factor with nearest-neighbour sampling.
func Scale(src *image.RGBA, zoom int) *image.RGBA {
	if zoom <= 1 {
		return src
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*zoom, b.Dy()*zoom))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	return dst
}

// Checkerboard fills r with alternating cells, aligned to dst's origin so
// the pattern does not shift when r changes.
func Checkerboard(dst *image.RGBA, r image.Rectangle, cell int, light, dark color.RGBA) {
	r = r.Intersect(dst.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := light
			if (x/cell+y/cell)%2 == 1 {
				c = dark
			}
			dst.SetRGBA(x, y, c)
		}
	}
}

const dashLen = 4

// Outline draws a one pixel dashed border just inside r. Dashes alternate
// between the two colours and shift by phase.
func Outline(dst *image.RGBA, r image.Rectangle, phase int, light, dark color.RGBA) {
	if r.Empty() {
		return
	}
	n := 0
	put := func(x, y int) {
		c := light
		if ((n+phase)/dashLen)%2 == 1 {
			c = dark
		}
		n++
		if (image.Point{x, y}).In(dst.Bounds()) {
			dst.SetRGBA(x, y, c)
		}
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		put(x, r.Min.Y)
	}
	for y := r.Min.Y + 1; y < r.Max.Y; y++ {
		put(r.Max.X-1, y)
	}
	if r.Dy() > 1 {
		for x := r.Max.X - 2; x >= r.Min.X; x-- {
			put(x, r.Max.Y-1)
		}
	}
	if r.Dx() > 1 {
		for y := r.Max.Y - 2; y > r.Min.Y; y-- {
			put(r.Min.X, y)
		}
	}
}
