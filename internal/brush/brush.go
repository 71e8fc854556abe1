// Package brush stamps square brush footprints onto a raster buffer through
// an ink.
package brush

import (
	"image"
	"image/color"
	"math"

	"github.com/example/pixler/internal/ink"
	"github.com/example/pixler/internal/raster"
)

// Stamp paints a size x size footprint centred on pixel c and returns the
// number of pixels written. Cells outside the buffer are skipped; a size
// below one or a nil ink paints nothing.
func Stamp(b *raster.Buffer, c image.Point, size int, in ink.Ink, col color.RGBA) int {
	if in == nil || size < 1 {
		return 0
	}
	return apply(b, footprintPixels(raster.Footprint(c, size)), in, col)
}

// StampAt paints a footprint for a fractional pointer position, placing its
// origin at floor(pos - size/2).
func StampAt(b *raster.Buffer, x, y float64, size int, in ink.Ink, col color.RGBA) int {
	if in == nil || size < 1 {
		return 0
	}
	half := float64(size) / 2
	o := image.Pt(int(math.Floor(x-half)), int(math.Floor(y-half)))
	r := image.Rect(o.X, o.Y, o.X+size, o.Y+size)
	return apply(b, footprintPixels(r), in, col)
}

// Line paints the stroke from p0 to p1. Every covered pixel is composited
// once. With continuing set, the footprint at p0 is assumed painted already
// and is left alone.
func Line(b *raster.Buffer, p0, p1 image.Point, size int, in ink.Ink, col color.RGBA, continuing bool) int {
	if in == nil || size < 1 {
		return 0
	}
	return apply(b, raster.Stroke(p0, p1, size, continuing), in, col)
}

func footprintPixels(r image.Rectangle) []image.Point {
	pts := make([]image.Point, 0, r.Dx()*r.Dy())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			pts = append(pts, image.Pt(x, y))
		}
	}
	return pts
}

func apply(b *raster.Buffer, pts []image.Point, in ink.Ink, col color.RGBA) int {
	img := b.Image()
	n := 0
	for _, p := range pts {
		if !b.In(p.X, p.Y) {
			continue
		}
		img.SetRGBA(p.X, p.Y, in.Apply(img.RGBAAt(p.X, p.Y), col))
		n++
	}
	return n
}
