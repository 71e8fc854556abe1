// Package raster holds the pixel surface the drawing tools edit and the
// low-level routines that operate on it: flood fill, line rasterization and
// block translation.
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
)

// ErrOutOfBounds reports a coordinate outside the buffer.
var ErrOutOfBounds = errors.New("coordinate out of bounds")

// BoundsError describes which coordinate missed the buffer.
type BoundsError struct {
	X, Y   int
	Bounds image.Rectangle
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("(%d,%d) outside %v: %v", e.X, e.Y, e.Bounds, ErrOutOfBounds)
}

func (e *BoundsError) Unwrap() error { return ErrOutOfBounds }

// Transparent is the colour cleared regions are set to.
var Transparent = color.RGBA{}

// Buffer is a fixed size grid of RGBA pixels with its origin at (0,0).
type Buffer struct {
	img *image.RGBA
}

// NewBuffer allocates a transparent buffer. Non-positive sizes yield an
// empty buffer.
func NewBuffer(width, height int) *Buffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Buffer{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// FromImage wraps img without copying when it already starts at the origin.
// Other images are copied into a zero based buffer.
func FromImage(img image.Image) *Buffer {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return &Buffer{img: rgba}
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return &Buffer{img: out}
}

// Image exposes the backing image. Writes through it bypass bounds checks.
func (b *Buffer) Image() *image.RGBA { return b.img }

func (b *Buffer) Width() int  { return b.img.Rect.Dx() }
func (b *Buffer) Height() int { return b.img.Rect.Dy() }

// Bounds returns the full rectangle [0,w)x[0,h).
func (b *Buffer) Bounds() image.Rectangle { return b.img.Rect }

// In reports whether (x, y) addresses a pixel.
func (b *Buffer) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.img.Rect.Max.X && y < b.img.Rect.Max.Y
}

// Get returns the pixel at (x, y).
func (b *Buffer) Get(x, y int) (color.RGBA, error) {
	if !b.In(x, y) {
		return color.RGBA{}, &BoundsError{X: x, Y: y, Bounds: b.Bounds()}
	}
	return b.img.RGBAAt(x, y), nil
}

// Set writes c at (x, y).
func (b *Buffer) Set(x, y int, c color.RGBA) error {
	if !b.In(x, y) {
		return &BoundsError{X: x, Y: y, Bounds: b.Bounds()}
	}
	b.img.SetRGBA(x, y, c)
	return nil
}

// Fill sets every pixel to c.
func (b *Buffer) Fill(c color.RGBA) {
	p := b.img.Pix
	for i := 0; i+3 < len(p); i += 4 {
		p[i], p[i+1], p[i+2], p[i+3] = c.R, c.G, c.B, c.A
	}
}

// Clone returns a deep copy.
func (b *Buffer) Clone() *Buffer {
	out := image.NewRGBA(b.img.Rect)
	copy(out.Pix, b.img.Pix)
	return &Buffer{img: out}
}

// Equal reports whether both buffers hold the same size and pixels.
func (b *Buffer) Equal(o *Buffer) bool {
	if b.Bounds() != o.Bounds() {
		return false
	}
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			if b.img.RGBAAt(x, y) != o.img.RGBAAt(x, y) {
				return false
			}
		}
	}
	return true
}

// CopyRegion returns an owned copy of r clipped to the buffer. The copy
// starts at the origin; an empty intersection yields an empty buffer.
func (b *Buffer) CopyRegion(r image.Rectangle) *Buffer {
	src := Clip(r, b.Bounds())
	out := NewBuffer(src.Dx(), src.Dy())
	if src.Empty() {
		return out
	}
	for y := src.Min.Y; y < src.Max.Y; y++ {
		from := b.img.PixOffset(src.Min.X, y)
		to := out.img.PixOffset(0, y-src.Min.Y)
		copy(out.img.Pix[to:to+src.Dx()*4], b.img.Pix[from:from+src.Dx()*4])
	}
	return out
}

// ClearRegion makes every pixel of r (clipped) fully transparent.
func (b *Buffer) ClearRegion(r image.Rectangle) {
	r = Clip(r, b.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		start := b.img.PixOffset(r.Min.X, y)
		row := b.img.Pix[start : start+r.Dx()*4]
		for i := range row {
			row[i] = 0
		}
	}
}

// Paste overwrites the pixels of r with src, placing src's origin at
// r.Min. Only the part of r inside both the buffer and src is written.
func (b *Buffer) Paste(src *Buffer, r image.Rectangle) {
	if src == nil {
		return
	}
	limit := image.Rect(r.Min.X, r.Min.Y, r.Min.X+src.Width(), r.Min.Y+src.Height())
	dst := Clip(r.Intersect(limit), b.Bounds())
	if dst.Empty() {
		return
	}
	n := dst.Dx() * 4
	for y := dst.Min.Y; y < dst.Max.Y; y++ {
		to := b.img.PixOffset(dst.Min.X, y)
		from := src.img.PixOffset(dst.Min.X-r.Min.X, y-r.Min.Y)
		copy(b.img.Pix[to:to+n], src.img.Pix[from:from+n])
	}
}
