package raster

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

var (
	red   = color.RGBA{R: 255, A: 255}
	green = color.RGBA{G: 255, A: 255}
	black = color.RGBA{A: 255}
	white = color.RGBA{255, 255, 255, 255}
)

func TestGetSetOutOfBounds(t *testing.T) {
	b := NewBuffer(4, 3)
	for _, p := range []image.Point{{-1, 0}, {0, -1}, {4, 0}, {0, 3}} {
		if _, err := b.Get(p.X, p.Y); !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("Get%v: expected ErrOutOfBounds, got %v", p, err)
		}
		err := b.Set(p.X, p.Y, red)
		var be *BoundsError
		if !errors.As(err, &be) || be.X != p.X || be.Y != p.Y {
			t.Fatalf("Set%v: expected BoundsError, got %v", p, err)
		}
	}
	if err := b.Set(3, 2, red); err != nil {
		t.Fatalf("Set in bounds: %v", err)
	}
	got, err := b.Get(3, 2)
	if err != nil || got != red {
		t.Fatalf("Get(3,2) = %v, %v", got, err)
	}
}

func TestFromImageRebasesOrigin(t *testing.T) {
	img := image.NewRGBA(image.Rect(10, 10, 13, 12))
	img.SetRGBA(10, 10, red)
	b := FromImage(img)
	if b.Bounds() != image.Rect(0, 0, 3, 2) {
		t.Fatalf("bounds %v", b.Bounds())
	}
	if c, _ := b.Get(0, 0); c != red {
		t.Fatalf("pixel not carried over: %v", c)
	}

	zero := image.NewRGBA(image.Rect(0, 0, 2, 2))
	if FromImage(zero).Image() != zero {
		t.Fatalf("zero based image should be wrapped, not copied")
	}
}

func TestCopyRegionClipsPartialOverlap(t *testing.T) {
	b := NewBuffer(5, 5)
	b.Fill(black)
	_ = b.Set(4, 4, red)
	sub := b.CopyRegion(image.Rect(3, 3, 9, 9))
	if sub.Width() != 2 || sub.Height() != 2 {
		t.Fatalf("unexpected size %dx%d", sub.Width(), sub.Height())
	}
	if c, _ := sub.Get(1, 1); c != red {
		t.Fatalf("expected red at (1,1), got %v", c)
	}
	if empty := b.CopyRegion(image.Rect(20, 20, 30, 30)); empty.Width() != 0 || empty.Height() != 0 {
		t.Fatalf("expected empty copy")
	}
}

func TestCopyRegionIsDeep(t *testing.T) {
	b := NewBuffer(3, 3)
	b.Fill(green)
	sub := b.CopyRegion(b.Bounds())
	b.Fill(red)
	if c, _ := sub.Get(1, 1); c != green {
		t.Fatalf("copy aliases the source: %v", c)
	}
}

func TestClearRegion(t *testing.T) {
	b := NewBuffer(4, 4)
	b.Fill(white)
	b.ClearRegion(image.Rect(2, 2, 10, 10))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			c, _ := b.Get(x, y)
			want := white
			if x >= 2 && y >= 2 {
				want = Transparent
			}
			if c != want {
				t.Fatalf("pixel (%d,%d) = %v want %v", x, y, c, want)
			}
		}
	}
}

func TestPasteConfinedToRect(t *testing.T) {
	b := NewBuffer(4, 4)
	src := NewBuffer(3, 3)
	src.Fill(red)
	b.Paste(src, image.Rect(2, 2, 5, 5))
	count := 0
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if c, _ := b.Get(x, y); c == red {
				count++
			}
		}
	}
	if count != 4 {
		t.Fatalf("expected 4 pasted pixels, got %d", count)
	}
	b.Paste(src, image.Rect(-2, -2, 1, 1))
	if c, _ := b.Get(0, 0); c != red {
		t.Fatalf("expected paste at negative offset to reach (0,0)")
	}
	if c, _ := b.Get(1, 0); c == red {
		t.Fatalf("paste leaked outside its rectangle")
	}
}

func TestEqualAndClone(t *testing.T) {
	b := NewBuffer(2, 2)
	b.Fill(red)
	c := b.Clone()
	if !b.Equal(c) {
		t.Fatalf("clone differs")
	}
	_ = c.Set(0, 0, green)
	if b.Equal(c) {
		t.Fatalf("clone shares pixels")
	}
}
