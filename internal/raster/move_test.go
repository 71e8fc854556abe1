package raster

import (
	"image"
	"testing"
)

func TestTranslateClearsSource(t *testing.T) {
	b := NewBuffer(5, 5)
	_ = b.Set(1, 1, red)
	_ = b.Set(4, 4, green)
	Translate(b, 2, 1)
	if c, _ := b.Get(3, 2); c != red {
		t.Fatalf("expected red at (3,2), got %v", c)
	}
	if c, _ := b.Get(1, 1); c != Transparent {
		t.Fatalf("source not cleared: %v", c)
	}
	// Pushed off the right edge.
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			if c, _ := b.Get(x, y); c == green {
				t.Fatalf("pixel moved off-canvas reappeared at (%d,%d)", x, y)
			}
		}
	}
}

func TestTranslateNegative(t *testing.T) {
	b := NewBuffer(4, 4)
	b.Fill(red)
	Translate(b, -1, -3)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			c, _ := b.Get(x, y)
			want := Transparent
			if x < 3 && y < 1 {
				want = red
			}
			if c != want {
				t.Fatalf("(%d,%d) = %v want %v", x, y, c, want)
			}
		}
	}
}

func TestTranslateRegion(t *testing.T) {
	b := NewBuffer(6, 6)
	b.Fill(black)
	_ = b.Set(1, 1, red)
	TranslateRegion(b, image.Rect(0, 0, 2, 2), 3, 3)
	if c, _ := b.Get(4, 4); c != red {
		t.Fatalf("block not moved: %v", c)
	}
	if c, _ := b.Get(0, 0); c != Transparent {
		t.Fatalf("source not cleared")
	}
	if c, _ := b.Get(5, 5); c != black {
		t.Fatalf("pixels outside the block changed")
	}
}

func TestTranslateZeroIsNoop(t *testing.T) {
	b := NewBuffer(3, 3)
	b.Fill(red)
	Translate(b, 0, 0)
	if c, _ := b.Get(0, 0); c != red {
		t.Fatalf("zero translation cleared pixels")
	}
}
