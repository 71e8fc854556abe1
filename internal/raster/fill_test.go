package raster

import (
	"image"
	"testing"
)

func TestFloodFillWholeBuffer(t *testing.T) {
	b := NewBuffer(10, 10)
	b.Fill(black)
	if n := FloodFill(b, 5, 5, white); n != 100 {
		t.Fatalf("expected 100 pixels filled, got %d", n)
	}
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if c, _ := b.Get(x, y); c != white {
				t.Fatalf("pixel (%d,%d) = %v", x, y, c)
			}
		}
	}
}

func TestFloodFillSameColourIsNoop(t *testing.T) {
	b := NewBuffer(6, 6)
	b.Fill(red)
	before := b.Clone()
	if n := FloodFill(b, 2, 2, red); n != 0 {
		t.Fatalf("expected no-op, filled %d", n)
	}
	if !b.Equal(before) {
		t.Fatalf("buffer changed")
	}
}

func TestFloodFillOutsideSeed(t *testing.T) {
	b := NewBuffer(3, 3)
	if n := FloodFill(b, 3, 0, red); n != 0 {
		t.Fatalf("expected seed outside to be ignored")
	}
}

func TestFloodFillStopsAtBoundary(t *testing.T) {
	// A red wall at x=4 splits the buffer. Its gap at (4,4) is sealed on
	// the left by (3,4), leaving only diagonal contact.
	b := NewBuffer(9, 9)
	b.Fill(black)
	for y := 0; y < 9; y++ {
		_ = b.Set(4, y, red)
	}
	// Diagonal neighbours are not 4-connected.
	_ = b.Set(4, 4, black)
	_ = b.Set(3, 4, red)
	_ = b.Set(5, 3, red)
	before := b.Clone()

	n := FloodFill(b, 0, 0, white)
	for y := 0; y < 9; y++ {
		for x := 0; x < 9; x++ {
			c, _ := b.Get(x, y)
			orig, _ := before.Get(x, y)
			if x < 4 && orig == black {
				if c != white {
					t.Fatalf("(%d,%d) should be filled", x, y)
				}
				continue
			}
			if c != orig {
				t.Fatalf("(%d,%d) changed outside the region: %v -> %v", x, y, orig, c)
			}
		}
	}
	if n != 4*9-1 {
		t.Fatalf("expected %d pixels, got %d", 4*9-1, n)
	}
}

func TestFloodFillConcaveRegion(t *testing.T) {
	// Ring shaped region: spans split around the box and rejoin below it.
	rows := []string{
		"#.....#",
		"#.###.#",
		"#.#.#.#",
		"#.###.#",
		"#.....#",
	}
	b := NewBuffer(len(rows[0]), len(rows))
	for y, row := range rows {
		for x, ch := range row {
			if ch == '#' {
				_ = b.Set(x, y, red)
			} else {
				_ = b.Set(x, y, black)
			}
		}
	}
	FloodFill(b, 1, 4, green)
	for y, row := range rows {
		for x, ch := range row {
			c, _ := b.Get(x, y)
			inner := image.Pt(x, y) == image.Pt(3, 2)
			switch {
			case ch == '#' && c != red:
				t.Fatalf("wall (%d,%d) overwritten", x, y)
			case ch == '.' && inner && c != black:
				t.Fatalf("enclosed pixel (%d,%d) was filled", x, y)
			case ch == '.' && !inner && c != green:
				t.Fatalf("reachable pixel (%d,%d) not filled", x, y)
			}
		}
	}
}

func TestFloodFillLargeRegionIsStackSafe(t *testing.T) {
	b := NewBuffer(1024, 1024)
	if n := FloodFill(b, 0, 0, red); n != 1024*1024 {
		t.Fatalf("filled %d", n)
	}
}
