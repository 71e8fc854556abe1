package raster

import (
	"image"
	"image/color"
)

// FloodFill replaces the 4-connected region of pixels sharing the seed's
// colour with target and returns the number of pixels written. Seeds outside
// the buffer and seeds already holding target are no-ops.
//
// The fill works on horizontal spans with an explicit stack, so its depth
// is bounded by the number of pending spans rather than the region size.
func FloodFill(b *Buffer, seedX, seedY int, target color.RGBA) int {
	if !b.In(seedX, seedY) {
		return 0
	}
	img := b.img
	boundary := img.RGBAAt(seedX, seedY)
	if boundary == target {
		return 0
	}
	w, h := b.Width(), b.Height()
	match := func(x, y int) bool {
		i := img.PixOffset(x, y)
		p := img.Pix[i : i+4 : i+4]
		return p[0] == boundary.R && p[1] == boundary.G && p[2] == boundary.B && p[3] == boundary.A
	}

	filled := 0
	stack := []image.Point{{X: seedX, Y: seedY}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !match(p.X, p.Y) {
			continue
		}
		left := p.X
		for left > 0 && match(left-1, p.Y) {
			left--
		}
		right := p.X
		for right+1 < w && match(right+1, p.Y) {
			right++
		}
		for x := left; x <= right; x++ {
			img.SetRGBA(x, p.Y, target)
		}
		filled += right - left + 1

		for _, ny := range [2]int{p.Y - 1, p.Y + 1} {
			if ny < 0 || ny >= h {
				continue
			}
			inSpan := false
			for x := left; x <= right; x++ {
				if match(x, ny) {
					if !inSpan {
						stack = append(stack, image.Point{X: x, Y: ny})
						inSpan = true
					}
				} else {
					inSpan = false
				}
			}
		}
	}
	return filled
}
