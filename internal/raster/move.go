package raster

import "image"

// Translate shifts the whole buffer by (dx, dy). Pixels pushed past an edge
// are dropped and the uncovered area becomes transparent.
func Translate(b *Buffer, dx, dy int) {
	TranslateRegion(b, b.Bounds(), dx, dy)
}

// TranslateRegion moves the pixels of r (clipped) by (dx, dy). The source
// area is cleared first, then the moved block is written where it lands
// inside the buffer.
func TranslateRegion(b *Buffer, r image.Rectangle, dx, dy int) {
	r = Clip(r, b.Bounds())
	if r.Empty() || (dx == 0 && dy == 0) {
		return
	}
	block := b.CopyRegion(r)
	b.ClearRegion(r)
	b.Paste(block, r.Add(image.Pt(dx, dy)))
}
