package raster

import "image"

// Clip intersects r with bounds after putting its corners in order.
func Clip(r, bounds image.Rectangle) image.Rectangle {
	return r.Canon().Intersect(bounds)
}

// Span returns the rectangle spanned by two corner points. The second
// point's row and column are excluded, so equal points give an empty
// rectangle.
func Span(a, b image.Point) image.Rectangle {
	return image.Rect(a.X, a.Y, b.X, b.Y)
}

// Footprint returns the square of side size a brush covers when centred on
// pixel c. Even sizes put the centre on the pixel corner up and to the left,
// i.e. origin = floor(c + 0.5 - size/2).
func Footprint(c image.Point, size int) image.Rectangle {
	if size < 1 {
		return image.Rectangle{}
	}
	o := c.Sub(image.Pt(size/2, size/2))
	return image.Rect(o.X, o.Y, o.X+size, o.Y+size)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
