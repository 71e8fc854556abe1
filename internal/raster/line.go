package raster

import "image"

// Segment returns the grid points of the straight line from p0 to p1,
// both included, using Bresenham's error accumulation. Consecutive points
// differ by at most one step on each axis and no point repeats.
func Segment(p0, p1 image.Point) []image.Point {
	dx := abs(p1.X - p0.X)
	dy := -abs(p1.Y - p0.Y)
	sx, sy := 1, 1
	if p0.X > p1.X {
		sx = -1
	}
	if p0.Y > p1.Y {
		sy = -1
	}
	n := dx
	if -dy > n {
		n = -dy
	}
	pts := make([]image.Point, 0, n+1)
	err := dx + dy
	x, y := p0.X, p0.Y
	for {
		pts = append(pts, image.Pt(x, y))
		if x == p1.X && y == p1.Y {
			return pts
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

// Stroke returns every pixel covered when a brush of the given size is
// stamped at each point of Segment(p0, p1). Each pixel appears once, in the
// order the brush first reaches it. With skipStart the pixels of the
// footprint at p0 are left out; a drag uses this because that footprint was
// already painted by the previous event.
func Stroke(p0, p1 image.Point, size int, skipStart bool) []image.Point {
	if size < 1 {
		return nil
	}
	centres := Segment(p0, p1)
	if size == 1 {
		if skipStart {
			return centres[1:]
		}
		return centres
	}
	start := Footprint(p0, size)
	seen := make(map[image.Point]struct{}, len(centres)*size)
	out := make([]image.Point, 0, len(centres)*size)
	for _, c := range centres {
		fp := Footprint(c, size)
		for y := fp.Min.Y; y < fp.Max.Y; y++ {
			for x := fp.Min.X; x < fp.Max.X; x++ {
				p := image.Pt(x, y)
				if skipStart && p.In(start) {
					continue
				}
				if _, ok := seen[p]; ok {
					continue
				}
				seen[p] = struct{}{}
				out = append(out, p)
			}
		}
	}
	return out
}
