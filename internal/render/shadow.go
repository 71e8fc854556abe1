package render

import (
	"image"
	"image/color"
	"image/draw"
)

// ShadowOptions configures the drop shadow cast by a floating selection.
type ShadowOptions struct {
	Radius  int
	Offset  image.Point
	Opacity float64
}

// ShadowResult captures the output of DropShadow.
type ShadowResult struct {
	// Image holds the content composited over its blurred shadow.
	Image *image.RGBA
	// Offset is where the content's top-left corner ended up inside Image.
	// Callers subtract it from the content position to keep it in place.
	Offset image.Point
}

// DefaultShadowOptions returns a small shadow suited to a lifted selection.
func DefaultShadowOptions() ShadowOptions {
	return ShadowOptions{
		Radius:  3,
		Offset:  image.Pt(3, 3),
		Opacity: 0.45,
	}
}

// DropShadow composites img over a blurred copy of its alpha channel. The
// result has a zero origin; a zero opacity returns img unchanged.
func DropShadow(img *image.RGBA, opts ShadowOptions) ShadowResult {
	if img == nil {
		return ShadowResult{}
	}
	if img.Bounds().Empty() || opts.Opacity <= 0 {
		return ShadowResult{Image: img}
	}
	opacity := min(opts.Opacity, 1)
	radius := max(opts.Radius, 0)

	src := img.Bounds()
	padded := src.Inset(-radius)
	cast := padded.Add(opts.Offset)
	all := src.Union(cast)

	mask := image.NewGray(padded.Sub(padded.Min))
	for y := src.Min.Y; y < src.Max.Y; y++ {
		for x := src.Min.X; x < src.Max.X; x++ {
			if a := img.RGBAAt(x, y).A; a != 0 {
				mask.SetGray(x-padded.Min.X, y-padded.Min.Y, color.Gray{Y: a})
			}
		}
	}
	mask = boxBlur(mask, radius)

	dst := image.NewRGBA(all.Sub(all.Min))
	shade := image.NewUniform(color.RGBA{A: uint8(opacity*255 + 0.5)})
	draw.DrawMask(dst, mask.Bounds().Add(cast.Min.Sub(all.Min)), shade, image.Point{}, mask, image.Point{}, draw.Over)
	draw.Draw(dst, src.Sub(all.Min), img, src.Min, draw.Over)

	return ShadowResult{Image: dst, Offset: src.Min.Sub(all.Min)}
}

// boxBlur runs a horizontal then a vertical box filter of the given radius,
// shrinking the window at the edges.
func boxBlur(src *image.Gray, radius int) *image.Gray {
	out := image.NewGray(src.Bounds())
	if radius <= 0 {
		copy(out.Pix, src.Pix)
		return out
	}
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	tmp := image.NewGray(src.Bounds())
	for y := 0; y < h; y++ {
		blurLine(src.Pix[y*src.Stride:], tmp.Pix[y*tmp.Stride:], w, 1, radius)
	}
	for x := 0; x < w; x++ {
		blurLine(tmp.Pix[x:], out.Pix[x:], h, tmp.Stride, radius)
	}
	return out
}

func blurLine(in, out []uint8, n, stride, radius int) {
	prefix := make([]int, n+1)
	for i := 0; i < n; i++ {
		prefix[i+1] = prefix[i] + int(in[i*stride])
	}
	for i := 0; i < n; i++ {
		lo := max(i-radius, 0)
		hi := min(i+radius, n-1)
		out[i*stride] = uint8((prefix[hi+1] - prefix[lo]) / (hi - lo + 1))
	}
}
