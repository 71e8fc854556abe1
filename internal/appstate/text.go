package appstate

import (
	"image"
	"image/color"
	"log"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// labelFace is used for buttons and the status bar, messageFace for the
// transient message box.
var (
	labelFace   font.Face = basicfont.Face7x13
	messageFace font.Face
)

func init() {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		log.Fatalf("parse font: %v", err)
	}
	messageFace, err = opentype.NewFace(f, &opentype.FaceOptions{Size: 28, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Fatalf("font face: %v", err)
	}
}

func measureText(face font.Face, s string) int {
	return (&font.Drawer{Face: face}).MeasureString(s).Ceil()
}

// drawText draws s with its baseline at y.
func drawText(dst *image.RGBA, face font.Face, x, y int, s string, col color.Color) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(col), Face: face, Dot: fixed.P(x, y)}
	d.DrawString(s)
}

// drawMessage centres msg over dst in a framed box.
func drawMessage(dst *image.RGBA, msg string, fg, bg color.RGBA) {
	b := dst.Bounds()
	w := measureText(messageFace, msg)
	m := messageFace.Metrics()
	ascent, descent := m.Ascent.Ceil(), m.Descent.Ceil()
	x := b.Min.X + (b.Dx()-w)/2
	y := b.Min.Y + (b.Dy()-ascent-descent)/2 + ascent
	box := image.Rect(x-8, y-ascent-8, x+w+8, y+descent+8)
	fillRect(dst, box, color.NRGBA{bg.R, bg.G, bg.B, 230})
	drawRect(dst, box, fg, 2)
	drawText(dst, messageFace, x, y, msg, fg)
}
