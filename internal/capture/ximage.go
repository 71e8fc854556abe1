package capture

import (
	"fmt"
	"image"

	"github.com/jezek/xgb/xproto"
)

// decodeZPixmap converts little-endian BGR(A) ZPixmap data of the given
// depth into RGBA. 24-bit depths come back opaque.
func decodeZPixmap(formats []xproto.Format, depth byte, data []byte, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("empty geometry %dx%d", width, height)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty image data")
	}

	bitsPerPixel := 0
	for _, format := range formats {
		if format.Depth == depth {
			bitsPerPixel = int(format.BitsPerPixel)
			break
		}
	}
	if bitsPerPixel == 0 {
		return nil, fmt.Errorf("unsupported depth %d", depth)
	}
	bytesPerPixel := bitsPerPixel / 8
	if bytesPerPixel < 3 {
		return nil, fmt.Errorf("unsupported pixel format %d bpp", bitsPerPixel)
	}

	stride := len(data) / height
	if stride*height != len(data) || stride < width*bytesPerPixel {
		return nil, fmt.Errorf("unexpected stride for %d bytes", len(data))
	}
	hasAlpha := depth == 32 && bytesPerPixel >= 4

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		row := data[y*stride:]
		for x := 0; x < width; x++ {
			src := row[x*bytesPerPixel:]
			i := img.PixOffset(x, y)
			img.Pix[i+0] = src[2]
			img.Pix[i+1] = src[1]
			img.Pix[i+2] = src[0]
			img.Pix[i+3] = 0xFF
			if hasAlpha {
				img.Pix[i+3] = src[3]
			}
		}
	}
	return img, nil
}
