package bitmap

import (
	"image"

	"github.com/disintegration/imaging"
)

// Encode converts src to 8-bit non-premultiplied RGBA and returns its pixels
// row by row, top to bottom, four bytes per pixel. Sources without alpha come
// out fully opaque.
func Encode(src image.Image) []byte {
	n := imaging.Clone(src)

	// Clone packs rows tightly from the origin, so Pix is already the layout.
	w, h := n.Rect.Dx(), n.Rect.Dy()
	if n.Stride == w*BytesPerPixel {
		return n.Pix[:Len(w, h)]
	}

	d := NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		copy(d.pixels[y*d.stride:(y+1)*d.stride], n.Pix[y*n.Stride:])
	}

	return d.pixels
}
