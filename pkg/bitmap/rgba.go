package bitmap

import (
	"image"
	"image/color"
	"math/bits"

	"github.com/pkg/errors"
)

// BytesPerPixel is the width of one pixel in a raw RGBA buffer.
const BytesPerPixel = 4

// ErrSize is returned when a raw buffer does not hold exactly width*height pixels.
var ErrSize = errors.New("pixel buffer size mismatch")

// Len returns the length of a raw RGBA buffer for an image of the given size.
func Len(width, height int) int {
	return width * height * BytesPerPixel
}

func pixelBufferLength(bytesPerPixel int, r image.Rectangle, name string) int {
	totalLength := mul3NonNeg(bytesPerPixel, r.Dx(), r.Dy())
	if totalLength < 0 {
		panic("bitmap: New" + name + " Rectangle has huge or negative dimensions")
	}
	return totalLength
}

// mul3NonNeg returns x*y*z, or -1 if any argument is negative or the
// product does not fit in an int.
func mul3NonNeg(x, y, z int) int {
	if x < 0 || y < 0 || z < 0 {
		return -1
	}
	hi, lo := bits.Mul64(uint64(x), uint64(y))
	if hi != 0 {
		return -1
	}
	hi, lo = bits.Mul64(lo, uint64(z))
	if hi != 0 {
		return -1
	}
	a := int(lo)
	if a < 0 || uint64(a) != lo {
		return -1
	}
	return a
}

func NewRGBA(r image.Rectangle) *RGBA {
	return &RGBA{
		pixels: make([]byte, pixelBufferLength(BytesPerPixel, r, "RGBA")),
		stride: BytesPerPixel * r.Dx(),
		bounds: r,
	}
}

// FromBytes wraps a raw RGBA buffer as an image of the given size. The buffer
// is not copied.
func FromBytes(bs []byte, width, height int) (*RGBA, error) {
	if width < 0 || height < 0 {
		return nil, errors.Wrapf(ErrSize, "negative dimensions %dx%d", width, height)
	}
	if want := Len(width, height); len(bs) != want {
		return nil, errors.Wrapf(ErrSize, "got %d bytes, want %d for %dx%d", len(bs), want, width, height)
	}

	return &RGBA{
		pixels: bs,
		stride: BytesPerPixel * width,
		bounds: image.Rect(0, 0, width, height),
	}, nil
}

// RGBA is a headerless row-major buffer of non-premultiplied 8-bit pixels,
// laid out R, G, B, A. It implements the draw.Image interface.
type RGBA struct {
	pixels []byte
	stride int
	bounds image.Rectangle
}

// Bytes returns the underlying buffer.
func (d *RGBA) Bytes() []byte {
	return d.pixels
}

// Bounds implements the image.Image (and draw.Image) interface.
func (d *RGBA) Bounds() image.Rectangle {
	return d.bounds
}

// ColorModel implements the image.Image (and draw.Image) interface.
func (d *RGBA) ColorModel() color.Model {
	return color.NRGBAModel
}

// At implements the image.Image (and draw.Image) interface.
func (d *RGBA) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}.In(d.bounds)) {
		return color.NRGBA{}
	}
	i := d.offset(x, y)
	p := d.pixels[i : i+BytesPerPixel : i+BytesPerPixel]
	return color.NRGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
}

// Set implements the draw.Image interface.
func (d *RGBA) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}.In(d.bounds)) {
		return
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	i := d.offset(x, y)
	d.pixels[i] = n.R
	d.pixels[i+1] = n.G
	d.pixels[i+2] = n.B
	d.pixels[i+3] = n.A
}

func (d *RGBA) offset(x, y int) int {
	return (y-d.bounds.Min.Y)*d.stride + (x-d.bounds.Min.X)*BytesPerPixel
}
