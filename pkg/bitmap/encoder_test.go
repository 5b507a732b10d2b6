package bitmap

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		src  func() image.Image
		want []byte
	}{
		{
			name: "rgb without alpha comes out opaque",
			src: func() image.Image {
				img := image.NewRGBA(image.Rect(0, 0, 2, 1))
				img.Set(0, 0, color.RGBA{R: 255, A: 255})
				img.Set(1, 0, color.RGBA{G: 255, A: 255})
				return img
			},
			want: []byte{0xFF, 0x00, 0x00, 0xFF, 0x00, 0xFF, 0x00, 0xFF},
		},
		{
			name: "non-premultiplied alpha is kept",
			src: func() image.Image {
				img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
				img.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 40})
				return img
			},
			want: []byte{10, 20, 30, 40},
		},
		{
			name: "premultiplied source is unpremultiplied",
			src: func() image.Image {
				img := image.NewRGBA(image.Rect(0, 0, 1, 1))
				img.SetRGBA(0, 0, color.RGBA{R: 128, A: 128})
				return img
			},
			want: []byte{255, 0, 0, 128},
		},
		{
			name: "gray expands to three channels",
			src: func() image.Image {
				img := image.NewGray(image.Rect(0, 0, 2, 1))
				img.SetGray(0, 0, color.Gray{Y: 7})
				img.SetGray(1, 0, color.Gray{Y: 200})
				return img
			},
			want: []byte{7, 7, 7, 255, 200, 200, 200, 255},
		},
		{
			name: "rows are laid out top to bottom",
			src: func() image.Image {
				img := image.NewNRGBA(image.Rect(0, 0, 1, 2))
				img.SetNRGBA(0, 0, color.NRGBA{R: 1, A: 255})
				img.SetNRGBA(0, 1, color.NRGBA{R: 2, A: 255})
				return img
			},
			want: []byte{1, 0, 0, 255, 2, 0, 0, 255},
		},
		{
			name: "sub image with offset bounds",
			src: func() image.Image {
				img := image.NewNRGBA(image.Rect(0, 0, 3, 3))
				img.SetNRGBA(2, 2, color.NRGBA{R: 9, G: 8, B: 7, A: 6})
				return img.SubImage(image.Rect(2, 2, 3, 3))
			},
			want: []byte{9, 8, 7, 6},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Encode(tt.src()))
		})
	}
}

func TestEncodeLength(t *testing.T) {
	img := image.NewPaletted(image.Rect(0, 0, 7, 5), color.Palette{color.Black, color.White})
	assert.Len(t, Encode(img), Len(7, 5))
	assert.Equal(t, 140, Len(7, 5))
}

func TestEncodeRoundTrip(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 60), G: uint8(y * 80), B: uint8(x + y), A: uint8(255 - x*y)})
		}
	}

	raw, err := FromBytes(Encode(src), 4, 3)
	require.NoError(t, err)

	assert.Equal(t, src.Bounds(), raw.Bounds())
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			assert.Equal(t, src.NRGBAAt(x, y), raw.At(x, y), "pixel %d,%d", x, y)
		}
	}
}
