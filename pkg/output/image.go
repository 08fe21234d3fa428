package output

import (
	"image"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// Image is a 2D pixel store written by the renderer.
// Colors are clamped to [0,1] before they are written.
type Image interface {
	Width() int
	Height() int
	SetPixel(x, y int, color core.Color)
}

// FloatImage keeps full-precision colors in memory. Concurrent writes to
// distinct pixels are safe.
type FloatImage struct {
	width, height int
	pixels        []core.Color
}

// NewFloatImage creates a black image of the given size
func NewFloatImage(width, height int) *FloatImage {
	width, height = max(0, width), max(0, height)
	return &FloatImage{
		width:  width,
		height: height,
		pixels: make([]core.Color, width*height),
	}
}

func (f *FloatImage) Width() int  { return f.width }
func (f *FloatImage) Height() int { return f.height }

// SetPixel stores a color. Out-of-range coordinates are ignored.
func (f *FloatImage) SetPixel(x, y int, color core.Color) {
	if !f.inBounds(x, y) {
		return
	}
	f.pixels[y*f.width+x] = color
}

// Pixel returns the stored color, or black outside the image
func (f *FloatImage) Pixel(x, y int) core.Color {
	if !f.inBounds(x, y) {
		return core.Black
	}
	return f.pixels[y*f.width+x]
}

// ToRGBA converts the buffer into an 8-bit image
func (f *FloatImage) ToRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			img.SetRGBA(x, y, f.pixels[y*f.width+x].RGBA())
		}
	}
	return img
}

func (f *FloatImage) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < f.width && y < f.height
}
