package output

import (
	"image"
	"sync"

	"github.com/fogleman/gg"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// Canvas is an Image backed by a gg drawing context. The context holds a
// current color, so writes are serialized.
type Canvas struct {
	mu  sync.Mutex
	ctx *gg.Context
}

// NewCanvas creates a canvas of the given size
func NewCanvas(width, height int) *Canvas {
	return &Canvas{ctx: gg.NewContext(width, height)}
}

func (c *Canvas) Width() int  { return c.ctx.Width() }
func (c *Canvas) Height() int { return c.ctx.Height() }

// SetPixel paints one pixel with the clamped color
func (c *Canvas) SetPixel(x, y int, color core.Color) {
	clamped := color.Clamp()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.ctx.SetRGB(clamped.R, clamped.G, clamped.B)
	c.ctx.SetPixel(x, y)
}

// Image returns the canvas contents
func (c *Canvas) Image() image.Image {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ctx.Image()
}

// SavePNG writes the canvas to a PNG file
func (c *Canvas) SavePNG(path string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ctx.SavePNG(path)
}
