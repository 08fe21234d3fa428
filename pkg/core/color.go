package core

import (
	"fmt"
	"image/color"
)

// Color is a linear RGB triple. Channels are not clamped until Clamp is called.
type Color struct {
	R, G, B float64
}

// Black is the zero color
var Black = Color{}

// NewColor creates a new Color
func NewColor(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// Add returns the channel-wise sum of two colors
func (c Color) Add(other Color) Color {
	return Color{c.R + other.R, c.G + other.G, c.B + other.B}
}

// Multiply scales every channel by a scalar
func (c Color) Multiply(scalar float64) Color {
	return Color{c.R * scalar, c.G * scalar, c.B * scalar}
}

// MultiplyColor returns the component-wise product of two colors
func (c Color) MultiplyColor(other Color) Color {
	return Color{c.R * other.R, c.G * other.G, c.B * other.B}
}

// Divide divides every channel by a scalar. Division by zero yields black.
func (c Color) Divide(scalar float64) Color {
	if scalar == 0 {
		return Black
	}
	return Color{c.R / scalar, c.G / scalar, c.B / scalar}
}

// Clamp limits each channel independently to [0, 1]
func (c Color) Clamp() Color {
	return Color{
		R: max(0, min(1, c.R)),
		G: max(0, min(1, c.G)),
		B: max(0, min(1, c.B)),
	}
}

// RGBA converts the clamped color to an 8-bit opaque RGBA value
func (c Color) RGBA() color.RGBA {
	clamped := c.Clamp()
	return color.RGBA{
		R: uint8(255*clamped.R + 0.5),
		G: uint8(255*clamped.G + 0.5),
		B: uint8(255*clamped.B + 0.5),
		A: 255,
	}
}

func (c Color) String() string {
	return fmt.Sprintf("rgb(%g,%g,%g)", c.R, c.G, c.B)
}
