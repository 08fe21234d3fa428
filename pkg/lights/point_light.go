package lights

import "github.com/df07/go-recursive-raytracer/pkg/core"

// PointLight is an idealized light emitting from a single point with no falloff
type PointLight struct {
	Position core.Vec3
	Color    core.Color
}

// NewPointLight creates a new point light
func NewPointLight(position core.Vec3, color core.Color) PointLight {
	return PointLight{Position: position, Color: color}
}

// DirectionFrom returns the unit direction from p toward the light
func (l PointLight) DirectionFrom(p core.Vec3) core.Vec3 {
	return l.Position.Subtract(p).Normalize()
}

// DistanceSquaredFrom returns the squared distance from p to the light
func (l PointLight) DistanceSquaredFrom(p core.Vec3) float64 {
	return l.Position.Subtract(p).LengthSquared()
}
