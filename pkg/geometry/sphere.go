package geometry

import (
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, material material.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: material,
	}
}

// Intersect tests if a ray intersects with the sphere using the geometric solution.
// Spheres whose center projects behind the ray origin are treated as misses.
func (s *Sphere) Intersect(ray core.Ray) (core.RayHit, bool) {
	if s.Radius <= 0 {
		return core.RayHit{}, false
	}

	// Project the center onto the ray
	l := s.Center.Subtract(ray.Origin)
	tca := l.Dot(ray.Direction)
	if tca < 0 {
		return core.RayHit{}, false
	}

	// Squared distance from the center to the ray
	radius2 := s.Radius * s.Radius
	d2 := l.Dot(l) - tca*tca
	if d2 > radius2 {
		return core.RayHit{}, false
	}

	thc := math.Sqrt(radius2 - d2)
	t0, t1 := tca-thc, tca+thc
	if t0 > t1 {
		t0, t1 = t1, t0
	}

	// Fall back to the far root when the near one is behind the origin
	if t0 <= 0 {
		t0 = t1
		if t0 <= 0 {
			return core.RayHit{}, false
		}
	}

	position := ray.At(t0)
	normal := position.Subtract(s.Center).Normalize()
	if normal.IsZero() {
		return core.RayHit{}, false
	}

	return core.NewRayHit(position, normal, ray.Direction), true
}

// GetMaterial returns the sphere's material
func (s *Sphere) GetMaterial() material.Material {
	return s.Material
}
