package geometry

import (
	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/material"
)

// Entity is a renderable primitive that can be intersected by rays
type Entity interface {
	// Intersect returns the nearest hit in front of the ray origin (t > 0)
	Intersect(ray core.Ray) (core.RayHit, bool)
	GetMaterial() material.Material
}
