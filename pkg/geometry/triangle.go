package geometry

import (
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/material"
)

// parallelEpsilon is the smallest |N·D| treated as a non-parallel ray
const parallelEpsilon = 1e-12

// Triangle represents a single triangle defined by three vertices
type Triangle struct {
	V0, V1, V2 core.Vec3         // The three vertices
	Material   material.Material // Material of the triangle
	normal     core.Vec3         // Cached normal vector
}

// NewTriangle creates a new triangle from three vertices
func NewTriangle(v0, v1, v2 core.Vec3, material material.Material) *Triangle {
	t := &Triangle{
		V0:       v0,
		V1:       v1,
		V2:       v2,
		Material: material,
	}
	t.computeNormal()
	return t
}

// computeNormal calculates and caches the plane normal.
// Degenerate triangles get a zero normal and never report hits.
func (t *Triangle) computeNormal() {
	t.normal = t.V1.Subtract(t.V2).Cross(t.V2.Subtract(t.V0)).Normalize()
}

// Intersect tests the ray against the triangle's plane and then runs the
// three edge tests. Only one winding is accepted by the edge tests.
func (t *Triangle) Intersect(ray core.Ray) (core.RayHit, bool) {
	normal := t.normal

	// Ray parallel to the plane (or degenerate triangle)
	nDotDir := normal.Dot(ray.Direction)
	if math.Abs(nDotDir) < parallelEpsilon {
		return core.RayHit{}, false
	}

	tParam := t.V0.Subtract(ray.Origin).Dot(normal) / nDotDir
	if tParam <= 0 {
		return core.RayHit{}, false
	}

	position := ray.At(tParam)

	if !insideEdge(normal, t.V0, t.V1, position) ||
		!insideEdge(normal, t.V1, t.V2, position) ||
		!insideEdge(normal, t.V2, t.V0, position) {
		return core.RayHit{}, false
	}

	return core.NewRayHit(position, normal, ray.Direction), true
}

// insideEdge reports whether p lies on the inner side of the edge from a to b
func insideEdge(normal, a, b, p core.Vec3) bool {
	edge := b.Subtract(a)
	return normal.Dot(edge.Cross(p.Subtract(a))) >= 0
}

// GetMaterial returns the triangle's material
func (t *Triangle) GetMaterial() material.Material {
	return t.Material
}

// GetNormal returns the triangle's normal vector
func (t *Triangle) GetNormal() core.Vec3 {
	return t.normal
}
