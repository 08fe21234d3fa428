package loaders

import (
	"fmt"

	"github.com/fogleman/fauxgl"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/material"
)

// MeshOptions controls how an imported mesh is placed in the scene
type MeshOptions struct {
	Scale     float64   // Uniform scale (0 = 1)
	Translate core.Vec3 // Applied after scaling
	Simplify  float64   // Fraction of faces to keep, in (0,1). Other values keep all faces.
}

// LoadMesh reads an STL, OBJ, PLY or 3DS file and converts its faces to
// triangles with the given material. Vertex order is preserved.
func LoadMesh(path string, options MeshOptions, mat material.Material) ([]*geometry.Triangle, error) {
	if path == "" {
		return nil, fmt.Errorf("mesh path cannot be empty")
	}

	mesh, err := fauxgl.LoadMesh(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load mesh %s: %w", path, err)
	}

	if options.Simplify > 0 && options.Simplify < 1 {
		mesh.Simplify(options.Simplify)
	}

	scale := options.Scale
	if scale == 0 {
		scale = 1
	}
	t := options.Translate
	mesh.Transform(fauxgl.Identity().
		Scale(fauxgl.V(scale, scale, scale)).
		Translate(fauxgl.V(t.X, t.Y, t.Z)))

	return meshTriangles(mesh, mat), nil
}

// meshTriangles converts fauxgl faces, skipping degenerate ones
func meshTriangles(mesh *fauxgl.Mesh, mat material.Material) []*geometry.Triangle {
	triangles := make([]*geometry.Triangle, 0, len(mesh.Triangles))
	for _, face := range mesh.Triangles {
		tri := geometry.NewTriangle(
			toVec3(face.V1.Position),
			toVec3(face.V2.Position),
			toVec3(face.V3.Position),
			mat,
		)
		if tri.GetNormal().IsZero() {
			continue
		}
		triangles = append(triangles, tri)
	}
	return triangles
}

func toVec3(v fauxgl.Vector) core.Vec3 {
	return core.NewVec3(v.X, v.Y, v.Z)
}
