package scene

import (
	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/lights"
	"github.com/df07/go-recursive-raytracer/pkg/material"
)

// NewDefaultScene creates an open-fronted room with one sphere of each material kind
func NewDefaultScene() *Scene {
	s := NewScene(DefaultOptions())

	white := material.NewDiffuse(core.NewColor(0.8, 0.8, 0.8))
	red := material.NewDiffuse(core.NewColor(0.8, 0.15, 0.15))
	blue := material.NewDiffuse(core.NewColor(0.15, 0.25, 0.8))

	addRoom(s, -3, 3, -2, 2, 12, white, red, blue)

	// One sphere per material kind
	s.AddEntity(geometry.NewSphere(core.NewVec3(-1.6, -1.3, 8), 0.7,
		material.NewDiffuse(core.NewColor(0.2, 0.75, 0.3))))
	s.AddEntity(geometry.NewSphere(core.NewVec3(0, -1.1, 9.5), 0.9, material.NewReflective()))
	s.AddEntity(geometry.NewSphere(core.NewVec3(1.5, -1.4, 7), 0.6, material.NewRefractive(1.5)))
	s.AddEntity(geometry.NewSphere(core.NewVec3(0.4, -1.6, 5.5), 0.4,
		material.NewGlossy(core.NewColor(0.9, 0.55, 0.1))))

	// Free-standing triangle against the back wall
	s.AddEntity(geometry.NewTriangle(
		core.NewVec3(-2.5, -2, 11),
		core.NewVec3(-1.75, 0, 11),
		core.NewVec3(-1, -2, 11),
		material.NewDiffuse(core.NewColor(0.9, 0.9, 0.2)),
	))

	s.AddPointLight(lights.NewPointLight(core.NewVec3(0, 1.8, 6), core.NewColor(0.8, 0.8, 0.8)))
	s.AddPointLight(lights.NewPointLight(core.NewVec3(-2, 1.5, 3), core.NewColor(0.4, 0.35, 0.3)))

	return s
}

// NewMirrorBoxScene creates a mirrored sphere inside a closed mirrored box.
// Every secondary ray keeps bouncing, so only the depth limit ends recursion.
func NewMirrorBoxScene() *Scene {
	s := NewScene(DefaultOptions())
	mirror := material.NewReflective()

	// Closed box around the camera, including the wall behind it
	x0, x1 := -2.0, 2.0
	y0, y1 := -2.0, 2.0
	z0, z1 := -2.0, 6.0
	addRoom(s, x0, x1, y0, y1, z1, mirror, mirror, mirror)
	s.AddQuad(core.NewVec3(x0, y0, z0), core.NewVec3(x1-x0, 0, 0), core.NewVec3(0, y1-y0, 0), mirror)

	s.AddEntity(geometry.NewSphere(core.NewVec3(0, 0, 3), 1, mirror))
	s.AddEntity(geometry.NewSphere(core.NewVec3(1.2, -1.5, 4), 0.4,
		material.NewDiffuse(core.NewColor(0.9, 0.3, 0.2))))

	s.AddPointLight(lights.NewPointLight(core.NewVec3(0, 1.5, 1), core.NewColor(1, 1, 1)))

	return s
}

// NewGlassScene creates clear spheres of different refractive indices in front of a striped wall
func NewGlassScene() *Scene {
	s := NewScene(DefaultOptions())

	floor := material.NewDiffuse(core.NewColor(0.7, 0.7, 0.7))
	s.AddQuad(core.NewVec3(-6, -1.5, 0), core.NewVec3(0, 0, 14), core.NewVec3(12, 0, 0), floor)

	stripes := []material.Material{
		material.NewDiffuse(core.NewColor(0.9, 0.2, 0.2)),
		material.NewDiffuse(core.NewColor(0.9, 0.9, 0.9)),
		material.NewDiffuse(core.NewColor(0.2, 0.3, 0.9)),
	}
	const stripeWidth = 1.0
	for i := 0; i < 12; i++ {
		x := -6 + float64(i)*stripeWidth
		s.AddQuad(core.NewVec3(x, -1.5, 14), core.NewVec3(0, 8, 0), core.NewVec3(stripeWidth, 0, 0),
			stripes[i%len(stripes)])
	}

	s.AddEntity(geometry.NewSphere(core.NewVec3(-1.3, -0.3, 6), 1.2, material.NewRefractive(1.5)))
	s.AddEntity(geometry.NewSphere(core.NewVec3(1.4, -0.6, 7), 0.9, material.NewRefractive(1.33)))
	s.AddEntity(geometry.NewSphere(core.NewVec3(0.2, -1.1, 4.5), 0.4, material.NewGlossy(core.NewColor(0.2, 0.8, 0.4))))

	s.AddPointLight(lights.NewPointLight(core.NewVec3(0, 4, 2), core.NewColor(0.9, 0.9, 0.9)))
	s.AddPointLight(lights.NewPointLight(core.NewVec3(4, 3, 10), core.NewColor(0.3, 0.3, 0.3)))

	return s
}

// addRoom adds inward-facing floor, ceiling, back, left and right walls of an axis-aligned room
func addRoom(s *Scene, x0, x1, y0, y1, zBack float64, surfaces, left, right material.Material) {
	const zFront = -2.0
	width, height, depth := x1-x0, y1-y0, zBack-zFront

	s.AddQuad(core.NewVec3(x0, y0, zFront), core.NewVec3(0, 0, depth), core.NewVec3(width, 0, 0), surfaces) // floor
	s.AddQuad(core.NewVec3(x0, y1, zFront), core.NewVec3(width, 0, 0), core.NewVec3(0, 0, depth), surfaces) // ceiling
	s.AddQuad(core.NewVec3(x0, y0, zBack), core.NewVec3(0, height, 0), core.NewVec3(width, 0, 0), surfaces) // back
	s.AddQuad(core.NewVec3(x0, y0, zFront), core.NewVec3(0, height, 0), core.NewVec3(0, 0, depth), left)    // left
	s.AddQuad(core.NewVec3(x1, y0, zFront), core.NewVec3(0, 0, depth), core.NewVec3(0, height, 0), right)   // right
}
