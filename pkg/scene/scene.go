package scene

import (
	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/lights"
	"github.com/df07/go-recursive-raytracer/pkg/material"
)

// DefaultMaxDepth bounds reflection and refraction recursion
const DefaultMaxDepth = 10

// Options contains the render options carried by a scene
type Options struct {
	CameraAngle  float64   // Horizontal field of view in degrees
	AAMultiplier int       // Sub-samples per pixel axis (samples per pixel = AAMultiplier²)
	CameraAxis   core.Vec3 // Forward direction of the camera
	MaxDepth     int       // Maximum reflection/refraction depth
}

// DefaultOptions returns sensible default values
func DefaultOptions() Options {
	return Options{
		CameraAngle:  60,
		AAMultiplier: 1,
		CameraAxis:   core.NewVec3(0, 0, 1),
		MaxDepth:     DefaultMaxDepth,
	}
}

// Normalized returns a copy with unset or invalid fields replaced by defaults
func (o Options) Normalized() Options {
	defaults := DefaultOptions()
	if o.CameraAngle <= 0 || o.CameraAngle >= 180 {
		o.CameraAngle = defaults.CameraAngle
	}
	if o.AAMultiplier < 1 {
		o.AAMultiplier = defaults.AAMultiplier
	}
	if o.CameraAxis.IsZero() {
		o.CameraAxis = defaults.CameraAxis
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = defaults.MaxDepth
	}
	return o
}

// Scene contains the entities, lights and options of a single render.
// Entities and lights must be added before rendering starts.
type Scene struct {
	Options  Options
	entities []geometry.Entity
	lights   []lights.PointLight
}

// NewScene creates an empty scene with the given options
func NewScene(options Options) *Scene {
	return &Scene{
		Options:  options.Normalized(),
		entities: make([]geometry.Entity, 0),
		lights:   make([]lights.PointLight, 0),
	}
}

// AddEntity adds an entity to the scene. Adding the same entity twice has no effect.
func (s *Scene) AddEntity(entity geometry.Entity) {
	for _, existing := range s.entities {
		if existing == entity {
			return
		}
	}
	s.entities = append(s.entities, entity)
}

// AddPointLight adds a point light to the scene. Identical lights are stored once.
func (s *Scene) AddPointLight(light lights.PointLight) {
	for _, existing := range s.lights {
		if existing == light {
			return
		}
	}
	s.lights = append(s.lights, light)
}

// AddQuad adds a parallelogram spanned by u and v from corner as two triangles.
// Both triangles have the plane normal u×v.
func (s *Scene) AddQuad(corner, u, v core.Vec3, mat material.Material) {
	p1 := corner.Add(u)
	p2 := corner.Add(u).Add(v)
	p3 := corner.Add(v)
	s.AddEntity(geometry.NewTriangle(corner, p1, p2, mat))
	s.AddEntity(geometry.NewTriangle(corner, p2, p3, mat))
}

// Entities returns the scene's entities
func (s *Scene) Entities() []geometry.Entity {
	return s.entities
}

// Lights returns the scene's point lights
func (s *Scene) Lights() []lights.PointLight {
	return s.lights
}

// GetPrimitiveCount returns the number of entities in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.entities)
}

// GetOptions returns the scene's render options
func (s *Scene) GetOptions() Options {
	return s.Options
}
