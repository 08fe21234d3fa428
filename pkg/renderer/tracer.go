package renderer

import (
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/lights"
	"github.com/df07/go-recursive-raytracer/pkg/material"
)

// Epsilon offsets every secondary ray origin along its direction
const Epsilon = 1e-4

// glossyReflectance scales the mirror term of glossy surfaces
const glossyReflectance = 0.5

// Tracer resolves hits and shades them recursively. Scene data is shared
// read-only; the counters are not, so each goroutine needs its own Tracer.
type Tracer struct {
	entities []geometry.Entity
	lights   []lights.PointLight
	maxDepth int
	stats    RenderStats
}

// NewTracer creates a tracer over the given entities and lights
func NewTracer(entities []geometry.Entity, pointLights []lights.PointLight, maxDepth int) *Tracer {
	return &Tracer{
		entities: entities,
		lights:   pointLights,
		maxDepth: maxDepth,
	}
}

// TraceRay shades a primary ray. Rays that hit nothing are black.
func (t *Tracer) TraceRay(ray core.Ray) core.Color {
	t.stats.PrimaryRays++
	return t.trace(ray, 0)
}

func (t *Tracer) trace(ray core.Ray, depth int) core.Color {
	entity, hit, ok := t.ClosestHit(ray)
	if !ok {
		return core.Black
	}
	return t.CastRay(hit, entity, depth)
}

// ClosestHit returns the entity whose hit is nearest to the ray origin.
// Hits at zero distance are ignored.
func (t *Tracer) ClosestHit(ray core.Ray) (geometry.Entity, core.RayHit, bool) {
	var closest geometry.Entity
	var closestHit core.RayHit
	closestDistance := math.Inf(1)

	for _, entity := range t.entities {
		hit, ok := entity.Intersect(ray)
		if !ok {
			continue
		}
		distance := hit.Position.Subtract(ray.Origin).LengthSquared()
		if distance > 0 && distance < closestDistance {
			closest, closestHit, closestDistance = entity, hit, distance
		}
	}

	return closest, closestHit, closest != nil
}

// Visible reports whether nothing lies between position and the light
func (t *Tracer) Visible(position core.Vec3, light lights.PointLight) bool {
	t.stats.ShadowRays++

	direction := light.DirectionFrom(position)
	ray := core.NewRay(position.Add(direction.Multiply(Epsilon)), direction)
	lightDistance := light.DistanceSquaredFrom(position)

	for _, entity := range t.entities {
		hit, ok := entity.Intersect(ray)
		if ok && hit.Position.Subtract(position).LengthSquared() < lightDistance {
			return false
		}
	}
	return true
}

// CastRay computes the color at hit for the entity's material.
// Hits deeper than the configured maximum depth are black.
func (t *Tracer) CastRay(hit core.RayHit, entity geometry.Entity, depth int) core.Color {
	if depth > t.maxDepth {
		return core.Black
	}
	t.stats.MaxDepthReached = max(t.stats.MaxDepthReached, depth)

	mat := entity.GetMaterial()
	switch mat.Kind {
	case material.Reflective:
		return t.secondary(hit, hit.Reflect(), depth).Clamp()

	case material.Refractive:
		kr := mat.Fresnel(hit)
		var refraction core.Color
		if kr < 1 {
			refraction = t.secondary(hit, hit.Refract(mat.RefractiveIndex), depth)
		}
		reflection := t.secondary(hit, hit.Reflect(), depth)
		return reflection.Multiply(kr).Add(refraction.Multiply(1 - kr)).Clamp()

	case material.Glossy:
		reflection := t.secondary(hit, hit.Reflect(), depth)
		return t.diffuse(hit, mat.Color).Add(reflection.Multiply(glossyReflectance)).Clamp()

	default:
		return t.diffuse(hit, mat.Color).Clamp()
	}
}

// secondary follows a reflected or refracted direction from hit
func (t *Tracer) secondary(hit core.RayHit, direction core.Vec3, depth int) core.Color {
	if depth >= t.maxDepth || direction.IsZero() {
		return core.Black
	}
	t.stats.SecondaryRays++

	ray := core.NewRay(hit.Position.Add(direction.Multiply(Epsilon)), direction)
	return t.trace(ray, depth+1)
}

// diffuse sums the Lambert contribution of every unoccluded light
func (t *Tracer) diffuse(hit core.RayHit, color core.Color) core.Color {
	total := core.Black
	for _, light := range t.lights {
		if !t.Visible(hit.Position, light) {
			continue
		}
		cosine := max(0, hit.Normal.Dot(light.DirectionFrom(hit.Position)))
		total = total.Add(color.MultiplyColor(light.Color).Multiply(cosine))
	}
	return total
}

// Stats returns the counters accumulated since the last reset
func (t *Tracer) Stats() RenderStats {
	return t.stats
}

// ResetStats clears the counters
func (t *Tracer) ResetStats() {
	t.stats = RenderStats{}
}
