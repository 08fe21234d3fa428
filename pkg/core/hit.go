package core

import "math"

// RayHit describes where a ray met a surface
type RayHit struct {
	Position Vec3 // Point of intersection
	Normal   Vec3 // Unit surface normal at the intersection
	Incident Vec3 // Direction of the ray that produced the hit
}

// NewRayHit creates a new RayHit
func NewRayHit(position, normal, incident Vec3) RayHit {
	return RayHit{Position: position, Normal: normal, Incident: incident}
}

// Reflect returns the mirror reflection of the incident direction about the normal
func (h RayHit) Reflect() Vec3 {
	return reflect(h.Incident, h.Normal)
}

// Refract returns the transmitted direction through an interface between air
// and a medium with the given refractive index. The side of the surface is
// chosen from the sign of the incident cosine. Under total internal
// reflection the reflected direction is returned instead.
func (h RayHit) Refract(refractiveIndex float64) Vec3 {
	cosi := clamp(h.Incident.Dot(h.Normal), -1, 1)
	etai, etat := 1.0, refractiveIndex
	n := h.Normal

	if cosi < 0 {
		cosi = -cosi
	} else {
		// Leaving the medium
		etai, etat = etat, etai
		n = h.Normal.Negate()
	}

	eta := etai / etat
	k := 1 - eta*eta*(1-cosi*cosi)
	if k < 0 {
		return reflect(h.Incident, n)
	}

	return h.Incident.Multiply(eta).Add(n.Multiply(eta*cosi - math.Sqrt(k))).Normalize()
}

func reflect(incident, normal Vec3) Vec3 {
	return incident.Subtract(normal.Multiply(2 * incident.Dot(normal))).Normalize()
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}
