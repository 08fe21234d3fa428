package material

import (
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// Fresnel returns the fraction of light reflected at a dielectric interface
// for the hit's incident direction. The remaining 1-kr is transmitted.
// Total internal reflection yields 1.
func Fresnel(hit core.RayHit, refractiveIndex float64) float64 {
	cosi := max(-1, min(1, hit.Incident.Dot(hit.Normal)))
	etai, etat := 1.0, refractiveIndex
	if cosi > 0 {
		etai, etat = etat, etai
	}

	// Snell's law
	sint := etai / etat * math.Sqrt(math.Max(0, 1-cosi*cosi))
	if sint >= 1 {
		return 1
	}

	cost := math.Sqrt(math.Max(0, 1-sint*sint))
	cosi = math.Abs(cosi)
	rs := (etat*cosi - etai*cost) / (etat*cosi + etai*cost)
	rp := (etai*cosi - etat*cost) / (etai*cosi + etat*cost)
	return (rs*rs + rp*rp) / 2
}

// Fresnel returns the reflectance of this material at the given hit
func (m Material) Fresnel(hit core.RayHit) float64 {
	return Fresnel(hit, m.RefractiveIndex)
}
