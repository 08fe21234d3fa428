package material

import (
	"fmt"
	"strings"

	"github.com/df07/go-recursive-raytracer/pkg/core"
)

// Kind selects how a surface is shaded
type Kind int

const (
	Diffuse    Kind = iota // Lambert shading from point lights
	Reflective             // Perfect mirror
	Refractive             // Dielectric with Fresnel-weighted reflection and refraction
	Glossy                 // Diffuse plus half-strength mirror reflection
)

var kindNames = map[Kind]string{
	Diffuse:    "diffuse",
	Reflective: "reflective",
	Refractive: "refractive",
	Glossy:     "glossy",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind converts a material kind name (case-insensitive) to a Kind
func ParseKind(name string) (Kind, error) {
	lower := strings.ToLower(strings.TrimSpace(name))
	for kind, kindName := range kindNames {
		if kindName == lower {
			return kind, nil
		}
	}
	return Diffuse, fmt.Errorf("unknown material type: %q", name)
}

// Material describes the shading behavior attached to a scene entity
type Material struct {
	Kind            Kind
	Color           core.Color // Base color, used by Diffuse and Glossy
	RefractiveIndex float64    // Only meaningful for Refractive
}

// NewDiffuse creates a diffuse material with the given base color
func NewDiffuse(color core.Color) Material {
	return Material{Kind: Diffuse, Color: color, RefractiveIndex: 1}
}

// NewReflective creates a perfect mirror material
func NewReflective() Material {
	return Material{Kind: Reflective, Color: core.NewColor(1, 1, 1), RefractiveIndex: 1}
}

// NewRefractive creates a dielectric material such as glass (1.5) or water (1.33)
func NewRefractive(refractiveIndex float64) Material {
	return Material{Kind: Refractive, Color: core.NewColor(1, 1, 1), RefractiveIndex: refractiveIndex}
}

// NewGlossy creates a glossy material with the given base color
func NewGlossy(color core.Color) Material {
	return Material{Kind: Glossy, Color: color, RefractiveIndex: 1}
}
