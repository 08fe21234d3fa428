package loaders

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/lights"
	"github.com/df07/go-recursive-raytracer/pkg/material"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
)

// defaultIOR is used by refractive materials that do not set one
const defaultIOR = 1.5

// maxPathLength bounds scene and mesh file paths
const maxPathLength = 512

// SceneFile is the JSON representation of a scene
type SceneFile struct {
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	Options     OptionsJSON             `json:"options"`
	Materials   map[string]MaterialJSON `json:"materials"`
	Spheres     []SphereJSON            `json:"spheres"`
	Triangles   []TriangleJSON          `json:"triangles"`
	Quads       []QuadJSON              `json:"quads"`
	Meshes      []MeshJSON              `json:"meshes"`
	Lights      []LightJSON             `json:"lights"`
}

// OptionsJSON holds render options. Zero values take the defaults.
type OptionsJSON struct {
	FOV      float64 `json:"fov"`
	AA       int     `json:"aa"`
	Axis     *Vector `json:"axis"`
	MaxDepth int     `json:"maxDepth"`
}

type MaterialJSON struct {
	Type  string  `json:"type"`
	Color *Color  `json:"color"`
	IOR   float64 `json:"ior"`
}

type SphereJSON struct {
	Center   Vector  `json:"center"`
	Radius   float64 `json:"radius"`
	Material string  `json:"material"`
}

type TriangleJSON struct {
	V0       Vector `json:"v0"`
	V1       Vector `json:"v1"`
	V2       Vector `json:"v2"`
	Material string `json:"material"`
}

// QuadJSON is a parallelogram from Corner spanned by U and V, facing U×V
type QuadJSON struct {
	Corner   Vector `json:"corner"`
	U        Vector `json:"u"`
	V        Vector `json:"v"`
	Material string `json:"material"`
}

type MeshJSON struct {
	Path      string  `json:"path"`
	Material  string  `json:"material"`
	Scale     float64 `json:"scale"`
	Translate Vector  `json:"translate"`
	Simplify  float64 `json:"simplify"`
}

type LightJSON struct {
	Position Vector `json:"position"`
	Color    *Color `json:"color"`
}

// Vector is a JSON [x, y, z] array
type Vector [3]float64

func (v Vector) Vec3() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// Color accepts [r, g, b] in [0,1], "#rrggbb", "#rgb" or a CSS color name
type Color core.Color

func (c *Color) UnmarshalJSON(data []byte) error {
	var components []float64
	if err := json.Unmarshal(data, &components); err == nil {
		if len(components) != 3 {
			return fmt.Errorf("color array must have 3 components, got %d", len(components))
		}
		*c = Color(core.NewColor(components[0], components[1], components[2]))
		return nil
	}

	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("color must be an [r,g,b] array or a string: %s", string(data))
	}

	parsed, err := ParseColor(name)
	if err != nil {
		return err
	}
	*c = Color(parsed)
	return nil
}

// ParseColor converts a hex string or CSS color name to a color
func ParseColor(value string) (core.Color, error) {
	value = strings.ToLower(strings.TrimSpace(value))

	if strings.HasPrefix(value, "#") {
		hex := value[1:]
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		if len(hex) != 6 {
			return core.Black, fmt.Errorf("invalid hex color: %q", value)
		}
		rgb, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return core.Black, fmt.Errorf("invalid hex color: %q", value)
		}
		return core.NewColor(
			float64(rgb>>16&0xff)/255,
			float64(rgb>>8&0xff)/255,
			float64(rgb&0xff)/255,
		), nil
	}

	named, ok := colornames.Map[value]
	if !ok {
		return core.Black, fmt.Errorf("unknown color name: %q", value)
	}
	return core.NewColor(float64(named.R)/255, float64(named.G)/255, float64(named.B)/255), nil
}

// LoadScene loads a JSON scene file. Mesh paths are resolved relative to the file.
func LoadScene(filename string) (*scene.Scene, error) {
	if err := validateFilePath(filename, ".json"); err != nil {
		return nil, err
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	return parseScene(file, filepath.Dir(filename))
}

// ParseScene reads a JSON scene. Mesh paths are resolved against the working directory.
func ParseScene(reader io.Reader) (*scene.Scene, error) {
	return parseScene(reader, "")
}

func parseScene(reader io.Reader, baseDir string) (*scene.Scene, error) {
	var file SceneFile
	decoder := json.NewDecoder(reader)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("invalid scene file: %w", err)
	}

	return file.Build(baseDir)
}

// Build converts the file into a scene
func (f *SceneFile) Build(baseDir string) (*scene.Scene, error) {
	options := scene.Options{
		CameraAngle:  f.Options.FOV,
		AAMultiplier: f.Options.AA,
		MaxDepth:     f.Options.MaxDepth,
	}
	if f.Options.Axis != nil {
		options.CameraAxis = f.Options.Axis.Vec3()
		if options.CameraAxis.IsZero() {
			return nil, fmt.Errorf("camera axis cannot be zero")
		}
	}
	s := scene.NewScene(options)

	materials := make(map[string]material.Material, len(f.Materials))
	for name, m := range f.Materials {
		mat, err := m.build()
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		materials[name] = mat
	}
	lookup := func(kind string, index int, name string) (material.Material, error) {
		mat, ok := materials[name]
		if !ok {
			return material.Material{}, fmt.Errorf("%s %d: unknown material %q", kind, index, name)
		}
		return mat, nil
	}

	for i, sp := range f.Spheres {
		mat, err := lookup("sphere", i, sp.Material)
		if err != nil {
			return nil, err
		}
		if sp.Radius <= 0 {
			return nil, fmt.Errorf("sphere %d: radius must be positive, got %g", i, sp.Radius)
		}
		s.AddEntity(geometry.NewSphere(sp.Center.Vec3(), sp.Radius, mat))
	}

	for i, tri := range f.Triangles {
		mat, err := lookup("triangle", i, tri.Material)
		if err != nil {
			return nil, err
		}
		s.AddEntity(geometry.NewTriangle(tri.V0.Vec3(), tri.V1.Vec3(), tri.V2.Vec3(), mat))
	}

	for i, q := range f.Quads {
		mat, err := lookup("quad", i, q.Material)
		if err != nil {
			return nil, err
		}
		s.AddQuad(q.Corner.Vec3(), q.U.Vec3(), q.V.Vec3(), mat)
	}

	for i, m := range f.Meshes {
		mat, err := lookup("mesh", i, m.Material)
		if err != nil {
			return nil, err
		}
		path := m.Path
		if baseDir != "" && !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		if err := validateFilePath(path, ""); err != nil {
			return nil, fmt.Errorf("mesh %d: %w", i, err)
		}
		triangles, err := LoadMesh(path, MeshOptions{
			Scale:     m.Scale,
			Translate: m.Translate.Vec3(),
			Simplify:  m.Simplify,
		}, mat)
		if err != nil {
			return nil, fmt.Errorf("mesh %d: %w", i, err)
		}
		for _, tri := range triangles {
			s.AddEntity(tri)
		}
	}

	for _, l := range f.Lights {
		color := core.NewColor(1, 1, 1)
		if l.Color != nil {
			color = core.Color(*l.Color)
		}
		s.AddPointLight(lights.NewPointLight(l.Position.Vec3(), color))
	}

	return s, nil
}

func (m MaterialJSON) build() (material.Material, error) {
	kind, err := material.ParseKind(m.Type)
	if err != nil {
		return material.Material{}, err
	}

	color := core.NewColor(1, 1, 1)
	if m.Color != nil {
		color = core.Color(*m.Color)
	}

	switch kind {
	case material.Reflective:
		return material.NewReflective(), nil
	case material.Refractive:
		ior := m.IOR
		if ior == 0 {
			ior = defaultIOR
		}
		if ior < 1 {
			return material.Material{}, fmt.Errorf("refractive index must be at least 1, got %g", ior)
		}
		return material.NewRefractive(ior), nil
	case material.Glossy:
		return material.NewGlossy(color), nil
	default:
		return material.NewDiffuse(color), nil
	}
}

// validateFilePath rejects empty, oversized or malformed paths. A non-empty
// ext also restricts the file extension.
func validateFilePath(filename, ext string) error {
	if filename == "" {
		return fmt.Errorf("filename cannot be empty")
	}
	if strings.Contains(filename, "\x00") {
		return fmt.Errorf("invalid file path: null bytes not allowed")
	}
	if len(filepath.Clean(filename)) > maxPathLength {
		return fmt.Errorf("file path too long: maximum %d characters allowed", maxPathLength)
	}
	if ext != "" && !strings.EqualFold(filepath.Ext(filename), ext) {
		return fmt.Errorf("invalid file type: only %s files are allowed", ext)
	}
	return nil
}
