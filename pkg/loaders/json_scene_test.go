package loaders

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/material"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
)

const sampleScene = `{
	"name": "Sample",
	"description": "Two spheres on a floor",
	"options": {"fov": 45, "aa": 2, "axis": [0, 0, 1], "maxDepth": 6},
	"materials": {
		"red": {"type": "diffuse", "color": "#ff0000"},
		"mirror": {"type": "Reflective"},
		"glass": {"type": "refractive", "ior": 1.33},
		"floor": {"type": "glossy", "color": [0.5, 0.5, 0.5]},
		"sky": {"type": "diffuse", "color": "skyblue"}
	},
	"spheres": [
		{"center": [0, 0, 5], "radius": 1, "material": "red"},
		{"center": [2, 0, 6], "radius": 0.5, "material": "glass"}
	],
	"triangles": [
		{"v0": [-1, 2, 8], "v1": [1, 2, 8], "v2": [0, 3, 8], "material": "mirror"}
	],
	"quads": [
		{"corner": [-5, -1, 0], "u": [0, 0, 10], "v": [10, 0, 0], "material": "floor"}
	],
	"lights": [
		{"position": [0, 5, 0], "color": "white"},
		{"position": [3, 3, 3]}
	]
}`

func TestParseScene(t *testing.T) {
	s, err := ParseScene(strings.NewReader(sampleScene))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	options := s.GetOptions()
	if options.CameraAngle != 45 || options.AAMultiplier != 2 || options.MaxDepth != 6 {
		t.Errorf("Unexpected options: %+v", options)
	}

	// 2 spheres, 1 triangle, 1 quad as 2 triangles
	if got := s.GetPrimitiveCount(); got != 5 {
		t.Errorf("Expected 5 entities, got %d", got)
	}
	if got := len(s.Lights()); got != 2 {
		t.Errorf("Expected 2 lights, got %d", got)
	}

	red, ok := s.Entities()[0].(*geometry.Sphere)
	if !ok {
		t.Fatalf("Expected first entity to be a sphere")
	}
	if red.GetMaterial() != material.NewDiffuse(core.NewColor(1, 0, 0)) {
		t.Errorf("Unexpected material: %+v", red.GetMaterial())
	}

	glass := s.Entities()[1].GetMaterial()
	if glass.Kind != material.Refractive || glass.RefractiveIndex != 1.33 {
		t.Errorf("Expected refractive 1.33, got %+v", glass)
	}

	floor, ok := s.Entities()[3].(*geometry.Triangle)
	if !ok {
		t.Fatal("Expected quad triangles after the free triangle")
	}
	if floor.GetNormal() != core.NewVec3(0, 1, 0) {
		t.Errorf("Expected floor facing up, got %v", floor.GetNormal())
	}

	if got := s.Lights()[1].Color; got != core.NewColor(1, 1, 1) {
		t.Errorf("Expected light color to default to white, got %v", got)
	}
}

func TestParseScene_Defaults(t *testing.T) {
	s, err := ParseScene(strings.NewReader(`{}`))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if s.GetOptions() != scene.DefaultOptions() {
		t.Errorf("Expected default options, got %+v", s.GetOptions())
	}
	if s.GetPrimitiveCount() != 0 {
		t.Errorf("Expected empty scene")
	}
}

func TestParseScene_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
	}{
		{"malformed json", `{"spheres": [`, "invalid scene file"},
		{"unknown field", `{"cameras": []}`, "invalid scene file"},
		{"unknown material", `{"spheres": [{"center": [0,0,0], "radius": 1, "material": "gold"}]}`, "unknown material"},
		{"unknown kind", `{"materials": {"m": {"type": "metal"}}}`, "unknown material type"},
		{"bad hex color", `{"materials": {"m": {"type": "diffuse", "color": "#12"}}}`, "invalid hex color"},
		{"unknown color name", `{"materials": {"m": {"type": "diffuse", "color": "notacolor"}}}`, "unknown color name"},
		{"short color array", `{"lights": [{"position": [0,0,0], "color": [1, 1]}]}`, "3 components"},
		{"low ior", `{"materials": {"m": {"type": "refractive", "ior": 0.5}}}`, "refractive index"},
		{"zero radius", `{"materials": {"m": {"type": "diffuse"}}, "spheres": [{"center": [0,0,0], "radius": 0, "material": "m"}]}`, "radius"},
		{"zero axis", `{"options": {"axis": [0, 0, 0]}}`, "camera axis"},
		{"missing mesh", `{"materials": {"m": {"type": "diffuse"}}, "meshes": [{"path": "missing.obj", "material": "m"}]}`, "mesh 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScene(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("Expected error")
			}
			if !strings.Contains(err.Error(), tt.message) {
				t.Errorf("Expected error containing %q, got %v", tt.message, err)
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		input    string
		expected core.Color
	}{
		{"#ffffff", core.NewColor(1, 1, 1)},
		{"#000", core.NewColor(0, 0, 0)},
		{"#F00", core.NewColor(1, 0, 0)},
		{" Red ", core.NewColor(1, 0, 0)},
		{"black", core.NewColor(0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseColor(tt.input)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestLoadScene_WithMesh(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "quad.obj", quadOBJ)
	path := writeFile(t, dir, "mesh.json", `{
		"materials": {"m": {"type": "diffuse", "color": "gray"}},
		"meshes": [{"path": "quad.obj", "material": "m", "translate": [0, 0, 4]}],
		"lights": [{"position": [0, 0, 0]}]
	}`)

	s, err := LoadScene(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got := s.GetPrimitiveCount(); got != 2 {
		t.Errorf("Expected 2 mesh triangles, got %d", got)
	}
}

func TestLoadScene_PathValidation(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"empty", ""},
		{"wrong extension", "scenes/scene.pbrt"},
		{"null byte", "scenes/a\x00.json"},
		{"too long", strings.Repeat("a", 600) + ".json"},
		{"missing", filepath.Join(t.TempDir(), "missing.json")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadScene(tt.path); err == nil {
				t.Error("Expected error")
			}
		})
	}
}
