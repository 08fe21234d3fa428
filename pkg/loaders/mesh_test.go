package loaders

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/material"
)

const quadOBJ = `# unit quad in the XY plane
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1 2 3 4
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestLoadMesh_OBJ(t *testing.T) {
	path := writeFile(t, t.TempDir(), "quad.obj", quadOBJ)
	mat := material.NewDiffuse(core.NewColor(0.5, 0.5, 0.5))

	triangles, err := LoadMesh(path, MeshOptions{}, mat)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(triangles) != 2 {
		t.Fatalf("Expected quad to split into 2 triangles, got %d", len(triangles))
	}

	for i, tri := range triangles {
		if tri.GetMaterial() != mat {
			t.Errorf("Triangle %d: expected mesh material", i)
		}
		// Counter-clockwise faces point toward +Z
		if n := tri.GetNormal(); n != core.NewVec3(0, 0, 1) {
			t.Errorf("Triangle %d: expected normal (0,0,1), got %v", i, n)
		}
	}
}

func TestLoadMesh_Transform(t *testing.T) {
	path := writeFile(t, t.TempDir(), "quad.obj", quadOBJ)

	triangles, err := LoadMesh(path, MeshOptions{
		Scale:     2,
		Translate: core.NewVec3(-1, -1, 5),
	}, material.NewDiffuse(core.NewColor(1, 1, 1)))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	first := triangles[0]
	if first.V0 != core.NewVec3(-1, -1, 5) {
		t.Errorf("Expected first vertex at (-1,-1,5), got %v", first.V0)
	}
	if first.V1 != core.NewVec3(1, -1, 5) {
		t.Errorf("Expected second vertex at (1,-1,5), got %v", first.V1)
	}
	if first.V2 != core.NewVec3(1, 1, 5) {
		t.Errorf("Expected third vertex at (1,1,5), got %v", first.V2)
	}
}

func TestLoadMesh_Errors(t *testing.T) {
	dir := t.TempDir()
	unsupported := writeFile(t, dir, "mesh.xyz", quadOBJ)
	mat := material.NewDiffuse(core.NewColor(1, 1, 1))

	tests := []struct {
		name string
		path string
	}{
		{"empty path", ""},
		{"missing file", filepath.Join(dir, "missing.obj")},
		{"unsupported extension", unsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadMesh(tt.path, MeshOptions{}, mat); err == nil {
				t.Error("Expected error")
			}
		})
	}
}
