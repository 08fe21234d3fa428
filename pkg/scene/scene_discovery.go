package scene

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	Name        string `json:"name"`        // Scene name
	Description string `json:"description"` // Optional description
	Type        string `json:"type"`        // "builtin" or "json"
	FilePath    string `json:"filePath"`    // Path to scene file (json type only)
}

type builtInScene struct {
	info   SceneInfo
	create func() *Scene
}

var builtInScenes = []builtInScene{
	{
		info: SceneInfo{
			ID:          "default",
			Name:        "Default Scene",
			Description: "Open room with diffuse, mirror, glass and glossy spheres",
			Type:        "builtin",
		},
		create: NewDefaultScene,
	},
	{
		info: SceneInfo{
			ID:          "mirror-box",
			Name:        "Mirror Box",
			Description: "Mirrored sphere inside a closed mirrored box",
			Type:        "builtin",
		},
		create: NewMirrorBoxScene,
	},
	{
		info: SceneInfo{
			ID:          "glass",
			Name:        "Glass Spheres",
			Description: "Refractive spheres in front of a striped wall",
			Type:        "builtin",
		},
		create: NewGlassScene,
	},
}

// BuiltInScenes returns metadata for every built-in scene
func BuiltInScenes() []SceneInfo {
	infos := make([]SceneInfo, 0, len(builtInScenes))
	for _, b := range builtInScenes {
		infos = append(infos, b.info)
	}
	return infos
}

// NewBuiltInScene creates the built-in scene with the given ID
func NewBuiltInScene(id string) (*Scene, error) {
	for _, b := range builtInScenes {
		if b.info.ID == id {
			return b.create(), nil
		}
	}
	return nil, fmt.Errorf("unknown scene: %q", id)
}

// ListScenes returns the built-in scenes followed by any JSON scene files in dir.
// A missing directory is not an error.
func ListScenes(dir string) ([]SceneInfo, error) {
	scenes := BuiltInScenes()
	if dir == "" {
		return scenes, nil
	}
	if _, err := os.Stat(dir); err != nil {
		return scenes, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	var found []SceneInfo
	for _, filePath := range files {
		info, err := ParseSceneMetadata(filePath)
		if err != nil {
			fmt.Printf("Warning: failed to parse metadata for %s: %v\n", filePath, err)
			continue
		}
		found = append(found, info)
	}

	sort.Slice(found, func(i, j int) bool {
		return found[i].Name < found[j].Name
	})

	return append(scenes, found...), nil
}

// ParseSceneMetadata reads the top-level name and description of a JSON scene file
func ParseSceneMetadata(filePath string) (SceneInfo, error) {
	base := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	info := SceneInfo{
		ID:       "json:" + base,
		Name:     base,
		Type:     "json",
		FilePath: filePath,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return info, fmt.Errorf("failed to read scene file: %w", err)
	}

	var header struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return info, fmt.Errorf("invalid scene file: %w", err)
	}
	if header.Name != "" {
		info.Name = header.Name
	}
	info.Description = header.Description

	return info, nil
}
