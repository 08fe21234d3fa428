package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/material"
	"github.com/df07/go-recursive-raytracer/pkg/renderer"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType"`
	GeometryType string                 `json:"geometryType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Color        [3]float64             `json:"color"` // Shaded color of the pixel center
	Properties   map[string]interface{} `json:"properties"`
}

// InspectResult contains information about the entity hit by an inspection ray
type InspectResult struct {
	Hit    bool
	RayHit core.RayHit
	Entity geometry.Entity
	Origin core.Vec3
	Color  core.Color
}

// inspectPixel casts a ray through the center of the given pixel and
// returns the nearest entity it hits
func inspectPixel(sceneObj *scene.Scene, width, height, pixelX, pixelY int) InspectResult {
	options := sceneObj.GetOptions().Normalized()
	camera := renderer.NewCamera(options, width, height)
	ray := camera.GetRay(float64(pixelX), float64(pixelY))

	tracer := renderer.NewTracer(sceneObj.Entities(), sceneObj.Lights(), options.MaxDepth)
	entity, hit, ok := tracer.ClosestHit(ray)
	if !ok {
		return InspectResult{Hit: false}
	}

	return InspectResult{
		Hit:    true,
		RayHit: hit,
		Entity: entity,
		Origin: ray.Origin,
		Color:  tracer.CastRay(hit, entity, 0),
	}
}

// extractMaterialInfo describes a material
func (s *Server) extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch mat.Kind {
	case material.Diffuse, material.Glossy:
		properties["color"] = hexColor(mat.Color)
		properties["rgb"] = [3]float64{mat.Color.R, mat.Color.G, mat.Color.B}
	case material.Refractive:
		properties["refractiveIndex"] = mat.RefractiveIndex
		properties["color"] = "#ffffff" // Clear glass
	case material.Reflective:
		properties["color"] = "#ffffff"
	}

	return mat.Kind.String(), properties
}

// extractGeometryInfo describes an entity's geometry
func (s *Server) extractGeometryInfo(entity geometry.Entity) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := entity.(type) {
	case *geometry.Sphere:
		properties["center"] = vec3Array(geom.Center)
		properties["radius"] = geom.Radius
		return "sphere", properties

	case *geometry.Triangle:
		properties["vertices"] = [3][3]float64{vec3Array(geom.V0), vec3Array(geom.V1), vec3Array(geom.V2)}
		properties["normal"] = vec3Array(geom.GetNormal())
		return "triangle", properties

	default:
		return "unknown", properties
	}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	// Parse pixel coordinates
	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}

	// Validate pixel coordinates
	if pixelX < 0 || pixelX >= req.Width || pixelY < 0 || pixelY >= req.Height {
		writeError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		sceneError(w, err)
		return
	}

	result := inspectPixel(sceneObj, req.Width, req.Height, pixelX, pixelY)
	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false})
		return
	}

	materialType, materialProps := s.extractMaterialInfo(result.Entity.GetMaterial())
	geometryType, geometryProps := s.extractGeometryInfo(result.Entity)

	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        vec3Array(result.RayHit.Position),
		Normal:       vec3Array(result.RayHit.Normal),
		Distance:     result.RayHit.Position.Subtract(result.Origin).Length(),
		Color:        [3]float64{result.Color.R, result.Color.G, result.Color.B},
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		},
	})
}

func vec3Array(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Color) string {
	rgba := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
}
