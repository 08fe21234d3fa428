package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/df07/go-recursive-raytracer/pkg/config"
	"github.com/df07/go-recursive-raytracer/pkg/loaders"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
)

// Limits for request parameters
const (
	minDimension = 16
	maxDimension = 2000
	maxAA        = 8
)

var errUnknownScene = errors.New("unknown scene")

// Publisher uploads finished renders
type Publisher interface {
	Publish(ctx context.Context, name string, img image.Image) (string, error)
}

// Server handles web requests for the raytracer
type Server struct {
	port      int
	scenesDir string
	config    config.Config
	publisher Publisher
}

// NewServer creates a new web server. JSON scenes are discovered in scenesDir.
func NewServer(port int, cfg config.Config, scenesDir string) *Server {
	return &Server{port: port, config: cfg, scenesDir: scenesDir}
}

// SetPublisher enables the publish endpoint
func (s *Server) SetPublisher(publisher Publisher) {
	s.publisher = publisher
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene  string  `json:"scene"`  // Scene ID (e.g., "default", "json:room")
	Width  int     `json:"width"`  // Image width
	Height int     `json:"height"` // Image height
	AA     int     `json:"aa"`     // Sub-samples per pixel axis (0 = scene setting)
	FOV    float64 `json:"fov"`    // Field of view in degrees (0 = scene setting)
}

// Stats represents render statistics
type Stats struct {
	Pixels          int   `json:"pixels"`
	PrimaryRays     int   `json:"primaryRays"`
	SecondaryRays   int   `json:"secondaryRays"`
	ShadowRays      int   `json:"shadowRays"`
	MaxDepthReached int   `json:"maxDepthReached"`
	ElapsedMs       int64 `json:"elapsedMs"`
}

// Handler returns the HTTP handler with all API routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Serve static files
	mux.Handle("/", http.FileServer(http.Dir("static/")))

	// API endpoints
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/render/stream", s.handleRenderStream)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	mux.HandleFunc("/api/publish", s.handlePublish)

	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists built-in and discovered JSON scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	scenes, err := scene.ListScenes(s.scenesDir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"scenes": scenes})
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{Scene: "default"}
	if sceneID := strings.TrimSpace(query.Get("scene")); sceneID != "" {
		req.Scene = sceneID
	}

	defaultWidth := min(max(s.config.Width, minDimension), maxDimension)
	defaultHeight := min(max(s.config.Height, minDimension), maxDimension)

	var err error
	if req.Width, err = parseIntParam(query, "width", defaultWidth, minDimension, maxDimension); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", defaultHeight, minDimension, maxDimension); err != nil {
		return nil, err
	}
	if req.AA, err = parseIntParam(query, "aa", 0, 1, maxAA); err != nil {
		return nil, err
	}
	if req.FOV, err = parseFloatParam(query, "fov", 0, 1, 179); err != nil {
		return nil, err
	}

	// Performance warning
	if req.Width*req.Height > 800*600 && req.AA > 2 {
		log.Printf("Render warning: Large image with high anti-aliasing may render slowly")
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %g and %g, got: %g", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// createScene builds the scene for req, applying any option overrides
func (s *Server) createScene(req *RenderRequest) (*scene.Scene, error) {
	sceneObj, err := s.lookupScene(req.Scene)
	if err != nil {
		return nil, err
	}
	if req.AA > 0 {
		sceneObj.Options.AAMultiplier = req.AA
	}
	if req.FOV > 0 {
		sceneObj.Options.CameraAngle = req.FOV
	}
	return sceneObj, nil
}

func (s *Server) lookupScene(id string) (*scene.Scene, error) {
	if !strings.HasPrefix(id, "json:") {
		sceneObj, err := scene.NewBuiltInScene(id)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", errUnknownScene, id)
		}
		return sceneObj, nil
	}

	// JSON scenes are only loaded from discovered files, never from request paths
	scenes, err := scene.ListScenes(s.scenesDir)
	if err != nil {
		return nil, err
	}
	for _, info := range scenes {
		if info.ID == id {
			return loaders.LoadScene(info.FilePath)
		}
	}
	return nil, fmt.Errorf("%w: %s", errUnknownScene, id)
}

// sceneError writes 404 for unknown scenes and 500 otherwise
func sceneError(w http.ResponseWriter, err error) {
	if errors.Is(err, errUnknownScene) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
