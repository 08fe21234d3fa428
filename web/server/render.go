package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/output"
	"github.com/df07/go-recursive-raytracer/pkg/renderer"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
)

// ImageUpdate carries the finished image over SSE
type ImageUpdate struct {
	ImageData string `json:"imageData"` // Base64 encoded PNG
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Stats     Stats  `json:"stats"`
}

// renderResult is passed from the render goroutine to the SSE writer
type renderResult struct {
	image image.Image
	stats Stats
}

// render draws sceneObj at the requested size
func (s *Server) render(sceneObj *scene.Scene, req *RenderRequest, logger core.Logger) (image.Image, Stats) {
	raytracer := renderer.NewRaytracer(sceneObj, s.config.RendererConfig(), logger)
	buffer := output.NewFloatImage(req.Width, req.Height)
	stats := raytracer.Render(buffer)

	return buffer.ToRGBA(), Stats{
		Pixels:          stats.Pixels,
		PrimaryRays:     stats.PrimaryRays,
		SecondaryRays:   stats.SecondaryRays,
		ShadowRays:      stats.ShadowRays,
		MaxDepthReached: stats.MaxDepthReached,
		ElapsedMs:       stats.Duration.Milliseconds(),
	}
}

// prepare parses the request and builds its scene, writing any error response
func (s *Server) prepare(w http.ResponseWriter, r *http.Request) (*RenderRequest, *scene.Scene, bool) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return nil, nil, false
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		sceneError(w, err)
		return nil, nil, false
	}

	return req, sceneObj, true
}

// handleRender renders a scene and responds with a PNG
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, sceneObj, ok := s.prepare(w, r)
	if !ok {
		return
	}

	// Client already gone, skip the render
	if r.Context().Err() != nil {
		return
	}

	img, stats := s.render(sceneObj, req, NewWebLogger(newRenderID(), nil))

	var buf bytes.Buffer
	if err := output.Encode(&buf, img); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Time-Ms", strconv.FormatInt(stats.ElapsedMs, 10))
	w.Header().Set("X-Primary-Rays", strconv.Itoa(stats.PrimaryRays))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Printf("Error writing render: %v", err)
	}
}

// handleRenderStream renders a scene and streams console output and the
// final image as Server-Sent Events
func (s *Server) handleRenderStream(w http.ResponseWriter, r *http.Request) {
	req, sceneObj, ok := s.prepare(w, r)
	if !ok {
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	ctx := r.Context()
	if ctx.Err() != nil {
		return
	}

	s.setSSEHeaders(w)
	w.WriteHeader(http.StatusOK)

	consoleChan, webLogger := s.setupConsoleLogging()
	done := make(chan renderResult, 1)
	go func() {
		img, stats := s.render(sceneObj, req, webLogger)
		done <- renderResult{image: img, stats: stats}
	}()

	// Single writer: console messages until the render finishes
	for {
		select {
		case msg := <-consoleChan:
			s.sendConsoleMessage(w, flusher, msg)

		case result := <-done:
			// Drain messages logged just before completion
			for drained := false; !drained; {
				select {
				case msg := <-consoleChan:
					s.sendConsoleMessage(w, flusher, msg)
				default:
					drained = true
				}
			}

			imageData, err := s.imageToBase64PNG(result.image)
			if err != nil {
				s.sendSSEEvent(w, flusher, "error", fmt.Sprintf("failed to encode image: %v", err))
				return
			}
			update, err := json.Marshal(ImageUpdate{
				ImageData: imageData,
				Width:     req.Width,
				Height:    req.Height,
				Stats:     result.stats,
			})
			if err != nil {
				s.sendSSEEvent(w, flusher, "error", err.Error())
				return
			}
			s.sendSSEEvent(w, flusher, "image", string(update))
			s.sendSSEEvent(w, flusher, "complete", "Rendering completed")
			return

		case <-ctx.Done():
			// Client disconnected; the render goroutine finishes on its own
			return
		}
	}
}

// handlePublish renders a scene and uploads it through the configured publisher
func (s *Server) handlePublish(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "publish requires POST")
		return
	}
	if s.publisher == nil {
		writeError(w, http.StatusServiceUnavailable, "publishing is not configured")
		return
	}

	req, sceneObj, ok := s.prepare(w, r)
	if !ok {
		return
	}

	img, stats := s.render(sceneObj, req, NewWebLogger(newRenderID(), nil))
	name := fmt.Sprintf("%s/render_%s.png", sanitizeID(req.Scene), time.Now().Format("20060102_150405"))
	key, err := s.publisher.Publish(r.Context(), name, img)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"key": key, "stats": stats})
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// setupConsoleLogging creates console channel and web logger for a render
func (s *Server) setupConsoleLogging() (chan ConsoleMessage, core.Logger) {
	consoleChan := make(chan ConsoleMessage, 50)
	return consoleChan, NewWebLogger(newRenderID(), consoleChan)
}

func (s *Server) sendConsoleMessage(w http.ResponseWriter, flusher http.Flusher, msg ConsoleMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling console message: %v", err)
		return
	}
	s.sendSSEEvent(w, flusher, "console", string(data))
}

// sendSSEEvent sends a generic SSE event
func (s *Server) sendSSEEvent(w http.ResponseWriter, flusher http.Flusher, event, data string) {
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
	flusher.Flush()
}

// imageToBase64PNG converts an image to base64-encoded PNG
func (s *Server) imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := output.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func newRenderID() string {
	return fmt.Sprintf("render-%d", time.Now().UnixNano())
}

// sanitizeID turns a scene ID into a safe object key segment
func sanitizeID(id string) string {
	out := []rune(id)
	for i, r := range out {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-' || r == '_') {
			out[i] = '-'
		}
	}
	return string(out)
}
