package renderer

import (
	"image"
	"sync"
	"testing"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/material"
	"github.com/df07/go-recursive-raytracer/pkg/output"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
)

// countingImage records how often each pixel is written
type countingImage struct {
	mu            sync.Mutex
	width, height int
	writes        map[image.Point]int
	unclamped     int
}

func newCountingImage(width, height int) *countingImage {
	return &countingImage{width: width, height: height, writes: make(map[image.Point]int)}
}

func (c *countingImage) Width() int  { return c.width }
func (c *countingImage) Height() int { return c.height }
func (c *countingImage) SetPixel(x, y int, color core.Color) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.writes[image.Pt(x, y)]++
	if color != color.Clamp() {
		c.unclamped++
	}
}

func TestRaytracer_RenderWritesEveryPixelOnce(t *testing.T) {
	tests := []struct {
		name    string
		workers int
	}{
		{"serial", 1},
		{"parallel", 4},
		{"cpu count", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := scene.NewDefaultScene()
			s.Options.AAMultiplier = 2
			img := newCountingImage(37, 23)

			config := DefaultConfig()
			config.NumWorkers = tt.workers
			config.TileSize = 8
			stats := NewRaytracer(s, config, nil).Render(img)

			for y := 0; y < img.height; y++ {
				for x := 0; x < img.width; x++ {
					if n := img.writes[image.Pt(x, y)]; n != 1 {
						t.Fatalf("Pixel (%d,%d) written %d times", x, y, n)
					}
				}
			}
			if len(img.writes) != 37*23 {
				t.Errorf("Expected %d pixels written, got %d", 37*23, len(img.writes))
			}
			if img.unclamped != 0 {
				t.Errorf("Expected only clamped colors, got %d unclamped", img.unclamped)
			}
			if stats.Pixels != 37*23 {
				t.Errorf("Expected %d pixels in stats, got %d", 37*23, stats.Pixels)
			}
			if stats.PrimaryRays != 37*23*4 {
				t.Errorf("Expected %d primary rays, got %d", 37*23*4, stats.PrimaryRays)
			}
		})
	}
}

func TestRaytracer_SerialMatchesParallel(t *testing.T) {
	for _, jitter := range []bool{false, true} {
		s := scene.NewGlassScene()
		s.Options.AAMultiplier = 2

		serialConfig := Config{NumWorkers: 1, TileSize: 16, Jitter: jitter}
		parallelConfig := Config{NumWorkers: 3, TileSize: 16, Jitter: jitter}

		serial := output.NewFloatImage(40, 30)
		parallel := output.NewFloatImage(40, 30)
		NewRaytracer(s, serialConfig, nil).Render(serial)
		NewRaytracer(s, parallelConfig, nil).Render(parallel)

		for y := 0; y < 30; y++ {
			for x := 0; x < 40; x++ {
				if serial.Pixel(x, y) != parallel.Pixel(x, y) {
					t.Fatalf("jitter=%v: pixel (%d,%d) differs: %v vs %v",
						jitter, x, y, serial.Pixel(x, y), parallel.Pixel(x, y))
				}
			}
		}
	}
}

func TestRaytracer_EmptySceneIsBlack(t *testing.T) {
	img := output.NewFloatImage(8, 8)
	NewRaytracer(scene.NewScene(scene.DefaultOptions()), Config{NumWorkers: 2}, nil).Render(img)

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if img.Pixel(x, y) != core.Black {
				t.Fatalf("Expected black at (%d,%d), got %v", x, y, img.Pixel(x, y))
			}
		}
	}
}

func TestRaytracer_NoLightsIsBlack(t *testing.T) {
	s := scene.NewScene(scene.DefaultOptions())
	for _, entity := range scene.NewDefaultScene().Entities() {
		if entity.GetMaterial().Kind != material.Diffuse {
			continue
		}
		s.AddEntity(entity)
	}

	img := output.NewFloatImage(16, 16)
	NewRaytracer(s, Config{NumWorkers: 1}, nil).Render(img)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			if img.Pixel(x, y) != core.Black {
				t.Fatalf("Expected black at (%d,%d), got %v", x, y, img.Pixel(x, y))
			}
		}
	}
}

func TestRaytracer_MirrorBoxTerminates(t *testing.T) {
	s := scene.NewMirrorBoxScene()
	img := output.NewFloatImage(24, 24)

	stats := NewRaytracer(s, Config{NumWorkers: 2, TileSize: 8}, nil).Render(img)

	if stats.MaxDepthReached > scene.DefaultMaxDepth {
		t.Errorf("Expected depth at most %d, got %d", scene.DefaultMaxDepth, stats.MaxDepthReached)
	}
	if stats.SecondaryRays == 0 {
		t.Error("Expected reflections in the mirror box")
	}
	if stats.Pixels != 24*24 {
		t.Errorf("Expected %d pixels, got %d", 24*24, stats.Pixels)
	}
}

func TestRaytracer_ZeroSizedImage(t *testing.T) {
	stats := NewRaytracer(scene.NewDefaultScene(), DefaultConfig(), nil).Render(output.NewFloatImage(0, 10))
	if stats.Pixels != 0 {
		t.Errorf("Expected no pixels, got %d", stats.Pixels)
	}
}

type recordingLogger struct {
	lines int
}

func (r *recordingLogger) Printf(format string, args ...interface{}) { r.lines++ }

func TestRaytracer_LogsElapsedTime(t *testing.T) {
	logger := &recordingLogger{}
	NewRaytracer(scene.NewDefaultScene(), Config{NumWorkers: 1}, logger).Render(output.NewFloatImage(4, 4))
	if logger.lines != 1 {
		t.Errorf("Expected one log line, got %d", logger.lines)
	}
}

func TestNewTileGrid(t *testing.T) {
	tiles := NewTileGrid(100, 50, 32)
	if len(tiles) != 8 {
		t.Fatalf("Expected 8 tiles, got %d", len(tiles))
	}

	last := tiles[len(tiles)-1]
	if last.Bounds != image.Rect(96, 32, 100, 50) {
		t.Errorf("Expected last tile clipped to image, got %v", last.Bounds)
	}

	covered := 0
	for i, tile := range tiles {
		if tile.ID != i {
			t.Errorf("Expected tile ID %d, got %d", i, tile.ID)
		}
		covered += tile.Bounds.Dx() * tile.Bounds.Dy()
	}
	if covered != 100*50 {
		t.Errorf("Expected tiles to cover %d pixels, got %d", 100*50, covered)
	}

	if got := len(NewTileGrid(10, 10, 0)); got != 1 {
		t.Errorf("Expected default tile size to give 1 tile, got %d", got)
	}
}

func TestRenderStats_Merge(t *testing.T) {
	a := RenderStats{Pixels: 2, PrimaryRays: 8, SecondaryRays: 3, ShadowRays: 5, MaxDepthReached: 4}
	a.Merge(RenderStats{Pixels: 1, PrimaryRays: 4, ShadowRays: 1, MaxDepthReached: 2})

	expected := RenderStats{Pixels: 3, PrimaryRays: 12, SecondaryRays: 3, ShadowRays: 6, MaxDepthReached: 4}
	if a != expected {
		t.Errorf("Expected %+v, got %+v", expected, a)
	}
	if got := a.RaysPerPixel(); got != 7 {
		t.Errorf("Expected 7 rays per pixel, got %f", got)
	}
}
