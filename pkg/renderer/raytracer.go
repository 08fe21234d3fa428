package renderer

import (
	"time"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
	"github.com/df07/go-recursive-raytracer/pkg/lights"
	"github.com/df07/go-recursive-raytracer/pkg/output"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
)

// Scene is the read-only view of a scene needed for rendering
type Scene interface {
	Entities() []geometry.Entity
	Lights() []lights.PointLight
	GetOptions() scene.Options
}

// Config controls how a render is scheduled
type Config struct {
	NumWorkers int  // Parallel workers (0 = CPU count, 1 = render in the calling goroutine)
	TileSize   int  // Edge length of a tile in pixels
	Jitter     bool // Randomize sub-sample positions
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		NumWorkers: 0,
		TileSize:   DefaultTileSize,
		Jitter:     false,
	}
}

// Raytracer renders a scene into an image
type Raytracer struct {
	scene   Scene
	options scene.Options
	config  Config
	logger  core.Logger
}

// NewRaytracer creates a new raytracer. A nil logger discards output.
func NewRaytracer(s Scene, config Config, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = core.NopLogger{}
	}
	if config.TileSize <= 0 {
		config.TileSize = DefaultTileSize
	}
	return &Raytracer{
		scene:   s,
		options: s.GetOptions().Normalized(),
		config:  config,
		logger:  logger,
	}
}

// Render fills every pixel of img and returns the render statistics
func (rt *Raytracer) Render(img output.Image) RenderStats {
	start := time.Now()
	width, height := img.Width(), img.Height()
	if width <= 0 || height <= 0 {
		return RenderStats{}
	}

	camera := NewCamera(rt.options, width, height)
	tiles := NewTileGrid(width, height, rt.config.TileSize)
	newTask := func(id int, tile *Tile) TileTask {
		return TileTask{
			Tile:    tile,
			TaskID:  id,
			Camera:  camera,
			Image:   img,
			Samples: rt.options.AAMultiplier,
			Jitter:  rt.config.Jitter,
		}
	}

	var stats RenderStats
	workers := rt.config.NumWorkers
	if workers == 1 {
		tracer := NewTracer(rt.scene.Entities(), rt.scene.Lights(), rt.options.MaxDepth)
		for i, tile := range tiles {
			stats.Merge(renderTile(tracer, newTask(i, tile)))
		}
	} else {
		pool := NewWorkerPool(rt.scene, rt.options.MaxDepth, workers, len(tiles))
		workers = pool.GetNumWorkers()
		pool.Start()
		for i, tile := range tiles {
			pool.SubmitTask(newTask(i, tile))
		}
		for range tiles {
			result, _ := pool.GetResult()
			stats.Merge(result.Stats)
		}
		pool.Stop()
	}

	stats.Duration = time.Since(start)
	rt.logger.Printf("Time elapsed: %v (%dx%d, %d samples/pixel, %d workers, %.1f rays/pixel)\n",
		stats.Duration, width, height, rt.options.AAMultiplier*rt.options.AAMultiplier, workers, stats.RaysPerPixel())

	return stats
}
