package renderer

import (
	"image"
	"math/rand"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/output"
)

// DefaultTileSize is the edge length of a render tile in pixels
const DefaultTileSize = 32

// Tile represents a rectangular region of the image
type Tile struct {
	ID     int             // Unique tile identifier
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1)
	Random *rand.Rand      // Tile-specific random generator for deterministic jitter
}

// NewTile creates a new tile with the specified bounds
func NewTile(id int, bounds image.Rectangle) *Tile {
	return &Tile{
		ID:     id,
		Bounds: bounds,
		Random: rand.New(rand.NewSource(int64(id + 42))), // +42 to avoid seed 0
	}
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int) []*Tile {
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}

	var tiles []*Tile
	tileID := 0

	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, NewTile(tileID, image.Rect(x0, y0, x1, y1)))
			tileID++
		}
	}

	return tiles
}

// TileTask represents a tile rendering task
type TileTask struct {
	Tile    *Tile
	TaskID  int
	Camera  *Camera
	Image   output.Image // Shared output; tiles never overlap
	Samples int          // Sub-samples per pixel axis
	Jitter  bool         // Randomize sub-sample positions within their cell
}

// renderTile shades every pixel in the task's tile and returns its stats
func renderTile(tracer *Tracer, task TileTask) RenderStats {
	tracer.ResetStats()

	samples := max(1, task.Samples)
	step := 1 / float64(samples)
	count := float64(samples * samples)
	bounds := task.Tile.Bounds

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			total := core.Black
			for i := 0; i < samples; i++ {
				for j := 0; j < samples; j++ {
					sx := float64(x) + float64(i)*step
					sy := float64(y) + float64(j)*step
					if task.Jitter {
						sx += task.Tile.Random.Float64() * step
						sy += task.Tile.Random.Float64() * step
					}
					total = total.Add(tracer.TraceRay(task.Camera.GetRay(sx, sy)))
				}
			}
			task.Image.SetPixel(x, y, total.Divide(count).Clamp())
			tracer.stats.Pixels++
		}
	}

	return tracer.Stats()
}
