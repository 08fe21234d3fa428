package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-recursive-raytracer/pkg/config"
	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/loaders"
	"github.com/df07/go-recursive-raytracer/pkg/output"
	"github.com/df07/go-recursive-raytracer/pkg/renderer"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
)

func main() {
	// Parse command line flags
	sceneType := flag.String("scene", "default", "Built-in scene ('default', 'mirror-box', 'glass') or a .json scene path")
	sceneFile := flag.String("scene-file", "", "JSON scene file (overrides -scene)")
	width := flag.Int("width", 0, "Image width in pixels (0 = from environment)")
	height := flag.Int("height", 0, "Image height in pixels (0 = from environment)")
	aa := flag.Int("aa", 0, "Sub-samples per pixel axis (0 = scene setting)")
	workers := flag.Int("workers", -1, "Parallel workers (0 = CPU count, 1 = serial, -1 = from environment)")
	useCanvas := flag.Bool("canvas", false, "Render through a gg drawing canvas")
	thumbnail := flag.Int("thumbnail", 0, "Also save a thumbnail no larger than N pixels")
	publish := flag.Bool("publish", false, "Upload the render to the configured S3 bucket")
	envFile := flag.String("env", ".env", "Environment file with RAYTRACER_* settings")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	// Show help if requested
	if *help {
		fmt.Println("Recursive Raytracer")
		fmt.Println("Usage: raytracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Available scenes:")
		for _, info := range scene.BuiltInScenes() {
			fmt.Printf("  %-10s - %s\n", info.ID, info.Description)
		}
		fmt.Println()
		fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.png")
		return
	}

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	applyFlags(&cfg, *width, *height, *workers)
	if err := cfg.Validate(); err != nil {
		fmt.Printf("Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	if *sceneFile != "" {
		*sceneType = *sceneFile
	}
	fmt.Printf("Starting Recursive Raytracer with scene %s...\n", *sceneType)

	selectedScene, err := createScene(*sceneType)
	if err != nil {
		fmt.Printf("Error creating scene: %v\n", err)
		os.Exit(1)
	}
	if *aa > 0 {
		selectedScene.Options.AAMultiplier = *aa
	}
	fmt.Printf("Scene has %d primitives and %d lights\n", selectedScene.GetPrimitiveCount(), len(selectedScene.Lights()))

	img, stats := renderScene(selectedScene, cfg, *useCanvas, renderer.NewDefaultLogger())
	fmt.Printf("Render completed in %v (%d primary, %d secondary, %d shadow rays, max depth %d)\n",
		stats.Duration, stats.PrimaryRays, stats.SecondaryRays, stats.ShadowRays, stats.MaxDepthReached)

	// Create timestamped filename
	outputDir := createOutputDir(cfg.OutputDir, *sceneType)
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(outputDir, fmt.Sprintf("render_%s.png", timestamp))

	if err := output.Save(img, filename); err != nil {
		fmt.Printf("Error saving PNG: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Render saved as %s\n", filename)

	if *thumbnail > 0 {
		thumbPath := output.ThumbnailPath(filename)
		if err := output.Save(output.Thumbnail(img, *thumbnail), thumbPath); err != nil {
			fmt.Printf("Error saving thumbnail: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Thumbnail saved as %s\n", thumbPath)
	}

	if *publish {
		key, err := publishRender(context.Background(), cfg, filepath.Base(outputDir)+"/"+filepath.Base(filename), img)
		if err != nil {
			fmt.Printf("Error publishing render: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Render published to s3://%s/%s\n", cfg.S3.Bucket, key)
	}
}

// applyFlags overrides configuration values with explicitly set flags
func applyFlags(cfg *config.Config, width, height, workers int) {
	if width > 0 {
		cfg.Width = width
	}
	if height > 0 {
		cfg.Height = height
	}
	if workers >= 0 {
		cfg.Workers = workers
	}
}

// createScene returns a built-in scene or loads a JSON scene file
func createScene(sceneType string) (*scene.Scene, error) {
	if sceneType == "" {
		return nil, fmt.Errorf("scene name cannot be empty")
	}
	if strings.HasSuffix(strings.ToLower(sceneType), ".json") {
		return loaders.LoadScene(sceneType)
	}
	return scene.NewBuiltInScene(sceneType)
}

// createOutputDir returns the directory for renders of the given scene
func createOutputDir(root, sceneType string) string {
	name := strings.TrimSuffix(filepath.Base(sceneType), filepath.Ext(sceneType))
	if name == "" || name == "." {
		name = "scene"
	}
	return filepath.Join(root, name)
}

// renderScene renders s at the configured size
func renderScene(s *scene.Scene, cfg config.Config, useCanvas bool, logger core.Logger) (image.Image, renderer.RenderStats) {
	raytracer := renderer.NewRaytracer(s, cfg.RendererConfig(), logger)

	if useCanvas {
		canvas := output.NewCanvas(cfg.Width, cfg.Height)
		stats := raytracer.Render(canvas)
		return canvas.Image(), stats
	}

	buffer := output.NewFloatImage(cfg.Width, cfg.Height)
	stats := raytracer.Render(buffer)
	return buffer.ToRGBA(), stats
}

// publishRender uploads img to the configured bucket
func publishRender(ctx context.Context, cfg config.Config, name string, img image.Image) (string, error) {
	if !cfg.PublishEnabled() {
		return "", fmt.Errorf("no S3 bucket configured (set %sS3_BUCKET)", config.EnvPrefix)
	}
	publisher, err := output.NewS3Publisher(cfg.S3)
	if err != nil {
		return "", err
	}
	return publisher.Publish(ctx, name, img)
}
