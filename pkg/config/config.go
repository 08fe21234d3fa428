package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/df07/go-recursive-raytracer/pkg/output"
	"github.com/df07/go-recursive-raytracer/pkg/renderer"
)

// EnvPrefix prefixes every environment variable read by Load
const EnvPrefix = "RAYTRACER_"

// MaxDimension bounds the width and height of a render
const MaxDimension = 8192

// Config holds settings shared by the CLI and the web server
type Config struct {
	Width     int
	Height    int
	Workers   int // 0 = CPU count
	TileSize  int
	Jitter    bool
	OutputDir string
	S3        output.S3Config
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:     400,
		Height:    225, // 16:9 aspect ratio
		Workers:   0,
		TileSize:  renderer.DefaultTileSize,
		Jitter:    false,
		OutputDir: "output",
		S3: output.S3Config{
			Region: "us-east-1",
		},
	}
}

// Load reads envFile if it exists, then overrides the defaults with any
// RAYTRACER_* environment variables. An empty envFile reads ".env".
func Load(envFile string) (Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	cfg := DefaultConfig()
	var err error
	if cfg.Width, err = getEnvInt("WIDTH", cfg.Width); err != nil {
		return Config{}, err
	}
	if cfg.Height, err = getEnvInt("HEIGHT", cfg.Height); err != nil {
		return Config{}, err
	}
	if cfg.Workers, err = getEnvInt("WORKERS", cfg.Workers); err != nil {
		return Config{}, err
	}
	if cfg.TileSize, err = getEnvInt("TILE_SIZE", cfg.TileSize); err != nil {
		return Config{}, err
	}
	if cfg.Jitter, err = getEnvBool("JITTER", cfg.Jitter); err != nil {
		return Config{}, err
	}

	cfg.OutputDir = getEnv("OUTPUT_DIR", cfg.OutputDir)
	cfg.S3.Bucket = getEnv("S3_BUCKET", cfg.S3.Bucket)
	cfg.S3.Region = getEnv("S3_REGION", cfg.S3.Region)
	cfg.S3.Endpoint = getEnv("S3_ENDPOINT", cfg.S3.Endpoint)
	cfg.S3.AccessKey = getEnv("S3_ACCESS_KEY", cfg.S3.AccessKey)
	cfg.S3.SecretKey = getEnv("S3_SECRET_KEY", cfg.S3.SecretKey)
	cfg.S3.Prefix = getEnv("S3_PREFIX", cfg.S3.Prefix)

	return cfg, nil
}

// Validate checks that the settings describe a renderable image
func (c Config) Validate() error {
	if c.Width < 1 || c.Width > MaxDimension {
		return fmt.Errorf("width must be between 1 and %d, got %d", MaxDimension, c.Width)
	}
	if c.Height < 1 || c.Height > MaxDimension {
		return fmt.Errorf("height must be between 1 and %d, got %d", MaxDimension, c.Height)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers cannot be negative, got %d", c.Workers)
	}
	if c.TileSize < 1 {
		return fmt.Errorf("tile size must be positive, got %d", c.TileSize)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output directory cannot be empty")
	}
	return nil
}

// RendererConfig returns the scheduling settings for the renderer
func (c Config) RendererConfig() renderer.Config {
	return renderer.Config{
		NumWorkers: c.Workers,
		TileSize:   c.TileSize,
		Jitter:     c.Jitter,
	}
}

// PublishEnabled reports whether renders can be uploaded
func (c Config) PublishEnabled() bool {
	return c.S3.Bucket != ""
}

// Helper to get environment variables with a default value.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(EnvPrefix + key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(getEnv(key, ""))
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s%s: %q is not an integer", EnvPrefix, key, value)
	}
	return n, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	value := strings.TrimSpace(getEnv(key, ""))
	if value == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s%s: %q is not a boolean", EnvPrefix, key, value)
	}
	return b, nil
}
