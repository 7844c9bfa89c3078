package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/df07/go-block-pathtracer/internal/logger"
	"github.com/df07/go-block-pathtracer/pkg/renderer"
)

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("config: invalid value")

// Config represents the main configuration
type Config struct {
	Render RenderConfig `yaml:"render"`
	Scene  SceneConfig  `yaml:"scene"`
	Output OutputConfig `yaml:"output"`
	Log    LogConfig    `yaml:"log"`
}

// RenderConfig contains image and sampling settings.
// Zero width, height, samples or depth defer to the scene's own defaults.
type RenderConfig struct {
	Width           int   `yaml:"width"`
	Height          int   `yaml:"height"`
	SamplesPerPixel int   `yaml:"samples_per_pixel"`
	MaxDepth        int   `yaml:"max_depth"`
	Blocks          int   `yaml:"blocks"` // 0 means one block per logical CPU
	Seed            int64 `yaml:"seed"`
}

// SceneConfig selects the scene to render
type SceneConfig struct {
	Name string `yaml:"name"`
}

// OutputConfig controls where images are written
type OutputConfig struct {
	Directory string `yaml:"directory"`
}

// LogConfig controls logging
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // Optional; also log to this file
}

// DefaultConfig creates a default configuration
func DefaultConfig() *Config {
	return &Config{
		Render: RenderConfig{
			Blocks: 0,
			Seed:   42,
		},
		Scene: SceneConfig{
			Name: "random-spheres",
		},
		Output: OutputConfig{
			Directory: "output",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// LoadConfig reads a YAML file over the defaults. Keys missing from the
// file keep their default values.
func LoadConfig(filePath string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.UnmarshalStrict(data, config); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", filePath, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", filePath, err)
	}

	return config, nil
}

// SaveConfig saves the configuration to a file
func SaveConfig(config *Config, filePath string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("error serializing config: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// Validate rejects values no render could use
func (c *Config) Validate() error {
	r := c.Render
	switch {
	case r.Width < 0:
		return fmt.Errorf("%w: render.width must not be negative, got %d", ErrInvalid, r.Width)
	case r.Height < 0:
		return fmt.Errorf("%w: render.height must not be negative, got %d", ErrInvalid, r.Height)
	case r.SamplesPerPixel < 0:
		return fmt.Errorf("%w: render.samples_per_pixel must not be negative, got %d", ErrInvalid, r.SamplesPerPixel)
	case r.MaxDepth < 0:
		return fmt.Errorf("%w: render.max_depth must not be negative, got %d", ErrInvalid, r.MaxDepth)
	case r.Blocks < 0:
		return fmt.Errorf("%w: render.blocks must not be negative, got %d", ErrInvalid, r.Blocks)
	case c.Scene.Name == "":
		return fmt.Errorf("%w: scene.name is required", ErrInvalid)
	case c.Output.Directory == "":
		return fmt.Errorf("%w: output.directory is required", ErrInvalid)
	}

	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalid, err)
	}

	return nil
}

// ResolveBlocks returns the configured block count, or the number of
// logical CPUs when it is unset
func (r RenderConfig) ResolveBlocks() int {
	if r.Blocks > 0 {
		return r.Blocks
	}
	return renderer.DefaultBlockCount()
}

// RendererConfig merges the render settings over a scene's defaults
func (r RenderConfig) RendererConfig(width, height, samplesPerPixel, maxDepth int) renderer.Config {
	config := renderer.Config{
		Width:           width,
		Height:          height,
		SamplesPerPixel: samplesPerPixel,
		MaxDepth:        maxDepth,
		Blocks:          r.ResolveBlocks(),
		Seed:            r.Seed,
	}
	if r.Width > 0 {
		config.Width = r.Width
	}
	if r.Height > 0 {
		config.Height = r.Height
	}
	if r.SamplesPerPixel > 0 {
		config.SamplesPerPixel = r.SamplesPerPixel
	}
	if r.MaxDepth > 0 {
		config.MaxDepth = r.MaxDepth
	}
	return config
}
