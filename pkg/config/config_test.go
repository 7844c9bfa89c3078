package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "render.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("Default config should be valid, got %v", err)
	}
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := writeFile(t, `
render:
  width: 320
  samples_per_pixel: 8
  blocks: 3
scene:
  name: two-spheres
log:
  level: debug
`)

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if config.Render.Width != 320 || config.Render.SamplesPerPixel != 8 || config.Render.Blocks != 3 {
		t.Errorf("Render section not loaded: %+v", config.Render)
	}
	if config.Scene.Name != "two-spheres" || config.Log.Level != "debug" {
		t.Errorf("Scene or log section not loaded: %+v %+v", config.Scene, config.Log)
	}

	// Keys absent from the file keep their defaults
	if config.Render.Seed != 42 || config.Output.Directory != "output" {
		t.Errorf("Defaults lost: seed %d, output %q", config.Render.Seed, config.Output.Directory)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		invalid bool
	}{
		{"malformed yaml", "render: [width", false},
		{"unknown key", "render:\n  widht: 10\n", false},
		{"negative width", "render:\n  width: -5\n", true},
		{"negative blocks", "render:\n  blocks: -1\n", true},
		{"empty scene", "scene:\n  name: \"\"\n", true},
		{"bad log level", "log:\n  level: loud\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeFile(t, tt.content))
			if err == nil {
				t.Fatal("Expected an error")
			}
			if errors.Is(err, ErrInvalid) != tt.invalid {
				t.Errorf("Expected errors.Is(err, ErrInvalid)=%v, got %v", tt.invalid, err)
			}
		})
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected not-exist error for a missing file, got %v", err)
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	config := DefaultConfig()
	config.Render.Width = 640
	config.Scene.Name = "glass-metal"

	path := filepath.Join(t.TempDir(), "saved.yaml")
	if err := SaveConfig(config, path); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if *loaded != *config {
		t.Errorf("Expected %+v, got %+v", config, loaded)
	}
}

func TestRendererConfigMergesSceneDefaults(t *testing.T) {
	render := RenderConfig{Width: 100, MaxDepth: 7, Blocks: 2, Seed: 9}

	got := render.RendererConfig(1200, 800, 100, 50)

	if got.Width != 100 || got.Height != 800 || got.SamplesPerPixel != 100 || got.MaxDepth != 7 {
		t.Errorf("Unexpected merge result %+v", got)
	}
	if got.Blocks != 2 || got.Seed != 9 {
		t.Errorf("Blocks and seed should pass through, got %+v", got)
	}
}

func TestResolveBlocks(t *testing.T) {
	if got := (RenderConfig{Blocks: 5}).ResolveBlocks(); got != 5 {
		t.Errorf("Expected explicit count 5, got %d", got)
	}
	if got := (RenderConfig{}).ResolveBlocks(); got < 1 {
		t.Errorf("Unset block count should resolve to at least one CPU, got %d", got)
	}
}
