package main

import (
	"errors"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-block-pathtracer/internal/logger"
	"github.com/df07/go-block-pathtracer/pkg/config"
	"github.com/df07/go-block-pathtracer/pkg/scene"
)

func quietLogger() *logger.Logger {
	l := logger.NewLogger("error")
	l.SetOutput(io.Discard)
	return l
}

func TestParseOptions(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "render.yaml")
	if err := os.WriteFile(configPath, []byte("render:\n  width: 90\n  samples_per_pixel: 3\nscene:\n  name: glass-metal\n"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	tests := []struct {
		name     string
		args     []string
		check    func(t *testing.T, cfg *config.Config)
		help     bool
		errIsBad bool
	}{
		{
			name: "defaults",
			args: nil,
			check: func(t *testing.T, cfg *config.Config) {
				if *cfg != *config.DefaultConfig() {
					t.Errorf("Expected defaults, got %+v", cfg)
				}
			},
		},
		{
			name: "flags override defaults",
			args: []string{"-scene", "two-spheres", "-width", "64", "-blocks", "3", "-seed", "7"},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Scene.Name != "two-spheres" || cfg.Render.Width != 64 || cfg.Render.Blocks != 3 || cfg.Render.Seed != 7 {
					t.Errorf("Flags not applied: %+v", cfg)
				}
			},
		},
		{
			name: "flags override config file",
			args: []string{"-config", configPath, "-samples", "5"},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Scene.Name != "glass-metal" || cfg.Render.Width != 90 {
					t.Errorf("Config file not applied: %+v", cfg)
				}
				if cfg.Render.SamplesPerPixel != 5 {
					t.Errorf("Flag should win over file, got %d samples", cfg.Render.SamplesPerPixel)
				}
			},
		},
		{name: "help", args: []string{"-help"}, help: true},
		{name: "negative depth", args: []string{"-depth", "-1"}, errIsBad: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, help, err := parseOptions(tt.args, io.Discard)
			if help != tt.help {
				t.Fatalf("Expected help=%v, got %v", tt.help, help)
			}
			if tt.errIsBad {
				if !errors.Is(err, config.ErrInvalid) {
					t.Errorf("Expected config.ErrInvalid, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}

	if _, _, err := parseOptions([]string{"-width", "wide"}, io.Discard); err == nil {
		t.Error("Expected an error for a non-numeric width")
	}
}

func TestRunWritesPNG(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Scene.Name = "two-spheres"
	cfg.Render.Width = 16
	cfg.Render.Height = 9
	cfg.Render.SamplesPerPixel = 1
	cfg.Render.MaxDepth = 2
	cfg.Render.Blocks = 3
	cfg.Output.Directory = t.TempDir()

	filename, err := run(cfg, quietLogger())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if dir := filepath.Base(filepath.Dir(filename)); dir != "two-spheres" {
		t.Errorf("Expected output under the scene directory, got %s", filename)
	}
	if !strings.HasPrefix(filepath.Base(filename), "render_") {
		t.Errorf("Unexpected file name %s", filename)
	}

	file, err := os.Open(filename)
	if err != nil {
		t.Fatalf("Failed to open output: %v", err)
	}
	defer file.Close()

	img, err := png.Decode(file)
	if err != nil {
		t.Fatalf("Output is not a PNG: %v", err)
	}
	if img.Bounds().Dx() != 16 || img.Bounds().Dy() != 9 {
		t.Errorf("Expected 16x9 image, got %v", img.Bounds())
	}
}

func TestRunUnknownScene(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Scene.Name = "nonexistent"
	cfg.Output.Directory = t.TempDir()

	if _, err := run(cfg, quietLogger()); !errors.Is(err, scene.ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
}
