package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-block-pathtracer/internal/logger"
	"github.com/df07/go-block-pathtracer/pkg/config"
	"github.com/df07/go-block-pathtracer/pkg/renderer"
	"github.com/df07/go-block-pathtracer/pkg/scene"
)

func main() {
	cfg, help, err := parseOptions(os.Args[1:], os.Stderr)
	if help {
		printUsage()
		return
	}

	if err != nil {
		logger.NewLogger("info").Fatalf("Invalid options: %v", err)
	}

	log, err := newLogger(cfg.Log)
	if err != nil {
		logger.NewLogger("info").Fatalf("Error opening log: %v", err)
	}
	defer log.Close()

	log.Info("Starting Block Path Tracer...")
	log.Infof("Host: %s", renderer.DetectHost())

	filename, err := run(cfg, log)
	if err != nil {
		log.Fatalf("Render failed: %v", err)
	}

	log.Infof("Render saved as %s", filename)
}

func printUsage() {
	fmt.Println("Block Path Tracer")
	fmt.Println("Usage: pathtracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	newFlagSet(config.DefaultConfig(), os.Stdout).PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	for _, info := range scene.ListScenes() {
		fmt.Printf("  %-15s %s\n", info.ID, info.Description)
	}
	fmt.Println()
	fmt.Println("Output will be saved to <out>/<scene>/render_<timestamp>.png")
}

// newFlagSet binds every option flag to cfg so that parsing overwrites
// only the values the user actually passed
func newFlagSet(cfg *config.Config, output io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("pathtracer", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.String("config", "", "YAML config file applied before the other flags")
	fs.Bool("help", false, "Show help information")
	fs.StringVar(&cfg.Scene.Name, "scene", cfg.Scene.Name, "Scene name: "+strings.Join(scene.Names(), ", "))
	fs.IntVar(&cfg.Render.Width, "width", cfg.Render.Width, "Image width (0 = scene default)")
	fs.IntVar(&cfg.Render.Height, "height", cfg.Render.Height, "Image height (0 = scene default)")
	fs.IntVar(&cfg.Render.SamplesPerPixel, "samples", cfg.Render.SamplesPerPixel, "Samples per pixel (0 = scene default)")
	fs.IntVar(&cfg.Render.MaxDepth, "depth", cfg.Render.MaxDepth, "Maximum bounce depth (0 = scene default)")
	fs.IntVar(&cfg.Render.Blocks, "blocks", cfg.Render.Blocks, "Row blocks rendered in parallel (0 = CPU count)")
	fs.Int64Var(&cfg.Render.Seed, "seed", cfg.Render.Seed, "Base random seed")
	fs.StringVar(&cfg.Output.Directory, "out", cfg.Output.Directory, "Output directory")
	fs.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "Log level: debug, info, warn, error")

	return fs
}

// parseOptions builds the configuration from defaults, an optional config
// file and command line flags, in increasing precedence
func parseOptions(args []string, output io.Writer) (*config.Config, bool, error) {
	// First pass only finds -config and -help
	pre := newFlagSet(config.DefaultConfig(), io.Discard)
	if err := pre.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, err
	}
	if pre.Lookup("help").Value.String() == "true" {
		return nil, true, nil
	}

	cfg := config.DefaultConfig()
	if configPath := pre.Lookup("config").Value.String(); configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, false, err
		}
		cfg = loaded
	}

	if err := newFlagSet(cfg, output).Parse(args); err != nil {
		return nil, false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, false, err
	}

	return cfg, false, nil
}

// newLogger creates the console logger, teeing to a file when configured
func newLogger(cfg config.LogConfig) (*logger.Logger, error) {
	if cfg.File != "" {
		return logger.NewMultiLogger(cfg.Level, cfg.File)
	}
	return logger.NewLogger(cfg.Level), nil
}

// run renders the configured scene and writes it as a PNG, returning the file path
func run(cfg *config.Config, log *logger.Logger) (string, error) {
	random := rand.New(rand.NewSource(cfg.Render.Seed))

	selectedScene, err := scene.Lookup(cfg.Scene.Name, random)
	if err != nil {
		return "", err
	}
	log.Infof("Using %s scene with %d primitives", selectedScene.Name, selectedScene.GetPrimitiveCount())

	sampling := selectedScene.SamplingConfig
	renderConfig := cfg.Render.RendererConfig(sampling.Width, sampling.Height, sampling.SamplesPerPixel, sampling.MaxDepth)

	buildStart := time.Now()
	bvh, err := selectedScene.BuildBVH(random)
	if err != nil {
		return "", err
	}
	bvhStats := bvh.Stats()
	log.Debugf("BVH built in %v: %d nodes, %d leaves, max depth %d, avg leaf depth %.1f",
		time.Since(buildStart), bvhStats.TotalNodes, bvhStats.LeafNodes, bvhStats.MaxDepth, bvhStats.AvgDepth)

	camera := selectedScene.NewCamera(renderConfig.Width, renderConfig.Height)
	raytracer := renderer.NewRaytracer(bvh, camera, renderConfig, log)

	img, stats, err := raytracer.Render()
	if err != nil {
		return "", err
	}
	log.Infof("Rendered %d pixels x %d samples in %d blocks (%v)",
		stats.TotalPixels, stats.SamplesPerPixel, stats.Blocks, stats.Duration)

	return saveImage(img, filepath.Join(cfg.Output.Directory, selectedScene.Name))
}

// saveImage writes img to dir/render_<timestamp>.png
func saveImage(img image.Image, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(dir, fmt.Sprintf("render_%s.png", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("saving PNG: %w", err)
	}

	return filename, nil
}
