package renderer

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"sync"
	"time"

	"github.com/df07/go-block-pathtracer/pkg/core"
	"github.com/df07/go-block-pathtracer/pkg/geometry"
	"github.com/df07/go-block-pathtracer/pkg/integrator"
)

var (
	// ErrInvalidConfig is returned for render settings that cannot produce an image
	ErrInvalidConfig = errors.New("renderer: invalid config")

	// ErrBlockMismatch is returned when finished blocks do not tile the image exactly
	ErrBlockMismatch = errors.New("renderer: block does not match its declared rows")
)

// Config contains rendering configuration
type Config struct {
	Width           int   // Image width in pixels
	Height          int   // Image height in pixels
	SamplesPerPixel int   // Number of rays per pixel
	MaxDepth        int   // Maximum ray bounce depth
	Blocks          int   // Number of row blocks rendered in parallel (0 = CPU count)
	Seed            int64 // Base seed; block i draws from Seed+i
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 10,
		MaxDepth:        50,
		Blocks:          0,
		Seed:            42,
	}
}

// Validate reports the first setting that makes rendering impossible
func (c Config) Validate() error {
	switch {
	case c.Width <= 0:
		return fmt.Errorf("%w: width must be positive, got %d", ErrInvalidConfig, c.Width)
	case c.Height <= 0:
		return fmt.Errorf("%w: height must be positive, got %d", ErrInvalidConfig, c.Height)
	case c.SamplesPerPixel <= 0:
		return fmt.Errorf("%w: samples per pixel must be positive, got %d", ErrInvalidConfig, c.SamplesPerPixel)
	case c.MaxDepth <= 0:
		return fmt.Errorf("%w: max depth must be positive, got %d", ErrInvalidConfig, c.MaxDepth)
	case c.Blocks < 0:
		return fmt.Errorf("%w: blocks must not be negative, got %d", ErrInvalidConfig, c.Blocks)
	}
	return nil
}

// Raytracer renders a world through a camera by splitting the image into
// row blocks and tracing each block on its own goroutine
type Raytracer struct {
	world      geometry.Shape
	camera     core.Camera
	integrator integrator.Integrator
	config     Config
	logger     core.Logger
}

// NewRaytracer creates a raytracer using the path tracing integrator.
// A nil logger discards output.
func NewRaytracer(world geometry.Shape, camera core.Camera, config Config, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Raytracer{
		world:      world,
		camera:     camera,
		integrator: integrator.NewPathTracingIntegrator(),
		config:     config,
		logger:     logger,
	}
}

// SetIntegrator replaces the light transport algorithm
func (rt *Raytracer) SetIntegrator(integ integrator.Integrator) {
	rt.integrator = integ
}

// Render traces every block to completion and assembles the final image.
// The world and camera are shared read-only by all block goroutines.
func (rt *Raytracer) Render() (*image.RGBA, RenderStats, error) {
	if err := rt.config.Validate(); err != nil {
		return nil, RenderStats{}, err
	}

	numBlocks := rt.config.Blocks
	if numBlocks == 0 {
		numBlocks = DefaultBlockCount()
	}
	blocks := PartitionRows(rt.config.Height, numBlocks, rt.config.Seed)

	rt.logger.Printf("Rendering %dx%d at %d samples/pixel, max depth %d, in %d blocks...\n",
		rt.config.Width, rt.config.Height, rt.config.SamplesPerPixel, rt.config.MaxDepth, len(blocks))
	startTime := time.Now()

	var (
		mu        sync.Mutex
		wg        sync.WaitGroup
		completed = make([]*ImageBlock, 0, len(blocks))
	)
	for _, block := range blocks {
		wg.Add(1)
		go func(block *ImageBlock) {
			defer wg.Done()
			rt.renderBlock(block)

			mu.Lock()
			completed = append(completed, block)
			mu.Unlock()

			rt.logger.Printf("Block %d (rows %d-%d) completed\n", block.ID, block.StartRow, block.EndRow)
		}(block)
	}
	wg.Wait()

	img, err := assembleBlocks(completed, rt.config.Width, rt.config.Height)
	if err != nil {
		return nil, RenderStats{}, fmt.Errorf("assemble image: %w", err)
	}

	stats := RenderStats{
		TotalPixels:     rt.config.Width * rt.config.Height,
		TotalSamples:    rt.config.Width * rt.config.Height * rt.config.SamplesPerPixel,
		SamplesPerPixel: rt.config.SamplesPerPixel,
		Blocks:          len(blocks),
		Duration:        time.Since(startTime),
	}
	rt.logger.Printf("Render completed in %v (%.0f samples/sec)\n", stats.Duration, stats.SamplesPerSecond())

	return img, stats, nil
}

// renderBlock fills block.Rows top to bottom. Image row y maps to screen
// t running upward, so the top row looks along the top of the viewport.
func (rt *Raytracer) renderBlock(block *ImageBlock) {
	sampler := core.NewRandomSampler(block.Random)
	width, height := rt.config.Width, rt.config.Height
	uScale := float64(max(width-1, 1))
	vScale := float64(max(height-1, 1))

	for y := block.StartRow; y < block.EndRow; y++ {
		j := height - 1 - y
		row := make([]color.RGBA, width)

		for i := 0; i < width; i++ {
			var pixel PixelStats
			for sample := 0; sample < rt.config.SamplesPerPixel; sample++ {
				s := (float64(i) + sampler.Get1D()) / uScale
				t := (float64(j) + sampler.Get1D()) / vScale

				ray := rt.camera.GetRay(s, t, sampler)
				pixel.AddSample(rt.integrator.RayColor(ray, rt.world, sampler, rt.config.MaxDepth))
			}
			row[i] = vec3ToColor(pixel.GetColor())
		}

		block.Rows = append(block.Rows, row)
	}
}

// assembleBlocks places every block's rows at its recorded StartRow.
// Arrival order does not matter, but the blocks must cover each image
// row exactly once with rows of the full image width.
func assembleBlocks(blocks []*ImageBlock, width, height int) (*image.RGBA, error) {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	covered := make([]bool, height)

	for _, block := range blocks {
		if block.StartRow < 0 || block.EndRow > height || block.StartRow > block.EndRow {
			return nil, fmt.Errorf("%w: block %d spans rows [%d, %d) outside image height %d",
				ErrBlockMismatch, block.ID, block.StartRow, block.EndRow, height)
		}
		if len(block.Rows) != block.Height() {
			return nil, fmt.Errorf("%w: block %d declares %d rows but holds %d",
				ErrBlockMismatch, block.ID, block.Height(), len(block.Rows))
		}

		for r, row := range block.Rows {
			y := block.StartRow + r
			if len(row) != width {
				return nil, fmt.Errorf("%w: block %d row %d has %d pixels, expected %d",
					ErrBlockMismatch, block.ID, y, len(row), width)
			}
			if covered[y] {
				return nil, fmt.Errorf("%w: row %d rendered by more than one block", ErrBlockMismatch, y)
			}
			covered[y] = true

			for x, pixel := range row {
				img.SetRGBA(x, y, pixel)
			}
		}
	}

	for y, ok := range covered {
		if !ok {
			return nil, fmt.Errorf("%w: row %d not covered by any block", ErrBlockMismatch, y)
		}
	}

	return img, nil
}
