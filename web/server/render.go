package server

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"math"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-block-pathtracer/pkg/config"
	"github.com/df07/go-block-pathtracer/pkg/core"
	"github.com/df07/go-block-pathtracer/pkg/geometry"
	"github.com/df07/go-block-pathtracer/pkg/renderer"
	"github.com/df07/go-block-pathtracer/pkg/scene"
)

// Request limits for /api/render
const (
	defaultWidth   = 400
	defaultSamples = 10
	defaultSeed    = 42
	maxDimension   = 2000
	maxSamples     = 1000
	maxDepth       = 100
	maxBlocks      = 256
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene           string `json:"scene"`
	Width           int    `json:"width"`
	Height          int    `json:"height"` // 0 keeps the scene's aspect ratio
	SamplesPerPixel int    `json:"samplesPerPixel"`
	MaxDepth        int    `json:"maxDepth"` // 0 uses the scene's depth
	Blocks          int    `json:"blocks"`   // 0 means one block per logical CPU
	Seed            int64  `json:"seed"`
}

// parseRenderRequest reads and bounds-checks the render query parameters
func parseRenderRequest(values url.Values) (*RenderRequest, error) {
	req := &RenderRequest{Scene: values.Get("scene")}
	if req.Scene == "" {
		req.Scene = "random-spheres"
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", defaultWidth, 1, maxDimension); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(values, "height", 0, 0, maxDimension); err != nil {
		return nil, err
	}
	if req.SamplesPerPixel, err = parseIntParam(values, "samples", defaultSamples, 1, maxSamples); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(values, "depth", 0, 0, maxDepth); err != nil {
		return nil, err
	}
	if req.Blocks, err = parseIntParam(values, "blocks", 0, 0, maxBlocks); err != nil {
		return nil, err
	}

	req.Seed = defaultSeed
	if str := values.Get("seed"); str != "" {
		if req.Seed, err = strconv.ParseInt(str, 10, 64); err != nil {
			return nil, fmt.Errorf("seed must be an integer, got %q", str)
		}
	}
	return req, nil
}

// preparedScene is a scene with its BVH built and the request resolved
// against the scene's defaults
type preparedScene struct {
	scene  *scene.Scene
	world  *geometry.BVH
	camera *renderer.Camera
	config renderer.Config
}

func prepareScene(req *RenderRequest) (*preparedScene, error) {
	random := rand.New(rand.NewSource(req.Seed))
	sc, err := scene.Lookup(req.Scene, random)
	if err != nil {
		return nil, err
	}

	sampling := sc.SamplingConfig
	height := req.Height
	if height == 0 {
		height = int(math.Max(1, math.Round(float64(req.Width)*float64(sampling.Height)/float64(sampling.Width))))
	}

	renderConfig := config.RenderConfig{
		Width:           req.Width,
		Height:          height,
		SamplesPerPixel: req.SamplesPerPixel,
		MaxDepth:        req.MaxDepth,
		Blocks:          req.Blocks,
		Seed:            req.Seed,
	}.RendererConfig(sampling.Width, sampling.Height, sampling.SamplesPerPixel, sampling.MaxDepth)

	bvh, err := sc.BuildBVH(random)
	if err != nil {
		return nil, err
	}

	return &preparedScene{
		scene:  sc,
		world:  bvh,
		camera: sc.NewCamera(renderConfig.Width, renderConfig.Height),
		config: renderConfig,
	}, nil
}

// handleRender renders a scene to completion and returns it as a PNG
func (s *Server) handleRender(c echo.Context) error {
	req, err := parseRenderRequest(c.QueryParams())
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}

	select {
	case s.renders <- struct{}{}:
		defer func() { <-s.renders }()
	default:
		return errorJSON(c, http.StatusServiceUnavailable, "a render is already in progress")
	}

	renderID := fmt.Sprintf("render-%d", s.nextID.Add(1))
	img, stats, err := s.render(req, NewWebLogger(renderID, s.log, s.console))
	if err != nil {
		switch {
		case errors.Is(err, scene.ErrUnknownScene):
			return errorJSON(c, http.StatusNotFound, err.Error())
		case errors.Is(err, renderer.ErrInvalidConfig):
			return errorJSON(c, http.StatusBadRequest, err.Error())
		}
		s.log.Errorf("%s failed: %v", renderID, err)
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return errorJSON(c, http.StatusInternalServerError, "failed to encode image: "+err.Error())
	}

	header := c.Response().Header()
	header.Set("X-Render-ID", renderID)
	header.Set("X-Render-Duration-Ms", strconv.FormatInt(stats.Duration.Milliseconds(), 10))
	header.Set("X-Render-Blocks", strconv.Itoa(stats.Blocks))
	header.Set("X-Render-Samples", strconv.Itoa(stats.TotalSamples))
	return c.Blob(http.StatusOK, "image/png", buf.Bytes())
}

func (s *Server) render(req *RenderRequest, log core.Logger) (*image.RGBA, renderer.RenderStats, error) {
	prepared, err := prepareScene(req)
	if err != nil {
		return nil, renderer.RenderStats{}, err
	}
	return renderer.NewRaytracer(prepared.world, prepared.camera, prepared.config, log).Render()
}
