package scene

import (
	"fmt"
	"math/rand"

	"github.com/df07/go-block-pathtracer/pkg/geometry"
	"github.com/df07/go-block-pathtracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name           string
	Shapes         []geometry.Shape // Objects in the scene
	CameraConfig   renderer.CameraConfig
	SamplingConfig SamplingConfig
	Time0, Time1   float64 // Interval the BVH boxes must cover
}

// SamplingConfig holds the render settings a scene was composed for
type SamplingConfig struct {
	Width           int // Image width
	Height          int // Image height
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// BuildBVH builds the acceleration structure over the scene's shapes.
// Shapes is reordered in place.
func (s *Scene) BuildBVH(random *rand.Rand) (*geometry.BVH, error) {
	bvh, err := geometry.NewBVH(s.Shapes, s.Time0, s.Time1, random)
	if err != nil {
		return nil, fmt.Errorf("scene %q: %w", s.Name, err)
	}
	return bvh, nil
}

// NewCamera creates the scene's camera with the aspect ratio of the
// given image size
func (s *Scene) NewCamera(width, height int) *renderer.Camera {
	config := s.CameraConfig
	if width > 0 && height > 0 {
		config.AspectRatio = float64(width) / float64(height)
	}
	return renderer.NewCamera(config)
}

// GetPrimitiveCount returns the number of shapes in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Shapes)
}
