package scene

import (
	"math/rand"

	"github.com/df07/go-block-pathtracer/pkg/core"
	"github.com/df07/go-block-pathtracer/pkg/geometry"
	"github.com/df07/go-block-pathtracer/pkg/material"
	"github.com/df07/go-block-pathtracer/pkg/renderer"
)

// randomColor returns a color with each channel uniform in [0, 1)
func randomColor(random *rand.Rand) core.Vec3 {
	return core.NewVec3(random.Float64(), random.Float64(), random.Float64())
}

// NewRandomSpheresScene creates a checkered ground covered in a grid of
// small diffuse, metal and glass spheres around three large ones.
// The diffuse spheres bounce upward during the shutter interval.
func NewRandomSpheresScene(random *rand.Rand) *Scene {
	cameraConfig := renderer.CameraConfig{
		Center:        core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		AspectRatio:   3.0 / 2.0,
		VFov:          20.0,
		Aperture:      0.0,
		FocusDistance: 10.0,
		Time0:         0.0,
		Time1:         1.0,
	}

	s := &Scene{
		Name:         "random-spheres",
		Shapes:       make([]geometry.Shape, 0, 4+22*22),
		CameraConfig: cameraConfig,
		SamplingConfig: SamplingConfig{
			Width:           1200,
			Height:          800,
			SamplesPerPixel: 100,
			MaxDepth:        50,
		},
		Time0: 0.0,
		Time1: 1.0,
	}

	checker := material.NewCheckerTexture(core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9))
	s.Shapes = append(s.Shapes, geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewTexturedLambertian(checker)))

	keepClear := core.NewVec3(4, 0.2, 0)
	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := random.Float64()
			center := core.NewVec3(float64(a)+0.9*random.Float64(), 0.2, float64(b)+0.9*random.Float64())

			if center.Subtract(keepClear).Length() <= 0.9 {
				continue
			}

			switch {
			case chooseMat < 0.8:
				albedo := randomColor(random).MultiplyVec(randomColor(random))
				center1 := center.Add(core.NewVec3(0, random.Float64()/4, 0))
				s.Shapes = append(s.Shapes, geometry.NewMovingSphere(center, center1, 0.0, 1.0, 0.2, material.NewLambertian(albedo)))
			case chooseMat < 0.95:
				albedo := randomColor(random).Multiply(0.5).Add(core.NewVec3(0.5, 0.5, 0.5))
				fuzz := random.Float64() * 0.5
				s.Shapes = append(s.Shapes, geometry.NewSphere(center, 0.2, material.NewMetal(albedo, fuzz)))
			default:
				s.Shapes = append(s.Shapes, geometry.NewSphere(center, 0.2, material.NewDielectric(1.5)))
			}
		}
	}

	s.Shapes = append(s.Shapes,
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)),
	)

	return s
}
