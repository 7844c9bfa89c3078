package scene

import (
	"math/rand"

	"github.com/df07/go-block-pathtracer/pkg/core"
	"github.com/df07/go-block-pathtracer/pkg/geometry"
	"github.com/df07/go-block-pathtracer/pkg/material"
	"github.com/df07/go-block-pathtracer/pkg/renderer"
)

// NewTwoSpheresScene creates a ground sphere and a unit sphere at the origin
func NewTwoSpheresScene(random *rand.Rand) *Scene {
	return &Scene{
		Name: "two-spheres",
		Shapes: []geometry.Shape{
			geometry.NewSphere(core.NewVec3(0, -1001, 0), 1000, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))),
			geometry.NewSphere(core.NewVec3(0, 0, 0), 1.0, material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3))),
		},
		CameraConfig: renderer.CameraConfig{
			Center:      core.NewVec3(0, 0.5, 6),
			LookAt:      core.NewVec3(0, 0, 0),
			Up:          core.NewVec3(0, 1, 0),
			AspectRatio: 16.0 / 9.0,
			VFov:        40.0,
		},
		SamplingConfig: SamplingConfig{
			Width:           400,
			Height:          225,
			SamplesPerPixel: 50,
			MaxDepth:        20,
		},
	}
}

// NewGlassMetalScene places one sphere of each material side by side,
// with a glowing sphere overhead and a hollow glass bubble in front
func NewGlassMetalScene(random *rand.Rand) *Scene {
	ground := material.NewTexturedLambertian(
		material.NewCheckerTexture(core.NewVec3(0.2, 0.2, 0.2), core.NewVec3(0.8, 0.8, 0.8)))
	glass := material.NewDielectric(1.5)

	return &Scene{
		Name: "glass-metal",
		Shapes: []geometry.Shape{
			geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, ground),
			geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))),
			geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, glass),
			geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)),
			geometry.NewSphere(core.NewVec3(0, 2, -1), 0.5, material.NewDiffuseLight(core.NewVec3(4, 4, 4))),
			geometry.NewSphere(core.NewVec3(0.5, -0.25, -0.25), 0.25, glass),
			geometry.NewSphere(core.NewVec3(0.5, -0.25, -0.25), 0.2, material.NewMetal(core.NewVec3(0.9, 0.9, 0.9), 0.0)),
		},
		CameraConfig: renderer.CameraConfig{
			Center:        core.NewVec3(-2, 2, 1),
			LookAt:        core.NewVec3(0, 0, -1),
			Up:            core.NewVec3(0, 1, 0),
			AspectRatio:   16.0 / 9.0,
			VFov:          30.0,
			Aperture:      0.1,
			FocusDistance: 0.0,
		},
		SamplingConfig: SamplingConfig{
			Width:           400,
			Height:          225,
			SamplesPerPixel: 100,
			MaxDepth:        50,
		},
	}
}
