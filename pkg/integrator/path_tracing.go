package integrator

import (
	"math"

	"github.com/df07/go-block-pathtracer/pkg/core"
	"github.com/df07/go-block-pathtracer/pkg/geometry"
)

// HitEpsilon is the minimum hit distance, which keeps bounced rays
// from re-intersecting the surface they left
const HitEpsilon = 0.01

var (
	groundColor = core.NewVec3(1.0, 1.0, 1.0)
	skyColor    = core.NewVec3(0.5, 0.7, 1.0)
)

// PathTracingIntegrator implements unidirectional path tracing with
// a fixed bounce limit and a sky gradient for escaped rays
type PathTracingIntegrator struct{}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator() *PathTracingIntegrator {
	return &PathTracingIntegrator{}
}

// RayColor computes the color for a single ray using recursive path tracing
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world geometry.Shape, sampler core.Sampler, depth int) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{}
	}

	hit, isHit := world.Hit(ray, HitEpsilon, math.Inf(1))
	if !isHit {
		return BackgroundGradient(ray)
	}

	colorEmitted := hit.Material.Emitted(*hit)

	scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
	if !didScatter {
		// Material absorbed the ray, only return emitted light
		return colorEmitted
	}

	incoming := pt.RayColor(scatter.Scattered, world, sampler, depth-1)
	return colorEmitted.Add(scatter.Attenuation.MultiplyVec(incoming))
}

// BackgroundGradient blends from white at the horizon below to sky blue
// straight up, keyed on the normalized direction's Y component
func BackgroundGradient(r core.Ray) core.Vec3 {
	unitDirection := r.Direction.Normalize()

	// Map y from [-1,1] to [0,1]
	t := 0.5 * (unitDirection.Y + 1.0)

	return groundColor.Multiply(1.0 - t).Add(skyColor.Multiply(t))
}
