package material

import (
	"math"

	"github.com/df07/go-block-pathtracer/pkg/core"
)

// CheckerTexture is a solid 3D checker pattern alternating between two sources
type CheckerTexture struct {
	Even  ColorSource
	Odd   ColorSource
	Scale float64 // Checks per world unit along each axis, times pi
}

// NewCheckerTexture creates a checker of two solid colors with the default frequency of 10
func NewCheckerTexture(even, odd core.Vec3) *CheckerTexture {
	return &CheckerTexture{
		Even:  NewSolidColor(even),
		Odd:   NewSolidColor(odd),
		Scale: 10.0,
	}
}

// Evaluate picks Odd where the product of sines is negative, Even elsewhere
func (c *CheckerTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	sines := math.Sin(c.Scale*point.X) * math.Sin(c.Scale*point.Y) * math.Sin(c.Scale*point.Z)
	if sines < 0 {
		return c.Odd.Evaluate(uv, point)
	}
	return c.Even.Evaluate(uv, point)
}
