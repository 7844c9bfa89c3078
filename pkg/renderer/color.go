package renderer

import (
	"image/color"
	"math"

	"github.com/df07/go-block-pathtracer/pkg/core"
)

// vec3ToColor converts an averaged linear color to RGBA with gamma 2 correction
func vec3ToColor(colorVec core.Vec3) color.RGBA {
	return color.RGBA{
		R: quantize(colorVec.X),
		G: quantize(colorVec.Y),
		B: quantize(colorVec.Z),
		A: 255,
	}
}

// quantize maps one linear channel to 8 bits. NaN, infinite and negative
// values are treated as black.
func quantize(c float64) uint8 {
	if math.IsNaN(c) || math.IsInf(c, 0) || c < 0 {
		return 0
	}
	return uint8(256 * core.Clamp(math.Sqrt(c), 0, 0.999))
}
