package material

import (
	"github.com/df07/go-block-pathtracer/pkg/core"
)

// DiffuseLight is a light-emitting material that never scatters
type DiffuseLight struct {
	Emission ColorSource // Emitted radiance
}

// NewDiffuseLight creates a new emissive material with a uniform color
func NewDiffuseLight(emission core.Vec3) *DiffuseLight {
	return &DiffuseLight{Emission: NewSolidColor(emission)}
}

// Scatter always absorbs
func (e *DiffuseLight) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	return ScatterResult{}, false
}

// Emitted returns the emission color at the hit point
func (e *DiffuseLight) Emitted(hit HitRecord) core.Vec3 {
	return e.Emission.Evaluate(hit.UV, hit.Point)
}
