package geometry

import (
	"github.com/df07/go-block-pathtracer/pkg/core"
	"github.com/df07/go-block-pathtracer/pkg/material"
)

// Shape interface for objects that can be hit by rays
type Shape interface {
	// Hit returns the nearest intersection with t in [tMin, tMax]
	Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool)

	// BoundingBox returns a box enclosing the shape at every instant in [time0, time1]
	BoundingBox(time0, time1 float64) core.AABB
}
