package geometry

import (
	"github.com/df07/go-block-pathtracer/pkg/core"
	"github.com/df07/go-block-pathtracer/pkg/material"
)

// HittableList tests every shape in order. It is the unaccelerated
// reference for the BVH and is fine for scenes of a handful of shapes.
type HittableList struct {
	Shapes []Shape
}

// NewHittableList creates a list over the given shapes
func NewHittableList(shapes ...Shape) *HittableList {
	return &HittableList{Shapes: shapes}
}

// Hit returns the closest hit over all shapes
func (l *HittableList) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	hitAnything := false
	closestSoFar := tMax

	for _, shape := range l.Shapes {
		if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit {
			hitAnything = true
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, hitAnything
}

// BoundingBox returns the union of all shape boxes; empty lists return the zero box
func (l *HittableList) BoundingBox(time0, time1 float64) core.AABB {
	if len(l.Shapes) == 0 {
		return core.AABB{}
	}
	box := l.Shapes[0].BoundingBox(time0, time1)
	for _, shape := range l.Shapes[1:] {
		box = box.Union(shape.BoundingBox(time0, time1))
	}
	return box
}
