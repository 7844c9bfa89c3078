package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-block-pathtracer/pkg/core"
)

func TestMovingSphere_Center(t *testing.T) {
	sphere := NewMovingSphere(core.NewVec3(0, 0, 0), core.NewVec3(0, 2, 0), 0, 1, 0.5, nil)

	tests := []struct {
		time     float64
		expected core.Vec3
	}{
		{0, core.NewVec3(0, 0, 0)},
		{0.5, core.NewVec3(0, 1, 0)},
		{1, core.NewVec3(0, 2, 0)},
	}
	for _, tt := range tests {
		if c := sphere.Center(tt.time); c.Subtract(tt.expected).Length() > 1e-12 {
			t.Errorf("Center(%f) = %v, expected %v", tt.time, c, tt.expected)
		}
	}

	static := NewMovingSphere(core.NewVec3(1, 1, 1), core.NewVec3(5, 5, 5), 0.3, 0.3, 1, nil)
	if c := static.Center(0.9); !c.Equals(core.NewVec3(1, 1, 1)) {
		t.Errorf("Zero-length interval should pin the center at Center0, got %v", c)
	}
}

func TestMovingSphere_HitFollowsRayTime(t *testing.T) {
	sphere := NewMovingSphere(core.NewVec3(0, 0, 0), core.NewVec3(0, 2, 0), 0, 1, 0.5, nil)
	dir := core.NewVec3(0, 0, -1)

	// At time 0 the sphere is at the origin
	if _, isHit := sphere.Hit(core.NewRayAtTime(core.NewVec3(0, 2, 5), dir, 0), 0.001, 100); isHit {
		t.Error("Ray at y=2 should miss the sphere at time 0")
	}

	// At time 1 it has moved up to y=2
	hit, isHit := sphere.Hit(core.NewRayAtTime(core.NewVec3(0, 2, 5), dir, 1), 0.001, 100)
	if !isHit {
		t.Fatal("Ray at y=2 should hit the sphere at time 1")
	}
	if d := hit.Point.Subtract(core.NewVec3(0, 2, 0)).Length(); math.Abs(d-0.5) > 1e-9 {
		t.Errorf("Hit point should lie on the moved sphere, distance %f", d)
	}
}

func TestMovingSphere_BoundingBoxCoversPath(t *testing.T) {
	sphere := NewMovingSphere(core.NewVec3(0, 0, 0), core.NewVec3(0, 2, 0), 0, 1, 0.5, nil)
	box := sphere.BoundingBox(0, 1)

	for _, time := range []float64{0, 0.25, 0.5, 0.75, 1} {
		at := sphereBox(sphere.Center(time), sphere.Radius)
		if !box.Contains(at) {
			t.Errorf("Box %v does not contain sphere at time %f (%v)", box, time, at)
		}
	}
}
