package core

import (
	"math"
	"testing"
)

func TestVec3_NearZero(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vec3
		expected bool
	}{
		{"Zero vector", NewVec3(0, 0, 0), true},
		{"Tiny components", NewVec3(1e-9, -1e-9, 5e-10), true},
		{"One large component", NewVec3(1e-9, 0.1, 0), false},
		{"Unit vector", NewVec3(1, 0, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.vector.NearZero(); got != tt.expected {
				t.Errorf("NearZero(%v) = %v, expected %v", tt.vector, got, tt.expected)
			}
		})
	}
}

func TestVec3_NormalizeZeroVector(t *testing.T) {
	n := Vec3{}.Normalize()
	if !n.IsFinite() {
		t.Fatalf("Normalizing the zero vector produced non-finite %v", n)
	}
	if !n.Equals(Vec3{}) {
		t.Errorf("Expected zero vector, got %v", n)
	}
}

func TestVec3_NormalizeUnitLength(t *testing.T) {
	v := NewVec3(3, -4, 12).Normalize()
	if math.Abs(v.Length()-1.0) > 1e-12 {
		t.Errorf("Expected unit length, got %f", v.Length())
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRayAtTime(NewVec3(1, 2, 3), NewVec3(0, 0, -2), 0.25)
	p := ray.At(1.5)
	expected := NewVec3(1, 2, 0)
	if !p.Equals(expected) {
		t.Errorf("Expected %v, got %v", expected, p)
	}
	if ray.Time != 0.25 {
		t.Errorf("Expected time 0.25, got %f", ray.Time)
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 3); got != 3 {
		t.Errorf("Clamp(5, 0, 3) = %d", got)
	}
	if got := Clamp(-1.5, 0.0, 1.0); got != 0.0 {
		t.Errorf("Clamp(-1.5, 0, 1) = %f", got)
	}
	if got := NewVec3(-1, 0.5, 2).Clamp(0, 1); !got.Equals(NewVec3(0, 0.5, 1)) {
		t.Errorf("Vec3 clamp = %v", got)
	}
}
