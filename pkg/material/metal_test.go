package material

import (
	"testing"

	"github.com/df07/go-block-pathtracer/pkg/core"
)

func TestNewMetal_FuzznessClamp(t *testing.T) {
	tests := []struct {
		name             string
		inputFuzzness    float64
		expectedFuzzness float64
	}{
		{"Valid fuzzness 0.0", 0.0, 0.0},
		{"Valid fuzzness 0.5", 0.5, 0.5},
		{"Valid fuzzness 1.0", 1.0, 1.0},
		{"Clamp above 1.0", 1.5, 1.0},
		{"Clamp below 0.0", -0.5, 0.0},
	}

	albedo := core.NewVec3(0.8, 0.8, 0.8)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metal := NewMetal(albedo, tt.inputFuzzness)
			if metal.Fuzzness != tt.expectedFuzzness {
				t.Errorf("Expected fuzzness %f, got %f", tt.expectedFuzzness, metal.Fuzzness)
			}
		})
	}
}

func TestMetal_PerpendicularMirror(t *testing.T) {
	albedo := core.NewVec3(0.7, 0.6, 0.5)
	metal := NewMetal(albedo, 0.0)

	rayIn := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))
	hit := HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 0, 1),
		FrontFace: true,
	}

	scatter, didScatter := metal.Scatter(rayIn, hit, newTestSampler(42))
	if !didScatter {
		t.Fatal("Metal should scatter")
	}

	expected := core.NewVec3(0, 0, 1)
	if !scatter.Scattered.Direction.Equals(expected) {
		t.Errorf("Expected exact mirror direction %v, got %v", expected, scatter.Scattered.Direction)
	}
	if !scatter.Attenuation.Equals(albedo) {
		t.Errorf("Attenuation should equal albedo: expected %v, got %v", albedo, scatter.Attenuation)
	}
}

func TestMetal_ObliqueMirror(t *testing.T) {
	metal := NewMetal(core.NewVec3(0.9, 0.9, 0.9), 0.0)

	rayIn := core.NewRay(core.NewVec3(0, 1, 1), core.NewVec3(0, -1, -1).Normalize())
	hit := HitRecord{Normal: core.NewVec3(0, 0, 1), FrontFace: true}

	scatter, didScatter := metal.Scatter(rayIn, hit, newTestSampler(42))
	if !didScatter {
		t.Fatal("Metal should scatter")
	}

	expected := core.NewVec3(0, -1, 1).Normalize()
	if scatter.Scattered.Direction.Subtract(expected).Length() > 1e-10 {
		t.Errorf("Expected %v, got %v", expected, scatter.Scattered.Direction)
	}
}

func TestMetal_FuzzyGrazingAbsorption(t *testing.T) {
	metal := NewMetal(core.NewVec3(0.8, 0.8, 0.8), 1.0)
	normal := core.NewVec3(0, 1, 0)
	rayIn := core.NewRay(core.NewVec3(-1, 0.001, 0), core.NewVec3(1, -0.001, 0))
	hit := HitRecord{Normal: normal, FrontFace: true}
	sampler := newTestSampler(9)

	absorbed, scattered := 0, 0
	for i := 0; i < 1000; i++ {
		result, ok := metal.Scatter(rayIn, hit, sampler)
		if !ok {
			absorbed++
			continue
		}
		scattered++
		if result.Scattered.Direction.Dot(normal) <= 0 {
			t.Fatalf("Scattered ray %v points into the surface", result.Scattered.Direction)
		}
	}

	if absorbed == 0 || scattered == 0 {
		t.Errorf("Expected a mix of absorbed and scattered rays at grazing incidence, got %d absorbed / %d scattered", absorbed, scattered)
	}
}
