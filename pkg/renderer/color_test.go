package renderer

import (
	"image/color"
	"math"
	"testing"

	"github.com/df07/go-block-pathtracer/pkg/core"
)

func TestQuantize(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected uint8
	}{
		{"black", 0, 0},
		{"quarter is half after gamma", 0.25, 128},
		{"white clamps below 256", 1.0, 255},
		{"overbright clamps", 9.0, 255},
		{"negative is black", -0.5, 0},
		{"NaN is black", math.NaN(), 0},
		{"positive infinity is black", math.Inf(1), 0},
		{"negative infinity is black", math.Inf(-1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := quantize(tt.input); got != tt.expected {
				t.Errorf("Expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestVec3ToColor(t *testing.T) {
	got := vec3ToColor(core.NewVec3(0, 0.25, 1))
	expected := color.RGBA{R: 0, G: 128, B: 255, A: 255}
	if got != expected {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestPixelStats(t *testing.T) {
	var ps PixelStats
	if ps.GetColor() != (core.Vec3{}) {
		t.Errorf("Empty pixel should be black, got %v", ps.GetColor())
	}

	ps.AddSample(core.NewVec3(1, 0, 0))
	ps.AddSample(core.NewVec3(0, 1, 0))
	ps.AddSample(core.NewVec3(0, 0, 1))
	ps.AddSample(core.NewVec3(1, 1, 1))

	if ps.SampleCount != 4 {
		t.Errorf("Expected 4 samples, got %d", ps.SampleCount)
	}
	if expected := core.NewVec3(0.5, 0.5, 0.5); ps.GetColor() != expected {
		t.Errorf("Expected average %v, got %v", expected, ps.GetColor())
	}
}
