package eager

import (
	"math"
	"testing"

	"github.com/lattice-ml/lattice/internal/tensor"
)

func TestLog(t *testing.T) {
	backend := New()

	x := newFloat64(t, []float64{1, math.E, 10}, tensor.Shape{3})
	got := backend.Log(x).AsFloat64()
	want := []float64{0, 1, math.Log(10)}
	for i := range want {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("Log()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLogDomainDegradesSilently(t *testing.T) {
	backend := New()

	// Non-positive inputs must produce -Inf/NaN, not a panic: degenerate
	// anchor dimensions poison the output instead of halting training.
	x := newFloat32(t, []float32{0, -1}, tensor.Shape{2})
	got := backend.Log(x).AsFloat32()

	if !math.IsInf(float64(got[0]), -1) {
		t.Errorf("Log(0) = %v, want -Inf", got[0])
	}
	if !math.IsNaN(float64(got[1])) {
		t.Errorf("Log(-1) = %v, want NaN", got[1])
	}
}

func TestSqrt(t *testing.T) {
	backend := New()

	x := newFloat32(t, []float32{1, 4, 9, 2}, tensor.Shape{4})
	got := backend.Sqrt(x).AsFloat32()
	want := []float32{1, 2, 3, float32(math.Sqrt2)}
	for i := range want {
		if math.Abs(float64(got[i]-want[i])) > epsilon {
			t.Errorf("Sqrt()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSqrtNegativeIsNaN(t *testing.T) {
	backend := New()

	x := newFloat64(t, []float64{-1}, tensor.Shape{1})
	got := backend.Sqrt(x).AsFloat64()[0]
	if !math.IsNaN(got) {
		t.Errorf("Sqrt(-1) = %v, want NaN", got)
	}
}

func TestFloor(t *testing.T) {
	backend := New()

	tests := []struct {
		input float64
		want  float64
	}{
		{2.7, 2},
		{2.0, 2},
		{-0.5, -1},
		{0, 0},
	}

	for _, tt := range tests {
		x := newFloat64(t, []float64{tt.input}, tensor.Shape{1})
		got := backend.Floor(x).AsFloat64()[0]
		if got != tt.want {
			t.Errorf("Floor(%v) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
