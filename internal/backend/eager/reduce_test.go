package eager

import (
	"math"
	"testing"

	"github.com/lattice-ml/lattice/internal/tensor"
)

func TestNormLastDim(t *testing.T) {
	backend := New()

	x := newFloat32(t, []float32{3, 4, 1, 1}, tensor.Shape{2, 2})
	result := backend.Norm(x, -1, false)

	if !result.Shape().Equal(tensor.Shape{2}) {
		t.Fatalf("Norm shape = %v, want [2]", result.Shape())
	}
	got := result.AsFloat32()
	want := []float32{5, float32(math.Sqrt2)}
	for i := range want {
		if math.Abs(float64(got[i]-want[i])) > epsilon {
			t.Errorf("Norm()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestNormKeepDim(t *testing.T) {
	backend := New()

	x := newFloat64(t, []float64{3, 4}, tensor.Shape{1, 2})
	result := backend.Norm(x, -1, true)

	if !result.Shape().Equal(tensor.Shape{1, 1}) {
		t.Fatalf("Norm keepDim shape = %v, want [1 1]", result.Shape())
	}
	if got := result.AsFloat64()[0]; math.Abs(got-5) > epsilon {
		t.Errorf("Norm() = %v, want 5", got)
	}
}

func TestNormMiddleDim(t *testing.T) {
	backend := New()

	// Shape [2, 2, 2]: reduce the middle dimension.
	x := newFloat64(t, []float64{1, 2, 3, 4, 5, 6, 7, 8}, tensor.Shape{2, 2, 2})
	result := backend.Norm(x, 1, false)

	if !result.Shape().Equal(tensor.Shape{2, 2}) {
		t.Fatalf("Norm shape = %v, want [2 2]", result.Shape())
	}
	got := result.AsFloat64()
	want := []float64{
		math.Sqrt(1*1 + 3*3), math.Sqrt(2*2 + 4*4),
		math.Sqrt(5*5 + 7*7), math.Sqrt(6*6 + 8*8),
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("Norm()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestNormPlanarDiagonal(t *testing.T) {
	backend := New()

	// The log-anchor encoder's use: norm of stacked (length, width).
	l := newFloat32(t, []float32{1, 3}, tensor.Shape{1, 2})
	w := newFloat32(t, []float32{3, 4}, tensor.Shape{1, 2})

	d := backend.Norm(backend.Stack([]*tensor.RawTensor{l, w}, -1), -1, false)

	if !d.Shape().Equal(tensor.Shape{1, 2}) {
		t.Fatalf("diagonal shape = %v, want [1 2]", d.Shape())
	}
	got := d.AsFloat32()
	want := []float32{float32(math.Sqrt(10)), 5}
	for i := range want {
		if math.Abs(float64(got[i]-want[i])) > epsilon {
			t.Errorf("diagonal[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestNormInvalidDimPanics(t *testing.T) {
	backend := New()

	x := newFloat32(t, []float32{1, 2}, tensor.Shape{2})

	defer func() {
		if recover() == nil {
			t.Error("Norm with out-of-range dim did not panic")
		}
	}()
	backend.Norm(x, 3, false)
}
