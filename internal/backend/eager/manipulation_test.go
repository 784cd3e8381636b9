package eager

import (
	"testing"

	"github.com/lattice-ml/lattice/internal/tensor"
)

func TestStackLastDim(t *testing.T) {
	backend := New()

	a := newFloat32(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	b := newFloat32(t, []float32{5, 6, 7, 8}, tensor.Shape{2, 2})
	c := newFloat32(t, []float32{9, 10, 11, 12}, tensor.Shape{2, 2})

	result := backend.Stack([]*tensor.RawTensor{a, b, c}, -1)

	if !result.Shape().Equal(tensor.Shape{2, 2, 3}) {
		t.Fatalf("Stack shape = %v, want [2 2 3]", result.Shape())
	}

	// Element (i, j, k) is input k's element (i, j).
	want := []float32{1, 5, 9, 2, 6, 10, 3, 7, 11, 4, 8, 12}
	got := result.AsFloat32()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Stack()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestStackFirstDim(t *testing.T) {
	backend := New()

	a := newFloat32(t, []float32{1, 2}, tensor.Shape{2})
	b := newFloat32(t, []float32{3, 4}, tensor.Shape{2})

	result := backend.Stack([]*tensor.RawTensor{a, b}, 0)

	if !result.Shape().Equal(tensor.Shape{2, 2}) {
		t.Fatalf("Stack shape = %v, want [2 2]", result.Shape())
	}
	want := []float32{1, 2, 3, 4}
	got := result.AsFloat32()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Stack()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestStackShapeMismatchPanics(t *testing.T) {
	backend := New()

	a := newFloat32(t, []float32{1, 2}, tensor.Shape{2})
	b := newFloat32(t, []float32{1, 2, 3}, tensor.Shape{3})

	defer func() {
		if recover() == nil {
			t.Error("Stack with mismatched shapes did not panic")
		}
	}()
	backend.Stack([]*tensor.RawTensor{a, b}, 0)
}

func TestUnstackLastDim(t *testing.T) {
	backend := New()

	// [1, 2, 3] boxes: one batch, two boxes, (l, h, w) components.
	x := newFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{1, 2, 3})

	parts := backend.Unstack(x, -1)
	if len(parts) != 3 {
		t.Fatalf("Unstack returned %d parts, want 3", len(parts))
	}

	wants := [][]float32{{1, 4}, {2, 5}, {3, 6}}
	for j, part := range parts {
		if !part.Shape().Equal(tensor.Shape{1, 2}) {
			t.Fatalf("Unstack part %d shape = %v, want [1 2]", j, part.Shape())
		}
		got := part.AsFloat32()
		for i, want := range wants[j] {
			if got[i] != want {
				t.Errorf("Unstack[%d][%d] = %v, want %v", j, i, got[i], want)
			}
		}
	}
}

func TestStackUnstackRoundTrip(t *testing.T) {
	backend := New()

	x := newFloat64(t, []float64{1, 2, 3, 4, 5, 6, 7, 8}, tensor.Shape{2, 2, 2})

	for _, dim := range []int{0, 1, -1} {
		parts := backend.Unstack(x, dim)
		back := backend.Stack(parts, dim)

		if !back.Shape().Equal(x.Shape()) {
			t.Fatalf("round trip dim %d: shape = %v, want %v", dim, back.Shape(), x.Shape())
		}
		got, want := back.AsFloat64(), x.AsFloat64()
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("round trip dim %d: [%d] = %v, want %v", dim, i, got[i], want[i])
			}
		}
	}
}
