package tensor_test

import (
	"testing"

	"github.com/lattice-ml/lattice/internal/backend/eager"
	"github.com/lattice-ml/lattice/internal/tensor"
)

func TestFromSlice(t *testing.T) {
	backend := eager.New()

	x, err := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, backend)
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}

	if !x.Shape().Equal(tensor.Shape{2, 3}) {
		t.Errorf("Shape() = %v, want [2 3]", x.Shape())
	}
	if x.DType() != tensor.Float32 {
		t.Errorf("DType() = %v, want Float32", x.DType())
	}
	if got := x.At(1, 2); got != 6 {
		t.Errorf("At(1, 2) = %v, want 6", got)
	}
}

func TestFromSliceShapeMismatch(t *testing.T) {
	backend := eager.New()

	_, err := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{2, 3}, backend)
	if err == nil {
		t.Fatal("FromSlice with mismatched shape: error = nil, want error")
	}
}

func TestAtSet(t *testing.T) {
	backend := eager.New()

	x := tensor.Zeros[float64](tensor.Shape{2, 2}, backend)
	x.Set(3.5, 0, 1)

	if got := x.At(0, 1); got != 3.5 {
		t.Errorf("At(0, 1) = %v, want 3.5", got)
	}
	if got := x.At(1, 0); got != 0 {
		t.Errorf("At(1, 0) = %v, want 0", got)
	}
}

func TestFull(t *testing.T) {
	backend := eager.New()

	x := tensor.Full[float32](tensor.Shape{3}, 2.5, backend)
	for i, v := range x.Data() {
		if v != 2.5 {
			t.Errorf("Data()[%d] = %v, want 2.5", i, v)
		}
	}
}

func TestCloneSharesBuffer(t *testing.T) {
	backend := eager.New()

	x, err := tensor.FromSlice([]float32{1, 2}, tensor.Shape{2}, backend)
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}

	if !x.Raw().IsUnique() {
		t.Fatal("IsUnique() = false for fresh tensor, want true")
	}

	clone := x.Clone()
	if x.Raw().IsUnique() {
		t.Error("IsUnique() = true after Clone(), want false (refcount > 1)")
	}

	clone.Raw().Release()
	if !x.Raw().IsUnique() {
		t.Error("IsUnique() = false after clone release, want true")
	}
}

func TestTensorOps(t *testing.T) {
	backend := eager.New()

	a, _ := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2}, backend)
	b, _ := tensor.FromSlice([]float32{4, 3, 2, 1}, tensor.Shape{2, 2}, backend)

	// Keep a referenced so Add cannot take the inplace path.
	keep := a.Clone()
	defer keep.Raw().Release()

	sum := a.Add(b)
	want := []float32{5, 5, 5, 5}
	for i, v := range sum.Data() {
		if v != want[i] {
			t.Errorf("Add()[%d] = %v, want %v", i, v, want[i])
		}
	}

	diff := a.Sub(b)
	wantDiff := []float32{-3, -1, 1, 3}
	for i, v := range diff.Data() {
		if v != wantDiff[i] {
			t.Errorf("Sub()[%d] = %v, want %v", i, v, wantDiff[i])
		}
	}
}
