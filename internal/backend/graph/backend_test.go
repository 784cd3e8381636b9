package graph

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/lattice-ml/lattice/internal/backend/eager"
	"github.com/lattice-ml/lattice/internal/tensor"
)

func newFloat32(t *testing.T, data []float32, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(shape, tensor.Float32, tensor.CPU)
	if err != nil {
		t.Fatalf("Failed to create tensor: %v", err)
	}
	copy(raw.AsFloat32(), data)
	return raw
}

func newFloat64(t *testing.T, data []float64, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(shape, tensor.Float64, tensor.CPU)
	if err != nil {
		t.Fatalf("Failed to create tensor: %v", err)
	}
	copy(raw.AsFloat64(), data)
	return raw
}

func TestName(t *testing.T) {
	g := New(eager.New())
	if got := g.Name(); got != "Graph(Eager)" {
		t.Errorf("Name() = %q, want %q", got, "Graph(Eager)")
	}
}

func TestOpsAreDeferred(t *testing.T) {
	g := New(eager.New())

	a := newFloat32(t, []float32{1, 2}, tensor.Shape{2})
	b := newFloat32(t, []float32{3, 4}, tensor.Shape{2})

	sum := g.Add(a, b)

	// Before Materialize the placeholder holds only zeroed memory.
	got := sum.AsFloat32()
	if got[0] != 0 || got[1] != 0 {
		t.Errorf("placeholder = %v before Materialize, want zeros", got)
	}

	g.Materialize(sum)
	got = sum.AsFloat32()
	if got[0] != 4 || got[1] != 6 {
		t.Errorf("Materialize(Add) = %v, want [4 6]", got)
	}
}

func TestMaterializeLeafIsIdentity(t *testing.T) {
	g := New(eager.New())

	leaf := newFloat32(t, []float32{7}, tensor.Shape{1})
	if got := g.Materialize(leaf); got != leaf {
		t.Error("Materialize on a leaf did not return the tensor unchanged")
	}
}

func TestMaterializeMemoizes(t *testing.T) {
	g := New(eager.New())

	a := newFloat64(t, []float64{2}, tensor.Shape{1})
	y := g.MulScalar(a, 3)

	g.Materialize(y)
	if got := y.AsFloat64()[0]; got != 6 {
		t.Fatalf("first Materialize = %v, want 6", got)
	}

	// A second Materialize must not re-run the node: mutating the leaf
	// afterwards leaves the memoized result untouched.
	a.AsFloat64()[0] = 100
	g.Materialize(y)
	if got := y.AsFloat64()[0]; got != 6 {
		t.Errorf("re-Materialize = %v, want memoized 6", got)
	}
}

func TestMaterializeEvaluatesSubgraph(t *testing.T) {
	g := New(eager.New())

	gt := newFloat64(t, []float64{2, 4}, tensor.Shape{2})
	anchor := newFloat64(t, []float64{1, 2}, tensor.Shape{2})

	// log(gt / anchor), three chained nodes.
	ratio := g.Div(gt, anchor)
	y := g.Log(ratio)
	g.Materialize(y)

	got := y.AsFloat64()
	want := math.Log(2)
	if math.Abs(got[0]-want) > 1e-12 || math.Abs(got[1]-want) > 1e-12 {
		t.Errorf("Log(Div) = %v, want [ln2 ln2]", got)
	}

	// Intermediate placeholders are filled as a side effect.
	if r := ratio.AsFloat64(); r[0] != 2 || r[1] != 2 {
		t.Errorf("intermediate = %v, want [2 2]", r)
	}
}

func TestUnstackMaterializesAllSlices(t *testing.T) {
	g := New(eager.New())

	x := newFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	parts := g.Unstack(x, -1)
	if len(parts) != 3 {
		t.Fatalf("Unstack returned %d parts, want 3", len(parts))
	}

	// One node produces all three outputs: materializing the first slice
	// fills the others too.
	g.Materialize(parts[0])

	wants := [][]float32{{1, 4}, {2, 5}, {3, 6}}
	for j, part := range parts {
		got := part.AsFloat32()
		for i, want := range wants[j] {
			if got[i] != want {
				t.Errorf("Unstack[%d][%d] = %v, want %v", j, i, got[i], want)
			}
		}
	}
}

func TestShapeErrorsSurfaceAtRecordTime(t *testing.T) {
	g := New(eager.New())

	a := newFloat32(t, []float32{1, 2, 3}, tensor.Shape{3})
	b := newFloat32(t, []float32{1, 2, 3, 4}, tensor.Shape{4})

	defer func() {
		if recover() == nil {
			t.Error("Add with incompatible shapes did not panic at record time")
		}
	}()
	g.Add(a, b)
}

func TestInputsSurviveMaterialize(t *testing.T) {
	g := New(eager.New())

	a := newFloat32(t, []float32{1, 2}, tensor.Shape{2})
	b := newFloat32(t, []float32{3, 4}, tensor.Shape{2})

	g.Materialize(g.Add(a, b))

	// The inner backend's inplace fast path must not have reused a's buffer.
	if got := a.AsFloat32(); got[0] != 1 || got[1] != 2 {
		t.Errorf("input a = %v after Materialize, want [1 2]", got)
	}
}

func TestParityWithEager(t *testing.T) {
	inner := eager.New()
	g := New(eager.New())

	run := func(b tensor.Backend, ctr, off *tensor.RawTensor) []float32 {
		// Composite expression touching most of the op surface:
		// norm(stack(...)) feeding a division, then sqrt of a scalar shift.
		d := b.Norm(b.Stack([]*tensor.RawTensor{off, off}, -1), -1, false)
		y := b.Sqrt(b.AddScalar(b.Div(b.Sub(ctr, off), d), 2.0))
		return b.Materialize(y).AsFloat32()
	}

	data := []float32{0.5, -1.25, 3, 0.75}
	shape := tensor.Shape{2, 2}

	eagerGot := run(inner, newFloat32(t, data, shape), newFloat32(t, []float32{1, 2, 0.5, 4}, shape))
	graphGot := run(g, newFloat32(t, data, shape), newFloat32(t, []float32{1, 2, 0.5, 4}, shape))

	if diff := cmp.Diff(eagerGot, graphGot, cmpopts.EquateApprox(0, 1e-5)); diff != "" {
		t.Errorf("eager/graph mismatch (-eager +graph):\n%s", diff)
	}
}
