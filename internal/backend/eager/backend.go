// Package eager implements the immediate-evaluation backend in pure Go.
package eager

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/lattice-ml/lattice/internal/tensor"
)

// EagerBackend implements tensor operations with immediate evaluation.
// Float64 kernels delegate to gonum where the memory layout allows it;
// float32 kernels are hand-rolled loops.
type EagerBackend struct {
	device tensor.Device
}

// New creates a new eager backend.
func New() *EagerBackend {
	return &EagerBackend{
		device: tensor.CPU,
	}
}

// Name returns the backend name.
func (e *EagerBackend) Name() string {
	return "Eager"
}

// Device returns the compute device.
func (e *EagerBackend) Device() tensor.Device {
	return e.device
}

// Materialize is a no-op for the eager backend: results are already computed.
func (e *EagerBackend) Materialize(x *tensor.RawTensor) *tensor.RawTensor {
	return x
}

// Add performs element-wise addition with NumPy-style broadcasting.
func (e *EagerBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return e.elementwise("add", a, b,
		func(x, y float32) float32 { return x + y },
		func(x, y float64) float64 { return x + y },
		floats.AddTo)
}

// Sub performs element-wise subtraction with broadcasting.
func (e *EagerBackend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return e.elementwise("sub", a, b,
		func(x, y float32) float32 { return x - y },
		func(x, y float64) float64 { return x - y },
		floats.SubTo)
}

// Mul performs element-wise multiplication with broadcasting.
func (e *EagerBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return e.elementwise("mul", a, b,
		func(x, y float32) float32 { return x * y },
		func(x, y float64) float64 { return x * y },
		floats.MulTo)
}

// Div performs element-wise division with broadcasting.
// Division by zero follows IEEE 754: the result is ±Inf or NaN, not an error.
func (e *EagerBackend) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	return e.elementwise("div", a, b,
		func(x, y float32) float32 { return x / y },
		func(x, y float64) float64 { return x / y },
		floats.DivTo)
}

// elementwise applies a binary operation with broadcasting.
// Same-shape float64 pairs use the vectorized gonum kernel; everything else
// falls back to scalar loops over broadcast-mapped indices.
func (e *EagerBackend) elementwise(
	op string,
	a, b *tensor.RawTensor,
	f32 func(x, y float32) float32,
	f64 func(x, y float64) float64,
	vec64 func(dst, s, t []float64) []float64,
) *tensor.RawTensor {
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("%s: dtype mismatch: %s vs %s", op, a.DType(), b.DType()))
	}

	outShape, needsBroadcast, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", op, err))
	}

	result, err := tensor.NewRaw(outShape, a.DType(), e.device)
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", op, err))
	}

	if !needsBroadcast && a.Shape().Equal(b.Shape()) {
		switch a.DType() {
		case tensor.Float32:
			va, vb, vr := a.AsFloat32(), b.AsFloat32(), result.AsFloat32()
			if a.IsUnique() {
				// Inplace fast path: a's buffer has a single owner.
				for i := range va {
					va[i] = f32(va[i], vb[i])
				}
				return a
			}
			for i := range vr {
				vr[i] = f32(va[i], vb[i])
			}
		case tensor.Float64:
			if a.IsUnique() {
				vec64(a.AsFloat64(), a.AsFloat64(), b.AsFloat64())
				return a
			}
			vec64(result.AsFloat64(), a.AsFloat64(), b.AsFloat64())
		default:
			panic(fmt.Sprintf("%s: unsupported dtype %s (only float32/float64 supported)", op, a.DType()))
		}
		return result
	}

	// Slow path: broadcasting required.
	outStrides := outShape.ComputeStrides()
	aShape, aStrides := a.Shape(), a.Shape().ComputeStrides()
	bShape, bStrides := b.Shape(), b.Shape().ComputeStrides()

	switch a.DType() {
	case tensor.Float32:
		va, vb, vr := a.AsFloat32(), b.AsFloat32(), result.AsFloat32()
		for i := range vr {
			vr[i] = f32(va[srcIndex(i, outShape, outStrides, aShape, aStrides)],
				vb[srcIndex(i, outShape, outStrides, bShape, bStrides)])
		}
	case tensor.Float64:
		va, vb, vr := a.AsFloat64(), b.AsFloat64(), result.AsFloat64()
		for i := range vr {
			vr[i] = f64(va[srcIndex(i, outShape, outStrides, aShape, aStrides)],
				vb[srcIndex(i, outShape, outStrides, bShape, bStrides)])
		}
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s (only float32/float64 supported)", op, a.DType()))
	}

	return result
}

// srcIndex maps a flat index in the broadcast output to a flat index in an input.
// Dimensions of size 1 in the input contribute nothing to the input offset.
func srcIndex(flat int, outShape tensor.Shape, outStrides []int, inShape tensor.Shape, inStrides []int) int {
	idx := 0
	pad := len(outShape) - len(inShape)
	rem := flat
	for d := 0; d < len(outShape); d++ {
		coord := rem / outStrides[d]
		rem %= outStrides[d]
		if d >= pad && inShape[d-pad] != 1 {
			idx += coord * inStrides[d-pad]
		}
	}
	return idx
}
