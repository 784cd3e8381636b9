package eager

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/lattice-ml/lattice/internal/tensor"
)

// Norm computes the Euclidean norm along the specified dimension.
//
// Supports negative dim indexing (-1 = last dimension).
//
// Example:
//
//	x := [bs, n, 2]
//	d := backend.Norm(x, -1, false) // [bs, n]
func (e *EagerBackend) Norm(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	shape := x.Shape()
	ndim := len(shape)

	if dim < 0 {
		dim = ndim + dim
	}
	if dim < 0 || dim >= ndim {
		panic(fmt.Sprintf("norm: dimension %d out of range for %dD tensor", dim, ndim))
	}

	outShape := reduceShape(shape, dim, keepDim)
	result, err := tensor.NewRaw(outShape, x.DType(), e.device)
	if err != nil {
		panic(fmt.Sprintf("norm: %v", err))
	}

	n := shape[dim]
	inner := 1
	for d := dim + 1; d < ndim; d++ {
		inner *= shape[d]
	}
	outer := shape.NumElements() / (n * inner)

	switch x.DType() {
	case tensor.Float32:
		src, dst := x.AsFloat32(), result.AsFloat32()
		for o := 0; o < outer; o++ {
			for i := 0; i < inner; i++ {
				sum := 0.0
				for k := 0; k < n; k++ {
					v := float64(src[(o*n+k)*inner+i])
					sum += v * v
				}
				dst[o*inner+i] = float32(math.Sqrt(sum))
			}
		}
	case tensor.Float64:
		src, dst := x.AsFloat64(), result.AsFloat64()
		if inner == 1 {
			// Contiguous rows: use the vectorized 2-norm.
			for o := 0; o < outer; o++ {
				dst[o] = floats.Norm(src[o*n:(o+1)*n], 2)
			}
		} else {
			for o := 0; o < outer; o++ {
				for i := 0; i < inner; i++ {
					sum := 0.0
					for k := 0; k < n; k++ {
						v := src[(o*n+k)*inner+i]
						sum += v * v
					}
					dst[o*inner+i] = math.Sqrt(sum)
				}
			}
		}
	default:
		panic(fmt.Sprintf("norm: unsupported dtype %s (only float32/float64 supported)", x.DType()))
	}

	return result
}

// reduceShape returns the output shape after reducing dim.
// dim must already be normalized to [0, ndim).
func reduceShape(shape tensor.Shape, dim int, keepDim bool) tensor.Shape {
	if keepDim {
		out := shape.Clone()
		out[dim] = 1
		return out
	}
	out := make(tensor.Shape, 0, len(shape)-1)
	for d, size := range shape {
		if d != dim {
			out = append(out, size)
		}
	}
	return out
}
