package eager

import (
	"fmt"
	"math"

	"github.com/lattice-ml/lattice/internal/tensor"
)

// Log computes element-wise natural logarithm: ln(x).
// Zero and negative inputs degrade silently to -Inf and NaN; callers feeding
// degenerate box dimensions get NaN-poisoned outputs rather than a panic.
func (e *EagerBackend) Log(x *tensor.RawTensor) *tensor.RawTensor {
	result := e.newResult("log", x)

	switch x.DType() {
	case tensor.Float32:
		src, dst := x.AsFloat32(), result.AsFloat32()
		for i, v := range src {
			dst[i] = float32(math.Log(float64(v)))
		}
	case tensor.Float64:
		src, dst := x.AsFloat64(), result.AsFloat64()
		for i, v := range src {
			dst[i] = math.Log(v)
		}
	default:
		panic(fmt.Sprintf("log: unsupported dtype %s (only float32/float64 supported)", x.DType()))
	}

	return result
}

// Sqrt computes element-wise square root: sqrt(x).
// Negative inputs yield NaN.
func (e *EagerBackend) Sqrt(x *tensor.RawTensor) *tensor.RawTensor {
	result := e.newResult("sqrt", x)

	switch x.DType() {
	case tensor.Float32:
		src, dst := x.AsFloat32(), result.AsFloat32()
		for i, v := range src {
			dst[i] = float32(math.Sqrt(float64(v)))
		}
	case tensor.Float64:
		src, dst := x.AsFloat64(), result.AsFloat64()
		for i, v := range src {
			dst[i] = math.Sqrt(v)
		}
	default:
		panic(fmt.Sprintf("sqrt: unsupported dtype %s (only float32/float64 supported)", x.DType()))
	}

	return result
}

// Floor computes the element-wise floor: largest integer value <= x.
func (e *EagerBackend) Floor(x *tensor.RawTensor) *tensor.RawTensor {
	result := e.newResult("floor", x)

	switch x.DType() {
	case tensor.Float32:
		src, dst := x.AsFloat32(), result.AsFloat32()
		for i, v := range src {
			dst[i] = float32(math.Floor(float64(v)))
		}
	case tensor.Float64:
		src, dst := x.AsFloat64(), result.AsFloat64()
		for i, v := range src {
			dst[i] = math.Floor(v)
		}
	default:
		panic(fmt.Sprintf("floor: unsupported dtype %s (only float32/float64 supported)", x.DType()))
	}

	return result
}
