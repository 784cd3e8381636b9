package eager

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/lattice-ml/lattice/internal/tensor"
)

// Scalar operations - element-wise operations with a scalar value.
// The scalar may be any Go numeric type; it is converted to the tensor's dtype.

// AddScalar adds a scalar value to each element of the tensor.
func (e *EagerBackend) AddScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	s := toFloat64("addScalar", scalar)
	result := e.newResult("addScalar", x)

	switch x.DType() {
	case tensor.Float32:
		src, dst := x.AsFloat32(), result.AsFloat32()
		s32 := float32(s)
		for i := range dst {
			dst[i] = src[i] + s32
		}
	case tensor.Float64:
		dst := result.AsFloat64()
		copy(dst, x.AsFloat64())
		floats.AddConst(s, dst)
	default:
		panic(fmt.Sprintf("addScalar: unsupported dtype %s", x.DType()))
	}

	return result
}

// SubScalar subtracts a scalar value from each element of the tensor.
func (e *EagerBackend) SubScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	s := toFloat64("subScalar", scalar)
	result := e.newResult("subScalar", x)

	switch x.DType() {
	case tensor.Float32:
		src, dst := x.AsFloat32(), result.AsFloat32()
		s32 := float32(s)
		for i := range dst {
			dst[i] = src[i] - s32
		}
	case tensor.Float64:
		dst := result.AsFloat64()
		copy(dst, x.AsFloat64())
		floats.AddConst(-s, dst)
	default:
		panic(fmt.Sprintf("subScalar: unsupported dtype %s", x.DType()))
	}

	return result
}

// MulScalar multiplies each element of the tensor by a scalar value.
func (e *EagerBackend) MulScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	s := toFloat64("mulScalar", scalar)
	result := e.newResult("mulScalar", x)

	switch x.DType() {
	case tensor.Float32:
		src, dst := x.AsFloat32(), result.AsFloat32()
		s32 := float32(s)
		for i := range dst {
			dst[i] = src[i] * s32
		}
	case tensor.Float64:
		floats.ScaleTo(result.AsFloat64(), s, x.AsFloat64())
	default:
		panic(fmt.Sprintf("mulScalar: unsupported dtype %s", x.DType()))
	}

	return result
}

// DivScalar divides each element of the tensor by a scalar value.
func (e *EagerBackend) DivScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	s := toFloat64("divScalar", scalar)
	result := e.newResult("divScalar", x)

	switch x.DType() {
	case tensor.Float32:
		src, dst := x.AsFloat32(), result.AsFloat32()
		s32 := float32(s)
		for i := range dst {
			dst[i] = src[i] / s32
		}
	case tensor.Float64:
		src, dst := x.AsFloat64(), result.AsFloat64()
		for i := range dst {
			dst[i] = src[i] / s
		}
	default:
		panic(fmt.Sprintf("divScalar: unsupported dtype %s", x.DType()))
	}

	return result
}

// ModScalar computes the floored modulo of each element by a scalar value.
// The result takes the sign of the divisor, matching np.mod and
// tf.math.floormod rather than Go's truncated math.Mod.
func (e *EagerBackend) ModScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	s := toFloat64("modScalar", scalar)
	result := e.newResult("modScalar", x)

	switch x.DType() {
	case tensor.Float32:
		src, dst := x.AsFloat32(), result.AsFloat32()
		s32 := float32(s)
		for i := range dst {
			dst[i] = flooredMod32(src[i], s32)
		}
	case tensor.Float64:
		src, dst := x.AsFloat64(), result.AsFloat64()
		for i := range dst {
			dst[i] = flooredMod64(src[i], s)
		}
	default:
		panic(fmt.Sprintf("modScalar: unsupported dtype %s", x.DType()))
	}

	return result
}

func flooredMod64(v, m float64) float64 {
	r := math.Mod(v, m)
	if r != 0 && (r < 0) != (m < 0) {
		r += m
		if r == m {
			// Rounding can land exactly on the divisor for tiny
			// negative remainders; keep the result in [0, m).
			r = 0
		}
	}
	return r
}

func flooredMod32(v, m float32) float32 {
	return float32(flooredMod64(float64(v), float64(m)))
}

// newResult allocates an uninitialized result tensor with x's shape and dtype.
func (e *EagerBackend) newResult(op string, x *tensor.RawTensor) *tensor.RawTensor {
	result, err := tensor.NewRaw(x.Shape(), x.DType(), e.device)
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", op, err))
	}
	return result
}

// toFloat64 converts a scalar argument to float64.
func toFloat64(op string, scalar any) float64 {
	switch v := scalar.(type) {
	case float32:
		return float64(v)
	case float64:
		return v
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	default:
		panic(fmt.Sprintf("%s: unsupported scalar type %T", op, scalar))
	}
}
