package eager

import (
	"fmt"

	"github.com/lattice-ml/lattice/internal/tensor"
)

// ZerosLike returns a zero-filled tensor with x's shape and dtype.
func (e *EagerBackend) ZerosLike(x *tensor.RawTensor) *tensor.RawTensor {
	return e.newResult("zerosLike", x)
}

// Cast converts the tensor to a different data type.
// Float-to-integer conversion truncates toward zero.
func (e *EagerBackend) Cast(x *tensor.RawTensor, dtype tensor.DataType) *tensor.RawTensor {
	result, err := tensor.NewRaw(x.Shape(), dtype, e.device)
	if err != nil {
		panic(fmt.Sprintf("cast: %v", err))
	}

	if x.DType() == dtype {
		copy(result.Data(), x.Data())
		return result
	}

	n := x.NumElements()
	for i := 0; i < n; i++ {
		storeElem(result, i, loadElem(x, i))
	}

	return result
}

// loadElem reads element i as float64, the widest supported type.
func loadElem(x *tensor.RawTensor, i int) float64 {
	switch x.DType() {
	case tensor.Float32:
		return float64(x.AsFloat32()[i])
	case tensor.Float64:
		return x.AsFloat64()[i]
	case tensor.Int32:
		return float64(x.AsInt32()[i])
	case tensor.Int64:
		return float64(x.AsInt64()[i])
	default:
		panic(fmt.Sprintf("cast: unsupported source dtype %s", x.DType()))
	}
}

// storeElem writes element i, converting from float64 to the target dtype.
func storeElem(x *tensor.RawTensor, i int, v float64) {
	switch x.DType() {
	case tensor.Float32:
		x.AsFloat32()[i] = float32(v)
	case tensor.Float64:
		x.AsFloat64()[i] = v
	case tensor.Int32:
		x.AsInt32()[i] = int32(v)
	case tensor.Int64:
		x.AsInt64()[i] = int64(v)
	default:
		panic(fmt.Sprintf("cast: unsupported target dtype %s", x.DType()))
	}
}
