package eager

import (
	"fmt"

	"github.com/lattice-ml/lattice/internal/tensor"
)

// Stack stacks tensors along a new dimension.
//
// All tensors must have the same shape and dtype.
// Supports negative dim indexing (-1 = new last dimension).
//
// Example:
//
//	a, b, c := [bs, n], [bs, n], [bs, n]
//	s := backend.Stack([]*RawTensor{a, b, c}, -1) // [bs, n, 3]
func (e *EagerBackend) Stack(tensors []*tensor.RawTensor, dim int) *tensor.RawTensor {
	if len(tensors) == 0 {
		panic("stack: at least one tensor required")
	}

	shape := tensors[0].Shape()
	ndim := len(shape)
	dtype := tensors[0].DType()

	// The new dimension may be inserted at any position in [0, ndim].
	if dim < 0 {
		dim = ndim + 1 + dim
	}
	if dim < 0 || dim > ndim {
		panic(fmt.Sprintf("stack: dimension %d out of range for %dD tensors (valid: [0, %d])", dim, ndim, ndim))
	}

	for i, t := range tensors {
		if !t.Shape().Equal(shape) {
			panic(fmt.Sprintf("stack: tensor %d has shape %v, expected %v", i, t.Shape(), shape))
		}
		if t.DType() != dtype {
			panic(fmt.Sprintf("stack: tensor %d has dtype %s, expected %s", i, t.DType(), dtype))
		}
	}

	k := len(tensors)
	outShape := make(tensor.Shape, 0, ndim+1)
	outShape = append(outShape, shape[:dim]...)
	outShape = append(outShape, k)
	outShape = append(outShape, shape[dim:]...)

	result, err := tensor.NewRaw(outShape, dtype, e.device)
	if err != nil {
		panic(fmt.Sprintf("stack: %v", err))
	}

	// Each input decomposes into outer contiguous runs of inner elements;
	// run o of input j lands at output run o*k+j. Runs are contiguous in
	// memory, so the copies are dtype-agnostic byte moves.
	inner := 1
	for d := dim; d < ndim; d++ {
		inner *= shape[d]
	}
	outer := shape.NumElements() / inner
	runBytes := inner * dtype.Size()

	dst := result.Data()
	for j, t := range tensors {
		src := t.Data()
		for o := 0; o < outer; o++ {
			off := (o*k + j) * runBytes
			copy(dst[off:off+runBytes], src[o*runBytes:(o+1)*runBytes])
		}
	}

	return result
}

// Unstack splits a tensor into slices along the specified dimension,
// removing that dimension. The inverse of Stack.
//
// Supports negative dim indexing (-1 = last dimension).
//
// Example:
//
//	x := [bs, n, 3]
//	parts := backend.Unstack(x, -1) // 3 tensors of shape [bs, n]
func (e *EagerBackend) Unstack(x *tensor.RawTensor, dim int) []*tensor.RawTensor {
	shape := x.Shape()
	ndim := len(shape)

	if dim < 0 {
		dim = ndim + dim
	}
	if dim < 0 || dim >= ndim {
		panic(fmt.Sprintf("unstack: dimension %d out of range for %dD tensor", dim, ndim))
	}

	k := shape[dim]
	outShape := make(tensor.Shape, 0, ndim-1)
	outShape = append(outShape, shape[:dim]...)
	outShape = append(outShape, shape[dim+1:]...)

	results := make([]*tensor.RawTensor, k)
	for j := range results {
		part, err := tensor.NewRaw(outShape, x.DType(), e.device)
		if err != nil {
			panic(fmt.Sprintf("unstack: %v", err))
		}
		results[j] = part
	}

	inner := 1
	for d := dim + 1; d < ndim; d++ {
		inner *= shape[d]
	}
	outer := shape.NumElements() / (k * inner)
	runBytes := inner * x.DType().Size()

	src := x.Data()
	for j, part := range results {
		dst := part.Data()
		for o := 0; o < outer; o++ {
			off := (o*k + j) * runBytes
			copy(dst[o*runBytes:(o+1)*runBytes], src[off:off+runBytes])
		}
	}

	return results
}
