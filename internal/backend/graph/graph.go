// Package graph implements a deferred computation-graph backend using the
// decorator pattern.
//
// GraphBackend wraps any Backend implementation and defers every operation:
// op methods allocate placeholder results with inferred shapes, record a node
// in the graph, and return immediately. Materialize evaluates the subgraph
// producing a tensor via the wrapped backend and fills the placeholders.
//
// Usage:
//
//	inner := eager.New()
//	g := graph.New(inner)
//
//	y := g.Log(g.Div(gt, anchor)) // nothing computed yet
//	g.Materialize(y)              // executes the recorded subgraph
package graph

import (
	"fmt"

	"github.com/lattice-ml/lattice/internal/tensor"
)

// opKind identifies the backend operation a node defers.
type opKind int

const (
	opAdd opKind = iota
	opSub
	opMul
	opDiv
	opAddScalar
	opSubScalar
	opMulScalar
	opDivScalar
	opModScalar
	opLog
	opSqrt
	opFloor
	opNorm
	opStack
	opUnstack
	opZerosLike
	opCast
)

// node is a single deferred operation.
// outs are placeholder tensors whose buffers are filled when the node runs.
type node struct {
	kind    opKind
	inputs  []*tensor.RawTensor
	outs    []*tensor.RawTensor
	scalar  any
	dim     int
	keepDim bool
	dtype   tensor.DataType
	done    bool
}

// run executes the node on the inner backend and copies the results into the
// placeholders. Inputs must already be materialized.
func (n *node) run(inner tensor.Backend) {
	// Prevent the inner backend's inplace fast path from overwriting input
	// placeholders that other nodes still read.
	releases := make([]func(), 0, len(n.inputs))
	for _, in := range n.inputs {
		releases = append(releases, in.ForceNonUnique())
	}
	defer func() {
		for _, release := range releases {
			release()
		}
	}()

	switch n.kind {
	case opAdd:
		fillPlaceholder(n.outs[0], inner.Add(n.inputs[0], n.inputs[1]))
	case opSub:
		fillPlaceholder(n.outs[0], inner.Sub(n.inputs[0], n.inputs[1]))
	case opMul:
		fillPlaceholder(n.outs[0], inner.Mul(n.inputs[0], n.inputs[1]))
	case opDiv:
		fillPlaceholder(n.outs[0], inner.Div(n.inputs[0], n.inputs[1]))
	case opAddScalar:
		fillPlaceholder(n.outs[0], inner.AddScalar(n.inputs[0], n.scalar))
	case opSubScalar:
		fillPlaceholder(n.outs[0], inner.SubScalar(n.inputs[0], n.scalar))
	case opMulScalar:
		fillPlaceholder(n.outs[0], inner.MulScalar(n.inputs[0], n.scalar))
	case opDivScalar:
		fillPlaceholder(n.outs[0], inner.DivScalar(n.inputs[0], n.scalar))
	case opModScalar:
		fillPlaceholder(n.outs[0], inner.ModScalar(n.inputs[0], n.scalar))
	case opLog:
		fillPlaceholder(n.outs[0], inner.Log(n.inputs[0]))
	case opSqrt:
		fillPlaceholder(n.outs[0], inner.Sqrt(n.inputs[0]))
	case opFloor:
		fillPlaceholder(n.outs[0], inner.Floor(n.inputs[0]))
	case opNorm:
		fillPlaceholder(n.outs[0], inner.Norm(n.inputs[0], n.dim, n.keepDim))
	case opStack:
		fillPlaceholder(n.outs[0], inner.Stack(n.inputs, n.dim))
	case opUnstack:
		parts := inner.Unstack(n.inputs[0], n.dim)
		for i, part := range parts {
			fillPlaceholder(n.outs[i], part)
		}
	case opZerosLike:
		fillPlaceholder(n.outs[0], inner.ZerosLike(n.inputs[0]))
	case opCast:
		fillPlaceholder(n.outs[0], inner.Cast(n.inputs[0], n.dtype))
	default:
		panic(fmt.Sprintf("graph: unknown op kind %d", n.kind))
	}
}

// fillPlaceholder copies a computed result into a placeholder tensor.
// A mismatch means the shape inference at record time disagrees with the
// inner backend - a graph bug, not a user error.
func fillPlaceholder(dst, src *tensor.RawTensor) {
	if !dst.Shape().Equal(src.Shape()) || dst.DType() != src.DType() {
		panic(fmt.Sprintf("graph: inferred %s%v but inner backend produced %s%v",
			dst.DType(), dst.Shape(), src.DType(), src.Shape()))
	}
	copy(dst.Data(), src.Data())
}
