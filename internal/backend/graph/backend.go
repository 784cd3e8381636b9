package graph

import (
	"fmt"
	"sync"

	"github.com/lattice-ml/lattice/internal/tensor"
)

// GraphBackend wraps a Backend and defers every operation into a computation
// graph. It implements the tensor.Backend interface.
//
// Type parameter B must satisfy the tensor.Backend interface.
type GraphBackend[B tensor.Backend] struct {
	inner B

	mu    sync.Mutex
	nodes map[*tensor.RawTensor]*node // producer of each placeholder
}

// New creates a new GraphBackend wrapping the given backend.
func New[B tensor.Backend](backend B) *GraphBackend[B] {
	return &GraphBackend[B]{
		inner: backend,
		nodes: make(map[*tensor.RawTensor]*node),
	}
}

// Inner returns the wrapped backend for direct access.
func (g *GraphBackend[B]) Inner() B {
	return g.inner
}

// Name returns the backend name.
func (g *GraphBackend[B]) Name() string {
	return "Graph(" + g.inner.Name() + ")"
}

// Device returns the compute device of the wrapped backend.
func (g *GraphBackend[B]) Device() tensor.Device {
	return g.inner.Device()
}

// Materialize evaluates the subgraph producing x and returns x with its
// buffer filled. Tensors created outside the graph (leaves) are returned
// unchanged. Results are memoized: a node runs at most once.
func (g *GraphBackend[B]) Materialize(x *tensor.RawTensor) *tensor.RawTensor {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.eval(x)
	return x
}

// eval runs the producer of x depth-first. Callers must hold g.mu.
func (g *GraphBackend[B]) eval(x *tensor.RawTensor) {
	n, ok := g.nodes[x]
	if !ok || n.done {
		return // leaf tensor or already computed
	}
	for _, in := range n.inputs {
		g.eval(in)
	}
	n.run(g.inner)
	n.done = true
}

// record registers a node as the producer of its placeholders.
func (g *GraphBackend[B]) record(n *node) {
	g.mu.Lock()
	for _, out := range n.outs {
		g.nodes[out] = n
	}
	g.mu.Unlock()
}

// placeholder allocates an unevaluated result tensor.
func (g *GraphBackend[B]) placeholder(op string, shape tensor.Shape, dtype tensor.DataType) *tensor.RawTensor {
	out, err := tensor.NewRaw(shape, dtype, g.inner.Device())
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create placeholder: %v", op, err))
	}
	return out
}

// binary records an element-wise binary op. Broadcast shape errors surface at
// graph construction time, like shape errors in a deferred-execution engine.
func (g *GraphBackend[B]) binary(op string, kind opKind, a, b *tensor.RawTensor) *tensor.RawTensor {
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("%s: dtype mismatch: %s vs %s", op, a.DType(), b.DType()))
	}
	outShape, _, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", op, err))
	}
	out := g.placeholder(op, outShape, a.DType())
	g.record(&node{kind: kind, inputs: []*tensor.RawTensor{a, b}, outs: []*tensor.RawTensor{out}})
	return out
}

// unary records an element-wise unary op, optionally with a scalar operand.
func (g *GraphBackend[B]) unary(op string, kind opKind, x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	out := g.placeholder(op, x.Shape(), x.DType())
	g.record(&node{kind: kind, inputs: []*tensor.RawTensor{x}, outs: []*tensor.RawTensor{out}, scalar: scalar})
	return out
}

// Add records element-wise addition.
func (g *GraphBackend[B]) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return g.binary("add", opAdd, a, b)
}

// Sub records element-wise subtraction.
func (g *GraphBackend[B]) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return g.binary("sub", opSub, a, b)
}

// Mul records element-wise multiplication.
func (g *GraphBackend[B]) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return g.binary("mul", opMul, a, b)
}

// Div records element-wise division.
func (g *GraphBackend[B]) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	return g.binary("div", opDiv, a, b)
}

// AddScalar records scalar addition.
func (g *GraphBackend[B]) AddScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	return g.unary("addScalar", opAddScalar, x, scalar)
}

// SubScalar records scalar subtraction.
func (g *GraphBackend[B]) SubScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	return g.unary("subScalar", opSubScalar, x, scalar)
}

// MulScalar records scalar multiplication.
func (g *GraphBackend[B]) MulScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	return g.unary("mulScalar", opMulScalar, x, scalar)
}

// DivScalar records scalar division.
func (g *GraphBackend[B]) DivScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	return g.unary("divScalar", opDivScalar, x, scalar)
}

// ModScalar records floored scalar modulo.
func (g *GraphBackend[B]) ModScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	return g.unary("modScalar", opModScalar, x, scalar)
}

// Log records an element-wise natural logarithm.
func (g *GraphBackend[B]) Log(x *tensor.RawTensor) *tensor.RawTensor {
	return g.unary("log", opLog, x, nil)
}

// Sqrt records an element-wise square root.
func (g *GraphBackend[B]) Sqrt(x *tensor.RawTensor) *tensor.RawTensor {
	return g.unary("sqrt", opSqrt, x, nil)
}

// Floor records an element-wise floor.
func (g *GraphBackend[B]) Floor(x *tensor.RawTensor) *tensor.RawTensor {
	return g.unary("floor", opFloor, x, nil)
}

// Norm records a Euclidean norm reduction along dim.
func (g *GraphBackend[B]) Norm(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	shape := x.Shape()
	ndim := len(shape)
	normDim := dim
	if normDim < 0 {
		normDim = ndim + normDim
	}
	if normDim < 0 || normDim >= ndim {
		panic(fmt.Sprintf("norm: dimension %d out of range for %dD tensor", dim, ndim))
	}

	outShape := shape.Clone()
	if keepDim {
		outShape[normDim] = 1
	} else {
		outShape = append(outShape[:normDim], outShape[normDim+1:]...)
	}

	out := g.placeholder("norm", outShape, x.DType())
	g.record(&node{kind: opNorm, inputs: []*tensor.RawTensor{x}, outs: []*tensor.RawTensor{out}, dim: dim, keepDim: keepDim})
	return out
}

// Stack records stacking along a new dimension.
func (g *GraphBackend[B]) Stack(tensors []*tensor.RawTensor, dim int) *tensor.RawTensor {
	if len(tensors) == 0 {
		panic("stack: at least one tensor required")
	}

	shape := tensors[0].Shape()
	ndim := len(shape)
	dtype := tensors[0].DType()
	for i, t := range tensors {
		if !t.Shape().Equal(shape) {
			panic(fmt.Sprintf("stack: tensor %d has shape %v, expected %v", i, t.Shape(), shape))
		}
		if t.DType() != dtype {
			panic(fmt.Sprintf("stack: tensor %d has dtype %s, expected %s", i, t.DType(), dtype))
		}
	}

	insertDim := dim
	if insertDim < 0 {
		insertDim = ndim + 1 + insertDim
	}
	if insertDim < 0 || insertDim > ndim {
		panic(fmt.Sprintf("stack: dimension %d out of range for %dD tensors (valid: [0, %d])", dim, ndim, ndim))
	}

	outShape := make(tensor.Shape, 0, ndim+1)
	outShape = append(outShape, shape[:insertDim]...)
	outShape = append(outShape, len(tensors))
	outShape = append(outShape, shape[insertDim:]...)

	out := g.placeholder("stack", outShape, dtype)
	inputs := append([]*tensor.RawTensor(nil), tensors...)
	g.record(&node{kind: opStack, inputs: inputs, outs: []*tensor.RawTensor{out}, dim: dim})
	return out
}

// Unstack records splitting along a dimension into per-slice outputs.
// All slices are produced by a single node: materializing any output
// materializes them all.
func (g *GraphBackend[B]) Unstack(x *tensor.RawTensor, dim int) []*tensor.RawTensor {
	shape := x.Shape()
	ndim := len(shape)
	splitDim := dim
	if splitDim < 0 {
		splitDim = ndim + splitDim
	}
	if splitDim < 0 || splitDim >= ndim {
		panic(fmt.Sprintf("unstack: dimension %d out of range for %dD tensor", dim, ndim))
	}

	outShape := make(tensor.Shape, 0, ndim-1)
	outShape = append(outShape, shape[:splitDim]...)
	outShape = append(outShape, shape[splitDim+1:]...)

	outs := make([]*tensor.RawTensor, shape[splitDim])
	for i := range outs {
		outs[i] = g.placeholder("unstack", outShape, x.DType())
	}
	g.record(&node{kind: opUnstack, inputs: []*tensor.RawTensor{x}, outs: outs, dim: dim})
	return outs
}

// ZerosLike records a zero-filled tensor with x's shape and dtype.
func (g *GraphBackend[B]) ZerosLike(x *tensor.RawTensor) *tensor.RawTensor {
	out := g.placeholder("zerosLike", x.Shape(), x.DType())
	g.record(&node{kind: opZerosLike, inputs: []*tensor.RawTensor{x}, outs: []*tensor.RawTensor{out}})
	return out
}

// Cast records a data type conversion.
func (g *GraphBackend[B]) Cast(x *tensor.RawTensor, dtype tensor.DataType) *tensor.RawTensor {
	out := g.placeholder("cast", x.Shape(), dtype)
	g.record(&node{kind: opCast, inputs: []*tensor.RawTensor{x}, outs: []*tensor.RawTensor{out}, dtype: dtype})
	return out
}
