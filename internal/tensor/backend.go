package tensor

// Backend defines the interface that all compute backends must implement.
// It is the minimal tensor algebra required by the box encoders: elementwise
// arithmetic, scalar arithmetic, a few math functions, a norm reduction, and
// stack/unstack manipulation.
//
// Implementations:
//   - backend/eager: immediate evaluation in pure Go
//   - backend/graph: deferred evaluation; ops build a computation graph that
//     is executed on Materialize
//
// Both backends must produce numerically identical results (within float
// tolerance) for the same inputs.
type Backend interface {
	// Element-wise binary operations with NumPy-style broadcasting.
	Add(a, b *RawTensor) *RawTensor // Element-wise addition.
	Sub(a, b *RawTensor) *RawTensor // Element-wise subtraction.
	Mul(a, b *RawTensor) *RawTensor // Element-wise multiplication.
	Div(a, b *RawTensor) *RawTensor // Element-wise division.

	// Scalar operations (element-wise with scalar).
	AddScalar(x *RawTensor, scalar any) *RawTensor // Add scalar.
	SubScalar(x *RawTensor, scalar any) *RawTensor // Subtract scalar.
	MulScalar(x *RawTensor, scalar any) *RawTensor // Multiply by scalar.
	DivScalar(x *RawTensor, scalar any) *RawTensor // Divide by scalar.
	ModScalar(x *RawTensor, scalar any) *RawTensor // Floored modulo; result takes the divisor's sign.

	// Math operations (element-wise).
	Log(x *RawTensor) *RawTensor   // Natural logarithm. Non-positive inputs yield NaN/-Inf, not an error.
	Sqrt(x *RawTensor) *RawTensor  // Square root. Negative inputs yield NaN.
	Floor(x *RawTensor) *RawTensor // Largest integer value <= x.

	// Reduction operations.
	Norm(x *RawTensor, dim int, keepDim bool) *RawTensor // Euclidean norm along dimension.

	// Manipulation operations.
	Stack(tensors []*RawTensor, dim int) *RawTensor // Stack along a new dimension.
	Unstack(x *RawTensor, dim int) []*RawTensor     // Split into slices along dimension, removing it.

	// Creation and conversion.
	ZerosLike(x *RawTensor) *RawTensor            // Zero-filled tensor with x's shape and dtype.
	Cast(x *RawTensor, dtype DataType) *RawTensor // Cast to different data type (truncates toward zero).

	// Materialize forces evaluation of a deferred result.
	// Eager backends return x unchanged; the graph backend executes the
	// subgraph producing x and fills its buffer.
	Materialize(x *RawTensor) *RawTensor

	// Metadata.
	Name() string   // Backend name (e.g., "Eager", "Graph(Eager)").
	Device() Device // Device type.
}
