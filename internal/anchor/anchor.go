// Package anchor implements the box-encoding math for 3D detection anchors.
//
// Each encoder converts ground-truth box parameters (center, offset) relative
// to an anchor into a regression target. The algorithms are written once
// against the tensor.Backend interface, so the same code runs on the eager
// and graph backends and both produce identical results.
//
// Centers are [bs, n, 3] (x, y, z); offsets are [bs, n, 3] (length, height,
// width). The log-anchor and dist-anchor encoders require strictly positive
// anchor dimensions: degenerate anchors are not guarded and degrade silently
// to NaN/Inf outputs.
package anchor

import (
	"fmt"
	"math"

	"github.com/lattice-ml/lattice/internal/tensor"
)

const twoPi = 2 * math.Pi

// EncodeAngleClass discretizes a heading angle into a class id and a
// normalized residual.
//
// The angle is first normalized into [0, 2π) by floored modulo, then shifted
// by half a bin before binning, so bin boundaries are centered on multiples
// of the bin width rather than at 0. The class id is the bin index in
// [0, numClass); the residual is the fractional position of the shifted
// angle within its bin, in [0, 1).
//
// Panics if numClass < 1, or if the normalized angle falls outside [0, 2π] -
// the latter indicates a modulo bug in the backend and is not recoverable.
func EncodeAngleClass(b tensor.Backend, angle *tensor.RawTensor, numClass int) (classID, residual *tensor.RawTensor) {
	if numClass < 1 {
		panic(fmt.Sprintf("anchor: numClass must be positive, got %d", numClass))
	}

	// Encoders are pure: block the backend's inplace fast path from
	// overwriting caller inputs.
	defer angle.ForceNonUnique()()

	norm := b.ModScalar(angle, twoPi)
	checkAngleRange(b.Materialize(norm))

	binWidth := twoPi / float64(numClass)
	shifted := b.ModScalar(b.AddScalar(norm, binWidth/2), twoPi)

	classF := b.Floor(b.DivScalar(shifted, binWidth))
	classID = b.Cast(classF, tensor.Int32)
	residual = b.DivScalar(b.Sub(shifted, b.MulScalar(classF, binWidth)), binWidth)

	return classID, residual
}

// DecodeAngleClass reconstructs a heading angle from its discretized
// (classID, residual) form. The inverse of EncodeAngleClass.
func DecodeAngleClass(b tensor.Backend, classID, residual *tensor.RawTensor, numClass int) *tensor.RawTensor {
	if numClass < 1 {
		panic(fmt.Sprintf("anchor: numClass must be positive, got %d", numClass))
	}

	defer classID.ForceNonUnique()()
	defer residual.ForceNonUnique()()

	binWidth := twoPi / float64(numClass)
	classF := b.Cast(classID, residual.DType())
	shifted := b.MulScalar(b.Add(classF, residual), binWidth)
	return b.ModScalar(b.SubScalar(shifted, binWidth/2), twoPi)
}

// EncodeLogAnchor encodes a ground-truth box relative to an anchor using
// diagonal-normalized center deltas and log dimension ratios.
//
// The center delta is normalized by the anchor's planar diagonal
// sqrt(l² + w²) on the horizontal axes and by the anchor height on the
// vertical axis. Dimensions encode as log(gt/anchor) per component.
func EncodeLogAnchor(b tensor.Backend, gtCtr, gtOffset, anchorCtr, anchorOffset *tensor.RawTensor) (encodedCtr, encodedOffset *tensor.RawTensor) {
	defer gtCtr.ForceNonUnique()()
	defer gtOffset.ForceNonUnique()()
	defer anchorCtr.ForceNonUnique()()
	defer anchorOffset.ForceNonUnique()()

	gtL, gtH, gtW := split3(b, gtOffset)
	anchorL, anchorH, anchorW := split3(b, anchorOffset)

	// Planar diagonal of the anchor footprint.
	anchorD := b.Norm(b.Stack([]*tensor.RawTensor{anchorL, anchorW}, -1), -1, false)

	gtX, gtY, gtZ := split3(b, gtCtr)
	anchorX, anchorY, anchorZ := split3(b, anchorCtr)

	encodeX := b.Div(b.Sub(gtX, anchorX), anchorD)
	encodeY := b.Div(b.Sub(gtY, anchorY), anchorH)
	encodeZ := b.Div(b.Sub(gtZ, anchorZ), anchorD)

	encodeL := b.Log(b.Div(gtL, anchorL))
	encodeH := b.Log(b.Div(gtH, anchorH))
	encodeW := b.Log(b.Div(gtW, anchorW))

	encodedCtr = b.Stack([]*tensor.RawTensor{encodeX, encodeY, encodeZ}, -1)
	encodedOffset = b.Stack([]*tensor.RawTensor{encodeL, encodeH, encodeW}, -1)

	return encodedCtr, encodedOffset
}

// EncodeDistAnchor encodes a ground-truth box relative to an anchor using
// plain center deltas and ratio-normalized dimension deltas.
func EncodeDistAnchor(b tensor.Backend, gtCtr, gtOffset, anchorCtr, anchorOffset *tensor.RawTensor) (encodedCtr, encodedOffset *tensor.RawTensor) {
	defer gtCtr.ForceNonUnique()()
	defer gtOffset.ForceNonUnique()()
	defer anchorCtr.ForceNonUnique()()
	defer anchorOffset.ForceNonUnique()()

	encodedCtr = b.Sub(gtCtr, anchorCtr)
	encodedOffset = b.Div(b.Sub(gtOffset, anchorOffset), anchorOffset)
	return encodedCtr, encodedOffset
}

// EncodeDistAnchorFree encodes a ground-truth box without anchor geometry:
// the regression target is the half-dimensions directly, and the center is
// re-based from the box's bottom reference point to its geometric center
// (lifted by half the height) before subtracting the anchor center.
//
// anchorOffset is accepted for call compatibility with the other encoders
// but does not participate in the encoding.
func EncodeDistAnchorFree(b tensor.Backend, gtCtr, gtOffset, anchorCtr, anchorOffset *tensor.RawTensor) (encodedCtr, targetHalfOffset *tensor.RawTensor) {
	_ = anchorOffset

	defer gtCtr.ForceNonUnique()()
	defer gtOffset.ForceNonUnique()()
	defer anchorCtr.ForceNonUnique()()

	targetHalfOffset = b.DivScalar(gtOffset, 2)

	// Translation lifts the reference point by half the height only.
	_, halfH, _ := split3(b, targetHalfOffset)
	zeros := b.ZerosLike(halfH)
	translate := b.Stack([]*tensor.RawTensor{zeros, halfH, zeros}, -1)

	encodedCtr = b.Sub(b.Sub(gtCtr, translate), anchorCtr)
	return encodedCtr, targetHalfOffset
}

// split3 unstacks the last dimension into its three components.
func split3(b tensor.Backend, v *tensor.RawTensor) (x, y, z *tensor.RawTensor) {
	parts := b.Unstack(v, -1)
	if len(parts) != 3 {
		panic(fmt.Sprintf("anchor: expected 3 components in last dimension, got %d", len(parts)))
	}
	return parts[0], parts[1], parts[2]
}

// checkAngleRange verifies the contract that a normalized angle lies in
// [0, 2π]. A violation is a bug in the modulo, not a caller error.
func checkAngleRange(x *tensor.RawTensor) {
	switch x.DType() {
	case tensor.Float32:
		for i, v := range x.AsFloat32() {
			if !(v >= 0 && float64(v) <= twoPi) {
				panic(fmt.Sprintf("anchor: normalized angle %v at index %d outside [0, 2π]", v, i))
			}
		}
	case tensor.Float64:
		for i, v := range x.AsFloat64() {
			if !(v >= 0 && v <= twoPi) {
				panic(fmt.Sprintf("anchor: normalized angle %v at index %d outside [0, 2π]", v, i))
			}
		}
	default:
		panic(fmt.Sprintf("anchor: angle must be float32 or float64, got %s", x.DType()))
	}
}
