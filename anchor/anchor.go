// Copyright 2025 The Lattice Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package anchor

import (
	"github.com/lattice-ml/lattice/internal/anchor"
	"github.com/lattice-ml/lattice/tensor"
)

// EncodeAngleClass discretizes heading angles (radians, any range) into
// per-element class ids in [0, numClass) and residuals in [0, 1).
//
// Bin boundaries are centered on multiples of the bin width 2π/numClass.
// Panics if numClass < 1.
func EncodeAngleClass[T tensor.Float, B tensor.Backend](angle *tensor.Tensor[T, B], numClass int) (*tensor.Tensor[int32, B], *tensor.Tensor[T, B]) {
	b := angle.Backend()
	classID, residual := anchor.EncodeAngleClass(b, angle.Raw(), numClass)
	return tensor.New[int32, B](classID, b), tensor.New[T, B](residual, b)
}

// DecodeAngleClass reconstructs heading angles in [0, 2π) from their
// discretized (classID, residual) form. The inverse of EncodeAngleClass.
func DecodeAngleClass[T tensor.Float, B tensor.Backend](classID *tensor.Tensor[int32, B], residual *tensor.Tensor[T, B], numClass int) *tensor.Tensor[T, B] {
	b := residual.Backend()
	angle := anchor.DecodeAngleClass(b, classID.Raw(), residual.Raw(), numClass)
	return tensor.New[T, B](angle, b)
}

// EncodeLogAnchor encodes ground-truth boxes relative to anchors with
// diagonal-normalized center deltas and log dimension ratios.
//
// Centers and offsets are [bs, n, 3] tensors; offsets are (length, height,
// width) and must be strictly positive for both boxes.
func EncodeLogAnchor[T tensor.Float, B tensor.Backend](gtCtr, gtOffset, anchorCtr, anchorOffset *tensor.Tensor[T, B]) (*tensor.Tensor[T, B], *tensor.Tensor[T, B]) {
	b := gtCtr.Backend()
	ctr, offset := anchor.EncodeLogAnchor(b, gtCtr.Raw(), gtOffset.Raw(), anchorCtr.Raw(), anchorOffset.Raw())
	return tensor.New[T, B](ctr, b), tensor.New[T, B](offset, b)
}

// EncodeDistAnchor encodes ground-truth boxes relative to anchors with raw
// center deltas and ratio-normalized dimension deltas.
func EncodeDistAnchor[T tensor.Float, B tensor.Backend](gtCtr, gtOffset, anchorCtr, anchorOffset *tensor.Tensor[T, B]) (*tensor.Tensor[T, B], *tensor.Tensor[T, B]) {
	b := gtCtr.Backend()
	ctr, offset := anchor.EncodeDistAnchor(b, gtCtr.Raw(), gtOffset.Raw(), anchorCtr.Raw(), anchorOffset.Raw())
	return tensor.New[T, B](ctr, b), tensor.New[T, B](offset, b)
}

// EncodeDistAnchorFree encodes ground-truth boxes without anchor geometry:
// the regression target is the half-dimensions, and the center is re-based
// to the geometric box center before subtracting the anchor center.
//
// anchorOffset may be nil; only anchorCtr participates.
func EncodeDistAnchorFree[T tensor.Float, B tensor.Backend](gtCtr, gtOffset, anchorCtr, anchorOffset *tensor.Tensor[T, B]) (*tensor.Tensor[T, B], *tensor.Tensor[T, B]) {
	b := gtCtr.Backend()
	var rawAnchorOffset *tensor.RawTensor
	if anchorOffset != nil {
		rawAnchorOffset = anchorOffset.Raw()
	}
	ctr, half := anchor.EncodeDistAnchorFree(b, gtCtr.Raw(), gtOffset.Raw(), anchorCtr.Raw(), rawAnchorOffset)
	return tensor.New[T, B](ctr, b), tensor.New[T, B](half, b)
}
