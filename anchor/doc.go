// Copyright 2025 The Lattice Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package anchor provides coordinate-encoding math for 3D bounding-box
// anchors used in point-cloud object-detection training.
//
// # Encodings
//
// Four alternative conventions express a ground-truth box relative to an
// anchor:
//
//   - EncodeAngleClass: discretizes a heading angle into a class id and a
//     normalized residual in [0, 1).
//   - EncodeLogAnchor: center deltas normalized by the anchor's planar
//     diagonal and height; dimensions as log(gt/anchor) ratios.
//   - EncodeDistAnchor: raw center deltas; dimensions as relative
//     differences (gt-anchor)/anchor.
//   - EncodeDistAnchorFree: anchor-geometry-free; the target is the
//     half-dimensions, with the center re-based to the geometric box center.
//
// All encoders are pure, stateless tensor-to-tensor transforms, safe to call
// concurrently, and backend-agnostic: the same code runs on the eager and
// graph backends with numerically identical results.
//
// # Degenerate inputs
//
// EncodeLogAnchor and EncodeDistAnchor require strictly positive anchor
// dimensions. Zero or negative components are not validated: outputs degrade
// silently to NaN/Inf following IEEE 754. Callers must validate anchors
// upstream if that matters.
//
// # Basic Usage
//
//	backend := eager.New()
//
//	gtCtr, _ := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{1, 1, 3}, backend)
//	gtOffset, _ := tensor.FromSlice([]float32{2, 4, 6}, tensor.Shape{1, 1, 3}, backend)
//	anchorCtr := tensor.Zeros[float32](tensor.Shape{1, 1, 3}, backend)
//	anchorOffset, _ := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{1, 1, 3}, backend)
//
//	ctr, offset := anchor.EncodeDistAnchor(gtCtr, gtOffset, anchorCtr, anchorOffset)
package anchor
