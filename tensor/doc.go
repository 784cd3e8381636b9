// Copyright 2025 The Lattice Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides type-safe tensor operations for the Lattice toolkit.
//
// # Overview
//
// Tensors are the fundamental data structure in Lattice. This package provides:
//   - Generic type-safe tensors (Tensor[T, B])
//   - NumPy-style broadcasting
//   - A Backend interface with eager and deferred-graph implementations
//
// # Basic Usage
//
//	import (
//	    "github.com/lattice-ml/lattice/backend/eager"
//	    "github.com/lattice-ml/lattice/tensor"
//	)
//
//	func main() {
//	    backend := eager.New()
//
//	    gt, _ := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{1, 1, 3}, backend)
//	    anchor := tensor.Zeros[float32](tensor.Shape{1, 1, 3}, backend)
//
//	    delta := gt.Sub(anchor)
//	}
//
// # Supported Data Types
//
// The tensor package supports the following data types via the DType constraint:
//   - float32, float64 (floating-point; all encoder math)
//   - int32, int64 (class indices)
//
// # Backends
//
// The same code runs on any Backend implementation. The eager backend
// computes immediately; the graph backend records a computation graph and
// executes it on Materialize. Both must agree within float tolerance.
package tensor
