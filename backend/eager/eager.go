// Copyright 2025 The Lattice Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package eager

import (
	internaleager "github.com/lattice-ml/lattice/internal/backend/eager"
	"github.com/lattice-ml/lattice/tensor"
)

// Backend represents the eager backend implementation.
//
// The eager backend evaluates every operation immediately in pure Go,
// with NumPy-compatible broadcasting and gonum-accelerated float64 kernels.
type Backend = internaleager.EagerBackend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new eager backend.
//
// Example:
//
//	import (
//	    "github.com/lattice-ml/lattice/backend/eager"
//	    "github.com/lattice-ml/lattice/tensor"
//	)
//
//	func main() {
//	    backend := eager.New()
//	    x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	}
func New() *Backend {
	return internaleager.New()
}
