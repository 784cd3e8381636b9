// Copyright 2025 The Lattice Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package graph

import (
	"github.com/lattice-ml/lattice/backend/eager"
	internalgraph "github.com/lattice-ml/lattice/internal/backend/graph"
	"github.com/lattice-ml/lattice/tensor"
)

// Backend represents the deferred computation-graph backend.
//
// It wraps any tensor.Backend: operations record nodes instead of computing,
// and Materialize executes the recorded subgraph via the wrapped backend.
type Backend[B tensor.Backend] = internalgraph.GraphBackend[B]

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend[*eager.Backend])(nil)

// New creates a new graph backend wrapping the given backend.
//
// Example:
//
//	import (
//	    "github.com/lattice-ml/lattice/backend/eager"
//	    "github.com/lattice-ml/lattice/backend/graph"
//	)
//
//	func main() {
//	    backend := graph.New(eager.New())
//	    y := backend.AddScalar(x, 1.0) // deferred
//	    backend.Materialize(y)         // computed here
//	}
func New[B tensor.Backend](inner B) *Backend[B] {
	return internalgraph.New(inner)
}
