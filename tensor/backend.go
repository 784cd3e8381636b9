// Copyright 2025 The Lattice Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/lattice-ml/lattice/internal/tensor"

// Backend defines the interface that all compute backends must implement.
// Backends handle the actual computation for tensor operations.
//
// Implementations:
//   - backend/eager: immediate evaluation in pure Go
//   - backend/graph: deferred computation graph (decorator over any backend)
//
// Every operation on a graph backend returns an unevaluated placeholder;
// Materialize executes the recorded subgraph. On the eager backend
// Materialize is a no-op. For the same inputs both backends must produce
// numerically identical results within floating-point tolerance.
//
// Example:
//
//	import (
//	    "github.com/lattice-ml/lattice/backend/eager"
//	    "github.com/lattice-ml/lattice/backend/graph"
//	)
//
//	g := graph.New(eager.New())
//	y := g.Log(g.Div(a, b)) // deferred
//	g.Materialize(y)        // computed here
type Backend = tensor.Backend
