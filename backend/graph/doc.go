// Copyright 2025 The Lattice Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package graph provides the deferred computation-graph backend.
//
// # Overview
//
// The graph backend is a decorator: it wraps any tensor.Backend and turns
// every operation into a recorded graph node returning an unevaluated
// placeholder. Materialize evaluates the subgraph producing a tensor,
// memoizing node results so each node runs at most once.
//
// Shape and dtype errors surface at graph construction time; numeric values
// exist only after Materialize.
//
// # Basic Usage
//
//	backend := graph.New(eager.New())
//
//	gt, _ := tensor.FromSlice(gtData, tensor.Shape{1, 4, 3}, backend)
//	anchor, _ := tensor.FromSlice(anchorData, tensor.Shape{1, 4, 3}, backend)
//
//	delta := gt.Sub(anchor)  // deferred
//	delta.Materialize()      // computed here
package graph
