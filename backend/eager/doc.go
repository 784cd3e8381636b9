// Copyright 2025 The Lattice Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package eager provides the immediate-evaluation backend for tensor operations.
//
// # Overview
//
// This package implements an eager backend with:
//   - Pure Go implementation (no CGO)
//   - Float32 and Float64 support
//   - NumPy-compatible broadcasting
//   - Inplace fast paths when the destination buffer has a single owner
//
// Numeric-domain violations (division by zero, log of a non-positive value)
// degrade silently to NaN/Inf following IEEE 754; shape and dtype misuse
// panics.
package eager
