// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for tensor operations.
//
// # Overview
//
// The backend implements:
//   - element-wise math with row broadcasting (float32 and float64)
//   - matrix multiplication through gonum BLAS
//   - reshape, transpose, tanh and sums along a dimension
//   - SquareSequences, the pad/unpad transform for variable-length batches
//
// Shape errors in math operations panic; SquareSequences returns errors
// wrapping tensor.ErrShapeMismatch.
//
// # Basic Usage
//
//	backend := cpu.New()
//	padded, unpad, err := tensor.SquareSequences(seqs, backend)
package cpu
