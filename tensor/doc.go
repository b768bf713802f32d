// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public tensor API of born-seq.
//
// The package re-exports the core types:
//   - Tensor[T, B]: generic tensor bound to a compute backend
//   - Padded[T, B]: time-major batch of variable-length sequences
//   - RawTensor, Shape, DataType, Device
//
// SquareSequences pads a list of sequences into a Padded batch and returns
// the function that restores the list:
//
//	backend := cpu.New()
//	padded, unpad, err := tensor.SquareSequences(seqs, backend)
//	// padded.Data: [maxLen, batch, F...], padded.SizeAtT: active columns per step
//	restored, err := unpad(padded.Data)
package tensor
