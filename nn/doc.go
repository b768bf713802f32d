// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the public sequence layers of born-seq.
//
// # Overview
//
// This package contains:
//   - Padded layers: Linear (time-distributed), RNN, Sequential
//   - List layers: WithList2Padded, which adapts a padded layer to lists of
//     variable-length sequences
//   - Embedding: token ids to sequences
//   - SequenceMSE: loss over lists of sequences
//   - Parameter and the Xavier/Zeros initializers
//
// Every Forward returns a backprop closure; calling it maps output gradients
// to input gradients and accumulates parameter gradients.
//
// # Basic Usage
//
//	backend := cpu.New()
//	model := nn.WithList2Padded[*cpu.Backend](nn.NewRNN(32, 0, backend), backend)
//	if err := model.Initialize(xs, nil); err != nil {
//	    return err
//	}
//	ys, backprop, err := model.Forward(xs, true)
//	loss, dYs, err := nn.SequenceMSE(ys, targets)
//	dXs, err := backprop(dYs)
package nn
