// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides the public optimizers of born-seq.
//
// Optimizers read the gradients that backprop closures accumulate on each
// nn.Parameter and update the parameters in place:
//
//	optimizer := optim.NewSGD(model.Parameters(), optim.SGDConfig{LR: 0.05, Momentum: 0.9}, backend)
//	_, _ = backprop(dYs)
//	optimizer.Step()
//	optimizer.ZeroGrad()
package optim
