// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/born-seq/backend/cpu"
	"github.com/born-ml/born-seq/nn"
	"github.com/born-ml/born-seq/tensor"
)

func TestWithList2Padded(t *testing.T) {
	backend := cpu.New()
	model := nn.WithList2Padded[*cpu.Backend](nn.NewRNN(3, 0, backend), backend)
	assert.Equal(t, "with_list2padded-rnn", model.Name())

	var _ nn.ListLayer[*cpu.Backend] = model

	xs := make([]nn.Seq[*cpu.Backend], 3)
	for i, n := range []int{3, 1, 2} {
		xs[i] = tensor.Ones[float32](tensor.Shape{n, 4}, backend)
	}
	require.NoError(t, model.Initialize(xs, nil))

	ys, backprop, err := model.Forward(xs, true)
	require.NoError(t, err)
	loss, dYs, err := nn.SequenceMSE(ys, ys)
	require.NoError(t, err)
	assert.Zero(t, loss)

	dXs, err := backprop(dYs)
	require.NoError(t, err)
	for i, n := range []int{3, 1, 2} {
		assert.Equal(t, tensor.Shape{n, 3}, ys[i].Shape())
		assert.Equal(t, tensor.Shape{n, 4}, dXs[i].Shape())
	}
}
