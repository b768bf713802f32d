// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/born-seq/backend/cpu"
	"github.com/born-ml/born-seq/tensor"
)

// TestBackendInterface verifies that the CPU backend implements tensor.Backend.
func TestBackendInterface(_ *testing.T) {
	var _ tensor.Backend = (*cpu.Backend)(nil)
}

func TestSquareSequences(t *testing.T) {
	backend := cpu.New()

	a, err := tensor.FromSlice([]float32{1, 2}, tensor.Shape{2, 1}, backend)
	require.NoError(t, err)
	b, err := tensor.FromSlice([]float32{3, 4, 5}, tensor.Shape{3, 1}, backend)
	require.NoError(t, err)

	padded, unpad, err := tensor.SquareSequences([]*tensor.Tensor[float32, *cpu.Backend]{a, b}, backend)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{3, 2, 1}, padded.Data.Shape())
	assert.Equal(t, []int{3, 2}, padded.SizeAtT)
	assert.Equal(t, []float32{3, 1, 4, 2, 5, 0}, padded.Data.Data())

	restored, err := unpad(padded.Data)
	require.NoError(t, err)
	assert.Equal(t, a.Data(), restored[0].Data())
	assert.Equal(t, b.Data(), restored[1].Data())

	_, err = tensor.NewPadded(padded.Data, []int{1, 2, 0})
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)
}
