// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"math/rand"

	"github.com/born-ml/born-seq/internal/nn"
	"github.com/born-ml/born-seq/tensor"
)

// ErrUninitialized is returned when a layer is used before its sizes are
// known.
var ErrUninitialized = nn.ErrUninitialized

// Padded is a float32 padded batch on backend B.
type Padded[B tensor.Backend] = nn.Padded[B]

// Seq is a single [len, F...] float32 sequence on backend B.
type Seq[B tensor.Backend] = nn.Seq[B]

// PaddedBackprop maps padded output gradients to padded input gradients.
type PaddedBackprop[B tensor.Backend] = nn.PaddedBackprop[B]

// ListBackprop maps list output gradients to list input gradients.
type ListBackprop[B tensor.Backend] = nn.ListBackprop[B]

// PaddedLayer is a layer over padded, time-major batches.
type PaddedLayer[B tensor.Backend] = nn.PaddedLayer[B]

// ListLayer is a layer over lists of variable-length sequences.
type ListLayer[B tensor.Backend] = nn.ListLayer[B]

// Parameter is a trainable tensor with its accumulated gradient.
type Parameter[B tensor.Backend] = nn.Parameter[B]

// PaddedAdapter runs a PaddedLayer on lists of sequences.
type PaddedAdapter[B tensor.Backend] = nn.PaddedAdapter[B]

// Linear is a time-distributed fully connected layer.
type Linear[B tensor.Backend] = nn.Linear[B]

// RNN is an Elman recurrent layer with tanh activation.
type RNN[B tensor.Backend] = nn.RNN[B]

// Sequential chains padded layers.
type Sequential[B tensor.Backend] = nn.Sequential[B]

// Embedding maps token ids to sequences.
type Embedding[B tensor.Backend] = nn.Embedding[B]

// WithList2Padded wraps a padded layer so it accepts and returns lists of
// sequences.
func WithList2Padded[B tensor.Backend](layer PaddedLayer[B], backend B) *PaddedAdapter[B] {
	return nn.WithList2Padded(layer, backend)
}

// NewLinear creates a Linear layer; a zero size is inferred at Initialize.
func NewLinear[B tensor.Backend](nO, nI int, backend B) *Linear[B] {
	return nn.NewLinear(nO, nI, backend)
}

// NewRNN creates an RNN layer; a zero size is inferred at Initialize.
func NewRNN[B tensor.Backend](nO, nI int, backend B) *RNN[B] {
	return nn.NewRNN(nO, nI, backend)
}

// NewSequential creates a Sequential container.
func NewSequential[B tensor.Backend](layers ...PaddedLayer[B]) *Sequential[B] {
	return nn.NewSequential(layers...)
}

// NewEmbedding creates an embedding table.
func NewEmbedding[B tensor.Backend](numEmbeddings, embeddingDim int, backend B) *Embedding[B] {
	return nn.NewEmbedding(numEmbeddings, embeddingDim, backend)
}

// NewEmbeddingWithRand creates an embedding table from an explicit random
// source.
func NewEmbeddingWithRand[B tensor.Backend](numEmbeddings, embeddingDim int, rng *rand.Rand, backend B) *Embedding[B] {
	return nn.NewEmbeddingWithRand(numEmbeddings, embeddingDim, rng, backend)
}

// NewParameter creates a trainable parameter.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return nn.NewParameter(name, t)
}

// SequenceMSE computes the mean squared error over a list of sequences and
// its gradient.
func SequenceMSE[B tensor.Backend](ys, targets []Seq[B]) (float32, []Seq[B], error) {
	return nn.SequenceMSE(ys, targets)
}

// Xavier creates a Glorot-uniform initialized tensor.
func Xavier[B tensor.Backend](fanIn, fanOut int, shape tensor.Shape, rng *rand.Rand, backend B) *tensor.Tensor[float32, B] {
	return nn.Xavier(fanIn, fanOut, shape, rng, backend)
}
