// Package nn implements sequence layers for born-seq.
//
// Layers follow an explicit forward/backward contract: Forward returns the
// output together with a backprop closure that maps output gradients to
// input gradients and accumulates parameter gradients. Two batch
// representations are supported:
//   - lists of variable-length sequences ([]*tensor.Tensor, one [len, F] per item)
//   - padded, time-major batches (*tensor.Padded, [maxLen, batch, F])
//
// WithList2Padded bridges the two so a padded layer can be used where a list
// layer is expected:
//
//	backend := cpu.New()
//	rnn := nn.NewRNN(32, 0, backend) // input size inferred at Initialize
//	model := nn.WithList2Padded[*cpu.CPUBackend](rnn, backend)
//	if err := model.Initialize(xs, nil); err != nil { ... }
//	ys, backprop, err := model.Forward(xs, true)
//	dXs, err := backprop(dYs)
package nn

import (
	"github.com/pkg/errors"

	"github.com/born-ml/born-seq/internal/tensor"
)

// ErrUninitialized is returned when a layer is used before its dimensions are
// known.
var ErrUninitialized = errors.New("layer is not initialized")

// Padded is a float32 padded batch on backend B.
type Padded[B tensor.Backend] = tensor.Padded[float32, B]

// Seq is a single [len, F...] float32 sequence on backend B.
type Seq[B tensor.Backend] = *tensor.Tensor[float32, B]

// PaddedBackprop maps the gradient of a padded output to the gradient of the
// padded input. It is returned by a single Forward call and is only valid
// while the layer's parameters are not replaced.
type PaddedBackprop[B tensor.Backend] func(dY *Padded[B]) (*Padded[B], error)

// ListBackprop is the list counterpart of PaddedBackprop.
type ListBackprop[B tensor.Backend] func(dYs []Seq[B]) ([]Seq[B], error)

// PaddedLayer is a layer operating on padded, time-major batches.
type PaddedLayer[B tensor.Backend] interface {
	// Name identifies the layer in diagnostics.
	Name() string

	// Forward computes the output for x and returns the backprop closure for
	// this call.
	Forward(x *Padded[B], isTrain bool) (*Padded[B], PaddedBackprop[B], error)

	// Initialize allocates parameters, inferring missing dimensions from the
	// example input x and output y. Either may be nil.
	Initialize(x, y *Padded[B]) error

	// Parameters returns the trainable parameters.
	Parameters() []*Parameter[B]
}

// ListLayer is a layer operating on lists of variable-length sequences.
type ListLayer[B tensor.Backend] interface {
	Name() string
	Forward(xs []Seq[B], isTrain bool) ([]Seq[B], ListBackprop[B], error)

	// Initialize is like PaddedLayer.Initialize; a nil slice means absent.
	Initialize(xs, ys []Seq[B]) error

	Parameters() []*Parameter[B]
}
