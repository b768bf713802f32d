package tensor

import (
	"github.com/pkg/errors"
)

// Padded is a time-major batch of variable-length sequences.
//
// Data has shape [maxLen, batch, F...]. Column j holds the j-th longest
// sequence, so at timestep t the active sequences are exactly the first
// SizeAtT[t] columns. SizeAtT is non-increasing and has one entry per
// timestep.
type Padded[T DType, B Backend] struct {
	Data    *Tensor[T, B]
	SizeAtT []int
}

// NewPadded pairs a padded array with its active counts, checking that they
// agree.
func NewPadded[T DType, B Backend](data *Tensor[T, B], sizeAtT []int) (*Padded[T, B], error) {
	if err := checkSizeAtT(data.Shape(), sizeAtT); err != nil {
		return nil, err
	}
	return &Padded[T, B]{Data: data, SizeAtT: sizeAtT}, nil
}

// MaxLen returns the length of the time dimension.
func (p *Padded[T, B]) MaxLen() int {
	return p.Data.Shape()[0]
}

// BatchSize returns the number of sequences in the batch.
func (p *Padded[T, B]) BatchSize() int {
	return p.Data.Shape()[1]
}

// Features returns the per-timestep feature shape.
func (p *Padded[T, B]) Features() Shape {
	return p.Data.Shape()[2:]
}

// Lengths recovers the sorted sequence lengths from the active counts.
func (p *Padded[T, B]) Lengths() []int {
	lengths := make([]int, p.BatchSize())
	for _, n := range p.SizeAtT {
		for j := 0; j < n; j++ {
			lengths[j]++
		}
	}
	return lengths
}

// Unpad inverts a SquareSequences call for typed tensors.
type Unpad[T DType, B Backend] func(padded *Tensor[T, B]) ([]*Tensor[T, B], error)

// SquareSequences pads seqs into a time-major Padded batch using the backend
// and returns the transform's inverse.
//
// Every sequence must have rank >= 1 and share the same trailing feature
// shape; violations are reported as ErrShapeMismatch. The returned Unpad
// accepts any array with the same leading [maxLen, batch] dimensions, so an
// inner layer may change the feature size.
func SquareSequences[T DType, B Backend](seqs []*Tensor[T, B], b B) (*Padded[T, B], Unpad[T, B], error) {
	raws := make([]*RawTensor, len(seqs))
	for i, s := range seqs {
		if s == nil {
			return nil, nil, errors.Wrapf(ErrShapeMismatch, "sequence %d is nil", i)
		}
		raws[i] = s.Raw()
	}

	data, sizeAtT, rawUnpad, err := b.SquareSequences(raws)
	if err != nil {
		return nil, nil, err
	}

	if want := DataTypeOf[T](); data.DType() != want && data.NumElements() == 0 {
		// An empty batch carries no element type of its own.
		data = MustNewRaw(data.Shape(), want, data.Device())
	}

	unpad := func(padded *Tensor[T, B]) ([]*Tensor[T, B], error) {
		items, err := rawUnpad(padded.Raw())
		if err != nil {
			return nil, err
		}
		out := make([]*Tensor[T, B], len(items))
		for i, item := range items {
			out[i] = New[T, B](item, b)
		}
		return out, nil
	}

	return &Padded[T, B]{Data: New[T, B](data, b), SizeAtT: sizeAtT}, unpad, nil
}

func checkSizeAtT(shape Shape, sizeAtT []int) error {
	if len(shape) < 2 {
		return errors.Wrapf(ErrShapeMismatch, "padded data must have shape [time, batch, ...], got %v", shape)
	}
	if len(sizeAtT) != shape[0] {
		return errors.Wrapf(ErrShapeMismatch, "%d active counts for %d timesteps", len(sizeAtT), shape[0])
	}
	prev := shape[1]
	for t, n := range sizeAtT {
		if n < 0 || n > prev {
			return errors.Wrapf(ErrShapeMismatch, "active count %d at timestep %d must be in [0, %d]", n, t, prev)
		}
		prev = n
	}
	return nil
}
