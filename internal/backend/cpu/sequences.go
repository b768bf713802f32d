package cpu

import (
	"cmp"
	"slices"

	"github.com/pkg/errors"

	"github.com/born-ml/born-seq/internal/parallel"
	"github.com/born-ml/born-seq/internal/tensor"
)

// SquareSequences pads variable-length sequences into a time-major batch.
//
// Each sequence has shape [len_i, F...] with a shared feature shape F. The
// result has shape [maxLen, batch, F...] with column j holding the j-th
// longest sequence; equal lengths keep their original order. sizeAtT[t]
// counts the sequences with len_i > t. Padding positions are zero.
//
// The returned unpad function inverts the transform for any array of shape
// [maxLen, batch, G...], restoring the original order and lengths.
func (cpu *CPUBackend) SquareSequences(seqs []*tensor.RawTensor) (*tensor.RawTensor, []int, tensor.RawUnpad, error) {
	if len(seqs) == 0 {
		data := tensor.MustNewRaw(tensor.Shape{0, 0}, tensor.Float32, cpu.device)
		return data, []int{}, cpu.unpadder(nil, nil), nil
	}

	dtype := seqs[0].DType()
	var features tensor.Shape
	lengths := make([]int, len(seqs))
	for i, s := range seqs {
		shape := s.Shape()
		if len(shape) == 0 {
			return nil, nil, nil, errors.Wrapf(tensor.ErrShapeMismatch,
				"sequence %d is a scalar, want shape [length, features...]", i)
		}
		if s.DType() != dtype {
			return nil, nil, nil, errors.Wrapf(tensor.ErrShapeMismatch,
				"sequence %d has dtype %s, want %s", i, s.DType(), dtype)
		}
		if i == 0 {
			features = shape[1:]
		} else if !features.Equal(shape[1:]) {
			return nil, nil, nil, errors.Wrapf(tensor.ErrShapeMismatch,
				"sequence %d has features %v, want %v", i, shape[1:], features)
		}
		lengths[i] = shape[0]
	}

	order := make([]int, len(seqs))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(lengths[b], lengths[a])
	})

	nB := len(seqs)
	maxLen := lengths[order[0]]
	outShape := append(tensor.Shape{maxLen, nB}, features...)
	data := tensor.MustNewRaw(outShape, dtype, cpu.device)

	rowBytes := features.NumElements() * dtype.Size()
	dst := data.Data()
	parallel.For(nB, func(j int) {
		i := order[j]
		src := seqs[i].Data()
		for t := 0; t < lengths[i]; t++ {
			copy(dst[(t*nB+j)*rowBytes:(t*nB+j+1)*rowBytes], src[t*rowBytes:(t+1)*rowBytes])
		}
	}, cpu.parallel)

	sizeAtT := make([]int, maxLen)
	active := nB
	for t := range sizeAtT {
		for active > 0 && lengths[order[active-1]] <= t {
			active--
		}
		sizeAtT[t] = active
	}

	return data, sizeAtT, cpu.unpadder(order, lengths), nil
}

// unpadder builds the inverse of a SquareSequences call. order maps padded
// columns to original positions; lengths is indexed by original position.
func (cpu *CPUBackend) unpadder(order, lengths []int) tensor.RawUnpad {
	nB := len(order)
	maxLen := 0
	if nB > 0 {
		maxLen = lengths[order[0]]
	}

	return func(padded *tensor.RawTensor) ([]*tensor.RawTensor, error) {
		shape := padded.Shape()
		if len(shape) < 2 || shape[0] != maxLen || shape[1] != nB {
			return nil, errors.Wrapf(tensor.ErrShapeMismatch,
				"cannot unpad %v, want shape [%d, %d, ...]", shape, maxLen, nB)
		}

		features := shape[2:]
		elem := padded.DType().Size()
		rowBytes := features.NumElements() * elem
		src := padded.Data()

		out := make([]*tensor.RawTensor, nB)
		parallel.For(nB, func(j int) {
			i := order[j]
			item := tensor.MustNewRaw(append(tensor.Shape{lengths[i]}, features...), padded.DType(), cpu.device)
			dst := item.Data()
			for t := 0; t < lengths[i]; t++ {
				copy(dst[t*rowBytes:(t+1)*rowBytes], src[(t*nB+j)*rowBytes:(t*nB+j+1)*rowBytes])
			}
			out[i] = item
		}, cpu.parallel)
		return out, nil
	}
}
