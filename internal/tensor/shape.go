package tensor

import (
	"github.com/pkg/errors"
)

// Shape represents the dimensions of a tensor.
//
// Zero-sized dimensions are legal: an empty sequence has shape [0, features]
// and a padded batch of no sequences has shape [0, 0].
type Shape []int

// NumElements returns the total number of elements (1 for a scalar).
func (s Shape) NumElements() int {
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks that no dimension is negative.
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim < 0 {
			return errors.Errorf("invalid dimension at index %d: %d (must be >= 0)", i, dim)
		}
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// ComputeStrides calculates row-major strides (in elements) for the shape.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}

	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

// BroadcastShapes applies NumPy broadcasting rules to a and b.
//
// Shapes are aligned on the right; two dimensions are compatible when they
// are equal or one of them is 1. It returns the broadcasted shape and whether
// any broadcasting is needed.
//
//	(3, 1) + (3, 5) -> (3, 5), true
//	(5)    + (3, 5) -> (3, 5), true
//	(3, 4) + (3, 5) -> error
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	rank := max(len(a), len(b))
	out := make(Shape, rank)
	needsBroadcast := len(a) != len(b)

	for i := 1; i <= rank; i++ {
		aDim, bDim := 1, 1
		if len(a)-i >= 0 {
			aDim = a[len(a)-i]
		}
		if len(b)-i >= 0 {
			bDim = b[len(b)-i]
		}

		switch {
		case aDim == bDim:
			out[rank-i] = aDim
		case aDim == 1:
			out[rank-i] = bDim
			needsBroadcast = true
		case bDim == 1:
			out[rank-i] = aDim
			needsBroadcast = true
		default:
			return nil, false, errors.Wrapf(ErrShapeMismatch, "cannot broadcast %v with %v (axis %d: %d vs %d)",
				a, b, rank-i, aDim, bDim)
		}
	}

	return out, needsBroadcast, nil
}
