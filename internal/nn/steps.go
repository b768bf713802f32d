package nn

import (
	"github.com/pkg/errors"

	"github.com/born-ml/born-seq/internal/tensor"
)

func shapeErrorf(format string, args ...any) error {
	return errors.Wrapf(tensor.ErrShapeMismatch, format, args...)
}

// timeBatch validates a padded batch against the expected feature size and
// returns its time and batch dimensions. An empty batch may come without a
// feature axis ([0, 0]), since there was no item to take it from.
func timeBatch[B tensor.Backend](name string, p *Padded[B], features int) (int, int, error) {
	if p == nil || p.Data == nil {
		return 0, 0, errors.Errorf("%s: nil padded batch", name)
	}
	shape := p.Data.Shape()
	switch {
	case len(shape) == 2 && shape.NumElements() == 0:
	case len(shape) != 3:
		return 0, 0, shapeErrorf("%s: expected padded batch [time, batch, %d], got %v", name, features, shape)
	case shape[2] != features:
		return 0, 0, shapeErrorf("%s: expected %d features, got %v", name, features, shape)
	}
	if len(p.SizeAtT) != shape[0] {
		return 0, 0, shapeErrorf("%s: %d active counts for %d timesteps", name, len(p.SizeAtT), shape[0])
	}
	return shape[0], shape[1], nil
}

// stepRows returns the rows of timestep t for the first n batch columns of a
// flattened [time*batch, width] buffer. Active columns form a prefix, so the
// slice is contiguous.
func stepRows(data []float32, t, n, batch, width int) []float32 {
	start := t * batch * width
	return data[start : start+n*width]
}

// maskInactive zeroes every row whose column is not active at its timestep.
func maskInactive(data []float32, sizeAtT []int, batch, width int) {
	for t, n := range sizeAtT {
		start := (t*batch + n) * width
		end := (t + 1) * batch * width
		clear(data[start:end])
	}
}

func fromRows[B tensor.Backend](rows []float32, n, width int, backend B) *tensor.Tensor[float32, B] {
	out := tensor.Zeros[float32](tensor.Shape{n, width}, backend)
	copy(out.Data(), rows)
	return out
}
