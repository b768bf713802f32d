package nn

import (
	"github.com/born-ml/born-seq/internal/tensor"
)

// SequenceMSE computes the mean squared error over every element of a list
// of sequences:
//
//	loss = sum_i sum((ys[i] - targets[i])²) / count
//
// where count is the total number of elements. It also returns the gradient
// of the loss with respect to each prediction, 2(y - t) / count, in a form
// that can be passed straight to a ListBackprop.
//
// Each prediction must have the same shape as its target; mismatches are
// reported as ErrShapeMismatch.
func SequenceMSE[B tensor.Backend](ys, targets []Seq[B]) (float32, []Seq[B], error) {
	if len(ys) != len(targets) {
		return 0, nil, shapeErrorf("mse: %d predictions for %d targets", len(ys), len(targets))
	}

	count := 0
	for i := range ys {
		if !ys[i].Shape().Equal(targets[i].Shape()) {
			return 0, nil, shapeErrorf("mse: prediction %d has shape %v, target %v",
				i, ys[i].Shape(), targets[i].Shape())
		}
		count += ys[i].NumElements()
	}

	grads := make([]Seq[B], len(ys))
	if count == 0 {
		for i, y := range ys {
			grads[i] = tensor.Zeros[float32](y.Shape(), y.Backend())
		}
		return 0, grads, nil
	}

	var sum float64
	scale := 2 / float64(count)
	for i := range ys {
		diff := ys[i].Sub(targets[i])
		for _, d := range diff.Data() {
			sum += float64(d) * float64(d)
		}
		grads[i] = diff.MulScalar(scale)
	}

	return float32(sum / float64(count)), grads, nil
}
