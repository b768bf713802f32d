package nn

import (
	"k8s.io/klog/v2"

	"github.com/born-ml/born-seq/internal/tensor"
)

// PaddedAdapter exposes a PaddedLayer as a ListLayer. It pads the incoming
// list of sequences with the backend's SquareSequences, runs the inner
// layer, and unpads the result back into a list in the original order.
//
// The adapter holds no batch state; everything a backward pass needs is
// captured in the closure returned by Forward. Errors from padding and from
// the inner layer are returned unchanged.
type PaddedAdapter[B tensor.Backend] struct {
	layer   PaddedLayer[B]
	backend B
}

// WithList2Padded wraps layer so it accepts and returns lists of sequences.
func WithList2Padded[B tensor.Backend](layer PaddedLayer[B], backend B) *PaddedAdapter[B] {
	return &PaddedAdapter[B]{layer: layer, backend: backend}
}

// Name returns "with_list2padded-" followed by the inner layer's name.
func (a *PaddedAdapter[B]) Name() string {
	return "with_list2padded-" + a.layer.Name()
}

// Layer returns the wrapped layer.
func (a *PaddedAdapter[B]) Layer() PaddedLayer[B] {
	return a.layer
}

// Forward pads xs, runs the inner layer and unpads its output.
func (a *PaddedAdapter[B]) Forward(xs []Seq[B], isTrain bool) ([]Seq[B], ListBackprop[B], error) {
	x, unpad, err := tensor.SquareSequences(xs, a.backend)
	if err != nil {
		return nil, nil, err
	}
	klog.V(3).Infof("%s: padded %d sequences to %v", a.Name(), len(xs), x.Data.Shape())

	y, backpropLayer, err := a.layer.Forward(x, isTrain)
	if err != nil {
		return nil, nil, err
	}
	ys, err := unpad(y.Data)
	if err != nil {
		return nil, nil, err
	}

	backprop := func(dYs []Seq[B]) ([]Seq[B], error) {
		// The gradients are padded on their own rather than through the
		// forward transform; their lengths define their own ordering.
		dY, unpadGrad, err := tensor.SquareSequences(dYs, a.backend)
		if err != nil {
			return nil, err
		}
		klog.V(3).Infof("%s: padded %d gradients to %v", a.Name(), len(dYs), dY.Data.Shape())

		dX, err := backpropLayer(dY)
		if err != nil {
			return nil, err
		}
		return unpadGrad(dX.Data)
	}

	return ys, backprop, nil
}

// Initialize pads the example batches that are present and hands them to the
// inner layer's Initialize. A nil slice is passed on as absent.
func (a *PaddedAdapter[B]) Initialize(xs, ys []Seq[B]) error {
	x, err := a.maybePadded(xs)
	if err != nil {
		return err
	}
	y, err := a.maybePadded(ys)
	if err != nil {
		return err
	}
	return a.layer.Initialize(x, y)
}

func (a *PaddedAdapter[B]) maybePadded(seqs []Seq[B]) (*Padded[B], error) {
	if seqs == nil {
		return nil, nil
	}
	padded, _, err := tensor.SquareSequences(seqs, a.backend)
	if err != nil {
		return nil, err
	}
	return padded, nil
}

// Parameters returns the inner layer's parameters.
func (a *PaddedAdapter[B]) Parameters() []*Parameter[B] {
	return a.layer.Parameters()
}
