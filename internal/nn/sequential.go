package nn

import (
	"strings"

	"github.com/born-ml/born-seq/internal/tensor"
)

// Sequential chains padded layers: each layer's output is the next layer's
// input, and backprop runs the layers' closures in reverse.
//
// Example:
//
//	model := nn.NewSequential[B](
//	    nn.NewRNN(64, 0, backend),
//	    nn.NewLinear(16, 64, backend),
//	)
type Sequential[B tensor.Backend] struct {
	layers []PaddedLayer[B]
}

// NewSequential creates a new Sequential container.
func NewSequential[B tensor.Backend](layers ...PaddedLayer[B]) *Sequential[B] {
	return &Sequential[B]{
		layers: layers,
	}
}

// Name joins the layer names with ">>".
func (s *Sequential[B]) Name() string {
	names := make([]string, len(s.layers))
	for i, l := range s.layers {
		names[i] = l.Name()
	}
	return strings.Join(names, ">>")
}

// Forward applies all layers in sequence.
func (s *Sequential[B]) Forward(x *Padded[B], isTrain bool) (*Padded[B], PaddedBackprop[B], error) {
	backprops := make([]PaddedBackprop[B], len(s.layers))
	out := x
	for i, l := range s.layers {
		var err error
		out, backprops[i], err = l.Forward(out, isTrain)
		if err != nil {
			return nil, nil, err
		}
	}

	backprop := func(dY *Padded[B]) (*Padded[B], error) {
		grad := dY
		for i := len(backprops) - 1; i >= 0; i-- {
			var err error
			grad, err = backprops[i](grad)
			if err != nil {
				return nil, err
			}
		}
		return grad, nil
	}
	return out, backprop, nil
}

// Initialize initializes the layers front to back. The first layer sees x;
// when x is given, each following layer sees the previous layer's output on
// it. The last layer sees y.
func (s *Sequential[B]) Initialize(x, y *Padded[B]) error {
	cur := x
	for i, l := range s.layers {
		var target *Padded[B]
		if i == len(s.layers)-1 {
			target = y
		}
		if err := l.Initialize(cur, target); err != nil {
			return err
		}
		if cur != nil && i < len(s.layers)-1 {
			out, _, err := l.Forward(cur, false)
			if err != nil {
				return err
			}
			cur = out
		}
	}
	return nil
}

// Parameters returns the parameters of all layers.
func (s *Sequential[B]) Parameters() []*Parameter[B] {
	var params []*Parameter[B]
	for _, l := range s.layers {
		params = append(params, l.Parameters()...)
	}
	return params
}

// Add appends a layer to the sequence.
func (s *Sequential[B]) Add(layer PaddedLayer[B]) {
	s.layers = append(s.layers, layer)
}

// Len returns the number of layers.
func (s *Sequential[B]) Len() int {
	return len(s.layers)
}

// Layer returns the layer at index.
//
// Panics if index is out of bounds.
func (s *Sequential[B]) Layer(index int) PaddedLayer[B] {
	if index < 0 || index >= len(s.layers) {
		panic("Sequential.Layer: index out of bounds")
	}
	return s.layers[index]
}
