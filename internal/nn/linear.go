package nn

import (
	"math/rand"

	"github.com/born-ml/born-seq/internal/tensor"
)

// Linear is a time-distributed fully connected layer over padded batches.
//
// Every active timestep of every sequence is transformed independently:
// y = x @ W.T + b, with W of shape [nO, nI] and b of shape [nO]. Padding
// positions stay zero in the output and receive zero gradient.
//
// A zero nO or nI is inferred at Initialize from the example output or input.
//
// Example:
//
//	layer := nn.NewLinear(16, 0, backend)   // nI inferred
//	err := layer.Initialize(examplePadded, nil)
//	y, backprop, err := layer.Forward(x, true)
type Linear[B tensor.Backend] struct {
	dims
	weight  *Parameter[B] // [nO, nI]
	bias    *Parameter[B] // [nO]
	rng     *rand.Rand
	backend B
}

// NewLinear creates a Linear layer. Parameters are allocated as soon as both
// sizes are known.
func NewLinear[B tensor.Backend](nO, nI int, backend B) *Linear[B] {
	l := &Linear[B]{dims: dims{nO: nO, nI: nI}, backend: backend}
	if l.known() {
		l.allocate()
	}
	return l
}

// WithRand sets the random source used for weight initialization. It only
// affects parameters allocated afterwards.
func (l *Linear[B]) WithRand(rng *rand.Rand) *Linear[B] {
	l.rng = rng
	return l
}

// Name returns "linear".
func (l *Linear[B]) Name() string {
	return "linear"
}

// Initialize infers missing sizes from x and y and allocates parameters.
func (l *Linear[B]) Initialize(x, y *Padded[B]) error {
	if err := l.infer(l.Name(), featuresOf(x), featuresOf(y)); err != nil {
		return err
	}
	if l.weight == nil && l.known() {
		l.allocate()
	}
	return nil
}

func (l *Linear[B]) allocate() {
	l.weight = NewParameter("weight", Xavier(l.nI, l.nO, tensor.Shape{l.nO, l.nI}, l.rng, l.backend))
	l.bias = NewParameter("bias", Zeros(tensor.Shape{l.nO}, l.backend))
}

// Forward applies the layer to every active timestep.
func (l *Linear[B]) Forward(x *Padded[B], _ bool) (*Padded[B], PaddedBackprop[B], error) {
	if l.weight == nil {
		return nil, nil, ErrUninitialized
	}
	steps, batch, err := timeBatch(l.Name(), x, l.nI)
	if err != nil {
		return nil, nil, err
	}

	w := l.weight.Tensor()
	flat := x.Data.Reshape(steps*batch, l.nI)
	out := flat.MatMul(w.Transpose()).Add(l.bias.Tensor().Reshape(1, l.nO))
	maskInactive(out.Data(), x.SizeAtT, batch, l.nO)

	y := &Padded[B]{Data: out.Reshape(steps, batch, l.nO), SizeAtT: x.SizeAtT}

	backprop := func(dY *Padded[B]) (*Padded[B], error) {
		dSteps, dBatch, err := timeBatch(l.Name(), dY, l.nO)
		if err != nil {
			return nil, err
		}
		if dSteps != steps || dBatch != batch {
			return nil, shapeErrorf("%s: gradient batch [%d, %d] does not match forward [%d, %d]",
				l.Name(), dSteps, dBatch, steps, batch)
		}

		dOut := dY.Data.Reshape(steps*batch, l.nO)
		maskInactive(dOut.Data(), dY.SizeAtT, batch, l.nO)

		l.weight.AccumulateGrad(dOut.Transpose().MatMul(flat))
		l.bias.AccumulateGrad(dOut.SumDim(0, false))

		dX := dOut.MatMul(w)
		return &Padded[B]{Data: dX.Reshape(steps, batch, l.nI), SizeAtT: dY.SizeAtT}, nil
	}

	return y, backprop, nil
}

// Parameters returns [weight, bias], or nothing before initialization.
func (l *Linear[B]) Parameters() []*Parameter[B] {
	if l.weight == nil {
		return nil
	}
	return []*Parameter[B]{l.weight, l.bias}
}

// Weight returns the weight parameter.
func (l *Linear[B]) Weight() *Parameter[B] {
	return l.weight
}

// Bias returns the bias parameter.
func (l *Linear[B]) Bias() *Parameter[B] {
	return l.bias
}

// InFeatures returns the input size (0 while unknown).
func (l *Linear[B]) InFeatures() int {
	return l.nI
}

// OutFeatures returns the output size (0 while unknown).
func (l *Linear[B]) OutFeatures() int {
	return l.nO
}
