package nn

import (
	"math/rand"

	"github.com/born-ml/born-seq/internal/tensor"
)

// RNN is an Elman recurrent layer with tanh activation over padded batches:
//
//	h_t = tanh(x_t @ Wx.T + h_{t-1} @ Wh.T + b)
//
// At timestep t only the first SizeAtT[t] columns are active. Because the
// batch is sorted by decreasing length those columns are a contiguous prefix,
// and a sequence's hidden state never depends on the other sequences.
// Padding positions output zero.
type RNN[B tensor.Backend] struct {
	dims
	inputWeight  *Parameter[B] // Wx [nO, nI]
	hiddenWeight *Parameter[B] // Wh [nO, nO]
	bias         *Parameter[B] // [nO]
	rng          *rand.Rand
	backend      B
}

// NewRNN creates an RNN with nO hidden units over nI input features. A zero
// size is inferred at Initialize.
func NewRNN[B tensor.Backend](nO, nI int, backend B) *RNN[B] {
	r := &RNN[B]{dims: dims{nO: nO, nI: nI}, backend: backend}
	if r.known() {
		r.allocate()
	}
	return r
}

// WithRand sets the random source used for weight initialization.
func (r *RNN[B]) WithRand(rng *rand.Rand) *RNN[B] {
	r.rng = rng
	return r
}

// Name returns "rnn".
func (r *RNN[B]) Name() string {
	return "rnn"
}

// Initialize infers missing sizes from x and y and allocates parameters.
func (r *RNN[B]) Initialize(x, y *Padded[B]) error {
	if err := r.infer(r.Name(), featuresOf(x), featuresOf(y)); err != nil {
		return err
	}
	if r.inputWeight == nil && r.known() {
		r.allocate()
	}
	return nil
}

func (r *RNN[B]) allocate() {
	r.inputWeight = NewParameter("input_weight", Xavier(r.nI, r.nO, tensor.Shape{r.nO, r.nI}, r.rng, r.backend))
	r.hiddenWeight = NewParameter("hidden_weight", Xavier(r.nO, r.nO, tensor.Shape{r.nO, r.nO}, r.rng, r.backend))
	r.bias = NewParameter("bias", Zeros(tensor.Shape{r.nO}, r.backend))
}

// Forward runs the recurrence over all timesteps.
func (r *RNN[B]) Forward(x *Padded[B], _ bool) (*Padded[B], PaddedBackprop[B], error) {
	if r.inputWeight == nil {
		return nil, nil, ErrUninitialized
	}
	steps, batch, err := timeBatch(r.Name(), x, r.nI)
	if err != nil {
		return nil, nil, err
	}

	wx := r.inputWeight.Tensor()
	wh := r.hiddenWeight.Tensor()
	wxT, whT := wx.Transpose(), wh.Transpose()
	b := r.bias.Tensor().Reshape(1, r.nO)
	sizeAtT := append([]int(nil), x.SizeAtT...)

	xs := x.Data.Data()
	out := tensor.Zeros[float32](tensor.Shape{steps, batch, r.nO}, r.backend)
	hs := out.Data()

	for t, n := range sizeAtT {
		if n == 0 {
			break
		}
		pre := fromRows(stepRows(xs, t, n, batch, r.nI), n, r.nI, r.backend).MatMul(wxT).Add(b)
		if t > 0 {
			hPrev := fromRows(stepRows(hs, t-1, n, batch, r.nO), n, r.nO, r.backend)
			pre = pre.Add(hPrev.MatMul(whT))
		}
		copy(stepRows(hs, t, n, batch, r.nO), pre.Tanh().Data())
	}

	y := &Padded[B]{Data: out, SizeAtT: x.SizeAtT}

	backprop := func(dY *Padded[B]) (*Padded[B], error) {
		dSteps, dBatch, err := timeBatch(r.Name(), dY, r.nO)
		if err != nil {
			return nil, err
		}
		if dSteps != steps || dBatch != batch {
			return nil, shapeErrorf("%s: gradient batch [%d, %d] does not match forward [%d, %d]",
				r.Name(), dSteps, dBatch, steps, batch)
		}

		dys := dY.Data.Data()
		dX := tensor.Zeros[float32](tensor.Shape{steps, batch, r.nI}, r.backend)
		dxs := dX.Data()

		dWx := tensor.Zeros[float32](tensor.Shape{r.nO, r.nI}, r.backend)
		dWh := tensor.Zeros[float32](tensor.Shape{r.nO, r.nO}, r.backend)
		db := tensor.Zeros[float32](tensor.Shape{r.nO}, r.backend)

		// carry holds dL/dh_t flowing back from timestep t+1.
		carry := make([]float32, batch*r.nO)
		for t := steps - 1; t >= 0; t-- {
			n := sizeAtT[t]
			if n == 0 {
				continue
			}

			h := stepRows(hs, t, n, batch, r.nO)
			dh := stepRows(dys, t, n, batch, r.nO)
			dPre := tensor.Zeros[float32](tensor.Shape{n, r.nO}, r.backend)
			dp := dPre.Data()
			for i := range dp {
				dp[i] = (dh[i] + carry[i]) * (1 - h[i]*h[i])
			}

			xt := fromRows(stepRows(xs, t, n, batch, r.nI), n, r.nI, r.backend)
			dPreT := dPre.Transpose()
			dWx = dWx.Add(dPreT.MatMul(xt))
			db = db.Add(dPre.SumDim(0, false))
			copy(stepRows(dxs, t, n, batch, r.nI), dPre.MatMul(wx).Data())

			clear(carry)
			if t > 0 {
				hPrev := fromRows(stepRows(hs, t-1, n, batch, r.nO), n, r.nO, r.backend)
				dWh = dWh.Add(dPreT.MatMul(hPrev))
				copy(carry, dPre.MatMul(wh).Data())
			}
		}

		r.inputWeight.AccumulateGrad(dWx)
		r.hiddenWeight.AccumulateGrad(dWh)
		r.bias.AccumulateGrad(db)

		return &Padded[B]{Data: dX, SizeAtT: dY.SizeAtT}, nil
	}

	return y, backprop, nil
}

// Parameters returns [input_weight, hidden_weight, bias], or nothing before
// initialization.
func (r *RNN[B]) Parameters() []*Parameter[B] {
	if r.inputWeight == nil {
		return nil
	}
	return []*Parameter[B]{r.inputWeight, r.hiddenWeight, r.bias}
}

// InFeatures returns the input size (0 while unknown).
func (r *RNN[B]) InFeatures() int {
	return r.nI
}

// OutFeatures returns the number of hidden units (0 while unknown).
func (r *RNN[B]) OutFeatures() int {
	return r.nO
}
