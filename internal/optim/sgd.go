package optim

import (
	"github.com/born-ml/born-seq/internal/nn"
	"github.com/born-ml/born-seq/internal/tensor"
)

// SGD implements Stochastic Gradient Descent with optional momentum.
//
// Update rule without momentum:
//
//	param = param - lr * gradient
//
// Update rule with momentum:
//
//	velocity = momentum * velocity + gradient
//	param = param - lr * velocity
type SGD[B tensor.Backend] struct {
	params     []*nn.Parameter[B]
	lr         float32
	momentum   float32
	velocities map[*nn.Parameter[B]]*tensor.Tensor[float32, B]
	backend    B
}

// SGDConfig holds configuration for SGD optimizer.
type SGDConfig struct {
	LR       float32 // Learning rate (default: 0.01)
	Momentum float32 // Momentum factor (default: 0.0, range: [0, 1))
}

// NewSGD creates a new SGD optimizer.
func NewSGD[B tensor.Backend](params []*nn.Parameter[B], config SGDConfig, backend B) *SGD[B] {
	if config.LR == 0 {
		config.LR = 0.01
	}

	return &SGD[B]{
		params:     params,
		lr:         config.LR,
		momentum:   config.Momentum,
		velocities: make(map[*nn.Parameter[B]]*tensor.Tensor[float32, B]),
		backend:    backend,
	}
}

// Step performs a single optimization step.
func (s *SGD[B]) Step() {
	for _, param := range s.params {
		grad := gradient(param)
		if grad == nil {
			continue
		}

		update := grad
		if s.momentum != 0 {
			update = s.velocity(param, grad)
		}

		updated := param.Tensor().Sub(update.MulScalar(float64(s.lr)))
		copy(param.Tensor().Data(), updated.Data())
	}
}

// velocity advances and returns the momentum buffer of param.
func (s *SGD[B]) velocity(param *nn.Parameter[B], grad *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	v, exists := s.velocities[param]
	if !exists {
		v = tensor.Zeros[float32](param.Tensor().Shape(), s.backend)
		s.velocities[param] = v
	}

	next := v.MulScalar(float64(s.momentum)).Add(grad)
	copy(v.Data(), next.Data())
	return v
}

// ZeroGrad clears gradients for all parameters.
func (s *SGD[B]) ZeroGrad() {
	for _, param := range s.params {
		param.ZeroGrad()
	}
}

// GetLR returns the current learning rate.
func (s *SGD[B]) GetLR() float32 {
	return s.lr
}

// SetLR updates the learning rate.
func (s *SGD[B]) SetLR(lr float32) {
	s.lr = lr
}
