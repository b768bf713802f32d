// Package optim implements optimizers for born-seq layers.
//
// Layers accumulate parameter gradients when their backprop closures run;
// an optimizer reads those gradients through Parameter.Grad and updates the
// parameter tensors in place.
//
// Example usage:
//
//	optimizer := optim.NewSGD(model.Parameters(), optim.SGDConfig{
//	    LR:       0.05,
//	    Momentum: 0.9,
//	}, backend)
//
//	for step := range steps {
//	    ys, backprop, _ := model.Forward(xs, true)
//	    _, dYs, _ := nn.SequenceMSE(ys, targets)
//	    _, _ = backprop(dYs)
//
//	    optimizer.Step()
//	    optimizer.ZeroGrad()
//	}
package optim

import (
	"github.com/pkg/errors"

	"github.com/born-ml/born-seq/internal/nn"
	"github.com/born-ml/born-seq/internal/tensor"
)

// Optimizer is the interface shared by all optimizers.
type Optimizer interface {
	// Step updates every parameter that has a gradient. Parameters without
	// one did not take part in the backward pass and are left alone.
	Step()

	// ZeroGrad clears the gradients of all parameters.
	ZeroGrad()

	// GetLR returns the current learning rate.
	GetLR() float32
}

// Config is the configuration shared by New.
type Config struct {
	LR       float32 // Learning rate (0 selects the optimizer default)
	Momentum float32 // SGD only
}

// New creates the optimizer registered under name ("sgd" or "adam").
func New[B tensor.Backend](name string, params []*nn.Parameter[B], config Config, backend B) (Optimizer, error) {
	switch name {
	case "sgd":
		return NewSGD(params, SGDConfig{LR: config.LR, Momentum: config.Momentum}, backend), nil
	case "adam":
		return NewAdam(params, AdamConfig{LR: config.LR}, backend), nil
	default:
		return nil, errors.Errorf("unknown optimizer %q", name)
	}
}

// gradient returns the parameter's accumulated gradient, or nil.
func gradient[B tensor.Backend](param *nn.Parameter[B]) *tensor.Tensor[float32, B] {
	if param == nil {
		return nil
	}
	return param.Grad()
}
