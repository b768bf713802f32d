package nn

import (
	"math"
	"math/rand"

	"github.com/born-ml/born-seq/internal/tensor"
)

// Xavier (Glorot) initialization for weights.
//
// Draws from U(-sqrt(6/(fan_in + fan_out)), sqrt(6/(fan_in + fan_out))).
// A nil rng uses the global math/rand source.
func Xavier[B tensor.Backend](fanIn, fanOut int, shape tensor.Shape, rng *rand.Rand, backend B) *tensor.Tensor[float32, B] {
	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))
	return tensor.Uniform[float32](shape, -bound, bound, rng, backend)
}

// Zeros creates a zero-filled float32 tensor, used for biases.
func Zeros[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return tensor.Zeros[float32](shape, backend)
}

// dims holds a layer's output and input sizes; zero means "infer at
// Initialize".
type dims struct {
	nO, nI int
}

// infer fills unknown sizes from example batches. Known sizes must agree
// with the examples.
func (d *dims) infer(name string, x, y exampleFeatures) error {
	if n, ok := x.size(); ok {
		if d.nI != 0 && d.nI != n {
			return shapeErrorf("%s: input has %d features, layer expects %d", name, n, d.nI)
		}
		d.nI = n
	}
	if n, ok := y.size(); ok {
		if d.nO != 0 && d.nO != n {
			return shapeErrorf("%s: output has %d features, layer produces %d", name, n, d.nO)
		}
		d.nO = n
	}
	return nil
}

func (d *dims) known() bool {
	return d.nO > 0 && d.nI > 0
}

// exampleFeatures is the last-axis size of an example batch, if it has one.
type exampleFeatures struct {
	shape tensor.Shape
}

func featuresOf[B tensor.Backend](p *Padded[B]) exampleFeatures {
	if p == nil || p.Data == nil {
		return exampleFeatures{}
	}
	return exampleFeatures{shape: p.Data.Shape()}
}

func (e exampleFeatures) size() (int, bool) {
	if len(e.shape) < 3 {
		return 0, false
	}
	return e.shape[len(e.shape)-1], true
}
