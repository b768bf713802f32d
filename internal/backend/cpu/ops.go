package cpu

import (
	"github.com/born-ml/born-seq/internal/tensor"
)

type float interface {
	~float32 | ~float64
}

// elementwise applies f to equally shaped operands.
func elementwise[E float](out, a, b []E, f func(x, y E) E) {
	for i := range out {
		out[i] = f(a[i], b[i])
	}
}

// broadcastBinary applies f with NumPy broadcasting. Operand strides are
// zeroed on broadcast axes so every output index maps back into a and b.
func broadcastBinary[E float](out, a, b []E, outShape, aShape, bShape tensor.Shape, f func(x, y E) E) {
	rank := len(outShape)
	aStrides := broadcastStrides(aShape, rank)
	bStrides := broadcastStrides(bShape, rank)
	outStrides := outShape.ComputeStrides()

	for i := range out {
		rem := i
		aOff, bOff := 0, 0
		for d := 0; d < rank; d++ {
			idx := rem / outStrides[d]
			rem %= outStrides[d]
			aOff += idx * aStrides[d]
			bOff += idx * bStrides[d]
		}
		out[i] = f(a[aOff], b[bOff])
	}
}

// broadcastStrides left-pads shape to rank and returns strides that are zero
// on size-1 axes.
func broadcastStrides(shape tensor.Shape, rank int) []int {
	padded := make(tensor.Shape, rank)
	for i := range padded {
		padded[i] = 1
	}
	copy(padded[rank-len(shape):], shape)

	strides := padded.ComputeStrides()
	for i, dim := range padded {
		if dim == 1 {
			strides[i] = 0
		}
	}
	return strides
}
