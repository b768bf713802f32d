package tensor

// RawUnpad inverts a SquareSequences call: it takes an array of shape
// [maxLen, batch, G...] and returns one [len_i, G...] tensor per original
// sequence, in the original order.
type RawUnpad func(padded *RawTensor) ([]*RawTensor, error)

// Backend defines the operations layers need from a compute backend.
//
// Math operations panic on invalid arguments, like indexing a slice out of
// range; layers validate their inputs before calling them. SquareSequences
// works on caller-provided batches and reports problems as errors.
type Backend interface {
	// Element-wise binary operations with NumPy broadcasting.
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor

	// MulScalar multiplies every element by scalar.
	MulScalar(x *RawTensor, scalar float64) *RawTensor

	// MatMul multiplies two 2D tensors: [M, K] @ [K, N] -> [M, N].
	MatMul(a, b *RawTensor) *RawTensor

	// Shape operations. Transpose with no axes reverses the dimensions.
	Reshape(t *RawTensor, newShape Shape) *RawTensor
	Transpose(t *RawTensor, axes ...int) *RawTensor

	// Tanh applies the hyperbolic tangent element-wise.
	Tanh(x *RawTensor) *RawTensor

	// SumDim sums along dim.
	SumDim(x *RawTensor, dim int, keepDim bool) *RawTensor

	// SquareSequences pads a batch of variable-length sequences into a
	// time-major array [maxLen, batch, F...] with the sequences ordered by
	// decreasing length. It also returns the number of sequences still
	// active at each timestep and the inverse transform.
	SquareSequences(seqs []*RawTensor) (*RawTensor, []int, RawUnpad, error)

	// Metadata
	Name() string
	Device() Device
}
