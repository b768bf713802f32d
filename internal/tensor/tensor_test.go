package tensor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/born-seq/internal/backend/cpu"
	"github.com/born-ml/born-seq/internal/tensor"
)

func TestShape(t *testing.T) {
	assert.Equal(t, 1, tensor.Shape{}.NumElements())
	assert.Equal(t, 24, tensor.Shape{2, 3, 4}.NumElements())
	assert.Equal(t, 0, tensor.Shape{0, 5}.NumElements())

	assert.NoError(t, tensor.Shape{0, 0}.Validate())
	assert.Error(t, tensor.Shape{2, -1}.Validate())

	assert.Equal(t, []int{12, 4, 1}, tensor.Shape{2, 3, 4}.ComputeStrides())
	assert.True(t, tensor.Shape{2, 3}.Equal(tensor.Shape{2, 3}))
	assert.False(t, tensor.Shape{2, 3}.Equal(tensor.Shape{3, 2}))
}

func TestBroadcastShapes(t *testing.T) {
	tests := []struct {
		a, b      tensor.Shape
		want      tensor.Shape
		broadcast bool
		wantErr   bool
	}{
		{a: tensor.Shape{3, 1}, b: tensor.Shape{3, 5}, want: tensor.Shape{3, 5}, broadcast: true},
		{a: tensor.Shape{5}, b: tensor.Shape{3, 5}, want: tensor.Shape{3, 5}, broadcast: true},
		{a: tensor.Shape{3, 5}, b: tensor.Shape{3, 5}, want: tensor.Shape{3, 5}},
		{a: tensor.Shape{3, 4}, b: tensor.Shape{3, 5}, wantErr: true},
	}

	for _, tt := range tests {
		got, broadcast, err := tensor.BroadcastShapes(tt.a, tt.b)
		if tt.wantErr {
			assert.ErrorIs(t, err, tensor.ErrShapeMismatch)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, tt.broadcast, broadcast)
	}
}

func TestTensor_Basics(t *testing.T) {
	backend := cpu.New()

	x, err := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, backend)
	require.NoError(t, err)
	assert.Equal(t, tensor.Float32, x.DType())
	assert.Equal(t, float32(6), x.At(1, 2))

	x.Set(60, 1, 2)
	assert.Equal(t, float32(60), x.Data()[5])

	c := x.Clone()
	c.Set(0, 0, 0)
	assert.Equal(t, float32(1), x.At(0, 0))

	assert.Panics(t, func() { x.At(2, 0) })
	assert.Equal(t, "Tensor[float32][2 3] on CPU", x.String())

	_, err = tensor.FromSlice([]float32{1, 2}, tensor.Shape{3}, backend)
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)
}

func TestTensor_Creation(t *testing.T) {
	backend := cpu.New()

	assert.Equal(t, []float64{1, 1, 1}, tensor.Ones[float64](tensor.Shape{3}, backend).Data())
	assert.Equal(t, []int32{7, 7}, tensor.Full[int32](tensor.Shape{2}, 7, backend).Data())
	assert.Empty(t, tensor.Zeros[float32](tensor.Shape{0, 4}, backend).Data())

	u := tensor.Uniform[float32](tensor.Shape{100}, -0.5, 0.5, nil, backend)
	for _, v := range u.Data() {
		assert.GreaterOrEqual(t, v, float32(-0.5))
		assert.Less(t, v, float32(0.5))
	}
}

func TestSquareSequences_Typed(t *testing.T) {
	backend := cpu.New()

	a, err := tensor.FromSlice([]float64{1, 2, 3, 4, 5, 6}, tensor.Shape{3, 2}, backend)
	require.NoError(t, err)
	b, err := tensor.FromSlice([]float64{7, 8}, tensor.Shape{1, 2}, backend)
	require.NoError(t, err)
	c, err := tensor.FromSlice([]float64{9, 10, 11, 12}, tensor.Shape{2, 2}, backend)
	require.NoError(t, err)
	seqs := []*tensor.Tensor[float64, *cpu.CPUBackend]{a, b, c}

	padded, unpad, err := tensor.SquareSequences(seqs, backend)
	require.NoError(t, err)
	assert.Equal(t, 3, padded.MaxLen())
	assert.Equal(t, 3, padded.BatchSize())
	assert.Equal(t, tensor.Shape{2}, padded.Features())
	assert.Equal(t, []int{3, 2, 1}, padded.SizeAtT)
	assert.Equal(t, []int{3, 2, 1}, padded.Lengths())

	out, err := unpad(padded.Data)
	require.NoError(t, err)
	require.Len(t, out, 3)
	for i := range seqs {
		assert.Equal(t, seqs[i].Shape(), out[i].Shape())
		assert.Equal(t, seqs[i].Data(), out[i].Data())
	}
}

func TestSquareSequences_TypedEmpty(t *testing.T) {
	backend := cpu.New()

	padded, unpad, err := tensor.SquareSequences[float64](nil, backend)
	require.NoError(t, err)
	assert.Equal(t, tensor.Float64, padded.Data.DType())
	assert.Equal(t, 0, padded.MaxLen())
	assert.Empty(t, padded.SizeAtT)

	out, err := unpad(padded.Data)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestSquareSequences_NilItem(t *testing.T) {
	backend := cpu.New()
	_, _, err := tensor.SquareSequences([]*tensor.Tensor[float32, *cpu.CPUBackend]{nil}, backend)
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)
}

func TestNewPadded(t *testing.T) {
	backend := cpu.New()
	data := tensor.Zeros[float32](tensor.Shape{3, 2, 4}, backend)

	p, err := tensor.NewPadded(data, []int{2, 2, 1})
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2}, p.Lengths())

	for _, sizeAtT := range [][]int{{2, 2}, {2, 3, 1}, {1, 2, 1}, {3, 2, 1}} {
		_, err := tensor.NewPadded(data, sizeAtT)
		assert.ErrorIs(t, err, tensor.ErrShapeMismatch, "sizeAtT %v", sizeAtT)
	}

	_, err = tensor.NewPadded(tensor.Zeros[float32](tensor.Shape{3}, backend), []int{1, 1, 1})
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)
}
