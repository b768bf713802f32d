package cpu_test

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/born-seq/internal/backend/cpu"
	"github.com/born-ml/born-seq/internal/parallel"
	"github.com/born-ml/born-seq/internal/tensor"
)

// seq builds a [length, features] float32 sequence whose values encode
// (id, timestep, feature) so misplaced rows are easy to spot.
func seq(t *testing.T, backend *cpu.CPUBackend, id, length, features int) *tensor.RawTensor {
	t.Helper()
	data := make([]float32, length*features)
	for step := 0; step < length; step++ {
		for f := 0; f < features; f++ {
			data[step*features+f] = float32(id*100 + step*10 + f)
		}
	}
	x, err := tensor.FromSlice(data, tensor.Shape{length, features}, backend)
	require.NoError(t, err)
	return x.Raw()
}

func TestSquareSequences_Layout(t *testing.T) {
	backend := cpu.New()
	seqs := []*tensor.RawTensor{
		seq(t, backend, 1, 3, 4),
		seq(t, backend, 2, 1, 4),
		seq(t, backend, 3, 2, 4),
	}

	data, sizeAtT, _, err := backend.SquareSequences(seqs)
	require.NoError(t, err)

	assert.Equal(t, tensor.Shape{3, 3, 4}, data.Shape())
	if diff := cmp.Diff([]int{3, 2, 1}, sizeAtT); diff != "" {
		t.Errorf("sizeAtT mismatch (-want +got):\n%s", diff)
	}

	// Columns are ordered by decreasing length: seq 1 (len 3), seq 3 (len 2), seq 2 (len 1).
	values := data.AsFloat32()
	at := func(step, col, f int) float32 { return values[(step*3+col)*4+f] }
	assert.Equal(t, float32(100), at(0, 0, 0))
	assert.Equal(t, float32(300), at(0, 1, 0))
	assert.Equal(t, float32(200), at(0, 2, 0))
	assert.Equal(t, float32(123), at(2, 0, 3))
	assert.Equal(t, float32(312), at(1, 1, 2))

	// Padding is zero.
	assert.Equal(t, float32(0), at(1, 2, 0))
	assert.Equal(t, float32(0), at(2, 1, 3))
}

func TestSquareSequences_RoundTrip(t *testing.T) {
	backend := cpu.New()

	tests := []struct {
		name    string
		lengths []int
	}{
		{"mixed", []int{3, 1, 2}},
		{"already sorted", []int{5, 4, 1}},
		{"ascending", []int{1, 2, 3, 4}},
		{"ties", []int{2, 3, 2, 3}},
		{"single", []int{7}},
		{"with empty sequence", []int{2, 0, 1}},
		{"all empty", []int{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seqs := make([]*tensor.RawTensor, len(tt.lengths))
			for i, n := range tt.lengths {
				seqs[i] = seq(t, backend, i+1, n, 2)
			}

			data, sizeAtT, unpad, err := backend.SquareSequences(seqs)
			require.NoError(t, err)
			require.Len(t, sizeAtT, data.Shape()[0])
			for step := 1; step < len(sizeAtT); step++ {
				assert.LessOrEqual(t, sizeAtT[step], sizeAtT[step-1], "sizeAtT must be non-increasing")
			}

			out, err := unpad(data)
			require.NoError(t, err)
			require.Len(t, out, len(seqs))
			for i := range seqs {
				assert.Equal(t, seqs[i].Shape(), out[i].Shape(), "sequence %d", i)
				assert.Equal(t, seqs[i].AsFloat32(), out[i].AsFloat32(), "sequence %d", i)
			}
		})
	}
}

func TestSquareSequences_TiesKeepOrder(t *testing.T) {
	backend := cpu.New()
	seqs := []*tensor.RawTensor{
		seq(t, backend, 1, 2, 1),
		seq(t, backend, 2, 2, 1),
		seq(t, backend, 3, 2, 1),
	}

	data, _, _, err := backend.SquareSequences(seqs)
	require.NoError(t, err)
	assert.Equal(t, []float32{100, 200, 300, 110, 210, 310}, data.AsFloat32())
}

func TestSquareSequences_UnpadChangedFeatures(t *testing.T) {
	backend := cpu.New()
	seqs := []*tensor.RawTensor{
		seq(t, backend, 1, 1, 4),
		seq(t, backend, 2, 2, 4),
	}

	data, _, unpad, err := backend.SquareSequences(seqs)
	require.NoError(t, err)

	// An inner layer that maps 4 features to 2.
	projected, err := tensor.NewRaw(tensor.Shape{data.Shape()[0], data.Shape()[1], 2}, tensor.Float32, tensor.CPU)
	require.NoError(t, err)
	for i := range projected.AsFloat32() {
		projected.AsFloat32()[i] = float32(i)
	}

	out, err := unpad(projected)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, tensor.Shape{1, 2}, out[0].Shape())
	assert.Equal(t, tensor.Shape{2, 2}, out[1].Shape())
	// Sequence 2 is the longest, so it sits in column 0.
	assert.Equal(t, []float32{0, 1, 4, 5}, out[1].AsFloat32())
	assert.Equal(t, []float32{2, 3}, out[0].AsFloat32())
}

func TestSquareSequences_Empty(t *testing.T) {
	backend := cpu.New()

	data, sizeAtT, unpad, err := backend.SquareSequences(nil)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{0, 0}, data.Shape())
	assert.Empty(t, sizeAtT)

	out, err := unpad(data)
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestSquareSequences_OneDimensional(t *testing.T) {
	backend := cpu.New()
	a, err := tensor.FromSlice([]int32{1, 2}, tensor.Shape{2}, backend)
	require.NoError(t, err)
	b, err := tensor.FromSlice([]int32{3, 4, 5}, tensor.Shape{3}, backend)
	require.NoError(t, err)

	data, sizeAtT, unpad, err := backend.SquareSequences([]*tensor.RawTensor{a.Raw(), b.Raw()})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{3, 2}, data.Shape())
	assert.Equal(t, []int32{3, 1, 4, 2, 5, 0}, data.AsInt32())
	if diff := cmp.Diff([]int{2, 2, 1}, sizeAtT); diff != "" {
		t.Errorf("sizeAtT mismatch (-want +got):\n%s", diff)
	}

	out, err := unpad(data)
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 2}, out[0].AsInt32())
	assert.Equal(t, []int32{3, 4, 5}, out[1].AsInt32())
}

func TestSquareSequences_Errors(t *testing.T) {
	backend := cpu.New()
	scalar, err := tensor.NewRaw(tensor.Shape{}, tensor.Float32, tensor.CPU)
	require.NoError(t, err)
	f64, err := tensor.NewRaw(tensor.Shape{2, 4}, tensor.Float64, tensor.CPU)
	require.NoError(t, err)

	tests := []struct {
		name string
		seqs []*tensor.RawTensor
	}{
		{"feature mismatch", []*tensor.RawTensor{seq(t, backend, 1, 2, 4), seq(t, backend, 2, 2, 3)}},
		{"scalar item", []*tensor.RawTensor{seq(t, backend, 1, 2, 4), scalar}},
		{"dtype mismatch", []*tensor.RawTensor{seq(t, backend, 1, 2, 4), f64}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := backend.SquareSequences(tt.seqs)
			require.Error(t, err)
			assert.ErrorIs(t, err, tensor.ErrShapeMismatch)
		})
	}
}

func TestSquareSequences_UnpadRejectsWrongShape(t *testing.T) {
	backend := cpu.New()
	_, _, unpad, err := backend.SquareSequences([]*tensor.RawTensor{
		seq(t, backend, 1, 3, 2),
		seq(t, backend, 2, 1, 2),
	})
	require.NoError(t, err)

	for _, shape := range []tensor.Shape{{3}, {2, 2, 2}, {3, 3, 2}} {
		wrong, err := tensor.NewRaw(shape, tensor.Float32, tensor.CPU)
		require.NoError(t, err)
		_, err = unpad(wrong)
		assert.ErrorIs(t, err, tensor.ErrShapeMismatch, "shape %v", shape)
	}
}

func TestSquareSequences_ParallelRoundTrip(t *testing.T) {
	backend := cpu.New().WithParallel(parallel.Config{Enabled: true, NumWorkers: 4, MinChunkSize: 16})

	seqs := make([]*tensor.RawTensor, 300)
	for i := range seqs {
		seqs[i] = seq(t, backend, i, i%7, 3)
	}

	data, sizeAtT, unpad, err := backend.SquareSequences(seqs)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{6, 300, 3}, data.Shape())
	assert.True(t, slices.IsSortedFunc(sizeAtT, func(a, b int) int { return b - a }), "sizeAtT %v", sizeAtT)

	items, err := unpad(data)
	require.NoError(t, err)
	require.Len(t, items, len(seqs))
	for i, item := range items {
		assert.Equal(t, seqs[i].Shape(), item.Shape(), "item %d", i)
		assert.Equal(t, seqs[i].AsFloat32(), item.AsFloat32(), "item %d", i)
	}
}
