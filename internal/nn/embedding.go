package nn

import (
	"math/rand"

	"github.com/pkg/errors"

	"github.com/born-ml/born-seq/internal/tensor"
)

// Embedding is a lookup table that maps token ids to dense vectors.
//
// Unlike the padded layers it works on lists: each id list becomes one
// [len, EmbedDim] sequence, ready to be fed to a list layer such as a
// PaddedAdapter.
//
// Example:
//
//	embed := nn.NewEmbedding(256, 32, backend)
//	xs, backprop, err := embed.Forward([][]int32{{1, 2, 3}, {4}})
//	// xs[0]: [3, 32], xs[1]: [1, 32]
type Embedding[B tensor.Backend] struct {
	Weight   *Parameter[B] // [NumEmbed, EmbedDim]
	NumEmbed int
	EmbedDim int
	backend  B
}

// NewEmbedding creates an embedding table with weights drawn from N(0, 0.1).
func NewEmbedding[B tensor.Backend](numEmbeddings, embeddingDim int, backend B) *Embedding[B] {
	return newEmbedding(numEmbeddings, embeddingDim, nil, backend)
}

// NewEmbeddingWithRand is NewEmbedding with an explicit random source.
func NewEmbeddingWithRand[B tensor.Backend](numEmbeddings, embeddingDim int, rng *rand.Rand, backend B) *Embedding[B] {
	return newEmbedding(numEmbeddings, embeddingDim, rng, backend)
}

//nolint:gosec // G404: math/rand is appropriate for ML weight initialization
func newEmbedding[B tensor.Backend](numEmbeddings, embeddingDim int, rng *rand.Rand, backend B) *Embedding[B] {
	norm := rand.NormFloat64
	if rng != nil {
		norm = rng.NormFloat64
	}

	weight := tensor.Zeros[float32](tensor.Shape{numEmbeddings, embeddingDim}, backend)
	data := weight.Data()
	for i := range data {
		data[i] = float32(0.1 * norm())
	}

	return &Embedding[B]{
		Weight:   NewParameter("embedding.weight", weight),
		NumEmbed: numEmbeddings,
		EmbedDim: embeddingDim,
		backend:  backend,
	}
}

// Forward looks up every id list. The returned closure scatter-adds the
// sequence gradients into the weight gradient; it returns no input gradient
// since ids are not differentiable.
func (e *Embedding[B]) Forward(ids [][]int32) ([]Seq[B], func(dXs []Seq[B]) error, error) {
	table := e.Weight.Tensor().Data()
	out := make([]Seq[B], len(ids))
	for i, seq := range ids {
		x := tensor.Zeros[float32](tensor.Shape{len(seq), e.EmbedDim}, e.backend)
		rows := x.Data()
		for t, id := range seq {
			if id < 0 || int(id) >= e.NumEmbed {
				return nil, nil, errors.Errorf("embedding: id %d at [%d][%d] out of range [0, %d)", id, i, t, e.NumEmbed)
			}
			copy(rows[t*e.EmbedDim:(t+1)*e.EmbedDim], table[int(id)*e.EmbedDim:])
		}
		out[i] = x
	}

	backprop := func(dXs []Seq[B]) error {
		if len(dXs) != len(ids) {
			return shapeErrorf("embedding: %d gradients for %d sequences", len(dXs), len(ids))
		}
		dW := tensor.Zeros[float32](tensor.Shape{e.NumEmbed, e.EmbedDim}, e.backend)
		grad := dW.Data()
		for i, dX := range dXs {
			want := tensor.Shape{len(ids[i]), e.EmbedDim}
			if !dX.Shape().Equal(want) {
				return shapeErrorf("embedding: gradient %d has shape %v, expected %v", i, dX.Shape(), want)
			}
			rows := dX.Data()
			for t, id := range ids[i] {
				dst := grad[int(id)*e.EmbedDim : (int(id)+1)*e.EmbedDim]
				for k, v := range rows[t*e.EmbedDim : (t+1)*e.EmbedDim] {
					dst[k] += v
				}
			}
		}
		e.Weight.AccumulateGrad(dW)
		return nil
	}

	return out, backprop, nil
}

// Parameters returns the embedding table.
func (e *Embedding[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{e.Weight}
}
