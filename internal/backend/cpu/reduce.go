package cpu

import (
	"fmt"

	"github.com/born-ml/born-seq/internal/tensor"
)

// SumDim sums tensor elements along the specified dimension.
//
// Parameters:
//   - dim: dimension to reduce (negative values count from the end)
//   - keepDim: keep the reduced dimension with size 1 instead of removing it
//
// Example:
//
//	x := tensor.Ones[float32](tensor.Shape{2, 3, 4}, backend)
//	y := backend.SumDim(x.Raw(), -1, true)  // shape: [2, 3, 1]
//	z := backend.SumDim(x.Raw(), 0, false)  // shape: [3, 4]
func (cpu *CPUBackend) SumDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	shape := x.Shape()
	ndim := len(shape)
	if dim < 0 {
		dim += ndim
	}
	if dim < 0 || dim >= ndim {
		panic(fmt.Sprintf("sumdim: dimension %d out of range for %dD tensor", dim, ndim))
	}

	outShape := make(tensor.Shape, 0, ndim)
	for i, d := range shape {
		switch {
		case i != dim:
			outShape = append(outShape, d)
		case keepDim:
			outShape = append(outShape, 1)
		}
	}

	result := tensor.MustNewRaw(outShape, x.DType(), cpu.device)

	// View x as [outer, dim, inner]; the result is [outer, inner].
	outer := shape[:dim].NumElements()
	inner := shape[dim+1:].NumElements()
	switch x.DType() {
	case tensor.Float32:
		sumDim(result.AsFloat32(), x.AsFloat32(), outer, shape[dim], inner)
	case tensor.Float64:
		sumDim(result.AsFloat64(), x.AsFloat64(), outer, shape[dim], inner)
	default:
		panic(fmt.Sprintf("sumdim: unsupported dtype %s", x.DType()))
	}

	return result
}

func sumDim[E float](dst, src []E, outer, size, inner int) {
	for o := 0; o < outer; o++ {
		for k := 0; k < size; k++ {
			row := src[(o*size+k)*inner : (o*size+k+1)*inner]
			acc := dst[o*inner : (o+1)*inner]
			for i, v := range row {
				acc[i] += v
			}
		}
	}
}
