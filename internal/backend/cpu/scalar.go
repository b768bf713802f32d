package cpu

import (
	"fmt"

	"github.com/born-ml/born-seq/internal/tensor"
)

// MulScalar multiplies each element of the tensor by scalar.
func (cpu *CPUBackend) MulScalar(x *tensor.RawTensor, scalar float64) *tensor.RawTensor {
	result := tensor.MustNewRaw(x.Shape(), x.DType(), cpu.device)

	switch x.DType() {
	case tensor.Float32:
		dst, s := result.AsFloat32(), float32(scalar)
		for i, v := range x.AsFloat32() {
			dst[i] = v * s
		}
	case tensor.Float64:
		dst := result.AsFloat64()
		for i, v := range x.AsFloat64() {
			dst[i] = v * scalar
		}
	default:
		panic(fmt.Sprintf("mulScalar: unsupported dtype %v", x.DType()))
	}

	return result
}
