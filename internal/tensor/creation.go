package tensor

import (
	"math/rand"
)

// Zeros creates a tensor filled with zeros.
//
// Example:
//
//	backend := cpu.New()
//	t := tensor.Zeros[float32](Shape{3, 4}, backend)
func Zeros[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return New[T, B](MustNewRaw(shape, DataTypeOf[T](), b.Device()), b)
}

// Full creates a tensor filled with value.
func Full[T DType, B Backend](shape Shape, value T, b B) *Tensor[T, B] {
	t := Zeros[T, B](shape, b)
	data := t.Data()
	for i := range data {
		data[i] = value
	}
	return t
}

// Ones creates a tensor of ones. Only numeric types are supported.
func Ones[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	var one T
	switch p := any(&one).(type) {
	case *float32:
		*p = 1
	case *float64:
		*p = 1
	case *int32:
		*p = 1
	case *int64:
		*p = 1
	case *uint8:
		*p = 1
	default:
		panic("Ones only supports numeric types")
	}
	return Full[T, B](shape, one, b)
}

// Uniform creates a float tensor with values drawn uniformly from [low, high).
// A nil rng uses the global math/rand source.
//
//nolint:gosec // G404: ML weight initialization does not need crypto/rand
func Uniform[T DType, B Backend](shape Shape, low, high float64, rng *rand.Rand, b B) *Tensor[T, B] {
	next := rand.Float64
	if rng != nil {
		next = rng.Float64
	}

	t := Zeros[T, B](shape, b)
	switch data := any(t.Data()).(type) {
	case []float32:
		for i := range data {
			data[i] = float32(low + (high-low)*next())
		}
	case []float64:
		for i := range data {
			data[i] = low + (high-low)*next()
		}
	default:
		panic("Uniform only supports float32 and float64 types")
	}
	return t
}
