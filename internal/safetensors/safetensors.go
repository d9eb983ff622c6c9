// Package safetensors encodes and decodes float32 tensors in the
// safetensors file format: an 8-byte little-endian header length, a JSON
// header mapping tensor names to dtype/shape/data offsets, then the raw
// little-endian payload.
package safetensors

import (
	"fmt"
	"math"
)

const dtypeF32 = "F32"

// Tensor is a named float32 tensor.
type Tensor struct {
	Name  string
	Shape []int64
	Data  []float32
}

type headerEntry struct {
	DType   string  `json:"dtype"`
	Shape   []int64 `json:"shape"`
	Offsets [2]int  `json:"data_offsets"`
}

// Find returns the tensor with the given name.
func Find(tensors []Tensor, name string) (Tensor, bool) {
	for _, t := range tensors {
		if t.Name == name {
			return t, true
		}
	}

	return Tensor{}, false
}

func shapeElementCount(shape []int64) (int64, error) {
	total := int64(1)

	for _, d := range shape {
		if d < 0 {
			return 0, fmt.Errorf("negative dimension %d", d)
		}

		if d == 0 {
			return 0, nil
		}

		if total > math.MaxInt64/d {
			return 0, fmt.Errorf("shape %v overflows element count", shape)
		}

		total *= d
	}

	return total, nil
}
