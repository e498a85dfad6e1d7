// Package vec provides host-side float32 vector helpers: typed views over
// raw byte buffers and synthetic vector generation for benchmarking.
package vec

import (
	"fmt"
	"math/rand"
	"unsafe"
)

// Float32View interprets b as a slice of n float32 values.
// Unlike a raw pointer cast, the byte length is validated first.
func Float32View(b []byte, n int) ([]float32, error) {
	if n <= 0 {
		return nil, fmt.Errorf("vec: invalid element count %d", n)
	}
	if len(b) < n*4 {
		return nil, fmt.Errorf("vec: buffer too short: need %d bytes for %d float32s, have %d", n*4, n, len(b))
	}
	//nolint:gosec // unsafe.Slice for zero-copy conversion, bounds checked above
	return unsafe.Slice((*float32)(unsafe.Pointer(&b[0])), n), nil
}

// Bytes interprets v as its underlying byte representation.
// The returned slice aliases v; it is valid as long as v is.
func Bytes(v []float32) []byte {
	if len(v) == 0 {
		return nil
	}
	//nolint:gosec // unsafe.Slice for zero-copy conversion, length derived from v
	return unsafe.Slice((*byte)(unsafe.Pointer(&v[0])), len(v)*4)
}

// Uniform returns a vector of n float32 values drawn uniformly from [-1, 1).
func Uniform(rng *rand.Rand, n int) []float32 {
	v := make([]float32, n)
	for i := range v {
		v[i] = rng.Float32()*2 - 1
	}
	return v
}
