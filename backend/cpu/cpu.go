// Package cpu exposes the sequential reference dot product.
package cpu

import (
	internalcpu "github.com/born-ml/dotbench/internal/backend/cpu"
)

// Dot returns the dot product of a and b, accumulated sequentially in
// index order. Caller must ensure len(a) == len(b).
func Dot(a, b []float32) float32 {
	return internalcpu.Dot(a, b)
}
