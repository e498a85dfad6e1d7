// Package cpu implements the reference dot product used to cross-validate
// GPU results.
//
// The accumulation is a plain sequential loop in index order. This is
// deliberate: the GPU path writes per-element products and sums them on the
// host in the same order, so the two results stay comparable under a tight
// relative tolerance. A vectorized or reassociated sum would change the
// rounding and widen the gap for no benefit.
package cpu

// Dot returns the dot product of a and b, accumulated sequentially in
// index order. Caller must ensure len(a) == len(b).
func Dot(a, b []float32) float32 {
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// Sum returns the sequential sum of v in index order.
// This is the host-side reduction applied to the GPU's per-element products.
func Sum(v []float32) float32 {
	var sum float32
	for _, x := range v {
		sum += x
	}
	return sum
}
