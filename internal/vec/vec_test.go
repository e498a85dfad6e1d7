package vec

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloat32ViewRoundTrip(t *testing.T) {
	src := []float32{1.5, -2.25, 3.0, 0.0}
	b := Bytes(src)
	require.Len(t, b, 16)

	view, err := Float32View(b, 4)
	require.NoError(t, err)
	assert.Equal(t, src, view)

	// The view aliases the original storage.
	view[0] = 42
	assert.Equal(t, float32(42), src[0])
}

func TestFloat32ViewShortBuffer(t *testing.T) {
	b := make([]byte, 7)
	_, err := Float32View(b, 2)
	require.Error(t, err)
}

func TestFloat32ViewInvalidCount(t *testing.T) {
	b := make([]byte, 16)
	_, err := Float32View(b, 0)
	require.Error(t, err)
	_, err = Float32View(b, -1)
	require.Error(t, err)
}

func TestBytesEmpty(t *testing.T) {
	assert.Nil(t, Bytes(nil))
	assert.Nil(t, Bytes([]float32{}))
}

func TestUniformRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	v := Uniform(rng, 1000)
	require.Len(t, v, 1000)
	for i, x := range v {
		if x < -1 || x >= 1 {
			t.Fatalf("Uniform[%d] = %v outside [-1, 1)", i, x)
		}
	}
}

func TestUniformDeterministic(t *testing.T) {
	a := Uniform(rand.New(rand.NewSource(7)), 64)
	b := Uniform(rand.New(rand.NewSource(7)), 64)
	assert.Equal(t, a, b)
}
