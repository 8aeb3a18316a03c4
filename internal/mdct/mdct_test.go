package mdct

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInverseProducesFiniteSamples(t *testing.T) {
	const n = 64
	lookup := NewLookup(n)
	in := make([]float32, n/2)
	for i := range in {
		in[i] = float32(math.Sin(float64(i) * 0.3))
	}
	out := make([]float32, n)
	Inverse(lookup, in, out)
	for i, v := range out {
		assert.False(t, math.IsNaN(float64(v)), "NaN at %d", i)
		assert.False(t, math.IsInf(float64(v), 0), "Inf at %d", i)
	}
}

func TestInverseOfZeroIsZero(t *testing.T) {
	const n = 32
	lookup := NewLookup(n)
	in := make([]float32, n/2)
	out := make([]float32, n)
	Inverse(lookup, in, out)
	for _, v := range out {
		assert.Equal(t, float32(0), v)
	}
}

func TestMakeWindowShape(t *testing.T) {
	w := makeWindow(8)
	require := assert.New(t)
	require.Len(w, 8)
	for _, v := range w {
		require.True(v >= 0 && v <= 1)
	}
	// symmetric around the center
	for i := 0; i < 4; i++ {
		assert.InDelta(t, w[i], w[7-i], 1e-6)
	}
}

func TestWindowsApplyZeroesOutsideRegion(t *testing.T) {
	w := NewWindows(8, 16)
	samples := [][]float32{make([]float32, 16)}
	for i := range samples[0] {
		samples[0][i] = 1
	}
	w.Apply(16, false, true, false, samples)
	// with a short prev/next neighbor, the outer regions fade to/from zero
	assert.Equal(t, float32(0), samples[0][0])
}
