package floor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-musicfox/govorbis/internal/bitpack"
	"github.com/go-musicfox/govorbis/internal/codebook"
	"github.com/go-musicfox/govorbis/internal/vorbistest"
)

// dim1Lookup1Book builds a dimension-1, 2-entry codebook with lookup type 1
// and values {0, 1}, for use as a floor book in tests.
func dim1Lookup1Book(t *testing.T) codebook.Codebook {
	var w vorbistest.Writer
	w.WriteBits(0x564342, 24)
	w.WriteBits(1, 16) // dimension
	w.WriteBits(2, 24) // entries
	w.WriteBit(false)  // ordered
	w.WriteBit(false)  // sparse
	w.WriteBits(0, 5)  // length 1
	w.WriteBits(0, 5)  // length 1
	w.WriteBits(1, 4)  // lookup type 1
	w.WriteBits(0, 32) // minValue 0.0
	delta := uint32(1<<20) | (uint32(768) << 21)
	w.WriteBits(uint64(delta), 32) // deltaValue 1.0
	w.WriteBits(3, 4)              // valueBits-1 = 3 -> 4
	w.WriteBit(false)              // sequence_p
	w.WriteBits(0, 4)              // multiplicand[0] = 0
	w.WriteBits(1, 4)              // multiplicand[1] = 1

	r := bitpack.New(w.Bytes())
	var c codebook.Codebook
	require.NoError(t, c.Init(r))
	return c
}

func TestFloor0UnpackApply(t *testing.T) {
	book := dim1Lookup1Book(t)
	books := []codebook.Codebook{book}

	var w vorbistest.Writer
	w.WriteBits(5, 4) // amplitude, nonzero
	w.WriteBits(0, 1) // bookNumber = 0 (ilog(1) == 1 bit)
	w.WriteBits(1, 1) // codeword selecting entry 1 -> coefficient value 1

	f := Floor0{
		Order:           1,
		Rate:            100,
		BarkMapSize:     8,
		AmplitudeBits:   4,
		AmplitudeOffset: 10,
		Books:           []uint8{0},
	}

	r := bitpack.New(w.Bytes())
	data := f.Unpack(r, books, 8)
	require.NotNil(t, data)
	assert.False(t, r.Short())

	out := make([]float32, 8)
	for i := range out {
		out[i] = 1
	}
	f.Apply(out, data)
	for _, v := range out {
		assert.False(t, v < 0)
	}
}

func TestFloor0UnpackZeroAmplitude(t *testing.T) {
	var w vorbistest.Writer
	w.WriteBits(0, 4) // amplitude zero
	f := Floor0{AmplitudeBits: 4, Books: []uint8{0}}
	r := bitpack.New(w.Bytes())
	data := f.Unpack(r, nil, 8)
	assert.Nil(t, data)

	out := []float32{1, 1, 1}
	f.Apply(out, data)
	assert.Equal(t, []float32{0, 0, 0}, out)
}

func TestFloor1InitUnpackApply(t *testing.T) {
	var w vorbistest.Writer
	w.WriteBits(0, 5) // zero partition classes
	w.WriteBits(0, 3) // class 0 dimension-1 = 0 (Init always reads one class)
	w.WriteBits(0, 2) // class 0 subclassBits = 0, no masterbook
	w.WriteBits(0, 8) // class 0 subclass book, stored as book+1: 0 -> unused
	w.WriteBits(0, 2) // multiplier-1 = 0 -> multiplier 1
	w.WriteBits(8, 4) // rangeBits = 8

	var f Floor1
	r := bitpack.New(w.Bytes())
	require.NoError(t, f.Init(r))
	assert.Equal(t, []uint32{0, 256}, f.xList)

	var pw vorbistest.Writer
	pw.WriteBit(true)   // nonzero flag
	pw.WriteBits(10, 8) // Y[0]
	pw.WriteBits(40, 8) // Y[1]

	pr := bitpack.New(pw.Bytes())
	data := f.Unpack(pr, nil, 256)
	require.NotNil(t, data)
	assert.False(t, pr.Short())

	out := make([]float32, 256)
	for i := range out {
		out[i] = 1
	}
	f.Apply(out, data)
	assert.InDelta(t, InverseDBTable[10], out[0], 1e-9)
}

func TestFloor1UnpackZeroFlag(t *testing.T) {
	var w vorbistest.Writer
	w.WriteBit(false)
	r := bitpack.New(w.Bytes())
	var f Floor1
	data := f.Unpack(r, nil, 256)
	assert.Nil(t, data)
}
