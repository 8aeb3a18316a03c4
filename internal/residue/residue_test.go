package residue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-musicfox/govorbis/internal/bitpack"
	"github.com/go-musicfox/govorbis/internal/codebook"
	"github.com/go-musicfox/govorbis/internal/vorbistest"
)

// dim1ScalarBook builds a dimension-1, 2-entry, lookup-0 codebook usable
// only for DecodeScalar (a classifying book).
func dim1ScalarBook(t *testing.T) codebook.Codebook {
	var w vorbistest.Writer
	w.WriteBits(0x564342, 24)
	w.WriteBits(1, 16)
	w.WriteBits(2, 24)
	w.WriteBit(false)
	w.WriteBit(false)
	w.WriteBits(0, 5)
	w.WriteBits(0, 5)
	w.WriteBits(0, 4) // lookup type 0
	r := bitpack.New(w.Bytes())
	var c codebook.Codebook
	require.NoError(t, c.Init(r))
	return c
}

// dim1VectorBook builds a dimension-1, 2-entry codebook with lookup type 1
// and values {0, 1}, usable for DecodeVector.
func dim1VectorBook(t *testing.T) codebook.Codebook {
	var w vorbistest.Writer
	w.WriteBits(0x564342, 24)
	w.WriteBits(1, 16)
	w.WriteBits(2, 24)
	w.WriteBit(false)
	w.WriteBit(false)
	w.WriteBits(0, 5)
	w.WriteBits(0, 5)
	w.WriteBits(1, 4) // lookup type 1
	w.WriteBits(0, 32)
	delta := uint32(1<<20) | (uint32(768) << 21)
	w.WriteBits(uint64(delta), 32)
	w.WriteBits(3, 4)
	w.WriteBit(false)
	w.WriteBits(0, 4)
	w.WriteBits(1, 4)
	r := bitpack.New(w.Bytes())
	var c codebook.Codebook
	require.NoError(t, c.Init(r))
	return c
}

func TestResidue0Decode(t *testing.T) {
	classBook := dim1ScalarBook(t)
	dataBook := dim1VectorBook(t)
	books := []codebook.Codebook{classBook, dataBook}

	x := &Residue0{config: config{
		begin: 0, end: 2, partitionSize: 2,
		classifications: 1, classbook: 0,
		cascade: []uint8{1},
		books:   [][8]int16{{1, -1, -1, -1, -1, -1, -1, -1}},
	}}

	var w vorbistest.Writer
	w.WriteBit(false) // classbook codeword: entry 0 (length 1)
	w.WriteBit(false) // data book codeword: entry 0 -> value 0
	w.WriteBit(true)  // data book codeword: entry 1 -> value 1
	r := bitpack.New(w.Bytes())

	out := [][]float32{{0, 0}}
	x.Decode(r, []bool{false}, 2, books, out)
	assert.Equal(t, float32(0), out[0][0])
	assert.Equal(t, float32(1), out[0][1])
}

func TestResidue1Decode(t *testing.T) {
	classBook := dim1ScalarBook(t)
	dataBook := dim1VectorBook(t)
	books := []codebook.Codebook{classBook, dataBook}

	x := &Residue1{config: config{
		begin: 0, end: 2, partitionSize: 2,
		classifications: 1, classbook: 0,
		cascade: []uint8{1},
		books:   [][8]int16{{1, -1, -1, -1, -1, -1, -1, -1}},
	}}

	var w vorbistest.Writer
	w.WriteBit(false)
	w.WriteBit(true)
	w.WriteBit(false)
	r := bitpack.New(w.Bytes())

	out := [][]float32{{0, 0}}
	x.Decode(r, []bool{false}, 2, books, out)
	assert.Equal(t, float32(1), out[0][0])
	assert.Equal(t, float32(0), out[0][1])
}

func TestResidue2Decode(t *testing.T) {
	classBook := dim1ScalarBook(t)
	dataBook := dim1VectorBook(t)
	books := []codebook.Codebook{classBook, dataBook}

	x := &Residue2{Residue0: &Residue0{config: config{
		begin: 0, end: 4, partitionSize: 4,
		classifications: 1, classbook: 0,
		cascade: []uint8{1},
		books:   [][8]int16{{1, -1, -1, -1, -1, -1, -1, -1}},
	}}}

	var w vorbistest.Writer
	w.WriteBit(false) // classification codeword
	w.WriteBit(false) // flat[0] -> 0
	w.WriteBit(true)  // flat[1] -> 1
	w.WriteBit(false) // flat[2] -> 0
	w.WriteBit(true)  // flat[3] -> 1
	r := bitpack.New(w.Bytes())

	out := [][]float32{{0, 0}, {0, 0}}
	x.Decode(r, []bool{false, false}, 2, books, out)
	// flat index 0 -> ch0 pos0, 1 -> ch1 pos0, 2 -> ch0 pos1, 3 -> ch1 pos1
	assert.Equal(t, float32(0), out[0][0])
	assert.Equal(t, float32(1), out[1][0])
	assert.Equal(t, float32(0), out[0][1])
	assert.Equal(t, float32(1), out[1][1])
}

func TestNew(t *testing.T) {
	r0, err := New(0)
	require.NoError(t, err)
	_, ok := r0.(*Residue0)
	assert.True(t, ok)

	r2, err := New(2)
	require.NoError(t, err)
	_, ok = r2.(*Residue2)
	assert.True(t, ok)

	_, err = New(3)
	assert.Error(t, err)
}
