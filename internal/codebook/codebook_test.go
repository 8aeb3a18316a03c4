package codebook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-musicfox/govorbis/internal/bitpack"
	"github.com/go-musicfox/govorbis/internal/vorbistest"
)

// writeNoLookupHeader builds a minimal codebook header: dimension 1,
// entries 2, unordered, non-sparse, lengths {1, 1}, lookup type 0.
func writeNoLookupHeader() []byte {
	var w vorbistest.Writer
	w.WriteBits(magic, 24)
	w.WriteBits(1, 16) // dimension
	w.WriteBits(2, 24) // entries
	w.WriteBit(false)  // ordered
	w.WriteBit(false)  // sparse
	w.WriteBits(0, 5)  // entry 0 length-1 = 0 -> length 1
	w.WriteBits(0, 5)  // entry 1 length-1 = 0 -> length 1
	w.WriteBits(0, 4)  // lookup type 0
	return w.Bytes()
}

func TestCodebookInitNoLookup(t *testing.T) {
	data := writeNoLookupHeader()
	r := bitpack.New(data)
	var c Codebook
	require.NoError(t, c.Init(r))
	assert.EqualValues(t, 1, c.Dimension)
	assert.EqualValues(t, 2, c.Entries)
	assert.EqualValues(t, 0, c.LookupType())
}

func TestCodebookBadMagic(t *testing.T) {
	var w vorbistest.Writer
	w.WriteBits(0, 24)
	r := bitpack.New(w.Bytes())
	var c Codebook
	assert.Error(t, c.Init(r))
}

// writeLookup1Header builds dimension-2, 4-entry codebook with lookup
// type 1 (implicit VQ table), exercising float32Unpack and lookup1Values.
func writeLookup1Header() []byte {
	var w vorbistest.Writer
	w.WriteBits(magic, 24)
	w.WriteBits(2, 16) // dimension
	w.WriteBits(4, 24) // entries
	w.WriteBit(false)  // ordered
	w.WriteBit(false)  // sparse
	for i := 0; i < 4; i++ {
		w.WriteBits(1, 5) // length 2 for all entries (complete code: 4 entries of length 2)
	}
	w.WriteBits(1, 4) // lookup type 1

	// minimum value = 0.0 encoded in Vorbis float32 form: mantissa 0
	w.WriteBits(0, 32)
	// delta value = 1.0: need mantissa/exponent such that ldexp(mantissa,exp-788)=1
	// mantissa=1<<20 (0x100000), exponent such that ldexp(2^20, e-788)=1 => e-788=-20 => e=768
	delta := uint32(1<<20) | (uint32(768) << 21)
	w.WriteBits(uint64(delta), 32)
	w.WriteBits(3, 4) // valueBits-1 = 3 -> valueBits 4
	w.WriteBit(false) // sequence_p

	// lookup1Values(4, 2) = floor(4^(1/2)) = 2 multiplicands
	w.WriteBits(0, 4)
	w.WriteBits(1, 4)
	return w.Bytes()
}

func TestCodebookLookup1(t *testing.T) {
	data := writeLookup1Header()
	r := bitpack.New(data)
	var c Codebook
	require.NoError(t, c.Init(r))
	assert.EqualValues(t, 1, c.LookupType())
	// entry 0, dim 0 should be minValue (0) + multiplicand[0]*delta(1) = 0
	assert.InDelta(t, 0, c.Vector(0, 0), 1e-6)
}
