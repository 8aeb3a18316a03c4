package bitpack

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeLSB packs (value, width) pairs into a byte buffer using the same
// LSB-first-within-byte convention the Reader consumes, independently of
// the Reader implementation, so the round-trip test has an oracle.
func writeLSB(fields [][2]uint64) []byte {
	var bitLen uint64
	for _, f := range fields {
		bitLen += f[1]
	}
	buf := make([]byte, (bitLen+7)/8)
	var bitPos uint64
	for _, f := range fields {
		value, width := f[0], f[1]
		for i := uint64(0); i < width; i++ {
			bit := (value >> i) & 1
			if bit != 0 {
				buf[bitPos/8] |= 1 << (bitPos % 8)
			}
			bitPos++
		}
	}
	return buf
}

func TestReaderRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	var fields [][2]uint64
	for i := 0; i < 500; i++ {
		width := uint64(rng.Intn(33)) // 0..32 bits
		var value uint64
		if width > 0 {
			if width == 64 {
				value = rng.Uint64()
			} else {
				value = rng.Uint64() & ((1 << width) - 1)
			}
		}
		fields = append(fields, [2]uint64{value, width})
	}

	buf := writeLSB(fields)
	r := New(buf)

	var totalWidth uint64
	for _, f := range fields {
		got := r.ReadBits(uint(f[1]))
		assert.Equal(t, f[0], got, "width %d", f[1])
		totalWidth += f[1]
	}
	assert.False(t, r.Short())
	assert.Equal(t, totalWidth, r.BitsRead())
}

func TestReaderWide64(t *testing.T) {
	buf := writeLSB([][2]uint64{{0xDEADBEEFCAFEBABE, 64}})
	r := New(buf)
	require.Equal(t, uint64(0xDEADBEEFCAFEBABE), r.ReadBits(64))
}

func TestReaderShortRead(t *testing.T) {
	buf := []byte{0xFF}
	r := New(buf)
	r.ReadBits(8)
	assert.False(t, r.Short())
	v := r.ReadBits(4)
	assert.Equal(t, uint64(0), v)
	assert.True(t, r.Short())
}

func TestReaderSkipAndPeek(t *testing.T) {
	buf := writeLSB([][2]uint64{{5, 3}, {9, 4}, {1, 1}})
	r := New(buf)
	r.SkipBits(3)
	v, ok := r.PeekBits(4)
	require.True(t, ok)
	assert.Equal(t, uint64(9), v)
	// peek must not advance the cursor
	assert.Equal(t, uint64(9), r.ReadBits(4))
	assert.Equal(t, uint64(1), r.ReadBits(1))
}

func TestReaderReset(t *testing.T) {
	buf := writeLSB([][2]uint64{{7, 3}, {2, 2}})
	r := New(buf)
	r.ReadBits(3)
	r.Reset()
	assert.Equal(t, uint64(0), r.BitsRead())
	assert.Equal(t, uint64(7), r.ReadBits(3))
}
