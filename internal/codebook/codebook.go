// Package codebook decodes Vorbis codebook headers (Huffman + vector
// quantization) per spec.md §3/§4.2.
//
// Grounded on the teacher's vendored github.com/jfreymuth/vorbis/codebook.go,
// generalized to: report -1 (not panic) on an exhausted bitstream mid
// codeword, as spec.md's DecodeScalar contract requires, and to expose
// Dimension/EntryCount/LookupType as named accessors for the floor/residue
// packages built on top of it.
package codebook

import (
	"math"

	"github.com/pkg/errors"

	"github.com/go-musicfox/govorbis/internal/bitpack"
	"github.com/go-musicfox/govorbis/internal/huffman"
)

// magic is the "BCV" sync pattern (0x564342) every codebook header opens
// with, read as three bytes per spec.md §4.2.
const magic = 0x564342

// Codebook is immutable after Init: dimension, entry count, lookup type,
// a prefix-free Huffman decoder, and (for lookup types 1/2) the expanded
// N*D VQ value table.
type Codebook struct {
	Dimension uint32
	Entries   uint32
	lookup    uint8 // 0 none, 1 implicit, 2 explicit
	code      huffman.Code
	values    []float32 // len == Entries*Dimension when lookup != 0
}

// LookupType returns 0 (none), 1 (implicit), or 2 (explicit).
func (c *Codebook) LookupType() uint8 { return c.lookup }

// Init parses a codebook header from r, per spec.md §4.2 steps 1-4.
func (c *Codebook) Init(r *bitpack.Reader) error {
	if r.ReadU32(24) != magic {
		return errors.New("codebook: bad sync pattern")
	}
	c.Dimension = r.ReadU32(16)
	c.Entries = r.ReadU32(24)

	lengths := make([]uint8, c.Entries)
	ordered := r.ReadBool()
	if !ordered {
		sparse := r.ReadBool()
		for i := range lengths {
			if !sparse || r.ReadBool() {
				lengths[i] = r.ReadU8(5) + 1
			}
		}
	} else {
		var current uint32
		length := r.ReadU8(5) + 1
		for current < c.Entries {
			num := r.ReadU32(ilog(int(c.Entries - current)))
			for i := current; i < current+num; i++ {
				lengths[i] = length
			}
			current += num
			length++
		}
	}
	if r.Short() {
		return errors.New("codebook: truncated length table")
	}

	code, err := huffman.Build(lengths)
	if err != nil {
		return errors.Wrap(err, "codebook: code lengths")
	}
	c.code = code

	c.lookup = r.ReadU8(4)
	if c.lookup == 0 {
		return nil
	}
	if c.lookup > 2 {
		return errors.Errorf("codebook: unknown lookup type %d", c.lookup)
	}

	minValue := float32Unpack(r.ReadU32(32))
	deltaValue := float32Unpack(r.ReadU32(32))
	valueBits := r.ReadU8(4) + 1
	sequenceP := r.ReadBool()

	var quantCount int
	if c.lookup == 1 {
		quantCount = lookup1Values(int(c.Entries), c.Dimension)
	} else {
		quantCount = int(c.Entries) * int(c.Dimension)
	}
	multiplicands := make([]uint32, quantCount)
	for i := range multiplicands {
		multiplicands[i] = r.ReadU32(uint(valueBits))
	}
	if r.Short() {
		return errors.New("codebook: truncated VQ table")
	}

	c.values = make([]float32, int(c.Entries)*int(c.Dimension))
	for entry := 0; entry < int(c.Entries); entry++ {
		base := entry * int(c.Dimension)
		last := float32(0)
		indexDivisor := 1
		for i := 0; i < int(c.Dimension); i++ {
			var mult uint32
			if c.lookup == 1 {
				mult = multiplicands[(entry/indexDivisor)%len(multiplicands)]
				indexDivisor *= len(multiplicands)
			} else {
				mult = multiplicands[base+i]
			}
			v := float32(mult)*deltaValue + minValue + last
			c.values[base+i] = v
			if sequenceP {
				last = v
			}
		}
	}
	return nil
}

// DecodeScalar walks the prefix tree and returns the decoded entry index,
// or -1 if the bitstream was exhausted mid codeword.
func (c *Codebook) DecodeScalar(r *bitpack.Reader) int32 {
	entry := c.code.Lookup(func() uint32 { return r.ReadBit() })
	if r.Short() {
		return -1
	}
	return int32(entry)
}

// DecodeVector decodes one codeword and returns its D-dimensional VQ
// vector as a slice over the codebook's internal value table, or nil if
// the bitstream was exhausted. The table is immutable, so the slice may be
// retained, but the caller must not mutate it.
func (c *Codebook) DecodeVector(r *bitpack.Reader) []float32 {
	entry := c.code.Lookup(func() uint32 { return r.ReadBit() })
	if r.Short() {
		return nil
	}
	idx := entry * c.Dimension
	return c.values[idx : idx+c.Dimension]
}

// Vector returns the dim-th component of entry's VQ vector.
func (c *Codebook) Vector(entry uint32, dim uint32) float32 {
	return c.values[entry*c.Dimension+dim]
}

func ilog(x int) uint {
	var r uint
	for x > 0 {
		r++
		x >>= 1
	}
	return r
}

func lookup1Values(entries int, dim uint32) int {
	return int(math.Floor(math.Pow(float64(entries), 1/float64(dim))))
}

// float32Unpack decodes the Vorbis 32-bit float encoding: 1 sign bit, 10
// exponent bits (offset by 788), 21 mantissa bits.
func float32Unpack(x uint32) float32 {
	mantissa := float64(x & 0x1fffff)
	if x&0x80000000 != 0 {
		mantissa = -mantissa
	}
	exponent := (x & 0x7fe00000) >> 21
	return float32(math.Ldexp(mantissa, int(exponent)-788))
}

// Ilog exposes ilog(x) = floor(log2(x))+1 for x>0, else 0, used by several
// other components (floor1 class widths, mode field width, residue
// partition counts) that share this primitive with the codebook header.
func Ilog(x int) uint { return ilog(x) }
