// Package huffman builds the canonical prefix-free codes Vorbis codebooks
// use to map bitstreams to entry indices.
//
// Grounded on the teacher's vendored github.com/jfreymuth/vorbis/huffman.go:
// the same top-down recursive placement strategy, generalized with an
// explicit completeness check (spec.md requires reporting an under-full
// tree as usable only when it has exactly one entry, and a tree that is
// neither full nor under-full as an error) rather than silently producing
// a tree with unreachable slots.
package huffman

import "errors"

// ErrIncomplete is returned when a code-length table is neither a complete
// prefix code nor the degenerate single-entry case spec.md allows.
var ErrIncomplete = errors.New("huffman: code is incomplete")

// Code is a decoded prefix-free tree represented as an implicit binary
// tree in a flat array, following jfreymuth's encoding: each internal node
// occupies a pair of uint32 slots (children for bit value 0 and 1); a leaf
// is marked by an odd value whose entry index is value>>1.
type Code []uint32

// Lookup walks the tree one bit at a time, returning the decoded entry.
// next must supply the next raw bit (0 or 1, LSB-first per the bitpack
// convention); it is expected to be bound to a bitpack.Reader.
func (c Code) Lookup(next func() uint32) uint32 {
	i := uint32(0)
	for i&1 == 0 {
		i = c[i+next()]
	}
	return i >> 1
}

// entryCount returns the number of used entries, i.e. those with a
// non-zero code length.
func entryCount(lengths []uint8) int {
	n := 0
	for _, l := range lengths {
		if l > 0 {
			n++
		}
	}
	return n
}

// Build constructs a canonical Huffman Code from a table of per-entry code
// lengths (0 meaning "entry unused"). It returns ErrIncomplete if the
// lengths do not form a valid prefix code per spec.md's invariant: the sum
// of 2^-length over used entries must not exceed 1, and a sum strictly
// less than 1 (an under-full tree) is only acceptable when exactly one
// entry is used.
func Build(lengths []uint8) (Code, error) {
	used := entryCount(lengths)
	if used == 0 {
		return nil, ErrIncomplete
	}

	size := uint32(used-1) * 2
	if size < 2 {
		size = 2
	}
	b := &builder{
		code:      make(Code, size),
		minLength: make([]uint8, size/2),
	}
	for entry, l := range lengths {
		if l == 0 {
			continue
		}
		if !b.put(0, uint32(entry), l-1) {
			return nil, ErrIncomplete
		}
	}

	if used == 1 {
		return b.code, nil
	}
	if !isFull(b.code, 0) || !isFull(b.code, 1) {
		return nil, ErrIncomplete
	}
	return b.code, nil
}

// isFull reports whether every leaf slot reachable from index is occupied,
// i.e. the tree has no dangling branch left unassigned.
func isFull(code Code, index uint32) bool {
	if index >= uint32(len(code)) {
		return false
	}
	v := code[index]
	if v == 0 {
		return false
	}
	if v&1 == 1 {
		return true
	}
	return isFull(code, v) && isFull(code, v+1)
}

type builder struct {
	code      Code
	minLength []uint8
}

func (b *builder) put(index, entry uint32, length uint8) bool {
	if int(index/2) >= len(b.minLength) {
		return false
	}
	if length < b.minLength[index/2] {
		return false
	}
	if length == 0 {
		if b.code[index] == 0 {
			b.code[index] = entry*2 + 1
			return true
		}
		if b.code[index+1] == 0 {
			b.code[index+1] = entry*2 + 1
			b.minLength[index/2] = 1
			return true
		}
		b.minLength[index/2] = 1
		return false
	}
	if b.code[index]&1 == 0 {
		if b.code[index] == 0 {
			b.code[index] = b.findEmpty(index + 2)
		}
		if b.put(b.code[index], entry, length-1) {
			return true
		}
	}
	if b.code[index+1]&1 == 0 {
		if b.code[index+1] == 0 {
			b.code[index+1] = b.findEmpty(index + 2)
		}
		if b.put(b.code[index+1], entry, length-1) {
			return true
		}
	}
	b.minLength[index/2] = length + 1
	return false
}

func (b *builder) findEmpty(index uint32) uint32 {
	for int(index) < len(b.code) && b.code[index] != 0 {
		index += 2
	}
	if int(index) >= len(b.code) {
		grown := make(Code, index+2)
		copy(grown, b.code)
		b.code = grown
		grownMin := make([]uint8, len(b.code)/2)
		copy(grownMin, b.minLength)
		b.minLength = grownMin
	}
	return index
}
