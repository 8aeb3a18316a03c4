// Package residue decodes Vorbis residue types 0, 1, and 2: the
// per-partition, per-classification vector-quantized spectral content
// added into the channel buffers after the floor curve is applied
// (spec.md §4.5).
//
// Grounded on the teacher's vendored github.com/jfreymuth/vorbis/residue.go,
// which implements all three types inline via a residueType switch. Here
// the shared partition/classword/pass walk is factored into config.walk so
// Residue0 and Residue1 differ only in how a decoded vector is placed, and
// Residue2 is built by composition: it owns a Residue0 and supplies its own
// placement function that flattens all channels into one virtual channel
// before redistributing, per spec.md §9 Design Notes.
package residue

import (
	"github.com/pkg/errors"

	"github.com/go-musicfox/govorbis/internal/bitpack"
	"github.com/go-musicfox/govorbis/internal/codebook"
)

// Residue is the shared interface of Residue0, Residue1, and Residue2.
type Residue interface {
	Init(r *bitpack.Reader) error
	Decode(r *bitpack.Reader, doNotDecode []bool, n uint32, books []codebook.Codebook, out [][]float32)
}

// New constructs the concrete residue variant for a setup header's
// residue_type field (0, 1, or 2), per spec.md §4.5.
func New(residueType uint16) (Residue, error) {
	switch residueType {
	case 0:
		return &Residue0{}, nil
	case 1:
		return &Residue1{}, nil
	case 2:
		return &Residue2{Residue0: &Residue0{}}, nil
	default:
		return nil, errors.Errorf("residue: unknown type %d", residueType)
	}
}

// config is the residue setup common to all three types: partition range,
// classification book, and per-classification, per-pass book selection.
type config struct {
	begin, end      uint32
	partitionSize   uint32
	classifications uint8
	classbook       uint8
	cascade         []uint8
	books           [][8]int16
}

// init reads the shared residue header fields (spec.md §4.5, §3), starting
// right after the residue_type field the header package has already
// consumed to pick the concrete variant.
func (c *config) init(r *bitpack.Reader) error {
	c.begin = r.ReadU32(24)
	c.end = r.ReadU32(24)
	c.partitionSize = r.ReadU32(24) + 1
	c.classifications = r.ReadU8(6) + 1
	c.classbook = r.ReadU8(8)

	c.cascade = make([]uint8, c.classifications)
	for i := range c.cascade {
		low := r.ReadU8(3)
		var high uint8
		if r.ReadBool() {
			high = r.ReadU8(5)
		}
		c.cascade[i] = high*8 + low
	}

	c.books = make([][8]int16, c.classifications)
	for i := range c.books {
		for pass := 0; pass < 8; pass++ {
			if c.cascade[i]&(1<<uint(pass)) != 0 {
				c.books[i][pass] = int16(r.ReadU8(8))
			} else {
				c.books[i][pass] = -1
			}
		}
	}
	return nil
}

// apply places one decoded book vector at partition (j, offset) into out.
// Residue0/Residue1 supply stride/consecutive placement; Residue2 supplies
// flattened cross-channel placement.
type apply func(book *codebook.Codebook, r *bitpack.Reader, j int, offset uint32, out [][]float32)

// walk runs the shared partition/classword/8-pass walk common to all three
// residue types (spec.md §4.5), invoking place at each (channel,
// partition, pass) whose cascade bit selects a book for that pass.
func (c *config) walk(r *bitpack.Reader, doNotDecode []bool, n uint32, books []codebook.Codebook, out [][]float32, place apply) {
	ch := uint32(len(doNotDecode))
	begin, end := c.begin, c.end
	if begin > n {
		begin = n
	}
	if end > n {
		end = n
	}
	if end <= begin {
		return
	}

	classbook := &books[c.classbook]
	classWordsPerCodeword := classbook.Dimension
	nToRead := end - begin
	partitionsToRead := nToRead / c.partitionSize
	if partitionsToRead == 0 {
		return
	}

	cs := partitionsToRead + classWordsPerCodeword
	classifications := make([]uint32, ch*cs)
	for pass := 0; pass < 8; pass++ {
		var partitionCount uint32
		for partitionCount < partitionsToRead {
			if pass == 0 {
				for j := uint32(0); j < ch; j++ {
					if doNotDecode[j] {
						continue
					}
					temp := uint32(classbook.DecodeScalar(r))
					for i := classWordsPerCodeword; i > 0; i-- {
						classifications[j*cs+(i-1)+partitionCount] = temp % uint32(c.classifications)
						temp /= uint32(c.classifications)
					}
				}
			}
			for classword := uint32(0); classword < classWordsPerCodeword && partitionCount < partitionsToRead; classword++ {
				for j := uint32(0); j < ch; j++ {
					if doNotDecode[j] {
						continue
					}
					vqclass := classifications[j*cs+partitionCount]
					vqbook := c.books[vqclass][pass]
					if vqbook == -1 {
						continue
					}
					book := &books[vqbook]
					offset := begin + partitionCount*c.partitionSize
					place(book, r, int(j), offset, out)
				}
				partitionCount++
			}
		}
	}
}

// Residue0 decodes vectors into non-interleaved positions: within a
// partition, component k of the i-th vector lands at offset+i+k*step,
// where step is partitionSize divided by the VQ book's dimension
// (spec.md §4.5).
type Residue0 struct{ config }

func (x *Residue0) Init(r *bitpack.Reader) error { return x.config.init(r) }

func (x *Residue0) Decode(r *bitpack.Reader, doNotDecode []bool, n uint32, books []codebook.Codebook, out [][]float32) {
	x.config.walk(r, doNotDecode, n, books, out, placeStrided(x.partitionSize))
}

func placeStrided(partitionSize uint32) apply {
	return func(book *codebook.Codebook, r *bitpack.Reader, j int, offset uint32, out [][]float32) {
		step := partitionSize / book.Dimension
		for i := uint32(0); i < step; i++ {
			tmp := book.DecodeVector(r)
			if tmp == nil {
				return
			}
			for k, v := range tmp {
				out[j][offset+i+uint32(k)*step] += v
			}
		}
	}
}

// Residue1 decodes vectors into consecutive positions: stride 1
// (spec.md §4.5).
type Residue1 struct{ config }

func (x *Residue1) Init(r *bitpack.Reader) error { return x.config.init(r) }

func (x *Residue1) Decode(r *bitpack.Reader, doNotDecode []bool, n uint32, books []codebook.Codebook, out [][]float32) {
	x.config.walk(r, doNotDecode, n, books, out, placeConsecutive(x.partitionSize))
}

func placeConsecutive(partitionSize uint32) apply {
	return func(book *codebook.Codebook, r *bitpack.Reader, j int, offset uint32, out [][]float32) {
		var i uint32
		for i < partitionSize {
			tmp := book.DecodeVector(r)
			if tmp == nil {
				return
			}
			for _, v := range tmp {
				out[j][offset+i] += v
				i++
			}
		}
	}
}

// Residue2 owns a Residue0 for its shared config and partition walk, and
// reshapes the output buffer into one virtual channel of length
// C x n (n being the per-channel spectrum length), distributing decoded samples back across the real
// channels by (index % C, index / C) (spec.md §4.5, §9 Design Notes).
type Residue2 struct{ *Residue0 }

func (x *Residue2) Init(r *bitpack.Reader) error { return x.Residue0.Init(r) }

func (x *Residue2) Decode(r *bitpack.Reader, doNotDecode []bool, n uint32, books []codebook.Codebook, out [][]float32) {
	ch := uint32(len(doNotDecode))
	if ch == 0 {
		return
	}
	decodeAny := false
	for _, skip := range doNotDecode {
		if !skip {
			decodeAny = true
			break
		}
	}
	if !decodeAny {
		return
	}

	flatN := n * ch
	flatSkip := []bool{false}
	partitionSize := x.partitionSize
	x.Residue0.config.walk(r, flatSkip, flatN, books, out, placeFlattened(partitionSize, ch))
}

func placeFlattened(partitionSize uint32, ch uint32) apply {
	return func(book *codebook.Codebook, r *bitpack.Reader, _ int, offset uint32, out [][]float32) {
		var i uint32
		for i < partitionSize {
			tmp := book.DecodeVector(r)
			if tmp == nil {
				return
			}
			for _, v := range tmp {
				idx := offset + i
				out[idx%ch][idx/ch] += v
				i++
			}
		}
	}
}
