// Package mode selects a packet's block size and window shape and drives
// the floor/residue/coupling/IMDCT pipeline for that packet (spec.md
// §4.8). It stops short of overlap-add: the stream decoder in pkg/vorbis
// owns the previous-block tail and combines it with the windowed samples
// this package returns.
//
// Grounded on the teacher's vendored github.com/jfreymuth/vorbis/decode.go
// decodePacket, split so the floor/residue/coupling/IMDCT/window portion
// (this package) is separate from the overlap-add state machine
// (spec.md §4.9), which the teacher bundles into one method.
package mode

import (
	"github.com/pkg/errors"

	"github.com/go-musicfox/govorbis/internal/bitpack"
	"github.com/go-musicfox/govorbis/internal/codebook"
	"github.com/go-musicfox/govorbis/internal/floor"
	"github.com/go-musicfox/govorbis/internal/mapping"
	"github.com/go-musicfox/govorbis/internal/mdct"
	"github.com/go-musicfox/govorbis/internal/residue"
)

// Mode is a packet-level selection of block size and mapping (spec.md §3).
type Mode struct {
	BlockFlag uint8
	Mapping   uint8
}

// Config is the full set of setup-header tables and precomputed transform
// state a packet decode needs. It is immutable once the setup header has
// been parsed.
type Config struct {
	Channels  int
	Block0    int
	Block1    int
	Modes     []Mode
	Mappings  []mapping.Mapping
	Floors    []floor.Floor
	Residues  []residue.Residue
	Codebooks []codebook.Codebook
	Windows   *mdct.Windows
	Lookup0   *mdct.Lookup
	Lookup1   *mdct.Lookup
}

func (c *Config) modeFieldWidth() uint { return codebook.Ilog(len(c.Modes) - 1) }

// Scratch holds the per-packet buffers reused across calls to Decode to
// avoid per-packet heap allocation (spec.md §9 Design Notes).
type Scratch struct {
	floorData []mapping.ChannelFloorData
	residue   [][]float32
	raw       [][]float32
}

// NewScratch allocates a Scratch sized for channels channels and a block1
// of the given size (the largest buffer any packet can need).
func NewScratch(channels, block1 int) *Scratch {
	s := &Scratch{
		floorData: make([]mapping.ChannelFloorData, channels),
		residue:   make([][]float32, channels),
		raw:       make([][]float32, channels),
	}
	for ch := 0; ch < channels; ch++ {
		s.residue[ch] = make([]float32, block1/2)
		s.raw[ch] = make([]float32, block1)
	}
	return s
}

// Result is the outcome of decoding one audio packet: windowed
// time-domain samples per channel (length BlockSize, valid until the next
// Decode call on the same Scratch) plus the neighbor-window shape bits
// the stream decoder needs to perform overlap-add (spec.md §4.8 step 7).
type Result struct {
	Raw        [][]float32
	BlockSize  int
	LongWindow bool
	WindowPrev bool
	WindowNext bool
}

// Decode runs the full per-packet synthesis pipeline: mode/window
// selection, floor unpack, residue decode, coupling propagation and
// inverse coupling, floor application, inverse MDCT, and windowing
// (spec.md §4.8 steps 1-6). prevLong/nextLong do not affect the result:
// a long block takes its neighbor window shapes from the packet's own
// window flags, and a short block always uses the short shapes.
func (c *Config) Decode(r *bitpack.Reader, scratch *Scratch, prevLong, nextLong bool) (Result, error) {
	if r.ReadBool() {
		return Result{}, errors.New("mode: packet type bit set on audio packet")
	}
	modeNumber := r.ReadU8(c.modeFieldWidth())
	if int(modeNumber) >= len(c.Modes) {
		return Result{}, errors.Errorf("mode: invalid mode index %d", modeNumber)
	}
	m := c.Modes[modeNumber]
	longWindow := m.BlockFlag == 1
	blockSize := c.Block0
	lookup := c.Lookup0
	if longWindow {
		blockSize = c.Block1
		lookup = c.Lookup1
	}
	spectrumSize := uint32(blockSize / 2)

	windowPrev, windowNext := false, false
	if longWindow {
		windowPrev = r.ReadBool()
		windowNext = r.ReadBool()
	}
	if r.Short() {
		return Result{}, errors.New("mode: truncated packet header")
	}

	if int(m.Mapping) >= len(c.Mappings) {
		return Result{}, errors.Errorf("mode: invalid mapping index %d", m.Mapping)
	}
	mp := &c.Mappings[m.Mapping]

	for ch := range scratch.residue {
		scratch.residue[ch] = scratch.residue[ch][:spectrumSize]
		for i := range scratch.residue[ch] {
			scratch.residue[ch][i] = 0
		}
	}

	mapping.DecodeFloors(r, c.Floors, mp, c.Codebooks, spectrumSize, scratch.floorData)
	mapping.DecodeResidue(r, scratch.residue, mp, c.Residues, scratch.floorData, c.Codebooks, spectrumSize)
	mapping.InverseCoupling(mp, scratch.residue)
	mapping.ApplyFloor(scratch.floorData, scratch.residue)

	for ch := range scratch.raw {
		scratch.raw[ch] = scratch.raw[ch][:blockSize]
		mdct.Inverse(lookup, scratch.residue[ch], scratch.raw[ch])
	}

	effectivePrevLong, effectiveNextLong := prevLong, nextLong
	if longWindow {
		if !windowPrev {
			effectivePrevLong = false
		} else {
			effectivePrevLong = true
		}
		if !windowNext {
			effectiveNextLong = false
		} else {
			effectiveNextLong = true
		}
	} else {
		effectivePrevLong, effectiveNextLong = false, false
	}
	c.Windows.Apply(blockSize, effectivePrevLong, longWindow, effectiveNextLong, scratch.raw)

	return Result{
		Raw:        scratch.raw,
		BlockSize:  blockSize,
		LongWindow: longWindow,
		WindowPrev: windowPrev,
		WindowNext: windowNext,
	}, nil
}

// SampleCount reads only the bits needed to determine a packet's block
// size, for seek/granule accounting without running the full synthesis
// pipeline (spec.md §4.8 mode.get_sample_count).
func (c *Config) SampleCount(r *bitpack.Reader) (blockSize int, err error) {
	if r.ReadBool() {
		return 0, errors.New("mode: packet type bit set on audio packet")
	}
	modeNumber := r.ReadU8(c.modeFieldWidth())
	if int(modeNumber) >= len(c.Modes) {
		return 0, errors.Errorf("mode: invalid mode index %d", modeNumber)
	}
	m := c.Modes[modeNumber]
	longWindow := m.BlockFlag == 1
	blockSize = c.Block0
	if longWindow {
		blockSize = c.Block1
		r.SkipBits(2) // windowPrev, windowNext
	}
	if r.Short() {
		return 0, errors.New("mode: truncated packet header")
	}
	return blockSize, nil
}
