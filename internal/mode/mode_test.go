package mode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-musicfox/govorbis/internal/bitpack"
	"github.com/go-musicfox/govorbis/internal/codebook"
	"github.com/go-musicfox/govorbis/internal/floor"
	"github.com/go-musicfox/govorbis/internal/mapping"
	"github.com/go-musicfox/govorbis/internal/mdct"
	"github.com/go-musicfox/govorbis/internal/residue"
	"github.com/go-musicfox/govorbis/internal/vorbistest"
)

func newSilentConfig(t *testing.T) *Config {
	var f floor.Floor1
	// zero partition classes, multiplier 1, rangeBits 3 (block size 8)
	var w vorbistest.Writer
	w.WriteBits(0, 5)
	w.WriteBits(0, 2)
	w.WriteBits(3, 4)
	r := bitpack.New(w.Bytes())
	require.NoError(t, f.Init(r))

	return &Config{
		Channels:  1,
		Block0:    8,
		Block1:    8,
		Modes:     []Mode{{BlockFlag: 0, Mapping: 0}},
		Mappings:  []mapping.Mapping{{Submaps: []mapping.Submap{{Floor: 0, Residue: 0}}, Mux: []uint8{0}}},
		Floors:    []floor.Floor{&f},
		Residues:  []residue.Residue{&residue.Residue0{}},
		Codebooks: make([]codebook.Codebook, 1),
		Windows:   mdct.NewWindows(8, 8),
		Lookup0:   mdct.NewLookup(8),
		Lookup1:   mdct.NewLookup(8),
	}
}

func TestDecodeSilentPacket(t *testing.T) {
	cfg := newSilentConfig(t)
	scratch := NewScratch(1, 8)

	var w vorbistest.Writer
	w.WriteBit(false) // packet type bit
	w.WriteBit(false) // floor1 nonzero flag: no energy
	r := bitpack.New(w.Bytes())

	result, err := cfg.Decode(r, scratch, false, false)
	require.NoError(t, err)
	assert.Equal(t, 8, result.BlockSize)
	assert.False(t, result.LongWindow)
	for _, v := range result.Raw[0] {
		assert.Equal(t, float32(0), v)
	}
}

func TestDecodeRejectsHeaderPacket(t *testing.T) {
	cfg := newSilentConfig(t)
	scratch := NewScratch(1, 8)

	var w vorbistest.Writer
	w.WriteBit(true) // packet type bit set: not an audio packet
	r := bitpack.New(w.Bytes())

	_, err := cfg.Decode(r, scratch, false, false)
	assert.Error(t, err)
}

func TestSampleCount(t *testing.T) {
	cfg := newSilentConfig(t)
	var w vorbistest.Writer
	w.WriteBit(false)
	r := bitpack.New(w.Bytes())
	n, err := cfg.SampleCount(r)
	require.NoError(t, err)
	assert.Equal(t, 8, n)
}
