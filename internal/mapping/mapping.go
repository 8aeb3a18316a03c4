// Package mapping binds floors and residues to channels and applies
// square-polar channel coupling (spec.md §4.6).
//
// Grounded on the teacher's vendored
// github.com/jfreymuth/vorbis/setup.go (mapping parsing) and decode.go
// (decodeFloors/decodeResidue/inverseCoupling), generalized to operate
// against this module's floor.Floor/residue.Residue interfaces instead of
// the teacher's package-private concrete types.
package mapping

import (
	"github.com/pkg/errors"

	"github.com/go-musicfox/govorbis/internal/bitpack"
	"github.com/go-musicfox/govorbis/internal/codebook"
	"github.com/go-musicfox/govorbis/internal/floor"
	"github.com/go-musicfox/govorbis/internal/residue"
)

// Submap names one floor and one residue configuration.
type Submap struct {
	Floor, Residue uint8
}

// Mapping wires floors/residues to channels and lists coupling pairs, per
// spec.md §3/§4.6.
type Mapping struct {
	CouplingSteps uint16
	Magnitude     []uint8
	Angle         []uint8
	Mux           []uint8
	Submaps       []Submap
}

// Init reads a mapping from the setup header. channels is the stream's
// channel count, needed to size Mux and bound the coupling indices.
func (m *Mapping) Init(r *bitpack.Reader, channels int) error {
	if r.ReadU32(16) != 0 {
		return errors.New("mapping: unknown mapping type")
	}
	if r.ReadBool() {
		m.Submaps = make([]Submap, r.ReadU8(4)+1)
	} else {
		m.Submaps = make([]Submap, 1)
	}
	if r.ReadBool() {
		m.CouplingSteps = uint16(r.ReadU32(8)) + 1
		m.Magnitude = make([]uint8, m.CouplingSteps)
		m.Angle = make([]uint8, m.CouplingSteps)
		width := codebook.Ilog(channels - 1)
		for i := range m.Magnitude {
			m.Magnitude[i] = r.ReadU8(width)
			m.Angle[i] = r.ReadU8(width)
			if int(m.Magnitude[i]) >= channels || int(m.Angle[i]) >= channels || m.Magnitude[i] == m.Angle[i] {
				return errors.New("mapping: invalid coupling channel index")
			}
		}
	}
	if r.ReadU8(2) != 0 {
		return errors.New("mapping: reserved bits set")
	}
	m.Mux = make([]uint8, channels)
	if len(m.Submaps) > 1 {
		for i := range m.Mux {
			m.Mux[i] = r.ReadU8(4)
		}
	}
	for i := range m.Submaps {
		r.ReadU8(8) // unused time-domain placeholder, always the sole configured value
		m.Submaps[i].Floor = r.ReadU8(8)
		m.Submaps[i].Residue = r.ReadU8(8)
	}
	if r.Short() {
		return errors.New("mapping: truncated header")
	}
	return nil
}

// ChannelFloorData pairs a channel's decoded floor value with its owning
// Floor and a "no residue" flag (true when the floor carries no energy).
type ChannelFloorData struct {
	Floor     floor.Floor
	Data      interface{}
	NoResidue bool
}

// DecodeFloors unpacks every channel's floor, then propagates "has energy"
// across coupling pairs so that if either member of a pair carries
// residue, both are decoded (spec.md §4.6 steps 1-2).
func DecodeFloors(r *bitpack.Reader, floors []floor.Floor, m *Mapping, books []codebook.Codebook, n uint32, out []ChannelFloorData) {
	for ch := range out {
		fl := floors[m.Submaps[m.Mux[ch]].Floor]
		data := fl.Unpack(r, books, n)
		out[ch] = ChannelFloorData{fl, data, data == nil}
	}
	for i := 0; i < int(m.CouplingSteps); i++ {
		if !out[m.Magnitude[i]].NoResidue || !out[m.Angle[i]].NoResidue {
			out[m.Magnitude[i]].NoResidue = false
			out[m.Angle[i]].NoResidue = false
		}
	}
}

// DecodeResidue runs each submap's residue decoder over the channels
// assigned to it (spec.md §4.6 step 2/§4.5).
func DecodeResidue(r *bitpack.Reader, out [][]float32, m *Mapping, residues []residue.Residue, floors []ChannelFloorData, books []codebook.Codebook, n uint32) {
	for i := range m.Submaps {
		var doNotDecode []bool
		var tmp [][]float32
		for j := range m.Mux {
			if m.Mux[j] == uint8(i) {
				doNotDecode = append(doNotDecode, floors[j].NoResidue)
				tmp = append(tmp, out[j])
			}
		}
		residues[m.Submaps[i].Residue].Decode(r, doNotDecode, n, books, tmp)
	}
}

// InverseCoupling undoes square-polar coupling in place, per spec.md
// §4.6 step 3: reconstructs the two channels (magnitude, angle) of every
// coupling pair from their decoded (M, A) representation.
func InverseCoupling(m *Mapping, residueVectors [][]float32) {
	for i := int(m.CouplingSteps); i > 0; i-- {
		magnitudeVector := residueVectors[m.Magnitude[i-1]]
		angleVector := residueVectors[m.Angle[i-1]]
		for j := range magnitudeVector {
			mag := magnitudeVector[j]
			ang := angleVector[j]
			if mag > 0 {
				if ang > 0 {
					ang = mag - ang
				} else {
					mag, ang = mag+ang, mag
				}
			} else {
				if ang > 0 {
					ang = mag + ang
				} else {
					mag, ang = mag-ang, mag
				}
			}
			magnitudeVector[j] = mag
			angleVector[j] = ang
		}
	}
}

// ApplyFloor multiplies each channel's floor curve pointwise into its
// residue spectrum, zeroing channels with no floor data (spec.md §4.6
// step 4).
func ApplyFloor(floors []ChannelFloorData, residueVectors [][]float32) {
	for ch := range residueVectors {
		if floors[ch].Data != nil {
			floors[ch].Floor.Apply(residueVectors[ch], floors[ch].Data)
		} else {
			for i := range residueVectors[ch] {
				residueVectors[ch][i] = 0
			}
		}
	}
}
