// Package floor implements Vorbis floor types 0 and 1: per-channel
// spectral envelopes unpacked from a packet and later rendered to a
// linear-magnitude curve multiplied into the residue spectrum.
//
// Floors are a closed two-variant tagged union (spec.md §9 Design Notes);
// Floor is the small vtable both variants implement.
package floor

import (
	"github.com/go-musicfox/govorbis/internal/bitpack"
	"github.com/go-musicfox/govorbis/internal/codebook"
)

// Floor is the shared interface of Floor0 and Floor1: Unpack decodes one
// channel's per-packet floor data (nil meaning "no energy, do not
// execute"); Apply renders that data into a linear-magnitude curve,
// multiplying it pointwise into out.
type Floor interface {
	Unpack(r *bitpack.Reader, books []codebook.Codebook, n uint32) interface{}
	Apply(out []float32, data interface{})
}
