// PacketProvider and Packet are the consumed collaborator interfaces of
// spec.md §6: the Ogg page parser lives outside this module, and is
// represented here only by the contract the stream decoder drives. Tests
// exercise these interfaces with an in-memory fake rather than a real Ogg
// demuxer, per spec.md's non-goals.
package vorbis

import "io"

// Packet is one Vorbis packet as delivered by the provider: its raw bytes
// (spec.md's Packet exposes "the bit reader API" — this module wraps the
// bytes in an internal/bitpack.Reader rather than exposing that type
// across the package boundary, the same shape as the teacher's
// Decoder.Decode(in []byte), which wraps a raw byte packet itself), a
// granule position (present only on some pages), an end-of-stream flag,
// a resync flag, and the container overhead in bits that a caller wants
// reflected in bitrate accounting.
type Packet interface {
	// Bytes returns the packet payload, exactly as delivered by the
	// transport, cursor-reset to the start.
	Bytes() []byte
	// Granule returns the Ogg granule position attached to the page this
	// packet completed, if any.
	Granule() (pos int64, ok bool)
	// EOS reports whether this is the last packet of the stream.
	EOS() bool
	// IsResync reports whether this packet immediately follows a detected
	// gap in the underlying transport.
	IsResync() bool
	// OverheadBits returns the container framing overhead attributable to
	// this packet, for bitrate bookkeeping.
	OverheadBits() int
	// Serial returns the Ogg logical stream serial number this packet
	// belongs to (spec.md §9's resolved Open Question: the three header
	// packets must share one serial). A provider that cannot distinguish
	// streams should return a constant value, which trivially matches.
	Serial() int64
}

// GranuleFunc computes the granule position a candidate packet would leave
// the stream at, used by SeekTo's page-level search. isLastInPage lets the
// caller avoid decoding samples it doesn't need to just to count them.
type GranuleFunc func(p Packet, isLastInPage bool) (int64, error)

// PacketProvider is the collaborator that demultiplexes an Ogg transport
// into a sequence of Vorbis packets (spec.md §6). GetNext/PeekNext return
// io.EOF once the stream is exhausted.
type PacketProvider interface {
	PeekNext() (Packet, error)
	GetNext() (Packet, error)
	// SeekTo performs the provider's page-level search for the target
	// granule, preroll pages before it, and leaves the provider positioned
	// so the next preroll+1 GetNext calls yield the pre-roll packets
	// followed by the target packet. It returns the granule position
	// actually landed on.
	SeekTo(granule int64, preroll int, granuleFn GranuleFunc) (int64, error)
	// GranuleCount returns the total granule count of the stream, i.e. its
	// length in samples.
	GranuleCount() (int64, error)
}

// ErrEOS is returned by PeekNext/GetNext once the provider has delivered
// every packet.
var ErrEOS = io.EOF
