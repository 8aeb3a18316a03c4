// Package header parses the three Vorbis header packets
// (identification, comment, setup) into the tables the mode package needs
// to decode audio packets (spec.md §4.9, §3).
//
// Grounded on the teacher's vendored github.com/jfreymuth/vorbis/header.go
// (identification/comment) and setup.go (codebooks/floors/residues/
// mappings/modes), generalized to build this module's codebook.Codebook,
// floor.Floor, residue.Residue, and mapping.Mapping types instead of the
// teacher's package-private equivalents, and to carry the stream serial
// number so the caller can enforce spec.md §9's resolved Open Question
// (all three header packets must share one serial).
package header

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/go-musicfox/govorbis/internal/bitpack"
	"github.com/go-musicfox/govorbis/internal/codebook"
	"github.com/go-musicfox/govorbis/internal/floor"
	"github.com/go-musicfox/govorbis/internal/mapping"
	"github.com/go-musicfox/govorbis/internal/mdct"
	"github.com/go-musicfox/govorbis/internal/mode"
	"github.com/go-musicfox/govorbis/internal/residue"
)

const (
	TypeIdentification = 1
	TypeComment        = 3
	TypeSetup          = 5
)

// wellKnownMagic maps a prefix found at the start of a stream's first
// packet to the name of the non-Vorbis codec it identifies, per spec.md
// §6.
var wellKnownMagic = []struct {
	prefix []byte
	name   string
}{
	{[]byte("OpusHead"), "OPUS"},
	{[]byte{0x7F, 'F', 'L', 'A', 'C'}, "FLAC"},
	{[]byte("Speex   "), "Speex"},
	{[]byte("fishead\x00"), "Skeleton"},
	{[]byte("\x80theora"), "Theora"},
}

// SniffNonVorbis reports the name of a well-known non-Vorbis codec if
// packet looks like one of its headers, per spec.md §6.
func SniffNonVorbis(packet []byte) (name string, ok bool) {
	for _, m := range wellKnownMagic {
		if len(packet) >= len(m.prefix) && string(packet[:len(m.prefix)]) == string(m.prefix) {
			return m.name, true
		}
	}
	return "", false
}

// IsVorbisHeader reports whether packet opens with a Vorbis header packet
// signature: packet type byte in {1,3,5} followed by "vorbis".
func IsVorbisHeader(packet []byte) bool {
	return len(packet) > 6 &&
		(packet[0] == TypeIdentification || packet[0] == TypeComment || packet[0] == TypeSetup) &&
		string(packet[1:7]) == "vorbis"
}

// Bitrate bounds carried by the identification header. Zero means unset.
type Bitrate struct {
	Nominal, Minimum, Maximum int
}

// Identification is the parsed identification header (packet 1).
type Identification struct {
	Channels   int
	SampleRate int
	Bitrate    Bitrate
	Block0     int
	Block1     int
}

// ParseIdentification parses the identification header body (with the
// 7-byte "\x01vorbis" prefix already stripped), per spec.md §4.9.
func ParseIdentification(body []byte) (Identification, error) {
	var id Identification
	if len(body) <= 22 {
		return id, errors.New("header: identification packet too short")
	}
	le := binary.LittleEndian
	if le.Uint32(body) != 0 {
		return id, errors.New("header: unsupported vorbis version")
	}
	id.Channels = int(body[4])
	id.SampleRate = int(le.Uint32(body[5:]))
	id.Bitrate.Maximum = int(int32(le.Uint32(body[9:])))
	id.Bitrate.Nominal = int(int32(le.Uint32(body[13:])))
	id.Bitrate.Minimum = int(int32(le.Uint32(body[17:])))
	id.Block0 = 1 << (body[21] & 0x0F)
	id.Block1 = 1 << (body[21] >> 4)
	if body[22]&1 == 0 {
		return id, errors.New("header: identification framing bit unset")
	}
	if id.Channels == 0 {
		return id, errors.New("header: zero channels")
	}
	if id.Block0 < 64 || id.Block0 > id.Block1 || id.Block1 > 8192 {
		return id, errors.New("header: invalid block sizes")
	}
	return id, nil
}

// Comment is the parsed comment header (packet 2): the encoder vendor
// string and a list of length-prefixed UTF-8 "TAG=value" user comments.
type Comment struct {
	Vendor   string
	Comments []string
}

// ParseComment parses the comment header body, per spec.md §4.9. It
// recovers from a truncated body by returning an error rather than
// panicking on a malformed length prefix.
func ParseComment(body []byte) (c Comment, err error) {
	defer func() {
		if recover() != nil {
			err = errors.New("header: malformed comment packet")
		}
	}()
	le := binary.LittleEndian
	vendorLen := le.Uint32(body)
	body = body[4:]
	c.Vendor = string(body[:vendorLen])
	body = body[vendorLen:]
	numComments := int(le.Uint32(body))
	body = body[4:]
	c.Comments = make([]string, numComments)
	for i := 0; i < numComments; i++ {
		n := le.Uint32(body)
		body = body[4:]
		c.Comments[i] = string(body[:n])
		body = body[n:]
	}
	return c, nil
}

// Setup is the parsed setup header (packet 3): every table the mode
// package needs to decode audio packets.
type Setup struct {
	Codebooks []codebook.Codebook
	Floors    []floor.Floor
	Residues  []residue.Residue
	Mappings  []mapping.Mapping
	Modes     []mode.Mode
}

// ParseSetup parses the setup header body (with the 7-byte "\x05vorbis"
// prefix already stripped), per spec.md §4.9: codebooks, an obsolete
// time-domain-transforms list (skipped), floors, residues, mappings, and
// modes, ending on a mandatory framing bit.
func ParseSetup(body []byte, channels int) (Setup, error) {
	var s Setup
	r := bitpack.New(body)

	s.Codebooks = make([]codebook.Codebook, r.ReadU32(8)+1)
	for i := range s.Codebooks {
		if err := s.Codebooks[i].Init(r); err != nil {
			return s, errors.Wrapf(err, "header: codebook %d", i)
		}
	}

	transformCount := r.ReadU8(6) + 1
	for i := 0; i < int(transformCount); i++ {
		if r.ReadU32(16) != 0 {
			return s, errors.New("header: unknown time-domain transform")
		}
	}

	s.Floors = make([]floor.Floor, r.ReadU8(6)+1)
	for i := range s.Floors {
		switch r.ReadU32(16) {
		case 0:
			f := new(floor.Floor0)
			if err := f.Init(r); err != nil {
				return s, errors.Wrapf(err, "header: floor %d", i)
			}
			s.Floors[i] = f
		case 1:
			f := new(floor.Floor1)
			if err := f.Init(r); err != nil {
				return s, errors.Wrapf(err, "header: floor %d", i)
			}
			s.Floors[i] = f
		default:
			return s, errors.Errorf("header: unknown floor type at index %d", i)
		}
	}

	s.Residues = make([]residue.Residue, r.ReadU8(6)+1)
	for i := range s.Residues {
		residueType := uint16(r.ReadU32(16))
		res, err := residue.New(residueType)
		if err != nil {
			return s, errors.Wrapf(err, "header: residue %d", i)
		}
		if err := res.Init(r); err != nil {
			return s, errors.Wrapf(err, "header: residue %d", i)
		}
		s.Residues[i] = res
	}

	s.Mappings = make([]mapping.Mapping, r.ReadU8(6)+1)
	for i := range s.Mappings {
		if err := s.Mappings[i].Init(r, channels); err != nil {
			return s, errors.Wrapf(err, "header: mapping %d", i)
		}
	}

	s.Modes = make([]mode.Mode, r.ReadU8(6)+1)
	for i := range s.Modes {
		s.Modes[i].BlockFlag = r.ReadU8(1)
		if r.ReadU32(16) != 0 { // window type, must be 0
			return s, errors.New("header: unknown window type")
		}
		if r.ReadU32(16) != 0 { // transform type, must be 0
			return s, errors.New("header: unknown transform type")
		}
		s.Modes[i].Mapping = r.ReadU8(8)
	}

	if !r.ReadBool() {
		return s, errors.New("header: setup framing bit unset")
	}
	if r.Short() {
		return s, errors.New("header: truncated setup packet")
	}
	return s, nil
}

// BuildModeConfig assembles a mode.Config from a parsed identification
// header and setup header, precomputing the IMDCT lookups and window
// tables the mode package needs once per stream.
func BuildModeConfig(id Identification, s Setup) *mode.Config {
	return &mode.Config{
		Channels:  id.Channels,
		Block0:    id.Block0,
		Block1:    id.Block1,
		Modes:     s.Modes,
		Mappings:  s.Mappings,
		Floors:    s.Floors,
		Residues:  s.Residues,
		Codebooks: s.Codebooks,
		Windows:   mdct.NewWindows(id.Block0, id.Block1),
		Lookup0:   mdct.NewLookup(id.Block0),
		Lookup1:   mdct.NewLookup(id.Block1),
	}
}
