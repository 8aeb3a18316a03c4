// Error kinds for the stream decoder (spec.md §7), constructed with
// github.com/pkg/errors the way the rest of this module (and the teacher's
// utils/player.go) wraps failures with call-site context.
package vorbis

import (
	stderrors "errors"

	"github.com/pkg/errors"
)

// Kind classifies a decoder error so callers can branch on it without a
// string compare.
type Kind int

const (
	// NotVorbis means the first packet is identifiably another codec, or
	// has no recognisable Vorbis header signature at all.
	NotVorbis Kind = iota
	// HeaderMalformed means a header packet failed signature, framing, or
	// table validation. Fatal at construction.
	HeaderMalformed
	// PacketCorrupt means an audio packet's bit reader ran dry mid-field,
	// or referenced an out-of-range table entry. The packet is dropped.
	PacketCorrupt
	// SeekOutOfRange means a seek target was negative or past the known
	// granule count.
	SeekOutOfRange
	// SeekPreRollFailed means the two pre-roll packets needed to restore
	// overlap-add state after a seek could not be fetched.
	SeekPreRollFailed
	// Disposed means an operation was attempted on a decoder whose
	// provider has already been released.
	Disposed
)

func (k Kind) String() string {
	switch k {
	case NotVorbis:
		return "NotVorbis"
	case HeaderMalformed:
		return "HeaderMalformed"
	case PacketCorrupt:
		return "PacketCorrupt"
	case SeekOutOfRange:
		return "SeekOutOfRange"
	case SeekPreRollFailed:
		return "SeekPreRollFailed"
	case Disposed:
		return "Disposed"
	default:
		return "Unknown"
	}
}

// Error wraps an error kind with its call-site message, analogous to how
// github.com/pkg/errors carries a stack alongside a message.
type Error struct {
	kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.err }

// Kind returns the classification of e. Use IsKind to test an arbitrary
// error value.
func (e *Error) Kind() Kind { return e.kind }

func newErr(kind Kind, msg string) error {
	return &Error{kind: kind, msg: msg}
}

func wrapErr(kind Kind, err error, msg string) error {
	return &Error{kind: kind, msg: msg, err: errors.WithStack(err)}
}

// IsKind reports whether err is, or wraps, a *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !stderrors.As(err, &e) {
		return false
	}
	return e.kind == kind
}
