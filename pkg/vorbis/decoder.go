// Package vorbis is the public API of the decoder (spec.md §6): a
// StreamDecoder that turns a sequence of packets from a caller-supplied
// PacketProvider into interleaved float32 PCM.
//
// Grounded on the teacher's vendored github.com/jfreymuth/vorbis.Decoder
// (header ingestion, Decode) combined with jfreymuth/oggvorbis.Reader's
// cross-packet buffering, granule accounting, and SetPosition, generalized
// into the explicit prev_buf/next_buf + three-cursor state machine
// spec.md §3/§4.9/§9 names instead of the teacher's single ad hoc
// `overlap`/`hasOverlap`/`overlapShort` fields and freshly allocated `out`
// slice per call.
package vorbis

import (
	"io"
	"log/slog"
	"time"

	"github.com/pkg/errors"

	"github.com/go-musicfox/govorbis/internal/bitpack"
	"github.com/go-musicfox/govorbis/internal/header"
	"github.com/go-musicfox/govorbis/internal/mode"
)

// clipEdge is the largest representable value strictly below 1.0, used to
// enforce spec.md §8's sample-clipping invariant [-1, 1).
const clipEdge = float32(0.99999994)

func clip(v float32) float32 {
	switch {
	case v < -1:
		return -1
	case v >= 1:
		return clipEdge
	default:
		return v
	}
}

// StreamDecoder is a single-consumer Vorbis I decoder driven by packet
// arrivals from a PacketProvider (spec.md §5: no internal worker threads,
// no concurrent mutation of one instance).
type StreamDecoder struct {
	provider PacketProvider
	opts     options
	stats    statsCollector

	id      header.Identification
	comment header.Comment
	cfg     *mode.Config
	scratch *mode.Scratch

	channels int
	block0   int
	block1   int

	// ready is spec.md's prev_buf: the most recently combined, emit-ready
	// PCM, channel-major, sized channels x block1. next (same size) holds
	// the retained overlap tail of the last decoded block, grounded on the
	// teacher's `d.overlap`; the two buffers keep their roles and are not
	// swapped.
	ready [][]float32
	next  [][]float32

	prevStart int
	prevEnd   int
	prevStop  int

	hasOverlap      bool
	tailShort       bool
	prevLongWindow  bool
	currentPosition int64
	hasPosition     bool
	eosFound        bool
	forcedEOS       bool
	disposed        bool
}

// New constructs a StreamDecoder by reading exactly the three Vorbis
// header packets from provider (spec.md §4.9). It fails with NotVorbis if
// the first packet identifies a different well-known codec, and with
// HeaderMalformed on any signature, framing, or table error.
func New(provider PacketProvider, opts ...Option) (*StreamDecoder, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	d := &StreamDecoder{provider: provider, opts: o}

	idPacket, err := provider.GetNext()
	if err != nil {
		return nil, wrapErr(HeaderMalformed, err, "vorbis: reading identification header")
	}
	idBody := idPacket.Bytes()
	if name, ok := header.SniffNonVorbis(idBody); ok {
		return nil, newErr(NotVorbis, name)
	}
	if !header.IsVorbisHeader(idBody) || idBody[0] != header.TypeIdentification {
		return nil, newErr(NotVorbis, "vorbis: first packet is not a Vorbis identification header")
	}
	id, err := header.ParseIdentification(idBody[7:])
	if err != nil {
		return nil, wrapErr(HeaderMalformed, err, "vorbis: identification header")
	}
	serial := idPacket.Serial()

	commentPacket, err := provider.GetNext()
	if err != nil {
		return nil, wrapErr(HeaderMalformed, err, "vorbis: reading comment header")
	}
	if commentPacket.Serial() != serial {
		return nil, newErr(HeaderMalformed, "vorbis: comment header belongs to a different logical stream")
	}
	commentBody := commentPacket.Bytes()
	if !header.IsVorbisHeader(commentBody) || commentBody[0] != header.TypeComment {
		return nil, newErr(HeaderMalformed, "vorbis: second packet is not a Vorbis comment header")
	}
	comment, err := header.ParseComment(commentBody[7:])
	if err != nil {
		return nil, wrapErr(HeaderMalformed, err, "vorbis: comment header")
	}

	setupPacket, err := provider.GetNext()
	if err != nil {
		return nil, wrapErr(HeaderMalformed, err, "vorbis: reading setup header")
	}
	if setupPacket.Serial() != serial {
		return nil, newErr(HeaderMalformed, "vorbis: setup header belongs to a different logical stream")
	}
	setupBody := setupPacket.Bytes()
	if !header.IsVorbisHeader(setupBody) || setupBody[0] != header.TypeSetup {
		return nil, newErr(HeaderMalformed, "vorbis: third packet is not a Vorbis setup header")
	}
	setup, err := header.ParseSetup(setupBody[7:], id.Channels)
	if err != nil {
		return nil, wrapErr(HeaderMalformed, err, "vorbis: setup header")
	}
	if o.maxCodebookEntries > 0 && uint32(len(setup.Codebooks)) > o.maxCodebookEntries {
		return nil, newErr(HeaderMalformed, "vorbis: setup header exceeds configured codebook ceiling")
	}

	d.id = id
	d.comment = comment
	d.cfg = header.BuildModeConfig(id, setup)
	d.scratch = mode.NewScratch(id.Channels, id.Block1)
	d.channels = id.Channels
	d.block0 = id.Block0
	d.block1 = id.Block1
	d.ready = newChannelBuffer(d.channels, d.block1)
	d.next = newChannelBuffer(d.channels, d.block1)

	return d, nil
}

func newChannelBuffer(channels, size int) [][]float32 {
	buf := make([][]float32, channels)
	for ch := range buf {
		buf[ch] = make([]float32, size)
	}
	return buf
}

// Channels returns the stream's channel count.
func (d *StreamDecoder) Channels() int { return d.channels }

// SampleRate returns the stream's sample rate in Hz.
func (d *StreamDecoder) SampleRate() int { return d.id.SampleRate }

// Bitrate returns the encoder-reported bitrate bounds.
func (d *StreamDecoder) Bitrate() header.Bitrate { return d.id.Bitrate }

// Vendor returns the comment header's encoder vendor string.
func (d *StreamDecoder) Vendor() string { return d.comment.Vendor }

// Comments returns the comment header's "TAG=value" user comments.
func (d *StreamDecoder) Comments() []string { return d.comment.Comments }

// TotalSamples returns the stream's total sample count, per the provider's
// granule count.
func (d *StreamDecoder) TotalSamples() (int64, error) { return d.provider.GranuleCount() }

// CurrentSample returns the sample index of the next frame Read will
// deliver. It is only meaningful once HasPosition reports true.
func (d *StreamDecoder) CurrentSample() int64 { return d.currentPosition }

// HasPosition reports whether CurrentSample currently reflects a known
// position (false immediately after a resync until the next
// granule-bearing packet).
func (d *StreamDecoder) HasPosition() bool { return d.hasPosition }

// EOS reports whether the stream decoder has observed the end-of-stream
// packet and has no more buffered frames to deliver.
func (d *StreamDecoder) EOS() bool { return (d.eosFound || d.forcedEOS) && d.prevStart >= d.prevEnd }

// TotalTime returns TotalSamples expressed as a duration.
func (d *StreamDecoder) TotalTime() (time.Duration, error) {
	n, err := d.TotalSamples()
	if err != nil {
		return 0, err
	}
	return samplesToDuration(n, d.id.SampleRate), nil
}

// CurrentTime returns CurrentSample expressed as a duration.
func (d *StreamDecoder) CurrentTime() time.Duration {
	return samplesToDuration(d.currentPosition, d.id.SampleRate)
}

func samplesToDuration(n int64, sampleRate int) time.Duration {
	if sampleRate == 0 {
		return 0
	}
	return time.Duration(n) * time.Second / time.Duration(sampleRate)
}

// Stats returns a snapshot of the running packet/frame counters, or a zero
// Stats when the decoder was built with stats disabled.
func (d *StreamDecoder) Stats() Stats {
	if !d.opts.statsEnabled {
		return Stats{}
	}
	return d.stats.Snapshot()
}

// Dispose releases the decoder's hold on its provider. Further Read/Seek
// calls fail with Disposed.
func (d *StreamDecoder) Dispose() { d.disposed = true }

// Read decodes and delivers up to count interleaved PCM frames into
// out[offset*channels:], clipped to [-1, 1) (spec.md §4.9 audio phase).
func (d *StreamDecoder) Read(out []float32, offset, count int) (int, error) {
	if d.disposed {
		return 0, newErr(Disposed, "vorbis: decoder disposed")
	}
	produced := 0
	for produced < count {
		if d.prevStart < d.prevEnd {
			avail := d.prevEnd - d.prevStart
			take := count - produced
			if take > avail {
				take = avail
			}
			base := offset + produced
			for i := 0; i < take; i++ {
				for ch := 0; ch < d.channels; ch++ {
					out[(base+i)*d.channels+ch] = clip(d.ready[ch][d.prevStart+i])
				}
			}
			d.prevStart += take
			produced += take
			d.currentPosition += int64(take)
			continue
		}
		if d.eosFound || d.forcedEOS {
			break
		}
		if err := d.decodeNext(); err != nil {
			return produced, err
		}
	}
	if produced > 0 {
		d.stats.emitted(uint64(produced))
	}
	return produced, nil
}

// decodeNext pulls and decodes one packet, combining it with the retained
// overlap context to refill d.ready (spec.md §4.9 audio phase steps 2-5).
func (d *StreamDecoder) decodeNext() error {
	pkt, err := d.provider.GetNext()
	if err != nil {
		if errors.Is(err, io.EOF) {
			d.eosFound = true
			return nil
		}
		return wrapErr(PacketCorrupt, err, "vorbis: reading packet")
	}

	if pkt.IsResync() {
		d.hasPosition = false
		d.stats.resynced()
	}

	r := bitpack.New(pkt.Bytes())
	result, derr := d.cfg.Decode(r, d.scratch, d.prevLongWindow, false)
	if derr != nil || r.Short() {
		d.stats.dropped()
		slog.Debug("vorbis: dropping corrupt packet", "error", derr, "short", r.Short(), "resync", pkt.IsResync())
		d.failPacket()
		if pkt.EOS() {
			d.eosFound = true
		}
		return nil
	}
	d.stats.decoded()
	d.prevLongWindow = result.LongWindow

	n := d.combine(result)
	d.prevStart = 0
	d.prevEnd = n
	d.prevStop = n

	granule, hasGranule := pkt.Granule()
	if hasGranule && !d.hasPosition {
		d.currentPosition = granule - int64(n)
		d.hasPosition = true
	}
	if pkt.EOS() {
		if hasGranule {
			limit := granule - d.currentPosition
			if limit < 0 {
				limit = 0
			}
			if int64(d.prevEnd) > limit {
				d.prevEnd = int(limit)
				d.prevStop = d.prevEnd
			}
		}
		d.eosFound = true
	} else if _, err := d.provider.PeekNext(); errors.Is(err, io.EOF) {
		// Some providers only guarantee EOF from Get/PeekNext and don't set
		// the packet's own EOS flag; treat an exhausted provider as the end
		// of stream so EOS() reports correctly without an extra blocked
		// GetNext call.
		d.eosFound = true
	}
	return nil
}

// combine overlap-adds result's left half with the retained tail and
// stages result's right half as the new tail, exactly mirroring the
// teacher's decodePacket tail section, and returns the number of newly
// ready frames (spec.md's n).
func (d *StreamDecoder) combine(result mode.Result) int {
	offset := d.block1/4 - d.block0/4
	center := result.BlockSize / 2

	n := 0
	if d.hasOverlap {
		n = result.BlockSize / 2
		if result.LongWindow && !result.WindowPrev {
			n -= offset
		}
		if !result.LongWindow && !d.tailShort {
			n += offset
		}
	}

	if result.LongWindow {
		start := 0
		if !result.WindowPrev {
			start = offset
		}
		if d.hasOverlap {
			for ch := range d.ready {
				for i := 0; i < center-start; i++ {
					d.ready[ch][i] = result.Raw[ch][start+i] + d.next[ch][start+i]
				}
			}
		}
		d.tailShort = false
	} else {
		if d.hasOverlap {
			if d.tailShort {
				for ch := range d.ready {
					for i := 0; i < center; i++ {
						d.ready[ch][i] = result.Raw[ch][i] + d.next[ch][offset+i]
					}
				}
			} else {
				for ch := range d.ready {
					for i := 0; i < offset; i++ {
						d.ready[ch][i] = d.next[ch][i]
					}
					for i := offset; i < offset+center; i++ {
						d.ready[ch][i] = result.Raw[ch][i-offset] + d.next[ch][i]
					}
				}
			}
		}
		d.tailShort = true
	}
	if !d.hasOverlap {
		n = 0
	}

	overlapCenter := d.block1 / 4
	oStart := overlapCenter - center/2
	oEnd := overlapCenter + center/2
	for ch := range d.next {
		for i := 0; i < oStart; i++ {
			d.next[ch][i] = 0
		}
		for i := oStart; i < oEnd; i++ {
			d.next[ch][i] = result.Raw[ch][center+i-oStart]
		}
		for i := oEnd; i < d.block1; i++ {
			d.next[ch][i] = 0
		}
	}
	d.hasOverlap = true
	return n
}

// failPacket exposes the retained tail as final output (spec.md §4.9 step
// 5, §7 PacketCorrupt): since no fresh block exists to overlap-add with,
// the stale tail's own window taper fades it to silence rather than
// stalling the stream.
func (d *StreamDecoder) failPacket() {
	for ch := range d.ready {
		copy(d.ready[ch], d.next[ch])
	}
	d.prevStart = 0
	d.prevStop = d.block1
	d.prevEnd = d.block1
	d.hasOverlap = false
}

// SeekToSample resets overlap state and lands the next Read at sample
// exactly, per spec.md §4.9's seek procedure: the provider performs the
// page-level search, then two packets (pre-roll and target) are decoded
// silently to restore continuity before prevStart is advanced to the
// exact target.
func (d *StreamDecoder) SeekToSample(sample int64) error {
	if d.disposed {
		return newErr(Disposed, "vorbis: decoder disposed")
	}
	total, err := d.provider.GranuleCount()
	if err != nil {
		return wrapErr(SeekOutOfRange, err, "vorbis: reading granule count")
	}
	if sample < 0 || sample > total {
		return newErr(SeekOutOfRange, "vorbis: seek target out of range")
	}

	granuleFn := func(p Packet, isLastInPage bool) (int64, error) {
		r := bitpack.New(p.Bytes())
		n, err := d.cfg.SampleCount(r)
		if err != nil {
			return 0, err
		}
		g, _ := p.Granule()
		return g - int64(n), nil
	}

	landed, err := d.provider.SeekTo(sample, 1, granuleFn)
	if err != nil {
		d.forcedEOS = true
		return wrapErr(SeekPreRollFailed, err, "vorbis: seek pre-roll search")
	}

	d.hasOverlap = false
	d.prevStart, d.prevEnd, d.prevStop = 0, 0, 0
	d.hasPosition = false
	d.eosFound = false
	d.forcedEOS = false

	for i := 0; i < 2; i++ {
		if err := d.decodeNext(); err != nil {
			d.forcedEOS = true
			return wrapErr(SeekPreRollFailed, err, "vorbis: seek pre-roll decode")
		}
	}

	skip := int(sample - landed)
	if skip < 0 {
		skip = 0
	}
	if skip > d.prevEnd {
		skip = d.prevEnd
	}
	d.prevStart = skip
	d.currentPosition = sample
	d.hasPosition = true
	return nil
}
