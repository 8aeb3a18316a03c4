package vorbis

import "github.com/go-musicfox/govorbis/pkg/vorbisconfig"

// options are the resolved decoder construction knobs, either from
// explicit functional Options or a loaded vorbisconfig.Config (spec.md
// §6 ADDED section).
type options struct {
	strictHeaders      bool
	statsEnabled       bool
	maxCodebookEntries uint32
}

func defaultOptions() options {
	d := vorbisconfig.NewDefault()
	return options{
		strictHeaders:      d.StrictHeaders,
		statsEnabled:       d.StatsEnabled,
		maxCodebookEntries: d.MaxCodebookEntries,
	}
}

// Option configures a StreamDecoder at construction time.
type Option func(*options)

// WithConfig applies every field of a loaded vorbisconfig.Config,
// overriding any earlier option in the list.
func WithConfig(cfg vorbisconfig.Config) Option {
	return func(o *options) {
		o.strictHeaders = cfg.StrictHeaders
		o.statsEnabled = cfg.StatsEnabled
		o.maxCodebookEntries = cfg.MaxCodebookEntries
	}
}

// WithStrictHeaders records the strict-headers setting. New does not read
// it: header validation is the same whichever value is set.
func WithStrictHeaders(strict bool) Option {
	return func(o *options) { o.strictHeaders = strict }
}

// WithStatsEnabled toggles the packet/frame counters behind Stats.
func WithStatsEnabled(enabled bool) Option {
	return func(o *options) { o.statsEnabled = enabled }
}

// WithMaxCodebookEntries overrides the sanity ceiling on the number of
// codebooks a setup header declares. Zero means unlimited.
func WithMaxCodebookEntries(max uint32) Option {
	return func(o *options) { o.maxCodebookEntries = max }
}
