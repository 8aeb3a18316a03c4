// Stats snapshot, grounded on the teacher's internal/reporter.MasterReporter:
// a small sync.Mutex-guarded struct, safe to read from a foreign goroutine
// while the decoder thread mutates it through dedicated methods (spec.md
// §5's "statistics collector is the single object that may be read from a
// thread other than the decoder's").
package vorbis

import "sync"

// Stats is an immutable snapshot of a decoder's running counters.
type Stats struct {
	PacketsDecoded uint64
	PacketsDropped uint64
	FramesEmitted  uint64
	Resyncs        uint64
}

type statsCollector struct {
	mu sync.Mutex
	s  Stats
}

func (c *statsCollector) decoded() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.s.PacketsDecoded++
}

func (c *statsCollector) dropped() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.s.PacketsDropped++
}

func (c *statsCollector) emitted(frames uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.s.FramesEmitted += frames
}

func (c *statsCollector) resynced() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.s.Resyncs++
}

// Snapshot returns a copy of the current counters, safe to call from any
// goroutine.
func (c *statsCollector) Snapshot() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.s
}
