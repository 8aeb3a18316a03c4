package mdct

import "math"

// Windows holds the two KBD-style sine window shapes (short, long) and a
// precomputed offset table for the four (prev, next) neighbor-size
// combinations a long current block can face, per spec.md §4.7. The
// teacher recomputes prevOffset/nextOffset from scratch on every call;
// here they are precomputed once at construction since block0/block1 are
// fixed for the life of a stream.
type Windows struct {
	short, long []float32
	block0      int
	block1      int
	longCombos  [2][2]offsets // [prevIsLong][nextIsLong]
}

type offsets struct{ prev, next int }

// NewWindows builds both base window shapes and the neighbor-combination
// offset table for a stream's two configured block sizes.
func NewWindows(block0, block1 int) *Windows {
	w := &Windows{
		short:  makeWindow(block0),
		long:   makeWindow(block1),
		block0: block0,
		block1: block1,
	}
	for _, prevLong := range []bool{false, true} {
		for _, nextLong := range []bool{false, true} {
			prevSize := block0
			if prevLong {
				prevSize = block1
			}
			nextSize := block0
			if nextLong {
				nextSize = block1
			}
			w.longCombos[boolIdx(prevLong)][boolIdx(nextLong)] = offsets{
				prev: block1/4 - prevSize/4,
				next: block1/4 - nextSize/4,
			}
		}
	}
	return w
}

func boolIdx(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Apply windows samples in place for a block of the given size, fading in
// from the left using the prev-neighbor shape and fading out to the right
// using the next-neighbor shape, zeroing the regions outside both windows
// (spec.md §4.7/§4.8 step 6).
func (w *Windows) Apply(blockSize int, prevLong, curLong, nextLong bool, samples [][]float32) {
	center := blockSize / 2
	var prevOffset, nextOffset int
	if curLong {
		o := w.longCombos[boolIdx(prevLong)][boolIdx(nextLong)]
		prevOffset, nextOffset = o.prev, o.next
	}
	prevSize := w.block0
	if prevLong {
		prevSize = w.block1
	}
	nextSize := w.block0
	if nextLong {
		nextSize = w.block1
	}

	prevShape := w.short
	if prevLong {
		prevShape = w.long
	}
	nextShape := w.short
	if nextLong {
		nextShape = w.long
	}

	for ch := range samples {
		s := samples[ch][:prevOffset]
		for i := range s {
			s[i] = 0
		}
		s = samples[ch][prevOffset : prevOffset+prevSize/2]
		shape := prevShape[:len(s)]
		for i := range s {
			s[i] *= shape[i]
		}
		s = samples[ch][center+nextOffset : center+nextOffset+nextSize/2]
		shape = nextShape[nextSize/2:]
		shape = shape[:len(s)]
		for i := range s {
			s[i] *= shape[i]
		}
		s = samples[ch][blockSize-nextOffset:]
		for i := range s {
			s[i] = 0
		}
	}
}

// makeWindow generates the Vorbis sine-of-sine window of the given size:
// sin((pi/2) * sin^2((pi/n) * (k + 1/2))) (spec.md §4.7).
func makeWindow(size int) []float32 {
	window := make([]float32, size)
	for i := range window {
		window[i] = windowFunc((float32(i) + .5) / float32(size/2) * math.Pi / 2)
	}
	return window
}

func windowFunc(x float32) float32 {
	sinx := math.Sin(float64(x))
	return float32(math.Sin(math.Pi / 2 * sinx * sinx))
}
