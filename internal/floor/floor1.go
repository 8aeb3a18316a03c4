package floor

import (
	"sort"

	"github.com/go-musicfox/govorbis/internal/bitpack"
	"github.com/go-musicfox/govorbis/internal/codebook"
)

// floor1Class is one partition class: a master book choosing among
// subclass books, per spec.md §4.4.
type floor1Class struct {
	dimension     uint8
	subclassBits  uint8
	masterbook    uint8
	subclassBooks []uint8
}

// Floor1 is the piecewise-linear floor (spec.md §4.4). Immutable after
// Init except for the scratch buffers step2/finalY, which Apply reuses
// across calls (they are sized once and overwritten per packet, never
// read across packets).
type Floor1 struct {
	partitionClassList []uint8
	classes            []floor1Class
	multiplier         uint8
	rangeBits          uint8
	xList              []uint32
	sortedIdx          []uint32

	step2  []bool
	finalY []uint32
}

// Init reads a floor 1 configuration: class list, per-class book
// assignments, and the sorted posit X list (spec.md §4.4, §3).
func (f *Floor1) Init(r *bitpack.Reader) error {
	f.partitionClassList = make([]uint8, r.ReadU8(5))
	var maxClass uint8
	for i := range f.partitionClassList {
		class := r.ReadU8(4)
		f.partitionClassList[i] = class
		if class > maxClass {
			maxClass = class
		}
	}

	f.classes = make([]floor1Class, maxClass+1)
	for i := range f.classes {
		c := &f.classes[i]
		c.dimension = r.ReadU8(3) + 1
		c.subclassBits = r.ReadU8(2)
		if c.subclassBits != 0 {
			c.masterbook = r.ReadU8(8)
		}
		c.subclassBooks = make([]uint8, 1<<c.subclassBits)
		for j := range c.subclassBooks {
			c.subclassBooks[j] = r.ReadU8(8) - 1
		}
	}

	f.multiplier = r.ReadU8(2) + 1
	f.rangeBits = r.ReadU8(4)
	f.xList = append(f.xList, 0, 1<<f.rangeBits)
	for _, class := range f.partitionClassList {
		for i := uint8(0); i < f.classes[class].dimension; i++ {
			f.xList = append(f.xList, r.ReadU32(uint(f.rangeBits)))
		}
	}

	f.sortedIdx = make([]uint32, len(f.xList))
	for i := range f.sortedIdx {
		f.sortedIdx[i] = uint32(i)
	}
	sort.Sort(bySortedX{f})

	f.step2 = make([]bool, len(f.xList))
	f.finalY = make([]uint32, len(f.xList))
	return nil
}

// floor1Range holds the four "range" constants keyed by multiplier-1, the
// maximum representable Y magnitude for each multiplier value.
var floor1Range = [4]uint32{256, 128, 86, 64}

// Unpack decodes the raw per-posit Y values as coded in the packet; the
// prediction of posit i>=2 from its two bracketing neighbors (spec.md §4.4
// step 4) is done later, in Apply. Returns nil if the nonzero flag is
// clear ("do not execute").
func (f *Floor1) Unpack(r *bitpack.Reader, books []codebook.Codebook, n uint32) interface{} {
	if !r.ReadBool() {
		return nil
	}

	rng := floor1Range[f.multiplier-1]
	y := make([]uint32, 0, len(f.xList))
	y = append(y, r.ReadU32(codebook.Ilog(int(rng-1))), r.ReadU32(codebook.Ilog(int(rng-1))))
	for _, classIndex := range f.partitionClassList {
		class := f.classes[classIndex]
		csub := (uint32(1) << class.subclassBits) - 1
		var cval uint32
		if class.subclassBits > 0 {
			v := books[class.masterbook].DecodeScalar(r)
			if v < 0 {
				return nil
			}
			cval = uint32(v)
		}
		for j := 0; j < int(class.dimension); j++ {
			book := class.subclassBooks[cval&csub]
			cval >>= class.subclassBits
			if book != 0xFF {
				v := books[book].DecodeScalar(r)
				if v < 0 {
					return nil
				}
				y = append(y, uint32(v))
			} else {
				y = append(y, 0)
			}
		}
	}
	return y
}

// Apply renders the floor curve via integer line-drawing between
// consecutive unmasked posits (spec.md §4.4), writing
// FLOOR1_inverse_dB_table[y] into out[x0:x1) and multiplying elementwise.
func (f *Floor1) Apply(out []float32, data interface{}) {
	if data == nil {
		for i := range out {
			out[i] = 0
		}
		return
	}
	y := data.([]uint32)
	n := uint32(len(out))
	rng := floor1Range[f.multiplier-1]

	f.step2[0], f.step2[1] = true, true
	f.finalY[0], f.finalY[1] = y[0], y[1]

	for i := 2; i < len(f.xList); i++ {
		low := lowNeighbor(f.xList, i)
		high := highNeighbor(f.xList, i)
		predicted := renderPoint(f.xList[low], f.finalY[low], f.xList[high], f.finalY[high], f.xList[i])
		val := y[i]

		highRoom := rng - predicted
		lowRoom := predicted
		var room uint32
		if highRoom < lowRoom {
			room = highRoom * 2
		} else {
			room = lowRoom * 2
		}

		if val == 0 {
			f.step2[i] = false
			f.finalY[i] = predicted
		} else {
			f.step2[low] = true
			f.step2[high] = true
			f.step2[i] = true
			if val >= room {
				if highRoom > lowRoom {
					f.finalY[i] = val - lowRoom + predicted
				} else {
					f.finalY[i] = predicted - val + highRoom - 1
				}
			} else if val%2 == 1 {
				f.finalY[i] = predicted - (val+1)/2
			} else {
				f.finalY[i] = predicted + val/2
			}
		}
	}

	var hx, lx uint32
	ly := f.finalY[0] * uint32(f.multiplier)
	var hy uint32
	for j := 1; j < len(f.finalY); j++ {
		i := f.sortedIdx[j]
		if f.step2[i] {
			hy = f.finalY[i] * uint32(f.multiplier)
			hx = f.xList[i]
			renderLine(lx, ly, hx, hy, out)
			lx, ly = hx, hy
		}
	}
	if hx < n {
		for i := hx; i < n; i++ {
			out[i] *= InverseDBTable[hy]
		}
	}
}

type bySortedX struct{ f *Floor1 }

func (s bySortedX) Len() int { return len(s.f.sortedIdx) }
func (s bySortedX) Less(i, j int) bool {
	return s.f.xList[s.f.sortedIdx[i]] < s.f.xList[s.f.sortedIdx[j]]
}
func (s bySortedX) Swap(i, j int) {
	s.f.sortedIdx[i], s.f.sortedIdx[j] = s.f.sortedIdx[j], s.f.sortedIdx[i]
}

// lowNeighbor/highNeighbor find, among the already-decoded posits before
// index, the nearest X value below/above v[index] -- the "tightest
// bracketing neighbors" spec.md §4.4 names.
func lowNeighbor(v []uint32, index int) int {
	val := v[index]
	best, max := 0, uint32(0)
	for i := 1; i < index; i++ {
		if v[i] < val && v[i] > max {
			best, max = i, v[i]
		}
	}
	return best
}

func highNeighbor(v []uint32, index int) int {
	val := v[index]
	best, min := 0, uint32(0xffffffff)
	for i := 1; i < index; i++ {
		if v[i] > val && v[i] < min {
			best, min = i, v[i]
		}
	}
	return best
}

func renderPoint(x0, y0, x1, y1, x uint32) uint32 {
	dy := int(y1) - int(y0)
	adx := x1 - x0
	ady := uint32(dy)
	if dy < 0 {
		ady = uint32(-dy)
	}
	err := ady * (x - x0)
	off := err / adx
	if dy < 0 {
		return y0 - off
	}
	return y0 + off
}

func renderLine(x0, y0, x1, y1 uint32, v []float32) {
	dy := int(y1) - int(y0)
	adx := x1 - x0
	ady := uint32(dy)
	if dy < 0 {
		ady = uint32(-dy)
	}
	base := dy / int(adx)
	y := y0
	err := uint32(0)
	sy := base + 1
	if dy < 0 {
		sy = base - 1
	}
	absBase := uint32(base)
	if base < 0 {
		absBase = uint32(-base)
	}
	ady -= absBase * adx

	v[x0] *= InverseDBTable[y]
	for x := x0 + 1; x < x1; x++ {
		err += ady
		if err >= adx {
			err -= adx
			y = uint32(int(y) + sy)
		} else {
			y = uint32(int(y) + base)
		}
		v[x] *= InverseDBTable[y]
	}
}
