package floor

import (
	"math"

	"github.com/go-musicfox/govorbis/internal/bitpack"
	"github.com/go-musicfox/govorbis/internal/codebook"
)

// Floor0 is the LSP-based floor (spec.md §4.3). Immutable after Init.
type Floor0 struct {
	Order           uint8
	Rate            uint16
	BarkMapSize     uint16
	AmplitudeBits   uint8
	AmplitudeOffset uint8
	Books           []uint8
}

// floor0Data is the per-packet result of Unpack: the decoded amplitude and
// the LSP coefficients derived from it.
type floor0Data struct {
	amplitude    uint32
	coefficients []float32
}

// Init reads a floor 0 configuration from the setup header.
func (f *Floor0) Init(r *bitpack.Reader) error {
	f.Order = r.ReadU8(8)
	f.Rate = r.ReadU16(16)
	f.BarkMapSize = r.ReadU16(16)
	f.AmplitudeBits = r.ReadU8(6)
	f.AmplitudeOffset = r.ReadU8(8)
	f.Books = make([]uint8, r.ReadU8(4)+1)
	for i := range f.Books {
		f.Books[i] = r.ReadU8(8)
	}
	return nil
}

// Unpack reads an amplitude and, if non-zero, a book selector and
// vector-quantized LSP coefficients, per spec.md §4.3. Returns nil if the
// amplitude is zero (channel marked "do not execute").
func (f *Floor0) Unpack(r *bitpack.Reader, books []codebook.Codebook, n uint32) interface{} {
	amplitude := r.ReadU32(uint(f.AmplitudeBits))
	if amplitude == 0 {
		return nil
	}
	bookNumber := r.ReadU8(codebook.Ilog(len(f.Books)))
	if int(bookNumber) >= len(f.Books) {
		return nil
	}
	book := books[f.Books[bookNumber]]
	coefficients := make([]float32, f.Order)
	i := 0
	last := float32(0)
	for i < len(coefficients) {
		tempVector := book.DecodeVector(r)
		if tempVector == nil {
			return nil
		}
		for _, c := range tempVector {
			if i >= len(coefficients) {
				break
			}
			coefficients[i] = c + last
			i++
		}
		last = tempVector[len(tempVector)-1]
	}
	return floor0Data{amplitude, coefficients}
}

// Apply synthesizes the linear-magnitude curve of length len(out) by
// evaluating the LSP polynomial over the bark-warped map (spec.md §4.3),
// multiplying it elementwise into out.
func (f *Floor0) Apply(out []float32, data interface{}) {
	if data == nil {
		for i := range out {
			out[i] = 0
		}
		return
	}
	d := data.(floor0Data)
	n := uint32(len(out))
	i := uint32(0)
	for i < n {
		mapi := f.mapResult(i, n)
		w := math.Pi * float64(mapi) / float64(f.BarkMapSize)
		cosw := math.Cos(w)
		var p, q float64
		order := int(f.Order)
		if f.Order%2 == 1 {
			p = 1 - cosw*cosw
			for j := 0; j <= (order-3)/2; j++ {
				tmp := math.Cos(float64(d.coefficients[2*j+1])) - cosw
				p *= 4 * tmp * tmp
			}
			q = 0.25
			for j := 0; j <= (order-1)/2; j++ {
				tmp := math.Cos(float64(d.coefficients[2*j])) - cosw
				q *= 4 * tmp * tmp
			}
		} else {
			p = (1 - cosw*cosw) / 2
			for j := 0; j <= (order-2)/2; j++ {
				tmp := math.Cos(float64(d.coefficients[2*j+1])) - cosw
				p *= 4 * tmp * tmp
			}
			q = (1 + cosw*cosw) / 2
			for j := 0; j <= (order-2)/2; j++ {
				tmp := math.Cos(float64(d.coefficients[2*j])) - cosw
				q *= 4 * tmp * tmp
			}
		}
		linear := math.Exp(.11512925 * (float64(d.amplitude)*float64(f.AmplitudeOffset)/(float64(uint64(1)<<f.AmplitudeBits-1)*math.Sqrt(p+q)) - float64(f.AmplitudeOffset)))
		for f.mapResult(i, n) == mapi && i < n {
			out[i] *= float32(linear)
			i++
		}
	}
}

func (f *Floor0) mapResult(i, n uint32) int {
	if i >= n {
		return -1
	}
	b := int(math.Floor(bark(float64(f.Rate)*float64(i)/(2*float64(n))) * float64(f.BarkMapSize) / bark(.5*float64(f.Rate))))
	if b > int(f.BarkMapSize)-1 {
		return int(f.BarkMapSize) - 1
	}
	return b
}

func bark(x float64) float64 {
	return 13.1*math.Atan(.00074*x) + 2.24*math.Atan(.0000000185*x*x) + .0001*x
}
