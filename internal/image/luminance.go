package image

import (
	"errors"
	"math"
	"sort"
)

// ErrInvalidBitDepth is returned for component bit depths outside 1..16.
var ErrInvalidBitDepth = errors.New("image: invalid bit depth")

// Rec. 709 luminance coefficients for linear-light RGB.
const (
	lumaR = 0.2126
	lumaG = 0.7152
	lumaB = 0.0722
)

// LuminanceConverter maps integer component values of a given bit depth to
// linear luminance in [0, 1] through the sRGB transfer function, and back.
//
// The forward direction is a table lookup; the inverse is a binary search
// over the same table returning the closest component value.
type LuminanceConverter struct {
	bitDepth uint8
	table    []float64
}

// NewLuminanceConverter builds the conversion table for bitDepth-bit components.
func NewLuminanceConverter(bitDepth uint8) (*LuminanceConverter, error) {
	if bitDepth == 0 || bitDepth > 16 {
		return nil, ErrInvalidBitDepth
	}

	levels := 1 << bitDepth
	maxVal := float64(levels - 1)
	table := make([]float64, levels)

	// First value whose normalized signal exceeds the 0.04045 knee.
	threshold := int(0.04045*maxVal) + 1
	if threshold > levels {
		threshold = levels
	}

	linear := 1 / (12.92 * maxVal)
	for n := 0; n < threshold; n++ {
		table[n] = float64(n) * linear
	}

	c1 := 0.055 * maxVal
	c2 := 1 / (maxVal * 1.055)
	for n := threshold; n < levels; n++ {
		table[n] = math.Pow((float64(n)+c1)*c2, 2.4)
	}

	return &LuminanceConverter{bitDepth: bitDepth, table: table}, nil
}

// BitDepth returns the component bit depth the converter was built for.
func (c *LuminanceConverter) BitDepth() uint8 {
	return c.bitDepth
}

// ComponentToLuminance returns the linear luminance of component value v.
func (c *LuminanceConverter) ComponentToLuminance(v int) float64 {
	return c.table[v]
}

// LuminanceToComponent returns the component value whose luminance is
// closest to lum. Ties resolve to the smaller value.
func (c *LuminanceConverter) LuminanceToComponent(lum float64) int {
	i := sort.SearchFloat64s(c.table, lum)
	if i == 0 {
		return 0
	}
	if i == len(c.table) {
		return len(c.table) - 1
	}
	if lum-c.table[i-1] <= c.table[i]-lum {
		return i - 1
	}
	return i
}

var srgb8, _ = NewLuminanceConverter(8)

// ToGray converts the buffer to Gray8 using linear-light Rec. 709 luminance.
// Gray8 buffers are cloned.
func (b *Buf) ToGray() *Buf {
	if b.format == FormatGray8 {
		return b.Clone()
	}

	h := b.Height()
	out := &Buf{data: make([]uint8, b.width*h), width: b.width, format: FormatGray8}
	for y := range h {
		src := b.Row(y)
		dst := out.Row(y)
		for x := range b.width {
			lum := lumaR*srgb8.ComponentToLuminance(int(src[x*3])) +
				lumaG*srgb8.ComponentToLuminance(int(src[x*3+1])) +
				lumaB*srgb8.ComponentToLuminance(int(src[x*3+2]))
			dst[x] = uint8(srgb8.LuminanceToComponent(lum))
		}
	}
	return out
}
