package filter

import (
	"fmt"
	"math"

	"github.com/gogpu/mangascale/internal/image"
)

// PixelBin tracks the run of source pixels that maps to one target pixel
// while walking a row or column during area-averaging downscale.
//
// The bin width sourceSize/targetSize is generally not an integer, so the
// last source pixel of a bin is usually split: Margin of it belongs to the
// current bin and MarginNext to the next one. Bin boundaries are rounded to
// four decimals before taking fractional parts, which keeps exact boundaries
// (integer factors) from drifting into the next bin through float error.
//
// A PixelBin is advanced sequentially and must not be shared between
// goroutines.
type PixelBin struct {
	size       float64
	pos        float64
	target     int
	last       int
	margin     float64
	marginNext float64
}

// NewPixelBin returns a bin positioned at the start of an axis of
// sourceSize pixels being reduced to targetSize pixels.
func NewPixelBin(sourceSize, targetSize int) (*PixelBin, error) {
	if sourceSize < 1 || targetSize < 1 {
		return nil, fmt.Errorf("%w: %d -> %d", image.ErrInvalidDimensions, sourceSize, targetSize)
	}
	if targetSize > sourceSize {
		return nil, fmt.Errorf("%w: %d -> %d", ErrUpscale, sourceSize, targetSize)
	}

	b := &PixelBin{size: float64(sourceSize) / float64(targetSize)}
	b.Reset()
	return b, nil
}

// Size returns the bin width in source pixels.
func (b *PixelBin) Size() float64 { return b.size }

// Pos returns the (possibly fractional) source position where the bin opens.
func (b *PixelBin) Pos() float64 { return b.pos }

// Target returns the target index the bin maps to.
func (b *PixelBin) Target() int { return b.target }

// Last returns the source index of the last pixel in the bin.
func (b *PixelBin) Last() int { return b.last }

// Margin returns the share (0, 1] of the last pixel that belongs to this bin.
func (b *PixelBin) Margin() float64 { return b.margin }

// MarginNext returns the share [0, 1) of the last pixel that spills into
// the next bin.
func (b *PixelBin) MarginNext() float64 { return b.marginNext }

// OnMargin reports whether source index i is the last pixel of the bin.
func (b *PixelBin) OnMargin(i int) bool {
	return i == b.last
}

// Advance moves the bin to the next target index.
func (b *PixelBin) Advance() {
	b.target++
	b.pos = b.size * float64(b.target)
	b.setBoundary(b.size * float64(b.target+1))
}

// Reset moves the bin back to the start of the axis.
func (b *PixelBin) Reset() {
	b.target = 0
	b.pos = 0
	b.setBoundary(b.size)
}

// setBoundary derives margin and last pixel from the closing boundary.
func (b *PixelBin) setBoundary(end float64) {
	end = round4(end)

	b.margin = math.Mod(end, 1)
	if b.margin == 0 {
		b.margin = 1
		b.marginNext = 0
	} else {
		b.marginNext = 1 - b.margin
	}
	b.last = int(math.Ceil(end)) - 1
}
