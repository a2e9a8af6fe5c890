// Package image provides the pixel and buffer model for mangascale.
//
// Two representations are used side by side: Buf stores quantized 8-bit
// components and is what callers hand to and receive from the filters,
// AccumBuf stores float64 components and carries intermediate results
// between filter passes so rounding happens exactly once.
package image

// Format represents a pixel storage format.
type Format uint8

const (
	// FormatGray8 is 8-bit grayscale (1 byte per pixel).
	FormatGray8 Format = iota

	// FormatRGB8 is 24-bit RGB (3 bytes per pixel, no alpha).
	// This is the layout produced by baseline JPEG decoders.
	FormatRGB8

	// formatCount is the number of formats (for internal use).
	formatCount
)

// maxChannels is the largest channel count of any Format.
const maxChannels = 3

// FormatInfo contains metadata about a pixel format.
type FormatInfo struct {
	// Channels is the number of color channels (and bytes per pixel).
	Channels int

	// IsGrayscale indicates if this is a grayscale format.
	IsGrayscale bool
}

var formatInfoTable = [formatCount]FormatInfo{
	FormatGray8: {Channels: 1, IsGrayscale: true},
	FormatRGB8:  {Channels: 3, IsGrayscale: false},
}

// Info returns the FormatInfo for this format.
func (f Format) Info() FormatInfo {
	if f >= formatCount {
		return FormatInfo{}
	}
	return formatInfoTable[f]
}

// Channels returns the number of color channels.
func (f Format) Channels() int {
	return f.Info().Channels
}

// IsGrayscale returns true if this is a grayscale format.
func (f Format) IsGrayscale() bool {
	return f.Info().IsGrayscale
}

// String returns a string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatGray8:
		return "Gray8"
	case FormatRGB8:
		return "RGB8"
	default:
		return "Unknown"
	}
}

// IsValid returns true if the format is a valid known format.
func (f Format) IsValid() bool {
	return f < formatCount
}

// RowBytes calculates the number of bytes needed for a row of the given width.
func (f Format) RowBytes(width int) int {
	return width * f.Channels()
}

// formatForChannels maps a channel count back to its Format.
func formatForChannels(n int) (Format, bool) {
	switch n {
	case 1:
		return FormatGray8, true
	case 3:
		return FormatRGB8, true
	}
	return 0, false
}
