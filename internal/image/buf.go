package image

import (
	"bytes"
	"errors"
)

// Common errors for image operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("image: invalid dimensions")

	// ErrInvalidFormat is returned when the format is not recognized.
	ErrInvalidFormat = errors.New("image: invalid format")

	// ErrRaggedRows is returned when rows of a pixel grid differ in length.
	ErrRaggedRows = errors.New("image: rows differ in length")

	// ErrFormatMismatch is returned when pixels of one grid mix channel counts.
	ErrFormatMismatch = errors.New("image: pixels mix formats")
)

// Buf is a dense row-major grid of quantized pixels.
//
// Storage is a single contiguous slice; Height is derived from its length,
// so shape and storage can never disagree.
//
// Thread safety: Buf is safe for concurrent read access. Concurrent writers
// must touch disjoint pixels.
type Buf struct {
	data   []uint8
	width  int
	format Format
}

// NewBuf creates a zeroed buffer with the given dimensions and format.
func NewBuf(height, width int, format Format) (*Buf, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if !format.IsValid() {
		return nil, ErrInvalidFormat
	}
	return &Buf{
		data:   make([]uint8, format.RowBytes(width)*height),
		width:  width,
		format: format,
	}, nil
}

// FromRows builds a buffer from a [row][col] grid of pixels.
// The grid must be non-empty, rectangular, and use a single format.
func FromRows(rows [][]Pixel) (*Buf, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrInvalidDimensions
	}
	format, ok := formatForChannels(rows[0][0].Channels())
	if !ok {
		return nil, ErrInvalidFormat
	}
	width := len(rows[0])
	for _, row := range rows {
		if len(row) != width {
			return nil, ErrRaggedRows
		}
	}

	b, err := NewBuf(len(rows), width, format)
	if err != nil {
		return nil, err
	}
	for y, row := range rows {
		for x, p := range row {
			if p.Format() != format || p.Channels() == 0 {
				return nil, ErrFormatMismatch
			}
			b.Set(y, x, p)
		}
	}
	return b, nil
}

// Width returns the number of columns.
func (b *Buf) Width() int {
	return b.width
}

// Height returns the number of rows.
func (b *Buf) Height() int {
	return len(b.data) / b.stride()
}

// Format returns the pixel format.
func (b *Buf) Format() Format {
	return b.format
}

// Channels returns the number of components per pixel.
func (b *Buf) Channels() int {
	return b.format.Channels()
}

func (b *Buf) stride() int {
	return b.format.RowBytes(b.width)
}

// Data returns the raw component data. Modifying it modifies the buffer.
func (b *Buf) Data() []uint8 {
	return b.data
}

// Row returns the raw component data of one row.
func (b *Buf) Row(row int) []uint8 {
	s := b.stride()
	return b.data[row*s : (row+1)*s]
}

// At returns the pixel at [row][col].
func (b *Buf) At(row, col int) Pixel {
	ch := b.format.Channels()
	off := (row*b.width + col) * ch
	p := Pixel{n: uint8(ch)}
	copy(p.c[:ch], b.data[off:off+ch])
	return p
}

// Set stores p at [row][col]. p is expected to share the buffer's format;
// surplus components are ignored and missing ones are written as 0.
func (b *Buf) Set(row, col int, p Pixel) {
	ch := b.format.Channels()
	off := (row*b.width + col) * ch
	copy(b.data[off:off+ch], p.c[:ch])
}

// Fill sets every pixel to p.
func (b *Buf) Fill(p Pixel) {
	ch := b.format.Channels()
	for off := 0; off < len(b.data); off += ch {
		copy(b.data[off:off+ch], p.c[:ch])
	}
}

// Rows returns a [row][col] copy of the pixels.
func (b *Buf) Rows() [][]Pixel {
	h := b.Height()
	rows := make([][]Pixel, h)
	for y := range h {
		rows[y] = make([]Pixel, b.width)
		for x := range b.width {
			rows[y][x] = b.At(y, x)
		}
	}
	return rows
}

// Clone creates a deep copy of the buffer.
func (b *Buf) Clone() *Buf {
	data := make([]uint8, len(b.data))
	copy(data, b.data)
	return &Buf{data: data, width: b.width, format: b.format}
}

// Equal reports whether b and o have the same shape, format and pixels.
func (b *Buf) Equal(o *Buf) bool {
	if b == nil || o == nil {
		return b == o
	}
	return b.width == o.width && b.format == o.format && bytes.Equal(b.data, o.data)
}

// ToAccum converts the buffer to its floating-point form without loss.
func (b *Buf) ToAccum() *AccumBuf {
	data := make([]float64, len(b.data))
	for i, v := range b.data {
		data[i] = float64(v)
	}
	return &AccumBuf{data: data, width: b.width, format: b.format}
}
