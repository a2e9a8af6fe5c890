package image

// AccumBuf is the floating-point counterpart of Buf.
//
// Filters accumulate weighted sums into an AccumBuf and quantize once at the
// end. Like Buf, the height is derived from the storage length.
type AccumBuf struct {
	data   []float64
	width  int
	format Format
}

// NewAccumBuf creates a zeroed accumulator with the given dimensions and format.
func NewAccumBuf(height, width int, format Format) (*AccumBuf, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if !format.IsValid() {
		return nil, ErrInvalidFormat
	}
	return &AccumBuf{
		data:   make([]float64, format.RowBytes(width)*height),
		width:  width,
		format: format,
	}, nil
}

// Width returns the number of columns.
func (a *AccumBuf) Width() int {
	return a.width
}

// Height returns the number of rows.
func (a *AccumBuf) Height() int {
	return len(a.data) / a.format.RowBytes(a.width)
}

// Format returns the pixel format the accumulator mirrors.
func (a *AccumBuf) Format() Format {
	return a.format
}

// Channels returns the number of components per pixel.
func (a *AccumBuf) Channels() int {
	return a.format.Channels()
}

// At returns the accumulated pixel at [row][col].
func (a *AccumBuf) At(row, col int) AccumPixel {
	ch := a.format.Channels()
	off := (row*a.width + col) * ch
	p := AccumPixel{n: uint8(ch)}
	copy(p.c[:ch], a.data[off:off+ch])
	return p
}

// Set stores p at [row][col].
func (a *AccumBuf) Set(row, col int, p AccumPixel) {
	ch := a.format.Channels()
	off := (row*a.width + col) * ch
	copy(a.data[off:off+ch], p.c[:ch])
}

// AddAt adds p to the pixel at [row][col].
func (a *AccumBuf) AddAt(row, col int, p AccumPixel) {
	ch := a.format.Channels()
	off := (row*a.width + col) * ch
	for i := range ch {
		a.data[off+i] += p.c[i]
	}
}

// ToBuf quantizes the accumulator into a new Buf.
func (a *AccumBuf) ToBuf() *Buf {
	return a.ToBufScaled(1)
}

// ToBufScaled multiplies every component by f and quantizes into a new Buf.
func (a *AccumBuf) ToBufScaled(f float64) *Buf {
	data := make([]uint8, len(a.data))
	for i, v := range a.data {
		data[i] = quantize(v * f)
	}
	return &Buf{data: data, width: a.width, format: a.format}
}
