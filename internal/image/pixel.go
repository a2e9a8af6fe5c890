package image

import "math"

// Pixel is a quantized pixel with one (Gray8) or three (RGB8) 8-bit components.
//
// Pixel is a value type; all methods return new values.
type Pixel struct {
	c [maxChannels]uint8
	n uint8
}

// RGB returns an RGB8 pixel.
func RGB(r, g, b uint8) Pixel {
	return Pixel{c: [maxChannels]uint8{r, g, b}, n: 3}
}

// Gray returns a Gray8 pixel.
func Gray(y uint8) Pixel {
	return Pixel{c: [maxChannels]uint8{y}, n: 1}
}

// Channels returns the number of components in p.
func (p Pixel) Channels() int {
	return int(p.n)
}

// Format returns the storage format matching p's channel count.
func (p Pixel) Format() Format {
	f, _ := formatForChannels(int(p.n))
	return f
}

// Component returns component i. Out of range indices return 0.
func (p Pixel) Component(i int) uint8 {
	if i < 0 || i >= int(p.n) {
		return 0
	}
	return p.c[i]
}

// RGB returns the pixel as red, green and blue. Gray pixels replicate Y.
func (p Pixel) RGB() (r, g, b uint8) {
	if p.n == 1 {
		return p.c[0], p.c[0], p.c[0]
	}
	return p.c[0], p.c[1], p.c[2]
}

// Average returns the integer-truncated mean of the components.
func (p Pixel) Average() uint8 {
	if p.n <= 1 {
		return p.c[0]
	}
	sum := 0
	for i := 0; i < int(p.n); i++ {
		sum += int(p.c[i])
	}
	return uint8(sum / int(p.n))
}

// Accum converts p to its floating-point form without loss.
func (p Pixel) Accum() AccumPixel {
	a := AccumPixel{n: p.n}
	for i := 0; i < int(p.n); i++ {
		a.c[i] = float64(p.c[i])
	}
	return a
}

// Scale returns p multiplied componentwise by f, in floating-point form.
func (p Pixel) Scale(f float64) AccumPixel {
	a := AccumPixel{n: p.n}
	for i := 0; i < int(p.n); i++ {
		a.c[i] = float64(p.c[i]) * f
	}
	return a
}

// AccumPixel is a floating-point pixel used while accumulating weighted sums.
type AccumPixel struct {
	c [maxChannels]float64
	n uint8
}

// ZeroAccum returns an all-zero accumulator with the given channel count.
func ZeroAccum(channels int) AccumPixel {
	return AccumPixel{n: uint8(channels)}
}

// Channels returns the number of components in a.
func (a AccumPixel) Channels() int {
	return int(a.n)
}

// Component returns component i. Out of range indices return 0.
func (a AccumPixel) Component(i int) float64 {
	if i < 0 || i >= int(a.n) {
		return 0
	}
	return a.c[i]
}

// Scale returns a multiplied componentwise by f.
func (a AccumPixel) Scale(f float64) AccumPixel {
	for i := 0; i < int(a.n); i++ {
		a.c[i] *= f
	}
	return a
}

// Add returns the componentwise sum of a and o.
// The result takes the larger channel count of the two operands, so a zero
// AccumPixel can be used as the identity.
func (a AccumPixel) Add(o AccumPixel) AccumPixel {
	if o.n > a.n {
		a.n = o.n
	}
	for i := 0; i < int(a.n); i++ {
		a.c[i] += o.c[i]
	}
	return a
}

// Quantize rounds every component to the nearest integer (half to even)
// and clamps it to [0, 255].
func (a AccumPixel) Quantize() Pixel {
	p := Pixel{n: a.n}
	for i := 0; i < int(a.n); i++ {
		p.c[i] = quantize(a.c[i])
	}
	return p
}

// quantize rounds v half to even and clamps it to the uint8 range.
func quantize(v float64) uint8 {
	r := math.RoundToEven(v)
	if r <= 0 || math.IsNaN(r) {
		return 0
	}
	if r >= 255 {
		return 255
	}
	return uint8(r)
}
