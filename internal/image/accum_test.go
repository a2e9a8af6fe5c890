package image

import (
	"errors"
	"testing"
)

func TestNewAccumBuf(t *testing.T) {
	if _, err := NewAccumBuf(0, 4, FormatRGB8); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("NewAccumBuf(0, 4) error = %v, want ErrInvalidDimensions", err)
	}
	if _, err := NewAccumBuf(4, 4, Format(9)); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("NewAccumBuf(format 9) error = %v, want ErrInvalidFormat", err)
	}

	a, err := NewAccumBuf(3, 7, FormatGray8)
	if err != nil {
		t.Fatalf("NewAccumBuf() error = %v", err)
	}
	if a.Height() != 3 || a.Width() != 7 || a.Channels() != 1 {
		t.Errorf("shape = %dx%dx%d, want 3x7x1", a.Height(), a.Width(), a.Channels())
	}
}

func TestAccumBufAddAt(t *testing.T) {
	a, _ := NewAccumBuf(2, 2, FormatRGB8)
	a.AddAt(1, 0, RGB(10, 20, 30).Accum())
	a.AddAt(1, 0, RGB(10, 20, 30).Scale(0.5))

	got := a.At(1, 0)
	want := []float64{15, 30, 45}
	for i, w := range want {
		if got.Component(i) != w {
			t.Errorf("Component(%d) = %v, want %v", i, got.Component(i), w)
		}
	}

	a.Set(0, 1, RGB(1, 1, 1).Scale(100.4))
	b := a.ToBuf()
	if b.At(0, 1) != RGB(100, 100, 100) {
		t.Errorf("ToBuf().At(0, 1) = %v, want {100 100 100}", b.At(0, 1))
	}
	if b.At(1, 0) != RGB(15, 30, 45) {
		t.Errorf("ToBuf().At(1, 0) = %v, want {15 30 45}", b.At(1, 0))
	}
}

func TestAccumBufToBufScaled(t *testing.T) {
	a, _ := NewAccumBuf(1, 1, FormatGray8)
	a.Set(0, 0, Gray(200).Accum().Scale(4))
	if got := a.ToBufScaled(0.25).At(0, 0); got != Gray(200) {
		t.Errorf("ToBufScaled(0.25) = %v, want 200", got)
	}
	if got := a.ToBufScaled(1).At(0, 0); got != Gray(255) {
		t.Errorf("ToBufScaled(1) = %v, want clamped 255", got)
	}
}
