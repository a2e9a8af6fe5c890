package filter

import (
	"testing"

	"github.com/gogpu/mangascale/internal/image"
	"github.com/gogpu/mangascale/internal/parallel"
)

// Test helper functions shared across filter tests.

// flatBuf creates a buffer filled with p.
func flatBuf(t testing.TB, height, width int, p image.Pixel) *image.Buf {
	t.Helper()
	b, err := image.NewBuf(height, width, p.Format())
	if err != nil {
		t.Fatalf("NewBuf(%d, %d) error: %v", height, width, err)
	}
	b.Fill(p)
	return b
}

// patternBuf creates a buffer with a deterministic, non-uniform pattern.
func patternBuf(t testing.TB, height, width int, format image.Format) *image.Buf {
	t.Helper()
	b, err := image.NewBuf(height, width, format)
	if err != nil {
		t.Fatalf("NewBuf(%d, %d) error: %v", height, width, err)
	}
	for row := range height {
		for col := range width {
			v := uint8((row*37 + col*91 + row*col*13) % 256)
			if format == image.FormatGray8 {
				b.Set(row, col, image.Gray(v))
			} else {
				b.Set(row, col, image.RGB(v, 255-v, v/2))
			}
		}
	}
	return b
}

// grayBuf creates a gray buffer from rows of intensities.
func grayBuf(t testing.TB, rows [][]uint8) *image.Buf {
	t.Helper()
	px := make([][]image.Pixel, len(rows))
	for i, r := range rows {
		px[i] = make([]image.Pixel, len(r))
		for j, v := range r {
			px[i][j] = image.Gray(v)
		}
	}
	b, err := image.FromRows(px)
	if err != nil {
		t.Fatalf("FromRows error: %v", err)
	}
	return b
}

// newTestPool creates a worker pool closed at test cleanup.
func newTestPool(t testing.TB, workers int) *parallel.WorkerPool {
	t.Helper()
	p := parallel.NewWorkerPool(workers)
	t.Cleanup(p.Close)
	return p
}

// absf returns the absolute value of a float64.
func absf(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// assertFlat fails unless every pixel of b equals want.
func assertFlat(t *testing.T, b *image.Buf, want image.Pixel) {
	t.Helper()
	for row := range b.Height() {
		for col := range b.Width() {
			if got := b.At(row, col); got != want {
				t.Fatalf("pixel (%d, %d) = %v, want %v", row, col, got, want)
			}
		}
	}
}
