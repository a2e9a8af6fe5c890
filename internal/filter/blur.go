package filter

import (
	"github.com/gogpu/mangascale/internal/image"
)

// Blur applies a separable Gaussian blur of the given radius.
//
// The operation uses a two-pass separable algorithm:
//  1. Horizontal pass: convolve each row with the 1D kernel
//  2. Vertical pass: convolve each column of the row pass output
//
// Samples outside the image are clamped to the nearest edge pixel. The
// intermediate result stays in floating point and is quantized once;
// intermediates come from the shared accumulator pool.
func Blur(src *image.Buf, radius float64, ex Executor) (*image.Buf, error) {
	weights, err := cachedKernel(radius)
	if err != nil {
		return nil, err
	}

	acc := image.GetAccumFrom(src)
	rows, err := blurRows(acc, weights, ex)
	image.PutAccum(acc)
	if err != nil {
		return nil, err
	}
	cols, err := blurColumns(rows, weights, ex)
	image.PutAccum(rows)
	if err != nil {
		return nil, err
	}
	defer image.PutAccum(cols)
	return cols.ToBuf(), nil
}

// BlurRows applies only the horizontal pass of Blur.
func BlurRows(src *image.Buf, radius float64, ex Executor) (*image.Buf, error) {
	weights, err := cachedKernel(radius)
	if err != nil {
		return nil, err
	}
	acc := image.GetAccumFrom(src)
	defer image.PutAccum(acc)
	rows, err := blurRows(acc, weights, ex)
	if err != nil {
		return nil, err
	}
	defer image.PutAccum(rows)
	return rows.ToBuf(), nil
}

// BlurColumns applies only the vertical pass of Blur.
func BlurColumns(src *image.Buf, radius float64, ex Executor) (*image.Buf, error) {
	weights, err := cachedKernel(radius)
	if err != nil {
		return nil, err
	}
	acc := image.GetAccumFrom(src)
	defer image.PutAccum(acc)
	cols, err := blurColumns(acc, weights, ex)
	if err != nil {
		return nil, err
	}
	defer image.PutAccum(cols)
	return cols.ToBuf(), nil
}

// blurRows convolves every row of src with weights, one task per row.
func blurRows(src *image.AccumBuf, weights []float64, ex Executor) (*image.AccumBuf, error) {
	dst, err := image.GetAccum(src.Height(), src.Width(), src.Format())
	if err != nil {
		return nil, err
	}

	last := src.Width() - 1
	err = run(ex, src.Height(), func(row int) error {
		for col := 0; col <= last; col++ {
			acc := src.At(row, col).Scale(weights[0])
			for k := 1; k < len(weights); k++ {
				acc = acc.Add(src.At(row, clampIndex(col-k, last)).Scale(weights[k]))
			}
			for k := 1; k < len(weights); k++ {
				acc = acc.Add(src.At(row, clampIndex(col+k, last)).Scale(weights[k]))
			}
			dst.Set(row, col, acc)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dst, nil
}

// blurColumns convolves every column of src with weights, one task per column.
func blurColumns(src *image.AccumBuf, weights []float64, ex Executor) (*image.AccumBuf, error) {
	dst, err := image.GetAccum(src.Height(), src.Width(), src.Format())
	if err != nil {
		return nil, err
	}

	last := src.Height() - 1
	err = run(ex, src.Width(), func(col int) error {
		for row := 0; row <= last; row++ {
			acc := src.At(row, col).Scale(weights[0])
			for k := 1; k < len(weights); k++ {
				acc = acc.Add(src.At(clampIndex(row-k, last), col).Scale(weights[k]))
			}
			for k := 1; k < len(weights); k++ {
				acc = acc.Add(src.At(clampIndex(row+k, last), col).Scale(weights[k]))
			}
			dst.Set(row, col, acc)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dst, nil
}
