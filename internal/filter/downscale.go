package filter

import (
	"github.com/gogpu/mangascale/internal/image"
)

// Downscale resizes src to newHeight x newWidth by pixel-area averaging:
// every target pixel is the coverage-weighted mean of the source pixels
// under it, including fractional coverage at bin edges.
//
// Rows are binned first (one task per source row), then columns of that
// result (one task per target column). Both passes only accumulate; the
// division by the bin area happens once at the end.
func Downscale(src *image.Buf, newHeight, newWidth int, ex Executor) (*image.Buf, error) {
	// Validate both axes before allocating anything.
	if _, err := NewPixelBin(src.Width(), newWidth); err != nil {
		return nil, err
	}
	if _, err := NewPixelBin(src.Height(), newHeight); err != nil {
		return nil, err
	}

	rows, err := image.GetAccum(src.Height(), newWidth, src.Format())
	if err != nil {
		return nil, err
	}
	err = run(ex, src.Height(), func(row int) error {
		return accumulateRow(src, rows, row)
	})
	if err != nil {
		return nil, err
	}

	cols, err := image.GetAccum(newHeight, newWidth, src.Format())
	if err != nil {
		return nil, err
	}
	err = run(ex, newWidth, func(col int) error {
		return accumulateColumn(rows, cols, col)
	})
	image.PutAccum(rows)
	if err != nil {
		return nil, err
	}
	defer image.PutAccum(cols)

	area := (float64(src.Width()) / float64(newWidth)) * (float64(src.Height()) / float64(newHeight))
	return cols.ToBufScaled(1 / area), nil
}

// accumulateRow bins one source row into the same row of dst.
func accumulateRow(src *image.Buf, dst *image.AccumBuf, row int) error {
	bin, err := NewPixelBin(src.Width(), dst.Width())
	if err != nil {
		return err
	}

	last := src.Width() - 1
	for px := 0; px <= last; px++ {
		p := src.At(row, px)
		if !bin.OnMargin(px) {
			dst.AddAt(row, bin.Target(), p.Accum())
			continue
		}

		dst.AddAt(row, bin.Target(), p.Scale(bin.Margin()))
		if px != last {
			if next := bin.Target() + 1; next < dst.Width() {
				dst.AddAt(row, next, p.Scale(bin.MarginNext()))
			}
			bin.Advance()
		}
	}
	return nil
}

// accumulateColumn bins one column of the row pass output into dst.
func accumulateColumn(src, dst *image.AccumBuf, col int) error {
	bin, err := NewPixelBin(src.Height(), dst.Height())
	if err != nil {
		return err
	}

	last := src.Height() - 1
	for px := 0; px <= last; px++ {
		p := src.At(px, col)
		if !bin.OnMargin(px) {
			dst.AddAt(bin.Target(), col, p)
			continue
		}

		dst.AddAt(bin.Target(), col, p.Scale(bin.Margin()))
		if px != last {
			if next := bin.Target() + 1; next < dst.Height() {
				dst.AddAt(next, col, p.Scale(bin.MarginNext()))
			}
			bin.Advance()
		}
	}
	return nil
}
