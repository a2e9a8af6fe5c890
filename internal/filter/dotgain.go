package filter

import (
	"fmt"
	"math"

	"github.com/gogpu/mangascale/internal/image"
)

// DotGainRadius returns the sampling radius used by SimulateDotGain:
// (0.5 + 0.015*spread) / scalingFactor. Spread 0 gives 0.5 px and spread 100
// gives 2 px at the target scale.
func DotGainRadius(spread int, scalingFactor float64) float64 {
	return (0.5 + float64(spread)*0.015) / scalingFactor
}

// dotGainTables holds the weight tables shared read-only by all row tasks.
type dotGainTables struct {
	matrix     [][]float64
	brightness *[brightnessLevels]float64
}

// SimulateDotGain models ink spread: pixels darker than or as dark as a
// target bleed onto it, brighter ones never do, so dark strokes thicken.
//
// strength widens the range of brightness levels that spread (default 50),
// spread widens the spatial radius (default 50), and scalingFactor is the
// downscale factor the result is being prepared for.
func SimulateDotGain(src *image.Buf, strength, spread int, scalingFactor float64, ex Executor) (*image.Buf, error) {
	if !(scalingFactor > 0) || math.IsInf(scalingFactor, 1) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScale, scalingFactor)
	}

	matrix, err := cachedMatrix(DotGainRadius(spread, scalingFactor))
	if err != nil {
		return nil, err
	}
	brightness, err := cachedBrightness(strength)
	if err != nil {
		return nil, err
	}
	t := &dotGainTables{matrix: matrix, brightness: brightness}

	dst, err := image.NewBuf(src.Height(), src.Width(), src.Format())
	if err != nil {
		return nil, err
	}

	err = run(ex, src.Height(), func(row int) error {
		for col := range src.Width() {
			p, err := t.apply(src, row, col)
			if err != nil {
				return err
			}
			dst.Set(row, col, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dst, nil
}

// apply computes one output pixel.
func (t *dotGainTables) apply(src *image.Buf, row, col int) (image.Pixel, error) {
	target := src.At(row, col)
	sum, weightSum := t.sampleWindow(src, row, col, target)
	sum, weightSum = t.correctCenter(sum, weightSum, target)

	if weightSum == 0 || math.IsNaN(weightSum) {
		return image.Pixel{}, fmt.Errorf("%w at row %d, col %d", ErrDegenerateWeights, row, col)
	}
	return sum.Scale(1 / weightSum).Quantize(), nil
}

// sampleWindow accumulates every window cell except the center.
//
// Window coordinates are clamped to the image. A sample whose average
// brightness is at most the target's is weighted by
// matrix[r][c] * brightness[sample]; brighter samples contribute nothing.
func (t *dotGainTables) sampleWindow(src *image.Buf, row, col int, target image.Pixel) (image.AccumPixel, float64) {
	size := len(t.matrix)
	half := (size - 1) / 2
	lastRow, lastCol := src.Height()-1, src.Width()-1
	targetAvg := target.Average()

	sum := image.ZeroAccum(target.Channels())
	weightSum := 0.0

	for mr := range size {
		sr := clampIndex(row-half+mr, lastRow)
		weightsRow := t.matrix[mr]
		for mc := range size {
			if mr == half && mc == half {
				continue
			}
			sample := src.At(sr, clampIndex(col-half+mc, lastCol))
			avg := sample.Average()
			if avg > targetAvg {
				continue
			}
			w := weightsRow[mc] * t.brightness[avg]
			sum = sum.Add(sample.Scale(w))
			weightSum += w
		}
	}
	return sum, weightSum
}

// correctCenter adds the target's own contribution.
//
// Under the darker-or-equal rule the target would weight itself by
// brightness[target]; instead the target pixel always enters with the full
// center distance weight, and the weight sum receives the same total:
// the ordinary term matrix[c][c]*brightness[target] plus the correction
// (1 - brightness[target])*matrix[c][c].
func (t *dotGainTables) correctCenter(sum image.AccumPixel, weightSum float64, target image.Pixel) (image.AccumPixel, float64) {
	half := (len(t.matrix) - 1) / 2
	center := t.matrix[half][half]
	bw := t.brightness[target.Average()]

	sum = sum.Add(target.Scale(center))
	weightSum += center * bw
	weightSum += (1 - bw) * center
	return sum, weightSum
}
