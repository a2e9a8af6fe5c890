package filter

import (
	"fmt"
	"math"
)

// sqrt2Pi is sqrt(2*pi), the Gaussian density normalization constant.
const sqrt2Pi = 2.506628274631000502415765284811

// brightnessLevels is the number of quantized brightness values.
const brightnessLevels = 256

// Gaussian returns the normal density with standard deviation sigma at x.
func Gaussian(x, sigma float64) float64 {
	return math.Exp(-(x*x)/(2*sigma*sigma)) / (sigma * sqrt2Pi)
}

// round4 rounds x to four decimal places, half to even.
func round4(x float64) float64 {
	return math.RoundToEven(x*1e4) / 1e4
}

// distanceCutoff returns how many times smaller the Gaussian must be at
// x = radius than at x = 0. Small radii get a steeper falloff.
func distanceCutoff(radius float64) float64 {
	switch {
	case radius >= 0.1 && radius <= 1:
		return math.Exp(10)
	case radius > 1 && radius <= 2.5:
		return math.Exp(8)
	case radius > 2.5 && radius <= 5:
		return math.Exp(6.5)
	case radius > 5 && radius <= 8:
		return math.Exp(6)
	default:
		return 255
	}
}

func checkRadius(radius float64) error {
	if !(radius > 0) || math.IsInf(radius, 1) {
		return fmt.Errorf("%w: %v", ErrInvalidRadius, radius)
	}
	return nil
}

// DistanceWeights returns ceil(radius)+1 weights; entry k is the weight of a
// sample k pixels away from the target.
//
// Each entry is the mean of the Gaussian over [k, k+1), estimated from evenly
// spaced point samples: 51 samples across the whole array for radius <= 50,
// one per pixel above that. A sample landing exactly on an integer boundary
// (after rounding to four decimals) belongs to the lower pixel, except the
// first sample at 0.
func DistanceWeights(radius float64) ([]float64, error) {
	if err := checkRadius(radius); err != nil {
		return nil, err
	}

	sigma := radius / math.Sqrt(2*math.Log(distanceCutoff(radius)))

	n := int(math.Ceil(radius)) + 1
	weights := make([]float64, n)
	counts := make([]int, n)

	points := 51
	if radius > 50 {
		points = n
	}
	step := float64(n) / float64(points-1)

	for i := range points {
		x := step * float64(i)
		bin := sampleBin(i, x, n)
		weights[bin] += Gaussian(x, sigma)
		counts[bin]++
	}

	for i := range weights {
		if counts[i] > 0 {
			weights[i] /= float64(counts[i])
		}
	}
	return weights, nil
}

// sampleBin returns the pixel that sample i at distance x is credited to
// among n pixels. Boundaries are compared after rounding to four decimals,
// so a sample a float step short of an integer still counts as on it.
func sampleBin(i int, x float64, n int) int {
	bin := int(x)
	if i != 0 && math.Mod(round4(x), 1) == 0 {
		bin = int(round4(x)) - 1
	}
	return min(bin, n-1)
}

// NormalizeDistanceWeights returns a copy of w scaled so that the full
// symmetric kernel, w[0] + 2*(w[1] + ... + w[n-1]), sums to 1.
func NormalizeDistanceWeights(w []float64) []float64 {
	sum := 0.0
	if len(w) > 0 {
		sum = w[0]
	}
	for _, v := range w[min(1, len(w)):] {
		sum += 2 * v
	}

	out := make([]float64, len(w))
	if sum == 0 {
		return out
	}
	f := 1 / sum
	for i, v := range w {
		out[i] = v * f
	}
	return out
}

// NormalizedDistanceWeights is DistanceWeights followed by
// NormalizeDistanceWeights; the result is a proper 1D convolution kernel.
func NormalizedDistanceWeights(radius float64) ([]float64, error) {
	w, err := DistanceWeights(radius)
	if err != nil {
		return nil, err
	}
	return NormalizeDistanceWeights(w), nil
}

// DistanceMatrix returns the square 2D weight matrix of side
// 2*(ceil(radius)+1)-1: the outer product of the mirrored distance weights,
// scaled so the center cell is exactly 1.
func DistanceMatrix(radius float64) ([][]float64, error) {
	w, err := DistanceWeights(radius)
	if err != nil {
		return nil, err
	}

	n := len(w)
	size := 2*n - 1
	full := make([]float64, size)
	full[n-1] = w[0]
	for k := 1; k < n; k++ {
		full[n-1-k] = w[k]
		full[n-1+k] = w[k]
	}

	center := full[n-1] * full[n-1]
	norm := 1 / center

	matrix := make([][]float64, size)
	for r := range size {
		matrix[r] = make([]float64, size)
		for c := range size {
			matrix[r][c] = full[r] * full[c] * norm
		}
	}
	matrix[n-1][n-1] = 1
	return matrix, nil
}

// BrightnessWeights returns the brightness selectivity table for a dot gain
// strength: entry b weights a sample of average brightness b.
//
// sigma = 0.25 + 0.085*strength. Brightness is mapped into the Gaussian's
// domain by a factor of 0.2 and each level averages four samples at
// b, b+0.25, b+0.75 and b+1. The table is normalized so entry 0 is 1 and
// never increases with brightness.
func BrightnessWeights(strength int) ([brightnessLevels]float64, error) {
	var lw [brightnessLevels]float64

	sigma := 0.25 + float64(strength)*0.085
	if !(sigma > 0) {
		return lw, fmt.Errorf("%w: %d", ErrInvalidStrength, strength)
	}

	first := Gaussian(0, sigma)
	for i := range brightnessLevels {
		b := float64(i)
		sum := first
		sum += Gaussian((b+0.25)*0.2, sigma)
		sum += Gaussian((b+0.75)*0.2, sigma)
		first = Gaussian((b+1)*0.2, sigma)
		sum += first
		lw[i] = sum / 4
	}

	norm := 1 / lw[0]
	for i := range lw {
		lw[i] *= norm
	}
	lw[0] = 1
	return lw, nil
}
