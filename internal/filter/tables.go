package filter

import (
	"github.com/gogpu/mangascale/internal/cache"
)

// tableCacheSize bounds each weight-table cache.
const tableCacheSize = 64

// Weight tables are pure functions of their parameter and are shared
// read-only, so filters look them up here instead of rebuilding them on
// every call. The exported builders always return fresh tables.
var (
	kernelCache     = cache.New[float64, []float64](tableCacheSize)
	matrixCache     = cache.New[float64, [][]float64](tableCacheSize)
	brightnessCache = cache.New[int, *[brightnessLevels]float64](tableCacheSize)
)

// cachedKernel returns the shared normalized 1D kernel for radius.
func cachedKernel(radius float64) ([]float64, error) {
	if err := checkRadius(radius); err != nil {
		return nil, err
	}
	return kernelCache.GetOrCreate(radius, func() ([]float64, error) {
		return NormalizedDistanceWeights(radius)
	})
}

// cachedMatrix returns the shared distance matrix for radius.
func cachedMatrix(radius float64) ([][]float64, error) {
	if err := checkRadius(radius); err != nil {
		return nil, err
	}
	return matrixCache.GetOrCreate(radius, func() ([][]float64, error) {
		return DistanceMatrix(radius)
	})
}

// cachedBrightness returns the shared brightness table for strength.
func cachedBrightness(strength int) (*[brightnessLevels]float64, error) {
	return brightnessCache.GetOrCreate(strength, func() (*[brightnessLevels]float64, error) {
		lw, err := BrightnessWeights(strength)
		if err != nil {
			return nil, err
		}
		return &lw, nil
	})
}

// TableCacheStats reports hits and misses of the weight-table caches.
func TableCacheStats() (hits, misses uint64) {
	for _, st := range []cache.Stats{kernelCache.Stats(), matrixCache.Stats(), brightnessCache.Stats()} {
		hits += st.Hits
		misses += st.Misses
	}
	return hits, misses
}
