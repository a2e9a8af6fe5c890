// Package cache provides the memo cache behind the filter weight tables.
//
// Building a distance matrix or a brightness table costs far more than a
// single lookup, and a batch run applies the same few radii and strengths to
// every image. Cache keeps recently used tables, evicting the least recently
// used quarter when it grows past its soft limit.
//
//	c := cache.New[float64, []float64](64)
//	w, err := c.GetOrCreate(radius, func() ([]float64, error) {
//	    return build(radius)
//	})
//
// Cached values are shared between callers and must be treated as read-only.
//
// # Thread Safety
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
