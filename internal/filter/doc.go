// Package filter implements the line-art filter engines:
//   - Gaussian blur (separable, edge-clamped, row pass then column pass)
//   - Dot gain simulation (non-separable, brightness-selective 2D convolution)
//   - Area-averaging downscale (exact fractional pixel coverage)
//
// All filters read an immutable source buffer and return a newly allocated
// result. Each pass is split into one task per row or column; tasks write
// disjoint parts of the destination and the pass is joined before the next
// one starts, so results are identical for any worker count.
//
// Weight tables (distance weights, distance matrix, brightness weights) are
// built once per call and shared read-only by every task.
package filter
