package filter

import "errors"

// Filter errors.
var (
	// ErrInvalidRadius is returned for a non-positive or non-finite radius.
	ErrInvalidRadius = errors.New("filter: radius must be positive and finite")

	// ErrInvalidStrength is returned when a dot gain strength yields a
	// non-positive brightness sigma.
	ErrInvalidStrength = errors.New("filter: invalid dot gain strength")

	// ErrInvalidScale is returned for a non-positive or non-finite scaling factor.
	ErrInvalidScale = errors.New("filter: scaling factor must be positive and finite")

	// ErrUpscale is returned when a downscale target exceeds the source size.
	ErrUpscale = errors.New("filter: target size exceeds source size")

	// ErrDegenerateWeights is returned when a convolution weight sum is zero.
	ErrDegenerateWeights = errors.New("filter: weight sum is zero")
)

// Executor runs a set of independent tasks and returns once all of them
// have finished, reporting the error of the lowest-index failing task.
//
// *parallel.WorkerPool implements Executor.
type Executor interface {
	ExecuteAllErr(work []func() error) error
}

// run executes fn for every index in [0, n) on ex, or sequentially on the
// calling goroutine when ex is nil.
func run(ex Executor, n int, fn func(i int) error) error {
	if ex == nil {
		for i := range n {
			if err := fn(i); err != nil {
				return err
			}
		}
		return nil
	}

	work := make([]func() error, n)
	for i := range n {
		work[i] = func() error { return fn(i) }
	}
	return ex.ExecuteAllErr(work)
}

func clampIndex(i, hi int) int {
	if i < 0 {
		return 0
	}
	if i > hi {
		return hi
	}
	return i
}
