package mangascale

import (
	"log/slog"

	"github.com/gogpu/mangascale/internal/parallel"
)

// Option configures a Processor during creation.
//
// Example:
//
//	// Default: one worker per CPU, package logger
//	p := mangascale.NewProcessor()
//
//	// Four workers, dedicated logger
//	p := mangascale.NewProcessor(mangascale.WithWorkers(4), mangascale.WithLogger(l))
type Option func(*options)

// options holds optional configuration for Processor creation.
type options struct {
	workers int
	pool    *parallel.WorkerPool
	logger  *slog.Logger
}

// defaultOptions returns the default processor options.
func defaultOptions() options {
	return options{
		workers: 0,   // GOMAXPROCS
		logger:  nil, // Package logger, read at call time
	}
}

// WithWorkers sets the number of worker goroutines.
// Zero or a negative value uses GOMAXPROCS. One worker still runs the
// passes on the pool, one task at a time.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithLogger sets a logger for the Processor, overriding the package logger
// set by SetLogger. A nil logger falls back to the package logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// withPool makes the Processor run on an existing pool. The Processor does
// not close a pool it did not create.
func withPool(p *parallel.WorkerPool) Option {
	return func(o *options) {
		o.pool = p
	}
}
