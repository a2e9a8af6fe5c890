package mangascale

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gogpu/mangascale/internal/filter"
	"github.com/gogpu/mangascale/internal/parallel"
)

// Default dot gain parameters.
const (
	DefaultStrength = 50
	DefaultSpread   = 50
)

// DotGainParams configures the dot gain step of Scale.
type DotGainParams struct {
	// Strength widens the range of brightness levels that spread.
	Strength int

	// Spread widens the spatial radius of the spread.
	Spread int
}

// DefaultDotGain returns the default dot gain parameters.
func DefaultDotGain() DotGainParams {
	return DotGainParams{Strength: DefaultStrength, Spread: DefaultSpread}
}

// Processor runs filters on a worker pool.
//
// Thread safety: Processor is safe for concurrent use. Calls share the pool.
type Processor struct {
	pool     *parallel.WorkerPool
	ownsPool bool
	logger   *slog.Logger
}

// NewProcessor creates a processor. Call Close to stop its workers.
func NewProcessor(opts ...Option) *Processor {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	p := &Processor{pool: o.pool, logger: o.logger}
	if p.pool == nil {
		p.pool = parallel.NewWorkerPool(o.workers)
		p.ownsPool = true
	}
	p.log().Info("mangascale: processor started", "workers", p.pool.Workers())
	return p
}

// Close stops the processor's workers. Filters called after Close still
// work, on the calling goroutine. Close is safe to call multiple times.
func (p *Processor) Close() {
	if p.ownsPool {
		p.pool.Close()
	}
}

// Workers returns the number of worker goroutines.
func (p *Processor) Workers() int {
	return p.pool.Workers()
}

func (p *Processor) log() *slog.Logger {
	if p.logger != nil {
		return p.logger
	}
	return Logger()
}

// Blur applies a separable Gaussian blur of the given radius.
func (p *Processor) Blur(img *Image, radius float64) (*Image, error) {
	if img == nil {
		return nil, ErrNilImage
	}
	start := time.Now()

	out, err := filter.Blur(img, radius, p.pool)
	if err != nil {
		return nil, fmt.Errorf("mangascale: blur: %w", err)
	}

	p.log().Debug("blur",
		"height", img.Height(),
		"width", img.Width(),
		"radius", radius,
		"elapsed", time.Since(start))
	return out, nil
}

// SimulateDotGain thickens dark strokes by letting pixels bleed onto
// brighter neighbors, in preparation for a downscale by scalingFactor.
func (p *Processor) SimulateDotGain(img *Image, strength, spread int, scalingFactor float64) (*Image, error) {
	if img == nil {
		return nil, ErrNilImage
	}
	start := time.Now()

	out, err := filter.SimulateDotGain(img, strength, spread, scalingFactor, p.pool)
	if err != nil {
		return nil, fmt.Errorf("mangascale: dot gain: %w", err)
	}

	p.log().Debug("dot gain",
		"height", img.Height(),
		"width", img.Width(),
		"strength", strength,
		"spread", spread,
		"scale", scalingFactor,
		"radius", filter.DotGainRadius(spread, scalingFactor),
		"elapsed", time.Since(start))
	return out, nil
}

// Downscale resizes img to newHeight x newWidth by pixel-area averaging.
// Targets larger than the source are rejected with ErrUpscale.
func (p *Processor) Downscale(img *Image, newHeight, newWidth int) (*Image, error) {
	if img == nil {
		return nil, ErrNilImage
	}
	start := time.Now()

	out, err := filter.Downscale(img, newHeight, newWidth, p.pool)
	if err != nil {
		return nil, fmt.Errorf("mangascale: downscale: %w", err)
	}

	p.log().Debug("downscale",
		"height", img.Height(),
		"width", img.Width(),
		"new_height", newHeight,
		"new_width", newWidth,
		"elapsed", time.Since(start))
	return out, nil
}

// Scale reduces img by factor in (0, 1]: when dg is non-nil, dot gain tuned
// for factor runs first, then the image is downscaled to
// int(height*factor) x int(width*factor).
func (p *Processor) Scale(img *Image, factor float64, dg *DotGainParams) (*Image, error) {
	if img == nil {
		return nil, ErrNilImage
	}
	if !(factor > 0) || factor > 1 {
		return nil, fmt.Errorf("mangascale: scale: %w: %v", ErrInvalidScale, factor)
	}

	src := img
	if dg != nil {
		var err error
		src, err = p.SimulateDotGain(img, dg.Strength, dg.Spread, factor)
		if err != nil {
			return nil, err
		}
	}

	newHeight := int(float64(img.Height()) * factor)
	newWidth := int(float64(img.Width()) * factor)
	return p.Downscale(src, newHeight, newWidth)
}

var (
	defaultProc     *Processor
	defaultProcOnce sync.Once
)

// defaultProcessor returns the processor behind the package-level functions.
func defaultProcessor() *Processor {
	defaultProcOnce.Do(func() {
		defaultProc = NewProcessor()
	})
	return defaultProc
}

// Blur applies a separable Gaussian blur using the default processor.
func Blur(img *Image, radius float64) (*Image, error) {
	return defaultProcessor().Blur(img, radius)
}

// SimulateDotGain applies dot gain simulation using the default processor.
func SimulateDotGain(img *Image, strength, spread int, scalingFactor float64) (*Image, error) {
	return defaultProcessor().SimulateDotGain(img, strength, spread, scalingFactor)
}

// Downscale resizes img using the default processor.
func Downscale(img *Image, newHeight, newWidth int) (*Image, error) {
	return defaultProcessor().Downscale(img, newHeight, newWidth)
}

// Scale runs optional dot gain and a downscale using the default processor.
func Scale(img *Image, factor float64, dg *DotGainParams) (*Image, error) {
	return defaultProcessor().Scale(img, factor, dg)
}
