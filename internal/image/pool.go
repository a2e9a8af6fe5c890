package image

import "sync"

// AccumPool is a thread-safe pool for reusing AccumBuf instances.
//
// Buffers are grouped by dimensions and format; Get on an empty bucket
// allocates.
//
// Thread safety: All methods are safe for concurrent use.
type AccumPool struct {
	mu      sync.Mutex
	buckets map[poolKey][]*AccumBuf
	maxSize int // max buffers per bucket
}

// poolKey identifies a bucket of identical buffer specifications.
type poolKey struct {
	width  int
	height int
	format Format
}

// NewAccumPool creates a pool retaining at most maxPerBucket buffers of
// each size and format. Zero or less means unlimited.
func NewAccumPool(maxPerBucket int) *AccumPool {
	return &AccumPool{
		buckets: make(map[poolKey][]*AccumBuf),
		maxSize: maxPerBucket,
	}
}

// Get returns a zeroed accumulator of the given shape, reusing a pooled one
// when available.
func (p *AccumPool) Get(height, width int, format Format) (*AccumBuf, error) {
	key := poolKey{width: width, height: height, format: format}

	p.mu.Lock()
	bucket := p.buckets[key]
	if n := len(bucket); n > 0 {
		a := bucket[n-1]
		p.buckets[key] = bucket[:n-1]
		p.mu.Unlock()

		clear(a.data)
		return a, nil
	}
	p.mu.Unlock()

	return NewAccumBuf(height, width, format)
}

// GetFrom returns a pooled accumulator holding the pixels of b.
func (p *AccumPool) GetFrom(b *Buf) *AccumBuf {
	a, err := p.Get(b.Height(), b.Width(), b.format)
	if err != nil {
		// b already has a valid shape.
		return b.ToAccum()
	}
	for i, v := range b.data {
		a.data[i] = float64(v)
	}
	return a
}

// Put returns a to the pool. The caller must not use a afterwards.
// nil buffers and buffers beyond the bucket limit are dropped.
func (p *AccumPool) Put(a *AccumBuf) {
	if a == nil {
		return
	}
	key := poolKey{width: a.width, height: a.Height(), format: a.format}

	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.buckets[key]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	p.buckets[key] = append(bucket, a)
}

// Len returns the number of pooled buffers.
func (p *AccumPool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := 0
	for _, b := range p.buckets {
		n += len(b)
	}
	return n
}

// defaultPool is the package-level pool used by the filters.
var defaultPool = NewAccumPool(4)

// GetAccum retrieves a zeroed accumulator from the default pool.
func GetAccum(height, width int, format Format) (*AccumBuf, error) {
	return defaultPool.Get(height, width, format)
}

// GetAccumFrom retrieves an accumulator holding the pixels of b from the
// default pool.
func GetAccumFrom(b *Buf) *AccumBuf {
	return defaultPool.GetFrom(b)
}

// PutAccum returns an accumulator to the default pool.
func PutAccum(a *AccumBuf) {
	defaultPool.Put(a)
}
