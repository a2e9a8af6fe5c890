package parallel

import (
	"errors"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// =============================================================================
// WorkerPool Creation Tests
// =============================================================================

func TestWorkerPool_Create(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	if pool.Workers() != 4 {
		t.Errorf("Workers() = %d, want 4", pool.Workers())
	}

	if !pool.IsRunning() {
		t.Error("Pool should be running after creation")
	}
}

func TestWorkerPool_CreateZeroWorkers(t *testing.T) {
	pool := NewWorkerPool(0)
	defer pool.Close()

	expected := runtime.GOMAXPROCS(0)
	if pool.Workers() != expected {
		t.Errorf("Workers() = %d, want %d (GOMAXPROCS)", pool.Workers(), expected)
	}
}

func TestWorkerPool_CreateNegativeWorkers(t *testing.T) {
	pool := NewWorkerPool(-5)
	defer pool.Close()

	expected := runtime.GOMAXPROCS(0)
	if pool.Workers() != expected {
		t.Errorf("Workers() = %d, want %d (GOMAXPROCS)", pool.Workers(), expected)
	}
}

// =============================================================================
// ExecuteAll Tests
// =============================================================================

func TestWorkerPool_ExecuteAll(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var counter atomic.Int64
	numTasks := 100

	work := make([]func(), numTasks)
	for i := range work {
		work[i] = func() {
			counter.Add(1)
		}
	}

	pool.ExecuteAll(work)

	if counter.Load() != int64(numTasks) {
		t.Errorf("counter = %d, want %d", counter.Load(), numTasks)
	}
}

func TestWorkerPool_ExecuteAll_AllIndices(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var mu sync.Mutex
	seen := make(map[int]bool)

	work := make([]func(), 10)
	for i := range work {
		work[i] = func() {
			mu.Lock()
			seen[i] = true
			mu.Unlock()
		}
	}

	pool.ExecuteAll(work)

	for i := 0; i < 10; i++ {
		if !seen[i] {
			t.Errorf("missing index %d in results", i)
		}
	}
}

func TestWorkerPool_ExecuteAll_Empty(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	// Should not panic or block
	pool.ExecuteAll(nil)
	pool.ExecuteAll([]func(){})
}

func TestWorkerPool_ExecuteAll_Barrier(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	// Second pass reads every slot written by the first pass.
	const n = 64
	first := make([]int, n)
	pool.ForEach(n, func(i int) {
		time.Sleep(time.Duration(i%3) * time.Millisecond)
		first[i] = i + 1
	})

	second := make([]int, n)
	pool.ForEach(n, func(i int) {
		sum := 0
		for _, v := range first {
			sum += v
		}
		second[i] = sum
	})

	want := n * (n + 1) / 2
	for i, v := range second {
		if v != want {
			t.Fatalf("second[%d] = %d, want %d", i, v, want)
		}
	}
}

func TestWorkerPool_ExecuteAll_AfterClose(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Close()

	var counter atomic.Int64
	pool.ForEach(5, func(int) { counter.Add(1) })

	if counter.Load() != 5 {
		t.Errorf("counter = %d, want 5 (closed pool runs work inline)", counter.Load())
	}
}

func TestWorkerPool_ExecuteAll_CloseDuringQueueing(t *testing.T) {
	const items = 64

	for range 200 {
		pool := NewWorkerPool(2)

		var counter atomic.Int64
		work := make([]func(), items)
		for i := range work {
			work[i] = func() { counter.Add(1) }
		}

		done := make(chan struct{})
		go func() {
			pool.ExecuteAll(work)
			close(done)
		}()
		pool.Close()

		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("ExecuteAll did not return after a concurrent Close")
		}
		if got := counter.Load(); got != items {
			t.Fatalf("counter = %d, want %d", got, items)
		}
	}
}

// =============================================================================
// ExecuteAllErr Tests
// =============================================================================

func TestWorkerPool_ExecuteAllErr(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	errLow := errors.New("low")
	errHigh := errors.New("high")

	var ran atomic.Int64
	work := make([]func() error, 50)
	for i := range work {
		work[i] = func() error {
			ran.Add(1)
			switch i {
			case 7:
				return errLow
			case 40:
				return errHigh
			}
			return nil
		}
	}

	for range 10 {
		ran.Store(0)
		if err := pool.ExecuteAllErr(work); !errors.Is(err, errLow) {
			t.Fatalf("ExecuteAllErr() = %v, want %v", err, errLow)
		}
		if ran.Load() != 50 {
			t.Fatalf("ran = %d, want 50", ran.Load())
		}
	}
}

func TestWorkerPool_ExecuteAllErr_NoError(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	work := []func() error{
		func() error { return nil },
		func() error { return nil },
	}
	if err := pool.ExecuteAllErr(work); err != nil {
		t.Errorf("ExecuteAllErr() = %v, want nil", err)
	}
	if err := pool.ExecuteAllErr(nil); err != nil {
		t.Errorf("ExecuteAllErr(nil) = %v, want nil", err)
	}
}

// =============================================================================
// Close Tests
// =============================================================================

func TestWorkerPool_CloseIdempotent(t *testing.T) {
	pool := NewWorkerPool(4)

	pool.Close()
	pool.Close()

	if pool.IsRunning() {
		t.Error("IsRunning() = true after Close")
	}
}

func TestWorkerPool_Concurrent(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var total atomic.Int64
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pool.ForEach(100, func(int) { total.Add(1) })
		}()
	}
	wg.Wait()

	if total.Load() != 800 {
		t.Errorf("total = %d, want 800", total.Load())
	}
}

func BenchmarkWorkerPool_ForEach(b *testing.B) {
	pool := NewWorkerPool(0)
	defer pool.Close()

	rows := make([]float64, 1024)
	b.ResetTimer()
	for range b.N {
		pool.ForEach(len(rows), func(i int) {
			rows[i] += float64(i)
		})
	}
}

// BenchmarkWorkerPool_Scaling measures one row pass at different worker
// counts. Compare results to judge how far a pass scales on this machine.
func BenchmarkWorkerPool_Scaling(b *testing.B) {
	const height, width = 512, 2048
	rows := make([][]float64, height)
	for i := range rows {
		rows[i] = make([]float64, width)
	}

	for _, workers := range []int{1, 2, 4, 8} {
		b.Run("workers="+strconv.Itoa(workers), func(b *testing.B) {
			pool := NewWorkerPool(workers)
			defer pool.Close()

			b.ResetTimer()
			for range b.N {
				pool.ForEach(height, func(row int) {
					r := rows[row]
					for col := 1; col < len(r); col++ {
						r[col] = r[col]*0.5 + r[col-1]*0.25 + 1
					}
				})
			}
		})
	}
}
