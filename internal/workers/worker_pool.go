// Package workers runs per-column render work on a fixed set of goroutines.
package workers

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
)

// chunksPerWorker splits a range finer than one chunk per worker so columns
// facing a near wall do not leave the other workers idle
const chunksPerWorker = 4

// WorkerPool is a fixed set of goroutines fed from one job queue. Each
// ParallelFor call waits only for its own jobs, so several callers may
// share a pool.
type WorkerPool struct {
	size     int
	jobs     chan func()
	quit     chan struct{}
	started  atomic.Bool
	stopOnce sync.Once
}

// NewWorkerPool creates a stopped pool; size <= 0 means one worker per CPU
func NewWorkerPool(size int) *WorkerPool {
	if size <= 0 {
		size = runtime.NumCPU()
	}
	return &WorkerPool{
		size: size,
		jobs: make(chan func(), size*chunksPerWorker),
		quit: make(chan struct{}),
	}
}

// Start launches the workers. Only the first call has an effect.
func (wp *WorkerPool) Start() {
	if !wp.started.CompareAndSwap(false, true) {
		return
	}
	for i := 0; i < wp.size; i++ {
		go wp.run()
	}
}

func (wp *WorkerPool) run() {
	for {
		select {
		case job := <-wp.jobs:
			job()
		case <-wp.quit:
			return
		}
	}
}

// Stop ends the workers once they finish their current job. Safe to call
// more than once.
func (wp *WorkerPool) Stop() {
	wp.stopOnce.Do(func() { close(wp.quit) })
}

// Size returns the number of workers
func (wp *WorkerPool) Size() int {
	return wp.size
}

// ParallelFor runs fn for every i in [start, end) and returns when all
// calls are done
func (wp *WorkerPool) ParallelFor(start, end int, fn func(int)) {
	wp.ParallelForWithContext(context.Background(), start, end, fn)
}

// ParallelForWithContext is ParallelFor that skips the remaining indices
// once ctx is cancelled
func (wp *WorkerPool) ParallelForWithContext(ctx context.Context, start, end int, fn func(int)) {
	if start >= end {
		return
	}
	chunk := max(1, (end-start)/(wp.size*chunksPerWorker))

	var batch sync.WaitGroup
	for lo := start; lo < end; lo += chunk {
		from, to := lo, min(lo+chunk, end)
		batch.Add(1)
		wp.jobs <- func() {
			defer batch.Done()
			for i := from; i < to; i++ {
				if ctx.Err() != nil {
					return
				}
				fn(i)
			}
		}
	}
	batch.Wait()
}

// Counter is an int64 safe for concurrent use
type Counter struct {
	value atomic.Int64
}

// Add adds n and returns the new value
func (c *Counter) Add(n int64) int64 {
	return c.value.Add(n)
}

// Load returns the current value
func (c *Counter) Load() int64 {
	return c.value.Load()
}
