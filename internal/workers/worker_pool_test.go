package workers

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
)

func TestWorkerPoolSize(t *testing.T) {
	if got := NewWorkerPool(0).Size(); got != runtime.NumCPU() {
		t.Errorf("Expected %d workers (CPU count), got %d", runtime.NumCPU(), got)
	}
	if got := NewWorkerPool(4).Size(); got != 4 {
		t.Errorf("Expected 4 workers, got %d", got)
	}
}

func TestWorkerPoolParallelFor(t *testing.T) {
	tests := []struct {
		name       string
		workers    int
		start, end int
	}{
		{"more work than workers", 3, 0, 100},
		{"fewer items than workers", 8, 0, 3},
		{"offset range", 2, 40, 57},
		{"single item", 4, 9, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wp := NewWorkerPool(tt.workers)
			wp.Start()
			defer wp.Stop()

			hits := make([]int32, tt.end)
			wp.ParallelFor(tt.start, tt.end, func(i int) {
				atomic.AddInt32(&hits[i], 1)
			})
			for i := range hits {
				want := int32(0)
				if i >= tt.start {
					want = 1
				}
				if got := atomic.LoadInt32(&hits[i]); got != want {
					t.Errorf("index %d ran %d times, want %d", i, got, want)
				}
			}
		})
	}
}

func TestWorkerPoolParallelForEmptyRange(t *testing.T) {
	wp := NewWorkerPool(2)
	wp.Start()
	defer wp.Stop()

	called := false
	wp.ParallelFor(5, 5, func(int) { called = true })
	wp.ParallelFor(5, 2, func(int) { called = true })
	if called {
		t.Error("fn should not run for an empty range")
	}
}

func TestWorkerPoolSharedByCallers(t *testing.T) {
	wp := NewWorkerPool(3)
	wp.Start()
	defer wp.Stop()

	var total atomic.Int64
	var wg sync.WaitGroup
	for c := 0; c < 4; c++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			wp.ParallelFor(0, 250, func(int) { total.Add(1) })
		}()
	}
	wg.Wait()

	if total.Load() != 1000 {
		t.Errorf("Expected 1000 iterations, got %d", total.Load())
	}
}

func TestWorkerPoolCancelledContext(t *testing.T) {
	wp := NewWorkerPool(2)
	wp.Start()
	defer wp.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ran atomic.Int32
	wp.ParallelForWithContext(ctx, 0, 50, func(int) { ran.Add(1) })
	if ran.Load() != 0 {
		t.Errorf("Expected no iterations after cancel, got %d", ran.Load())
	}
}

func TestWorkerPoolStartStopTwice(t *testing.T) {
	wp := NewWorkerPool(1)
	wp.Start()
	wp.Start()
	wp.Stop()
	wp.Stop()
}

func TestCounter(t *testing.T) {
	var counter Counter

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				counter.Add(1)
			}
		}()
	}
	wg.Wait()

	if counter.Load() != 2000 {
		t.Errorf("Expected counter to be 2000, got %d", counter.Load())
	}
}
