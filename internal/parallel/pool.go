package parallel

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool runs batches of independent, indexed tasks on a fixed number of
// goroutines.
//
// Each batch deals its task indices round-robin into per-worker queues.
// Workers drain their own queue first and then steal from the others, which
// balances load when some tasks are slower than the rest.
//
// A WorkerPool holds no goroutines between batches; it is safe for
// concurrent use and needs no Close.
type WorkerPool struct {
	workers int
}

// NewWorkerPool creates a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &WorkerPool{workers: workers}
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// Run calls fn once for every index in [0, n) and waits for all started
// calls to return.
//
// The first error cancels the context passed to the remaining calls, stops
// new tasks from starting and is returned. If ctx is cancelled before every
// task has completed, ctx.Err() is returned.
func (p *WorkerPool) Run(ctx context.Context, n int, fn func(ctx context.Context, i int) error) error {
	if n <= 0 {
		return nil
	}
	workers := min(p.workers, n)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Every queue is filled and closed up front, so receives never block.
	queues := make([]chan int, workers)
	for w := range queues {
		queues[w] = make(chan int, n/workers+1)
	}
	for i := range n {
		queues[i%workers] <- i
	}
	for _, q := range queues {
		close(q)
	}

	var (
		wg        sync.WaitGroup
		errOnce   sync.Once
		firstErr  error
		completed atomic.Int64
	)
	wg.Add(workers)
	for id := range workers {
		go func() {
			defer wg.Done()
			for {
				i, ok := next(queues, id)
				if !ok || runCtx.Err() != nil {
					return
				}
				if err := fn(runCtx, i); err != nil {
					errOnce.Do(func() {
						firstErr = err
						cancel()
					})
					return
				}
				completed.Add(1)
			}
		}()
	}
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	if completed.Load() < int64(n) {
		return ctx.Err()
	}
	return nil
}

// next returns the next task index for worker id, stealing from other
// queues once its own is drained.
func next(queues []chan int, id int) (int, bool) {
	if i, ok := <-queues[id]; ok {
		return i, true
	}
	for j := 1; j < len(queues); j++ {
		if i, ok := <-queues[(id+j)%len(queues)]; ok {
			return i, true
		}
	}
	return 0, false
}
