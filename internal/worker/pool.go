package worker

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// Job pairs one input with its processing outcome.
type Job[T any, R any] struct {
	Input  T
	Result R
	Err    error
}

// ProcessFunc processes a single input.
type ProcessFunc[T any, R any] func(ctx context.Context, input T) (R, error)

// Pool runs inputs through a fixed number of goroutines. Results keep the
// input order regardless of completion order.
type Pool[T any, R any] struct {
	workers int
	process ProcessFunc[T, R]
}

// NewPool creates a pool with at least one worker.
func NewPool[T any, R any](workers int, fn ProcessFunc[T, R]) *Pool[T, R] {
	if workers < 1 {
		workers = 1
	}
	return &Pool[T, R]{
		workers: workers,
		process: fn,
	}
}

// Execute processes all inputs and returns one job per input, index-aligned
// with the input slice. Cancelling the context stops the pool between
// items; already-started items run to completion.
func (p *Pool[T, R]) Execute(ctx context.Context, inputs []T) []Job[T, R] {
	jobs := make([]Job[T, R], len(inputs))
	indexCh := make(chan int, len(inputs))

	var wg sync.WaitGroup

	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case idx, ok := <-indexCh:
					if !ok {
						return
					}
					result, err := p.process(ctx, inputs[idx])
					jobs[idx] = Job[T, R]{
						Input:  inputs[idx],
						Result: result,
						Err:    err,
					}
					if err != nil {
						log.Error().Err(err).Int("worker", workerID).Int("index", idx).Msg("Job failed")
					}
				}
			}
		}(w)
	}

	for i := range inputs {
		select {
		case <-ctx.Done():
		case indexCh <- i:
		}
	}
	close(indexCh)

	wg.Wait()
	return jobs
}
