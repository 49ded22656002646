package workers

import (
	"context"
	"errors"
	"fmt"

	"github.com/neekrasov/esync/pkg/sync"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidWorkers - panic value when the worker count is not positive.
var ErrInvalidWorkers = errors.New("workers: worker count must be positive")

// Process - applies fn to every item with at most workers calls running at once.
// Results keep the order of items.
func Process[T, R any](items []T, fn func(T) R, workers int) []R {
	if workers <= 0 {
		panic(fmt.Errorf("%w: %d", ErrInvalidWorkers, workers))
	}

	sem := sync.NewSemaphore(workers)
	futures := make([]sync.Future[R], len(items))
	for i, item := range items {
		futures[i] = sync.NewFuture[R]()

		sem.Wait()
		go func(future sync.Future[R]) {
			defer sem.Release()
			future.Set(fn(item))
		}(futures[i])
	}

	results := make([]R, len(items))
	for i := range futures {
		results[i] = futures[i].Get()
	}

	return results
}

// ProcessContext - like Process, but fn may fail. The first error cancels the
// context passed to the remaining calls, stops scheduling new ones and is returned.
func ProcessContext[T, R any](
	ctx context.Context, items []T,
	fn func(context.Context, T) (R, error), workers int,
) ([]R, error) {
	if workers <= 0 {
		panic(fmt.Errorf("%w: %d", ErrInvalidWorkers, workers))
	}

	sem := sync.NewSemaphore(workers)
	group, groupCtx := errgroup.WithContext(ctx)
	results := make([]R, len(items))

	for i, item := range items {
		if groupCtx.Err() != nil {
			break
		}

		if err := sem.WaitContext(groupCtx); err != nil {
			break
		}

		group.Go(func() error {
			defer sem.Release()

			result, err := fn(groupCtx, item)
			if err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}

			results[i] = result
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return results, nil
}
