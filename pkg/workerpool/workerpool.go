// Package workerpool runs bounded concurrent work over a slice.
package workerpool

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Process calls process for every item with at most workerCount calls in flight.
// The first failure cancels the context handed to the remaining calls and is
// returned once every started call has finished.
func Process[T any](ctx context.Context, workerCount int, items []T, process func(context.Context, T) error) error {
	if workerCount < 1 {
		workerCount = 1
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workerCount)

	for _, item := range items {
		if egCtx.Err() != nil {
			break
		}
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			return process(egCtx, item)
		})
	}

	if err := eg.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
