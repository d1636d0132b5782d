package parallel

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Workers returns the worker-pool size for per-record maps.
// Bounded by the available CPU cores and the amount of work.
func Workers(items int) int {
	n := runtime.NumCPU()
	if items < n {
		n = items
	}
	if n < 1 {
		n = 1
	}
	return n
}

// Map runs fn over items with a bounded worker pool and collects the returned
// values. fn returns keep=false to drop an item from the output without
// failing the run. Any error from fn aborts the map: no further items are
// dispatched, in-flight workers finish, and partial results are discarded.
//
// The order of the returned slice is not defined.
func Map[T, R any](ctx context.Context, items []T, fn func(ctx context.Context, item T) (R, bool, error)) ([]R, error) {
	if len(items) == 0 {
		return []R{}, nil
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(Workers(len(items)))

	// Buffered to capacity so workers never block on the fan-in
	out := make(chan R, len(items))

	for _, item := range items {
		// Stop issuing new callbacks once cancelled or failed
		if gCtx.Err() != nil {
			break
		}
		item := item
		g.Go(func() error {
			r, keep, err := fn(gCtx, item)
			if err != nil {
				return err
			}
			if keep {
				out <- r
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	close(out)

	results := make([]R, 0, len(items))
	for r := range out {
		results = append(results, r)
	}
	return results, nil
}
