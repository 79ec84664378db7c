package fingerprint

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// parallelFor runs fn(i) for every i in [0, n) over a worker pool bounded
// to workers concurrent goroutines, checking ctx between dispatches so a
// cancellation stops scheduling new work promptly. Each fn(i) is
// responsible for writing its own result slot (by index) so that the
// final output is independent of completion order — this is what keeps
// Analyze's output bit-identical regardless of worker-pool size, per the
// determinism requirement on the engine's internal parallelism.
//
// workers <= 1 runs sequentially in index order with no goroutines at
// all, which is also what a worker count of 1 must produce: identical
// numeric output to any other worker count.
func parallelFor(ctx context.Context, n, workers int, fn func(i int) error) error {
	if n <= 0 {
		return nil
	}
	if workers <= 1 {
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := fn(i); err != nil {
				return err
			}
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		i := i
		if err := gctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			return fn(i)
		})
	}
	return g.Wait()
}
