package integral

import (
	"context"

	"github.com/agbru/quadbench/internal/logging"
	"github.com/agbru/quadbench/internal/parallel"
	"github.com/agbru/quadbench/internal/quadrature"
)

// Partitioned assigns each worker one contiguous chunk of interior samples
// for its whole lifetime. Workers share nothing mutable while running.
type Partitioned struct{}

// Name returns "partitioned".
func (Partitioned) Name() string { return "partitioned" }

// Reduce splits 1..n-1 into one chunk per worker, folds each chunk on its
// own goroutine and combines the partials in chunk order. The result is
// bit-reproducible for a fixed (n, threads).
func (Partitioned) Reduce(ctx context.Context, f quadrature.Func, iv quadrature.Interval, opts Options) (res Result, err error) {
	if err := iv.Validate(); err != nil {
		return Result{}, err
	}
	threads := opts.threads()
	if err := quadrature.ValidateThreads(threads); err != nil {
		return Result{}, err
	}
	_, end := startSpan(ctx, "partitioned", iv, threads)
	defer func() { end(err) }()

	base := iv.EdgeSum(f)
	chunks := Split(iv.Interior(), threads)

	log := opts.logger()
	log.Debug("partitioned reduction starting",
		logging.Int("n", iv.N),
		logging.Int("threads", threads),
		logging.Int("chunk_min", chunks[len(chunks)-1].Len()),
		logging.Int("chunk_max", chunks[0].Len()))

	partials, err := parallel.Gather("partitioned", threads, func(id int) (parallel.Partial, error) {
		c := chunks[id]
		return parallel.Partial{Sum: iv.SumRange(f, c.Start, c.End), Items: c.Len()}, nil
	})
	if err != nil {
		log.Error("partitioned reduction failed", err, logging.Int("n", iv.N))
		return Result{}, err
	}

	return Result{Value: combine(base, partials, iv.Step()), Workers: partials}, nil
}
