package integral

import (
	"context"

	"github.com/agbru/quadbench/internal/logging"
	"github.com/agbru/quadbench/internal/parallel"
	"github.com/agbru/quadbench/internal/quadrature"
	"github.com/agbru/quadbench/internal/taskbag"
)

// Queue distributes interior samples through a shared task bag drained by a
// fixed pool of workers. Workers that finish early keep pulling, so load is
// balanced at the price of one synchronised take per sample.
type Queue struct{}

// Name returns "queue".
func (Queue) Name() string { return "queue" }

// Reduce fills the bag with 1..n-1, then starts the workers. Each worker
// takes indices until the bag is empty and accumulates privately; the
// partials are combined after the join.
func (Queue) Reduce(ctx context.Context, f quadrature.Func, iv quadrature.Interval, opts Options) (res Result, err error) {
	if err := iv.Validate(); err != nil {
		return Result{}, err
	}
	threads := opts.threads()
	if err := quadrature.ValidateThreads(threads); err != nil {
		return Result{}, err
	}
	_, end := startSpan(ctx, "queue", iv, threads)
	defer func() { end(err) }()

	base := iv.EdgeSum(f)

	kind := opts.queueKind()
	bag, err := taskbag.New(kind, 1, iv.N-1, opts.QueueCapacity)
	if err != nil {
		return Result{}, err
	}
	defer bag.Close()

	log := opts.logger()
	log.Debug("queue reduction starting",
		logging.Int("n", iv.N),
		logging.Int("threads", threads),
		logging.String("bag", string(kind)))

	partials, err := parallel.Gather("queue", threads, func(int) (parallel.Partial, error) {
		var p parallel.Partial
		for {
			i, ok := bag.Take()
			if !ok {
				return p, nil
			}
			p.Sum += iv.Sample(f, i)
			p.Items++
		}
	})
	if err != nil {
		log.Error("queue reduction failed", err, logging.Int("n", iv.N))
		return Result{}, err
	}

	return Result{Value: combine(base, partials, iv.Step()), Workers: partials}, nil
}
