package integral

import (
	"context"

	"github.com/agbru/quadbench/internal/quadrature"
)

// Sequential is the single-threaded reference reducer.
type Sequential struct{}

// Name returns "sequential".
func (Sequential) Name() string { return "sequential" }

// Reduce folds every interior sample in ascending order on the calling
// goroutine. Options are ignored.
func (Sequential) Reduce(ctx context.Context, f quadrature.Func, iv quadrature.Interval, _ Options) (res Result, err error) {
	if err := iv.Validate(); err != nil {
		return Result{}, err
	}
	_, end := startSpan(ctx, "sequential", iv, 1)
	defer func() { end(err) }()

	base := iv.EdgeSum(f)
	sum := iv.SumRange(f, 1, iv.N-1)
	return Result{Value: (base + sum) * iv.Step()}, nil
}
