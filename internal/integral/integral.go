// Package integral implements three interchangeable reducers for the
// composite trapezoid rule: a sequential reference, a dynamic work-queue
// reducer and a static partition reducer. All three honour the same
// contract and agree within floating-point tolerance.
package integral

import (
	"context"

	"github.com/agbru/quadbench/internal/quadrature"
)

// SequentialIntegral integrates f over [a, b] with n subdivisions on the
// calling goroutine.
func SequentialIntegral(f quadrature.Func, a, b float64, n int) (float64, error) {
	return run(Sequential{}, f, a, b, n, Options{Threads: 1})
}

// QueueIntegral integrates f over [a, b] with n subdivisions using threads
// workers draining a shared task bag.
func QueueIntegral(f quadrature.Func, a, b float64, n, threads int) (float64, error) {
	if err := quadrature.ValidateThreads(threads); err != nil {
		return 0, err
	}
	return run(Queue{}, f, a, b, n, Options{Threads: threads})
}

// PartitionedIntegral integrates f over [a, b] with n subdivisions using
// threads workers, each owning one contiguous chunk.
func PartitionedIntegral(f quadrature.Func, a, b float64, n, threads int) (float64, error) {
	if err := quadrature.ValidateThreads(threads); err != nil {
		return 0, err
	}
	return run(Partitioned{}, f, a, b, n, Options{Threads: threads})
}

func run(r Reducer, f quadrature.Func, a, b float64, n int, opts Options) (float64, error) {
	iv, err := quadrature.NewInterval(a, b, n)
	if err != nil {
		return 0, err
	}
	res, err := r.Reduce(context.Background(), f, iv, opts)
	if err != nil {
		return 0, err
	}
	return res.Value, nil
}
