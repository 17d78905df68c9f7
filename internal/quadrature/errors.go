package quadrature

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInterval is returned when an interval has fewer than one
	// subdivision.
	ErrInvalidInterval = errors.New("invalid interval: n must be at least 1")
	// ErrInvalidThreadCount is returned when a parallel reducer is asked to
	// run with fewer than one worker.
	ErrInvalidThreadCount = errors.New("invalid thread count: must be at least 1")
	// ErrWorkerFailure is the sentinel matched by every *WorkerError.
	ErrWorkerFailure = errors.New("worker failure")
)

// ValidateThreads reports ErrInvalidThreadCount when threads < 1.
func ValidateThreads(threads int) error {
	if threads < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidThreadCount, threads)
	}
	return nil
}

// WorkerError reports a worker that terminated abnormally, typically because
// the integrand panicked. Its partial sum is lost and the reduction that
// spawned it must not produce a value.
type WorkerError struct {
	// Strategy names the reducer that owned the worker.
	Strategy string
	// Worker is the zero-based index of the failed worker.
	Worker int
	// Cause is the recovered panic value or the error returned by the worker.
	Cause error
}

// Error returns a message naming the strategy and worker.
func (e *WorkerError) Error() string {
	return fmt.Sprintf("%s: worker %d failed: %v", e.Strategy, e.Worker, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *WorkerError) Unwrap() error { return e.Cause }

// Is matches ErrWorkerFailure.
func (e *WorkerError) Is(target error) bool { return target == ErrWorkerFailure }
