package parallel

import (
	"fmt"
	"runtime/debug"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/quadbench/internal/quadrature"
)

// Partial is what a worker reports once it finishes.
type Partial struct {
	// Sum is the worker-private accumulator.
	Sum float64
	// Items counts the samples the worker folded into Sum.
	Items int
}

// WorkerFunc is the body of one worker. id is in [0, workers).
type WorkerFunc func(id int) (Partial, error)

// Gather starts workers goroutines running fn, waits for all of them and
// returns their partials indexed by worker id. A worker that returns an error
// or panics is reported as a *quadrature.WorkerError tagged with strategy;
// all failures are joined in worker order and returned together, and the
// partials must then be discarded by the caller.
func Gather(strategy string, workers int, fn WorkerFunc) ([]Partial, error) {
	partials := make([]Partial, workers)
	var ec ErrorCollector
	var g errgroup.Group

	for w := 0; w < workers; w++ {
		id := w
		g.Go(func() error {
			p, err := runWorker(id, fn)
			if err != nil {
				werr := &quadrature.WorkerError{Strategy: strategy, Worker: id, Cause: err}
				ec.SetError(id, werr)
				return werr
			}
			partials[id] = p
			return nil
		})
	}

	// Wait reports only the first failure; the collector holds all of them.
	// The plain Group never cancels, so the other workers still drain.
	if g.Wait() != nil {
		return nil, ec.Err()
	}
	return partials, nil
}

// runWorker converts a panic in fn into an error so that one failing worker
// neither crashes the process nor prevents the join.
func runWorker(id int, fn WorkerFunc) (p Partial, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return fn(id)
}

// PanicError carries a value recovered from a panicking worker.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap exposes the panic value when it is itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
