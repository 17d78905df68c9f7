package integral

import (
	"context"
	"runtime"

	"github.com/agbru/quadbench/internal/logging"
	"github.com/agbru/quadbench/internal/parallel"
	"github.com/agbru/quadbench/internal/quadrature"
	"github.com/agbru/quadbench/internal/taskbag"
)

// Reducer computes the trapezoid integral of a function over an interval.
// Implementations are stateless and safe for concurrent use.
type Reducer interface {
	// Name returns the registry key of the reducer.
	Name() string
	// Reduce runs one reduction. ctx carries tracing information only: a
	// reduction in flight is never cancelled. opts.Threads == 0 selects
	// runtime.NumCPU() workers; a negative count fails with
	// quadrature.ErrInvalidThreadCount before any goroutine starts.
	// QueueIntegral and PartitionedIntegral take an explicit count and
	// reject anything below 1.
	Reduce(ctx context.Context, f quadrature.Func, iv quadrature.Interval, opts Options) (Result, error)
}

// Options tunes a parallel reduction. The zero value is usable.
type Options struct {
	// Threads is the number of workers. Zero selects runtime.NumCPU().
	Threads int
	// Queue selects the task bag of the queue reducer.
	Queue taskbag.Kind
	// QueueCapacity bounds the stream bag buffer. A positive value with an
	// empty Queue selects taskbag.KindStream.
	QueueCapacity int
	// Logger receives debug traces of the worker layout.
	Logger logging.Logger
}

func (o Options) threads() int {
	if o.Threads == 0 {
		return runtime.NumCPU()
	}
	return o.Threads
}

func (o Options) queueKind() taskbag.Kind {
	if o.Queue == "" && o.QueueCapacity > 0 {
		return taskbag.KindStream
	}
	if o.Queue == "" {
		return taskbag.KindMutex
	}
	return o.Queue
}

func (o Options) logger() logging.Logger {
	if o.Logger == nil {
		return logging.NewNopLogger()
	}
	return o.Logger
}

// Result is the outcome of a reduction.
type Result struct {
	// Value is the integral estimate.
	Value float64
	// Workers holds one partial per worker, in worker order. It is empty for
	// the sequential reducer.
	Workers []parallel.Partial
}

// Items returns the number of interior samples folded by the workers.
func (r Result) Items() int {
	total := 0
	for _, w := range r.Workers {
		total += w.Items
	}
	return total
}

// combine folds the partials in worker order so that a fixed assignment of
// samples to workers always produces the same bits.
func combine(base float64, partials []parallel.Partial, h float64) float64 {
	var sum float64
	for _, p := range partials {
		sum += p.Sum
	}
	return (base + sum) * h
}
