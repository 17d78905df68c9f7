package parallel

import (
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/agbru/quadbench/internal/quadrature"
)

func TestGather_PartialsIndexedByWorker(t *testing.T) {
	t.Parallel()

	partials, err := Gather("test", 8, func(id int) (Partial, error) {
		return Partial{Sum: float64(id * 10), Items: id}, nil
	})
	if err != nil {
		t.Fatalf("Gather returned error: %v", err)
	}
	if len(partials) != 8 {
		t.Fatalf("len(partials) = %d, want 8", len(partials))
	}
	for id, p := range partials {
		if p.Sum != float64(id*10) || p.Items != id {
			t.Errorf("partials[%d] = %+v", id, p)
		}
	}
}

func TestGather_PanicBecomesWorkerError(t *testing.T) {
	t.Parallel()

	var finished atomic.Int32
	_, err := Gather("queue", 4, func(id int) (Partial, error) {
		if id == 2 {
			panic("integrand exploded")
		}
		finished.Add(1)
		return Partial{Sum: 1}, nil
	})

	if !errors.Is(err, quadrature.ErrWorkerFailure) {
		t.Fatalf("error = %v, want ErrWorkerFailure", err)
	}
	var we *quadrature.WorkerError
	if !errors.As(err, &we) {
		t.Fatalf("error should contain a *WorkerError, got %T", err)
	}
	if we.Worker != 2 || we.Strategy != "queue" {
		t.Errorf("WorkerError = %+v, want worker 2 of queue", we)
	}
	var pe *PanicError
	if !errors.As(err, &pe) || pe.Value != "integrand exploded" || len(pe.Stack) == 0 {
		t.Errorf("panic value not preserved: %v", err)
	}
	if finished.Load() != 3 {
		t.Errorf("healthy workers finished = %d, want 3", finished.Load())
	}
}

func TestGather_AllFailuresReported(t *testing.T) {
	t.Parallel()

	cause := errors.New("bad sample")
	_, err := Gather("partitioned", 5, func(id int) (Partial, error) {
		if id%2 == 0 {
			return Partial{}, cause
		}
		return Partial{Sum: 1}, nil
	})

	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		t.Fatalf("expected a joined error, got %T", err)
	}
	if n := len(joined.Unwrap()); n != 3 {
		t.Errorf("reported %d failures, want 3", n)
	}
	if !errors.Is(err, cause) {
		t.Error("joined error should wrap the worker cause")
	}
}

func TestGather_FailuresJoinedInWorkerOrder(t *testing.T) {
	t.Parallel()

	const workers = 6
	for round := 0; round < 20; round++ {
		// Each worker waits for its successor, so failures arrive from the
		// highest id down.
		gates := make([]chan struct{}, workers+1)
		for i := range gates {
			gates[i] = make(chan struct{})
		}
		close(gates[workers])

		_, err := Gather("queue", workers, func(id int) (Partial, error) {
			<-gates[id+1]
			defer close(gates[id])
			return Partial{}, fmt.Errorf("sample %d is NaN", id)
		})

		joined, ok := err.(interface{ Unwrap() []error })
		if !ok {
			t.Fatalf("expected a joined error, got %T", err)
		}
		errs := joined.Unwrap()
		if len(errs) != workers {
			t.Fatalf("reported %d failures, want %d", len(errs), workers)
		}
		for i, e := range errs {
			var we *quadrature.WorkerError
			if !errors.As(e, &we) || we.Worker != i {
				t.Fatalf("round %d: failure %d = %v, want worker %d", round, i, e, i)
			}
		}
	}
}

func TestPanicError_UnwrapsErrorValues(t *testing.T) {
	t.Parallel()

	inner := errors.New("division by zero")
	pe := &PanicError{Value: inner}
	if !errors.Is(pe, inner) {
		t.Error("PanicError should unwrap an error panic value")
	}
	if (&PanicError{Value: 42}).Unwrap() != nil {
		t.Error("non-error panic value should unwrap to nil")
	}
}
