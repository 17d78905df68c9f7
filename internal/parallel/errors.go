// Package parallel runs a fixed number of workers to completion and joins
// their partial results. It is the single synchronisation point between a
// reducer and its workers: each worker writes only its own slot, and slots
// are read only after every worker has returned.
package parallel

import (
	"cmp"
	"errors"
	"slices"
	"sync"
)

type indexedError struct {
	id  int
	err error
}

// ErrorCollector gathers errors reported concurrently by workers. Nil errors
// are ignored. Err joins the recorded errors in ascending worker id, so the
// message does not depend on which worker failed first.
type ErrorCollector struct {
	mu   sync.Mutex
	errs []indexedError
}

// SetError records err for worker id if it is non-nil.
func (c *ErrorCollector) SetError(id int, err error) {
	if err == nil {
		return
	}
	c.mu.Lock()
	c.errs = append(c.errs, indexedError{id: id, err: err})
	c.mu.Unlock()
}

// Err returns the recorded errors joined with errors.Join, ordered by worker
// id, or nil. Errors recorded under the same id keep their arrival order.
func (c *ErrorCollector) Err() error {
	c.mu.Lock()
	sorted := slices.Clone(c.errs)
	c.mu.Unlock()
	if len(sorted) == 0 {
		return nil
	}
	slices.SortStableFunc(sorted, func(a, b indexedError) int { return cmp.Compare(a.id, b.id) })
	errs := make([]error, len(sorted))
	for i, e := range sorted {
		errs[i] = e.err
	}
	return errors.Join(errs...)
}

// Len returns the number of recorded errors.
func (c *ErrorCollector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.errs)
}
