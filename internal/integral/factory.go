package integral

import (
	"fmt"
	"sort"
	"sync"
)

// Factory is a registry of reducers keyed by name.
type Factory interface {
	// Get returns the reducer registered under name.
	Get(name string) (Reducer, error)
	// List returns the registered names in sorted order.
	List() []string
	// GetAll returns every reducer, ordered like List.
	GetAll() []Reducer
}

// DefaultFactory is a concurrency-safe Factory.
type DefaultFactory struct {
	mu       sync.RWMutex
	reducers map[string]Reducer
}

// NewDefaultFactory returns a factory holding the sequential, queue and
// partitioned reducers.
func NewDefaultFactory() *DefaultFactory {
	f := &DefaultFactory{reducers: make(map[string]Reducer)}
	f.Register(Sequential{})
	f.Register(Queue{})
	f.Register(Partitioned{})
	return f
}

// Register adds r under r.Name(), replacing any previous entry.
func (f *DefaultFactory) Register(r Reducer) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reducers[r.Name()] = r
}

// Get implements Factory.
func (f *DefaultFactory) Get(name string) (Reducer, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	r, ok := f.reducers[name]
	if !ok {
		return nil, fmt.Errorf("unknown reducer %q", name)
	}
	return r, nil
}

// List implements Factory.
func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	names := make([]string, 0, len(f.reducers))
	for name := range f.reducers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetAll implements Factory.
func (f *DefaultFactory) GetAll() []Reducer {
	names := f.List()
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]Reducer, 0, len(names))
	for _, name := range names {
		out = append(out, f.reducers[name])
	}
	return out
}
