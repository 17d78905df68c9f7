package metrics

import "runtime"

// MemorySnapshot holds the allocator counters a reduction is charged with.
type MemorySnapshot struct {
	HeapAlloc  uint64 // bytes of live heap objects
	TotalAlloc uint64 // cumulative bytes allocated
	Mallocs    uint64 // cumulative heap objects allocated
	NumGC      uint32 // completed GC cycles
}

// MemoryUsage is the difference between two snapshots taken around a run.
type MemoryUsage struct {
	// HeapDelta is the live-heap growth. It is negative when a collection
	// freed more than the run retained.
	HeapDelta int64
	// Allocated counts every byte allocated in between, collected or not.
	Allocated uint64
	Mallocs   uint64
	GCCycles  uint32
}

// Since returns the usage accumulated between before and s.
func (s MemorySnapshot) Since(before MemorySnapshot) MemoryUsage {
	return MemoryUsage{
		HeapDelta: int64(s.HeapAlloc) - int64(before.HeapAlloc),
		Allocated: s.TotalAlloc - before.TotalAlloc,
		Mallocs:   s.Mallocs - before.Mallocs,
		GCCycles:  s.NumGC - before.NumGC,
	}
}

// MemoryCollector reads runtime memory statistics. ReadMemStats stops the
// world, so snapshots belong outside the timed section.
type MemoryCollector struct{}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads the current allocator counters.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:  m.HeapAlloc,
		TotalAlloc: m.TotalAlloc,
		Mallocs:    m.Mallocs,
		NumGC:      m.NumGC,
	}
}
