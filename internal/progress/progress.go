// Package progress defines the progress messages a sweep emits while it runs.
// It has no dependencies so that both the orchestration layer and the
// presentation layer can import it.
package progress

// ProgressUpdate reports that one timed run of a sweep has finished.
type ProgressUpdate struct {
	// Completed is the number of runs finished so far, including this one.
	Completed int
	// Total is the number of runs the sweep will perform.
	Total int
	// Strategy is the reducer that produced the run.
	Strategy string
	// N is the subdivision count of the run.
	N int
}

// Fraction returns Completed/Total in [0, 1].
func (u ProgressUpdate) Fraction() float64 {
	if u.Total <= 0 {
		return 0
	}
	return min(max(float64(u.Completed)/float64(u.Total), 0), 1)
}

// ProgressCallback is invoked after each run. Implementations must not block.
type ProgressCallback func(ProgressUpdate)

// ChannelCallback returns a callback that forwards updates to ch without
// blocking. Updates are dropped while the consumer lags, since a later
// update supersedes an earlier one.
func ChannelCallback(ch chan<- ProgressUpdate) ProgressCallback {
	return func(u ProgressUpdate) {
		select {
		case ch <- u:
		default:
		}
	}
}
