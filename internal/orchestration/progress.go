package orchestration

import (
	"time"

	"github.com/agbru/quadbench/internal/format"
	"github.com/agbru/quadbench/internal/progress"
)

// ProgressAggregator turns the stream of per-run updates into a sweep-wide
// fraction and ETA.
type ProgressAggregator struct {
	state     *format.ProgressWithETA
	totalRuns int
}

// NewProgressAggregator creates an aggregator for a sweep of totalRuns runs.
// Returns nil if totalRuns <= 0.
func NewProgressAggregator(totalRuns int) *ProgressAggregator {
	if totalRuns <= 0 {
		return nil
	}
	return &ProgressAggregator{
		state:     format.NewProgressWithETA(totalRuns),
		totalRuns: totalRuns,
	}
}

// AggregatedProgress is the result of processing one update.
type AggregatedProgress struct {
	// Strategy and N identify the run that just finished.
	Strategy string
	N        int
	// Fraction is the completed share of the sweep.
	Fraction float64
	// ETA is the estimated time remaining.
	ETA time.Duration
}

// Update processes one update.
func (a *ProgressAggregator) Update(update progress.ProgressUpdate) AggregatedProgress {
	frac, eta := a.state.Update(update.Completed)
	return AggregatedProgress{
		Strategy: update.Strategy,
		N:        update.N,
		Fraction: frac,
		ETA:      eta,
	}
}

// Fraction returns the current completed share without updating.
func (a *ProgressAggregator) Fraction() float64 {
	return a.state.Fraction()
}

// GetETA returns the current ETA estimate without updating. The CLI ticker
// calls it between updates.
func (a *ProgressAggregator) GetETA() time.Duration {
	return a.state.GetETA()
}

// TotalRuns returns the number of runs being tracked.
func (a *ProgressAggregator) TotalRuns() int {
	return a.totalRuns
}

// DrainChannel reads all updates from the channel without processing.
func DrainChannel(progressChan <-chan progress.ProgressUpdate) {
	for range progressChan {
	}
}
