package orchestration

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/quadbench/internal/parallel"
	"github.com/agbru/quadbench/internal/progress"
	"github.com/agbru/quadbench/internal/sysmon"
)

// Verdict is the outcome of comparing one run against its reference.
type Verdict int

const (
	// VerdictUnchecked is the state before AnalyzeComparisonResults runs.
	VerdictUnchecked Verdict = iota
	// VerdictReference marks the run the others at the same n are compared to.
	VerdictReference
	// VerdictAgree marks a run within tolerance of the reference.
	VerdictAgree
	// VerdictMismatch marks a run outside tolerance of the reference.
	VerdictMismatch
	// VerdictFailed marks a run that returned an error.
	VerdictFailed
)

func (v Verdict) String() string {
	switch v {
	case VerdictReference:
		return "reference"
	case VerdictAgree:
		return "ok"
	case VerdictMismatch:
		return "MISMATCH"
	case VerdictFailed:
		return "failed"
	}
	return "-"
}

// RunResult is the outcome of one reducer at one subdivision count, over all
// of its repeats. It is the shared domain type between orchestration and
// presentation.
type RunResult struct {
	// Strategy is the reducer name.
	Strategy string
	// N is the subdivision count.
	N int
	// Threads is the number of workers (1 for the sequential reducer).
	Threads int
	// Value is the integral estimate of the last repeat.
	Value float64
	// Durations holds the wall-clock time of every completed repeat.
	Durations []time.Duration
	// Mean and StdDev summarize Durations.
	Mean   time.Duration
	StdDev time.Duration
	// CPU is the process CPU time consumed across all repeats.
	CPU sysmon.CPUTimes
	// Utilization is CPU time divided by wall time, in cores.
	Utilization float64
	// HeapDelta is the heap growth across the last repeat, in bytes.
	HeapDelta int64
	// Allocated is the number of bytes allocated during the last repeat.
	Allocated uint64
	// Workers holds the per-worker partials of the last repeat.
	Workers []parallel.Partial
	// Err is the first error encountered; later repeats are skipped.
	Err error

	// Verdict and Deviation are filled by AnalyzeComparisonResults.
	Verdict   Verdict
	Deviation float64
}

// Duration returns the mean duration, the figure shown in the comparison.
func (r RunResult) Duration() time.Duration { return r.Mean }

// PresentationOptions configures how results are presented to the user.
type PresentationOptions struct {
	Function  string
	A, B      float64
	Tolerance float64
	Verbose   bool
	Details   bool
}

// ProgressReporter displays sweep progress. DisplayProgress runs in its own
// goroutine until progressChan is closed, then calls wg.Done.
type ProgressReporter interface {
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, totalRuns int, out io.Writer)
}

// ProgressReporterFunc adapts a function to ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, totalRuns int, out io.Writer)

// DisplayProgress calls f.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, totalRuns int, out io.Writer) {
	f(wg, progressChan, totalRuns, out)
}

// NullProgressReporter drains the progress channel without output. It is
// used in quiet mode and in tests.
type NullProgressReporter struct{}

// DisplayProgress drains the channel.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter renders the outcome of a sweep.
type ResultPresenter interface {
	// PresentComparisonTable displays every run, grouped by n.
	PresentComparisonTable(results []RunResult, opts PresentationOptions, out io.Writer)
	// PresentResult displays the reference run of the largest n.
	PresentResult(result RunResult, opts PresentationOptions, out io.Writer)
}

// ErrorHandler reports an error and returns the matching exit code.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}
