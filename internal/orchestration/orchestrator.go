package orchestration

import (
	"context"
	"fmt"
	"io"
	"math"
	"runtime/debug"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"gonum.org/v1/gonum/stat"

	"github.com/agbru/quadbench/internal/config"
	apperrors "github.com/agbru/quadbench/internal/errors"
	"github.com/agbru/quadbench/internal/integral"
	"github.com/agbru/quadbench/internal/logging"
	"github.com/agbru/quadbench/internal/metrics"
	"github.com/agbru/quadbench/internal/parallel"
	"github.com/agbru/quadbench/internal/progress"
	"github.com/agbru/quadbench/internal/quadrature"
	"github.com/agbru/quadbench/internal/sysmon"
	"github.com/agbru/quadbench/internal/taskbag"
)

const (
	tracerName = "github.com/agbru/quadbench/internal/orchestration"
	// ReferenceStrategy is preferred as the comparison baseline when it ran.
	ReferenceStrategy = "sequential"
)

// Observers are the optional sinks a sweep reports into.
type Observers struct {
	// Logger receives one line per run. Nil discards.
	Logger logging.Logger
	// Recorder receives Prometheus observations. Nil disables metrics.
	Recorder *metrics.Recorder
}

// ExecuteReductions runs every reducer at every size of cfg.Sizes, cfg.Repeat
// times each. Runs execute one after the other so that each parallel reducer
// has the machine to itself while it is timed.
//
// ctx is checked between runs: once it is done the sweep stops and the
// results gathered so far are returned together with ctx.Err(). A reduction
// already in flight always completes.
//
// Parameters:
//   - ctx: Cancellation between runs and the parent of the tracing spans.
//   - reducers: The reducers to run, in display order.
//   - f: The integrand.
//   - cfg: The application configuration (sizes, bounds, threads, queue).
//   - obs: Logging and metrics sinks.
//   - progressReporter: The progress display (NullProgressReporter for quiet mode).
//   - out: The writer handed to the progress display.
//
// Returns:
//   - []RunResult: One result per (n, reducer), grouped by n.
//   - error: ctx.Err() if the sweep was interrupted, nil otherwise.
func ExecuteReductions(ctx context.Context, reducers []integral.Reducer, f quadrature.Func, cfg config.AppConfig, obs Observers, progressReporter ProgressReporter, out io.Writer) ([]RunResult, error) {
	logger := obs.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	repeat := max(cfg.Repeat, 1)
	totalRuns := len(cfg.Sizes) * len(reducers)
	opts := integral.Options{
		Threads:       cfg.Threads,
		Queue:         taskbag.Kind(cfg.Queue),
		QueueCapacity: cfg.QueueCapacity,
		Logger:        logger,
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "sweep")
	span.SetAttributes(
		attribute.Int("sweep.runs", totalRuns),
		attribute.Int("sweep.repeat", repeat),
	)
	defer span.End()

	progressChan := make(chan progress.ProgressUpdate, totalRuns+1)
	report := progress.ChannelCallback(progressChan)
	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go progressReporter.DisplayProgress(&displayWg, progressChan, totalRuns, out)
	defer func() {
		close(progressChan)
		displayWg.Wait()
	}()

	mem := metrics.NewMemoryCollector()
	results := make([]RunResult, 0, totalRuns)
	completed := 0

	for _, n := range cfg.Sizes {
		for _, r := range reducers {
			if err := ctx.Err(); err != nil {
				logger.Info("sweep interrupted", logging.Int("completed", completed), logging.Int("total", totalRuns))
				return results, err
			}
			res := runOne(ctx, r, f, cfg.A, cfg.B, n, repeat, opts, mem, obs.Recorder)
			if res.Err != nil {
				logger.Error("reduction failed", res.Err, logging.String("strategy", res.Strategy), logging.Int("n", n))
			} else {
				logger.Info("reduction complete",
					logging.String("strategy", res.Strategy),
					logging.Int("n", n),
					logging.Float64("value", res.Value),
					logging.Duration("mean", res.Mean))
			}
			results = append(results, res)
			completed++
			report(progress.ProgressUpdate{Completed: completed, Total: totalRuns, Strategy: res.Strategy, N: n})
		}
	}
	return results, nil
}

// runOne times repeat reductions of r at size n and summarizes them.
func runOne(ctx context.Context, r integral.Reducer, f quadrature.Func, a, b float64, n, repeat int, opts integral.Options, mem *metrics.MemoryCollector, rec *metrics.Recorder) RunResult {
	res := RunResult{Strategy: r.Name(), N: n, Threads: 1}
	if res.Strategy != ReferenceStrategy && opts.Threads > 0 {
		res.Threads = opts.Threads
	}

	iv, err := quadrature.NewInterval(a, b, n)
	if err != nil {
		res.Err = apperrors.ReductionError{Strategy: res.Strategy, N: n, Cause: err}
		return res
	}

	var wall time.Duration
	for range repeat {
		memBefore := mem.Snapshot()
		cpuBefore, cpuOK := sysmon.Sample()
		start := time.Now()

		out, err := safeReduce(ctx, r, f, iv, opts)

		elapsed := time.Since(start)
		cpuAfter, _ := sysmon.Sample()
		usage := mem.Snapshot().Since(memBefore)
		if rec != nil {
			rec.ObserveRun(res.Strategy, elapsed, out.Items(), err)
			rec.ObserveMemory(res.Strategy, usage)
		}
		if err != nil {
			res.Err = apperrors.ReductionError{Strategy: res.Strategy, N: n, Cause: err}
			break
		}

		res.Value = out.Value
		res.Workers = out.Workers
		if len(out.Workers) > 0 {
			res.Threads = len(out.Workers)
		}
		res.HeapDelta = usage.HeapDelta
		res.Allocated = usage.Allocated
		if cpuOK {
			cpu := cpuAfter.Sub(cpuBefore)
			res.CPU.User += cpu.User
			res.CPU.System += cpu.System
		}
		res.Durations = append(res.Durations, elapsed)
		wall += elapsed
	}

	res.Mean, res.StdDev = summarize(res.Durations)
	res.Utilization = sysmon.Utilization(res.CPU, wall)
	return res
}

// safeReduce converts a panic escaping the reducer itself (the sequential
// reducer runs f on the calling goroutine) into an error.
func safeReduce(ctx context.Context, r integral.Reducer, f quadrature.Func, iv quadrature.Interval, opts integral.Options) (res integral.Result, err error) {
	defer func() {
		if p := recover(); p != nil {
			res, err = integral.Result{}, &parallel.PanicError{Value: p, Stack: debug.Stack()}
		}
	}()
	return r.Reduce(ctx, f, iv, opts)
}

// summarize returns the mean and sample standard deviation of ds.
func summarize(ds []time.Duration) (mean, stddev time.Duration) {
	switch len(ds) {
	case 0:
		return 0, 0
	case 1:
		return ds[0], 0
	}
	xs := make([]float64, len(ds))
	for i, d := range ds {
		xs[i] = float64(d)
	}
	m, sd := stat.MeanStdDev(xs, nil)
	return time.Duration(m), time.Duration(sd)
}

// AnalyzeComparisonResults compares, for every n, each successful run with
// the reference run at that n: the sequential reducer when it succeeded,
// otherwise the first success. Runs agree when their values differ by at most
// opts.Tolerance*n. The verdicts are stored in results before the table is
// presented.
//
// Parameters:
//   - results: The runs to analyze, as returned by ExecuteReductions.
//   - opts: Presentation options, including the tolerance.
//   - presenter: The result presenter for display formatting.
//   - handler: The error handler used when nothing succeeded.
//   - out: The io.Writer for the summary report.
//
// Returns:
//   - int: An exit code indicating success (0) or the type of failure.
func AnalyzeComparisonResults(results []RunResult, opts PresentationOptions, presenter ResultPresenter, handler ErrorHandler, out io.Writer) int {
	var firstError error
	var last *RunResult
	successCount, mismatches, failures := 0, 0, 0

	for _, group := range groupByN(results) {
		ref := pickReference(results, group)
		for _, i := range group {
			res := &results[i]
			switch {
			case res.Err != nil:
				res.Verdict = VerdictFailed
				failures++
				if firstError == nil {
					firstError = res.Err
				}
				continue
			case i == ref:
				res.Verdict = VerdictReference
				last = res
			default:
				res.Deviation = math.Abs(res.Value - results[ref].Value)
				if withinTolerance(res.Deviation, opts.Tolerance, res.N) {
					res.Verdict = VerdictAgree
				} else {
					res.Verdict = VerdictMismatch
					mismatches++
				}
			}
			successCount++
		}
	}

	presenter.PresentComparisonTable(results, opts, out)

	if successCount == 0 {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No reducer could complete the integral.\n")
		return handler.HandleError(firstError, 0, out)
	}
	if mismatches > 0 {
		fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! %d result(s) disagree with the reference beyond tolerance.\n", mismatches)
		return apperrors.ExitErrorMismatch
	}
	if failures > 0 {
		fmt.Fprintf(out, "\nGlobal Status: Partial success. %d run(s) failed; all completed results are consistent.\n", failures)
	} else {
		fmt.Fprintf(out, "\nGlobal Status: Success. All results are consistent.\n")
	}
	if last != nil {
		presenter.PresentResult(*last, opts, out)
	}
	return apperrors.ExitSuccess
}

// withinTolerance reports |deviation| <= tolerance*n. NaN never agrees.
func withinTolerance(deviation, tolerance float64, n int) bool {
	return deviation <= tolerance*float64(n)
}

// groupByN returns the indices of results grouped by N, groups ordered by
// first appearance.
func groupByN(results []RunResult) [][]int {
	var groups [][]int
	index := make(map[int]int)
	for i, r := range results {
		g, ok := index[r.N]
		if !ok {
			g = len(groups)
			index[r.N] = g
			groups = append(groups, nil)
		}
		groups[g] = append(groups[g], i)
	}
	return groups
}

// pickReference returns the index of the reference run of a group, or -1
// when every run in it failed.
func pickReference(results []RunResult, group []int) int {
	ref := -1
	for _, i := range group {
		if results[i].Err != nil {
			continue
		}
		if results[i].Strategy == ReferenceStrategy {
			return i
		}
		if ref < 0 {
			ref = i
		}
	}
	return ref
}
