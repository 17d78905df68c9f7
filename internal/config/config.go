// Package config parses command-line flags and environment overrides into
// the application configuration.
package config

import (
	"flag"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"

	apperrors "github.com/agbru/quadbench/internal/errors"
	"github.com/agbru/quadbench/internal/functions"
	"github.com/agbru/quadbench/internal/taskbag"
)

// EnvPrefix is prepended to every environment variable override.
const EnvPrefix = "QUADBENCH_"

// Defaults applied when neither a flag nor an environment variable is set.
const (
	DefaultSweep     = "2:6"
	DefaultFunction  = "sin"
	DefaultAlgo      = "all"
	DefaultRepeat    = 1
	DefaultTolerance = 1e-9
	DefaultLogLevel  = "warn"
	// MaxSweepExponent caps -sweep so that n fits comfortably in an int.
	MaxSweepExponent = 9
)

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// NList is the raw comma-separated list of subdivision counts.
	NList string
	// Sweep is the raw "lo:hi" range of powers of ten used when NList is empty.
	Sweep string
	// Sizes is the resolved list of subdivision counts, in run order.
	Sizes []int
	// A and B bound the integration interval.
	A, B float64
	// Function names the integrand (see package functions).
	Function string
	// Algo is "all" or the name of a single reducer.
	Algo string
	// Threads is the worker count of the parallel reducers. Zero means
	// "estimate from the hardware".
	Threads int
	// Queue selects the task bag of the queue reducer.
	Queue string
	// QueueCapacity bounds the queue when positive (stream bag).
	QueueCapacity int
	// Repeat is the number of timed runs per (reducer, n).
	Repeat int
	// Tolerance scales the agreement bound: results must agree within
	// Tolerance*n.
	Tolerance float64
	// OutputFile receives a tab-separated report when set.
	OutputFile string
	// MetricsFile receives the Prometheus text exposition after the sweep.
	MetricsFile string
	// MetricsAddr serves /metrics while the sweep runs.
	MetricsAddr string
	// LogLevel is the zerolog level name.
	LogLevel string
	Quiet    bool
	Verbose  bool
	Details  bool
	NoColor  bool
}

// ParseConfig parses args into an AppConfig, applies environment overrides
// for flags that were not set, resolves derived fields and validates the
// result. Usage and errors are written to errWriter.
func ParseConfig(programName string, args []string, errWriter io.Writer, availableAlgos []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	cfg := AppConfig{}
	algoHelp := fmt.Sprintf("Reducer to run: 'all' or one of %s.", strings.Join(availableAlgos, ", "))

	fs.StringVar(&cfg.NList, "n", "", "Comma-separated subdivision counts (overrides -sweep).")
	fs.StringVar(&cfg.Sweep, "sweep", DefaultSweep, "Powers of ten to sweep, as lo:hi (n = 10^lo .. 10^hi).")
	fs.Float64Var(&cfg.A, "a", 0, "Lower bound of the interval.")
	fs.Float64Var(&cfg.B, "b", math.Pi, "Upper bound of the interval.")
	fs.StringVar(&cfg.Function, "func", DefaultFunction, fmt.Sprintf("Integrand: one of %s.", strings.Join(functions.Names(), ", ")))
	fs.StringVar(&cfg.Algo, "algo", DefaultAlgo, algoHelp)
	fs.IntVar(&cfg.Threads, "threads", 0, "Workers per parallel reduction (0 = estimate from CPU count).")
	fs.StringVar(&cfg.Queue, "queue", string(taskbag.KindMutex), "Task bag of the queue reducer: mutex, channel or stream.")
	fs.IntVar(&cfg.QueueCapacity, "queue-capacity", 0, "Bound the queue to this many items (implies -queue=stream when -queue is unset).")
	fs.IntVar(&cfg.Repeat, "repeat", DefaultRepeat, "Timed runs per reducer and n.")
	fs.Float64Var(&cfg.Tolerance, "tolerance", DefaultTolerance, "Agreement bound per subdivision (results must agree within tolerance*n).")
	fs.StringVar(&cfg.OutputFile, "output", "", "Write a tab-separated report to this file.")
	fs.StringVar(&cfg.OutputFile, "o", "", "Shorthand for -output.")
	fs.StringVar(&cfg.MetricsFile, "metrics-file", "", "Write Prometheus metrics to this file after the sweep.")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address while the sweep runs.")
	fs.StringVar(&cfg.LogLevel, "log-level", DefaultLogLevel, "Log level: debug, info, warn, error.")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Print only one line per result.")
	fs.BoolVar(&cfg.Quiet, "q", false, "Shorthand for -quiet.")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Print every repeat and worker statistics.")
	fs.BoolVar(&cfg.Verbose, "v", false, "Shorthand for -verbose.")
	fs.BoolVar(&cfg.Details, "details", false, "Print error against the closed form and CPU usage.")
	fs.BoolVar(&cfg.Details, "d", false, "Shorthand for -details.")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output.")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	applyEnvOverrides(&cfg, fs)
	if cfg.QueueCapacity > 0 && !isFlagSet(fs, "queue") && getEnvString("QUEUE", "") == "" {
		cfg.Queue = string(taskbag.KindStream)
	}

	sizes, err := resolveSizes(cfg.NList, cfg.Sweep)
	if err != nil {
		fmt.Fprintln(errWriter, "Error:", err)
		return AppConfig{}, err
	}
	cfg.Sizes = sizes

	if err := cfg.Validate(availableAlgos); err != nil {
		fmt.Fprintln(errWriter, "Error:", err)
		return AppConfig{}, err
	}
	return cfg, nil
}

// Validate checks semantic constraints that flag parsing cannot express.
func (c AppConfig) Validate(availableAlgos []string) error {
	if len(c.Sizes) == 0 {
		return apperrors.NewConfigError("no subdivision count selected")
	}
	for _, n := range c.Sizes {
		if n < 1 {
			return apperrors.NewConfigError("invalid subdivision count %d: must be at least 1", n)
		}
	}
	if c.Threads < 0 {
		return apperrors.NewConfigError("invalid -threads %d: must be positive (or 0 for auto)", c.Threads)
	}
	if c.Repeat < 1 {
		return apperrors.NewConfigError("invalid -repeat %d: must be at least 1", c.Repeat)
	}
	if c.QueueCapacity < 0 {
		return apperrors.NewConfigError("invalid -queue-capacity %d: must not be negative", c.QueueCapacity)
	}
	if c.Tolerance <= 0 || math.IsNaN(c.Tolerance) {
		return apperrors.NewConfigError("invalid -tolerance %g: must be positive", c.Tolerance)
	}
	if math.IsNaN(c.A) || math.IsNaN(c.B) || math.IsInf(c.A, 0) || math.IsInf(c.B, 0) {
		return apperrors.NewConfigError("interval bounds must be finite")
	}
	if _, err := functions.Get(c.Function); err != nil {
		return apperrors.NewConfigError("%v", err)
	}
	if c.Algo != "all" && !slices.Contains(availableAlgos, c.Algo) {
		return apperrors.NewConfigError("unrecognized algorithm '%s'. Valid algorithms: all, %s", c.Algo, strings.Join(availableAlgos, ", "))
	}
	if !slices.Contains(taskbag.Kinds(), taskbag.Kind(c.Queue)) {
		return apperrors.NewConfigError("unrecognized queue '%s'. Valid queues: mutex, channel, stream", c.Queue)
	}
	return nil
}

// resolveSizes returns the explicit list when given, otherwise the powers of
// ten described by sweep.
func resolveSizes(nList, sweep string) ([]int, error) {
	if strings.TrimSpace(nList) != "" {
		var sizes []int
		for _, part := range strings.Split(nList, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			n, err := strconv.Atoi(strings.ReplaceAll(part, "_", ""))
			if err != nil {
				return nil, apperrors.ValidationError{Field: "n", Message: fmt.Sprintf("%q is not an integer", part)}
			}
			sizes = append(sizes, n)
		}
		return sizes, nil
	}
	return parseSweep(sweep)
}

// parseSweep expands "lo:hi" into 10^lo, ..., 10^hi. A single exponent "k"
// is accepted as "k:k".
func parseSweep(sweep string) ([]int, error) {
	loStr, hiStr, found := strings.Cut(strings.TrimSpace(sweep), ":")
	if !found {
		hiStr = loStr
	}
	lo, errLo := strconv.Atoi(strings.TrimSpace(loStr))
	hi, errHi := strconv.Atoi(strings.TrimSpace(hiStr))
	if errLo != nil || errHi != nil {
		return nil, apperrors.ValidationError{Field: "sweep", Message: fmt.Sprintf("%q is not of the form lo:hi", sweep)}
	}
	if lo < 0 || hi < lo || hi > MaxSweepExponent {
		return nil, apperrors.ValidationError{Field: "sweep", Message: fmt.Sprintf("exponents must satisfy 0 <= lo <= hi <= %d", MaxSweepExponent)}
	}
	sizes := make([]int, 0, hi-lo+1)
	n := 1
	for e := 0; e < lo; e++ {
		n *= 10
	}
	for e := lo; e <= hi; e++ {
		sizes = append(sizes, n)
		n *= 10
	}
	return sizes, nil
}
