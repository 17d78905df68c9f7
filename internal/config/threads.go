package config

import "runtime"

// Thread count resolution chain (highest priority first):
//   1. CLI flag (-threads)
//   2. Environment variable (QUADBENCH_THREADS)
//   3. Hardware estimation (this file)

// ApplyAdaptiveDefaults fills in settings left at their zero "auto" value
// from hardware characteristics. User-specified values are preserved.
func ApplyAdaptiveDefaults(cfg AppConfig) AppConfig {
	if cfg.Threads == 0 {
		cfg.Threads = EstimateOptimalThreads()
	}
	return cfg
}

// EstimateOptimalThreads returns the worker count used when none is given.
// Both parallel reducers are CPU bound, so the estimate follows the number of
// logical processors the scheduler may use, capped by GOMAXPROCS.
func EstimateOptimalThreads() int {
	numCPU := runtime.NumCPU()
	procs := runtime.GOMAXPROCS(0)

	switch {
	case procs < numCPU:
		return max(procs, 1)
	case numCPU <= 1:
		return 1
	default:
		return numCPU
	}
}
