package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agbru/quadbench/internal/quadrature"
)

// Run status label values.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Recorder accumulates Prometheus metrics for the runs of a sweep. Each
// Recorder owns a private registry so that tests and concurrent sweeps do not
// share state.
type Recorder struct {
	registry       *prometheus.Registry
	runDuration    *prometheus.HistogramVec
	runs           *prometheus.CounterVec
	workerFailures *prometheus.CounterVec
	items          *prometheus.CounterVec
	heapDelta      *prometheus.GaugeVec
	allocated      *prometheus.CounterVec
}

// NewRecorder builds a Recorder with the Go runtime and process collectors
// registered next to the reduction metrics.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		runDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "quadbench_reduction_duration_seconds",
			Help:    "Wall-clock duration of one reduction.",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 14),
		}, []string{"strategy"}),
		runs: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "quadbench_reductions_total",
			Help: "Reductions by strategy and outcome.",
		}, []string{"strategy", "status"}),
		workerFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "quadbench_worker_failures_total",
			Help: "Workers that terminated abnormally.",
		}, []string{"strategy"}),
		items: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "quadbench_samples_total",
			Help: "Interior samples folded by parallel workers.",
		}, []string{"strategy"}),
		heapDelta: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "quadbench_heap_delta_bytes",
			Help: "Heap growth across the most recent reduction.",
		}, []string{"strategy"}),
		allocated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "quadbench_allocated_bytes_total",
			Help: "Bytes allocated while reductions ran.",
		}, []string{"strategy"}),
	}
}

// ObserveRun records one reduction. items is the number of samples processed
// by workers; err is the reduction's error, if any.
func (r *Recorder) ObserveRun(strategy string, d time.Duration, items int, err error) {
	if err != nil {
		r.runs.WithLabelValues(strategy, StatusFailed).Inc()
		if n := CountWorkerFailures(err); n > 0 {
			r.workerFailures.WithLabelValues(strategy).Add(float64(n))
		}
		return
	}
	r.runs.WithLabelValues(strategy, StatusOK).Inc()
	r.runDuration.WithLabelValues(strategy).Observe(d.Seconds())
	if items > 0 {
		r.items.WithLabelValues(strategy).Add(float64(items))
	}
}

// ObserveMemory records the allocator usage of one reduction.
func (r *Recorder) ObserveMemory(strategy string, usage MemoryUsage) {
	r.heapDelta.WithLabelValues(strategy).Set(float64(usage.HeapDelta))
	r.allocated.WithLabelValues(strategy).Add(float64(usage.Allocated))
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// WriteTextfile writes the current metrics to path in the text format read by
// the node exporter's textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}

// CountWorkerFailures counts the *quadrature.WorkerError values in err's
// tree, following both single and joined wrapping.
func CountWorkerFailures(err error) int {
	switch e := err.(type) {
	case nil:
		return 0
	case *quadrature.WorkerError:
		return 1
	case interface{ Unwrap() []error }:
		n := 0
		for _, c := range e.Unwrap() {
			n += CountWorkerFailures(c)
		}
		return n
	case interface{ Unwrap() error }:
		return CountWorkerFailures(e.Unwrap())
	}
	return 0
}
