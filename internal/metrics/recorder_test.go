package metrics

import (
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/agbru/quadbench/internal/quadrature"
)

func workerErr(id int) error {
	return &quadrature.WorkerError{Strategy: "queue", Worker: id, Cause: errors.New("nan")}
}

func TestRecorderObserveRun(t *testing.T) {
	t.Parallel()
	r := NewRecorder()

	r.ObserveRun("queue", 3*time.Millisecond, 999, nil)
	r.ObserveRun("queue", 2*time.Millisecond, 999, nil)
	r.ObserveRun("queue", time.Millisecond, 0, errors.Join(workerErr(0), workerErr(2)))

	if got := testutil.ToFloat64(r.runs.WithLabelValues("queue", StatusOK)); got != 2 {
		t.Errorf("ok runs = %v, want 2", got)
	}
	if got := testutil.ToFloat64(r.runs.WithLabelValues("queue", StatusFailed)); got != 1 {
		t.Errorf("failed runs = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.workerFailures.WithLabelValues("queue")); got != 2 {
		t.Errorf("worker failures = %v, want 2", got)
	}
	if got := testutil.ToFloat64(r.items.WithLabelValues("queue")); got != 1998 {
		t.Errorf("items = %v, want 1998", got)
	}
	if got := testutil.CollectAndCount(r.runDuration); got != 1 {
		t.Errorf("duration series = %d, want 1", got)
	}
}

func TestRecorderObserveMemory(t *testing.T) {
	t.Parallel()
	r := NewRecorder()
	r.ObserveMemory("partitioned", MemoryUsage{HeapDelta: -3072, Allocated: 512})
	r.ObserveMemory("partitioned", MemoryUsage{HeapDelta: 1024, Allocated: 256})
	if got := testutil.ToFloat64(r.heapDelta.WithLabelValues("partitioned")); got != 1024 {
		t.Errorf("heap delta = %v, want the last observation 1024", got)
	}
	if got := testutil.ToFloat64(r.allocated.WithLabelValues("partitioned")); got != 768 {
		t.Errorf("allocated = %v, want 768", got)
	}
}

func TestRecorderHandler(t *testing.T) {
	t.Parallel()
	r := NewRecorder()
	r.ObserveRun("sequential", time.Millisecond, 0, nil)

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`quadbench_reductions_total{status="ok",strategy="sequential"} 1`, "go_goroutines"} {
		if !strings.Contains(string(body), want) {
			t.Errorf("exposition missing %q", want)
		}
	}
}

func TestRecorderWriteTextfile(t *testing.T) {
	t.Parallel()
	r := NewRecorder()
	r.ObserveRun("partitioned", time.Millisecond, 10, nil)

	path := filepath.Join(t.TempDir(), "quadbench.prom")
	if err := r.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `quadbench_samples_total{strategy="partitioned"} 10`) {
		t.Errorf("textfile missing samples counter:\n%s", data)
	}
}

func TestCountWorkerFailures(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"plain", errors.New("x"), 0},
		{"single", workerErr(0), 1},
		{"wrapped", fmt.Errorf("run: %w", workerErr(1)), 1},
		{"joined", errors.Join(workerErr(0), workerErr(1), workerErr(2)), 3},
		{"wrapped joined", fmt.Errorf("run: %w", errors.Join(workerErr(0), workerErr(1))), 2},
	}
	for _, tt := range tests {
		if got := CountWorkerFailures(tt.err); got != tt.want {
			t.Errorf("%s: CountWorkerFailures() = %d, want %d", tt.name, got, tt.want)
		}
	}
}
