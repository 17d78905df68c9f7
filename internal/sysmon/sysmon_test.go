package sysmon

import (
	"runtime"
	"testing"
	"time"
)

func TestSample_Monotonic(t *testing.T) {
	before, ok := Sample()
	if !ok {
		t.Skipf("CPU times unavailable on %s", runtime.GOOS)
	}
	// Burn a little CPU so the counters move.
	x := 0.0
	for i := range 5_000_000 {
		x += float64(i) * 1e-9
	}
	_ = x
	after, _ := Sample()

	d := after.Sub(before)
	if d.User < 0 || d.System < 0 {
		t.Errorf("CPU times went backwards: %+v", d)
	}
	if after.Total() < before.Total() {
		t.Errorf("Total decreased: %v -> %v", before.Total(), after.Total())
	}
}

func TestUtilization(t *testing.T) {
	t.Parallel()
	tests := []struct {
		cpu  CPUTimes
		wall time.Duration
		want float64
	}{
		{CPUTimes{User: 2 * time.Second}, time.Second, 2},
		{CPUTimes{User: time.Second, System: time.Second}, 4 * time.Second, 0.5},
		{CPUTimes{User: time.Second}, 0, 0},
	}
	for _, tt := range tests {
		if got := Utilization(tt.cpu, tt.wall); got != tt.want {
			t.Errorf("Utilization(%+v, %v) = %v, want %v", tt.cpu, tt.wall, got, tt.want)
		}
	}
}
