// Package sysmon samples the CPU time consumed by the current process, from
// which the CLI derives how many cores a reduction kept busy.
package sysmon

import "time"

// CPUTimes is the processor time consumed by the process since it started.
type CPUTimes struct {
	User   time.Duration
	System time.Duration
}

// Total returns user plus system time.
func (c CPUTimes) Total() time.Duration { return c.User + c.System }

// Sub returns the CPU time consumed between earlier and c.
func (c CPUTimes) Sub(earlier CPUTimes) CPUTimes {
	return CPUTimes{User: c.User - earlier.User, System: c.System - earlier.System}
}

// Utilization returns CPU time per unit of wall time, in cores. A fully
// parallel reduction on four busy cores reports close to 4.
func Utilization(cpu CPUTimes, wall time.Duration) float64 {
	if wall <= 0 {
		return 0
	}
	return float64(cpu.Total()) / float64(wall)
}

// Sample reads the process CPU times. ok is false when the platform does not
// expose them, in which case the zero value is returned.
func Sample() (CPUTimes, bool) {
	return sample()
}
