// Package metrics collects runtime memory snapshots and Prometheus metrics
// for the reductions of a sweep.
package metrics
