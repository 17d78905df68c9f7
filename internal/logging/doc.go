// Package logging provides the structured logging interface used by the
// reducers and the benchmark driver. The default backend is zerolog; a
// standard library adapter exists for callers that already own a log.Logger.
package logging
