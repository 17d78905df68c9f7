// Package format holds the string formatting helpers shared by the CLI
// presenter and the progress display: durations, ETAs, counts, byte sizes
// and progress bars.
package format
