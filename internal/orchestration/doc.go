// Package orchestration drives a sweep: it runs the selected reducers over
// every subdivision count, times and measures each run, and compares the
// results. Presentation is reached only through the ProgressReporter,
// ResultPresenter and ErrorHandler interfaces.
package orchestration
