// Package apperrors classifies the failures of a sweep and maps each class
// to a process exit code.
//
// ConfigError and ValidationError reject user input before any reduction
// starts. ReductionError ties a reducer failure to the strategy and n that
// produced it and unwraps to the cause, so errors.Is still reaches
// quadrature.ErrWorkerFailure through it.
package apperrors
