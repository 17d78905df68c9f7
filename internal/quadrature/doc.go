// Package quadrature defines the composite trapezoid kernel shared by every
// reducer: the interval model, sample weights and the error taxonomy of a
// reduction. Nothing in this package is concurrent.
package quadrature
