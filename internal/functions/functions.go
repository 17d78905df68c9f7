// Package functions holds the integrands selectable from the command line.
package functions

import (
	"fmt"
	"math"
	"sort"

	"github.com/agbru/quadbench/internal/quadrature"
)

// Integrand couples a function with its display form and, when known in
// closed form, an antiderivative used to report the absolute error.
type Integrand struct {
	Name           string
	Expression     string
	F              quadrature.Func
	Antiderivative quadrature.Func
}

// Exact returns F(b) - F(a) and true when an antiderivative is registered.
func (in Integrand) Exact(a, b float64) (float64, bool) {
	if in.Antiderivative == nil {
		return 0, false
	}
	return in.Antiderivative(b) - in.Antiderivative(a), true
}

var registry = map[string]Integrand{
	"sin": {
		Name:           "sin",
		Expression:     "sin(x)",
		F:              math.Sin,
		Antiderivative: func(x float64) float64 { return -math.Cos(x) },
	},
	"poly-sin": {
		Name:       "poly-sin",
		Expression: "sin(((x+100)x+100)x+100.123)",
		F: func(x float64) float64 {
			return math.Sin(((x+100)*x+100)*x + 100.123)
		},
	},
	"square": {
		Name:           "square",
		Expression:     "x^2",
		F:              func(x float64) float64 { return x * x },
		Antiderivative: func(x float64) float64 { return x * x * x / 3 },
	},
	"pi": {
		Name:           "pi",
		Expression:     "4/(1+x^2)",
		F:              func(x float64) float64 { return 4 / (1 + x*x) },
		Antiderivative: func(x float64) float64 { return 4 * math.Atan(x) },
	},
}

// Get returns the integrand registered under name.
func Get(name string) (Integrand, error) {
	in, ok := registry[name]
	if !ok {
		return Integrand{}, fmt.Errorf("unknown function %q (available: %v)", name, Names())
	}
	return in, nil
}

// Names lists the registered integrands in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
