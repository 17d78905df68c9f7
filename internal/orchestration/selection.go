package orchestration

import (
	"github.com/agbru/quadbench/internal/integral"
)

// GetReducersToRun returns the reducers selected by algo: every registered
// reducer for "all", in sorted order, otherwise the single named one. An
// unknown name yields nil.
func GetReducersToRun(algo string, factory integral.Factory) []integral.Reducer {
	if algo == "all" {
		return factory.GetAll()
	}
	if r, err := factory.Get(algo); err == nil {
		return []integral.Reducer{r}
	}
	return nil
}
