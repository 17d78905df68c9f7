package orchestration

import (
	"testing"

	"github.com/agbru/quadbench/internal/integral"
)

func TestGetReducersToRun(t *testing.T) {
	t.Parallel()
	factory := integral.NewDefaultFactory()

	t.Run("Single reducer", func(t *testing.T) {
		t.Parallel()
		reducers := GetReducersToRun("queue", factory)
		if len(reducers) != 1 || reducers[0].Name() != "queue" {
			t.Errorf("expected [queue], got %v", reducers)
		}
	})

	t.Run("All reducers in sorted order", func(t *testing.T) {
		t.Parallel()
		reducers := GetReducersToRun("all", factory)
		var names []string
		for _, r := range reducers {
			names = append(names, r.Name())
		}
		want := []string{"partitioned", "queue", "sequential"}
		if len(names) != len(want) {
			t.Fatalf("got %v, want %v", names, want)
		}
		for i := range want {
			if names[i] != want[i] {
				t.Errorf("got %v, want %v", names, want)
				break
			}
		}
	})

	t.Run("Unknown reducer", func(t *testing.T) {
		t.Parallel()
		if reducers := GetReducersToRun("simd", factory); reducers != nil {
			t.Errorf("expected nil, got %v", reducers)
		}
	})
}
