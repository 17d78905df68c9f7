package integral

import (
	"context"
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/agbru/quadbench/internal/quadrature"
)

// TestSplitCompleteness_PropertyBased verifies that for every (n, threads)
// the chunks cover 1..n-1 exactly once, in order, with sizes differing by at
// most one.
func TestSplitCompleteness_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	properties.Property("chunks partition the interior indices", prop.ForAll(
		func(n, threads int) bool {
			chunks := Split(n-1, threads)
			if len(chunks) != threads {
				return false
			}
			next := 1
			minLen, maxLen := math.MaxInt, 0
			for _, c := range chunks {
				if c.Start != next || c.Len() < 0 {
					return false
				}
				next = c.End + 1
				minLen = min(minLen, c.Len())
				maxLen = max(maxLen, c.Len())
			}
			return next == n && maxLen-minLen <= 1
		},
		gen.IntRange(2, 100_000),
		gen.IntRange(1, 64),
	))

	properties.Property("larger chunks come first", prop.ForAll(
		func(n, threads int) bool {
			chunks := Split(n-1, threads)
			for i := 1; i < len(chunks); i++ {
				if chunks[i].Len() > chunks[i-1].Len() {
					return false
				}
			}
			return true
		},
		gen.IntRange(2, 10_000),
		gen.IntRange(1, 200),
	))

	properties.TestingRun(t)
}

// TestCrossStrategyAgreement_PropertyBased verifies that both parallel
// reducers match the sequential reference within 1e-9*n.
func TestCrossStrategyAgreement_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	reducers := []Reducer{Queue{}, Partitioned{}}
	for _, r := range reducers {
		properties.Property(r.Name()+" agrees with sequential", prop.ForAll(
			func(n, threads int, b float64) bool {
				iv := quadrature.Interval{A: -1, B: b, N: n}
				ref, err := Sequential{}.Reduce(context.Background(), polySin, iv, Options{})
				if err != nil {
					return false
				}
				got, err := r.Reduce(context.Background(), polySin, iv, Options{Threads: threads})
				if err != nil {
					t.Logf("%s n=%d threads=%d: %v", r.Name(), n, threads, err)
					return false
				}
				return math.Abs(got.Value-ref.Value) < tolerance(n)
			},
			gen.IntRange(1, 20_000),
			gen.IntRange(1, 16),
			gen.Float64Range(0, 50),
		))
	}

	properties.TestingRun(t)
}

// TestQueuePopCount_PropertyBased verifies that the queue reducer folds
// exactly n-1 samples whatever the worker count.
func TestQueuePopCount_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("total pops equal interior count", prop.ForAll(
		func(n, threads int) bool {
			res, err := Queue{}.Reduce(context.Background(), math.Cos, quadrature.Interval{A: 0, B: 1, N: n}, Options{Threads: threads})
			return err == nil && res.Items() == n-1 && len(res.Workers) == threads
		},
		gen.IntRange(1, 5_000),
		gen.IntRange(1, 32),
	))

	properties.TestingRun(t)
}
