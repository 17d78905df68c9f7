package quadrature

// Func is a real-to-real integrand. Implementations must be free of shared
// mutable state: a single Func is invoked concurrently by every worker.
type Func func(float64) float64

// Interval describes the integration domain [A, B] split into N subdivisions.
// The step is always derived from the three fields and never stored.
type Interval struct {
	A float64
	B float64
	N int
}

// NewInterval builds an Interval and validates it.
func NewInterval(a, b float64, n int) (Interval, error) {
	iv := Interval{A: a, B: b, N: n}
	if err := iv.Validate(); err != nil {
		return Interval{}, err
	}
	return iv, nil
}

// Validate reports ErrInvalidInterval when the interval has no subdivisions.
func (iv Interval) Validate() error {
	if iv.N < 1 {
		return ErrInvalidInterval
	}
	return nil
}

// Step returns h = (B - A) / N.
func (iv Interval) Step() float64 {
	return (iv.B - iv.A) / float64(iv.N)
}

// Interior returns the number of interior sample indices (1..N-1).
func (iv Interval) Interior() int {
	if iv.N < 1 {
		return 0
	}
	return iv.N - 1
}

// Point returns the abscissa of sample i. The last sample maps to B exactly
// so that edge contributions match EdgeSum bit for bit.
func (iv Interval) Point(i int) float64 {
	if i == iv.N {
		return iv.B
	}
	return iv.at(i, iv.Step())
}

// at computes A + i*h. The explicit conversion forbids fusing the multiply
// and add, so every caller observes the same abscissa.
func (iv Interval) at(i int, h float64) float64 {
	return iv.A + float64(float64(i)*h)
}

// Weight returns the trapezoid weight of sample i: 0.5 on both edges and 1
// everywhere else.
func Weight(i, n int) float64 {
	if i == 0 || i == n {
		return 0.5
	}
	return 1.0
}

// Sample returns the weighted contribution of sample i.
func (iv Interval) Sample(f Func, i int) float64 {
	return Weight(i, iv.N) * f(iv.Point(i))
}

// EdgeSum returns 0.5 * (f(A) + f(B)), the contribution of both edge samples.
func (iv Interval) EdgeSum(f Func) float64 {
	return 0.5 * (f(iv.A) + f(iv.B))
}

// SumRange folds the interior samples lo..hi (inclusive) in ascending order.
// An empty range (hi < lo) yields 0.
func (iv Interval) SumRange(f Func, lo, hi int) float64 {
	h := iv.Step()
	var sum float64
	for i := lo; i <= hi; i++ {
		sum += f(iv.at(i, h))
	}
	return sum
}
