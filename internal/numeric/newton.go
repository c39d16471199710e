package numeric

import (
	"fmt"
	"math"

	"github.com/bohounsoun/thermosim/internal/thermo"
)

const (
	DefaultTolerance     = 1e-10
	DefaultMaxIterations = 50
)

// Newton is a scalar Newton-Raphson root solver. Tolerance bounds both the
// residual |f(x)| at convergence and the smallest derivative magnitude the
// iteration will divide by; MaxIterations bounds worst-case runtime.
type Newton struct {
	Tolerance     float64
	MaxIterations int
}

func NewNewton() *Newton {
	return &Newton{
		Tolerance:     DefaultTolerance,
		MaxIterations: DefaultMaxIterations,
	}
}

// Solve iterates x_{n+1} = x_n - f(x_n)/df(x_n) from x0 until |f(x)| falls
// below the tolerance. A nil df falls back to a central finite difference.
// The same inputs always yield the same root or the same failure.
func (n *Newton) Solve(f, df func(float64) float64, x0 float64) (float64, error) {
	if n.Tolerance <= 0 {
		return 0, fmt.Errorf("%w: tolerance must be positive, got %g", thermo.ErrDivergence, n.Tolerance)
	}
	if n.MaxIterations <= 0 {
		return 0, fmt.Errorf("%w: max iterations must be positive, got %d", thermo.ErrDivergence, n.MaxIterations)
	}

	if df == nil {
		df = func(x float64) float64 {
			h := diffStep(x)
			return (f(x+h) - f(x-h)) / (2 * h)
		}
	}

	x := x0
	for i := 0; i < n.MaxIterations; i++ {
		fx := f(x)
		if math.IsNaN(fx) || math.IsInf(fx, 0) {
			return 0, fmt.Errorf("%w: f(%g) is not finite at iteration %d", thermo.ErrDivergence, x, i)
		}
		if math.Abs(fx) < n.Tolerance {
			return x, nil
		}

		d := df(x)
		if math.Abs(d) < n.Tolerance {
			return 0, fmt.Errorf("%w: derivative %g vanishes at x=%g (iteration %d)", thermo.ErrDivergence, d, x, i)
		}

		x -= fx / d
	}

	return 0, fmt.Errorf("%w: no convergence after %d iterations (last x=%g, |f|=%g)",
		thermo.ErrDivergence, n.MaxIterations, x, math.Abs(f(x)))
}

// diffStep picks a finite-difference step scaled to x so the approximation
// stays well conditioned for very small and very large roots alike.
func diffStep(x float64) float64 {
	h := 1e-7 * math.Abs(x)
	if h == 0 {
		h = 1e-7
	}
	return h
}
