package numeric

import (
	"errors"
	"math"
	"testing"

	"github.com/bohounsoun/thermosim/internal/thermo"
)

func TestNewtonSqrtTwo(t *testing.T) {
	solver := &Newton{Tolerance: 1e-10, MaxIterations: 20}

	f := func(x float64) float64 { return x*x - 2 }
	df := func(x float64) float64 { return 2 * x }

	x, err := solver.Solve(f, df, 1.4)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	if math.Abs(x-math.Sqrt2) > 1e-10 {
		t.Errorf("expected sqrt(2)=%.12f, got %.12f", math.Sqrt2, x)
	}
}

func TestNewtonNumericalDerivative(t *testing.T) {
	solver := NewNewton()

	f := func(x float64) float64 { return math.Cos(x) - x }
	x, err := solver.Solve(f, nil, 1.0)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	if math.Abs(f(x)) > solver.Tolerance {
		t.Errorf("residual too large: f(%f) = %g", x, f(x))
	}
}

func TestNewtonFlatDerivative(t *testing.T) {
	solver := NewNewton()

	// f has zero slope at the starting point.
	f := func(x float64) float64 { return x*x + 1 }
	df := func(x float64) float64 { return 2 * x }

	_, err := solver.Solve(f, df, 0.0)
	if !errors.Is(err, thermo.ErrDivergence) {
		t.Errorf("expected ErrDivergence, got %v", err)
	}
}

func TestNewtonIterationExhaustion(t *testing.T) {
	solver := &Newton{Tolerance: 1e-10, MaxIterations: 3}

	// Newton cycles forever on x^3 - 2x + 2 from 0.
	f := func(x float64) float64 { return x*x*x - 2*x + 2 }
	df := func(x float64) float64 { return 3*x*x - 2 }

	_, err := solver.Solve(f, df, 0.0)
	if !errors.Is(err, thermo.ErrDivergence) {
		t.Errorf("expected ErrDivergence, got %v", err)
	}
}

func TestNewtonDeterministic(t *testing.T) {
	solver := NewNewton()
	f := func(x float64) float64 { return x*x - 5 }

	x1, err1 := solver.Solve(f, nil, 2.0)
	x2, err2 := solver.Solve(f, nil, 2.0)
	if err1 != nil || err2 != nil {
		t.Fatalf("solve failed: %v, %v", err1, err2)
	}
	if x1 != x2 {
		t.Errorf("same inputs gave different roots: %v vs %v", x1, x2)
	}
}
