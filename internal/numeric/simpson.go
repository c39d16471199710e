package numeric

import (
	"fmt"

	"github.com/bohounsoun/thermosim/internal/thermo"
)

// DefaultSubintervals is the default panel count for composite Simpson
// quadrature. Must stay even.
const DefaultSubintervals = 200

// Simpson approximates definite integrals with the composite Simpson rule.
// Exact for polynomials up to degree three on each panel pair.
type Simpson struct {
	Subintervals int
}

func NewSimpson() *Simpson {
	return &Simpson{Subintervals: DefaultSubintervals}
}

// Integrate returns the approximation of the integral of f over [a, b]:
//
//	(h/3) [f(x0) + 4 Σ f(odd) + 2 Σ f(even) + f(xn)],  h = (b-a)/n
//
// The subinterval count must be even and positive, and a must be strictly
// below b; callers integrating a decreasing leg orient it themselves.
func (s *Simpson) Integrate(f func(float64) float64, a, b float64) (float64, error) {
	n := s.Subintervals
	if n <= 0 || n%2 != 0 {
		return 0, fmt.Errorf("%w: subinterval count must be a positive even number, got %d", thermo.ErrInvalidInterval, n)
	}
	if a >= b {
		return 0, fmt.Errorf("%w: bounds [%g, %g] are not increasing", thermo.ErrInvalidInterval, a, b)
	}

	h := (b - a) / float64(n)
	sum := f(a) + f(b)
	for i := 1; i < n; i++ {
		x := a + float64(i)*h
		if i%2 == 1 {
			sum += 4 * f(x)
		} else {
			sum += 2 * f(x)
		}
	}

	return sum * h / 3, nil
}
