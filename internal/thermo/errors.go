package thermo

import (
	"errors"
	"fmt"
)

// Domain errors for cycle computation.
var (
	// ErrInvalidState indicates equation-of-state inputs outside the
	// physical domain (non-positive pressure/temperature, or a volume at
	// or below the Van der Waals excluded volume).
	ErrInvalidState = errors.New("thermo: invalid state (out of physical domain)")

	// ErrDivergence indicates the root solver failed to converge.
	ErrDivergence = errors.New("thermo: root solver diverged")

	// ErrInvalidInterval indicates a misconfigured integration interval.
	ErrInvalidInterval = errors.New("thermo: invalid integration interval")

	// ErrInvalidCycleSpec indicates non-physical cycle parameters.
	ErrInvalidCycleSpec = errors.New("thermo: invalid cycle spec")

	// ErrInvalidParameters indicates bad engine operating parameters.
	ErrInvalidParameters = errors.New("thermo: invalid operating parameters")
)

// ComputeError wraps a solver or integrator failure with enough cycle
// context to diagnose it: the leg being computed and the inputs in play.
type ComputeError struct {
	Leg     string
	Detail  string
	Wrapped error
}

func (e *ComputeError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("leg %s: %v", e.Leg, e.Wrapped)
	}
	return fmt.Sprintf("leg %s (%s): %v", e.Leg, e.Detail, e.Wrapped)
}

func (e *ComputeError) Unwrap() error {
	return e.Wrapped
}
