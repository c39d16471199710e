// Package gas implements the equation of state for the working fluid.
//
// A Model is a tagged variant over the two supported equations of state,
// dispatched by switching on Kind rather than by interface dispatch: only
// two fixed variants exist and their behavior is fully determined by the
// tag and the substance constants.
package gas

import (
	"fmt"
	"math"

	"github.com/bohounsoun/thermosim/internal/numeric"
	"github.com/bohounsoun/thermosim/internal/thermo"
)

// Kind selects the equation of state.
type Kind int

const (
	// Ideal is the ideal-gas law pV = nRT.
	Ideal Kind = iota
	// VanDerWaals is (p + an²/V²)(V − nb) = nRT.
	VanDerWaals
)

func (k Kind) String() string {
	switch k {
	case Ideal:
		return "ideal"
	case VanDerWaals:
		return "van_der_waals"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Model describes the working fluid: amount of substance, heat capacity
// ratio, and (for Van der Waals) the substance attraction and covolume
// constants. A Model is an immutable value; methods never mutate it.
type Model struct {
	Kind  Kind
	Moles float64 // n, mol
	Gamma float64 // Cp/Cv, dimensionless
	A     float64 // attraction, Pa·m⁶/mol² (Van der Waals only)
	B     float64 // covolume, m³/mol (Van der Waals only)
}

// NewIdeal returns an ideal-gas model.
func NewIdeal(moles, gamma float64) Model {
	return Model{Kind: Ideal, Moles: moles, Gamma: gamma}
}

// NewVanDerWaals returns a real-gas model with attraction constant a and
// covolume b. Zero a and b degenerate to ideal-gas behavior.
func NewVanDerWaals(moles, gamma, a, b float64) Model {
	return Model{Kind: VanDerWaals, Moles: moles, Gamma: gamma, A: a, B: b}
}

func (m Model) Validate() error {
	if m.Moles <= 0 {
		return fmt.Errorf("%w: moles must be positive, got %g", thermo.ErrInvalidState, m.Moles)
	}
	if m.Gamma <= 1 {
		return fmt.Errorf("%w: gamma must exceed 1, got %g", thermo.ErrInvalidState, m.Gamma)
	}
	if m.Kind == VanDerWaals && (m.A < 0 || m.B < 0) {
		return fmt.Errorf("%w: van der waals constants must be non-negative (a=%g, b=%g)", thermo.ErrInvalidState, m.A, m.B)
	}
	return nil
}

// Covolume is the excluded volume nb below which the gas cannot be
// compressed. Zero for an ideal gas.
func (m Model) Covolume() float64 {
	if m.Kind == VanDerWaals {
		return m.Moles * m.B
	}
	return 0
}

// Cv returns the total heat capacity at constant volume, nR/(γ−1).
func (m Model) Cv() float64 {
	return m.Moles * thermo.GasConstant / (m.Gamma - 1)
}

// Cp returns the total heat capacity at constant pressure, nγR/(γ−1).
func (m Model) Cp() float64 {
	return m.Moles * m.Gamma * thermo.GasConstant / (m.Gamma - 1)
}

func (m Model) checkVolume(v float64) error {
	if v <= 0 {
		return fmt.Errorf("%w: volume %g must be positive", thermo.ErrInvalidState, v)
	}
	if nb := m.Covolume(); v <= nb {
		return fmt.Errorf("%w: volume %g at or below excluded volume %g", thermo.ErrInvalidState, v, nb)
	}
	return nil
}

// Pressure returns p(V, T) from the equation of state.
func (m Model) Pressure(v, t float64) (float64, error) {
	if t <= 0 {
		return 0, fmt.Errorf("%w: temperature %g must be positive", thermo.ErrInvalidState, t)
	}
	if err := m.checkVolume(v); err != nil {
		return 0, err
	}

	n := m.Moles
	switch m.Kind {
	case VanDerWaals:
		return n*thermo.GasConstant*t/(v-n*m.B) - m.A*n*n/(v*v), nil
	default:
		return n * thermo.GasConstant * t / v, nil
	}
}

// Temperature returns T(p, V) from the equation of state.
func (m Model) Temperature(p, v float64) (float64, error) {
	if p <= 0 {
		return 0, fmt.Errorf("%w: pressure %g must be positive", thermo.ErrInvalidState, p)
	}
	if err := m.checkVolume(v); err != nil {
		return 0, err
	}

	n := m.Moles
	switch m.Kind {
	case VanDerWaals:
		return (p + m.A*n*n/(v*v)) * (v - n*m.B) / (n * thermo.GasConstant), nil
	default:
		return p * v / (n * thermo.GasConstant), nil
	}
}

// Volume inverts the equation of state for V given p and T. The ideal-gas
// case is closed-form; Van der Waals is cubic in V, so the root is located
// with Newton iteration seeded from the ideal-gas volume.
func (m Model) Volume(p, t float64, solver *numeric.Newton) (float64, error) {
	if p <= 0 || t <= 0 {
		return 0, fmt.Errorf("%w: pressure %g and temperature %g must be positive", thermo.ErrInvalidState, p, t)
	}

	n := m.Moles
	ideal := n * thermo.GasConstant * t / p
	if m.Kind == Ideal {
		return ideal, nil
	}

	nb := n * m.B
	guess := ideal
	if guess <= nb {
		guess = nb * 1.5
	}

	f := func(v float64) float64 {
		return n*thermo.GasConstant*t/(v-nb) - m.A*n*n/(v*v) - p
	}
	df := func(v float64) float64 {
		return -n*thermo.GasConstant*t/((v-nb)*(v-nb)) + 2*m.A*n*n/(v*v*v)
	}

	v, err := solver.Solve(f, df, guess)
	if err != nil {
		return 0, err
	}
	if err := m.checkVolume(v); err != nil {
		return 0, err
	}
	return v, nil
}

// AdiabaticPressure returns the pressure after a reversible adiabatic
// change of volume from (p0, V0) to V. Ideal gas follows pV^γ = const;
// Van der Waals follows T(V − nb)^(γ−1) = const with Cv assumed constant,
// then reads the pressure back off the equation of state.
func (m Model) AdiabaticPressure(v, p0, v0 float64) (float64, error) {
	if err := m.checkVolume(v); err != nil {
		return 0, err
	}
	if err := m.checkVolume(v0); err != nil {
		return 0, err
	}
	if p0 <= 0 {
		return 0, fmt.Errorf("%w: pressure %g must be positive", thermo.ErrInvalidState, p0)
	}

	switch m.Kind {
	case VanDerWaals:
		t0, err := m.Temperature(p0, v0)
		if err != nil {
			return 0, err
		}
		nb := m.Covolume()
		t := t0 * math.Pow((v0-nb)/(v-nb), m.Gamma-1)
		return m.Pressure(v, t)
	default:
		return p0 * math.Pow(v0/v, m.Gamma), nil
	}
}

// EntropyChange returns S(T, V) − S(Tref, Vref):
//
//	ΔS = n Cv ln(T/Tref) + n R ln((V − nb)/(Vref − nb))
//
// with nb = 0 for an ideal gas. This form holds for both variants under
// the constant-Cv assumption.
func (m Model) EntropyChange(t, v, tref, vref float64) (float64, error) {
	if t <= 0 || tref <= 0 {
		return 0, fmt.Errorf("%w: temperatures %g, %g must be positive", thermo.ErrInvalidState, t, tref)
	}
	if err := m.checkVolume(v); err != nil {
		return 0, err
	}
	if err := m.checkVolume(vref); err != nil {
		return 0, err
	}

	nb := m.Covolume()
	termT := m.Cv() * math.Log(t/tref)
	termV := m.Moles * thermo.GasConstant * math.Log((v-nb)/(vref-nb))
	return termT + termV, nil
}
