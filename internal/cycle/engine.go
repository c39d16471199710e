package cycle

import (
	"fmt"

	"github.com/bohounsoun/thermosim/internal/gas"
	"github.com/bohounsoun/thermosim/internal/numeric"
	"github.com/bohounsoun/thermosim/internal/thermo"
)

// Vertex labels in traversal order. Leg i runs from vertex i to vertex
// (i+1) mod 4.
var Labels = [4]string{"A", "B", "C", "D"}

// Leg names, for diagnostics and curve selection.
var Legs = [4]string{"A->B", "B->C", "C->D", "D->A"}

// Result is the computed cycle: the four vertex states in traversal order
// plus the derived scalars. Immutable after Compute returns it.
type Result struct {
	Spec   Spec
	Gas    gas.Model
	States [4]thermo.State

	// LegWork[i] is the work done by the gas along leg i; CumulativeWork[i]
	// is the work accumulated on arrival at vertex i (zero at A).
	LegWork        [4]float64
	CumulativeWork [4]float64

	NetWork     float64
	HeatIn      float64
	HeatOut     float64
	Efficiency  float64
	CutoffRatio float64 // realized V_C/V_B, diesel only (zero for otto)
}

// Engine computes cycles for one gas model. It owns no mutable state
// beyond its configuration; Compute is a pure function of its inputs and
// is safe to call from multiple goroutines.
type Engine struct {
	Model      gas.Model
	Solver     *numeric.Newton
	Integrator *numeric.Simpson
}

func NewEngine(model gas.Model) *Engine {
	return &Engine{
		Model:      model,
		Solver:     numeric.NewNewton(),
		Integrator: numeric.NewSimpson(),
	}
}

// Compute walks the four legs of the cycle, producing every vertex state
// and the derived work and efficiency figures. Solver and integrator
// failures come back wrapped in a thermo.ComputeError naming the leg.
func (e *Engine) Compute(spec Spec) (*Result, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if err := e.Model.Validate(); err != nil {
		return nil, err
	}

	m := e.Model
	res := &Result{Spec: spec, Gas: m}

	// Vertex A: intake state.
	vA := spec.MaxVolume
	pA := spec.InitialPressure
	tA := spec.InitialTemperature
	res.States[0] = thermo.State{Pressure: pA, Volume: vA, Temperature: tA}

	// A -> B: isentropic compression to the clearance volume.
	vB := spec.MinVolume()
	pB, err := m.AdiabaticPressure(vB, pA, vA)
	if err != nil {
		return nil, &thermo.ComputeError{Leg: Legs[0], Detail: fmt.Sprintf("V=%g", vB), Wrapped: err}
	}
	tB, err := m.Temperature(pB, vB)
	if err != nil {
		return nil, &thermo.ComputeError{Leg: Legs[0], Detail: fmt.Sprintf("P=%g V=%g", pB, vB), Wrapped: err}
	}
	res.States[1] = thermo.State{Pressure: pB, Volume: vB, Temperature: tB}

	// B -> C: heat addition.
	var vC, pC, tC float64
	switch spec.Type {
	case Otto:
		vC = vB
		tC = spec.PeakTemperature
		if tC <= tB {
			return nil, fmt.Errorf("%w: peak temperature %g does not exceed compression temperature %g",
				thermo.ErrInvalidCycleSpec, tC, tB)
		}
		pC, err = m.Pressure(vC, tC)
		if err != nil {
			return nil, &thermo.ComputeError{Leg: Legs[1], Detail: fmt.Sprintf("V=%g T=%g", vC, tC), Wrapped: err}
		}

	case Diesel:
		pC = pB
		if spec.CutoffRatio > 1 {
			vC = vB * spec.CutoffRatio
			tC, err = m.Temperature(pC, vC)
			if err != nil {
				return nil, &thermo.ComputeError{Leg: Legs[1], Detail: fmt.Sprintf("P=%g V=%g", pC, vC), Wrapped: err}
			}
		} else {
			tC = spec.PeakTemperature
			if tC <= tB {
				return nil, fmt.Errorf("%w: peak temperature %g does not exceed compression temperature %g",
					thermo.ErrInvalidCycleSpec, tC, tB)
			}
			// V_C satisfies p(V_C, T_C) = p_B; cubic under Van der Waals.
			vC, err = m.Volume(pC, tC, e.Solver)
			if err != nil {
				return nil, &thermo.ComputeError{Leg: Legs[1], Detail: fmt.Sprintf("P=%g T=%g", pC, tC), Wrapped: err}
			}
		}
		res.CutoffRatio = vC / vB
		if res.CutoffRatio <= 1 || vC >= vA {
			return nil, fmt.Errorf("%w: realized cutoff ratio %g outside (1, τ)", thermo.ErrInvalidCycleSpec, res.CutoffRatio)
		}
	}
	res.States[2] = thermo.State{Pressure: pC, Volume: vC, Temperature: tC}

	// C -> D: isentropic expansion back to the intake volume.
	vD := vA
	pD, err := m.AdiabaticPressure(vD, pC, vC)
	if err != nil {
		return nil, &thermo.ComputeError{Leg: Legs[2], Detail: fmt.Sprintf("V=%g", vD), Wrapped: err}
	}
	tD, err := m.Temperature(pD, vD)
	if err != nil {
		return nil, &thermo.ComputeError{Leg: Legs[2], Detail: fmt.Sprintf("P=%g V=%g", pD, vD), Wrapped: err}
	}
	res.States[3] = thermo.State{Pressure: pD, Volume: vD, Temperature: tD}

	// Entropy relative to vertex A.
	for i := 1; i < 4; i++ {
		st := res.States[i]
		ds, err := m.EntropyChange(st.Temperature, st.Volume, tA, vA)
		if err != nil {
			return nil, &thermo.ComputeError{Leg: Legs[i-1], Detail: "entropy", Wrapped: err}
		}
		res.States[i].Entropy = ds
	}

	// Leg works (done by the gas).
	wAB, err := e.adiabaticWork(res.States[0], res.States[1])
	if err != nil {
		return nil, &thermo.ComputeError{Leg: Legs[0], Detail: "work", Wrapped: err}
	}
	wCD, err := e.adiabaticWork(res.States[2], res.States[3])
	if err != nil {
		return nil, &thermo.ComputeError{Leg: Legs[2], Detail: "work", Wrapped: err}
	}
	var wBC float64
	if spec.Type == Diesel {
		wBC = pC * (vC - vB)
	}
	res.LegWork = [4]float64{wAB, wBC, wCD, 0}

	cum := 0.0
	for i := 1; i < 4; i++ {
		cum += res.LegWork[i-1]
		res.CumulativeWork[i] = cum
	}
	res.NetWork = cum + res.LegWork[3]

	// Heat bookkeeping: addition along B->C (Cv isochoric, Cp isobaric),
	// rejection along the isochoric D->A.
	if spec.Type == Diesel {
		res.HeatIn = m.Cp() * (tC - tB)
	} else {
		res.HeatIn = m.Cv() * (tC - tB)
	}
	res.HeatOut = m.Cv() * (tD - tA)
	res.Efficiency = res.NetWork / res.HeatIn

	return res, nil
}

// adiabaticWork integrates p dV along the isentrope joining two states.
// The ideal-gas isentrope has the closed form (p1V1 − p2V2)/(γ−1); the
// Van der Waals leg has no elementary antiderivative, so it is quadrated
// with Simpson's rule over the sampled adiabat.
func (e *Engine) adiabaticWork(from, to thermo.State) (float64, error) {
	if e.Model.Kind == gas.Ideal {
		return (from.Pressure*from.Volume - to.Pressure*to.Volume) / (e.Model.Gamma - 1), nil
	}

	var integrandErr error
	f := func(v float64) float64 {
		p, err := e.Model.AdiabaticPressure(v, from.Pressure, from.Volume)
		if err != nil {
			if integrandErr == nil {
				integrandErr = err
			}
			return 0
		}
		return p
	}

	lo, hi := from.Volume, to.Volume
	sign := 1.0
	if lo > hi {
		lo, hi = hi, lo
		sign = -1
	}

	w, err := e.Integrator.Integrate(f, lo, hi)
	if err != nil {
		return 0, err
	}
	if integrandErr != nil {
		return 0, integrandErr
	}
	return sign * w, nil
}
