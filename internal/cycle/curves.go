package cycle

import (
	"fmt"

	"github.com/bohounsoun/thermosim/internal/thermo"
)

// DefaultCurveSamples is the default point count per leg when sampling
// diagram curves.
const DefaultCurveSamples = 100

// Curve is a sampled cycle leg for plotting: parallel slices of volume,
// pressure, temperature and entropy (relative to vertex A).
type Curve struct {
	Leg         string
	Volume      []float64
	Pressure    []float64
	Temperature []float64
	Entropy     []float64
}

// LegCurve samples n points along leg i of a computed cycle. Isentropic
// legs follow the gas model's adiabat; isochoric and isobaric legs are
// straight lines in the P-V plane but still carry the exact temperature
// and entropy profile for T-S plotting.
func (e *Engine) LegCurve(res *Result, leg, n int) (Curve, error) {
	if leg < 0 || leg > 3 {
		return Curve{}, fmt.Errorf("%w: leg index %d outside [0, 3]", thermo.ErrInvalidInterval, leg)
	}
	if n < 2 {
		return Curve{}, fmt.Errorf("%w: need at least 2 samples, got %d", thermo.ErrInvalidInterval, n)
	}

	from := res.States[leg]
	to := res.States[(leg+1)%4]
	c := Curve{
		Leg:         Legs[leg],
		Volume:      make([]float64, n),
		Pressure:    make([]float64, n),
		Temperature: make([]float64, n),
		Entropy:     make([]float64, n),
	}

	isentropic := leg == 0 || leg == 2
	isobaric := leg == 1 && res.Spec.Type == Diesel

	for i := 0; i < n; i++ {
		frac := float64(i) / float64(n-1)
		var v, p, t float64
		var err error

		switch {
		case isentropic:
			v = from.Volume + frac*(to.Volume-from.Volume)
			p, err = e.Model.AdiabaticPressure(v, from.Pressure, from.Volume)
			if err == nil {
				t, err = e.Model.Temperature(p, v)
			}
		case isobaric:
			v = from.Volume + frac*(to.Volume-from.Volume)
			p = from.Pressure
			t, err = e.Model.Temperature(p, v)
		default: // isochoric
			v = from.Volume
			t = from.Temperature + frac*(to.Temperature-from.Temperature)
			p, err = e.Model.Pressure(v, t)
		}
		if err != nil {
			return Curve{}, &thermo.ComputeError{Leg: Legs[leg], Detail: fmt.Sprintf("sample %d", i), Wrapped: err}
		}

		ref := res.States[0]
		s, err := e.Model.EntropyChange(t, v, ref.Temperature, ref.Volume)
		if err != nil {
			return Curve{}, &thermo.ComputeError{Leg: Legs[leg], Detail: fmt.Sprintf("sample %d entropy", i), Wrapped: err}
		}

		c.Volume[i] = v
		c.Pressure[i] = p
		c.Temperature[i] = t
		c.Entropy[i] = s
	}

	return c, nil
}

// Curves samples all four legs in traversal order.
func (e *Engine) Curves(res *Result, n int) ([4]Curve, error) {
	var out [4]Curve
	for leg := 0; leg < 4; leg++ {
		c, err := e.LegCurve(res, leg, n)
		if err != nil {
			return out, err
		}
		out[leg] = c
	}
	return out, nil
}
