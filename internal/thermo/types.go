package thermo

import "math"

// GasConstant is the universal gas constant in J/(mol·K).
const GasConstant = 8.314

// State is one vertex of a thermodynamic cycle. Entropy is relative to a
// reference vertex (the cycle engine uses vertex A), so it may be negative;
// pressure, volume and temperature are absolute and strictly positive in
// any valid state.
type State struct {
	Pressure    float64
	Volume      float64
	Temperature float64
	Entropy     float64
}

func (s State) IsValid() bool {
	for _, v := range []float64{s.Pressure, s.Volume, s.Temperature, s.Entropy} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return s.Pressure > 0 && s.Volume > 0 && s.Temperature > 0
}
