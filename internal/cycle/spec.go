package cycle

import (
	"fmt"

	"github.com/bohounsoun/thermosim/internal/thermo"
)

// Type selects the cycle topology.
type Type int

const (
	// Otto is the spark-ignition cycle: isentropic compression, isochoric
	// heat addition, isentropic expansion, isochoric rejection.
	Otto Type = iota
	// Diesel replaces the isochoric heat addition with an isobaric one.
	Diesel
)

func (t Type) String() string {
	switch t {
	case Otto:
		return "otto"
	case Diesel:
		return "diesel"
	default:
		return fmt.Sprintf("type(%d)", int(t))
	}
}

// ParseType maps a cycle name to its Type.
func ParseType(s string) (Type, error) {
	switch s {
	case "otto":
		return Otto, nil
	case "diesel":
		return Diesel, nil
	default:
		return 0, fmt.Errorf("%w: unknown cycle type %q", thermo.ErrInvalidCycleSpec, s)
	}
}

// Spec is a pure value describing one cycle to compute. The intake state
// (vertex A) sits at MaxVolume, InitialPressure and InitialTemperature;
// compression runs down to MaxVolume/CompressionRatio.
//
// Heat addition is bounded either by PeakTemperature (vertex C reaches
// that temperature, the way a combustion temperature limit works) or, for
// Diesel, by an explicit CutoffRatio V_C/V_B. A CutoffRatio above 1 takes
// precedence; zero means "derive it from PeakTemperature".
type Spec struct {
	Type               Type
	CompressionRatio   float64 // τ = V_max / V_min, > 1
	CutoffRatio        float64 // Diesel only; > 1 when set
	MaxVolume          float64 // m³
	InitialPressure    float64 // Pa, vertex A
	InitialTemperature float64 // K, vertex A
	PeakTemperature    float64 // K, vertex C bound
}

func (s Spec) Validate() error {
	if s.CompressionRatio <= 1 {
		return fmt.Errorf("%w: compression ratio %g must exceed 1", thermo.ErrInvalidCycleSpec, s.CompressionRatio)
	}
	if s.MaxVolume <= 0 {
		return fmt.Errorf("%w: max volume %g must be positive", thermo.ErrInvalidCycleSpec, s.MaxVolume)
	}
	if s.InitialPressure <= 0 {
		return fmt.Errorf("%w: initial pressure %g must be positive", thermo.ErrInvalidCycleSpec, s.InitialPressure)
	}
	if s.InitialTemperature <= 0 {
		return fmt.Errorf("%w: initial temperature %g must be positive", thermo.ErrInvalidCycleSpec, s.InitialTemperature)
	}

	usesCutoff := s.Type == Diesel && s.CutoffRatio != 0
	if usesCutoff {
		if s.CutoffRatio <= 1 {
			return fmt.Errorf("%w: cutoff ratio %g must exceed 1", thermo.ErrInvalidCycleSpec, s.CutoffRatio)
		}
		if s.CutoffRatio >= s.CompressionRatio {
			return fmt.Errorf("%w: cutoff ratio %g must stay below compression ratio %g",
				thermo.ErrInvalidCycleSpec, s.CutoffRatio, s.CompressionRatio)
		}
	} else {
		if s.PeakTemperature <= s.InitialTemperature {
			return fmt.Errorf("%w: peak temperature %g must exceed initial temperature %g",
				thermo.ErrInvalidCycleSpec, s.PeakTemperature, s.InitialTemperature)
		}
	}

	if s.Type == Otto && s.CutoffRatio != 0 {
		return fmt.Errorf("%w: cutoff ratio applies to diesel cycles only", thermo.ErrInvalidCycleSpec)
	}
	return nil
}

// MinVolume is the clearance volume V_max / τ.
func (s Spec) MinVolume() float64 {
	return s.MaxVolume / s.CompressionRatio
}

// SweptVolume is the displacement V_max − V_min.
func (s Spec) SweptVolume() float64 {
	return s.MaxVolume - s.MinVolume()
}
