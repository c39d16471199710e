// Package metrics derives engine operating figures from a computed cycle.
package metrics

import (
	"fmt"
	"math"

	"github.com/bohounsoun/thermosim/internal/cycle"
	"github.com/bohounsoun/thermosim/internal/thermo"
)

// Params are the engine operating parameters. Displacement is the swept
// volume per cylinder in m³; Speed is the crankshaft speed in rpm.
type Params struct {
	Speed        float64
	Cylinders    int
	Displacement float64
}

// Performance is the aggregate output for one operating point.
type Performance struct {
	WorkPerCycle  float64 // J, all cylinders, scaled to Displacement
	CyclesPerSec  float64 // power strokes per second per cylinder
	Power         float64 // W
	Torque        float64 // N·m
	MeanEffective float64 // Pa, net work over displaced volume
}

// Compute scales the cycle's net work to the engine geometry and derives
// power and torque. A four-stroke engine fires every other revolution, so
// each cylinder completes speed/120 cycles per second. Pure function.
func Compute(res *cycle.Result, p Params) (Performance, error) {
	if p.Speed <= 0 {
		return Performance{}, fmt.Errorf("%w: speed %g rpm must be positive", thermo.ErrInvalidParameters, p.Speed)
	}
	if p.Displacement <= 0 {
		return Performance{}, fmt.Errorf("%w: displacement %g must be positive", thermo.ErrInvalidParameters, p.Displacement)
	}
	if p.Cylinders < 1 {
		return Performance{}, fmt.Errorf("%w: cylinder count %d must be at least 1", thermo.ErrInvalidParameters, p.Cylinders)
	}

	swept := res.Spec.SweptVolume()
	perCylinder := res.NetWork * p.Displacement / swept
	work := perCylinder * float64(p.Cylinders)

	cps := p.Speed / 120 // four-stroke: one power stroke per two revolutions
	power := work * cps
	omega := 2 * math.Pi * p.Speed / 60
	torque := power / omega

	return Performance{
		WorkPerCycle:  work,
		CyclesPerSec:  cps,
		Power:         power,
		Torque:        torque,
		MeanEffective: perCylinder / p.Displacement,
	}, nil
}
