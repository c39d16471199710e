package metrics

import (
	"errors"
	"math"
	"testing"

	"github.com/bohounsoun/thermosim/internal/cycle"
	"github.com/bohounsoun/thermosim/internal/gas"
	"github.com/bohounsoun/thermosim/internal/thermo"
)

func testResult(t *testing.T) *cycle.Result {
	t.Helper()
	moles := 1.013e5 * 1e-3 / (thermo.GasConstant * 300)
	engine := cycle.NewEngine(gas.NewIdeal(moles, 1.4))
	res, err := engine.Compute(cycle.Spec{
		Type:               cycle.Otto,
		CompressionRatio:   8,
		MaxVolume:          1e-3,
		InitialPressure:    1.013e5,
		InitialTemperature: 300,
		PeakTemperature:    2000,
	})
	if err != nil {
		t.Fatalf("cycle compute failed: %v", err)
	}
	return res
}

func TestComputePower(t *testing.T) {
	res := testResult(t)
	perf, err := Compute(res, Params{Speed: 3000, Cylinders: 1, Displacement: res.Spec.SweptVolume()})
	if err != nil {
		t.Fatalf("compute failed: %v", err)
	}

	// 3000 rpm four-stroke: 25 power strokes a second.
	if perf.CyclesPerSec != 25 {
		t.Errorf("expected 25 cycles/s, got %v", perf.CyclesPerSec)
	}
	if math.Abs(perf.WorkPerCycle-res.NetWork) > 1e-12 {
		t.Errorf("displacement equal to swept volume should not rescale work: %v vs %v", perf.WorkPerCycle, res.NetWork)
	}
	wantPower := res.NetWork * 25
	if math.Abs(perf.Power-wantPower) > 1e-9 {
		t.Errorf("expected power %v, got %v", wantPower, perf.Power)
	}
	wantTorque := wantPower / (2 * math.Pi * 50)
	if math.Abs(perf.Torque-wantTorque) > 1e-12 {
		t.Errorf("expected torque %v, got %v", wantTorque, perf.Torque)
	}
}

func TestComputeScalesWithGeometry(t *testing.T) {
	res := testResult(t)
	swept := res.Spec.SweptVolume()

	one, err := Compute(res, Params{Speed: 3000, Cylinders: 1, Displacement: swept})
	if err != nil {
		t.Fatal(err)
	}
	four, err := Compute(res, Params{Speed: 3000, Cylinders: 4, Displacement: swept / 2})
	if err != nil {
		t.Fatal(err)
	}

	// Four cylinders at half displacement carry twice the total work.
	if math.Abs(four.Power-2*one.Power) > math.Abs(one.Power)*1e-12 {
		t.Errorf("expected %v, got %v", 2*one.Power, four.Power)
	}
	// Mean effective pressure is a per-cylinder intensive figure.
	if math.Abs(four.MeanEffective-one.MeanEffective) > math.Abs(one.MeanEffective)*1e-12 {
		t.Errorf("mean effective pressure should not depend on cylinder count: %v vs %v", four.MeanEffective, one.MeanEffective)
	}
}

func TestComputeRejectsBadParams(t *testing.T) {
	res := testResult(t)

	tests := []struct {
		name   string
		params Params
	}{
		{"zero speed", Params{Speed: 0, Cylinders: 1, Displacement: 1e-3}},
		{"negative speed", Params{Speed: -100, Cylinders: 1, Displacement: 1e-3}},
		{"zero displacement", Params{Speed: 3000, Cylinders: 1, Displacement: 0}},
		{"zero cylinders", Params{Speed: 3000, Cylinders: 0, Displacement: 1e-3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compute(res, tt.params)
			if !errors.Is(err, thermo.ErrInvalidParameters) {
				t.Errorf("expected ErrInvalidParameters, got %v", err)
			}
		})
	}
}
