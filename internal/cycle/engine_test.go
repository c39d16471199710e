package cycle_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/bohounsoun/thermosim/internal/cycle"
	"github.com/bohounsoun/thermosim/internal/gas"
	"github.com/bohounsoun/thermosim/internal/thermo"
)

const (
	maxVolume = 1.0e-3
	pressureA = 1.013e5
	tempA     = 300.0
	gamma     = 1.4
)

// moles of working fluid filling the cylinder at intake conditions
var moles = pressureA * maxVolume / (thermo.GasConstant * tempA)

func ottoSpec(tau, peak float64) cycle.Spec {
	return cycle.Spec{
		Type:               cycle.Otto,
		CompressionRatio:   tau,
		MaxVolume:          maxVolume,
		InitialPressure:    pressureA,
		InitialTemperature: tempA,
		PeakTemperature:    peak,
	}
}

func dieselSpec(tau, peak float64) cycle.Spec {
	s := ottoSpec(tau, peak)
	s.Type = cycle.Diesel
	return s
}

var _ = Describe("Engine", func() {
	var engine *cycle.Engine

	BeforeEach(func() {
		engine = cycle.NewEngine(gas.NewIdeal(moles, gamma))
	})

	Describe("ideal Otto cycle", func() {
		var res *cycle.Result

		BeforeEach(func() {
			var err error
			res, err = engine.Compute(ottoSpec(8, 2000))
			Expect(err).NotTo(HaveOccurred())
		})

		It("matches the air-standard efficiency 1 - tau^(1-gamma)", func() {
			want := 1 - math.Pow(8, 1-gamma)
			Expect(res.Efficiency).To(BeNumerically("~", want, 1e-9))
		})

		It("keeps vertex A at the intake state", func() {
			a := res.States[0]
			Expect(a.Pressure).To(Equal(pressureA))
			Expect(a.Volume).To(Equal(maxVolume))
			Expect(a.Temperature).To(Equal(tempA))
			Expect(a.Entropy).To(BeZero())
		})

		It("places the vertices on the cycle geometry", func() {
			a, b, c, d := res.States[0], res.States[1], res.States[2], res.States[3]
			Expect(b.Volume).To(BeNumerically("~", maxVolume/8, 1e-15))
			Expect(c.Volume).To(Equal(b.Volume), "heat addition is isochoric")
			Expect(d.Volume).To(Equal(a.Volume), "expansion returns to intake volume")
			Expect(c.Temperature).To(Equal(2000.0))
			Expect(b.Temperature).To(BeNumerically(">", a.Temperature))
			Expect(d.Temperature).To(BeNumerically(">", a.Temperature))
		})

		It("keeps entropy constant along the isentropic legs", func() {
			Expect(res.States[1].Entropy).To(BeNumerically("~", 0, 1e-8))
			Expect(res.States[3].Entropy).To(BeNumerically("~", res.States[2].Entropy, 1e-8))
		})

		It("balances heat and work", func() {
			Expect(res.NetWork).To(BeNumerically("~", res.HeatIn-res.HeatOut, 1e-6))
			Expect(res.Efficiency).To(BeNumerically(">", 0))
			Expect(res.Efficiency).To(BeNumerically("<", 1))
			Expect(res.CutoffRatio).To(BeZero())
		})

		It("accumulates leg work into the cumulative profile", func() {
			Expect(res.CumulativeWork[0]).To(BeZero())
			Expect(res.CumulativeWork[1]).To(Equal(res.LegWork[0]))
			Expect(res.CumulativeWork[2]).To(Equal(res.LegWork[0] + res.LegWork[1]))
			Expect(res.NetWork).To(Equal(res.CumulativeWork[3]))
		})
	})

	Describe("ideal Diesel cycle with an explicit cutoff", func() {
		var res *cycle.Result

		BeforeEach(func() {
			spec := dieselSpec(18, 0)
			spec.CutoffRatio = 2
			var err error
			res, err = engine.Compute(spec)
			Expect(err).NotTo(HaveOccurred())
		})

		It("holds pressure through the heat addition", func() {
			Expect(res.States[2].Pressure).To(Equal(res.States[1].Pressure))
			Expect(res.States[2].Volume).To(BeNumerically("~", 2*res.States[1].Volume, 1e-15))
			Expect(res.CutoffRatio).To(BeNumerically("~", 2, 1e-12))
		})

		It("matches the air-standard Diesel efficiency", func() {
			tau, rc := 18.0, 2.0
			want := 1 - (math.Pow(rc, gamma) - 1) / (gamma * math.Pow(tau, gamma-1) * (rc - 1))
			Expect(res.Efficiency).To(BeNumerically("~", want, 1e-9))
		})
	})

	Describe("ideal Diesel cycle bounded by peak temperature", func() {
		It("derives a cutoff ratio inside (1, tau)", func() {
			res, err := engine.Compute(dieselSpec(18, 2200))
			Expect(err).NotTo(HaveOccurred())
			Expect(res.States[2].Temperature).To(Equal(2200.0))
			Expect(res.CutoffRatio).To(BeNumerically(">", 1))
			Expect(res.CutoffRatio).To(BeNumerically("<", 18))
		})
	})

	Describe("Van der Waals working fluid", func() {
		It("reduces to the ideal result when a and b vanish", func() {
			vdw := cycle.NewEngine(gas.NewVanDerWaals(moles, gamma, 0, 0))
			spec := ottoSpec(8, 2000)

			ref, err := engine.Compute(spec)
			Expect(err).NotTo(HaveOccurred())
			res, err := vdw.Compute(spec)
			Expect(err).NotTo(HaveOccurred())

			Expect(res.Efficiency).To(BeNumerically("~", ref.Efficiency, 1e-6))
			Expect(res.NetWork).To(BeNumerically("~", ref.NetWork, math.Abs(ref.NetWork)*1e-6))
		})

		It("lowers the nitrogen efficiency below the ideal value", func() {
			vdw := cycle.NewEngine(gas.NewVanDerWaals(moles, gamma, 0.14, 3.9e-5))
			spec := ottoSpec(8, 2000)

			ref, err := engine.Compute(spec)
			Expect(err).NotTo(HaveOccurred())
			res, err := vdw.Compute(spec)
			Expect(err).NotTo(HaveOccurred())

			Expect(res.Efficiency).NotTo(BeNumerically("~", ref.Efficiency, 1e-9))
			Expect(res.Efficiency).To(BeNumerically(">", 0))
			Expect(res.Efficiency).To(BeNumerically("<", 1))
		})
	})

	Describe("rejected specs", func() {
		It("refuses a unity compression ratio", func() {
			_, err := engine.Compute(ottoSpec(1, 2000))
			Expect(err).To(MatchError(thermo.ErrInvalidCycleSpec))
		})

		It("refuses a peak temperature below the compression temperature", func() {
			// tau=10 compresses 300 K to ~754 K, so 700 K cannot be reached
			// by adding heat.
			_, err := engine.Compute(ottoSpec(10, 700))
			Expect(err).To(MatchError(thermo.ErrInvalidCycleSpec))
		})

		It("refuses a cutoff ratio at or beyond the compression ratio", func() {
			spec := dieselSpec(10, 0)
			spec.CutoffRatio = 10
			_, err := engine.Compute(spec)
			Expect(err).To(MatchError(thermo.ErrInvalidCycleSpec))
		})

		It("refuses a cutoff ratio on an Otto spec", func() {
			spec := ottoSpec(8, 2000)
			spec.CutoffRatio = 2
			_, err := engine.Compute(spec)
			Expect(err).To(MatchError(thermo.ErrInvalidCycleSpec))
		})
	})

	Describe("compute failures", func() {
		It("wraps the failing leg in a ComputeError", func() {
			// A covolume above the clearance volume makes the compression
			// leg impossible.
			tight := cycle.NewEngine(gas.NewVanDerWaals(moles, gamma, 0.14, 4e-3))
			_, err := tight.Compute(ottoSpec(8, 2000))
			Expect(err).To(HaveOccurred())

			var ce *thermo.ComputeError
			Expect(errors.As(err, &ce)).To(BeTrue())
			Expect(ce.Leg).To(Equal("A->B"))
			Expect(err).To(MatchError(thermo.ErrInvalidState))
		})
	})
})

var _ = Describe("LegCurve", func() {
	var (
		engine *cycle.Engine
		res    *cycle.Result
	)

	BeforeEach(func() {
		engine = cycle.NewEngine(gas.NewIdeal(moles, gamma))
		var err error
		res, err = engine.Compute(dieselSpec(18, 2200))
		Expect(err).NotTo(HaveOccurred())
	})

	It("starts and ends each leg at the cycle vertices", func() {
		curves, err := engine.Curves(res, 50)
		Expect(err).NotTo(HaveOccurred())

		for leg := 0; leg < 4; leg++ {
			from := res.States[leg]
			to := res.States[(leg+1)%4]
			c := curves[leg]

			Expect(c.Leg).To(Equal(cycle.Legs[leg]))
			Expect(c.Volume).To(HaveLen(50))
			Expect(c.Volume[0]).To(BeNumerically("~", from.Volume, 1e-12))
			Expect(c.Volume[49]).To(BeNumerically("~", to.Volume, 1e-12))
			Expect(c.Pressure[0]).To(BeNumerically("~", from.Pressure, from.Pressure*1e-9))
			Expect(c.Pressure[49]).To(BeNumerically("~", to.Pressure, to.Pressure*1e-9))
		}
	})

	It("holds pressure along the isobaric leg", func() {
		c, err := engine.LegCurve(res, 1, 20)
		Expect(err).NotTo(HaveOccurred())
		for _, p := range c.Pressure {
			Expect(p).To(Equal(res.States[1].Pressure))
		}
	})

	It("rejects bad leg indices and sample counts", func() {
		_, err := engine.LegCurve(res, 4, 20)
		Expect(err).To(MatchError(thermo.ErrInvalidInterval))
		_, err = engine.LegCurve(res, 0, 1)
		Expect(err).To(MatchError(thermo.ErrInvalidInterval))
	})
})
