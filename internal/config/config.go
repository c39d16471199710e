package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bohounsoun/thermosim/internal/cycle"
	"github.com/bohounsoun/thermosim/internal/gas"
	"github.com/bohounsoun/thermosim/internal/numeric"
	"github.com/bohounsoun/thermosim/internal/thermo"
)

// Defaults match the original single-cylinder bench: one litre at ambient
// conditions, air-like diatomic gas.
const (
	DefaultTau       = 8.0
	DefaultPeakTemp  = 2000.0
	DefaultMaxVolume = 1.0e-3
	DefaultPressure  = 1.013e5
	DefaultTemp      = 300.0
	DefaultGamma     = 1.4

	DefaultSpeed        = 3000.0
	DefaultCylinders    = 1
	DefaultDisplacement = 1.0e-3

	DefaultSweepMin   = 4.0
	DefaultSweepMax   = 30.0
	DefaultSweepSteps = 40
)

type Config struct {
	Cycle  string       `yaml:"cycle"`
	Gas    GasConfig    `yaml:"gas"`
	Spec   SpecConfig   `yaml:"spec"`
	Solver SolverConfig `yaml:"solver"`
	Engine EngineConfig `yaml:"engine"`
	Sweep  SweepConfig  `yaml:"sweep"`
}

type GasConfig struct {
	Model string  `yaml:"model"` // ideal | van_der_waals
	Moles float64 `yaml:"moles"` // 0 means derive from the intake state
	Gamma float64 `yaml:"gamma"`
	A     float64 `yaml:"a"`
	B     float64 `yaml:"b"`
}

type SpecConfig struct {
	Tau       float64 `yaml:"tau"`
	Cutoff    float64 `yaml:"cutoff"`
	PeakTemp  float64 `yaml:"peak_temp"`
	MaxVolume float64 `yaml:"max_volume"`
	Pressure  float64 `yaml:"pressure"`
	Temp      float64 `yaml:"temp"`
}

type SolverConfig struct {
	Tolerance     float64 `yaml:"tolerance"`
	MaxIterations int     `yaml:"max_iterations"`
	Subintervals  int     `yaml:"subintervals"`
	CurveSamples  int     `yaml:"curve_samples"`
}

type EngineConfig struct {
	Speed        float64 `yaml:"speed"`
	Cylinders    int     `yaml:"cylinders"`
	Displacement float64 `yaml:"displacement"`
}

type SweepConfig struct {
	TauMin float64 `yaml:"tau_min"`
	TauMax float64 `yaml:"tau_max"`
	Steps  int     `yaml:"steps"`
}

func DefaultConfig() *Config {
	return &Config{
		Cycle: "otto",
		Gas: GasConfig{
			Model: "ideal",
			Gamma: DefaultGamma,
		},
		Spec: SpecConfig{
			Tau:       DefaultTau,
			PeakTemp:  DefaultPeakTemp,
			MaxVolume: DefaultMaxVolume,
			Pressure:  DefaultPressure,
			Temp:      DefaultTemp,
		},
		Solver: SolverConfig{
			Tolerance:     numeric.DefaultTolerance,
			MaxIterations: numeric.DefaultMaxIterations,
			Subintervals:  numeric.DefaultSubintervals,
			CurveSamples:  cycle.DefaultCurveSamples,
		},
		Engine: EngineConfig{
			Speed:        DefaultSpeed,
			Cylinders:    DefaultCylinders,
			Displacement: DefaultDisplacement,
		},
		Sweep: SweepConfig{
			TauMin: DefaultSweepMin,
			TauMax: DefaultSweepMax,
			Steps:  DefaultSweepSteps,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// GasModel builds the gas model from the config. A zero mole count is
// derived from the intake state through the ideal-gas law, the way the
// original bench sizes its charge.
func (c *Config) GasModel() (gas.Model, error) {
	moles := c.Gas.Moles
	if moles == 0 {
		moles = c.Spec.Pressure * c.Spec.MaxVolume / (thermo.GasConstant * c.Spec.Temp)
	}

	switch c.Gas.Model {
	case "", "ideal":
		return gas.NewIdeal(moles, c.Gas.Gamma), nil
	case "van_der_waals", "vdw":
		return gas.NewVanDerWaals(moles, c.Gas.Gamma, c.Gas.A, c.Gas.B), nil
	default:
		return gas.Model{}, fmt.Errorf("unknown gas model: %s", c.Gas.Model)
	}
}

// CycleSpec builds the cycle spec from the config.
func (c *Config) CycleSpec() (cycle.Spec, error) {
	typ, err := cycle.ParseType(c.Cycle)
	if err != nil {
		return cycle.Spec{}, err
	}
	return cycle.Spec{
		Type:               typ,
		CompressionRatio:   c.Spec.Tau,
		CutoffRatio:        c.Spec.Cutoff,
		MaxVolume:          c.Spec.MaxVolume,
		InitialPressure:    c.Spec.Pressure,
		InitialTemperature: c.Spec.Temp,
		PeakTemperature:    c.Spec.PeakTemp,
	}, nil
}

// NewEngine builds a cycle engine with the configured numerical options.
func (c *Config) NewEngine() (*cycle.Engine, error) {
	model, err := c.GasModel()
	if err != nil {
		return nil, err
	}
	e := cycle.NewEngine(model)
	if c.Solver.Tolerance > 0 {
		e.Solver.Tolerance = c.Solver.Tolerance
	}
	if c.Solver.MaxIterations > 0 {
		e.Solver.MaxIterations = c.Solver.MaxIterations
	}
	if c.Solver.Subintervals > 0 {
		e.Integrator.Subintervals = c.Solver.Subintervals
	}
	return e, nil
}

// CurveSamples returns the configured per-leg sample count, falling back
// to the package default.
func (c *Config) CurveSamples() int {
	if c.Solver.CurveSamples > 1 {
		return c.Solver.CurveSamples
	}
	return cycle.DefaultCurveSamples
}
