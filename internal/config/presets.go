package config

// GasPresets are substance constants for the Van der Waals model,
// a in Pa·m⁶/mol², b in m³/mol. Nitrogen carries the values used by the
// original virtual laboratory; the rest come from standard tables.
var GasPresets = map[string]GasConfig{
	"nitrogen": {Model: "van_der_waals", Gamma: 1.40, A: 0.14, B: 3.9e-5},
	"air":      {Model: "van_der_waals", Gamma: 1.40, A: 0.1358, B: 3.64e-5},
	"co2":      {Model: "van_der_waals", Gamma: 1.30, A: 0.364, B: 4.267e-5},
	"helium":   {Model: "van_der_waals", Gamma: 1.66, A: 0.00346, B: 2.38e-5},
	"ideal":    {Model: "ideal", Gamma: 1.40},
}

// CyclePresets are ready-made operating points per cycle type.
var CyclePresets = map[string]map[string]*Config{
	"otto": {
		"street": presetSpec("otto", SpecConfig{
			Tau: 8.0, PeakTemp: 2000, MaxVolume: DefaultMaxVolume,
			Pressure: DefaultPressure, Temp: DefaultTemp,
		}),
		"race": presetSpec("otto", SpecConfig{
			Tau: 12.0, PeakTemp: 2800, MaxVolume: DefaultMaxVolume,
			Pressure: DefaultPressure, Temp: DefaultTemp,
		}),
		"lowload": presetSpec("otto", SpecConfig{
			Tau: 8.0, PeakTemp: 1200, MaxVolume: DefaultMaxVolume,
			Pressure: DefaultPressure, Temp: DefaultTemp,
		}),
	},
	"diesel": {
		"truck": presetSpec("diesel", SpecConfig{
			Tau: 18.0, PeakTemp: 2200, MaxVolume: DefaultMaxVolume,
			Pressure: DefaultPressure, Temp: DefaultTemp,
		}),
		"marine": presetSpec("diesel", SpecConfig{
			Tau: 14.0, Cutoff: 2.0, MaxVolume: DefaultMaxVolume,
			Pressure: DefaultPressure, Temp: DefaultTemp,
		}),
		"generator": presetSpec("diesel", SpecConfig{
			Tau: 20.0, PeakTemp: 1900, MaxVolume: DefaultMaxVolume,
			Pressure: DefaultPressure, Temp: DefaultTemp,
		}),
	},
}

func presetSpec(cycleName string, spec SpecConfig) *Config {
	cfg := DefaultConfig()
	cfg.Cycle = cycleName
	cfg.Spec = spec
	return cfg
}

func GetPreset(cycleName, preset string) *Config {
	presets, ok := CyclePresets[cycleName]
	if !ok {
		return nil
	}
	cfg, ok := presets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(cycleName string) []string {
	presets, ok := CyclePresets[cycleName]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	return names
}

func GetGasPreset(name string) *GasConfig {
	g, ok := GasPresets[name]
	if !ok {
		return nil
	}
	return &g
}

func ListGasPresets() []string {
	names := make([]string, 0, len(GasPresets))
	for name := range GasPresets {
		names = append(names, name)
	}
	return names
}
