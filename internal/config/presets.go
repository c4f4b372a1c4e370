package config

import "sort"

var Presets = map[string]*Config{
	// The run the engine was first validated against.
	"reference": {
		BoxSize: 20.0, Particles: 1000, Steps: 100, Dt: 0.005,
		ForceField: "lj", Cutoff: 2.5,
	},
	"dimer": {
		BoxSize: 20.0, Particles: 2, Steps: 200, Dt: 0.005,
		ForceField: "lj", Cutoff: 2.5,
	},
	"dilute": {
		BoxSize: 30.0, Particles: 216, Steps: 500, Dt: 0.005,
		ForceField: "lj", Cutoff: 2.5,
	},
	"dense": {
		BoxSize: 10.0, Particles: 512, Steps: 200, Dt: 0.002,
		ForceField: "lj", Cutoff: 2.5, ValidateState: true,
	},
	"gas": {
		BoxSize: 20.0, Particles: 1000, Steps: 100, Dt: 0.005,
		ForceField: "ideal", Cutoff: 2.5,
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
