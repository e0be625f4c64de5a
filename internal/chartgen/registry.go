package chartgen

import (
	"fmt"
	"io"
	"sort"
)

type renderFunc func(params map[string]float64, w io.Writer) error

// Visualization is a registered chart with its parameter spec.
type Visualization struct {
	Description string               `json:"description"`
	Params      map[string]ParamSpec `json:"parameters"`

	render renderFunc
}

// registry holds every visualization the CLI can generate. Parameter
// bounds follow the ranges the original visualization table used.
var registry = map[string]Visualization{
	"gravitational_potential": {
		Description: "Newtonian gravitational potential well around a massive object",
		Params: map[string]ParamSpec{
			"mass": {
				Description: "Mass of the central object (in solar masses)",
				Type:        "float",
				Default:     1.0,
				Min:         0.1,
				Max:         10.0,
			},
		},
		render: renderGravitationalPotential,
	},
	"quantum_oscillator": {
		Description: "Energy levels of the quantum harmonic oscillator",
		Params: map[string]ParamSpec{
			"levels": {
				Description: "Number of energy levels to draw",
				Type:        "int",
				Default:     8,
				Min:         2,
				Max:         20,
			},
			"frequency": {
				Description: "Oscillator angular frequency (natural units)",
				Type:        "float",
				Default:     1.0,
				Min:         0.1,
				Max:         5.0,
			},
		},
		render: renderQuantumOscillator,
	},
	"wave_packet": {
		Description: "Gaussian wave packet with its envelope",
		Params: map[string]ParamSpec{
			"amplitude": {
				Description: "Peak amplitude of the packet",
				Type:        "float",
				Default:     1.0,
				Min:         0.1,
				Max:         5.0,
			},
			"frequency": {
				Description: "Carrier frequency of the packet",
				Type:        "float",
				Default:     2.0,
				Min:         0.5,
				Max:         10.0,
			},
			"width": {
				Description: "Gaussian width of the envelope",
				Type:        "float",
				Default:     1.0,
				Min:         0.2,
				Max:         3.0,
			},
		},
		render: renderWavePacket,
	},
	"higgs_potential": {
		Description: "Symmetry-breaking Higgs potential (mexican hat profile)",
		Params: map[string]ParamSpec{
			"vev": {
				Description: "Vacuum expectation value (position of the minima)",
				Type:        "float",
				Default:     1.0,
				Min:         0.5,
				Max:         3.0,
			},
			"coupling": {
				Description: "Quartic self-coupling strength",
				Type:        "float",
				Default:     0.5,
				Min:         0.1,
				Max:         2.0,
			},
		},
		render: renderHiggsPotential,
	},
	"coupling_unification": {
		Description: "Running of the three inverse gauge couplings with energy scale",
		Params: map[string]ParamSpec{
			"decades": {
				Description: "Energy range in decades of GeV",
				Type:        "int",
				Default:     14,
				Min:         4,
				Max:         19,
			},
		},
		render: renderCouplingUnification,
	},
}

// Names returns all registered visualization names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// List maps visualization names to their descriptions.
func List() map[string]string {
	out := make(map[string]string, len(registry))
	for name, v := range registry {
		out[name] = v.Description
	}
	return out
}

// Lookup returns the visualization registered under name.
func Lookup(name string) (Visualization, error) {
	v, ok := registry[name]
	if !ok {
		return Visualization{}, fmt.Errorf("unknown visualization %q (available: %v)", name, Names())
	}
	return v, nil
}
