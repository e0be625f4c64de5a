package chartgen

import (
	"fmt"
	"math"
	"sort"
)

// ParamSpec describes one tunable parameter of a visualization.
type ParamSpec struct {
	Description string  `json:"description"`
	Type        string  `json:"type"` // "float" or "int"
	Default     float64 `json:"default"`
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
}

// resolveParams merges supplied values over the spec defaults and
// validates names, integer-ness and bounds.
func resolveParams(specs map[string]ParamSpec, supplied map[string]float64) (map[string]float64, error) {
	resolved := make(map[string]float64, len(specs))
	for name, spec := range specs {
		resolved[name] = spec.Default
	}

	for name, value := range supplied {
		spec, ok := specs[name]
		if !ok {
			return nil, fmt.Errorf("unknown parameter %q (available: %v)", name, paramNames(specs))
		}
		if spec.Type == "int" && value != math.Trunc(value) {
			return nil, fmt.Errorf("parameter %q must be an integer, got %v", name, value)
		}
		if value < spec.Min || value > spec.Max {
			return nil, fmt.Errorf("parameter %q out of range: %v not in [%v, %v]",
				name, value, spec.Min, spec.Max)
		}
		resolved[name] = value
	}
	return resolved, nil
}

func paramNames(specs map[string]ParamSpec) []string {
	names := make([]string, 0, len(specs))
	for name := range specs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SuggestParams returns three candidate parameter sets for a spec map:
// the defaults, the lower bounds, and the upper bounds.
func SuggestParams(specs map[string]ParamSpec) []map[string]float64 {
	defaults := make(map[string]float64, len(specs))
	lows := make(map[string]float64, len(specs))
	highs := make(map[string]float64, len(specs))
	for name, spec := range specs {
		defaults[name] = spec.Default
		lows[name] = spec.Min
		highs[name] = spec.Max
	}
	return []map[string]float64{defaults, lows, highs}
}
