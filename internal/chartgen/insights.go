package chartgen

import (
	"fmt"
	"sort"
)

// formulaCharts pairs each top-level action formula with the chart that
// illustrates it. The mapping is bijective so insights can resolve from
// either side.
var formulaCharts = map[string]string{
	"gravity_action":      "gravitational_potential",
	"matter_action":       "higgs_potential",
	"gauge_action":        "wave_packet",
	"quantum_corrections": "quantum_oscillator",
	"unified_action":      "coupling_unification",
}

// ForFormula returns the visualization paired with a formula.
func ForFormula(formula string) (string, error) {
	vis, ok := formulaCharts[formula]
	if !ok {
		return "", fmt.Errorf("no visualization for formula %q (supported: %v)",
			formula, mappedFormulas())
	}
	return vis, nil
}

// FormulaFor returns the formula paired with a visualization.
func FormulaFor(vis string) (string, error) {
	for formula, v := range formulaCharts {
		if v == vis {
			return formula, nil
		}
	}
	return "", fmt.Errorf("no formula for visualization %q (supported: %v)", vis, Names())
}

func mappedFormulas() []string {
	names := make([]string, 0, len(formulaCharts))
	for name := range formulaCharts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Insight is one remark about a formula/visualization pair.
type Insight struct {
	Type    string `json:"type"` // "observation" | "implication"
	Content string `json:"content"`
}

// InsightReport ties a formula and its visualization to their insights.
type InsightReport struct {
	Formula       string    `json:"formula"`
	Visualization string    `json:"visualization"`
	Insights      []Insight `json:"insights"`
}

var insightTable = map[string][]Insight{
	"gravity_action": {
		{Type: "observation", Content: "The depth of the potential well grows linearly with the central mass."},
		{Type: "implication", Content: "Massive objects create deep gravity wells, bending the paths of light and matter."},
	},
	"matter_action": {
		{Type: "observation", Content: "The Higgs potential has degenerate minima away from the origin."},
		{Type: "implication", Content: "Spontaneous symmetry breaking occurs when the field settles into one of these minima."},
	},
	"gauge_action": {
		{Type: "observation", Content: "Wave packets are localized excitations of the gauge field."},
		{Type: "implication", Content: "Forces are mediated by the exchange of such field quanta between particles."},
	},
	"quantum_corrections": {
		{Type: "observation", Content: "Oscillator levels are evenly spaced with a nonzero ground-state energy."},
		{Type: "implication", Content: "Vacuum fluctuations persist even in the lowest energy state."},
	},
	"unified_action": {
		{Type: "observation", Content: "The three inverse couplings run toward a common value at high energy."},
		{Type: "implication", Content: "A single interaction may underlie all gauge forces above the unification scale."},
	},
}

// Insights resolves a formula or visualization name (at least one must be
// given) to its pair and returns the recorded insights.
func Insights(formula, vis string) (InsightReport, error) {
	var err error
	switch {
	case formula == "" && vis == "":
		return InsightReport{}, fmt.Errorf("a formula or visualization name is required")
	case formula == "":
		formula, err = FormulaFor(vis)
	case vis == "":
		vis, err = ForFormula(formula)
	default:
		var want string
		want, err = ForFormula(formula)
		if err == nil && want != vis {
			err = fmt.Errorf("formula %q pairs with visualization %q, not %q", formula, want, vis)
		}
	}
	if err != nil {
		return InsightReport{}, err
	}
	return InsightReport{
		Formula:       formula,
		Visualization: vis,
		Insights:      insightTable[formula],
	}, nil
}
