package chartgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormulaChartMapping(t *testing.T) {
	// Every mapped chart exists in the registry, and the mapping round-trips.
	for formula, vis := range formulaCharts {
		_, err := Lookup(vis)
		require.NoError(t, err, "mapped chart %s must be registered", vis)

		got, err := ForFormula(formula)
		require.NoError(t, err)
		assert.Equal(t, vis, got)

		back, err := FormulaFor(vis)
		require.NoError(t, err)
		assert.Equal(t, formula, back)
	}

	_, err := ForFormula("einstein_field")
	assert.ErrorContains(t, err, "no visualization")

	_, err = FormulaFor("flux_capacitor")
	assert.ErrorContains(t, err, "no formula")
}

func TestInsights(t *testing.T) {
	t.Run("from formula", func(t *testing.T) {
		r, err := Insights("gravity_action", "")
		require.NoError(t, err)
		assert.Equal(t, "gravitational_potential", r.Visualization)
		require.Len(t, r.Insights, 2)
		assert.Equal(t, "observation", r.Insights[0].Type)
		assert.Equal(t, "implication", r.Insights[1].Type)
	})

	t.Run("from visualization", func(t *testing.T) {
		r, err := Insights("", "coupling_unification")
		require.NoError(t, err)
		assert.Equal(t, "unified_action", r.Formula)
		assert.NotEmpty(t, r.Insights)
	})

	t.Run("mismatched pair", func(t *testing.T) {
		_, err := Insights("gravity_action", "higgs_potential")
		assert.ErrorContains(t, err, "pairs with")
	})

	t.Run("neither given", func(t *testing.T) {
		_, err := Insights("", "")
		assert.Error(t, err)
	})

	t.Run("unknown formula", func(t *testing.T) {
		_, err := Insights("phlogiston", "")
		assert.Error(t, err)
	})
}
