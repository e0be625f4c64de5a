package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runFormula(t *testing.T, opts *RootOptions, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewFormulaCommand(opts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestFormulaList(t *testing.T) {
	out, err := runFormula(t, &RootOptions{Format: "text"}, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "unified_action")
	assert.Contains(t, out, "einstein_field")
	assert.Contains(t, out, "schrodinger")
}

func TestFormulaListJSON(t *testing.T) {
	out, err := runFormula(t, &RootOptions{Format: "json"}, "list")
	require.NoError(t, err)

	var resp Response
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestFormulaGet(t *testing.T) {
	out, err := runFormula(t, &RootOptions{Format: "json"}, "get", "einstein_field")
	require.NoError(t, err)
	assert.Contains(t, out, "G_{\\mu\\nu}")
}

func TestFormulaGetText(t *testing.T) {
	out, err := runFormula(t, &RootOptions{Format: "text"}, "get", "einstein_field")
	require.NoError(t, err)
	assert.NotContains(t, out, `"status"`)
	assert.Contains(t, out, "einstein_field: Einstein Field Equations")
	assert.Contains(t, out, "latex: ")
	assert.Contains(t, out, "variables:")
}

func TestFormulaExploreText(t *testing.T) {
	out, err := runFormula(t, &RootOptions{Format: "text"}, "explore", "gravity_action")
	require.NoError(t, err)
	assert.NotContains(t, out, `"status"`)
	assert.Contains(t, out, "resolved components:")
	assert.Contains(t, out, "einstein_field: Einstein Field Equations")
}

func TestFormulaCompareText(t *testing.T) {
	out, err := runFormula(t, &RootOptions{Format: "text"},
		"compare", "gravity_action", "matter_action")
	require.NoError(t, err)
	assert.NotContains(t, out, `"status"`)
	assert.Contains(t, out, "common components:")
	assert.Contains(t, out, "unique to gravity_action: einstein_field")
	assert.Contains(t, out, "unique to matter_action: dirac")
}

func TestFormulaDepsText(t *testing.T) {
	out, err := runFormula(t, &RootOptions{Format: "text"}, "deps", "unified_action")
	require.NoError(t, err)
	assert.NotContains(t, out, `"status"`)
	assert.Contains(t, out, "direct: ")
	assert.Contains(t, out, "gravity_action -> einstein_field")
}

func TestFormulaGetUnknown(t *testing.T) {
	out, err := runFormula(t, &RootOptions{Format: "text"}, "get", "phlogiston")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "phlogiston")
}

func TestFormulaExplore(t *testing.T) {
	out, err := runFormula(t, &RootOptions{Format: "json"}, "explore", "unified_action")
	require.NoError(t, err)
	assert.Contains(t, out, "gravity_action")
	assert.Contains(t, out, "matter_action")
}

func TestFormulaCompareRequiresTwo(t *testing.T) {
	_, err := runFormula(t, &RootOptions{Format: "text"}, "compare", "unified_action")
	require.Error(t, err)
}

func TestFormulaSearch(t *testing.T) {
	out, err := runFormula(t, &RootOptions{Format: "text"}, "search", "gravity")
	require.NoError(t, err)
	assert.Contains(t, out, "gravity_action")
}

func TestFormulaSearchNoMatches(t *testing.T) {
	out, err := runFormula(t, &RootOptions{Format: "text"}, "search", "zzzzz")
	require.NoError(t, err)
	assert.Contains(t, out, "no matches")
}

func TestFormulaDeps(t *testing.T) {
	out, err := runFormula(t, &RootOptions{Format: "json"}, "deps", "gravity_action")
	require.NoError(t, err)
	assert.Contains(t, out, "einstein_field")
}
