package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runValidate(t *testing.T, opts *RootOptions, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewValidateCommand(opts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestValidateValidFormula(t *testing.T) {
	path := writeTempJSON(t, "formula.json", `{
		"name": "Hooke's Law",
		"description": "Linear restoring force of a spring.",
		"latex": "F = -k x",
		"variables": {"k": "spring constant"}
	}`)

	out, err := runValidate(t, &RootOptions{Format: "text"}, "formula", path)
	require.NoError(t, err)
	assert.Contains(t, out, "✓")
	assert.Contains(t, out, "valid formula")
}

func TestValidateValidFormulaJSON(t *testing.T) {
	path := writeTempJSON(t, "formula.json", `{
		"name": "Hooke's Law",
		"description": "Linear restoring force of a spring.",
		"latex": "F = -k x"
	}`)

	out, err := runValidate(t, &RootOptions{Format: "json"}, "formula", path)
	require.NoError(t, err)

	var resp Response
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestValidateMissingField(t *testing.T) {
	path := writeTempJSON(t, "formula.json", `{
		"name": "Incomplete",
		"latex": "E = m c^2"
	}`)

	out, err := runValidate(t, &RootOptions{Format: "text"}, "formula", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗")
	assert.Contains(t, out, "description")
}

func TestValidateMalformedJSON(t *testing.T) {
	path := writeTempJSON(t, "broken.json", `{"name": `)

	out, err := runValidate(t, &RootOptions{Format: "text"}, "formula", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "E002")
}

func TestValidateValidDocument(t *testing.T) {
	path := writeTempJSON(t, "doc.json", `{
		"type": "report",
		"title": "Field Equations Summary",
		"sections": [{"heading": "Overview", "formulas": ["einstein_field"]}]
	}`)

	out, err := runValidate(t, &RootOptions{Format: "text"}, "document", path)
	require.NoError(t, err)
	assert.Contains(t, out, "valid document")
}

func TestValidateBadDocumentType(t *testing.T) {
	path := writeTempJSON(t, "doc.json", `{
		"type": "novel",
		"title": "Wrong Kind"
	}`)

	_, err := runValidate(t, &RootOptions{Format: "text"}, "document", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestValidateUnknownKind(t *testing.T) {
	path := writeTempJSON(t, "doc.json", `{}`)

	_, err := runValidate(t, &RootOptions{Format: "text"}, "poem", path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestValidateMissingFile(t *testing.T) {
	out, err := runValidate(t, &RootOptions{Format: "text"}, "formula", "/nonexistent/formula.json")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "E001")
}
