package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runSession(t *testing.T, opts *RootOptions, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewSessionCommand(opts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestSessionListEmpty(t *testing.T) {
	dir := t.TempDir()
	out, err := runSession(t, &RootOptions{Format: "text", OutputDir: dir}, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "no sessions recorded")
}

func TestAgentModeRecordsArtifacts(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "ledger.db")
	opts := &RootOptions{Format: "text", OutputDir: dir, AgentMode: true, SessionDB: db}

	_, err := runLatex(t, opts, "generate", "--formula", "maxwell")
	require.NoError(t, err)

	out, err := runSession(t, opts, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "agent")

	// Pull the session id from the JSON side for the show step.
	jsonOpts := &RootOptions{Format: "json", OutputDir: dir, SessionDB: db}
	listOut, err := runSession(t, jsonOpts, "list")
	require.NoError(t, err)

	var resp struct {
		Status string `json:"status"`
		Data   []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(listOut), &resp))
	require.Len(t, resp.Data, 1)

	showOut, err := runSession(t, opts, "show", resp.Data[0].ID)
	require.NoError(t, err)
	assert.Contains(t, showOut, "tex")
	assert.Contains(t, showOut, "maxwell.tex")
}

func latestSessionID(t *testing.T, opts *RootOptions) string {
	t.Helper()
	jsonOpts := &RootOptions{Format: "json", OutputDir: opts.OutputDir, SessionDB: opts.SessionDB}
	listOut, err := runSession(t, jsonOpts, "list")
	require.NoError(t, err)

	var resp struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(listOut), &resp))
	require.NotEmpty(t, resp.Data)
	return resp.Data[0].ID
}

func TestDocumentArtifactCarriesTitle(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "ledger.db")
	opts := &RootOptions{Format: "text", OutputDir: dir, AgentMode: true, SessionDB: db}

	_, err := runLatex(t, opts, "generate", "--document", "--title", "Field Notes")
	require.NoError(t, err)

	showOut, err := runSession(t, opts, "show", latestSessionID(t, opts))
	require.NoError(t, err)
	assert.Contains(t, showOut, "Field Notes")
	assert.Contains(t, showOut, "document.tex")
}

func TestPDFGenerateRecordsTexAndPDF(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "ledger.db")
	opts := &RootOptions{Format: "text", OutputDir: dir, AgentMode: true, SessionDB: db}

	_, err := runPDF(t, opts, "generate", "--formula", "schrodinger")
	require.NoError(t, err)

	showOut, err := runSession(t, opts, "show", latestSessionID(t, opts))
	require.NoError(t, err)
	assert.Contains(t, showOut, "schrodinger.tex")
	assert.Contains(t, showOut, "schrodinger.pdf")
}

func TestSessionShowUnknownID(t *testing.T) {
	dir := t.TempDir()
	out, err := runSession(t, &RootOptions{Format: "text", OutputDir: dir}, "show", "nope")
	require.NoError(t, err)
	assert.Contains(t, out, "no artifacts recorded")
}

func TestEachCommandGetsOwnSession(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "ledger.db")
	opts := &RootOptions{Format: "text", OutputDir: dir, AgentMode: true, SessionDB: db}

	_, err := runLatex(t, opts, "generate", "--formula", "dirac")
	require.NoError(t, err)
	_, err = runLatex(t, opts, "generate", "--formula", "maxwell")
	require.NoError(t, err)

	jsonOpts := &RootOptions{Format: "json", OutputDir: dir, SessionDB: db}
	listOut, err := runSession(t, jsonOpts, "list")
	require.NoError(t, err)

	var resp struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(listOut), &resp))
	assert.Len(t, resp.Data, 2)
}
