package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateFormula(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		valid   bool
	}{
		{
			name:    "valid formula",
			payload: `{"name": "Test", "description": "A test.", "latex": "a = b"}`,
			valid:   true,
		},
		{
			name: "valid with optional fields",
			payload: `{"name": "Test", "description": "A test.", "latex": "a = b",
				"category": "quantum", "components": ["dirac"], "variables": {"a": "left side"}}`,
			valid: true,
		},
		{
			name:    "missing latex",
			payload: `{"name": "Test", "description": "A test."}`,
			valid:   false,
		},
		{
			name:    "empty name",
			payload: `{"name": "", "description": "A test.", "latex": "a = b"}`,
			valid:   false,
		},
		{
			name:    "components not strings",
			payload: `{"name": "Test", "description": "A test.", "latex": "a", "components": [1, 2]}`,
			valid:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs, err := Validate(KindFormula, "test.json", []byte(tt.payload))
			require.NoError(t, err)
			if tt.valid {
				assert.Empty(t, errs)
			} else {
				require.NotEmpty(t, errs)
				assert.Equal(t, ErrCodeSchema, errs[0].Code)
			}
		})
	}
}

func TestValidateDocument(t *testing.T) {
	valid := `{
		"type": "paper",
		"title": "On Everything",
		"authors": ["A. Author"],
		"sections": [
			{"heading": "Intro", "body": "Text.", "annotations": [{"kind": "note", "text": "Check."}]}
		],
		"formulas": ["unified_action"]
	}`
	errs, err := Validate(KindDocument, "doc.json", []byte(valid))
	require.NoError(t, err)
	assert.Empty(t, errs)

	badType := `{"type": "novel", "title": "On Everything"}`
	errs, err = Validate(KindDocument, "doc.json", []byte(badType))
	require.NoError(t, err)
	assert.NotEmpty(t, errs)

	badAnnotation := `{"type": "report", "title": "T",
		"sections": [{"heading": "H", "annotations": [{"kind": "scribble", "text": "x"}]}]}`
	errs, err = Validate(KindDocument, "doc.json", []byte(badAnnotation))
	require.NoError(t, err)
	assert.NotEmpty(t, errs)
}

func TestValidateMalformedJSON(t *testing.T) {
	errs, err := Validate(KindFormula, "bad.json", []byte("{not json"))
	require.NoError(t, err)
	require.NotEmpty(t, errs)
	assert.Equal(t, ErrCodeParse, errs[0].Code)
}

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "formula.json")
	require.NoError(t, os.WriteFile(path,
		[]byte(`{"name": "Test", "description": "A test.", "latex": "a = b"}`), 0o644))

	errs, err := ValidateFile(KindFormula, path)
	require.NoError(t, err)
	assert.Empty(t, errs)

	errs, err = ValidateFile(KindFormula, filepath.Join(dir, "missing.json"))
	require.NoError(t, err)
	require.NotEmpty(t, errs)
	assert.Equal(t, ErrCodeRead, errs[0].Code)

	_, err = ValidateFile(Kind("bogus"), path)
	assert.Error(t, err)
}
