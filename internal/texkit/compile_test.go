package texkit

import (
	"context"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompilePDFWithoutLaTeX(t *testing.T) {
	if _, err := exec.LookPath("pdflatex"); err == nil {
		t.Skip("pdflatex installed; fallback path not reachable")
	}

	_, err := CompilePDF(context.Background(), "missing.tex", filepath.Join(t.TempDir(), "out.pdf"))
	assert.ErrorIs(t, err, ErrLaTeXNotFound)
}

func TestTail(t *testing.T) {
	require.Equal(t, "b\nc", tail("a\nb\nc\n", 2))
	require.Equal(t, "a", tail("a", 5))
}
