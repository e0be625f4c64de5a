package texkit

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrLaTeXNotFound is returned by CompilePDF when no pdflatex binary is
// available. Callers should fall back to the native PDF builder.
var ErrLaTeXNotFound = errors.New("pdflatex not found in PATH")

// CompilePDF compiles a .tex file to PDF by invoking pdflatex in
// non-interactive mode. The generated PDF lands next to outPath's final
// name; auxiliary files stay in a temporary build directory.
//
// Returns the path of the generated PDF.
func CompilePDF(ctx context.Context, texPath, outPath string) (string, error) {
	bin, err := exec.LookPath("pdflatex")
	if err != nil {
		return "", ErrLaTeXNotFound
	}

	buildDir, err := os.MkdirTemp("", "texkit-build-")
	if err != nil {
		return "", fmt.Errorf("create build dir: %w", err)
	}
	defer os.RemoveAll(buildDir)

	cmd := exec.CommandContext(ctx, bin,
		"-interaction=nonstopmode",
		"-halt-on-error",
		"-output-directory", buildDir,
		texPath,
	)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("pdflatex failed: %w\n%s", err, tail(string(out), 20))
	}

	base := strings.TrimSuffix(filepath.Base(texPath), filepath.Ext(texPath))
	built := filepath.Join(buildDir, base+".pdf")

	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create output dir: %w", err)
		}
	}
	data, err := os.ReadFile(built)
	if err != nil {
		return "", fmt.Errorf("read compiled pdf: %w", err)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return "", fmt.Errorf("write pdf: %w", err)
	}
	return outPath, nil
}

// tail returns the last n lines of s, for error reporting without dumping
// the full pdflatex log.
func tail(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
