// Package texkit renders LaTeX sources for formula documents and provides
// a best-effort LaTeX-to-Unicode conversion for plain-text equation display.
//
// The package has three concerns:
//
//   - UnicodeEquation converts a LaTeX math expression into a readable
//     Unicode approximation (Greek letters, operators, super/subscripts,
//     fractions, roots). It is a bounded single-pass transform: anything
//     it cannot map is stripped rather than reported.
//
//   - RenderFormula and RenderDocument produce .tex sources from embedded
//     templates.
//
//   - CompilePDF shells out to pdflatex when it is installed. Callers are
//     expected to fall back to the native PDF builder (internal/pdfgen)
//     when CompilePDF returns ErrLaTeXNotFound.
package texkit
