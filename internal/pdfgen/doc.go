// Package pdfgen assembles PDF documents natively, without a LaTeX
// toolchain. It is the fallback path when pdflatex is unavailable and the
// primary path for styled reports, papers and formula sheets.
//
// The Builder wraps the PDF-layout library with themed primitives (title
// page, linked table of contents, sections, equation blocks, annotation
// boxes). The Assembler walks a Document descriptor and drives the Builder.
//
// Equations are rendered as Unicode approximations of their LaTeX source.
// When a DejaVu TTF is available on the host it is registered for full
// glyph coverage; otherwise core fonts with codepage translation are used
// and exotic glyphs degrade.
package pdfgen
