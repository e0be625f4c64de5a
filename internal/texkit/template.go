package texkit

import (
	"embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed templates/*.tex
var templateFS embed.FS

// Templates use << >> delimiters so they do not collide with LaTeX braces.
var texTemplates = template.Must(
	template.New("tex").Delims("<<", ">>").ParseFS(templateFS, "templates/*.tex"),
)

// FormulaDoc is the input to formula rendering. Components are rendered as
// subsections after the main equation.
type FormulaDoc struct {
	Name        string
	Description string
	LaTeX       string
	Components  []FormulaDoc
}

// DocumentDoc is the input to full-document rendering.
type DocumentDoc struct {
	Title    string
	Author   string
	Date     string
	Formulas []FormulaDoc
}

type formulaView struct {
	Name        string
	Description string
	LaTeX       string
	Components  string
}

// RenderFormula renders a single formula section as LaTeX source.
func RenderFormula(f FormulaDoc) (string, error) {
	view := formulaView{
		Name:        f.Name,
		Description: f.Description,
		LaTeX:       f.LaTeX,
		Components:  renderComponents(f.Components),
	}
	var b strings.Builder
	if err := texTemplates.ExecuteTemplate(&b, "formula.tex", view); err != nil {
		return "", fmt.Errorf("render formula %q: %w", f.Name, err)
	}
	return b.String(), nil
}

// renderComponents builds the component subsections block. Returns the
// empty string when there are no components.
func renderComponents(comps []FormulaDoc) string {
	if len(comps) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n\\subsection{Components}\n")
	for _, c := range comps {
		fmt.Fprintf(&b, "\n\\subsubsection{%s}\n\n%s\n\n\\begin{equation}\n%s\n\\end{equation}\n",
			c.Name, c.Description, c.LaTeX)
	}
	return b.String()
}

// RenderDocument renders a complete LaTeX document containing the given
// formulas, each as its own section.
func RenderDocument(d DocumentDoc) (string, error) {
	var body strings.Builder
	for i, f := range d.Formulas {
		section, err := RenderFormula(f)
		if err != nil {
			return "", err
		}
		if i > 0 {
			body.WriteString("\n\n")
		}
		body.WriteString(strings.TrimRight(section, "\n"))
	}
	view := struct {
		Title  string
		Author string
		Date   string
		Body   string
	}{d.Title, d.Author, d.Date, body.String()}

	var b strings.Builder
	if err := texTemplates.ExecuteTemplate(&b, "document.tex", view); err != nil {
		return "", fmt.Errorf("render document %q: %w", d.Title, err)
	}
	return b.String(), nil
}
