package pdfgen

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/augmentic/principia/internal/catalog"
)

// Document types.
const (
	TypeReport       = "report"
	TypePaper        = "paper"
	TypeFormulaSheet = "formula-sheet"
)

// Annotation is a boxed remark attached to a section.
type AnnotationSpec struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

// Section is one titled unit of a report or paper.
type Section struct {
	Heading     string           `json:"heading"`
	Body        string           `json:"body,omitempty"`
	Formulas    []string         `json:"formulas,omitempty"`
	Annotations []AnnotationSpec `json:"annotations,omitempty"`
	Image       string           `json:"image,omitempty"`
}

// Document describes a PDF to assemble. Formulas reference catalog keys.
type Document struct {
	Type     string    `json:"type"`
	Title    string    `json:"title"`
	Subtitle string    `json:"subtitle,omitempty"`
	Authors  []string  `json:"authors,omitempty"`
	Abstract string    `json:"abstract,omitempty"`
	Date     string    `json:"date,omitempty"`
	Sections []Section `json:"sections,omitempty"`
	Formulas []string  `json:"formulas,omitempty"`
}

// LoadDocument reads a document descriptor from a JSON file.
func LoadDocument(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read document %s: %w", path, err)
	}
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return Document{}, fmt.Errorf("parse document %s: %w", path, err)
	}
	if err := d.Check(); err != nil {
		return Document{}, err
	}
	return d, nil
}

// Check verifies structural requirements not covered by JSON decoding.
func (d Document) Check() error {
	switch d.Type {
	case TypeReport, TypePaper, TypeFormulaSheet:
	default:
		return fmt.Errorf("unknown document type %q (want %s, %s or %s)",
			d.Type, TypeReport, TypePaper, TypeFormulaSheet)
	}
	if d.Title == "" {
		return fmt.Errorf("document title must not be empty")
	}
	return nil
}

// Assembler turns Document descriptors into PDF files.
type Assembler struct {
	cat   *catalog.Catalog
	theme Theme
	log   *zap.Logger
}

// AssemblerOption configures an Assembler.
type AssemblerOption func(*Assembler)

// WithAssemblerLogger sets the logger passed down to builders.
func WithAssemblerLogger(log *zap.Logger) AssemblerOption {
	return func(a *Assembler) { a.log = log }
}

// NewAssembler creates an Assembler over the given catalog and theme.
func NewAssembler(cat *catalog.Catalog, theme Theme, opts ...AssemblerOption) *Assembler {
	a := &Assembler{cat: cat, theme: theme, log: zap.NewNop()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assemble renders the document to outPath.
func (a *Assembler) Assemble(doc Document, outPath string) error {
	if err := doc.Check(); err != nil {
		return err
	}

	b := NewBuilder(a.theme, WithBuilderLogger(a.log))

	date := doc.Date
	if date == "" {
		date = time.Now().Format("January 2, 2006")
	}
	b.TitlePage(DocumentMeta{
		Title:    doc.Title,
		Subtitle: doc.Subtitle,
		Authors:  doc.Authors,
		Date:     date,
	})

	switch doc.Type {
	case TypeFormulaSheet:
		if err := a.formulaSheet(b, doc); err != nil {
			return err
		}
	default:
		if err := a.sectionedDocument(b, doc); err != nil {
			return err
		}
	}

	if err := b.Output(outPath); err != nil {
		return err
	}
	a.log.Info("assembled document",
		zap.String("type", doc.Type),
		zap.String("title", doc.Title),
		zap.String("path", outPath))
	return nil
}

// sectionedDocument renders reports and papers: optional abstract, linked
// TOC, then one section per descriptor entry.
func (a *Assembler) sectionedDocument(b *Builder, doc Document) error {
	titles := make([]string, 0, len(doc.Sections))
	for _, s := range doc.Sections {
		titles = append(titles, s.Heading)
	}
	b.TOCPage(titles)

	if doc.Type == TypePaper && doc.Abstract != "" {
		b.pdf.Ln(8)
		b.Heading("Abstract")
		b.Paragraph(doc.Abstract)
	}

	for _, s := range doc.Sections {
		b.StartSection(s.Heading)
		b.Paragraph(s.Body)

		for _, key := range s.Formulas {
			if err := a.formulaBlock(b, key); err != nil {
				return err
			}
		}
		for _, ann := range s.Annotations {
			b.Annotation(ann.Kind, ann.Text)
		}
		if s.Image != "" {
			b.Image(s.Image, 150)
		}
	}
	return nil
}

// formulaSheet renders one section per formula. An empty formula list
// means the full catalog in sorted order.
func (a *Assembler) formulaSheet(b *Builder, doc Document) error {
	keys := doc.Formulas
	if len(keys) == 0 {
		keys = a.cat.Names()
	}
	for _, key := range keys {
		f, err := a.cat.Get(key)
		if err != nil {
			return err
		}
		b.StartSection(f.Name)
		b.Paragraph(f.Description)
		b.Equation(f.LaTeX)
		b.VariableList(f.Variables)
	}
	return nil
}

// formulaBlock renders a formula inline within a section.
func (a *Assembler) formulaBlock(b *Builder, key string) error {
	f, err := a.cat.Get(key)
	if err != nil {
		return err
	}
	b.Heading(f.Name)
	b.Paragraph(f.Description)
	b.Equation(f.LaTeX)
	b.VariableList(f.Variables)
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
