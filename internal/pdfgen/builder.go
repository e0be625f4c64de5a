package pdfgen

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"

	"github.com/augmentic/principia/internal/texkit"
)

// dejavuPaths are the usual locations of the DejaVu fonts on Linux hosts.
// The first readable pair wins.
var dejavuPaths = []struct {
	regular, bold, mono string
}{
	{
		"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
		"/usr/share/fonts/truetype/dejavu/DejaVuSansMono.ttf",
	},
	{
		"/usr/share/fonts/dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/dejavu/DejaVuSans-Bold.ttf",
		"/usr/share/fonts/dejavu/DejaVuSansMono.ttf",
	},
	{
		"/usr/share/fonts/TTF/DejaVuSans.ttf",
		"/usr/share/fonts/TTF/DejaVuSans-Bold.ttf",
		"/usr/share/fonts/TTF/DejaVuSansMono.ttf",
	},
}

const utf8Family = "principia"

// Builder produces a themed PDF document page by page.
type Builder struct {
	pdf   *fpdf.Fpdf
	theme Theme
	log   *zap.Logger

	family    string
	mono      string
	translate func(string) string

	toc []*tocEntry
}

type tocEntry struct {
	title string
	link  int
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithBuilderLogger sets the logger used for build diagnostics.
func WithBuilderLogger(log *zap.Logger) BuilderOption {
	return func(b *Builder) { b.log = log }
}

// NewBuilder creates a Builder with A4 portrait pages and the given theme.
func NewBuilder(theme Theme, opts ...BuilderOption) *Builder {
	b := &Builder{theme: theme, log: zap.NewNop()}
	for _, opt := range opts {
		opt(b)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(theme.Margin, theme.Margin, theme.Margin)
	pdf.SetAutoPageBreak(true, theme.Margin)
	b.pdf = pdf

	b.family = theme.FontFamily
	b.mono = theme.MonoFamily
	if fonts, ok := findDejaVu(); ok {
		pdf.AddUTF8Font(utf8Family, "", fonts.regular)
		pdf.AddUTF8Font(utf8Family, "B", fonts.bold)
		pdf.AddUTF8Font(utf8Family+"-mono", "", fonts.mono)
		b.family = utf8Family
		b.mono = utf8Family + "-mono"
		b.translate = func(s string) string { return s }
		b.log.Debug("registered UTF-8 font", zap.String("path", fonts.regular))
	} else {
		// Core fonts only cover cp1252; exotic glyphs degrade.
		b.translate = pdf.UnicodeTranslatorFromDescriptor("")
		b.log.Debug("no DejaVu font found, using core fonts")
	}

	pdf.SetFooterFunc(func() {
		if pdf.PageNo() == 1 {
			return
		}
		pdf.SetY(-15)
		pdf.SetFont(b.family, "", theme.FooterSize)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 10, fmt.Sprintf("%d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	return b
}

type fontSet struct {
	regular, bold, mono string
}

func findDejaVu() (fontSet, bool) {
	for _, p := range dejavuPaths {
		if _, err := os.Stat(p.regular); err != nil {
			continue
		}
		fs := fontSet{regular: p.regular, bold: p.bold, mono: p.mono}
		if _, err := os.Stat(fs.bold); err != nil {
			fs.bold = fs.regular
		}
		if _, err := os.Stat(fs.mono); err != nil {
			fs.mono = fs.regular
		}
		return fs, true
	}
	return fontSet{}, false
}

func (b *Builder) text(s string) string {
	return b.translate(s)
}

func (b *Builder) setColor(c Color) {
	b.pdf.SetTextColor(c.R, c.G, c.B)
}

// TOCPage writes a linked table of contents for the given section titles.
// Links resolve when StartSection is called for each title, in order.
func (b *Builder) TOCPage(titles []string) {
	b.pdf.AddPage()
	b.setColor(b.theme.HeadingColor)
	b.pdf.SetFont(b.family, "B", b.theme.HeadingSize+2)
	b.pdf.CellFormat(0, 10, b.text("Contents"), "", 1, "L", false, 0, "")
	b.pdf.Ln(4)

	b.pdf.SetFont(b.family, "", b.theme.BodySize)
	b.setColor(b.theme.TextColor)
	for i, title := range titles {
		link := b.pdf.AddLink()
		b.toc = append(b.toc, &tocEntry{title: title, link: link})
		label := fmt.Sprintf("%d.  %s", i+1, title)
		b.pdf.CellFormat(0, b.theme.LineHeight+2, b.text(label), "", 1, "L", false, link, "")
	}
}

// StartSection begins a new section on a fresh page and resolves the next
// pending TOC link, if any.
func (b *Builder) StartSection(title string) {
	b.pdf.AddPage()
	if len(b.toc) > 0 {
		entry := b.toc[0]
		b.toc = b.toc[1:]
		b.pdf.SetLink(entry.link, 0, -1)
		if entry.title != title {
			b.log.Warn("section order differs from table of contents",
				zap.String("expected", entry.title), zap.String("got", title))
		}
	}

	b.setColor(b.theme.HeadingColor)
	b.pdf.SetFont(b.family, "B", b.theme.HeadingSize)
	b.pdf.CellFormat(0, 10, b.text(title), "", 1, "L", false, 0, "")

	a := b.theme.AccentColor
	b.pdf.SetDrawColor(a.R, a.G, a.B)
	b.pdf.SetLineWidth(0.4)
	y := b.pdf.GetY()
	b.pdf.Line(b.theme.Margin, y, 210-b.theme.Margin, y)
	b.pdf.Ln(4)
}

// Heading writes a mid-page heading without starting a new page.
func (b *Builder) Heading(title string) {
	b.setColor(b.theme.HeadingColor)
	b.pdf.SetFont(b.family, "B", b.theme.HeadingSize-1)
	b.pdf.CellFormat(0, 9, b.text(title), "", 1, "L", false, 0, "")
	b.pdf.Ln(1)
}

// Paragraph writes body text.
func (b *Builder) Paragraph(body string) {
	if body == "" {
		return
	}
	b.setColor(b.theme.TextColor)
	b.pdf.SetFont(b.family, "", b.theme.BodySize)
	b.pdf.MultiCell(0, b.theme.LineHeight, b.text(body), "", "L", false)
	b.pdf.Ln(2)
}

// Equation renders a LaTeX equation as a centered Unicode block in the
// mono font.
func (b *Builder) Equation(latex string) {
	rendered := texkit.UnicodeEquation(latex)
	b.setColor(b.theme.TextColor)
	b.pdf.SetFont(b.mono, "", b.theme.EquationSize)
	b.pdf.MultiCell(0, b.theme.LineHeight+2, b.text(rendered), "", "C", false)
	b.pdf.Ln(2)
}

// VariableList writes a symbol-to-meaning list under an equation.
func (b *Builder) VariableList(vars map[string]string) {
	if len(vars) == 0 {
		return
	}
	b.pdf.SetFont(b.family, "", b.theme.BodySize-1)
	b.setColor(b.theme.TextColor)
	for _, sym := range sortedKeys(vars) {
		line := fmt.Sprintf("%s  %s", texkit.UnicodeEquation(sym), vars[sym])
		b.pdf.MultiCell(0, b.theme.LineHeight-1, b.text(line), "", "L", false)
	}
	b.pdf.Ln(2)
}

// Image places a PNG or JPEG at the current position, scaled to the given
// width in millimeters.
func (b *Builder) Image(path string, width float64) {
	opts := fpdf.ImageOptions{ReadDpi: true}
	b.pdf.ImageOptions(path, b.theme.Margin, b.pdf.GetY(), width, 0, true, opts, 0, "")
	b.pdf.Ln(4)
}

// Output writes the document to disk, creating parent directories.
func (b *Builder) Output(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := b.pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf %s: %w", path, err)
	}
	b.log.Debug("wrote pdf", zap.String("path", path))
	return nil
}
