package pdfgen

import "strings"

// Annotation kinds.
const (
	AnnotationNote      = "note"
	AnnotationHighlight = "highlight"
	AnnotationComment   = "comment"
)

// Annotation renders a rounded annotation box with a kind label and the
// kind-specific fill color. Unknown kinds fall back to the note styling.
func (b *Builder) Annotation(kind, text string) {
	fill := b.theme.NoteColor
	switch kind {
	case AnnotationHighlight:
		fill = b.theme.HighlightColor
	case AnnotationComment:
		fill = b.theme.CommentColor
	}

	b.pdf.SetFillColor(fill.R, fill.G, fill.B)
	a := b.theme.AccentColor
	b.pdf.SetDrawColor(a.R, a.G, a.B)
	b.pdf.SetLineWidth(0.3)

	width := 210 - 2*b.theme.Margin
	label := strings.ToUpper(kind)
	body := label + ": " + text

	// Measure before drawing so the box fits the wrapped text.
	b.pdf.SetFont(b.family, "", b.theme.BodySize-1)
	lines := b.pdf.SplitText(b.text(body), width-8)
	height := float64(len(lines))*(b.theme.LineHeight-1) + 6

	x := b.theme.Margin
	y := b.pdf.GetY() + 2
	b.pdf.RoundedRect(x, y, width, height, 2, "1234", "FD")

	b.pdf.SetXY(x+4, y+3)
	b.setColor(b.theme.TextColor)
	b.pdf.MultiCell(width-8, b.theme.LineHeight-1, b.text(body), "", "L", false)
	b.pdf.SetY(y + height + 4)
}
