package pdfgen

import "strings"

// DocumentMeta carries the title page fields.
type DocumentMeta struct {
	Title    string
	Subtitle string
	Authors  []string
	Date     string
}

// TitlePage renders the opening page: title block centered in the upper
// third, authors and date beneath, accent rules above and below the title.
func (b *Builder) TitlePage(meta DocumentMeta) {
	b.pdf.AddPage()

	a := b.theme.AccentColor
	b.pdf.SetDrawColor(a.R, a.G, a.B)
	b.pdf.SetLineWidth(0.8)

	b.pdf.SetY(80)
	b.pdf.Line(b.theme.Margin+20, 78, 210-b.theme.Margin-20, 78)

	b.setColor(b.theme.HeadingColor)
	b.pdf.SetFont(b.family, "B", b.theme.TitleSize)
	b.pdf.MultiCell(0, 12, b.text(meta.Title), "", "C", false)

	if meta.Subtitle != "" {
		b.pdf.Ln(2)
		b.pdf.SetFont(b.family, "", b.theme.SubtitleSize)
		b.setColor(b.theme.TextColor)
		b.pdf.MultiCell(0, 8, b.text(meta.Subtitle), "", "C", false)
	}

	y := b.pdf.GetY() + 4
	b.pdf.Line(b.theme.Margin+20, y, 210-b.theme.Margin-20, y)

	b.pdf.SetY(y + 20)
	b.pdf.SetFont(b.family, "", b.theme.SubtitleSize)
	b.setColor(b.theme.TextColor)
	if len(meta.Authors) > 0 {
		b.pdf.MultiCell(0, 8, b.text(strings.Join(meta.Authors, ", ")), "", "C", false)
	}
	if meta.Date != "" {
		b.pdf.SetFont(b.family, "", b.theme.BodySize)
		b.pdf.MultiCell(0, 8, b.text(meta.Date), "", "C", false)
	}
}
