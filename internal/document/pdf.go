package document

import (
	"io"

	"github.com/jung-kurt/gofpdf"
)

// PDFWriter renders the list as an A4 PDF, breaking pages every
// LinesPerPage lines.
type PDFWriter struct {
	LinesPerPage int
}

func NewPDFWriter() *PDFWriter {
	return &PDFWriter{LinesPerPage: DefaultLinesPerPage}
}

func (p *PDFWriter) Write(w io.Writer, title string, lines []string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	perPage := p.LinesPerPage
	if perPage <= 0 {
		perPage = DefaultLinesPerPage
	}

	for i, line := range lines {
		if i > 0 && i%perPage == 0 {
			pdf.AddPage()
			pdf.SetFont("Helvetica", "", 12)
		}
		pdf.CellFormat(0, 8, line, "", 1, "L", false, 0, "")
	}

	return pdf.Output(w)
}

func (p *PDFWriter) ContentType() string { return "application/pdf" }

func (p *PDFWriter) Extension() string { return "pdf" }
