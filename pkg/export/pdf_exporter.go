package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/ivdepaste/ivdepaste-api/internal/models"
)

// PDFExporter renders a single paste as a printable document: title,
// metadata line, then the body in a monospaced face.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render creates a PDF document for the paste.
func (e *PDFExporter) Render(paste *models.Paste) ([]byte, error) {
	if paste == nil {
		return nil, fmt.Errorf("pdf requires a paste")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(12, 15, 12)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.MultiCell(0, 8, paste.Title, "", "L", false)

	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(110, 110, 110)
	meta := fmt.Sprintf("%s  |  created %s", models.LanguageLabel(paste.Language), paste.CreatedAt.UTC().Format(time.RFC1123))
	if paste.ExpiresAt != nil {
		meta += fmt.Sprintf("  |  expires %s", paste.ExpiresAt.UTC().Format(time.RFC1123))
	}
	pdf.MultiCell(0, 5, meta, "", "L", false)
	pdf.Ln(4)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Courier", "", 9)
	pdf.MultiCell(0, 4.5, paste.Content, "", "L", false)

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
