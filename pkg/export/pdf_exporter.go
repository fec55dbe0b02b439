package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// PDFExporter renders datasets into a basic tabular PDF.
type PDFExporter struct {
	fontFamily string
	fontPath   string
}

// PDFOption customises the exporter.
type PDFOption func(*PDFExporter)

// WithUTF8Font registers a TrueType font so non-Latin text renders. Without
// it the core Arial font is used and text is translated to cp1252.
func WithUTF8Font(family, path string) PDFOption {
	return func(e *PDFExporter) {
		e.fontFamily = family
		e.fontPath = path
	}
}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter(opts ...PDFOption) *PDFExporter {
	e := &PDFExporter{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Render creates a landscape PDF document with an optional title and a table body.
func (e *PDFExporter) Render(data Dataset, title string) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("pdf requires at least one header")
	}
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)

	family := "Arial"
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	if e.fontPath != "" {
		pdf.AddUTF8Font(e.fontFamily, "", e.fontPath)
		pdf.AddUTF8Font(e.fontFamily, "B", e.fontPath)
		family = e.fontFamily
		tr = func(s string) string { return s }
	}
	pdf.AddPage()

	if title != "" {
		pdf.SetFont(family, "B", 14)
		pdf.CellFormat(0, 10, tr(title), "", 1, "C", false, 0, "")
		pdf.Ln(4)
	}

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	colWidth := (pageWidth - left - right) / float64(len(data.Headers))

	pdf.SetFont(family, "B", 10)
	pdf.SetFillColor(224, 224, 224)
	for _, header := range data.Headers {
		pdf.CellFormat(colWidth, 8, tr(header), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(family, "", 9)
	for _, record := range data.Records() {
		for _, value := range record {
			pdf.CellFormat(colWidth, 7, tr(value), "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
