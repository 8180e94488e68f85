package export

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"
)

const utf8FontFamily = "report"

// PDFExporter renders datasets into a basic tabular PDF. Core PDF fonts cannot
// draw Cyrillic, so a TTF font path should be supplied for non-Latin data.
type PDFExporter struct {
	fontPath string
}

// NewPDFExporter constructs a PDF exporter. fontPath may be empty.
func NewPDFExporter(fontPath string) *PDFExporter {
	return &PDFExporter{fontPath: fontPath}
}

// Render creates a landscape PDF document with a title and a table body.
func (e *PDFExporter) Render(data Dataset, title string) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("render pdf: %w", errNoColumns)
	}
	fontDir := ""
	if e.fontPath != "" {
		fontDir = filepath.Dir(e.fontPath)
	}
	pdf := gofpdf.New("L", "mm", "A4", fontDir)
	pdf.SetMargins(10, 15, 10)

	family := "Helvetica"
	tr := func(s string) string { return s }
	if e.fontPath != "" {
		pdf.AddUTF8Font(utf8FontFamily, "", filepath.Base(e.fontPath))
		family = utf8FontFamily
	} else {
		tr = pdf.UnicodeTranslatorFromDescriptor("")
	}
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("load pdf font: %w", err)
	}

	pdf.AddPage()
	if title != "" {
		pdf.SetFont(family, "", 14)
		pdf.CellFormat(0, 10, tr(title), "", 1, "C", false, 0, "")
		pdf.Ln(5)
	}

	pdf.SetFont(family, "", 10)
	colWidth := 277.0 / float64(len(data.Headers))
	for _, header := range data.Headers {
		pdf.CellFormat(colWidth, 8, tr(header), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(family, "", 9)
	for _, row := range data.Rows {
		for _, cell := range data.Cells(row) {
			pdf.CellFormat(colWidth, 7, tr(cell), "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (e *PDFExporter) Extension() string { return "pdf" }
