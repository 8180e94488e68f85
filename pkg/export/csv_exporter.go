package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// utf8BOM makes spreadsheet applications read the sheet as UTF-8 so Cyrillic
// names are shown correctly.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVExporter writes a report sheet as CSV: an optional caption line holding the
// title, the column line, then one line per row.
type CSVExporter struct {
	bom bool
}

// NewCSVExporter builds a CSV exporter that prefixes output with a UTF-8 BOM.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{bom: true}
}

// Render encodes the sheet. The caption line is padded to the column count.
func (e *CSVExporter) Render(data Dataset, title string) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("render csv: %w", errNoColumns)
	}

	records := make([][]string, 0, len(data.Rows)+2)
	if title != "" {
		caption := make([]string, len(data.Headers))
		caption[0] = title
		records = append(records, caption)
	}
	records = append(records, data.Headers)
	for _, row := range data.Rows {
		records = append(records, data.Cells(row))
	}

	buf := &bytes.Buffer{}
	if e.bom {
		buf.Write(utf8BOM)
	}
	if err := csv.NewWriter(buf).WriteAll(records); err != nil {
		return nil, fmt.Errorf("render csv: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for CSV output.
func (e *CSVExporter) Extension() string { return "csv" }
