package export

import "errors"

var errNoColumns = errors.New("dataset has no columns")

// Dataset is a report sheet: ordered column names and rows keyed by column.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}

// Cells returns row values in column order. Missing columns yield "".
func (d Dataset) Cells(row map[string]string) []string {
	cells := make([]string, len(d.Headers))
	for i, header := range d.Headers {
		cells[i] = row[header]
	}
	return cells
}
