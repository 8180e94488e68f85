package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset() Dataset {
	return Dataset{
		Headers: []string{"Subject", "Grades", "Average"},
		Rows: []map[string]string{
			{"Subject": "Math", "Grades": "5 3", "Average": "4.00"},
			{"Subject": "History, modern", "Grades": "4", "Average": "4.00"},
		},
	}
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(sampleDataset(), "Иванов Иван (Группа 101)")
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(out, utf8BOM))
	assert.Equal(t, "Иванов Иван (Группа 101),,\nSubject,Grades,Average\nMath,5 3,4.00\n\"History, modern\",4,4.00\n", string(out[len(utf8BOM):]))
}

func TestCSVExporterWithoutTitle(t *testing.T) {
	data := sampleDataset()
	data.Rows = append(data.Rows, map[string]string{"Subject": "Physics"})

	out, err := NewCSVExporter().Render(data, "")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(out[len(utf8BOM):])), "\n")
	assert.Equal(t, "Subject,Grades,Average", lines[0])
	assert.Equal(t, "Physics,,", lines[len(lines)-1])
}

func TestExportersRequireColumns(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{}, "")
	assert.ErrorIs(t, err, errNoColumns)

	_, err = NewPDFExporter("").Render(Dataset{}, "")
	assert.ErrorIs(t, err, errNoColumns)
}

func TestDatasetCells(t *testing.T) {
	data := sampleDataset()
	assert.Equal(t, []string{"Math", "5 3", "4.00"}, data.Cells(data.Rows[0]))
	assert.Equal(t, []string{"", "", ""}, data.Cells(nil))
}

func TestPDFExporterRender(t *testing.T) {
	out, err := NewPDFExporter("").Render(sampleDataset(), "Student report")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestPDFExporterMissingFont(t *testing.T) {
	_, err := NewPDFExporter("/nonexistent/font.ttf").Render(sampleDataset(), "")
	assert.Error(t, err)
}

func TestRenderJSONKeepsUnicode(t *testing.T) {
	out, err := RenderJSON(map[string]string{"group": "Группа 101", "note": "<b>"})
	require.NoError(t, err)
	assert.Contains(t, string(out), "\"group\": \"Группа 101\"")
	assert.Contains(t, string(out), "<b>")
	assert.Contains(t, string(out), "\n  \"")

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "Группа 101", decoded["group"])
}
