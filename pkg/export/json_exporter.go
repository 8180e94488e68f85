package export

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// RenderJSON encodes v as UTF-8 JSON indented by two spaces. Non-ASCII text is
// written as-is and HTML characters are not escaped.
func RenderJSON(v interface{}) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return buf.Bytes(), nil
}
