package convert

import (
	"encoding/json"
	"fmt"
)

// JSON converts any JSON-serialisable value to indented JSON and back.
// Parse round-trips through encoding/json, so objects come back as
// map[string]any and numbers as float64.
type JSON struct{}

var _ Converter = JSON{}

// Format renders the value as indented JSON.
func (j JSON) Format(value any) (string, error) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return "", fmt.Errorf("convert: encode json: %w", err)
	}
	return string(data), nil
}

// Parse decodes the text as JSON.
func (j JSON) Parse(text string) (any, error) {
	var value any
	if err := json.Unmarshal([]byte(text), &value); err != nil {
		return nil, fmt.Errorf("convert: decode json: %v: %w", err, ErrFormatMismatch)
	}
	return value, nil
}
