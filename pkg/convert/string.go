package convert

import (
	"fmt"
	"strings"
)

// String is the passthrough converter and the fallback assigned to fields
// without an explicit converter. Format stringifies the value, optionally
// preceded by blank lines and indented per line; Parse trims surrounding
// whitespace. Round-trip recovers the trimmed string, not the original type.
type String struct {
	// LeadingNewlines blank lines emitted before the value.
	LeadingNewlines int
	// Indent prefix applied to every line of the formatted value.
	Indent string
}

var _ Converter = String{}

// Format renders the value with the configured leading newlines and
// indentation. It never fails.
func (s String) Format(value any) (string, error) {
	text := stringify(value)
	if s.Indent != "" {
		lines := strings.Split(text, "\n")
		for i, line := range lines {
			lines[i] = s.Indent + line
		}
		text = strings.Join(lines, "\n")
	}
	if s.LeadingNewlines > 0 {
		text = strings.Repeat("\n", s.LeadingNewlines) + text
	}
	return text, nil
}

// Parse returns the text stripped of surrounding whitespace.
func (s String) Parse(text string) (any, error) {
	return strings.TrimSpace(text), nil
}

func stringify(value any) string {
	if value == nil {
		return ""
	}
	if text, ok := value.(string); ok {
		return text
	}
	return fmt.Sprintf("%v", value)
}
