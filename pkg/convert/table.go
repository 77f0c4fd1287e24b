package convert

import (
	"fmt"
	"sort"
	"strings"
)

// MarkdownTable converts a slice of string-keyed rows to a GitHub-style
// markdown table and back. The conversion is lossy by design: every cell is
// stringified on the way out and comes back as a string.
type MarkdownTable struct {
	// Columns fixes the column order. When empty, columns are derived from
	// the first row's keys in sorted order so output stays deterministic.
	Columns []string
}

var _ Converter = MarkdownTable{}

// Format renders rows as a header row, a separator row, and one row per
// record. An empty slice renders as the empty string.
func (m MarkdownTable) Format(value any) (string, error) {
	rows, err := tableRows(value)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", nil
	}

	columns := m.Columns
	if len(columns) == 0 {
		columns = make([]string, 0, len(rows[0]))
		for name := range rows[0] {
			columns = append(columns, name)
		}
		sort.Strings(columns)
	}

	lines := make([]string, 0, len(rows)+2)
	lines = append(lines, "| "+strings.Join(columns, " | ")+" |")

	separators := make([]string, len(columns))
	for i := range separators {
		separators[i] = "-------"
	}
	lines = append(lines, "|"+strings.Join(separators, "|")+"|")

	for _, row := range rows {
		cells := make([]string, len(columns))
		for i, column := range columns {
			cells[i] = row[column]
		}
		lines = append(lines, "| "+strings.Join(cells, " | ")+" |")
	}
	return strings.Join(lines, "\n"), nil
}

// Parse recovers rows from a markdown table. Text with fewer than three lines
// (header, separator, one data row) parses to an empty slice; text whose
// header line carries no cell separators does not conform.
func (m MarkdownTable) Parse(text string) (any, error) {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) < 3 {
		return []map[string]string{}, nil
	}
	if !strings.Contains(lines[0], "|") {
		return nil, fmt.Errorf("convert: markdown table header %q: %w", lines[0], ErrFormatMismatch)
	}

	headers := splitTableRow(lines[0])
	rows := make([]map[string]string, 0, len(lines)-2)
	for _, line := range lines[2:] {
		values := splitTableRow(line)
		row := make(map[string]string, len(headers))
		for i, header := range headers {
			if i < len(values) {
				row[header] = values[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func splitTableRow(line string) []string {
	trimmed := strings.Trim(strings.TrimSpace(line), "|")
	parts := strings.Split(trimmed, "|")
	out := make([]string, len(parts))
	for i, part := range parts {
		out[i] = strings.TrimSpace(part)
	}
	return out
}

// tableRows normalises the supported row shapes into []map[string]string.
func tableRows(value any) ([]map[string]string, error) {
	switch rows := value.(type) {
	case nil:
		return nil, nil
	case []map[string]string:
		return rows, nil
	case []map[string]any:
		out := make([]map[string]string, len(rows))
		for i, row := range rows {
			converted := make(map[string]string, len(row))
			for key, cell := range row {
				converted[key] = stringify(cell)
			}
			out[i] = converted
		}
		return out, nil
	default:
		return nil, fmt.Errorf("convert: unsupported row collection %T", value)
	}
}
