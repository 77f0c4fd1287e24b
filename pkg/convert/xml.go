package convert

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strings"
)

// XML converts a slice of string-keyed rows to a flat
// <root><item><key>value</key></item></root> document and back. Like
// MarkdownTable it stringifies cells, so round-trips recover strings only.
type XML struct{}

var _ Converter = XML{}

// Format renders rows as an XML document. Keys within each item are emitted
// in sorted order so output stays deterministic.
func (x XML) Format(value any) (string, error) {
	rows, err := tableRows(value)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)

	root := xml.StartElement{Name: xml.Name{Local: "root"}}
	if err := enc.EncodeToken(root); err != nil {
		return "", fmt.Errorf("convert: encode xml: %w", err)
	}
	for _, row := range rows {
		item := xml.StartElement{Name: xml.Name{Local: "item"}}
		if err := enc.EncodeToken(item); err != nil {
			return "", fmt.Errorf("convert: encode xml: %w", err)
		}
		keys := make([]string, 0, len(row))
		for key := range row {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			elem := xml.StartElement{Name: xml.Name{Local: key}}
			if err := enc.EncodeElement(row[key], elem); err != nil {
				return "", fmt.Errorf("convert: encode xml element %q: %w", key, err)
			}
		}
		if err := enc.EncodeToken(item.End()); err != nil {
			return "", fmt.Errorf("convert: encode xml: %w", err)
		}
	}
	if err := enc.EncodeToken(root.End()); err != nil {
		return "", fmt.Errorf("convert: encode xml: %w", err)
	}
	if err := enc.Flush(); err != nil {
		return "", fmt.Errorf("convert: encode xml: %w", err)
	}
	return buf.String(), nil
}

// Parse recovers rows from a <root><item>...</item></root> document.
func (x XML) Parse(text string) (any, error) {
	dec := xml.NewDecoder(strings.NewReader(strings.TrimSpace(text)))

	var (
		rows    []map[string]string
		current map[string]string
		field   string
		value   strings.Builder
		depth   int
	)

	for {
		token, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("convert: decode xml: %v: %w", err, ErrFormatMismatch)
		}

		switch tok := token.(type) {
		case xml.StartElement:
			depth++
			switch depth {
			case 2:
				if tok.Name.Local != "item" {
					return nil, fmt.Errorf("convert: unexpected element %q: %w", tok.Name.Local, ErrFormatMismatch)
				}
				current = make(map[string]string)
			case 3:
				field = tok.Name.Local
				value.Reset()
			}
		case xml.CharData:
			if depth == 3 {
				value.Write(tok)
			}
		case xml.EndElement:
			switch depth {
			case 3:
				current[field] = value.String()
			case 2:
				rows = append(rows, current)
				current = nil
			}
			depth--
		}
	}

	if rows == nil {
		rows = []map[string]string{}
	}
	return rows, nil
}
