// Package persist round-trips codec configuration through a JSON/YAML-shaped
// tree of scalars, lists, and maps. Every configurable kind is a member of a
// closed tagged union: Encode writes a "kind" tag next to the constructor
// parameters, Decode switches on the tag and rebuilds the value through the
// public constructors. There is no reflective type lookup; a tag outside the
// union fails with ErrUnknownKind.
package persist

import (
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-fewshot/pkg/convert"
	"github.com/goliatone/go-fewshot/pkg/shot"
)

// ErrUnknownKind reports a tree whose kind tag names no known variant.
var ErrUnknownKind = errors.New("unknown kind")

// The closed set of kind tags.
const (
	KindString        = "string"
	KindMarkdownTable = "markdown_table"
	KindXML           = "xml"
	KindJSON          = "json"
	KindLineTemplate  = "line_template"
	KindRunDelimiter  = "run_delimiter"
	KindAssignment    = "assignment"
	KindFormatter     = "formatter"
	KindStream        = "stream"
)

// Encode serialises a codec configuration value into a tagged tree.
func Encode(v any) (map[string]any, error) {
	switch value := v.(type) {
	case convert.String:
		return map[string]any{
			"kind":             KindString,
			"leading_newlines": value.LeadingNewlines,
			"indent":           value.Indent,
		}, nil
	case convert.MarkdownTable:
		return map[string]any{
			"kind":    KindMarkdownTable,
			"columns": append([]string(nil), value.Columns...),
		}, nil
	case convert.XML:
		return map[string]any{"kind": KindXML}, nil
	case convert.JSON:
		return map[string]any{"kind": KindJSON}, nil
	case *convert.LineTemplate:
		return map[string]any{
			"kind":           KindLineTemplate,
			"template":       value.Template(),
			"fields":         value.Fields(),
			"boundary_chars": value.BoundaryChars(),
			"complex_field":  value.ComplexField(),
			"indent":         value.Indent(),
		}, nil
	case shot.RunDelimiter:
		return map[string]any{
			"kind":    KindRunDelimiter,
			"char":    string(rune(value.Char)),
			"min_run": value.MinRun,
		}, nil
	case shot.Assignment:
		pairs := make([]any, len(value))
		for i, pair := range value {
			converter, err := Encode(pair.Converter)
			if err != nil {
				return nil, fmt.Errorf("persist: pair %q: %w", pair.Field, err)
			}
			pairs[i] = map[string]any{
				"field":     pair.Field,
				"converter": converter,
			}
		}
		return map[string]any{"kind": KindAssignment, "pairs": pairs}, nil
	case *shot.Formatter:
		assignment, err := Encode(value.Assignment())
		if err != nil {
			return nil, err
		}
		return map[string]any{"kind": KindFormatter, "assignment": assignment}, nil
	case *shot.Stream:
		formatter, err := Encode(value.Formatter())
		if err != nil {
			return nil, err
		}
		delimiter, err := Encode(value.Delimiter())
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"kind":      KindStream,
			"formatter": formatter,
			"delimiter": delimiter,
		}, nil
	default:
		return nil, fmt.Errorf("persist: unsupported value %T: %w", v, ErrUnknownKind)
	}
}

// Decode reconstructs a codec configuration value from a tagged tree.
func Decode(tree map[string]any) (any, error) {
	kind, err := treeString(tree, "kind")
	if err != nil {
		return nil, err
	}
	switch kind {
	case KindString:
		leading, err := treeInt(tree, "leading_newlines")
		if err != nil {
			return nil, err
		}
		indent, err := treeString(tree, "indent")
		if err != nil {
			return nil, err
		}
		return convert.String{LeadingNewlines: leading, Indent: indent}, nil
	case KindMarkdownTable:
		columns, err := treeStrings(tree, "columns")
		if err != nil {
			return nil, err
		}
		return convert.MarkdownTable{Columns: columns}, nil
	case KindXML:
		return convert.XML{}, nil
	case KindJSON:
		return convert.JSON{}, nil
	case KindLineTemplate:
		return decodeLineTemplate(tree)
	case KindRunDelimiter:
		char, err := treeString(tree, "char")
		if err != nil {
			return nil, err
		}
		if len(char) != 1 {
			return nil, fmt.Errorf("persist: run_delimiter char %q must be one character", char)
		}
		minRun, err := treeInt(tree, "min_run")
		if err != nil {
			return nil, err
		}
		return shot.NewRunDelimiter(char[0], minRun)
	case KindAssignment:
		return decodeAssignment(tree)
	case KindFormatter:
		subtree, err := treeMap(tree, "assignment")
		if err != nil {
			return nil, err
		}
		assignment, err := decodeAssignment(subtree)
		if err != nil {
			return nil, err
		}
		return shot.NewFormatter(assignment...)
	case KindStream:
		return decodeStream(tree)
	default:
		return nil, fmt.Errorf("persist: kind %q: %w", kind, ErrUnknownKind)
	}
}

// DecodeConverter decodes a tree and asserts the result is a Converter.
func DecodeConverter(tree map[string]any) (convert.Converter, error) {
	value, err := Decode(tree)
	if err != nil {
		return nil, err
	}
	converter, ok := value.(convert.Converter)
	if !ok {
		return nil, fmt.Errorf("persist: %T is not a converter", value)
	}
	return converter, nil
}

func decodeLineTemplate(tree map[string]any) (any, error) {
	template, err := treeString(tree, "template")
	if err != nil {
		return nil, err
	}
	fields, err := treeStrings(tree, "fields")
	if err != nil {
		return nil, err
	}

	var opts []convert.TemplateOption
	if boundary, ok := tree["boundary_chars"]; ok {
		text, ok := boundary.(string)
		if !ok {
			return nil, fmt.Errorf("persist: boundary_chars is %T, want string", boundary)
		}
		opts = append(opts, convert.WithBoundaryChars(text))
	}
	if complexField, ok := tree["complex_field"].(string); ok && complexField != "" {
		opts = append(opts, convert.WithComplexField(complexField))
	}
	if indent, ok := tree["indent"].(string); ok && indent != "" {
		opts = append(opts, convert.WithIndent(indent))
	}
	return convert.CompileTemplate(template, fields, opts...)
}

func decodeAssignment(tree map[string]any) (shot.Assignment, error) {
	raw, ok := tree["pairs"]
	if !ok {
		return nil, fmt.Errorf("persist: assignment tree lacks pairs")
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("persist: pairs is %T, want list", raw)
	}

	pairs := make([]shot.Pair, len(list))
	for i, entry := range list {
		pairTree, ok := entry.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("persist: pair %d is %T, want map", i, entry)
		}
		field, err := treeString(pairTree, "field")
		if err != nil {
			return nil, err
		}
		converterTree, err := treeMap(pairTree, "converter")
		if err != nil {
			return nil, err
		}
		converter, err := DecodeConverter(converterTree)
		if err != nil {
			return nil, fmt.Errorf("persist: pair %q: %w", field, err)
		}
		pairs[i] = shot.Pair{Field: field, Converter: converter}
	}
	return shot.NewAssignment(pairs...)
}

func decodeStream(tree map[string]any) (any, error) {
	formatterTree, err := treeMap(tree, "formatter")
	if err != nil {
		return nil, err
	}
	decoded, err := Decode(formatterTree)
	if err != nil {
		return nil, err
	}
	formatter, ok := decoded.(*shot.Formatter)
	if !ok {
		return nil, fmt.Errorf("persist: stream formatter is %T", decoded)
	}

	delimiterTree, err := treeMap(tree, "delimiter")
	if err != nil {
		return nil, err
	}
	decoded, err = Decode(delimiterTree)
	if err != nil {
		return nil, err
	}
	delimiter, ok := decoded.(shot.Delimiter)
	if !ok {
		return nil, fmt.Errorf("persist: stream delimiter is %T", decoded)
	}
	return shot.NewStream(formatter, delimiter)
}

// MarshalJSON encodes a configuration value as indented JSON.
func MarshalJSON(v any) ([]byte, error) {
	tree, err := Encode(v)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(tree, "", "  ")
}

// UnmarshalJSON decodes a configuration value from JSON.
func UnmarshalJSON(data []byte) (any, error) {
	var tree map[string]any
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("persist: decode json: %w", err)
	}
	return Decode(tree)
}

// MarshalYAML encodes a configuration value as YAML.
func MarshalYAML(v any) ([]byte, error) {
	tree, err := Encode(v)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(tree)
}

// UnmarshalYAML decodes a configuration value from YAML.
func UnmarshalYAML(data []byte) (any, error) {
	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("persist: decode yaml: %w", err)
	}
	return Decode(tree)
}

func treeString(tree map[string]any, key string) (string, error) {
	raw, ok := tree[key]
	if !ok {
		return "", fmt.Errorf("persist: tree lacks %q", key)
	}
	text, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("persist: %q is %T, want string", key, raw)
	}
	return text, nil
}

// treeInt reads an integer that may arrive as int (YAML) or float64 (JSON).
func treeInt(tree map[string]any, key string) (int, error) {
	raw, ok := tree[key]
	if !ok {
		return 0, fmt.Errorf("persist: tree lacks %q", key)
	}
	switch n := raw.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	default:
		return 0, fmt.Errorf("persist: %q is %T, want number", key, raw)
	}
}

func treeStrings(tree map[string]any, key string) ([]string, error) {
	raw, ok := tree[key]
	if !ok {
		return nil, nil
	}
	switch list := raw.(type) {
	case nil:
		return nil, nil
	case []string:
		return append([]string(nil), list...), nil
	case []any:
		out := make([]string, len(list))
		for i, entry := range list {
			text, ok := entry.(string)
			if !ok {
				return nil, fmt.Errorf("persist: %q[%d] is %T, want string", key, i, entry)
			}
			out[i] = text
		}
		return out, nil
	default:
		return nil, fmt.Errorf("persist: %q is %T, want list", key, raw)
	}
}

func treeMap(tree map[string]any, key string) (map[string]any, error) {
	raw, ok := tree[key]
	if !ok {
		return nil, fmt.Errorf("persist: tree lacks %q", key)
	}
	subtree, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("persist: %q is %T, want map", key, raw)
	}
	return subtree, nil
}
