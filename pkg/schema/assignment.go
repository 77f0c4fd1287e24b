// Package schema derives converter assignments from OpenAPI component
// schemas, so record layouts can live next to the API that produces them.
// Field order is deterministic: fields with an explicit x-fewshot-order
// extension come first by that number, then required properties in the order
// the schema lists them, then the remaining properties sorted by name.
package schema

import (
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-fewshot/pkg/convert"
	"github.com/goliatone/go-fewshot/pkg/shot"
)

// Extension keys recognised on property schemas.
const (
	// ExtConverter overrides the converter picked from the property type.
	// Accepted values: string, markdown_table, xml, json.
	ExtConverter = "x-fewshot-converter"
	// ExtOrder overrides the field's position in the assignment.
	ExtOrder = "x-fewshot-order"
)

// BuildAssignment loads an OpenAPI document and derives an ordered converter
// assignment from the named component schema. The component must be an
// object schema with at least one property.
func BuildAssignment(doc []byte, component string) (shot.Assignment, error) {
	loader := &openapi3.Loader{}
	spec, err := loader.LoadFromData(doc)
	if err != nil {
		return nil, fmt.Errorf("schema: load document: %w", err)
	}

	if spec.Components == nil || spec.Components.Schemas == nil {
		return nil, fmt.Errorf("schema: document has no component schemas")
	}
	ref, ok := spec.Components.Schemas[component]
	if !ok || ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("schema: component %q not found", component)
	}
	target := ref.Value
	if target.Type != nil && !typeIs(target.Type, "object") {
		return nil, fmt.Errorf("schema: component %q is not an object schema", component)
	}
	if len(target.Properties) == 0 {
		return nil, fmt.Errorf("schema: component %q has no properties", component)
	}

	requiredRank := make(map[string]int, len(target.Required))
	for i, name := range target.Required {
		requiredRank[name] = i
	}

	type entry struct {
		name     string
		prop     *openapi3.Schema
		tier     int
		rank     float64
		tieBreak string
	}

	entries := make([]entry, 0, len(target.Properties))
	for name, propRef := range target.Properties {
		if propRef == nil || propRef.Value == nil {
			continue
		}
		prop := propRef.Value
		e := entry{name: name, prop: prop, tieBreak: name}
		if order, ok := extensionNumber(prop.Extensions, ExtOrder); ok {
			e.tier, e.rank = 0, order
		} else if rank, ok := requiredRank[name]; ok {
			e.tier, e.rank = 1, float64(rank)
		} else {
			e.tier = 2
		}
		entries = append(entries, e)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].tier != entries[j].tier {
			return entries[i].tier < entries[j].tier
		}
		if entries[i].rank != entries[j].rank {
			return entries[i].rank < entries[j].rank
		}
		return entries[i].tieBreak < entries[j].tieBreak
	})

	pairs := make([]shot.Pair, len(entries))
	for i, e := range entries {
		converter, err := pickConverter(e.prop)
		if err != nil {
			return nil, fmt.Errorf("schema: property %q: %w", e.name, err)
		}
		pairs[i] = shot.Pair{Field: e.name, Converter: converter}
	}
	return shot.NewAssignment(pairs...)
}

// pickConverter maps a property schema to a converter: tabular arrays get
// the markdown table, other structured shapes get JSON, scalars get the
// passthrough. The x-fewshot-converter extension overrides the pick.
func pickConverter(prop *openapi3.Schema) (convert.Converter, error) {
	if name, ok := extensionString(prop.Extensions, ExtConverter); ok {
		switch name {
		case "string":
			return convert.String{}, nil
		case "markdown_table":
			return convert.MarkdownTable{Columns: itemColumns(prop)}, nil
		case "xml":
			return convert.XML{}, nil
		case "json":
			return convert.JSON{}, nil
		default:
			return nil, fmt.Errorf("unknown converter %q", name)
		}
	}

	switch {
	case typeIs(prop.Type, "array") && itemsAreObjects(prop):
		return convert.MarkdownTable{Columns: itemColumns(prop)}, nil
	case typeIs(prop.Type, "array"), typeIs(prop.Type, "object"):
		return convert.JSON{}, nil
	default:
		return convert.String{}, nil
	}
}

func typeIs(types *openapi3.Types, name string) bool {
	return types != nil && types.Is(name)
}

func itemsAreObjects(prop *openapi3.Schema) bool {
	if prop.Items == nil || prop.Items.Value == nil {
		return false
	}
	return typeIs(prop.Items.Value.Type, "object")
}

func itemColumns(prop *openapi3.Schema) []string {
	if prop.Items == nil || prop.Items.Value == nil {
		return nil
	}
	columns := make([]string, 0, len(prop.Items.Value.Properties))
	for name := range prop.Items.Value.Properties {
		columns = append(columns, name)
	}
	sort.Strings(columns)
	if len(columns) == 0 {
		return nil
	}
	return columns
}

func extensionString(ext map[string]any, key string) (string, bool) {
	raw, ok := ext[key]
	if !ok {
		return "", false
	}
	text, ok := raw.(string)
	return text, ok
}

func extensionNumber(ext map[string]any, key string) (float64, bool) {
	raw, ok := ext[key]
	if !ok {
		return 0, false
	}
	switch n := raw.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
