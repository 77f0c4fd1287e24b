package shot

import (
	"fmt"

	"github.com/goliatone/go-fewshot/pkg/convert"
)

// Record is a field-name → value mapping. Field ordering is never taken from
// the record itself: the Assignment is the single source of field order, so
// a Record stays a plain map.
type Record map[string]any

// Pair binds one field name to the converter that formats and parses its
// values.
type Pair struct {
	Field     string
	Converter convert.Converter
}

// Assignment is an explicit ordered list of (field, converter) pairs. The
// list order defines the canonical sequence in which fields appear in
// rendered text, which makes ordering a visible invariant rather than an
// accident of map iteration.
type Assignment []Pair

// NewAssignment validates the pairs: at least one, no duplicate fields, no
// empty field names. Pairs with a nil converter fall back to the passthrough
// string converter.
func NewAssignment(pairs ...Pair) (Assignment, error) {
	if len(pairs) == 0 {
		return nil, fmt.Errorf("shot: assignment needs at least one pair")
	}
	seen := make(map[string]struct{}, len(pairs))
	out := make(Assignment, len(pairs))
	for i, pair := range pairs {
		if pair.Field == "" {
			return nil, fmt.Errorf("shot: assignment pair %d has empty field name", i)
		}
		if _, dup := seen[pair.Field]; dup {
			return nil, fmt.Errorf("shot: duplicate field %q in assignment", pair.Field)
		}
		seen[pair.Field] = struct{}{}
		if pair.Converter == nil {
			pair.Converter = convert.String{}
		}
		out[i] = pair
	}
	return out, nil
}

// Fields returns the field names in assignment order.
func (a Assignment) Fields() []string {
	fields := make([]string, len(a))
	for i, pair := range a {
		fields[i] = pair.Field
	}
	return fields
}

// Converter returns the converter assigned to the named field.
func (a Assignment) Converter(field string) (convert.Converter, bool) {
	for _, pair := range a {
		if pair.Field == field {
			return pair.Converter, true
		}
	}
	return nil, false
}

// index returns the position of the named field, or -1.
func (a Assignment) index(field string) int {
	for i, pair := range a {
		if pair.Field == field {
			return i
		}
	}
	return -1
}
