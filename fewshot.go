// Package fewshot re-exports the codec's primary types so common setups need
// a single import. The full surface lives in the pkg/ subpackages.
package fewshot

import (
	"github.com/goliatone/go-fewshot/pkg/convert"
	"github.com/goliatone/go-fewshot/pkg/shot"
)

// Record is a field-name → value mapping.
type Record = shot.Record

// Converter formats one value as text and parses it back.
type Converter = convert.Converter

// Pair binds a field name to its converter.
type Pair = shot.Pair

// Assignment is the ordered list of (field, converter) pairs that defines
// field order in rendered text.
type Assignment = shot.Assignment

// Formatter composes records into labelled blocks and decomposes free text
// back into records.
type Formatter = shot.Formatter

// Delimiter joins and splits sequences of text blocks.
type Delimiter = shot.Delimiter

// NewFormatter builds a Formatter over the given pairs.
func NewFormatter(pairs ...Pair) (*Formatter, error) {
	return shot.NewFormatter(pairs...)
}

// CompileTemplate compiles a bidirectional line template over the given
// fields.
func CompileTemplate(template string, fields []string, opts ...convert.TemplateOption) (*convert.LineTemplate, error) {
	return convert.CompileTemplate(template, fields, opts...)
}
