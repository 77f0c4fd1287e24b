package convert

import "errors"

var (
	// ErrFormatMismatch reports text that does not conform to what the
	// converter can produce.
	ErrFormatMismatch = errors.New("format mismatch")

	// ErrAmbiguousTemplate reports a template in which two field tokens are
	// not separated by a literal boundary character. Raised at construction
	// and never retried: the template itself is unusable.
	ErrAmbiguousTemplate = errors.New("ambiguous template")

	// ErrMissingField reports a record that lacks a field the template
	// requires.
	ErrMissingField = errors.New("missing field")

	// ErrTemplateMismatch reports a line that does not match the compiled
	// template pattern.
	ErrTemplateMismatch = errors.New("template mismatch")
)
