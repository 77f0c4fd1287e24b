package shot

import "errors"

var (
	// ErrInvalidQuery reports a query record that already covers every
	// assigned field, leaving nothing to prompt a generator for.
	ErrInvalidQuery = errors.New("query covers all fields")

	// ErrFieldParse reports a field whose section was present but whose
	// content the assigned converter rejected.
	ErrFieldParse = errors.New("field parse failed")
)
