package convert

// Converter is the capability pair at the heart of the codec: Format renders
// a value as text, Parse recovers a value from text.
//
// Format must not fail for values of the converter's supported shape; it
// returns an error only when handed a value the converter was never meant to
// carry. Parse returns an error wrapping ErrFormatMismatch when the text does
// not conform to anything the converter could have produced.
//
// Implementations hold only construction-time configuration and no per-call
// state, so each call is independent and instances are safe for concurrent
// use.
type Converter interface {
	Format(value any) (string, error)
	Parse(text string) (any, error)
}
