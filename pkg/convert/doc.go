// Package convert defines the Converter contract used throughout the codec
// and the built-in value converters: string passthrough, markdown table, XML,
// JSON, and the compiled line template. A Converter turns one value into text
// and text back into a value; it is configured once at construction and is
// immutable afterwards, so a single instance is safe to share across
// goroutines. Converters document their own round-trip guarantee — the table
// and XML converters stringify values by design and therefore do not recover
// the original types.
package convert
