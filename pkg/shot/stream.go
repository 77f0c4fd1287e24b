package shot

import (
	"fmt"
	"strings"
)

// Stream joins many formatted blocks into one corpus for storage or
// transmission and splits a corpus back into records.
type Stream struct {
	formatter *Formatter
	delimiter Delimiter
}

// NewStream builds a Stream over a formatter and a delimiter.
func NewStream(formatter *Formatter, delimiter Delimiter) (*Stream, error) {
	if formatter == nil {
		return nil, fmt.Errorf("shot: stream needs a formatter")
	}
	if delimiter == nil {
		return nil, fmt.Errorf("shot: stream needs a delimiter")
	}
	return &Stream{formatter: formatter, delimiter: delimiter}, nil
}

// Formatter returns the stream's block formatter.
func (s *Stream) Formatter() *Formatter { return s.formatter }

// Delimiter returns the stream's delimiter.
func (s *Stream) Delimiter() Delimiter { return s.delimiter }

// Encode formats every record as a block and joins the blocks with the
// delimiter, preserving record order.
func (s *Stream) Encode(records []Record) (string, error) {
	blocks := make([]string, len(records))
	for i, record := range records {
		block, err := s.formatter.FormatExample(record)
		if err != nil {
			return "", fmt.Errorf("shot: encode record %d: %w", i, err)
		}
		blocks[i] = block
	}
	return strings.Join(blocks, s.delimiter.Format()), nil
}

// Decode splits the corpus with the delimiter and parses each block,
// preserving block order. Segments that are empty after trimming are
// skipped.
func (s *Stream) Decode(text string) ([]Record, error) {
	var records []Record
	for i, segment := range s.delimiter.Split(text) {
		if strings.TrimSpace(segment) == "" {
			continue
		}
		record, err := s.formatter.ParseResult(strings.TrimSpace(segment))
		if err != nil {
			return nil, fmt.Errorf("shot: decode block %d: %w", i, err)
		}
		records = append(records, record)
	}
	return records, nil
}
