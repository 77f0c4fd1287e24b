package shot

import (
	"fmt"
	"sort"
	"strings"
)

// Formatter renders whole records as labelled text blocks and inverts the
// process given only its Assignment: no positions or grammar travel with the
// text. Immutable after construction and safe for concurrent use.
type Formatter struct {
	assignment Assignment
}

// NewFormatter builds a Formatter over the given pairs, validating them the
// same way NewAssignment does.
func NewFormatter(pairs ...Pair) (*Formatter, error) {
	assignment, err := NewAssignment(pairs...)
	if err != nil {
		return nil, err
	}
	return &Formatter{assignment: assignment}, nil
}

// Assignment returns a copy of the formatter's ordered assignment.
func (f *Formatter) Assignment() Assignment {
	return append(Assignment(nil), f.assignment...)
}

// FormatExample renders the record as one block: for each assigned field
// present in the record, in assignment order, its header followed by its
// formatted value, sections joined by a blank line. Assigned fields missing
// from the record are skipped silently, which allows partial assignments.
func (f *Formatter) FormatExample(record Record) (string, error) {
	sections, _, err := f.sections(record)
	if err != nil {
		return "", err
	}
	return strings.Join(sections, "\n\n"), nil
}

// FormatQuery renders a partial record like FormatExample, then appends the
// bare header of the field immediately following the last present field.
// That trailing header primes a downstream generator to continue at the
// right field. When the last present field is already the final assigned
// field there is nothing to prompt for and an error wrapping ErrInvalidQuery
// is returned.
func (f *Formatter) FormatQuery(record Record) (string, error) {
	sections, lastPresent, err := f.sections(record)
	if err != nil {
		return "", err
	}
	if lastPresent == len(f.assignment)-1 {
		return "", fmt.Errorf("shot: field %q is the last assigned field: %w", f.assignment[lastPresent].Field, ErrInvalidQuery)
	}

	next := Header(f.assignment[lastPresent+1].Field)
	if len(sections) == 0 {
		return next, nil
	}
	return strings.Join(sections, "\n\n") + "\n\n" + next, nil
}

func (f *Formatter) sections(record Record) ([]string, int, error) {
	sections := make([]string, 0, len(f.assignment))
	lastPresent := -1
	for i, pair := range f.assignment {
		value, present := record[pair.Field]
		if !present {
			continue
		}
		formatted, err := pair.Converter.Format(value)
		if err != nil {
			return nil, -1, fmt.Errorf("shot: format field %q: %w", pair.Field, err)
		}
		sections = append(sections, Header(pair.Field)+"\n"+formatted)
		lastPresent = i
	}
	return sections, lastPresent, nil
}

// boundary marks a located field section: pos is where its header match
// begins, content where its raw text begins.
type boundary struct {
	field   string
	pos     int
	content int
	pair    Pair
}

// ParseResult decomposes generator output back into a Record. The input may
// be a full block or a continuation whose leading section carries no header
// (the generator was completing a query, so the header was never repeated).
//
// Headers are only recognised at the very start of the text or immediately
// after a newline; header-like text mid-line never becomes a boundary. Found
// boundaries are sorted by position, which tolerates out-of-order output.
// When the first boundary belongs to a field other than the first assigned
// one and does not sit at position zero, the leading text is attributed to
// that field's declared predecessor. Fields whose header never appears, or
// whose section is empty after trimming, come back as nil — absence over
// failure. A converter rejecting present content is a genuine error and
// surfaces wrapping ErrFieldParse with the field named.
func (f *Formatter) ParseResult(text string) (Record, error) {
	var boundaries []boundary
	resolved := make(map[string]struct{}, len(f.assignment))
	for _, pair := range f.assignment {
		header := Header(pair.Field)
		pos := headerIndex(text, header)
		if pos < 0 {
			continue
		}
		boundaries = append(boundaries, boundary{
			field:   pair.Field,
			pos:     pos,
			content: pos + len(header),
			pair:    pair,
		})
		resolved[pair.Field] = struct{}{}
	}

	sort.Slice(boundaries, func(i, j int) bool { return boundaries[i].pos < boundaries[j].pos })

	// A continuation starts mid-section: text before the first header belongs
	// to the field the query left off at, whose header was already emitted.
	if len(boundaries) > 0 && boundaries[0].pos != 0 {
		if idx := f.assignment.index(boundaries[0].field); idx > 0 {
			pred := f.assignment[idx-1]
			if _, ok := resolved[pred.Field]; !ok {
				boundaries = append([]boundary{{field: pred.Field, pair: pred}}, boundaries...)
			}
		}
	}

	record := make(Record, len(f.assignment))
	for _, pair := range f.assignment {
		record[pair.Field] = nil
	}

	for i, b := range boundaries {
		end := len(text)
		if i+1 < len(boundaries) {
			end = boundaries[i+1].pos
		}
		raw := strings.TrimSpace(text[b.content:end])
		if raw == "" {
			continue
		}
		value, err := b.pair.Converter.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("shot: field %q: %v: %w", b.field, err, ErrFieldParse)
		}
		record[b.field] = value
	}
	return record, nil
}

// headerIndex finds the first occurrence of header at the start of text or
// immediately after a newline, or -1.
func headerIndex(text, header string) int {
	if strings.HasPrefix(text, header) {
		return 0
	}
	idx := strings.Index(text, "\n"+header)
	if idx < 0 {
		return -1
	}
	return idx + 1
}
