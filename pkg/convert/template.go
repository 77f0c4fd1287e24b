package convert

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultBoundaryChars is the literal punctuation set treated as valid field
// separators when a template is compiled without WithBoundaryChars.
const DefaultBoundaryChars = "()[]{}<>:;,.!?|/\\\"'-"

var fieldNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// TemplateOption configures template compilation.
type TemplateOption func(*templateConfig)

type templateConfig struct {
	boundary     string
	complexField string
	indent       string
}

// WithBoundaryChars overrides the punctuation set accepted as field
// separators.
func WithBoundaryChars(chars string) TemplateOption {
	return func(cfg *templateConfig) {
		if chars != "" {
			cfg.boundary = chars
		}
	}
}

// WithComplexField marks one field for non-greedy, cross-character-class
// matching. The boundary rule is relaxed for gaps adjacent to that field
// only; two unbounded fields next to each other could never be told apart,
// so at most one field may be complex.
func WithComplexField(name string) TemplateOption {
	return func(cfg *templateConfig) {
		cfg.complexField = strings.TrimSpace(name)
	}
}

// WithIndent prefixes every formatted line with the given indentation.
func WithIndent(indent string) TemplateOption {
	return func(cfg *templateConfig) {
		cfg.indent = indent
	}
}

// LineTemplate is a compiled bidirectional line template: a Converter whose
// Format substitutes field values into the template literals and whose Parse
// recovers them by matching the derived pattern against a single line.
//
// The pattern excludes, for each field, only the single literal character
// found immediately on each side of it in the normalized template. Templates
// whose fields are separated by repeated multi-character runs of the same
// separator can therefore stay ambiguous in ways construction-time
// validation does not catch; this is a documented limitation, not a defect
// to compensate for at parse time.
//
// Matching runs on the standard regexp package, whose RE2 engine is
// linear-time in the input. That bounds the cost of the non-greedy complex
// field pattern even on adversarial input, which a backtracking engine could
// not guarantee.
//
// A LineTemplate is immutable after compilation and safe for concurrent use.
type LineTemplate struct {
	raw          string
	fields       []string
	boundary     string
	complexField string
	indent       string

	// segments holds the normalized literal text around the field tokens;
	// len(segments) == len(fields)+1.
	segments []string
	pattern  *regexp.Regexp
}

var _ Converter = (*LineTemplate)(nil)

// CompileTemplate validates and compiles a line template over the given
// ordered field tokens. Every pair of adjacent fields must be separated by at
// least one boundary character (after surrounding whitespace is stripped)
// unless one of the pair is the complex field; violations return an error
// wrapping ErrAmbiguousTemplate naming the offending pair.
func CompileTemplate(template string, fields []string, opts ...TemplateOption) (*LineTemplate, error) {
	cfg := &templateConfig{boundary: DefaultBoundaryChars}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	if len(fields) == 0 {
		return nil, fmt.Errorf("convert: template needs at least one field")
	}
	seen := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		if !fieldNameRe.MatchString(field) {
			return nil, fmt.Errorf("convert: invalid field name %q", field)
		}
		if _, dup := seen[field]; dup {
			return nil, fmt.Errorf("convert: duplicate field %q", field)
		}
		seen[field] = struct{}{}
	}
	if cfg.complexField != "" {
		if _, ok := seen[cfg.complexField]; !ok {
			return nil, fmt.Errorf("convert: complex field %q not in field set", cfg.complexField)
		}
	}

	segments, err := splitTemplate(template, fields)
	if err != nil {
		return nil, err
	}

	// Interior gaps must disambiguate the fields they separate.
	for i := 0; i < len(fields)-1; i++ {
		gap := strings.TrimSpace(segments[i+1])
		if strings.ContainsAny(gap, cfg.boundary) {
			continue
		}
		if fields[i] == cfg.complexField || fields[i+1] == cfg.complexField {
			continue
		}
		return nil, fmt.Errorf("convert: no boundary between %q and %q: %w", fields[i], fields[i+1], ErrAmbiguousTemplate)
	}

	normalizeSegments(segments)

	pattern, err := buildPattern(segments, fields, cfg.complexField)
	if err != nil {
		return nil, err
	}

	return &LineTemplate{
		raw:          template,
		fields:       append([]string(nil), fields...),
		boundary:     cfg.boundary,
		complexField: cfg.complexField,
		indent:       cfg.indent,
		segments:     segments,
		pattern:      pattern,
	}, nil
}

// splitTemplate locates each field token in declared order and returns the
// literal segments around them. Token location is lexical: the first
// occurrence after the previous token wins.
func splitTemplate(template string, fields []string) ([]string, error) {
	segments := make([]string, 0, len(fields)+1)
	rest := template
	for _, field := range fields {
		idx := strings.Index(rest, field)
		if idx < 0 {
			return nil, fmt.Errorf("convert: template %q does not contain field %q", template, field)
		}
		segments = append(segments, rest[:idx])
		rest = rest[idx+len(field):]
	}
	segments = append(segments, rest)
	return segments, nil
}

// normalizeSegments strips incidental whitespace adjacent to the field
// tokens and at the template's outer edges, so emitted and parsed values
// never double-count template whitespace. The outer edges must be trimmed as
// aggressively as Parse trims its input line, or a template with leading or
// trailing whitespace would compile to a pattern that rejects the
// formatter's own output.
func normalizeSegments(segments []string) {
	for i := range segments {
		segments[i] = strings.TrimSpace(segments[i])
	}
}

func buildPattern(segments []string, fields []string, complexField string) (*regexp.Regexp, error) {
	var sb strings.Builder
	sb.WriteString("^")
	for i, field := range fields {
		sb.WriteString(regexp.QuoteMeta(segments[i]))
		sb.WriteString("(?P<")
		sb.WriteString(field)
		sb.WriteString(">")
		sb.WriteString(valuePattern(segments, i, field == complexField))
		sb.WriteString(")")
	}
	sb.WriteString(regexp.QuoteMeta(segments[len(segments)-1]))
	sb.WriteString("$")

	pattern, err := regexp.Compile(sb.String())
	if err != nil {
		return nil, fmt.Errorf("convert: compile template pattern: %w", err)
	}
	return pattern, nil
}

// valuePattern derives the capture pattern for field i: a non-greedy
// any-character pattern for the complex field, otherwise a class excluding
// the literal characters immediately surrounding the field in the template.
func valuePattern(segments []string, i int, nonGreedy bool) string {
	if nonGreedy {
		return "(?s:.*?)"
	}
	var exclude []rune
	if left := segments[i]; left != "" {
		runes := []rune(left)
		exclude = append(exclude, runes[len(runes)-1])
	}
	if right := segments[i+1]; right != "" {
		exclude = append(exclude, []rune(right)[0])
	}
	if len(exclude) == 0 {
		return ".*"
	}
	var sb strings.Builder
	sb.WriteString("[^")
	for _, r := range exclude {
		sb.WriteString(classEscape(r))
	}
	sb.WriteString("]*")
	return sb.String()
}

func classEscape(r rune) string {
	switch r {
	case '\\', ']', '^', '-':
		return "\\" + string(r)
	default:
		return string(r)
	}
}

// Template returns the template text as given at compilation.
func (t *LineTemplate) Template() string { return t.raw }

// Fields returns the declared field tokens in template order.
func (t *LineTemplate) Fields() []string { return append([]string(nil), t.fields...) }

// BoundaryChars returns the boundary character set used at compilation.
func (t *LineTemplate) BoundaryChars() string { return t.boundary }

// ComplexField returns the field marked complex, or "".
func (t *LineTemplate) ComplexField() string { return t.complexField }

// Indent returns the configured line indentation.
func (t *LineTemplate) Indent() string { return t.indent }

// Format substitutes the record's field values into the template. Records
// may be map[string]string or map[string]any; values are stripped of
// surrounding whitespace before substitution. A record lacking any declared
// field returns an error wrapping ErrMissingField.
func (t *LineTemplate) Format(value any) (string, error) {
	record, err := recordValues(value)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(t.indent)
	for i, field := range t.fields {
		fieldValue, ok := record[field]
		if !ok {
			return "", fmt.Errorf("convert: record lacks field %q: %w", field, ErrMissingField)
		}
		sb.WriteString(t.segments[i])
		sb.WriteString(strings.TrimSpace(stringify(fieldValue)))
	}
	sb.WriteString(t.segments[len(t.segments)-1])
	return sb.String(), nil
}

// Parse matches a single line against the compiled pattern and returns one
// stripped value per field as a map[string]any. The line is trimmed of
// surrounding whitespace before matching so indentation does not defeat the
// anchors. A non-matching line returns an error wrapping ErrTemplateMismatch
// that identifies the line.
func (t *LineTemplate) Parse(text string) (any, error) {
	line := strings.TrimSpace(text)
	match := t.pattern.FindStringSubmatch(line)
	if match == nil {
		return nil, fmt.Errorf("convert: line %q: %w", line, ErrTemplateMismatch)
	}

	record := make(map[string]any, len(t.fields))
	for i, name := range t.pattern.SubexpNames() {
		if name == "" {
			continue
		}
		record[name] = strings.TrimSpace(match[i])
	}
	return record, nil
}

// FormatAll formats one line per record, joined by newlines in list order.
func (t *LineTemplate) FormatAll(records []map[string]any) (string, error) {
	lines := make([]string, len(records))
	for i, record := range records {
		line, err := t.Format(record)
		if err != nil {
			return "", err
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n"), nil
}

// ParseAll parses one record per line, preserving line order. Lines that are
// empty after trimming are skipped.
func (t *LineTemplate) ParseAll(text string) ([]map[string]any, error) {
	var records []map[string]any
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		parsed, err := t.Parse(line)
		if err != nil {
			return nil, err
		}
		records = append(records, parsed.(map[string]any))
	}
	return records, nil
}

func recordValues(value any) (map[string]any, error) {
	switch record := value.(type) {
	case map[string]any:
		return record, nil
	case map[string]string:
		out := make(map[string]any, len(record))
		for key, fieldValue := range record {
			out[key] = fieldValue
		}
		return out, nil
	default:
		return nil, fmt.Errorf("convert: unsupported record type %T", value)
	}
}
