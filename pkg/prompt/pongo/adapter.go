// Package pongo adapts the pongo2 template engine to the prompt.Renderer
// seam.
package pongo

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-fewshot/pkg/prompt"
)

// Option configures the adapter before construction.
type Option func(*config)

type config struct {
	globalData map[string]any
}

// WithGlobalData seeds context values available to every render.
func WithGlobalData(data map[string]any) Option {
	return func(cfg *config) {
		if len(data) == 0 {
			return
		}
		if cfg.globalData == nil {
			cfg.globalData = make(map[string]any, len(data))
		}
		for key, value := range data {
			cfg.globalData[strings.TrimSpace(key)] = value
		}
	}
}

// Engine satisfies prompt.Renderer using a pongo2 template set.
type Engine struct {
	templateSet *pongo2.TemplateSet
}

var _ prompt.Renderer = (*Engine)(nil)

// New constructs an Engine using the provided configuration options.
func New(options ...Option) (*Engine, error) {
	cfg := &config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	set := pongo2.NewSet("fewshot", pongo2.MustNewLocalFileSystemLoader(""))
	if len(cfg.globalData) > 0 {
		set.Globals = pongo2.Context(cfg.globalData)
	}
	return &Engine{templateSet: set}, nil
}

// RenderString parses and executes template content against the data
// mapping.
func (e *Engine) RenderString(template string, data map[string]any) (string, error) {
	tmpl, err := e.templateSet.FromString(template)
	if err != nil {
		return "", fmt.Errorf("pongo: parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(pongo2.Context(data), &buf); err != nil {
		return "", fmt.Errorf("pongo: execute template: %w", err)
	}
	return buf.String(), nil
}

// DeclaredVariables reports the top-level variable names the template reads,
// sorted and deduplicated. The template is parsed first so syntax errors
// surface here; variable collection itself is a lexical scan of the
// {{ ... }} and {% ... %} regions that discounts keywords, filter names,
// literals, and for-loop bindings, since pongo2 does not expose its parse
// tree.
func (e *Engine) DeclaredVariables(template string) ([]string, error) {
	if _, err := e.templateSet.FromString(template); err != nil {
		return nil, fmt.Errorf("pongo: parse template: %w", err)
	}

	names := make(map[string]struct{})
	locals := make(map[string]struct{})
	for _, region := range templateRegions(template) {
		collectVariables(region, names, locals)
	}

	out := make([]string, 0, len(names))
	for name := range names {
		if _, local := locals[name]; local {
			continue
		}
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}

// templateRegions extracts the contents of {{ ... }} and {% ... %} spans.
func templateRegions(template string) []string {
	var regions []string
	for i := 0; i+1 < len(template); i++ {
		if template[i] != '{' {
			continue
		}
		var closer string
		switch template[i+1] {
		case '{':
			closer = "}}"
		case '%':
			closer = "%}"
		default:
			continue
		}
		end := strings.Index(template[i+2:], closer)
		if end < 0 {
			break
		}
		regions = append(regions, template[i+2:i+2+end])
		i += 2 + end + 1
	}
	return regions
}

var templateKeywords = map[string]struct{}{
	"if": {}, "elif": {}, "else": {}, "endif": {},
	"for": {}, "endfor": {}, "in": {}, "empty": {},
	"not": {}, "and": {}, "or": {}, "is": {},
	"true": {}, "false": {}, "True": {}, "False": {},
	"none": {}, "None": {}, "nil": {},
	"with": {}, "endwith": {}, "set": {},
	"block": {}, "endblock": {}, "extends": {}, "include": {},
	"macro": {}, "endmacro": {}, "import": {},
	"comment": {}, "endcomment": {},
	"filter": {}, "endfilter": {},
	"autoescape": {}, "endautoescape": {},
	"verbatim": {}, "endverbatim": {},
	"spaceless": {}, "endspaceless": {},
	"cycle": {}, "firstof": {}, "now": {}, "lorem": {},
	"ifchanged": {}, "endifchanged": {}, "templatetag": {}, "widthratio": {},
}

// collectVariables scans one tag or expression region for identifier reads.
func collectVariables(region string, names, locals map[string]struct{}) {
	var (
		afterPipe bool // identifier right after | is a filter name
		afterFor  bool // identifiers between "for" and "in" are loop bindings
	)

	for i := 0; i < len(region); {
		c := region[i]
		switch {
		case c == '\'' || c == '"':
			// Skip string literals.
			j := i + 1
			for j < len(region) && region[j] != c {
				if region[j] == '\\' {
					j++
				}
				j++
			}
			i = j + 1
		case c == '|':
			afterPipe = true
			i++
		case isIdentStart(rune(c)):
			j := i
			for j < len(region) && isIdentPart(rune(region[j])) {
				j++
			}
			word := region[i:j]
			// Attribute access reads only the root identifier; skip the
			// dotted tail.
			k := j
			for k < len(region) && (region[k] == '.' || isIdentPart(rune(region[k]))) {
				k++
			}
			i = k

			if word == "for" {
				afterFor = true
				continue
			}
			if word == "in" {
				afterFor = false
				continue
			}
			if _, keyword := templateKeywords[word]; keyword {
				continue
			}
			if afterPipe {
				afterPipe = false
				continue
			}
			if afterFor {
				locals[word] = struct{}{}
				continue
			}
			names[word] = struct{}{}
		default:
			i++
		}
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
