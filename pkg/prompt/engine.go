package prompt

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-fewshot/pkg/shot"
)

// ErrMissingContext reports template variables the caller context does not
// cover. The caller must supply the named variables and call again.
var ErrMissingContext = errors.New("missing context variables")

// The examples and query slots are always supplied by the engine itself.
const (
	examplesVar = "examples"
	queryVar    = "query"
)

// Engine renders few-shot prompts and parses completions. It binds a
// Renderer, the prompt template text, and the shot.Formatter that formats
// examples and queries. Immutable after construction and safe for
// concurrent use.
type Engine struct {
	renderer  Renderer
	template  string
	formatter *shot.Formatter
	declared  []string
}

// New constructs an Engine, introspecting the template's declared variables
// up front so a malformed template fails at construction rather than on
// first use.
func New(renderer Renderer, template string, formatter *shot.Formatter) (*Engine, error) {
	if renderer == nil {
		return nil, fmt.Errorf("prompt: engine needs a renderer")
	}
	if formatter == nil {
		return nil, fmt.Errorf("prompt: engine needs a formatter")
	}
	declared, err := renderer.DeclaredVariables(template)
	if err != nil {
		return nil, fmt.Errorf("prompt: inspect template: %w", err)
	}
	return &Engine{
		renderer:  renderer,
		template:  template,
		formatter: formatter,
		declared:  declared,
	}, nil
}

// RequiredVariables returns the variable names the template declares.
func (e *Engine) RequiredVariables() []string {
	return append([]string(nil), e.declared...)
}

// GeneratePrompt formats every example record as a shot, formats the query
// record as a partial block ending in the next field's header, and renders
// the template with the caller context plus the examples and query slots.
// Context that leaves declared variables uncovered returns an error wrapping
// ErrMissingContext listing the unmet names.
func (e *Engine) GeneratePrompt(context map[string]any, examples []shot.Record, query shot.Record) (string, error) {
	if err := e.validateContext(context); err != nil {
		return "", err
	}

	formattedExamples := make([]string, len(examples))
	for i, example := range examples {
		block, err := e.formatter.FormatExample(example)
		if err != nil {
			return "", fmt.Errorf("prompt: format example %d: %w", i, err)
		}
		formattedExamples[i] = block
	}

	formattedQuery, err := e.formatter.FormatQuery(query)
	if err != nil {
		return "", fmt.Errorf("prompt: format query: %w", err)
	}

	data := make(map[string]any, len(context)+2)
	for key, value := range context {
		data[key] = value
	}
	data[examplesVar] = formattedExamples
	data[queryVar] = formattedQuery

	rendered, err := e.renderer.RenderString(e.template, data)
	if err != nil {
		return "", fmt.Errorf("prompt: render: %w", err)
	}
	return rendered, nil
}

// ParseResult decomposes a model completion into a record via the bound
// formatter.
func (e *Engine) ParseResult(text string) (shot.Record, error) {
	return e.formatter.ParseResult(text)
}

func (e *Engine) validateContext(context map[string]any) error {
	var missing []string
	for _, name := range e.declared {
		if name == examplesVar || name == queryVar {
			continue
		}
		if _, ok := context[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return fmt.Errorf("prompt: %s: %w", strings.Join(missing, ", "), ErrMissingContext)
}
