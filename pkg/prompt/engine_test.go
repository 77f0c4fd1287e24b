package prompt_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/goliatone/go-fewshot/pkg/convert"
	"github.com/goliatone/go-fewshot/pkg/prompt"
	"github.com/goliatone/go-fewshot/pkg/shot"
)

// stubRenderer records the data it was handed and declares a fixed variable
// set.
type stubRenderer struct {
	declared []string
	lastData map[string]any
}

func (s *stubRenderer) RenderString(template string, data map[string]any) (string, error) {
	s.lastData = data
	return fmt.Sprintf("%v", data["query"]), nil
}

func (s *stubRenderer) DeclaredVariables(template string) ([]string, error) {
	return s.declared, nil
}

func newEngine(t *testing.T, renderer prompt.Renderer) *prompt.Engine {
	t.Helper()
	formatter, err := shot.NewFormatter(
		shot.Pair{Field: "question", Converter: convert.String{}},
		shot.Pair{Field: "answer", Converter: convert.String{}},
	)
	if err != nil {
		t.Fatalf("NewFormatter: %v", err)
	}
	engine, err := prompt.New(renderer, "irrelevant", formatter)
	if err != nil {
		t.Fatalf("prompt.New: %v", err)
	}
	return engine
}

func TestGeneratePromptMissingContext(t *testing.T) {
	renderer := &stubRenderer{declared: []string{"examples", "query", "persona", "tone"}}
	engine := newEngine(t, renderer)

	_, err := engine.GeneratePrompt(nil, nil, shot.Record{"question": "Why?"})
	if !errors.Is(err, prompt.ErrMissingContext) {
		t.Fatalf("GeneratePrompt error = %v, want ErrMissingContext", err)
	}
	for _, name := range []string{"persona", "tone"} {
		if !strings.Contains(err.Error(), name) {
			t.Fatalf("error %q does not list %q", err, name)
		}
	}
}

func TestGeneratePromptSuppliesExamplesAndQuery(t *testing.T) {
	renderer := &stubRenderer{declared: []string{"examples", "query"}}
	engine := newEngine(t, renderer)

	examples := []shot.Record{
		{"question": "Why?", "answer": "Because."},
	}
	rendered, err := engine.GeneratePrompt(nil, examples, shot.Record{"question": "How?"})
	if err != nil {
		t.Fatalf("GeneratePrompt: %v", err)
	}

	formattedExamples, ok := renderer.lastData["examples"].([]string)
	if !ok || len(formattedExamples) != 1 {
		t.Fatalf("examples slot = %#v", renderer.lastData["examples"])
	}
	if formattedExamples[0] != "Question:\nWhy?\n\nAnswer:\nBecause." {
		t.Fatalf("formatted example = %q", formattedExamples[0])
	}
	if !strings.HasSuffix(rendered, "Answer:") {
		t.Fatalf("rendered query = %q, want suffix Answer:", rendered)
	}
}

func TestGeneratePromptQueryCoversAllFields(t *testing.T) {
	renderer := &stubRenderer{declared: []string{"examples", "query"}}
	engine := newEngine(t, renderer)

	_, err := engine.GeneratePrompt(nil, nil, shot.Record{"question": "Why?", "answer": "Because."})
	if !errors.Is(err, shot.ErrInvalidQuery) {
		t.Fatalf("GeneratePrompt error = %v, want ErrInvalidQuery", err)
	}
}

func TestParseResultDelegates(t *testing.T) {
	renderer := &stubRenderer{declared: []string{"examples", "query"}}
	engine := newEngine(t, renderer)

	record, err := engine.ParseResult("Question:\nHow?\n\nAnswer:\nLike so.")
	if err != nil {
		t.Fatalf("ParseResult: %v", err)
	}
	if record["answer"] != "Like so." {
		t.Fatalf("answer = %#v", record["answer"])
	}
}
