package shot_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-fewshot/pkg/convert"
	"github.com/goliatone/go-fewshot/pkg/shot"
)

func newFormatter(t *testing.T, fields ...string) *shot.Formatter {
	t.Helper()
	pairs := make([]shot.Pair, len(fields))
	for i, field := range fields {
		pairs[i] = shot.Pair{Field: field, Converter: convert.String{}}
	}
	formatter, err := shot.NewFormatter(pairs...)
	if err != nil {
		t.Fatalf("NewFormatter: %v", err)
	}
	return formatter
}

func TestHeader(t *testing.T) {
	cases := []struct {
		field string
		want  string
	}{
		{field: "name", want: "Name:"},
		{field: "first_name", want: "First_Name:"},
		{field: "two words", want: "Two Words:"},
	}
	for _, tc := range cases {
		if got := shot.Header(tc.field); got != tc.want {
			t.Fatalf("Header(%q) = %q, want %q", tc.field, got, tc.want)
		}
	}
}

func TestFormatExample(t *testing.T) {
	formatter := newFormatter(t, "name", "species")
	block, err := formatter.FormatExample(shot.Record{"name": "Bob", "species": "Person"})
	if err != nil {
		t.Fatalf("FormatExample: %v", err)
	}
	want := "Name:\nBob\n\nSpecies:\nPerson"
	if block != want {
		t.Fatalf("FormatExample = %q, want %q", block, want)
	}
}

func TestFormatExampleSkipsAbsentFields(t *testing.T) {
	formatter := newFormatter(t, "name", "species", "notes")
	block, err := formatter.FormatExample(shot.Record{"name": "Bob"})
	if err != nil {
		t.Fatalf("FormatExample: %v", err)
	}
	if block != "Name:\nBob" {
		t.Fatalf("FormatExample = %q", block)
	}
}

func TestFormatQueryEndsWithNextHeader(t *testing.T) {
	formatter := newFormatter(t, "a", "b", "c")
	query, err := formatter.FormatQuery(shot.Record{"a": "1"})
	if err != nil {
		t.Fatalf("FormatQuery: %v", err)
	}
	if !strings.HasSuffix(query, shot.Header("b")) {
		t.Fatalf("FormatQuery = %q, want suffix %q", query, shot.Header("b"))
	}
}

func TestFormatQueryNothingToPromptFor(t *testing.T) {
	formatter := newFormatter(t, "a", "b")
	_, err := formatter.FormatQuery(shot.Record{"a": "1", "b": "2"})
	if !errors.Is(err, shot.ErrInvalidQuery) {
		t.Fatalf("FormatQuery error = %v, want ErrInvalidQuery", err)
	}
}

func TestFormatQueryEmptyRecordPromptsFirstField(t *testing.T) {
	formatter := newFormatter(t, "a", "b")
	query, err := formatter.FormatQuery(shot.Record{})
	if err != nil {
		t.Fatalf("FormatQuery: %v", err)
	}
	if query != shot.Header("a") {
		t.Fatalf("FormatQuery = %q, want bare first header", query)
	}
}

func TestParseResultRoundTrip(t *testing.T) {
	formatter := newFormatter(t, "name", "species")
	record := shot.Record{"name": "Bob", "species": "Person"}

	block, err := formatter.FormatExample(record)
	if err != nil {
		t.Fatalf("FormatExample: %v", err)
	}
	parsed, err := formatter.ParseResult(block)
	if err != nil {
		t.Fatalf("ParseResult: %v", err)
	}
	if diff := cmp.Diff(record, parsed); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestParseResultIgnoresMidLineHeaders(t *testing.T) {
	formatter := newFormatter(t, "name", "description")
	text := "Name:\nfoo Description: bar\n\nDescription:\nreal"

	parsed, err := formatter.ParseResult(text)
	if err != nil {
		t.Fatalf("ParseResult: %v", err)
	}
	want := shot.Record{"name": "foo Description: bar", "description": "real"}
	if diff := cmp.Diff(want, parsed); diff != "" {
		t.Fatalf("mid-line header mismatch (-want +got):\n%s", diff)
	}
}

func TestParseResultContinuationInference(t *testing.T) {
	formatter := newFormatter(t, "a", "b", "c")

	// A generator completing a query that ended in b's header starts with
	// b's content and never repeats the header.
	text := "b content line\nC:\nc content"
	parsed, err := formatter.ParseResult(text)
	if err != nil {
		t.Fatalf("ParseResult: %v", err)
	}
	want := shot.Record{"a": nil, "b": "b content line", "c": "c content"}
	if diff := cmp.Diff(want, parsed); diff != "" {
		t.Fatalf("continuation mismatch (-want +got):\n%s", diff)
	}
}

func TestParseResultAbsentFieldIsNil(t *testing.T) {
	formatter := newFormatter(t, "name", "species", "notes")
	parsed, err := formatter.ParseResult("Name:\nBob")
	if err != nil {
		t.Fatalf("ParseResult: %v", err)
	}
	want := shot.Record{"name": "Bob", "species": nil, "notes": nil}
	if diff := cmp.Diff(want, parsed); diff != "" {
		t.Fatalf("absence mismatch (-want +got):\n%s", diff)
	}
}

func TestParseResultEmptySectionIsNil(t *testing.T) {
	formatter := newFormatter(t, "name", "species")
	parsed, err := formatter.ParseResult("Name:\n\n\nSpecies:\nDog")
	if err != nil {
		t.Fatalf("ParseResult: %v", err)
	}
	want := shot.Record{"name": nil, "species": "Dog"}
	if diff := cmp.Diff(want, parsed); diff != "" {
		t.Fatalf("empty section mismatch (-want +got):\n%s", diff)
	}
}

func TestParseResultToleratesReorderedSections(t *testing.T) {
	formatter := newFormatter(t, "name", "species")
	parsed, err := formatter.ParseResult("Species:\nDog\n\nName:\nRover")
	if err != nil {
		t.Fatalf("ParseResult: %v", err)
	}
	want := shot.Record{"name": "Rover", "species": "Dog"}
	if diff := cmp.Diff(want, parsed); diff != "" {
		t.Fatalf("reordered sections mismatch (-want +got):\n%s", diff)
	}
}

func TestParseResultConverterFailure(t *testing.T) {
	formatter, err := shot.NewFormatter(
		shot.Pair{Field: "name", Converter: convert.String{}},
		shot.Pair{Field: "payload", Converter: convert.JSON{}},
	)
	if err != nil {
		t.Fatalf("NewFormatter: %v", err)
	}

	_, err = formatter.ParseResult("Name:\nBob\n\nPayload:\nnot json at all")
	if !errors.Is(err, shot.ErrFieldParse) {
		t.Fatalf("ParseResult error = %v, want ErrFieldParse", err)
	}
	if !strings.Contains(err.Error(), "payload") {
		t.Fatalf("ParseResult error %q does not name the field", err)
	}
}

func TestNewFormatterRejectsDuplicates(t *testing.T) {
	_, err := shot.NewFormatter(
		shot.Pair{Field: "name"},
		shot.Pair{Field: "name"},
	)
	if err == nil {
		t.Fatalf("NewFormatter accepted duplicate fields")
	}
}
