package shot_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-fewshot/pkg/shot"
)

func TestStreamRoundTrip(t *testing.T) {
	formatter := newFormatter(t, "name", "species")
	delimiter, err := shot.NewRunDelimiter('-', 3)
	if err != nil {
		t.Fatalf("NewRunDelimiter: %v", err)
	}
	stream, err := shot.NewStream(formatter, delimiter)
	if err != nil {
		t.Fatalf("NewStream: %v", err)
	}

	records := []shot.Record{
		{"name": "Bob", "species": "Person"},
		{"name": "Rover", "species": "Dog"},
	}
	corpus, err := stream.Encode(records)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	decoded, err := stream.Decode(corpus)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if diff := cmp.Diff(records, decoded); diff != "" {
		t.Fatalf("stream round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestStreamDecodeSkipsEmptySegments(t *testing.T) {
	formatter := newFormatter(t, "name")
	delimiter, err := shot.NewRunDelimiter('-', 3)
	if err != nil {
		t.Fatalf("NewRunDelimiter: %v", err)
	}
	stream, err := shot.NewStream(formatter, delimiter)
	if err != nil {
		t.Fatalf("NewStream: %v", err)
	}

	decoded, err := stream.Decode("---\nName:\nBob\n---\n")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := []shot.Record{{"name": "Bob"}}
	if diff := cmp.Diff(want, decoded); diff != "" {
		t.Fatalf("decode mismatch (-want +got):\n%s", diff)
	}
}
