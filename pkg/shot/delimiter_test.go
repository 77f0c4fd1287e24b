package shot_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-fewshot/pkg/shot"
)

func TestRunDelimiterFormat(t *testing.T) {
	delimiter, err := shot.NewRunDelimiter('-', 3)
	if err != nil {
		t.Fatalf("NewRunDelimiter: %v", err)
	}
	if got := delimiter.Format(); got != "\n---\n" {
		t.Fatalf("Format = %q", got)
	}
}

func TestRunDelimiterSplit(t *testing.T) {
	delimiter, err := shot.NewRunDelimiter('-', 3)
	if err != nil {
		t.Fatalf("NewRunDelimiter: %v", err)
	}

	cases := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "exact run",
			text: "a\n---\nb",
			want: []string{"a\n", "\nb"},
		},
		{
			name: "longer run still splits",
			text: "a\n------\nb",
			want: []string{"a\n", "\nb"},
		},
		{
			name: "short run inside content does not split",
			text: "a--b",
			want: []string{"a--b"},
		},
		{
			name: "mixed runs",
			text: "a--b---c",
			want: []string{"a--b", "c"},
		},
		{
			name: "no runs",
			text: "plain text",
			want: []string{"plain text"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, delimiter.Split(tc.text)); diff != "" {
				t.Fatalf("Split(%q) mismatch (-want +got):\n%s", tc.text, diff)
			}
		})
	}
}

func TestNewRunDelimiterDefaults(t *testing.T) {
	delimiter, err := shot.NewRunDelimiter('=', 0)
	if err != nil {
		t.Fatalf("NewRunDelimiter: %v", err)
	}
	if got := delimiter.Format(); got != "\n===\n" {
		t.Fatalf("Format with default run length = %q", got)
	}
}

func TestNewRunDelimiterRejectsNonASCII(t *testing.T) {
	if _, err := shot.NewRunDelimiter(0x80, 3); err == nil {
		t.Fatalf("NewRunDelimiter accepted non-ASCII separator")
	}
}
