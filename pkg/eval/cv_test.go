package eval_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-fewshot/pkg/eval"
	"github.com/goliatone/go-fewshot/pkg/shot"
)

func testItems() []shot.Record {
	return []shot.Record{
		{"q": "q1", "a": "a1"},
		{"q": "q2", "a": "a2"},
		{"q": "q3", "a": "a3"},
		{"q": "q4", "a": "a4"},
	}
}

func collect(t *testing.T, cv *eval.CV) ([]shot.Record, [][]shot.Record) {
	t.Helper()
	var queries []shot.Record
	var shotSets [][]shot.Record
	for {
		query, shots, ok := cv.Next()
		if !ok {
			break
		}
		queries = append(queries, query)
		shotSets = append(shotSets, shots)
	}
	return queries, shotSets
}

func TestCVProjectsQueryFields(t *testing.T) {
	cv, err := eval.NewCV(testItems(), []string{"q"}, 2, 42)
	if err != nil {
		t.Fatalf("NewCV: %v", err)
	}

	queries, shotSets := collect(t, cv)
	if len(queries) != 4 {
		t.Fatalf("got %d steps, want 4", len(queries))
	}
	wantQueries := []shot.Record{{"q": "q1"}, {"q": "q2"}, {"q": "q3"}, {"q": "q4"}}
	if diff := cmp.Diff(wantQueries, queries); diff != "" {
		t.Fatalf("query projection mismatch (-want +got):\n%s", diff)
	}
	for i, shots := range shotSets {
		if len(shots) != 2 {
			t.Fatalf("step %d sampled %d shots, want 2", i, len(shots))
		}
		for _, sampled := range shots {
			if sampled["q"] == queries[i]["q"] {
				t.Fatalf("step %d sampled its own query item", i)
			}
		}
	}
}

func TestCVShotCountClamped(t *testing.T) {
	cv, err := eval.NewCV(testItems(), []string{"q"}, 10, 7)
	if err != nil {
		t.Fatalf("NewCV: %v", err)
	}
	_, shots, ok := cv.Next()
	if !ok {
		t.Fatalf("Next returned no step")
	}
	if len(shots) != 3 {
		t.Fatalf("sampled %d shots, want all 3 other items", len(shots))
	}
}

func TestCVSeedIsDeterministic(t *testing.T) {
	first, err := eval.NewCV(testItems(), []string{"q"}, 2, 42)
	if err != nil {
		t.Fatalf("NewCV: %v", err)
	}
	second, err := eval.NewCV(testItems(), []string{"q"}, 2, 42)
	if err != nil {
		t.Fatalf("NewCV: %v", err)
	}

	_, firstShots := collect(t, first)
	_, secondShots := collect(t, second)
	if diff := cmp.Diff(firstShots, secondShots); diff != "" {
		t.Fatalf("same seed diverged (-want +got):\n%s", diff)
	}

	first.Reset()
	_, replayed := collect(t, first)
	if diff := cmp.Diff(firstShots, replayed); diff != "" {
		t.Fatalf("Reset did not replay (-want +got):\n%s", diff)
	}
}
