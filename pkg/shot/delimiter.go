package shot

import (
	"fmt"
	"strings"
)

// Delimiter produces a separator for a sequence of opaque text blocks and
// splits a joined corpus back into them.
type Delimiter interface {
	Format() string
	Split(text string) []string
}

// DefaultMinRun is the separator run length used when a RunDelimiter is
// constructed with a non-positive minimum.
const DefaultMinRun = 3

// RunDelimiter separates blocks with a run of a single character framed by
// newlines. Format emits exactly MinRun repetitions; Split partitions on any
// run of length >= MinRun. The asymmetry is deliberate: shorter accidental
// runs inside content never cause spurious splits, while environments that
// pad or duplicate the emitted separator still split correctly.
type RunDelimiter struct {
	// Char is the single ASCII separator character.
	Char byte
	// MinRun is the emitted run length and the minimum run matched on split.
	MinRun int
}

var _ Delimiter = RunDelimiter{}

// NewRunDelimiter validates the separator character and applies the default
// run length when minRun is not positive.
func NewRunDelimiter(char byte, minRun int) (RunDelimiter, error) {
	if char == 0 || char >= 0x80 {
		return RunDelimiter{}, fmt.Errorf("shot: delimiter char must be ASCII, got %#x", char)
	}
	if minRun <= 0 {
		minRun = DefaultMinRun
	}
	return RunDelimiter{Char: char, MinRun: minRun}, nil
}

// Format returns the separator: MinRun repetitions of Char on their own line.
func (d RunDelimiter) Format() string {
	return "\n" + strings.Repeat(string(rune(d.Char)), d.minRun()) + "\n"
}

// Split partitions text on every run of Char of length >= MinRun. The runs
// themselves are dropped; surrounding newlines stay with the segments.
func (d RunDelimiter) Split(text string) []string {
	minRun := d.minRun()
	var parts []string
	start := 0
	for i := 0; i < len(text); {
		if text[i] != d.Char {
			i++
			continue
		}
		j := i
		for j < len(text) && text[j] == d.Char {
			j++
		}
		if j-i >= minRun {
			parts = append(parts, text[start:i])
			start = j
		}
		i = j
	}
	return append(parts, text[start:])
}

func (d RunDelimiter) minRun() int {
	if d.MinRun <= 0 {
		return DefaultMinRun
	}
	return d.MinRun
}
