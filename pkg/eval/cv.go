// Package eval holds the few-shot cross-validation iterator: each item in a
// held-out set takes a turn as the query while a seeded random sample of the
// remaining items supplies the shots.
package eval

import (
	"fmt"
	"math/rand"

	"github.com/goliatone/go-fewshot/pkg/shot"
)

// CV iterates a held-out example set for cross-validation. Each step yields
// one item projected onto the query fields plus up to n shots sampled from
// the other items. Sampling is seeded, so a given seed replays the same
// shot selections.
//
// Unlike the codec types, CV carries position and RNG state between calls
// and is not safe for concurrent use.
type CV struct {
	items       []shot.Record
	queryFields []string
	n           int
	seed        int64

	index int
	rng   *rand.Rand
}

// NewCV constructs an iterator over items. queryFields names the fields
// projected into each query; n is the number of shots per step.
func NewCV(items []shot.Record, queryFields []string, n int, seed int64) (*CV, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("eval: cv needs at least one item")
	}
	if len(queryFields) == 0 {
		return nil, fmt.Errorf("eval: cv needs at least one query field")
	}
	if n < 0 {
		return nil, fmt.Errorf("eval: shot count must not be negative, got %d", n)
	}
	cv := &CV{
		items:       append([]shot.Record(nil), items...),
		queryFields: append([]string(nil), queryFields...),
		n:           n,
		seed:        seed,
	}
	cv.Reset()
	return cv, nil
}

// Reset rewinds the iterator and re-seeds the RNG, replaying the exact same
// sequence.
func (c *CV) Reset() {
	c.index = 0
	c.rng = rand.New(rand.NewSource(c.seed))
}

// Next yields the next query and its sampled shots. ok is false once every
// item has taken its turn as the query.
func (c *CV) Next() (query shot.Record, shots []shot.Record, ok bool) {
	if c.index >= len(c.items) {
		return nil, nil, false
	}

	item := c.items[c.index]
	query = make(shot.Record, len(c.queryFields))
	for _, field := range c.queryFields {
		query[field] = item[field]
	}

	others := make([]shot.Record, 0, len(c.items)-1)
	others = append(others, c.items[:c.index]...)
	others = append(others, c.items[c.index+1:]...)

	count := c.n
	if count > len(others) {
		count = len(others)
	}
	shots = make([]shot.Record, count)
	for i, pick := range c.rng.Perm(len(others))[:count] {
		shots[i] = others[pick]
	}

	c.index++
	return query, shots, true
}
