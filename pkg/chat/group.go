package chat

import (
	"sort"

	"github.com/samber/lo"
)

// Grouped maps each DateKey to the messages sent on that date.
// Keys keep the order in which they were first seen; messages inside a
// bucket keep their input order.
type Grouped struct {
	keys    []DateKey
	buckets map[DateKey][]Message
}

// NewGrouped returns an empty Grouped.
func NewGrouped() *Grouped {
	return &Grouped{buckets: make(map[DateKey][]Message)}
}

// GroupByDate buckets messages by calendar date in a single pass.
// No re-sorting by time of day is performed.
func GroupByDate(messages []Message) *Grouped {
	g := NewGrouped()
	for _, m := range messages {
		g.Add(m)
	}
	return g
}

// Add appends m to the bucket for its date, creating the bucket on first use.
func (g *Grouped) Add(m Message) {
	key := m.Key()
	if _, ok := g.buckets[key]; !ok {
		g.keys = append(g.keys, key)
	}
	g.buckets[key] = append(g.buckets[key], m)
}

// Keys returns the date keys in insertion order.
func (g *Grouped) Keys() []DateKey {
	return append([]DateKey(nil), g.keys...)
}

// SortedKeys returns the date keys in ascending (chronological) order.
func (g *Grouped) SortedKeys() []DateKey {
	keys := g.Keys()
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Messages returns a copy of the messages for key, or nil if the key is absent.
func (g *Grouped) Messages(key DateKey) []Message {
	bucket, ok := g.buckets[key]
	if !ok {
		return nil
	}
	return append([]Message(nil), bucket...)
}

// Has reports whether any message falls on key.
func (g *Grouped) Has(key DateKey) bool {
	_, ok := g.buckets[key]
	return ok
}

// Len returns the number of distinct dates.
func (g *Grouped) Len() int {
	return len(g.keys)
}

// Total returns the number of messages across all dates.
func (g *Grouped) Total() int {
	return lo.SumBy(g.keys, func(k DateKey) int { return len(g.buckets[k]) })
}

// Counts returns the number of messages per date.
func (g *Grouped) Counts() map[DateKey]int {
	return lo.MapValues(g.buckets, func(bucket []Message, _ DateKey) int { return len(bucket) })
}
