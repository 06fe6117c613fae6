package schedule

import (
	"sort"
	"time"
)

// interval is an entry in the per-level interval index.
type interval struct {
	start time.Time
	end   time.Time
	id    string
}

// intervalIndex holds the intervals of one level sorted by (start, id).
// The original store used an augmented interval tree here; a sorted slice
// with a binary-search cut keeps the same query contract at the scale this
// store serves (thousands of entries per level) without the rebalancing
// machinery.
type intervalIndex struct {
	entries []interval
}

// insert adds an interval, keeping the slice sorted by (start, id).
func (ix *intervalIndex) insert(iv interval) {
	i := sort.Search(len(ix.entries), func(i int) bool {
		e := ix.entries[i]
		if !e.start.Equal(iv.start) {
			return e.start.After(iv.start)
		}
		return e.id >= iv.id
	})
	ix.entries = append(ix.entries, interval{})
	copy(ix.entries[i+1:], ix.entries[i:])
	ix.entries[i] = iv
}

// remove deletes the interval with the given id. Returns false if the id
// is not present.
func (ix *intervalIndex) remove(id string) bool {
	for i, e := range ix.entries {
		if e.id == id {
			ix.entries = append(ix.entries[:i], ix.entries[i+1:]...)
			return true
		}
	}
	return false
}

// overlapping appends to dst the ids of all intervals intersecting
// [start, end) under half-open semantics, in (start, id) order.
func (ix *intervalIndex) overlapping(dst []string, start, end time.Time) []string {
	// Entries are sorted by start, so everything from the first entry with
	// start >= end onwards cannot overlap.
	cut := sort.Search(len(ix.entries), func(i int) bool {
		return !ix.entries[i].start.Before(end)
	})
	for _, e := range ix.entries[:cut] {
		if e.end.After(start) {
			dst = append(dst, e.id)
		}
	}
	return dst
}

// empty reports whether the index holds no intervals.
func (ix *intervalIndex) empty() bool {
	return len(ix.entries) == 0
}
