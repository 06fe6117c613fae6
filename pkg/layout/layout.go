// Package layout computes renderable layouts for sets of schedule items.
//
// The engine is a pure function of its input: it never mutates the
// schedule store, and identical input produces identical output
// regardless of input order. Items are grouped by level and each level
// is laid out independently with the strategy selected by Config.Mode:
//
//   - cluster: sweep-line column assignment with overlap clusters and an
//     aggregation flag for oversized clusters
//   - segment: time-sliced concurrency segments for width that varies
//     over an item's own duration
//   - lanecap: fixed lane capacity with a deterministic overflow listing
//
// Malformed items (end not after start) are skipped rather than
// rejected; the schedule manager has already refused to store them, so
// the engine has no error conditions beyond an invalid configuration.
//
// # Usage
//
//	items := layout.FromSchedules(mgr.All())
//	l, err := layout.Compute(items, layout.Config{Mode: layout.ModeClusterAggregate})
//	if err != nil {
//	    return err
//	}
//	for level, lv := range l.Levels {
//	    render(level, lv.Clusters, lv.Assignments)
//	}
package layout

import (
	"sort"
	"time"
)

// Item is the layout engine's read-only view of a schedule. Width-related
// fields the store does not carry (Priority) are attached here by the
// caller.
type Item struct {
	ID    string    `json:"id"`
	Name  string    `json:"name,omitempty"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Level int       `json:"level"`

	// Priority influences placement order in ModeFixedLaneCap; higher
	// values are placed first. Zero for items the caller does not rank.
	Priority int `json:"priority,omitempty"`
}

// Duration returns the length of the item's time range.
func (it Item) Duration() time.Duration { return it.End.Sub(it.Start) }

// Assignment is an item's placement in cluster mode.
type Assignment struct {
	// Column is the item's lane within its cluster, starting at 0.
	Column int `json:"column"`
	// Cluster is the index into the level's Clusters slice.
	Cluster int `json:"cluster"`
}

// Cluster is a maximal run of transitively overlapping items at one
// level, treated as a unit by the renderer.
type Cluster struct {
	// Members holds the ids of the cluster's items in sweep order.
	Members []string `json:"members"`
	// Start is the earliest member start, End the latest member end.
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	// Columns is the number of columns the cluster needs, which is the
	// peak concurrency among its members.
	Columns int `json:"columns"`
	// Aggregate marks clusters whose member count exceeds the configured
	// threshold; the renderer may collapse them to a summary marker.
	Aggregate bool `json:"aggregate,omitempty"`
}

// Segment is a sub-interval of one item's duration during which its
// column and the level's concurrency are constant (segment mode).
type Segment struct {
	ItemID string    `json:"item_id"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	// Column is the item's lane during this segment.
	Column int `json:"column"`
	// Concurrency is the number of items active during this segment,
	// including this one. It determines the rendered width share.
	Concurrency int `json:"concurrency"`
}

// Lane is one of a level's fixed lanes in lane-cap mode.
type Lane struct {
	// Index is the lane number, starting at 0.
	Index int `json:"index"`
	// Members holds the ids of items placed in this lane, in
	// chronological order. Each member starts at or after the previous
	// member's end.
	Members []string `json:"members"`
}

// Level is the layout of a single schedule level. Which fields are
// populated depends on the mode (discriminated by Layout.Mode):
//
//	cluster: Assignments, Clusters
//	segment: Segments
//	lanecap: Lanes, Overflow
type Level struct {
	Level int `json:"level"`

	// Cluster mode
	Assignments map[string]Assignment `json:"assignments,omitempty"`
	Clusters    []Cluster             `json:"clusters,omitempty"`

	// Segment mode
	Segments []Segment `json:"segments,omitempty"`

	// Lane-cap mode
	Lanes []Lane `json:"lanes,omitempty"`
	// Overflow lists ids of items that did not fit under the lane cap,
	// sorted by duration descending then start ascending.
	Overflow []string `json:"overflow,omitempty"`
}

// OverflowCount returns the number of items relegated to the overflow
// listing.
func (l *Level) OverflowCount() int { return len(l.Overflow) }

// Layout is the result of a layout computation.
type Layout struct {
	Mode Mode `json:"mode"`
	// Levels maps each populated schedule level to its layout.
	Levels map[int]*Level `json:"levels"`
	// MaxLevel is the highest level present in the input, or -1 for an
	// empty layout.
	MaxLevel int `json:"max_level"`
}

// Compute lays out items with the strategy selected by cfg. The input
// slice is not modified. Items with a non-positive duration are skipped.
func Compute(items []Item, cfg Config) (*Layout, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	l := &Layout{
		Mode:     cfg.Mode,
		Levels:   make(map[int]*Level),
		MaxLevel: -1,
	}

	for level, group := range groupByLevel(items) {
		lv := &Level{Level: level}
		switch cfg.Mode {
		case ModeClusterAggregate:
			lv.Assignments, lv.Clusters = clusterLevel(group, cfg.AggregateThreshold)
		case ModeContinuousSegment:
			lv.Segments = segmentLevel(group)
		case ModeFixedLaneCap:
			lv.Lanes, lv.Overflow = laneCapLevel(group, cfg.MaxLanesPerLevel, cfg.Priorities)
		}
		l.Levels[level] = lv
		if level > l.MaxLevel {
			l.MaxLevel = level
		}
	}

	return l, nil
}

// groupByLevel splits items by level, dropping malformed entries.
func groupByLevel(items []Item) map[int][]Item {
	groups := make(map[int][]Item)
	for _, it := range items {
		if !it.Start.Before(it.End) {
			continue
		}
		groups[it.Level] = append(groups[it.Level], it)
	}
	return groups
}

// sortBySweepOrder orders items by start ascending with id as the
// deterministic tiebreak. Every strategy derives its processing order
// from this so layouts are stable under input permutation.
func sortBySweepOrder(items []Item) []Item {
	sorted := make([]Item, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Start.Equal(sorted[j].Start) {
			return sorted[i].Start.Before(sorted[j].Start)
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}
