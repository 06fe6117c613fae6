// Package schedule implements the canonical store for time-bounded
// schedule entities.
//
// A schedule occupies a half-open time range [Start, End) on a numeric
// level, may claim exclusivity for that range, and may be linked to
// parent schedules on coarser (numerically lower) levels. The Manager
// validates every mutation against the temporal, hierarchical and
// exclusivity invariants before applying it, so the stored set is
// consistent after every successful call.
//
// # Invariants
//
//   - Start < End (zero-length schedules are rejected)
//   - every parent has a strictly lower level and contains the child's range
//   - exclusivity conflicts are rejected at creation time
//   - parent/child links are symmetric and non-owning: deleting a schedule
//     detaches its links but never cascades
//
// # Usage
//
//	m := schedule.NewManager()
//	id, err := m.Create(schedule.Payload{
//	    Name:  "Linear Algebra",
//	    Start: term.Start, End: term.End,
//	    Level: 1,
//	})
package schedule

import (
	"time"
)

// Level is the hierarchy tier of a schedule. Lower values denote
// coarser/outer scope (a term is level 0, a course level 1, a session
// level 2, and so on).
type Level = int

// Schedule is a single time-bounded entity as stored by the Manager.
//
// Values returned by Manager methods are detached copies; mutating them
// has no effect on the stored set. Parents and Children hold ids, sorted
// lexicographically, and are kept mutually consistent by the Manager.
type Schedule struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Level     Level     `json:"level"`
	Exclusive bool      `json:"exclusive"`
	Parents   []string  `json:"parents,omitempty"`
	Children  []string  `json:"children,omitempty"`
}

// Duration returns the length of the schedule's time range.
func (s Schedule) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// Overlaps reports whether the schedule's range intersects [start, end)
// under half-open semantics: ranges that merely touch do not overlap.
func (s Schedule) Overlaps(start, end time.Time) bool {
	return s.Start.Before(end) && start.Before(s.End)
}

// Contains reports whether [start, end] lies within the schedule's range
// (closed containment, matching the parent containment rule).
func (s Schedule) Contains(start, end time.Time) bool {
	return !s.Start.After(start) && !s.End.Before(end)
}

// Payload describes a schedule to be created. The id is assigned by the
// Manager; Parents are validated in the order supplied.
type Payload struct {
	Name      string    `json:"name"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Level     Level     `json:"level"`
	Exclusive bool      `json:"exclusive"`
	Parents   []string  `json:"parents,omitempty"`
}
