package schedule

import (
	"sort"
	"strings"
	"time"
)

// QueryOptions filters the stored schedule set. Nil fields are ignored.
//
// The time window filter uses interval-overlap semantics: a schedule
// matches when its half-open range intersects [Start, Stop). Open-ended
// bounds behave accordingly: only Start keeps schedules ending after it,
// only Stop keeps schedules starting before it.
type QueryOptions struct {
	// Name matches schedules whose name contains this substring,
	// case-insensitively.
	Name *string
	// Start and Stop bound the time window.
	Start *time.Time
	Stop  *time.Time
	// Level matches schedules at exactly this level.
	Level *Level
	// Exclusive matches schedules with exactly this exclusivity flag.
	Exclusive *bool
}

// Query returns copies of all schedules matching opts, ordered by start
// ascending, then level ascending, then name, then id.
func (m *Manager) Query(opts QueryOptions) []Schedule {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []Schedule

	// Narrow by the level index when possible instead of scanning the
	// whole set.
	if opts.Level != nil {
		set, ok := m.levelIDs[*opts.Level]
		if !ok {
			return nil
		}
		for id := range set {
			if rec := m.schedules[id]; matches(rec, opts) {
				out = append(out, m.exportLocked(rec))
			}
		}
	} else {
		for _, rec := range m.schedules {
			if matches(rec, opts) {
				out = append(out, m.exportLocked(rec))
			}
		}
	}

	sortCanonical(out)
	return out
}

func matches(rec *record, opts QueryOptions) bool {
	if opts.Level != nil && rec.level != *opts.Level {
		return false
	}
	if opts.Exclusive != nil && rec.exclusive != *opts.Exclusive {
		return false
	}
	if opts.Name != nil &&
		!strings.Contains(strings.ToLower(rec.name), strings.ToLower(*opts.Name)) {
		return false
	}

	switch {
	case opts.Start != nil && opts.Stop != nil:
		if !(rec.start.Before(*opts.Stop) && rec.end.After(*opts.Start)) {
			return false
		}
	case opts.Start != nil:
		if !rec.end.After(*opts.Start) {
			return false
		}
	case opts.Stop != nil:
		if !rec.start.Before(*opts.Stop) {
			return false
		}
	}

	return true
}

// sortCanonical orders schedules by start ascending, ties broken by level
// ascending, then name lexicographic, then id. Every listing surface uses
// this order so results are stable across calls.
func sortCanonical(s []Schedule) {
	sort.SliceStable(s, func(i, j int) bool {
		a, b := s[i], s[j]
		if !a.Start.Equal(b.Start) {
			return a.Start.Before(b.Start)
		}
		if a.Level != b.Level {
			return a.Level < b.Level
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
}
