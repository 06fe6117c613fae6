package layout

import (
	"sort"
	"time"
)

// laneCapLevel packs items of one level into at most maxLanes lanes.
// Placement order is priority descending, then duration descending, then
// start ascending, then id, so important and long-running items claim
// lanes first. Each item goes into the first lane whose current end time
// is at or before the item's start; items fitting no lane go to the
// overflow listing.
func laneCapLevel(items []Item, maxLanes int, priorities map[string]int) ([]Lane, []string) {
	ranked := make([]Item, len(items))
	copy(ranked, items)
	for i := range ranked {
		ranked[i].Priority = priorities[ranked[i].ID]
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		if a.Duration() != b.Duration() {
			return a.Duration() > b.Duration()
		}
		if !a.Start.Equal(b.Start) {
			return a.Start.Before(b.Start)
		}
		return a.ID < b.ID
	})

	lanes := make([]Lane, 0, maxLanes)
	laneEnds := make([]time.Time, 0, maxLanes)
	var overflowItems []Item

	for _, it := range ranked {
		placed := false
		for li := range lanes {
			// A lane admits an item only past its current end, so
			// members are chronological by construction. An item that
			// would slot into a gap before the lane's members still
			// overflows; lanes only ever grow forward in time.
			if !laneEnds[li].After(it.Start) {
				lanes[li].Members = append(lanes[li].Members, it.ID)
				laneEnds[li] = it.End
				placed = true
				break
			}
		}
		if !placed && len(lanes) < maxLanes {
			lanes = append(lanes, Lane{Index: len(lanes), Members: []string{it.ID}})
			laneEnds = append(laneEnds, it.End)
			placed = true
		}
		if !placed {
			overflowItems = append(overflowItems, it)
		}
	}

	sort.SliceStable(overflowItems, func(i, j int) bool {
		a, b := overflowItems[i], overflowItems[j]
		if a.Duration() != b.Duration() {
			return a.Duration() > b.Duration()
		}
		if !a.Start.Equal(b.Start) {
			return a.Start.Before(b.Start)
		}
		return a.ID < b.ID
	})
	overflow := make([]string, len(overflowItems))
	for i, it := range overflowItems {
		overflow[i] = it.ID
	}

	return lanes, overflow
}
