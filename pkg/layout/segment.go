package layout

import (
	"sort"
	"time"
)

// segmentLevel slices the items of one level into segments of constant
// column and concurrency. The sweep walks the level's distinct time
// boundaries; at each boundary ending items release their columns before
// starting items claim one, so a range that begins exactly where another
// ends reuses its column. Every elementary interval between consecutive
// boundaries emits one segment per active item, and adjacent segments
// with identical column and concurrency are merged afterwards.
func segmentLevel(items []Item) []Segment {
	sorted := sortBySweepOrder(items)
	if len(sorted) == 0 {
		return nil
	}

	boundaries := collectBoundaries(sorted)

	var segments []Segment
	var active []occupant
	next := 0 // next item to start, in sweep order

	for i := 0; i < len(boundaries)-1; i++ {
		t := boundaries[i]

		// Ends first.
		kept := active[:0]
		for _, o := range active {
			if o.item.End.After(t) {
				kept = append(kept, o)
			}
		}
		active = kept

		// Then starts. Sweep order already breaks start ties by id.
		for next < len(sorted) && sorted[next].Start.Equal(t) {
			col := lowestFreeColumn(active)
			active = append(active, occupant{column: col, item: sorted[next]})
			next++
		}

		if len(active) == 0 {
			continue
		}
		for _, o := range active {
			segments = append(segments, Segment{
				ItemID:      o.item.ID,
				Start:       t,
				End:         boundaries[i+1],
				Column:      o.column,
				Concurrency: len(active),
			})
		}
	}

	return MergeSegments(segments)
}

// ComputeSegments slices a single group of items into segments of
// constant column and concurrency. [Compute] applies it per level in
// [ModeContinuousSegment]; it is exported for callers that need segment
// geometry for one set of items without a full layout.
func ComputeSegments(items []Item) []Segment {
	return segmentLevel(items)
}

// collectBoundaries returns the level's distinct start and end
// timestamps in ascending order.
func collectBoundaries(items []Item) []time.Time {
	set := make(map[int64]time.Time, len(items)*2)
	for _, it := range items {
		set[it.Start.UnixNano()] = it.Start
		set[it.End.UnixNano()] = it.End
	}
	boundaries := make([]time.Time, 0, len(set))
	for _, t := range set {
		boundaries = append(boundaries, t)
	}
	sort.Slice(boundaries, func(i, j int) bool { return boundaries[i].Before(boundaries[j]) })
	return boundaries
}

// MergeSegments coalesces adjacent segments of the same item that share
// a column and concurrency. The input is not modified; merging an
// already merged slice returns an equivalent slice.
func MergeSegments(segments []Segment) []Segment {
	if len(segments) == 0 {
		return nil
	}

	// Group per item in time order so adjacency is well defined.
	sorted := make([]Segment, len(segments))
	copy(sorted, segments)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].ItemID != sorted[j].ItemID {
			return sorted[i].ItemID < sorted[j].ItemID
		}
		return sorted[i].Start.Before(sorted[j].Start)
	})

	merged := make([]Segment, 0, len(sorted))
	merged = append(merged, sorted[0])
	for _, s := range sorted[1:] {
		last := &merged[len(merged)-1]
		if s.ItemID == last.ItemID &&
			s.Column == last.Column &&
			s.Concurrency == last.Concurrency &&
			s.Start.Equal(last.End) {
			last.End = s.End
			continue
		}
		merged = append(merged, s)
	}

	// Renderer-friendly global order: time, then item.
	sort.SliceStable(merged, func(i, j int) bool {
		if !merged[i].Start.Equal(merged[j].Start) {
			return merged[i].Start.Before(merged[j].Start)
		}
		return merged[i].ItemID < merged[j].ItemID
	})
	return merged
}
