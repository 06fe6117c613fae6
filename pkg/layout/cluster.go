package layout

// occupant is an active item holding a column during the sweep.
type occupant struct {
	column int
	item   Item
}

// clusterLevel assigns items of one level to columns inside overlap
// clusters. Items are swept in start order; an item whose start is at or
// past every active item's end opens a new cluster. Within a cluster
// each item takes the lowest column not held by an active item, so the
// cluster's column count equals its peak concurrency.
func clusterLevel(items []Item, aggregateThreshold int) (map[string]Assignment, []Cluster) {
	assignments := make(map[string]Assignment, len(items))
	var clusters []Cluster

	sorted := sortBySweepOrder(items)

	var active []occupant
	var cur *Cluster
	closeCurrent := func() {
		if cur == nil {
			return
		}
		if aggregateThreshold > 0 && len(cur.Members) > aggregateThreshold {
			cur.Aggregate = true
		}
		clusters = append(clusters, *cur)
		cur = nil
	}

	for _, it := range sorted {
		// Evict items whose range ended at or before this start. Ranges
		// are half-open, so a shared boundary frees the column.
		kept := active[:0]
		for _, o := range active {
			if o.item.End.After(it.Start) {
				kept = append(kept, o)
			}
		}
		active = kept

		if len(active) == 0 {
			closeCurrent()
			cur = &Cluster{Start: it.Start, End: it.End}
		}

		col := lowestFreeColumn(active)
		active = append(active, occupant{column: col, item: it})

		cur.Members = append(cur.Members, it.ID)
		if it.End.After(cur.End) {
			cur.End = it.End
		}
		if col+1 > cur.Columns {
			cur.Columns = col + 1
		}
		assignments[it.ID] = Assignment{Column: col, Cluster: len(clusters)}
	}
	closeCurrent()

	return assignments, clusters
}

// lowestFreeColumn returns the smallest column index no active occupant
// holds.
func lowestFreeColumn(active []occupant) int {
	taken := make(map[int]bool, len(active))
	for _, o := range active {
		taken[o.column] = true
	}
	for col := 0; ; col++ {
		if !taken[col] {
			return col
		}
	}
}
