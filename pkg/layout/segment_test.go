package layout

import (
	"reflect"
	"testing"
)

func TestSegmentConcurrencySlices(t *testing.T) {
	// a spans [0,4) alone, then shares [1,3) with b, then runs alone
	// again. Its column stays 0 throughout; only concurrency changes.
	items := []Item{
		item("a", 0, 4, 0),
		item("b", 1, 3, 0),
	}

	got := ComputeSegments(items)

	want := []Segment{
		{ItemID: "a", Start: ts(0), End: ts(1), Column: 0, Concurrency: 1},
		{ItemID: "a", Start: ts(1), End: ts(3), Column: 0, Concurrency: 2},
		{ItemID: "b", Start: ts(1), End: ts(3), Column: 1, Concurrency: 2},
		{ItemID: "a", Start: ts(3), End: ts(4), Column: 0, Concurrency: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("segments = %v, want %v", got, want)
	}
}

func TestSegmentCoverage(t *testing.T) {
	// Each item's segments must tile its full range with no gaps and
	// no extension past either end.
	items := []Item{
		item("a", 0, 6, 0),
		item("b", 1, 3, 0),
		item("c", 2, 8, 0),
		item("d", 7, 9, 0),
	}

	segments := ComputeSegments(items)

	perItem := make(map[string][]Segment)
	for _, s := range segments {
		perItem[s.ItemID] = append(perItem[s.ItemID], s)
	}
	for _, it := range items {
		segs := perItem[it.ID]
		if len(segs) == 0 {
			t.Fatalf("%s: no segments", it.ID)
		}
		cursor := it.Start
		for _, s := range segs {
			if !s.Start.Equal(cursor) {
				t.Errorf("%s: segment starts at %v, cursor at %v", it.ID, s.Start, cursor)
			}
			if !s.End.After(s.Start) {
				t.Errorf("%s: empty segment [%v, %v)", it.ID, s.Start, s.End)
			}
			cursor = s.End
		}
		if !cursor.Equal(it.End) {
			t.Errorf("%s: coverage ends at %v, want %v", it.ID, cursor, it.End)
		}
	}
}

func TestSegmentEndBeforeStartAtSharedBoundary(t *testing.T) {
	// b starts exactly when a ends. The ending item releases its column
	// first, so b takes column 0 and the two never count each other.
	items := []Item{
		item("a", 0, 2, 0),
		item("b", 2, 4, 0),
	}

	got := ComputeSegments(items)

	want := []Segment{
		{ItemID: "a", Start: ts(0), End: ts(2), Column: 0, Concurrency: 1},
		{ItemID: "b", Start: ts(2), End: ts(4), Column: 0, Concurrency: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("segments = %v, want %v", got, want)
	}
}

func TestSegmentMergesConstantRuns(t *testing.T) {
	// c introduces boundaries inside [0,6) for a and b, but on [2,4)
	// nothing about a changes, so its slices around c's boundaries must
	// not fragment further than concurrency demands.
	items := []Item{
		item("a", 0, 6, 0),
		item("b", 0, 6, 0),
		item("c", 2, 4, 0),
	}

	got := ComputeSegments(items)

	var aConc []int
	for _, s := range got {
		if s.ItemID == "a" {
			aConc = append(aConc, s.Concurrency)
		}
	}
	if !reflect.DeepEqual(aConc, []int{2, 3, 2}) {
		t.Errorf("a concurrency runs = %v, want [2 3 2]", aConc)
	}
}

func TestMergeSegmentsIdempotent(t *testing.T) {
	raw := []Segment{
		{ItemID: "a", Start: ts(0), End: ts(1), Column: 0, Concurrency: 1},
		{ItemID: "a", Start: ts(1), End: ts(2), Column: 0, Concurrency: 1},
		{ItemID: "a", Start: ts(2), End: ts(3), Column: 0, Concurrency: 2},
	}

	once := MergeSegments(raw)
	twice := MergeSegments(once)

	want := []Segment{
		{ItemID: "a", Start: ts(0), End: ts(2), Column: 0, Concurrency: 1},
		{ItemID: "a", Start: ts(2), End: ts(3), Column: 0, Concurrency: 2},
	}
	if !reflect.DeepEqual(once, want) {
		t.Errorf("merged = %v, want %v", once, want)
	}
	if !reflect.DeepEqual(twice, once) {
		t.Errorf("second merge changed result: %v vs %v", twice, once)
	}
}

func TestMergeSegmentsKeepsGaps(t *testing.T) {
	raw := []Segment{
		{ItemID: "a", Start: ts(0), End: ts(1), Column: 0, Concurrency: 1},
		{ItemID: "a", Start: ts(2), End: ts(3), Column: 0, Concurrency: 1},
	}

	got := MergeSegments(raw)

	if len(got) != 2 {
		t.Errorf("non-adjacent segments merged: %v", got)
	}
}

func TestSegmentEmptyLevel(t *testing.T) {
	if got := ComputeSegments(nil); got != nil {
		t.Errorf("segments = %v, want nil", got)
	}
}
