package schedule

import (
	"reflect"
	"testing"
)

func TestIntervalIndexOverlapping(t *testing.T) {
	ix := &intervalIndex{}
	ix.insert(interval{start: ts(4), end: ts(6), id: "c"})
	ix.insert(interval{start: ts(0), end: ts(2), id: "a"})
	ix.insert(interval{start: ts(1), end: ts(5), id: "b"})

	tests := []struct {
		name   string
		startH int
		endH   int
		want   []string
	}{
		{name: "covers all", startH: 0, endH: 10, want: []string{"a", "b", "c"}},
		{name: "middle window", startH: 1, endH: 4, want: []string{"a", "b"}},
		{name: "touching start is not overlap", startH: 2, endH: 4, want: []string{"b"}},
		{name: "touching end is not overlap", startH: 6, endH: 8, want: nil},
		{name: "empty window before", startH: -4, endH: 0, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ix.overlapping(nil, ts(tt.startH), ts(tt.endH))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("overlapping(%d, %d) = %v, want %v", tt.startH, tt.endH, got, tt.want)
			}
		})
	}
}

func TestIntervalIndexInsertOrder(t *testing.T) {
	// Identical starts are ordered by id so scans are deterministic.
	ix := &intervalIndex{}
	ix.insert(interval{start: ts(0), end: ts(3), id: "b"})
	ix.insert(interval{start: ts(0), end: ts(1), id: "a"})
	ix.insert(interval{start: ts(0), end: ts(2), id: "c"})

	got := ix.overlapping(nil, ts(0), ts(4))
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("overlapping() = %v, want %v", got, want)
	}
}

func TestIntervalIndexRemove(t *testing.T) {
	ix := &intervalIndex{}
	ix.insert(interval{start: ts(0), end: ts(2), id: "a"})
	ix.insert(interval{start: ts(1), end: ts(3), id: "b"})

	if !ix.remove("a") {
		t.Fatal("remove(a) = false, want true")
	}
	if ix.remove("a") {
		t.Error("second remove(a) = true, want false")
	}

	got := ix.overlapping(nil, ts(0), ts(10))
	want := []string{"b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("overlapping() after remove = %v, want %v", got, want)
	}

	ix.remove("b")
	if !ix.empty() {
		t.Error("empty() = false after removing all entries")
	}
}
