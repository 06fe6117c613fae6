package schedule

import (
	"testing"
	"time"
)

func ptr[T any](v T) *T { return &v }

// seedQuerySet populates a manager with a small mixed schedule set.
func seedQuerySet(t *testing.T, m *Manager) {
	t.Helper()
	semester := mustCreate(t, m, Payload{Name: "Semester", Start: ts(0), End: ts(24), Level: 0})
	payloads := []Payload{
		{Name: "Algebra Lab", Start: ts(2), End: ts(4), Level: 2},
		{Name: "Office Hours", Start: ts(2), End: ts(3), Level: 3},
		{Name: "Chemistry LAB", Start: ts(4), End: ts(6), Level: 2},
		{Name: "Lab Report Review", Start: ts(6), End: ts(8), Level: 1},
		// Exclusive schedules conflict with any coarser overlap, so the
		// exam declares the semester as parent to be let in.
		{Name: "Final Exam", Start: ts(20), End: ts(22), Level: 1, Exclusive: true, Parents: []string{semester}},
	}
	for _, p := range payloads {
		mustCreate(t, m, p)
	}
}

func TestQueryFilters(t *testing.T) {
	m := NewManager()
	seedQuerySet(t, m)

	tests := []struct {
		name      string
		opts      QueryOptions
		wantNames []string
	}{
		{
			name:      "no filter returns all in canonical order",
			opts:      QueryOptions{},
			wantNames: []string{"Semester", "Algebra Lab", "Office Hours", "Chemistry LAB", "Lab Report Review", "Final Exam"},
		},
		{
			name:      "name is case-insensitive substring",
			opts:      QueryOptions{Name: ptr("lab")},
			wantNames: []string{"Algebra Lab", "Chemistry LAB", "Lab Report Review"},
		},
		{
			name:      "level and name combined",
			opts:      QueryOptions{Name: ptr("lab"), Level: ptr(2)},
			wantNames: []string{"Algebra Lab", "Chemistry LAB"},
		},
		{
			name:      "empty level",
			opts:      QueryOptions{Level: ptr(7)},
			wantNames: nil,
		},
		{
			name:      "exclusive only",
			opts:      QueryOptions{Exclusive: ptr(true)},
			wantNames: []string{"Final Exam"},
		},
		{
			name:      "window uses overlap semantics",
			opts:      QueryOptions{Start: ptr(ts(3)), Stop: ptr(ts(5))},
			wantNames: []string{"Semester", "Algebra Lab", "Chemistry LAB"},
		},
		{
			name:      "open-ended start keeps schedules ending after it",
			opts:      QueryOptions{Start: ptr(ts(6))},
			wantNames: []string{"Semester", "Lab Report Review", "Final Exam"},
		},
		{
			name:      "open-ended stop keeps schedules starting before it",
			opts:      QueryOptions{Stop: ptr(ts(2))},
			wantNames: []string{"Semester"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Query(tt.opts)
			names := make([]string, 0, len(got))
			for _, s := range got {
				names = append(names, s.Name)
			}
			if len(names) != len(tt.wantNames) {
				t.Fatalf("Query() = %v, want %v", names, tt.wantNames)
			}
			for i := range names {
				if names[i] != tt.wantNames[i] {
					t.Fatalf("Query() = %v, want %v", names, tt.wantNames)
				}
			}
		})
	}
}

func TestQueryOrderingTiebreaks(t *testing.T) {
	m := NewManager()
	start := ts(0)
	end := ts(2)

	// Same start: order falls back to level, then name.
	mustCreate(t, m, Payload{Name: "bravo", Start: start, End: end, Level: 2})
	mustCreate(t, m, Payload{Name: "alpha", Start: start, End: end, Level: 2})
	mustCreate(t, m, Payload{Name: "zulu", Start: start, End: end, Level: 1})

	got := m.Query(QueryOptions{})
	want := []string{"zulu", "alpha", "bravo"}
	for i, s := range got {
		if s.Name != want[i] {
			t.Fatalf("order = %v, want %v", names(got), want)
		}
	}
}

func TestQueryReturnsCopies(t *testing.T) {
	m := NewManager()
	id := mustCreate(t, m, Payload{Name: "original", Start: ts(0), End: ts(1), Level: 0})

	got := m.Query(QueryOptions{})
	got[0].Name = "mutated"
	got[0].Start = got[0].Start.Add(time.Hour)

	again, _ := m.Get(id)
	if again.Name != "original" {
		t.Error("mutating a query result leaked into the store")
	}
}

func names(s []Schedule) []string {
	out := make([]string, len(s))
	for i := range s {
		out[i] = s[i].Name
	}
	return out
}
