package schedule

import (
	"testing"
	"time"

	"github.com/mgrundel/timelane/pkg/errors"
)

// ts returns a fixed base day plus h hours, so intervals read like [0, 2).
func ts(h int) time.Time {
	return time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC).Add(time.Duration(h) * time.Hour)
}

func mustCreate(t *testing.T, m *Manager, p Payload) string {
	t.Helper()
	id, err := m.Create(p)
	if err != nil {
		t.Fatalf("Create(%s) failed: %v", p.Name, err)
	}
	return id
}

func TestCreateThenGetRoundTrip(t *testing.T) {
	m := NewManager()

	p := Payload{Name: "Algebra Lecture", Start: ts(1), End: ts(3), Level: 2, Exclusive: true}
	id := mustCreate(t, m, p)

	got, ok := m.Get(id)
	if !ok {
		t.Fatalf("Get(%s) not found after Create", id)
	}
	if got.ID != id {
		t.Errorf("ID = %s, want %s", got.ID, id)
	}
	if got.Name != p.Name || !got.Start.Equal(p.Start) || !got.End.Equal(p.End) ||
		got.Level != p.Level || got.Exclusive != p.Exclusive {
		t.Errorf("Get() = %+v, want payload %+v", got, p)
	}
	if len(got.Parents) != 0 || len(got.Children) != 0 {
		t.Errorf("fresh schedule has relations: parents=%v children=%v", got.Parents, got.Children)
	}
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(m *Manager) []string // returns parent ids for the payload
		payload  Payload
		wantCode errors.Code
	}{
		{
			name:     "start equals end",
			payload:  Payload{Name: "zero", Start: ts(2), End: ts(2), Level: 0},
			wantCode: errors.ErrCodeStartAfterEnd,
		},
		{
			name:     "start after end",
			payload:  Payload{Name: "backwards", Start: ts(5), End: ts(2), Level: 0},
			wantCode: errors.ErrCodeStartAfterEnd,
		},
		{
			name:     "negative level",
			payload:  Payload{Name: "Ghost", Start: ts(1), End: ts(2), Level: -1},
			wantCode: errors.ErrCodeInvalidInput,
		},
		{
			name: "parent does not exist",
			setup: func(m *Manager) []string {
				return []string{"deadbeef-0000-0000-0000-000000000000"}
			},
			payload:  Payload{Name: "orphan", Start: ts(1), End: ts(2), Level: 1},
			wantCode: errors.ErrCodeParentNotFound,
		},
		{
			name: "level not below parent",
			setup: func(m *Manager) []string {
				return []string{mustCreate(t, m, Payload{Name: "term", Start: ts(0), End: ts(10), Level: 1})}
			},
			payload:  Payload{Name: "peer", Start: ts(1), End: ts(2), Level: 1},
			wantCode: errors.ErrCodeLevelExceedsParent,
		},
		{
			name: "range exceeds parent start",
			setup: func(m *Manager) []string {
				return []string{mustCreate(t, m, Payload{Name: "term", Start: ts(0), End: ts(10), Level: 0})}
			},
			payload:  Payload{Name: "early", Start: ts(-1), End: ts(5), Level: 1},
			wantCode: errors.ErrCodeTimeRangeExceedsParent,
		},
		{
			name: "range exceeds parent end",
			setup: func(m *Manager) []string {
				return []string{mustCreate(t, m, Payload{Name: "term", Start: ts(0), End: ts(10), Level: 0})}
			},
			payload:  Payload{Name: "late", Start: ts(5), End: ts(11), Level: 1},
			wantCode: errors.ErrCodeTimeRangeExceedsParent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager()
			p := tt.payload
			if tt.setup != nil {
				p.Parents = tt.setup(m)
			}
			before := m.Len()

			_, err := m.Create(p)
			if err == nil {
				t.Fatalf("Create() succeeded, want code %s", tt.wantCode)
			}
			if code := errors.GetCode(err); code != tt.wantCode {
				t.Errorf("code = %s, want %s", code, tt.wantCode)
			}
			if m.Len() != before {
				t.Errorf("failed Create mutated state: len %d -> %d", before, m.Len())
			}
		})
	}
}

func TestLevelCheckedBeforeContainment(t *testing.T) {
	m := NewManager()
	parent := mustCreate(t, m, Payload{Name: "term", Start: ts(0), End: ts(10), Level: 1})

	// Both the level rule and the containment rule are violated; the level
	// rule must win because parents are checked in that order.
	_, err := m.Create(Payload{
		Name: "child", Start: ts(-1), End: ts(11), Level: 1,
		Parents: []string{parent},
	})
	if code := errors.GetCode(err); code != errors.ErrCodeLevelExceedsParent {
		t.Errorf("code = %s, want %s", code, errors.ErrCodeLevelExceedsParent)
	}
}

func TestExclusivityConflicts(t *testing.T) {
	tests := []struct {
		name     string
		existing Payload
		payload  Payload
		wantErr  bool
	}{
		{
			name:     "two exclusive same level overlapping",
			existing: Payload{Name: "a", Start: ts(0), End: ts(4), Level: 1, Exclusive: true},
			payload:  Payload{Name: "b", Start: ts(2), End: ts(6), Level: 1, Exclusive: true},
			wantErr:  true,
		},
		{
			name:     "exclusive blocks non-exclusive peer",
			existing: Payload{Name: "a", Start: ts(0), End: ts(4), Level: 1, Exclusive: true},
			payload:  Payload{Name: "b", Start: ts(2), End: ts(6), Level: 1},
			wantErr:  true,
		},
		{
			name:     "non-exclusive peer blocks exclusive",
			existing: Payload{Name: "a", Start: ts(0), End: ts(4), Level: 1},
			payload:  Payload{Name: "b", Start: ts(2), End: ts(6), Level: 1, Exclusive: true},
			wantErr:  true,
		},
		{
			name:     "two non-exclusive peers may overlap",
			existing: Payload{Name: "a", Start: ts(0), End: ts(4), Level: 1},
			payload:  Payload{Name: "b", Start: ts(2), End: ts(6), Level: 1},
			wantErr:  false,
		},
		{
			name:     "touching ranges do not overlap",
			existing: Payload{Name: "a", Start: ts(0), End: ts(4), Level: 1, Exclusive: true},
			payload:  Payload{Name: "b", Start: ts(4), End: ts(6), Level: 1, Exclusive: true},
			wantErr:  false,
		},
		{
			name:     "new exclusive blocks coarser overlap",
			existing: Payload{Name: "term", Start: ts(0), End: ts(10), Level: 0},
			payload:  Payload{Name: "exam", Start: ts(2), End: ts(4), Level: 2, Exclusive: true},
			wantErr:  true,
		},
		{
			name:     "existing coarse exclusive blocks finer",
			existing: Payload{Name: "holiday", Start: ts(0), End: ts(10), Level: 0, Exclusive: true},
			payload:  Payload{Name: "lecture", Start: ts(2), End: ts(4), Level: 2},
			wantErr:  true,
		},
		{
			// The cross-level rules only look at coarser-or-equal levels,
			// so a finer existing exclusive does not block a new coarser
			// non-exclusive. This asymmetry is part of the stored behavior.
			name:     "finer exclusive does not block coarser non-exclusive",
			existing: Payload{Name: "exam", Start: ts(2), End: ts(4), Level: 2, Exclusive: true},
			payload:  Payload{Name: "term", Start: ts(0), End: ts(10), Level: 0},
			wantErr:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager()
			mustCreate(t, m, tt.existing)

			_, err := m.Create(tt.payload)
			if tt.wantErr {
				if code := errors.GetCode(err); code != errors.ErrCodeTimeRangeOverlaps {
					t.Errorf("code = %s (err %v), want %s", code, err, errors.ErrCodeTimeRangeOverlaps)
				}
			} else if err != nil {
				t.Errorf("Create() failed: %v", err)
			}
		})
	}
}

func TestChildMayOverlapExclusiveParent(t *testing.T) {
	m := NewManager()
	parent := mustCreate(t, m, Payload{Name: "retreat", Start: ts(0), End: ts(10), Level: 0, Exclusive: true})

	// A declared parent is exempt from the overlap scan, so an exclusive
	// parent can still contain its own children.
	id, err := m.Create(Payload{
		Name: "workshop", Start: ts(2), End: ts(4), Level: 1,
		Parents: []string{parent},
	})
	if err != nil {
		t.Fatalf("Create() under exclusive parent failed: %v", err)
	}

	got, _ := m.Get(id)
	if len(got.Parents) != 1 || got.Parents[0] != parent {
		t.Errorf("Parents = %v, want [%s]", got.Parents, parent)
	}
	gotParent, _ := m.Get(parent)
	if len(gotParent.Children) != 1 || gotParent.Children[0] != id {
		t.Errorf("parent Children = %v, want [%s]", gotParent.Children, id)
	}
}

func TestDelete(t *testing.T) {
	t.Run("unknown id", func(t *testing.T) {
		m := NewManager()
		err := m.Delete("9f4c2d1e-0a6b-4c44-9b1d-8f4e2ab91c33")
		if code := errors.GetCode(err); code != errors.ErrCodeScheduleNotFound {
			t.Errorf("code = %s, want %s", code, errors.ErrCodeScheduleNotFound)
		}
	})

	t.Run("detaches without cascading", func(t *testing.T) {
		m := NewManager()
		parent := mustCreate(t, m, Payload{Name: "term", Start: ts(0), End: ts(10), Level: 0})
		child := mustCreate(t, m, Payload{
			Name: "course", Start: ts(1), End: ts(5), Level: 1, Parents: []string{parent},
		})

		if err := m.Delete(parent); err != nil {
			t.Fatalf("Delete(parent) failed: %v", err)
		}

		// The child survives and its parent link is gone on both sides.
		got, ok := m.Get(child)
		if !ok {
			t.Fatal("child was cascaded away by parent deletion")
		}
		if len(got.Parents) != 0 {
			t.Errorf("child Parents = %v, want none", got.Parents)
		}
		if _, ok := m.Get(parent); ok {
			t.Error("parent still present after Delete")
		}
	})

	t.Run("frees the time range", func(t *testing.T) {
		m := NewManager()
		id := mustCreate(t, m, Payload{Name: "block", Start: ts(0), End: ts(4), Level: 0, Exclusive: true})

		if _, err := m.Create(Payload{Name: "clash", Start: ts(1), End: ts(2), Level: 0}); err == nil {
			t.Fatal("overlap with exclusive schedule was not rejected")
		}
		if err := m.Delete(id); err != nil {
			t.Fatalf("Delete() failed: %v", err)
		}
		if _, err := m.Create(Payload{Name: "clash", Start: ts(1), End: ts(2), Level: 0}); err != nil {
			t.Errorf("Create() after Delete failed: %v", err)
		}
	})
}

func TestCreateWithID(t *testing.T) {
	m := NewManager()
	const id = "11111111-2222-3333-4444-555555555555"

	if err := m.CreateWithID(id, Payload{Name: "pinned", Start: ts(0), End: ts(2), Level: 0}); err != nil {
		t.Fatalf("CreateWithID() failed: %v", err)
	}
	if _, ok := m.Get(id); !ok {
		t.Fatalf("Get(%s) not found", id)
	}

	err := m.CreateWithID(id, Payload{Name: "dup", Start: ts(3), End: ts(4), Level: 0})
	if code := errors.GetCode(err); code != errors.ErrCodeDuplicateID {
		t.Errorf("code = %s, want %s", code, errors.ErrCodeDuplicateID)
	}
}

func TestAddParents(t *testing.T) {
	m := NewManager()
	parent := mustCreate(t, m, Payload{Name: "term", Start: ts(0), End: ts(10), Level: 0})
	child := mustCreate(t, m, Payload{Name: "course", Start: ts(1), End: ts(5), Level: 1})

	if err := m.AddParents(child, []string{parent}); err != nil {
		t.Fatalf("AddParents() failed: %v", err)
	}
	got, _ := m.Get(child)
	if len(got.Parents) != 1 || got.Parents[0] != parent {
		t.Errorf("Parents = %v, want [%s]", got.Parents, parent)
	}

	t.Run("rejects invalid parent and keeps state", func(t *testing.T) {
		narrow := mustCreate(t, m, Payload{Name: "day", Start: ts(2), End: ts(3), Level: 0, Exclusive: false})
		err := m.AddParents(child, []string{narrow})
		if code := errors.GetCode(err); code != errors.ErrCodeTimeRangeExceedsParent {
			t.Errorf("code = %s, want %s", code, errors.ErrCodeTimeRangeExceedsParent)
		}
		got, _ := m.Get(child)
		if len(got.Parents) != 1 {
			t.Errorf("failed AddParents changed relations: %v", got.Parents)
		}
	})

	t.Run("unknown schedule", func(t *testing.T) {
		err := m.AddParents("9f4c2d1e-0a6b-4c44-9b1d-8f4e2ab91c33", []string{parent})
		if code := errors.GetCode(err); code != errors.ErrCodeScheduleNotFound {
			t.Errorf("code = %s, want %s", code, errors.ErrCodeScheduleNotFound)
		}
	})
}

func TestMultipleParents(t *testing.T) {
	m := NewManager()
	term := mustCreate(t, m, Payload{Name: "term", Start: ts(0), End: ts(10), Level: 0})
	track := mustCreate(t, m, Payload{Name: "track", Start: ts(0), End: ts(8), Level: 1})

	child := mustCreate(t, m, Payload{
		Name: "lab", Start: ts(2), End: ts(4), Level: 2,
		Parents: []string{term, track},
	})

	got, _ := m.Get(child)
	if len(got.Parents) != 2 {
		t.Fatalf("Parents = %v, want two entries", got.Parents)
	}

	// Deleting one parent leaves the other link intact.
	if err := m.Delete(term); err != nil {
		t.Fatalf("Delete(term) failed: %v", err)
	}
	got, _ = m.Get(child)
	if len(got.Parents) != 1 || got.Parents[0] != track {
		t.Errorf("Parents = %v, want [%s]", got.Parents, track)
	}
}

func TestReset(t *testing.T) {
	m := NewManager()
	mustCreate(t, m, Payload{Name: "a", Start: ts(0), End: ts(1), Level: 0})
	m.Reset()
	if m.Len() != 0 {
		t.Errorf("Len() = %d after Reset, want 0", m.Len())
	}
}
