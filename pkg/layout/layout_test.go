package layout

import (
	"testing"

	"github.com/mgrundel/timelane/pkg/errors"
	"github.com/mgrundel/timelane/pkg/schedule"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		wantErr  errors.Code
		wantMode Mode
	}{
		{name: "defaults", cfg: Config{}, wantMode: ModeClusterAggregate},
		{name: "explicit segment", cfg: Config{Mode: ModeContinuousSegment}, wantMode: ModeContinuousSegment},
		{name: "unknown mode", cfg: Config{Mode: "spiral"}, wantErr: errors.ErrCodeInvalidMode},
		{name: "negative threshold", cfg: Config{AggregateThreshold: -1}, wantErr: errors.ErrCodeInvalidInput},
		{name: "negative lane cap", cfg: Config{MaxLanesPerLevel: -2}, wantErr: errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr != "" {
				if errors.GetCode(err) != tt.wantErr {
					t.Fatalf("code = %v, want %v", errors.GetCode(err), tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.cfg.Mode != tt.wantMode {
				t.Errorf("mode = %q, want %q", tt.cfg.Mode, tt.wantMode)
			}
			if tt.cfg.AggregateThreshold != DefaultAggregateThreshold {
				t.Errorf("threshold = %d, want %d", tt.cfg.AggregateThreshold, DefaultAggregateThreshold)
			}
			if tt.cfg.MaxLanesPerLevel != DefaultMaxLanesPerLevel {
				t.Errorf("lane cap = %d, want %d", tt.cfg.MaxLanesPerLevel, DefaultMaxLanesPerLevel)
			}
		})
	}
}

func TestComputeGroupsByLevel(t *testing.T) {
	items := []Item{
		item("a", 0, 2, 0),
		item("b", 0, 2, 2),
		item("c", 1, 3, 2),
	}

	l, err := Compute(items, Config{Mode: ModeClusterAggregate})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	if l.MaxLevel != 2 {
		t.Errorf("max level = %d, want 2", l.MaxLevel)
	}
	if len(l.Levels) != 2 {
		t.Fatalf("levels = %d, want 2", len(l.Levels))
	}
	if _, ok := l.Levels[1]; ok {
		t.Error("empty level 1 materialized")
	}
	// Levels are independent: a does not widen level 2's cluster.
	if got := l.Levels[2].Clusters[0].Columns; got != 2 {
		t.Errorf("level 2 columns = %d, want 2", got)
	}
	if got := l.Levels[0].Clusters[0].Columns; got != 1 {
		t.Errorf("level 0 columns = %d, want 1", got)
	}
}

func TestComputeSkipsMalformedItems(t *testing.T) {
	items := []Item{
		item("ok", 0, 2, 0),
		item("empty", 3, 3, 0),
		item("backwards", 5, 4, 0),
	}

	l, err := Compute(items, Config{Mode: ModeClusterAggregate})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	if got := len(l.Levels[0].Assignments); got != 1 {
		t.Errorf("assignments = %d, want 1", got)
	}
}

func TestComputeEmptyInput(t *testing.T) {
	l, err := Compute(nil, Config{})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if l.MaxLevel != -1 {
		t.Errorf("max level = %d, want -1", l.MaxLevel)
	}
	if len(l.Levels) != 0 {
		t.Errorf("levels = %d, want 0", len(l.Levels))
	}
}

func TestComputeModeDispatch(t *testing.T) {
	items := []Item{item("a", 0, 2, 0), item("b", 1, 3, 0)}

	tests := []struct {
		mode  Mode
		check func(t *testing.T, lv *Level)
	}{
		{mode: ModeClusterAggregate, check: func(t *testing.T, lv *Level) {
			if len(lv.Clusters) == 0 || len(lv.Assignments) != 2 {
				t.Errorf("cluster fields missing: %+v", lv)
			}
		}},
		{mode: ModeContinuousSegment, check: func(t *testing.T, lv *Level) {
			if len(lv.Segments) == 0 {
				t.Errorf("segment fields missing: %+v", lv)
			}
		}},
		{mode: ModeFixedLaneCap, check: func(t *testing.T, lv *Level) {
			if len(lv.Lanes) == 0 {
				t.Errorf("lane fields missing: %+v", lv)
			}
		}},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			l, err := Compute(items, Config{Mode: tt.mode})
			if err != nil {
				t.Fatalf("compute: %v", err)
			}
			tt.check(t, l.Levels[0])
		})
	}
}

func TestFromSchedules(t *testing.T) {
	in := []schedule.Schedule{
		{ID: "x", Name: "Exam", Start: ts(0), End: ts(2), Level: 1, Exclusive: true},
	}

	items := FromSchedules(in)

	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}
	got := items[0]
	if got.ID != "x" || got.Name != "Exam" || got.Level != 1 {
		t.Errorf("item = %+v", got)
	}
	if !got.Start.Equal(ts(0)) || !got.End.Equal(ts(2)) {
		t.Errorf("range = [%v, %v)", got.Start, got.End)
	}
	if got.Priority != 0 {
		t.Errorf("priority = %d, want 0", got.Priority)
	}
}
