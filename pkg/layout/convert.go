package layout

import "github.com/mgrundel/timelane/pkg/schedule"

// FromSchedules converts stored schedules into layout items. Priorities
// are left at zero; callers ranking items for lane-cap mode supply them
// through Config.Priorities.
func FromSchedules(schedules []schedule.Schedule) []Item {
	items := make([]Item, 0, len(schedules))
	for _, s := range schedules {
		items = append(items, Item{
			ID:    s.ID,
			Name:  s.Name,
			Start: s.Start,
			End:   s.End,
			Level: s.Level,
		})
	}
	return items
}
