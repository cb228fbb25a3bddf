package ports

import "github.com/claritycare/roster-engine/core/domain"

// LearningServicePort is the optional oracle described in §6: it returns at
// most K prior schedules for a weekday and a table of therapist-specific
// preferred lunch intervals, and records caller feedback. An engine that has
// no learning service must behave identically except for the seed-mining
// optimization (§7) — callers failing to read it degrade seed quality but
// never abort a run.
type LearningServicePort interface {
	TopSchedules(weekday domain.Weekday, k int) ([]PriorSchedule, error)
	LunchPreferences() (map[domain.TherapistID]domain.TimeWindow, error)
	RecordFeedback(schedule []domain.ScheduleEntry, rating int, violations []string) error
}

// PriorSchedule is one previously rated schedule for a given weekday, as
// mined by the learning service.
type PriorSchedule struct {
	Weekday domain.Weekday
	Rating  int
	Entries []domain.ScheduleEntry
}
