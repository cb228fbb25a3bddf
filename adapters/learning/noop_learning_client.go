package learning

import (
	"log/slog"

	"github.com/claritycare/roster-engine/core/domain"
	"github.com/claritycare/roster-engine/core/ports"
)

// NoopLearningClient is the default ports.LearningServicePort: it has
// nothing mined yet, so it returns empty results for every call and never
// fails a run over it. Swapping in a live HTTP-backed client later only
// means satisfying this same interface, the same split the teacher uses
// between NotificationPort and FirebaseNotifier.
type NoopLearningClient struct{}

func NewNoopLearningClient() ports.LearningServicePort {
	return &NoopLearningClient{}
}

func (c *NoopLearningClient) TopSchedules(weekday domain.Weekday, k int) ([]ports.PriorSchedule, error) {
	slog.Warn("learning service not configured, skipping seed mining", "weekday", weekday)
	return nil, nil
}

func (c *NoopLearningClient) LunchPreferences() (map[domain.TherapistID]domain.TimeWindow, error) {
	slog.Warn("learning service not configured, skipping lunch preference lookup")
	return nil, nil
}

func (c *NoopLearningClient) RecordFeedback(schedule []domain.ScheduleEntry, rating int, violations []string) error {
	slog.Warn("learning service not configured, discarding feedback", "rating", rating, "violationCount", len(violations))
	return nil
}
