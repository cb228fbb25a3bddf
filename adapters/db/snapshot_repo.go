package db

import (
	"log/slog"
	"time"

	"github.com/claritycare/roster-engine/core/domain"
	"github.com/claritycare/roster-engine/core/ports"
)

// SnapshotRepository assembles a ports.Snapshot from the client, therapist,
// callout, and base-schedule repositories in one read, mirroring
// create_booking_usecase.go's fetch-timeslots-and-bookings-once shape
// instead of querying per task.
type SnapshotRepository struct {
	clients       ports.ClientRepository
	therapists    ports.TherapistRepository
	callouts      ports.CalloutRepository
	baseSchedules ports.BaseScheduleRepository
}

func NewSnapshotRepository(
	clients ports.ClientRepository,
	therapists ports.TherapistRepository,
	callouts ports.CalloutRepository,
	baseSchedules ports.BaseScheduleRepository,
) ports.SchedulingSnapshotPort {
	return &SnapshotRepository{
		clients:       clients,
		therapists:    therapists,
		callouts:      callouts,
		baseSchedules: baseSchedules,
	}
}

func (r *SnapshotRepository) Load(date time.Time) (ports.Snapshot, error) {
	clientPtrs, err := r.clients.List()
	if err != nil {
		return ports.Snapshot{}, err
	}
	therapistPtrs, err := r.therapists.List()
	if err != nil {
		return ports.Snapshot{}, err
	}
	calloutPtrs, err := r.callouts.ListCoveringDate(date)
	if err != nil {
		return ports.Snapshot{}, err
	}

	weekday := domain.WeekdayOf(date)
	baseSchedule, err := r.baseSchedules.GetForWeekday(weekday)
	if err != nil {
		slog.Warn("no base schedule for weekday, seeding from scratch", "weekday", weekday, "error", err)
		baseSchedule = nil
	}

	return ports.Snapshot{
		Clients:      derefClients(clientPtrs),
		Therapists:   derefTherapists(therapistPtrs),
		Callouts:     derefCallouts(calloutPtrs),
		BaseSchedule: baseSchedule,
	}, nil
}

func derefClients(ptrs []*domain.Client) []domain.Client {
	out := make([]domain.Client, len(ptrs))
	for i, p := range ptrs {
		out[i] = *p
	}
	return out
}

func derefTherapists(ptrs []*domain.Therapist) []domain.Therapist {
	out := make([]domain.Therapist, len(ptrs))
	for i, p := range ptrs {
		out[i] = *p
	}
	return out
}

func derefCallouts(ptrs []*domain.Callout) []domain.Callout {
	out := make([]domain.Callout, len(ptrs))
	for i, p := range ptrs {
		out[i] = *p
	}
	return out
}
