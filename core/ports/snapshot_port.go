package ports

import (
	"time"

	"github.com/claritycare/roster-engine/core/domain"
)

// Snapshot bundles everything the engine needs for one day's generation, read
// once before Run is called instead of N+1 queries per task — the same
// fetch-all-then-loop shape the teacher's create_booking usecase uses for
// timeslots and bookings.
type Snapshot struct {
	Clients      []domain.Client
	Therapists   []domain.Therapist
	Callouts     []domain.Callout
	BaseSchedule *domain.BaseSchedule
}

// SchedulingSnapshotPort reads the four backing repositories (clients,
// therapists, callouts, base schedules) and assembles
// a Snapshot for the given calendar date in one call.
type SchedulingSnapshotPort interface {
	Load(date time.Time) (Snapshot, error)
}
