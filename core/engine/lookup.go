package engine

import (
	"time"

	"github.com/claritycare/roster-engine/core/domain"
)

// Lookup bundles the immutable, snapshot-at-entry reference data the
// constraint kernel and validator need alongside a candidate entry: the
// client/therapist maps, the callouts for date T, and the operating
// constants. It never changes during a run (§5: inputs are cloned by value
// at entry).
type Lookup struct {
	Clients    map[domain.ClientID]*domain.Client
	Therapists map[domain.TherapistID]*domain.Therapist
	Callouts   []domain.Callout
	Date       time.Time
	Weekday    domain.Weekday
	Cfg        Config
}

func (l Lookup) client(id *domain.ClientID) *domain.Client {
	if id == nil {
		return nil
	}
	return l.Clients[*id]
}

func (l Lookup) therapist(id domain.TherapistID) *domain.Therapist {
	return l.Therapists[id]
}
