package engine

import (
	"testing"

	"github.com/claritycare/roster-engine/core/domain"
)

func TestConstructiveSeed_PlacesABAForEveryClient(t *testing.T) {
	clients := []domain.Client{
		testClient("c1", withInsurance(domain.MDMedicaid)),
		testClient("c2"),
	}
	therapists := []domain.Therapist{
		testTherapist("t1", domain.RoleRBT, withQualifications(domain.MDMedicaid)),
		testTherapist("t2", domain.RoleRBT),
		testTherapist("t3", domain.RoleBCBA, withQualifications(domain.MDMedicaid)),
	}
	l := testLookup(clients, therapists, nil, domain.Monday)
	rng := newRNG(seedPtr(1))

	ind := ConstructiveSeed(rng, clients, therapists, l, nil, nil)

	seen := make(map[domain.ClientID]bool)
	for _, e := range ind.Entries {
		if e.Kind == domain.SessionKindABA && e.ClientID != nil {
			seen[*e.ClientID] = true
		}
	}
	for _, c := range clients {
		if !seen[c.ID] {
			t.Errorf("expected at least one ABA entry for client %s", c.ID)
		}
	}
}

func TestConstructiveSeed_PlacesAlliedHealthNeed(t *testing.T) {
	need := domain.AlliedHealthNeed{Kind: domain.AlliedHealthOT, FrequencyPerWeek: 2, DurationMinutes: 45}
	clients := []domain.Client{testClient("c1", withAHNeed(need))}
	therapists := []domain.Therapist{
		testTherapist("t1", domain.RoleRBT, withAlliedHealth(domain.AlliedHealthOT)),
		testTherapist("t2", domain.RoleRBT),
	}
	l := testLookup(clients, therapists, nil, domain.Monday)
	rng := newRNG(seedPtr(2))

	ind := ConstructiveSeed(rng, clients, therapists, l, nil, nil)

	found := false
	for _, e := range ind.Entries {
		if e.Kind == domain.SessionKindAHOT && e.ClientID != nil && *e.ClientID == "c1" {
			found = true
			if e.Duration() != 45 {
				t.Errorf("AH entry duration = %d, want 45", e.Duration())
			}
		}
	}
	if !found {
		t.Error("expected an AH_OT entry for the client's allied-health need")
	}
}

func TestConstructiveSeed_GraftsBaseSchedule(t *testing.T) {
	clients := []domain.Client{testClient("c1")}
	therapists := []domain.Therapist{testTherapist("t1", domain.RoleRBT)}
	l := testLookup(clients, therapists, nil, domain.Monday)

	base := &domain.BaseSchedule{
		ID:       domain.NewBaseScheduleID(),
		Name:     "standard",
		Weekdays: []domain.Weekday{domain.Monday},
		Entries: []domain.ScheduleEntry{
			abaEntry("c1", "t1", domain.Monday, 480, 540),
		},
	}

	rng := newRNG(seedPtr(3))
	ind := ConstructiveSeed(rng, clients, therapists, l, base, nil)

	found := false
	for _, e := range ind.Entries {
		if e.StartMinute == 480 && e.EndMinute == 540 && e.TherapistID == "t1" {
			found = true
		}
	}
	if !found {
		t.Error("expected the base-schedule entry to be grafted into the seed")
	}
}

func seedPtr(v uint64) *uint64 { return &v }
