package engine

import (
	"time"

	"github.com/claritycare/roster-engine/core/domain"
)

func testClient(id string, opts ...func(*domain.Client)) domain.Client {
	c := domain.Client{
		ID:   domain.ClientID(id),
		Name: id,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func withInsurance(tags ...domain.QualificationTag) func(*domain.Client) {
	return func(c *domain.Client) { c.InsuranceRequirements = tags }
}

func withClientTeam(team domain.TeamID) func(*domain.Client) {
	return func(c *domain.Client) { c.TeamID = &team }
}

func withAHNeed(need domain.AlliedHealthNeed) func(*domain.Client) {
	return func(c *domain.Client) { c.AlliedHealthNeeds = append(c.AlliedHealthNeeds, need) }
}

func testTherapist(id string, role domain.Role, opts ...func(*domain.Therapist)) domain.Therapist {
	t := domain.Therapist{
		ID:   domain.TherapistID(id),
		Name: id,
		Role: role,
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

func withQualifications(tags ...domain.QualificationTag) func(*domain.Therapist) {
	return func(t *domain.Therapist) { t.Qualifications = tags }
}

func withTherapistTeam(team domain.TeamID) func(*domain.Therapist) {
	return func(t *domain.Therapist) { t.TeamID = &team }
}

func withAlliedHealth(kind domain.AlliedHealthKind) func(*domain.Therapist) {
	return func(t *domain.Therapist) {
		t.AlliedHealthCapabilities = append(t.AlliedHealthCapabilities, kind)
		t.Qualifications = append(t.Qualifications, kind.CertificateTag())
	}
}

func testLookup(clients []domain.Client, therapists []domain.Therapist, callouts []domain.Callout, weekday domain.Weekday) Lookup {
	clientsByID := make(map[domain.ClientID]*domain.Client, len(clients))
	for i := range clients {
		clientsByID[clients[i].ID] = &clients[i]
	}
	therapistsByID := make(map[domain.TherapistID]*domain.Therapist, len(therapists))
	for i := range therapists {
		therapistsByID[therapists[i].ID] = &therapists[i]
	}
	return Lookup{
		Clients:    clientsByID,
		Therapists: therapistsByID,
		Callouts:   callouts,
		Date:       testMonday,
		Weekday:    weekday,
		Cfg:        DefaultConfig(),
	}
}

var testMonday = time.Date(2026, time.August, 3, 0, 0, 0, 0, time.UTC)

func abaEntry(clientID domain.ClientID, therapistID domain.TherapistID, weekday domain.Weekday, start, end int) domain.ScheduleEntry {
	c := clientID
	return domain.ScheduleEntry{
		ID:          domain.NewScheduleEntryID(),
		ClientID:    &c,
		TherapistID: therapistID,
		Weekday:     weekday,
		StartMinute: start,
		EndMinute:   end,
		Kind:        domain.SessionKindABA,
	}
}

func lunchEntry(therapistID domain.TherapistID, weekday domain.Weekday, start int) domain.ScheduleEntry {
	return domain.ScheduleEntry{
		ID:          domain.NewScheduleEntryID(),
		TherapistID: therapistID,
		Weekday:     weekday,
		StartMinute: start,
		EndMinute:   start + 30,
		Kind:        domain.SessionKindIndirect,
	}
}
