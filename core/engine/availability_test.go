package engine

import (
	"testing"

	"github.com/claritycare/roster-engine/core/domain"
)

func TestAvailabilityTracker_BookAndAvailable(t *testing.T) {
	cfg := DefaultConfig()
	tracker := NewAvailabilityTracker(cfg)
	tracker.Rebuild(nil, nil, testMonday)

	clientID := domain.ClientID("c1")
	if !tracker.Available("t1", &clientID, 540, 600, nil) {
		t.Fatal("fresh tracker should report the slot free")
	}

	tracker.Book("t1", &clientID, 540, 600)
	if tracker.Available("t1", &clientID, 570, 630, nil) {
		t.Error("overlapping range should now be unavailable for the therapist")
	}
	if tracker.Available("t1", nil, 570, 630, nil) {
		t.Error("overlapping range should be unavailable regardless of client")
	}

	other := domain.ClientID("c2")
	if !tracker.Available("t2", &other, 540, 600, nil) {
		t.Error("a different therapist/client pair should remain free")
	}
}

func TestAvailabilityTracker_IgnoreIDAllowsRecheck(t *testing.T) {
	cfg := DefaultConfig()
	tracker := NewAvailabilityTracker(cfg)
	entryID := domain.NewScheduleEntryID()
	clientID := domain.ClientID("c1")

	entries := []domain.ScheduleEntry{
		{ID: entryID, ClientID: &clientID, TherapistID: "t1", Weekday: domain.Monday, StartMinute: 540, EndMinute: 600, Kind: domain.SessionKindABA},
	}
	tracker.Rebuild(entries, nil, testMonday)

	if tracker.Available("t1", &clientID, 540, 600, nil) {
		t.Fatal("booked range should be unavailable without an ignore id")
	}
	if !tracker.Available("t1", &clientID, 540, 600, &entryID) {
		t.Error("ignoring the entry's own id should make its own range available again")
	}
}

func TestAvailabilityTracker_CalloutBlocksRange(t *testing.T) {
	cfg := DefaultConfig()
	tracker := NewAvailabilityTracker(cfg)

	callout := domain.Callout{
		ID:         domain.NewCalloutID(),
		EntityKind: domain.EntityKindTherapist,
		EntityID:   "t1",
		DateStart:  testMonday,
		DateEnd:    testMonday,
		TimeWindow: domain.TimeWindow{Start: 540, End: 600},
	}
	tracker.Rebuild(nil, []domain.Callout{callout}, testMonday)

	if tracker.Available("t1", nil, 550, 580, nil) {
		t.Error("therapist should be unavailable during their own callout window")
	}
	if !tracker.Available("t1", nil, 600, 660, nil) {
		t.Error("therapist should be available outside the callout window")
	}
}
