package engine

import (
	"testing"

	"github.com/claritycare/roster-engine/core/domain"
)

func TestRepairCleanupMerge_MergesTouchingEntries(t *testing.T) {
	l := testLookup(nil, nil, nil, domain.Monday)
	entries := []domain.ScheduleEntry{
		abaEntry("c1", "t1", domain.Monday, 480, 540),
		abaEntry("c1", "t1", domain.Monday, 540, 600),
	}

	out := repairCleanupMerge(entries, l)
	if len(out) != 1 {
		t.Fatalf("expected the two touching entries to merge into one, got %d", len(out))
	}
	if out[0].StartMinute != 480 || out[0].EndMinute != 600 {
		t.Errorf("merged entry = [%d,%d), want [480,600)", out[0].StartMinute, out[0].EndMinute)
	}
}

func TestRepairCleanupMerge_DropsDegenerate(t *testing.T) {
	l := testLookup(nil, nil, nil, domain.Monday)
	degenerate := abaEntry("c1", "t1", domain.Monday, 600, 600)
	valid := abaEntry("c1", "t1", domain.Monday, 480, 540)

	out := repairCleanupMerge([]domain.ScheduleEntry{degenerate, valid}, l)
	if len(out) != 1 {
		t.Fatalf("expected the degenerate entry to be dropped, got %d entries", len(out))
	}
}

func TestRepairDurationClamp_ClampsABA(t *testing.T) {
	l := testLookup(nil, nil, nil, domain.Monday)
	tooShort := abaEntry("c1", "t1", domain.Monday, 480, 500)
	tooLong := abaEntry("c1", "t1", domain.Monday, 480, 800)

	out := repairDurationClamp([]domain.ScheduleEntry{tooShort, tooLong}, l)
	for _, e := range out {
		if e.Duration() < l.Cfg.ABAMinDuration || e.Duration() > l.Cfg.ABAMaxDuration {
			t.Errorf("entry duration %d out of [%d,%d]", e.Duration(), l.Cfg.ABAMinDuration, l.Cfg.ABAMaxDuration)
		}
	}
}

func TestRepairMedicaidCap_DropsExcessTherapists(t *testing.T) {
	client := testClient("c1", withInsurance(domain.MDMedicaid))
	therapists := []domain.Therapist{
		testTherapist("t1", domain.RoleRBT, withQualifications(domain.MDMedicaid)),
		testTherapist("t2", domain.RoleRBT, withQualifications(domain.MDMedicaid)),
		testTherapist("t3", domain.RoleRBT, withQualifications(domain.MDMedicaid)),
		testTherapist("t4", domain.RoleRBT, withQualifications(domain.MDMedicaid)),
	}
	l := testLookup([]domain.Client{client}, therapists, nil, domain.Monday)
	entries := []domain.ScheduleEntry{
		abaEntry("c1", "t1", domain.Monday, 480, 540),
		abaEntry("c1", "t2", domain.Monday, 540, 600),
		abaEntry("c1", "t3", domain.Monday, 600, 660),
		abaEntry("c1", "t4", domain.Monday, 660, 720),
	}

	rng := newRNG(seedPtr(7))
	out := repairMedicaidCap(rng, entries, l)

	distinct := make(map[domain.TherapistID]struct{})
	for _, e := range out {
		distinct[e.TherapistID] = struct{}{}
	}
	if len(distinct) > l.Cfg.MedicaidCapTherapists {
		t.Errorf("expected at most %d distinct therapists after repair, got %d", l.Cfg.MedicaidCapTherapists, len(distinct))
	}
}

func TestRepairLunchPlacement_AddsMissingLunch(t *testing.T) {
	client := testClient("c1")
	therapist := testTherapist("t1", domain.RoleRBT)
	l := testLookup([]domain.Client{client}, []domain.Therapist{therapist}, nil, domain.Monday)

	entries := []domain.ScheduleEntry{
		abaEntry("c1", "t1", domain.Monday, 480, 690),
		abaEntry("c1", "t1", domain.Monday, 720, 780),
	}

	out := repairLunchPlacement(entries, l)
	if !hasLunch("t1", out) {
		t.Error("expected a lunch entry to be added for the working therapist")
	}
}

func TestRepairLunchPlacement_RemovesLunchForIdleTherapist(t *testing.T) {
	therapist := testTherapist("t1", domain.RoleRBT)
	l := testLookup(nil, []domain.Therapist{therapist}, nil, domain.Monday)

	entries := []domain.ScheduleEntry{lunchEntry("t1", domain.Monday, 690)}
	out := repairLunchPlacement(entries, l)
	if hasLunch("t1", out) {
		t.Error("expected the lunch to be removed from a therapist with no billable work")
	}
}
