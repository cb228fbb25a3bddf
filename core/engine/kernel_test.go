package engine

import (
	"testing"

	"github.com/claritycare/roster-engine/core/domain"
)

func TestTherapistConflict(t *testing.T) {
	tests := []struct {
		name     string
		existing domain.ScheduleEntry
		entry    domain.ScheduleEntry
		want     bool
	}{
		{
			name:     "overlapping same therapist conflicts",
			existing: abaEntry("c1", "t1", domain.Monday, 540, 600),
			entry:    abaEntry("c2", "t1", domain.Monday, 570, 630),
			want:     true,
		},
		{
			name:     "adjacent same therapist does not conflict",
			existing: abaEntry("c1", "t1", domain.Monday, 540, 600),
			entry:    abaEntry("c2", "t1", domain.Monday, 600, 660),
			want:     false,
		},
		{
			name:     "different therapist never conflicts",
			existing: abaEntry("c1", "t1", domain.Monday, 540, 600),
			entry:    abaEntry("c2", "t2", domain.Monday, 540, 600),
			want:     false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := TherapistConflict(tc.entry, []domain.ScheduleEntry{tc.existing}, nil)
			if got != tc.want {
				t.Errorf("TherapistConflict() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestClientConflict(t *testing.T) {
	existing := abaEntry("c1", "t1", domain.Monday, 540, 600)
	overlapping := abaEntry("c1", "t2", domain.Monday, 570, 630)

	if !ClientConflict(overlapping, []domain.ScheduleEntry{existing}, nil) {
		t.Error("expected client conflict across different therapists")
	}

	lunch := lunchEntry("t1", domain.Monday, 690)
	if ClientConflict(lunch, []domain.ScheduleEntry{existing}, nil) {
		t.Error("lunch entries have no client and should never conflict")
	}
}

func TestCredentialMismatch(t *testing.T) {
	client := testClient("c1", withInsurance(domain.MDMedicaid))
	qualified := testTherapist("t1", domain.RoleRBT, withQualifications(domain.MDMedicaid))
	unqualified := testTherapist("t2", domain.RoleRBT)

	l := testLookup([]domain.Client{client}, []domain.Therapist{qualified, unqualified}, nil, domain.Monday)

	entryOK := abaEntry("c1", "t1", domain.Monday, 540, 600)
	if CredentialMismatch(entryOK, l) {
		t.Error("qualified therapist should not mismatch")
	}

	entryBad := abaEntry("c1", "t2", domain.Monday, 540, 600)
	if !CredentialMismatch(entryBad, l) {
		t.Error("unqualified therapist should mismatch")
	}
}

func TestAHQualificationMissing(t *testing.T) {
	client := testClient("c1")
	capable := testTherapist("t1", domain.RoleRBT, withAlliedHealth(domain.AlliedHealthOT))
	incapable := testTherapist("t2", domain.RoleRBT)
	l := testLookup([]domain.Client{client}, []domain.Therapist{capable, incapable}, nil, domain.Monday)

	ok := domain.ScheduleEntry{ID: domain.NewScheduleEntryID(), ClientID: clientPtr("c1"), TherapistID: "t1", Weekday: domain.Monday, StartMinute: 540, EndMinute: 600, Kind: domain.SessionKindAHOT}
	if AHQualificationMissing(ok, l) {
		t.Error("capable therapist should satisfy the AH requirement")
	}

	bad := ok
	bad.TherapistID = "t2"
	if !AHQualificationMissing(bad, l) {
		t.Error("incapable therapist should fail the AH requirement")
	}
}

func TestDurationInvalid(t *testing.T) {
	l := testLookup(nil, nil, nil, domain.Monday)

	tests := []struct {
		name  string
		entry domain.ScheduleEntry
		want  bool
	}{
		{"aba minimum is valid", abaEntry("c1", "t1", domain.Monday, 540, 600), false},
		{"aba below minimum is invalid", abaEntry("c1", "t1", domain.Monday, 540, 570), true},
		{"aba above maximum is invalid", abaEntry("c1", "t1", domain.Monday, 540, 780), true},
		{"lunch at 30 minutes is valid", lunchEntry("t1", domain.Monday, 690), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := DurationInvalid(tc.entry, l); got != tc.want {
				t.Errorf("DurationInvalid() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestOutsideOperatingHours(t *testing.T) {
	l := testLookup(nil, nil, nil, domain.Monday)

	withinHours := abaEntry("c1", "t1", domain.Monday, 540, 600)
	if OutsideOperatingHours(withinHours, l) {
		t.Error("entry inside the operating window should not be flagged")
	}

	beforeOpen := abaEntry("c1", "t1", domain.Monday, 420, 480)
	if !OutsideOperatingHours(beforeOpen, l) {
		t.Error("entry before opening should be flagged")
	}

	offGrid := abaEntry("c1", "t1", domain.Monday, 541, 601)
	if !OutsideOperatingHours(offGrid, l) {
		t.Error("off-grid entry should be flagged")
	}
}

func TestSameClientBackToBack(t *testing.T) {
	existing := abaEntry("c1", "t1", domain.Monday, 540, 600)
	touching := abaEntry("c1", "t1", domain.Monday, 600, 660)
	gapped := abaEntry("c1", "t1", domain.Monday, 615, 675)

	if !SameClientBackToBack(touching, []domain.ScheduleEntry{existing}, nil) {
		t.Error("directly touching same client/therapist entries should be flagged")
	}
	if SameClientBackToBack(gapped, []domain.ScheduleEntry{existing}, nil) {
		t.Error("entries with a gap should not be flagged")
	}
}

func TestCanAdd_ABAOnWeekend(t *testing.T) {
	l := testLookup(nil, nil, nil, domain.Saturday)
	entry := abaEntry("c1", "t1", domain.Saturday, 540, 600)

	violations := CanAdd(entry, nil, l, nil)
	if !hasRule(violations, RuleABAOnWeekend) {
		t.Error("expected ABA_ON_WEEKEND violation")
	}
}

func clientPtr(id string) *domain.ClientID {
	c := domain.ClientID(id)
	return &c
}

func hasRule(violations []Violation, rule RuleID) bool {
	for _, v := range violations {
		if v.RuleID == rule {
			return true
		}
	}
	return false
}
