package engine

import (
	"testing"

	"github.com/claritycare/roster-engine/core/domain"
)

func TestValidate_MedicaidCap(t *testing.T) {
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

	violations := Validate(entries, l)
	if !hasRule(violations, RuleMedicaidCapViolated) {
		t.Error("expected MEDICAID_CAP_VIOLATED with 4 distinct therapists over a 3-therapist cap")
	}
}

func TestValidate_MedicaidCapRespected(t *testing.T) {
	client := testClient("c1", withInsurance(domain.MDMedicaid))
	therapists := []domain.Therapist{
		testTherapist("t1", domain.RoleRBT, withQualifications(domain.MDMedicaid)),
		testTherapist("t2", domain.RoleRBT, withQualifications(domain.MDMedicaid)),
	}
	l := testLookup([]domain.Client{client}, therapists, nil, domain.Monday)

	entries := []domain.ScheduleEntry{
		abaEntry("c1", "t1", domain.Monday, 480, 540),
		abaEntry("c1", "t2", domain.Monday, 540, 600),
	}

	violations := Validate(entries, l)
	if hasRule(violations, RuleMedicaidCapViolated) {
		t.Error("did not expect a cap violation with only 2 distinct therapists")
	}
}

func TestValidate_MissingLunch(t *testing.T) {
	client := testClient("c1")
	therapist := testTherapist("t1", domain.RoleRBT)
	l := testLookup([]domain.Client{client}, []domain.Therapist{therapist}, nil, domain.Monday)

	entries := []domain.ScheduleEntry{
		abaEntry("c1", "t1", domain.Monday, 480, 780), // 5 hours, well above the billable floor
	}

	violations := Validate(entries, l)
	if !hasRule(violations, RuleMissingLunch) {
		t.Error("expected MISSING_LUNCH for a working therapist with no lunch")
	}
}

func TestValidate_LunchPresentSatisfiesInvariant(t *testing.T) {
	client := testClient("c1")
	therapist := testTherapist("t1", domain.RoleRBT)
	l := testLookup([]domain.Client{client}, []domain.Therapist{therapist}, nil, domain.Monday)

	entries := []domain.ScheduleEntry{
		abaEntry("c1", "t1", domain.Monday, 480, 690),
		lunchEntry("t1", domain.Monday, 690),
		abaEntry("c1", "t1", domain.Monday, 720, 780),
	}

	violations := Validate(entries, l)
	if hasRule(violations, RuleMissingLunch) || hasRule(violations, RuleMultipleLunch) {
		t.Error("did not expect a lunch violation with exactly one lunch present")
	}
}

func TestValidate_CoverageGap(t *testing.T) {
	client := testClient("c1")
	therapist := testTherapist("t1", domain.RoleRBT)
	l := testLookup([]domain.Client{client}, []domain.Therapist{therapist}, nil, domain.Monday)

	// Client only covered for the first hour of a 9-hour window: a gap remains.
	entries := []domain.ScheduleEntry{
		abaEntry("c1", "t1", domain.Monday, 480, 540),
	}

	violations := Validate(entries, l)
	if !hasRule(violations, RuleCoverageGap) {
		t.Error("expected COVERAGE_GAP for an uncovered interval")
	}
}

func TestValidate_BCBANoDirectTime(t *testing.T) {
	client := testClient("c1")
	bcba := testTherapist("t1", domain.RoleBCBA)
	l := testLookup([]domain.Client{client}, []domain.Therapist{bcba}, nil, domain.Monday)

	entries := []domain.ScheduleEntry{
		lunchEntry("t1", domain.Monday, 690),
		{ID: domain.NewScheduleEntryID(), TherapistID: "t1", Weekday: domain.Monday, StartMinute: 480, EndMinute: 540, Kind: domain.SessionKindAdminTime},
	}

	violations := Validate(entries, l)
	if !hasRule(violations, RuleBCBANoDirectTime) {
		t.Error("expected BCBA_NO_DIRECT_TIME when a BCBA has billable admin time but no client entry")
	}
}
