package engine

import (
	"testing"

	"github.com/claritycare/roster-engine/core/domain"
)

// Monday, matching testMonday in helpers_test.go.
var runMonday = testMonday

// Saturday the same week as runMonday.
var runSaturday = testMonday.AddDate(0, 0, 5)

func TestRun_S1_FullDayCoverageNoGapsOneLunchEach(t *testing.T) {
	t1 := testTherapist("t1", domain.RoleRBT, withQualifications(domain.MDMedicaid))
	t2 := testTherapist("t2", domain.RoleBCBA, withQualifications(domain.MDMedicaid))
	c1 := testClient("c1", withInsurance(domain.MDMedicaid))

	result := Run(RunInput{
		Date:       runMonday,
		Clients:    []domain.Client{c1},
		Therapists: []domain.Therapist{t1, t2},
	})

	if result.Status != StatusOK {
		t.Fatalf("expected status OK, got %s", result.Status)
	}

	gaps := CoverageGaps("c1", result.Schedule, nil, runMonday, domain.Monday, DefaultConfig())
	if len(gaps) != 0 {
		t.Errorf("expected no coverage gaps for c1, found %d", len(gaps))
	}
	if hasRuleInResult(result, RuleCoverageGap) {
		t.Error("did not expect a COVERAGE_GAP violation")
	}

	for _, therapistID := range []domain.TherapistID{"t1", "t2"} {
		if billableMinutesFor(therapistID, result.Schedule) > 0 && len(lunchesFor(therapistID, result.Schedule)) != 1 {
			t.Errorf("expected exactly one lunch for working therapist %s", therapistID)
		}
	}
}

func TestRun_S2_MedicaidCapRespectedAcrossFourClients(t *testing.T) {
	therapists := []domain.Therapist{
		testTherapist("t1", domain.RoleRBT, withQualifications(domain.MDMedicaid)),
		testTherapist("t2", domain.RoleRBT, withQualifications(domain.MDMedicaid)),
		testTherapist("t3", domain.RoleBCBA, withQualifications(domain.MDMedicaid)),
	}
	clients := []domain.Client{
		testClient("c1", withInsurance(domain.MDMedicaid)),
		testClient("c2", withInsurance(domain.MDMedicaid)),
		testClient("c3", withInsurance(domain.MDMedicaid)),
		testClient("c4", withInsurance(domain.MDMedicaid)),
	}

	result := Run(RunInput{
		Date:       runMonday,
		Clients:    clients,
		Therapists: therapists,
	})

	if result.Status != StatusOK {
		t.Fatalf("expected status OK, got %s", result.Status)
	}
	if hasRuleInResult(result, RuleMedicaidCapViolated) {
		t.Error("did not expect a Medicaid cap violation with only 3 therapists available")
	}
}

func TestRun_S3_CalloutBlocksTherapistWindow(t *testing.T) {
	t1 := testTherapist("t1", domain.RoleRBT, withQualifications(domain.MDMedicaid))
	c1 := testClient("c1", withInsurance(domain.MDMedicaid))

	callout := domain.Callout{
		ID:         domain.NewCalloutID(),
		EntityKind: domain.EntityKindTherapist,
		EntityID:   "t1",
		DateStart:  runMonday,
		DateEnd:    runMonday,
		TimeWindow: domain.TimeWindow{Start: 720, End: 750}, // 12:00-12:30
	}

	result := Run(RunInput{
		Date:       runMonday,
		Clients:    []domain.Client{c1},
		Therapists: []domain.Therapist{t1},
		Callouts:   []domain.Callout{callout},
	})

	if result.Status != StatusOK {
		t.Fatalf("expected status OK, got %s", result.Status)
	}
	for _, e := range result.Schedule {
		if e.TherapistID != "t1" {
			continue
		}
		if overlaps(e.StartMinute, e.EndMinute, 720, 750) {
			t.Errorf("entry %+v overlaps the callout window", e)
		}
	}
}

func TestRun_S4_AlliedHealthPlacedInPreferredWindow(t *testing.T) {
	need := domain.AlliedHealthNeed{
		Kind:             domain.AlliedHealthOT,
		FrequencyPerWeek: 1,
		DurationMinutes:  45,
		PreferredWindow:  &domain.TimeWindow{Start: 540, End: 600}, // 09:00-10:00
	}
	c1 := testClient("c1", withAHNeed(need))
	t1 := testTherapist("t1", domain.RoleRBT, withAlliedHealth(domain.AlliedHealthOT))

	result := Run(RunInput{
		Date:       runMonday,
		Clients:    []domain.Client{c1},
		Therapists: []domain.Therapist{t1},
	})

	if result.Status != StatusOK {
		t.Fatalf("expected status OK, got %s", result.Status)
	}

	count := 0
	for _, e := range result.Schedule {
		if e.Kind != domain.SessionKindAHOT || e.ClientID == nil || *e.ClientID != "c1" {
			continue
		}
		count++
		if e.Duration() != 45 {
			t.Errorf("AH entry duration = %d, want 45", e.Duration())
		}
		if e.StartMinute < 540 || e.EndMinute > 600 {
			t.Errorf("AH entry [%d,%d) outside preferred window [540,600)", e.StartMinute, e.EndMinute)
		}
	}
	if count != 1 {
		t.Errorf("expected exactly one AH_OT entry for c1, found %d", count)
	}
}

func TestRun_S5_NoBackToBackInFinalSchedule(t *testing.T) {
	t1 := testTherapist("t1", domain.RoleRBT)
	c1 := testClient("c1")

	result := Run(RunInput{
		Date:       runMonday,
		Clients:    []domain.Client{c1},
		Therapists: []domain.Therapist{t1},
	})

	if result.Status != StatusOK {
		t.Fatalf("expected status OK, got %s", result.Status)
	}
	if hasRuleInResult(result, RuleSameClientBackToBack) {
		t.Error("did not expect a SAME_CLIENT_BACK_TO_BACK violation in the final schedule")
	}
}

func TestRun_S6_NoABAOnSaturday(t *testing.T) {
	t1 := testTherapist("t1", domain.RoleRBT)
	c1 := testClient("c1")

	result := Run(RunInput{
		Date:       runSaturday,
		Clients:    []domain.Client{c1},
		Therapists: []domain.Therapist{t1},
	})

	if result.Status != StatusOK {
		t.Fatalf("expected status OK, got %s", result.Status)
	}
	for _, e := range result.Schedule {
		if e.Kind == domain.SessionKindABA {
			t.Errorf("unexpected ABA entry on a Saturday: %+v", e)
		}
	}
	if hasRuleInResult(result, RuleABAOnWeekend) {
		t.Error("did not expect an ABA_ON_WEEKEND violation")
	}
}

func TestRun_MissingDate(t *testing.T) {
	result := Run(RunInput{
		Clients:    []domain.Client{testClient("c1")},
		Therapists: []domain.Therapist{testTherapist("t1", domain.RoleRBT)},
	})
	if result.Status != StatusMissingDate {
		t.Errorf("Status = %s, want %s", result.Status, StatusMissingDate)
	}
}

func TestRun_MissingData(t *testing.T) {
	result := Run(RunInput{
		Date:    runMonday,
		Clients: nil,
	})
	if result.Status != StatusMissingData {
		t.Errorf("Status = %s, want %s", result.Status, StatusMissingData)
	}
}

func TestRun_UnknownEntityInCallout(t *testing.T) {
	callout := domain.Callout{
		ID:         domain.NewCalloutID(),
		EntityKind: domain.EntityKindTherapist,
		EntityID:   "ghost",
		DateStart:  runMonday,
		DateEnd:    runMonday,
		TimeWindow: domain.TimeWindow{Start: 540, End: 600},
	}
	result := Run(RunInput{
		Date:       runMonday,
		Clients:    []domain.Client{testClient("c1")},
		Therapists: []domain.Therapist{testTherapist("t1", domain.RoleRBT)},
		Callouts:   []domain.Callout{callout},
	})
	if result.Status != StatusUnknownEntity {
		t.Errorf("Status = %s, want %s", result.Status, StatusUnknownEntity)
	}
}

func TestRun_IsDeterministicWithSameSeed(t *testing.T) {
	seed := uint64(42)
	input := RunInput{
		Date:       runMonday,
		Clients:    []domain.Client{testClient("c1")},
		Therapists: []domain.Therapist{testTherapist("t1", domain.RoleRBT)},
		Seed:       &seed,
	}

	first := Run(input)
	second := Run(input)

	if len(first.Schedule) != len(second.Schedule) {
		t.Fatalf("entry counts differ across runs with the same seed: %d vs %d", len(first.Schedule), len(second.Schedule))
	}
	if first.BestFitness != second.BestFitness {
		t.Errorf("fitness differs across runs with the same seed: %v vs %v", first.BestFitness, second.BestFitness)
	}
}

func hasRuleInResult(result Result, rule RuleID) bool {
	return hasRule(result.Violations, rule)
}
