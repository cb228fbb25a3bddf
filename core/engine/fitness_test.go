package engine

import (
	"testing"

	"github.com/claritycare/roster-engine/core/domain"
)

func TestEvaluate_LunchBreakScoresBetterThanBackToBackWithoutLunch(t *testing.T) {
	client := testClient("c1")
	therapist := testTherapist("t1", domain.RoleRBT)
	l := testLookup([]domain.Client{client}, []domain.Therapist{therapist}, nil, domain.Monday)

	clean := NewIndividual([]domain.ScheduleEntry{
		abaEntry("c1", "t1", domain.Monday, 480, 690),
		lunchEntry("t1", domain.Monday, 690),
		abaEntry("c1", "t1", domain.Monday, 720, 1020),
	})
	broken := NewIndividual([]domain.ScheduleEntry{
		abaEntry("c1", "t1", domain.Monday, 480, 690),
		abaEntry("c1", "t1", domain.Monday, 690, 900), // touches the first entry (same-client back-to-back), and no lunch
	})

	cleanScore := Evaluate(clean, l)
	brokenScore := Evaluate(broken, l)

	if cleanScore >= brokenScore {
		t.Errorf("expected the schedule with a lunch break to score lower than back-to-back entries without one: clean=%v broken=%v", cleanScore, brokenScore)
	}
}

func TestSigma_GrowsWithProblemSize(t *testing.T) {
	small := sigma(2, 2)
	large := sigma(50, 50)
	if large <= small {
		t.Errorf("expected sigma to grow with problem size: small=%v large=%v", small, large)
	}
	if sigma(0, 0) < 1 {
		t.Error("sigma should never drop below its floor of 1")
	}
}

func TestCoverageGapPenalty_CapsAtTwicePerClientWeight(t *testing.T) {
	numClients := 3
	s := sigma(numClients, 3)
	weight := 2000 * s * (float64(numClients) / 10)
	ceiling := 2 * float64(numClients) * weight

	violations := make([]Violation, 0, 400)
	for i := 0; i < 400; i++ {
		violations = append(violations, Violation{RuleID: RuleCoverageGap})
	}

	penalty := coverageGapPenalty(violations, numClients, s)
	if penalty > ceiling+0.001 {
		t.Errorf("coverage gap penalty %v exceeded its cap %v", penalty, ceiling)
	}
}
