package engine

import "github.com/claritycare/roster-engine/core/domain"

// Severity distinguishes hard constraint breaks (schedule is infeasible)
// from soft ones (fairness/quality penalties only).
type Severity string

const (
	SeverityHard Severity = "hard"
	SeveritySoft Severity = "soft"
)

// RuleID tags a Violation with the predicate that produced it.
type RuleID string

const (
	RuleTherapistConflict      RuleID = "THERAPIST_CONFLICT"
	RuleClientConflict         RuleID = "CLIENT_CONFLICT"
	RuleCalloutOverlap         RuleID = "CALLOUT_OVERLAP"
	RuleCredentialMismatch     RuleID = "CREDENTIAL_MISMATCH"
	RuleAHQualificationMissing RuleID = "AH_QUALIFICATION_MISSING"
	RuleDurationInvalid        RuleID = "DURATION_INVALID"
	RuleOutsideOperatingHours  RuleID = "OUTSIDE_OPERATING_HOURS"
	RuleSameClientBackToBack   RuleID = "SAME_CLIENT_BACK_TO_BACK"
	RuleMedicaidCapViolated    RuleID = "MEDICAID_CAP_VIOLATED"
	RuleMissingLunch           RuleID = "MISSING_LUNCH"
	RuleMultipleLunch          RuleID = "MULTIPLE_LUNCH"
	RuleLunchOutsideWindow     RuleID = "LUNCH_OUTSIDE_WINDOW"
	RuleLunchStagger           RuleID = "LUNCH_STAGGER"
	RuleABAOnWeekend           RuleID = "ABA_ON_WEEKEND"
	RuleBCBANoDirectTime       RuleID = "BCBA_NO_DIRECT_TIME"
	RuleTherapistOverloaded    RuleID = "THERAPIST_OVERLOADED"
	RuleCoverageGap            RuleID = "COVERAGE_GAP"
	RuleTeamAlignmentMismatch  RuleID = "TEAM_ALIGNMENT_MISMATCH"

	// Input-error rule ids (§7).
	RuleMissingDate   RuleID = "MISSING_DATE"
	RuleMissingData   RuleID = "MISSING_DATA"
	RuleUnknownEntity RuleID = "UNKNOWN_ENTITY"
)

// Violation is one tagged constraint break, either a hard infeasibility or a
// soft fairness/quality penalty.
type Violation struct {
	RuleID   RuleID                 `json:"ruleId"`
	Severity Severity               `json:"severity"`
	Message  string                 `json:"message"`
	EntryID  domain.ScheduleEntryID `json:"entryId,omitempty"`
	Detail   string                 `json:"detail,omitempty"`
}
