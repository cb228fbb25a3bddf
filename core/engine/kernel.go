package engine

import "github.com/claritycare/roster-engine/core/domain"

// The constraint kernel: pure predicates over a candidate entry and a
// partial schedule (§4.2). Each predicate ignores at most one entry id,
// matching the spec's re-check-an-edit use case.

// TherapistConflict reports whether another entry on the same weekday with
// the same therapist overlaps E's range.
func TherapistConflict(e domain.ScheduleEntry, schedule []domain.ScheduleEntry, ignoreID *domain.ScheduleEntryID) bool {
	for _, other := range schedule {
		if other.ID == e.ID || (ignoreID != nil && other.ID == *ignoreID) {
			continue
		}
		if other.Weekday != e.Weekday || other.TherapistID != e.TherapistID {
			continue
		}
		if overlaps(e.StartMinute, e.EndMinute, other.StartMinute, other.EndMinute) {
			return true
		}
	}
	return false
}

// ClientConflict reports whether another entry on the same weekday with the
// same non-nil client overlaps E's range.
func ClientConflict(e domain.ScheduleEntry, schedule []domain.ScheduleEntry, ignoreID *domain.ScheduleEntryID) bool {
	if e.ClientID == nil {
		return false
	}
	for _, other := range schedule {
		if other.ID == e.ID || (ignoreID != nil && other.ID == *ignoreID) {
			continue
		}
		if other.Weekday != e.Weekday || !e.SameClient(other) {
			continue
		}
		if overlaps(e.StartMinute, e.EndMinute, other.StartMinute, other.EndMinute) {
			return true
		}
	}
	return false
}

// CalloutConflict reports whether any callout covering date T, targeting
// E's therapist or client, has an intra-day window overlapping E's range.
func CalloutConflict(e domain.ScheduleEntry, l Lookup) bool {
	for _, c := range l.Callouts {
		if !c.CoversDate(l.Date) {
			continue
		}
		if !c.Matches(e.TherapistID, e.ClientID) {
			continue
		}
		if overlaps(e.StartMinute, e.EndMinute, c.TimeWindow.Start, c.TimeWindow.End) {
			return true
		}
	}
	return false
}

// CredentialMismatch reports whether the client's insurance requirements
// are not a subset of the therapist's qualifications.
func CredentialMismatch(e domain.ScheduleEntry, l Lookup) bool {
	client := l.client(e.ClientID)
	if client == nil {
		return false
	}
	therapist := l.therapist(e.TherapistID)
	if therapist == nil {
		return true
	}
	return !therapist.MeetsRequirements(client.InsuranceRequirements)
}

// AHQualificationMissing reports whether an allied-health entry's therapist
// lacks the kind capability or its certificate qualification.
func AHQualificationMissing(e domain.ScheduleEntry, l Lookup) bool {
	if !e.Kind.IsAlliedHealth() {
		return false
	}
	therapist := l.therapist(e.TherapistID)
	if therapist == nil {
		return true
	}
	return !therapist.CanDeliver(e.Kind.AlliedHealthKind())
}

// DurationInvalid reports a rule 3–5 violation: ABA entries must be
// [60,180] minutes, lunches exactly 30, and allied-health entries must
// match their need's duration exactly and be strictly positive.
func DurationInvalid(e domain.ScheduleEntry, l Lookup) bool {
	d := e.Duration()
	switch e.Kind {
	case domain.SessionKindABA:
		return d < l.Cfg.ABAMinDuration || d > l.Cfg.ABAMaxDuration
	case domain.SessionKindIndirect:
		return d != l.Cfg.LunchDuration
	case domain.SessionKindAHOT, domain.SessionKindAHSLP:
		if d <= 0 {
			return true
		}
		client := l.client(e.ClientID)
		if client == nil {
			return false
		}
		for _, need := range client.AlliedHealthNeeds {
			if need.Kind == e.Kind.AlliedHealthKind() {
				return d != need.DurationMinutes
			}
		}
		return false
	default:
		return d <= 0
	}
}

// OutsideOperatingHours reports a rule-1 violation. Client-facing kinds
// (ABA, allied health, lunch) must lie within [OpStart, OpEnd]; AdminTime is
// staff-only and is instead checked against the wider [StaffStart, StaffEnd]
// staff-availability window of §6. All kinds must land on the 15-minute grid.
func OutsideOperatingHours(e domain.ScheduleEntry, l Lookup) bool {
	if !l.Cfg.OnGrid(e.StartMinute) || !l.Cfg.OnGrid(e.EndMinute) {
		return true
	}
	if e.StartMinute >= e.EndMinute {
		return true
	}
	if e.Kind == domain.SessionKindAdminTime {
		return e.StartMinute < l.Cfg.StaffStart || e.EndMinute > l.Cfg.StaffEnd
	}
	return e.StartMinute < l.Cfg.OpStart || e.EndMinute > l.Cfg.OpEnd
}

// SameClientBackToBack reports whether another entry shares (therapist,
// client, weekday) and directly touches E — invariant 8.
func SameClientBackToBack(e domain.ScheduleEntry, schedule []domain.ScheduleEntry, ignoreID *domain.ScheduleEntryID) bool {
	if e.ClientID == nil {
		return false
	}
	for _, other := range schedule {
		if other.ID == e.ID || (ignoreID != nil && other.ID == *ignoreID) {
			continue
		}
		if other.Weekday != e.Weekday || other.TherapistID != e.TherapistID || !e.SameClient(other) {
			continue
		}
		if touches(e.StartMinute, e.EndMinute, other.StartMinute, other.EndMinute) {
			return true
		}
	}
	return false
}

// CanAdd aggregates the kernel against entry E and the partial schedule,
// returning every violation tagged hard or soft. An empty result means E
// may be committed.
func CanAdd(e domain.ScheduleEntry, schedule []domain.ScheduleEntry, l Lookup, ignoreID *domain.ScheduleEntryID) []Violation {
	var violations []Violation

	if TherapistConflict(e, schedule, ignoreID) {
		violations = append(violations, Violation{RuleID: RuleTherapistConflict, Severity: SeverityHard, Message: "therapist is double-booked", EntryID: e.ID})
	}
	if ClientConflict(e, schedule, ignoreID) {
		violations = append(violations, Violation{RuleID: RuleClientConflict, Severity: SeverityHard, Message: "client is double-booked", EntryID: e.ID})
	}
	if CalloutConflict(e, l) {
		violations = append(violations, Violation{RuleID: RuleCalloutOverlap, Severity: SeverityHard, Message: "entry overlaps a callout", EntryID: e.ID})
	}
	if e.ClientID != nil && CredentialMismatch(e, l) {
		violations = append(violations, Violation{RuleID: RuleCredentialMismatch, Severity: SeverityHard, Message: "therapist lacks required insurance qualification", EntryID: e.ID})
	}
	if AHQualificationMissing(e, l) {
		violations = append(violations, Violation{RuleID: RuleAHQualificationMissing, Severity: SeverityHard, Message: "therapist lacks allied-health qualification", EntryID: e.ID})
	}
	if DurationInvalid(e, l) {
		violations = append(violations, Violation{RuleID: RuleDurationInvalid, Severity: SeverityHard, Message: "entry duration is invalid", EntryID: e.ID})
	}
	if OutsideOperatingHours(e, l) {
		violations = append(violations, Violation{RuleID: RuleOutsideOperatingHours, Severity: SeverityHard, Message: "entry falls outside operating hours or off-grid", EntryID: e.ID})
	}
	if SameClientBackToBack(e, schedule, ignoreID) {
		violations = append(violations, Violation{RuleID: RuleSameClientBackToBack, Severity: SeverityHard, Message: "same client back-to-back with no gap", EntryID: e.ID})
	}
	if e.Weekday.IsWeekend() && e.Kind == domain.SessionKindABA {
		violations = append(violations, Violation{RuleID: RuleABAOnWeekend, Severity: SeverityHard, Message: "ABA entry on a weekend", EntryID: e.ID})
	}

	return violations
}

// Valid reports whether CanAdd returns no violations.
func Valid(e domain.ScheduleEntry, schedule []domain.ScheduleEntry, l Lookup, ignoreID *domain.ScheduleEntryID) bool {
	return len(CanAdd(e, schedule, l, ignoreID)) == 0
}
