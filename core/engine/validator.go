package engine

import (
	"fmt"

	"github.com/claritycare/roster-engine/core/domain"
)

// Validate runs the constraint kernel on every entry, then the aggregate
// checks of §4.3: Medicaid cap, lunch presence/window, BCBA direct-time,
// therapist overload, and the client coverage-gap scan. It returns a
// deduplicated, tagged violation list.
func Validate(entries []domain.ScheduleEntry, l Lookup) []Violation {
	seen := make(map[string]struct{})
	var violations []Violation
	add := func(v Violation) {
		key := fmt.Sprintf("%s|%s|%s", v.RuleID, v.EntryID, v.Detail)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		violations = append(violations, v)
	}

	for _, e := range entries {
		for _, v := range CanAdd(e, entries, l, &e.ID) {
			add(v)
		}
	}

	addMedicaidCapViolations(entries, l, add)
	addLunchViolations(entries, l, add)
	addLunchStaggerViolations(entries, l, add)
	addBCBAAndOverloadViolations(entries, l, add)
	addCoverageGapViolations(entries, l, add)
	addTeamAlignmentViolations(entries, l, add)

	return violations
}

// addMedicaidCapViolations enforces invariant 9: at most
// Cfg.MedicaidCapTherapists distinct therapists per MD Medicaid client.
func addMedicaidCapViolations(entries []domain.ScheduleEntry, l Lookup, add func(Violation)) {
	byClient := make(map[domain.ClientID]map[domain.TherapistID]struct{})
	for _, e := range entries {
		if e.ClientID == nil {
			continue
		}
		client := l.client(e.ClientID)
		if client == nil || !client.RequiresMedicaidCap() {
			continue
		}
		set, ok := byClient[*e.ClientID]
		if !ok {
			set = make(map[domain.TherapistID]struct{})
			byClient[*e.ClientID] = set
		}
		set[e.TherapistID] = struct{}{}
	}
	for clientID, set := range byClient {
		if len(set) > l.Cfg.MedicaidCapTherapists {
			add(Violation{
				RuleID:   RuleMedicaidCapViolated,
				Severity: SeverityHard,
				Message:  "client exceeds the MD Medicaid therapist cap",
				Detail:   string(clientID),
			})
		}
	}
}

// isBillable reports whether a session kind counts toward a therapist's
// workload (everything except lunch).
func isBillable(k domain.SessionKind) bool {
	return k != domain.SessionKindIndirect
}

// addLunchViolations enforces invariant 10: exactly one lunch, in window,
// per therapist with billable work.
func addLunchViolations(entries []domain.ScheduleEntry, l Lookup, add func(Violation)) {
	billableMinutes := make(map[domain.TherapistID]int)
	lunches := make(map[domain.TherapistID][]domain.ScheduleEntry)

	for _, e := range entries {
		if e.Kind == domain.SessionKindIndirect && e.ClientID == nil {
			lunches[e.TherapistID] = append(lunches[e.TherapistID], e)
			continue
		}
		if isBillable(e.Kind) {
			billableMinutes[e.TherapistID] += e.Duration()
		}
	}

	working := make(map[domain.TherapistID]struct{})
	for id, minutes := range billableMinutes {
		if minutes > 0 {
			working[id] = struct{}{}
		}
	}

	for id := range working {
		lunchEntries := lunches[id]
		switch {
		case len(lunchEntries) == 0:
			add(Violation{RuleID: RuleMissingLunch, Severity: SeverityHard, Message: "working therapist has no lunch", Detail: string(id)})
		case len(lunchEntries) > 1:
			add(Violation{RuleID: RuleMultipleLunch, Severity: SeverityHard, Message: "therapist has more than one lunch", Detail: string(id)})
		}
		for _, lunch := range lunchEntries {
			if lunch.StartMinute < l.Cfg.LunchStart || lunch.StartMinute > l.Cfg.LunchEnd-l.Cfg.LunchDuration {
				add(Violation{RuleID: RuleLunchOutsideWindow, Severity: SeveritySoft, Message: "lunch starts outside the allowed window", EntryID: lunch.ID, Detail: string(id)})
			}
		}
	}

	for id, lunchEntries := range lunches {
		if _, ok := working[id]; !ok && len(lunchEntries) > 0 {
			add(Violation{RuleID: RuleMissingLunch, Severity: SeverityHard, Message: "lunch booked for a therapist with no billable work", Detail: string(id)})
		}
	}
}

// addLunchStaggerViolations emits the §4.10 "lunch_stagger" soft penalty:
// one violation per pair of same-team therapists whose lunches start within
// 30 minutes of each other, so a team doesn't empty the floor all at once.
func addLunchStaggerViolations(entries []domain.ScheduleEntry, l Lookup, add func(Violation)) {
	type lunch struct {
		therapistID domain.TherapistID
		teamID      domain.TeamID
		start       int
	}
	var lunches []lunch
	for _, e := range entries {
		if e.Kind != domain.SessionKindIndirect || e.ClientID != nil {
			continue
		}
		therapist := l.therapist(e.TherapistID)
		if therapist == nil || therapist.TeamID == nil {
			continue
		}
		lunches = append(lunches, lunch{therapistID: e.TherapistID, teamID: *therapist.TeamID, start: e.StartMinute})
	}

	for i := 0; i < len(lunches); i++ {
		for j := i + 1; j < len(lunches); j++ {
			if lunches[i].teamID != lunches[j].teamID {
				continue
			}
			if abs(lunches[i].start-lunches[j].start) < 30 {
				add(Violation{
					RuleID:   RuleLunchStagger,
					Severity: SeveritySoft,
					Message:  "teammates lunch within 30 minutes of each other",
					Detail:   fmt.Sprintf("%s,%s", lunches[i].therapistID, lunches[j].therapistID),
				})
			}
		}
	}
}

// addTeamAlignmentViolations emits the §4.10 "team_alignment_mismatch" soft
// penalty: one violation per client-bearing entry whose therapist isn't on
// the client's team, for every client and therapist that has a team at all.
func addTeamAlignmentViolations(entries []domain.ScheduleEntry, l Lookup, add func(Violation)) {
	for _, e := range entries {
		if e.ClientID == nil {
			continue
		}
		client := l.client(e.ClientID)
		therapist := l.therapist(e.TherapistID)
		if client == nil || therapist == nil || client.TeamID == nil || therapist.TeamID == nil {
			continue
		}
		if *client.TeamID != *therapist.TeamID {
			add(Violation{
				RuleID:   RuleTeamAlignmentMismatch,
				Severity: SeveritySoft,
				Message:  "entry crosses team boundaries",
				EntryID:  e.ID,
			})
		}
	}
}

// addBCBAAndOverloadViolations emits the two soft validator checks of §4.3:
// a BCBA with no direct client time, and a therapist over the soft billable
// session cap.
func addBCBAAndOverloadViolations(entries []domain.ScheduleEntry, l Lookup, add func(Violation)) {
	directTime := make(map[domain.TherapistID]bool)
	billableSessions := make(map[domain.TherapistID]int)

	for _, e := range entries {
		if !isBillable(e.Kind) {
			continue
		}
		billableSessions[e.TherapistID]++
		if e.ClientID != nil {
			directTime[e.TherapistID] = true
		}
	}

	for id, therapist := range l.Therapists {
		if therapist.Role.IsBCBA() {
			if _, appears := billableSessions[id]; appears && !directTime[id] {
				add(Violation{RuleID: RuleBCBANoDirectTime, Severity: SeveritySoft, Message: "BCBA has no direct client time", Detail: string(id)})
			}
		}
	}

	for id, count := range billableSessions {
		if count > l.Cfg.SoftMaxBillableSessions {
			add(Violation{RuleID: RuleTherapistOverloaded, Severity: SeveritySoft, Message: "therapist exceeds the soft billable session cap", Detail: string(id)})
		}
	}
}

// addCoverageGapViolations runs the gap scan of §4.4 for every client and
// emits one violation per uncovered 15-minute slot.
func addCoverageGapViolations(entries []domain.ScheduleEntry, l Lookup, add func(Violation)) {
	if l.Weekday.IsWeekend() {
		return
	}
	for id := range l.Clients {
		gaps := CoverageGaps(id, entries, l.Callouts, l.Date, l.Weekday, l.Cfg)
		for _, g := range gaps {
			step := l.Cfg.SlotMinutes
			if step <= 0 {
				step = g.End - g.Start
			}
			for s := g.Start; s < g.End; s += step {
				end := s + step
				if end > g.End {
					end = g.End
				}
				add(Violation{
					RuleID:   RuleCoverageGap,
					Severity: SeverityHard,
					Message:  "client has an uncovered interval during operating hours",
					Detail:   fmt.Sprintf("%s:%d-%d", id, s, end),
				})
			}
		}
	}
}
