package engine

import (
	"math"
	"sort"

	"github.com/claritycare/roster-engine/core/domain"
)

// sigma is the adaptive scale factor used throughout §4.10's fitness
// table: it grows with the size of the problem (clients × therapists) so
// that the absolute penalty for a given violation count stays
// proportionate whether the day has three clients or three hundred.
func sigma(numClients, numTherapists int) float64 {
	product := float64(numClients * numTherapists)
	if product < 2 {
		product = 2
	}
	return math.Max(1, math.Log2(product))
}

// Evaluate scores an individual per §4.10: a weighted sum over capped
// violation counts plus a fragmentation term, all minimized. Fitness 0
// means a feasible, fair schedule; every term only ever adds, so a
// perfect schedule scores exactly 0 and anything else scores higher.
func Evaluate(ind *Individual, l Lookup) float64 {
	violations := Validate(ind.Entries, l)
	s := sigma(len(l.Clients), len(l.Therapists))

	counts := make(map[RuleID]int)
	for _, v := range violations {
		counts[v.RuleID]++
	}

	score := 0.0
	score += capped(counts[RuleTherapistConflict], 5) * 5000 * s
	score += capped(counts[RuleClientConflict], 5) * 5000 * s
	score += float64(counts[RuleSameClientBackToBack]) * 6000 * s
	score += capped(counts[RuleCredentialMismatch]+counts[RuleAHQualificationMissing], 5) * 4000 * s
	score += capped(counts[RuleCalloutOverlap], 5) * 4500 * s
	score += capped(counts[RuleMissingLunch]+counts[RuleMultipleLunch], len(l.Therapists)) * 2500 * s
	score += float64(counts[RuleLunchOutsideWindow]) * 200 * s
	score += float64(counts[RuleLunchStagger]) * 800 * s
	score += float64(counts[RuleDurationInvalid]) * 1000 * s
	score += float64(counts[RuleMedicaidCapViolated]) * 2000 * s
	score += float64(counts[RuleTeamAlignmentMismatch]) * 100 * s

	score += coverageGapPenalty(violations, len(l.Clients), s)
	score += fragmentationPenalty(ind.Entries, l)

	return score
}

// capped returns count, clamped to at most limit — the "cap N" qualifier
// attached to several rows of §4.10's weight table so one runaway rule
// can't dominate the whole score.
func capped(count, limit int) float64 {
	if limit > 0 && count > limit {
		count = limit
	}
	return float64(count)
}

// coverageGapPenalty implements the "coverage_gap" row: the gap count
// (already expressed in 15-minute slots by RuleCoverageGap, so divided by
// 4 to get hours) times 2000σ·(|clients|/10), capped at 2·|clients|
// worth of that per-hour weight so one catastrophically uncovered client
// can't swamp every other term.
func coverageGapPenalty(violations []Violation, numClients int, s float64) float64 {
	if numClients == 0 {
		return 0
	}
	gapSlots := 0
	for _, v := range violations {
		if v.RuleID == RuleCoverageGap {
			gapSlots++
		}
	}
	weight := 2000 * s * (float64(numClients) / 10)
	penalty := (float64(gapSlots) / 4) * weight
	ceiling := 2 * float64(numClients) * weight
	if penalty > ceiling {
		penalty = ceiling
	}
	return penalty
}

// fragmentationPenalty implements the "fragmentation" row: 10 points per
// idle minute between a therapist's non-lunch entries on the day, skipping
// the single hole that's occupied by that therapist's own lunch.
func fragmentationPenalty(entries []domain.ScheduleEntry, l Lookup) float64 {
	byTherapist := make(map[domain.TherapistID][]domain.ScheduleEntry)
	lunchOf := make(map[domain.TherapistID]interval)

	for _, e := range entries {
		if e.Weekday != l.Weekday {
			continue
		}
		if e.Kind == domain.SessionKindIndirect && e.ClientID == nil {
			lunchOf[e.TherapistID] = interval{Start: e.StartMinute, End: e.EndMinute}
			continue
		}
		byTherapist[e.TherapistID] = append(byTherapist[e.TherapistID], e)
	}

	idle := 0
	for id, list := range byTherapist {
		sort.Slice(list, func(i, j int) bool { return list[i].StartMinute < list[j].StartMinute })
		lunch, hasLunch := lunchOf[id]
		for i := 1; i < len(list); i++ {
			gapStart, gapEnd := list[i-1].EndMinute, list[i].StartMinute
			if gapEnd <= gapStart {
				continue
			}
			if hasLunch && gapStart == lunch.Start && gapEnd == lunch.End {
				continue
			}
			idle += gapEnd - gapStart
		}
	}
	return float64(idle) * 10
}
