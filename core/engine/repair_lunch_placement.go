package engine

import (
	"sort"

	"github.com/claritycare/roster-engine/core/domain"
)

// repairLunchPlacement ensures every therapist with any billable work has
// exactly one 30-minute lunch inside the lunch window (§4.9 step 7). Each
// free candidate slot is scored on six terms — midpoint proximity, a
// natural pre/post idle gap, client-coverage redundancy, workload-split
// balance, team-lunch stagger, and landing inside the window's ideal core —
// and the top 5 are tried in score order. If none of the window's slots are
// actually free, a long ABA session is split to open one rather than
// evicting an entry outright.
func repairLunchPlacement(entries []domain.ScheduleEntry, l Lookup) []domain.ScheduleEntry {
	current := entries

	for _, therapist := range l.Therapists {
		lunches := lunchesFor(therapist.ID, current)
		if billableMinutesFor(therapist.ID, current) == 0 {
			for _, lunch := range lunches {
				current = removeEntry(current, lunch.ID)
			}
			continue
		}
		if len(lunches) > 0 {
			for _, extra := range lunches[1:] {
				current = removeEntry(current, extra.ID)
			}
			continue
		}

		candidates := scoredLunchSlots(therapist.ID, current, l)
		placed := false
		for _, start := range candidates {
			if !slotFree(therapist.ID, current, start, start+l.Cfg.LunchDuration) {
				continue
			}
			current = append(current, newLunchEntry(therapist.ID, l.Weekday, start, l.Cfg.LunchDuration))
			placed = true
			break
		}
		if placed {
			continue
		}

		if split, ok := splitABAForLunch(current, therapist.ID, l); ok {
			current = split
		}
	}
	return current
}

func lunchesFor(therapistID domain.TherapistID, entries []domain.ScheduleEntry) []domain.ScheduleEntry {
	var out []domain.ScheduleEntry
	for _, e := range entries {
		if e.TherapistID == therapistID && e.Kind == domain.SessionKindIndirect && e.ClientID == nil {
			out = append(out, e)
		}
	}
	return out
}

func removeEntry(entries []domain.ScheduleEntry, id domain.ScheduleEntryID) []domain.ScheduleEntry {
	out := make([]domain.ScheduleEntry, 0, len(entries))
	for _, e := range entries {
		if e.ID != id {
			out = append(out, e)
		}
	}
	return out
}

func newLunchEntry(therapistID domain.TherapistID, weekday domain.Weekday, start, duration int) domain.ScheduleEntry {
	return domain.ScheduleEntry{
		ID:          domain.NewScheduleEntryID(),
		ClientID:    nil,
		TherapistID: therapistID,
		Weekday:     weekday,
		StartMinute: start,
		EndMinute:   start + duration,
		Kind:        domain.SessionKindIndirect,
	}
}

func slotFree(therapistID domain.TherapistID, entries []domain.ScheduleEntry, start, end int) bool {
	for _, e := range entries {
		if e.TherapistID == therapistID && overlaps(start, end, e.StartMinute, e.EndMinute) {
			return false
		}
	}
	return true
}

// scoredLunchSlots ranks every free grid-aligned 30-minute window in
// [LunchStart, LunchEnd-LunchDuration] and returns up to the top 5 starts,
// best first, per §4.9 step 7's scoring terms.
func scoredLunchSlots(therapistID domain.TherapistID, entries []domain.ScheduleEntry, l Lookup) []int {
	type scored struct {
		start int
		score float64
	}
	var candidates []scored

	for start := l.Cfg.LunchStart; start <= l.Cfg.LunchEnd-l.Cfg.LunchDuration; start += l.Cfg.SlotMinutes {
		end := start + l.Cfg.LunchDuration
		if !slotFree(therapistID, entries, start, end) {
			continue
		}
		score := midpointProximityScore(start, l)
		if hasNaturalGap(therapistID, entries, start, end, l) {
			score += 50
		}
		score += coverageRedundancyBonus(therapistID, entries, start, end, l)
		score += workloadSplitScore(therapistID, entries, start)
		if teamLunchStaggered(therapistID, entries, start, l) {
			score -= 30
		}
		if inIdealWindow(start, l) {
			score += 20
		}
		candidates = append(candidates, scored{start: start, score: score})
	}

	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].score > candidates[j].score })

	top := 5
	if len(candidates) < top {
		top = len(candidates)
	}
	starts := make([]int, top)
	for i := 0; i < top; i++ {
		starts[i] = candidates[i].start
	}
	return starts
}

// midpointProximityScore scores 0-100, highest at the lunch window's
// midpoint and falling off linearly toward its edges.
func midpointProximityScore(start int, l Lookup) float64 {
	midpoint := (l.Cfg.LunchStart + l.Cfg.LunchEnd - l.Cfg.LunchDuration) / 2
	maxDist := (l.Cfg.LunchEnd - l.Cfg.LunchDuration - l.Cfg.LunchStart) / 2
	if maxDist <= 0 {
		return 100
	}
	dist := abs(start - midpoint)
	score := 100 * (1 - float64(dist)/float64(maxDist))
	if score < 0 {
		return 0
	}
	return score
}

// hasNaturalGap reports whether the therapist already has ≥30 idle minutes
// immediately before start or immediately after end, so the lunch slots
// into an existing hole instead of carving a fresh one.
func hasNaturalGap(therapistID domain.TherapistID, entries []domain.ScheduleEntry, start, end int, l Lookup) bool {
	var list []domain.ScheduleEntry
	for _, e := range entries {
		if e.TherapistID == therapistID && e.Kind != domain.SessionKindIndirect {
			list = append(list, e)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].StartMinute < list[j].StartMinute })

	prevEnd := l.Cfg.OpStart
	nextStart := l.Cfg.OpEnd
	for _, e := range list {
		if e.EndMinute <= start && e.EndMinute > prevEnd {
			prevEnd = e.EndMinute
		}
		if e.StartMinute >= end && e.StartMinute < nextStart {
			nextStart = e.StartMinute
		}
	}
	return (start-prevEnd) >= 30 || (nextStart-end) >= 30
}

// coverageRedundancyBonus rewards slots where the clients this therapist is
// otherwise serving around [start,end) remain covered by some other
// therapist during that window, so sending this therapist to lunch doesn't
// open a coverage gap.
func coverageRedundancyBonus(therapistID domain.TherapistID, entries []domain.ScheduleEntry, start, end int, l Lookup) float64 {
	clients := make(map[domain.ClientID]struct{})
	for _, e := range entries {
		if e.TherapistID == therapistID && e.ClientID != nil && overlaps(start-l.Cfg.SlotMinutes, end+l.Cfg.SlotMinutes, e.StartMinute, e.EndMinute) {
			clients[*e.ClientID] = struct{}{}
		}
	}
	if len(clients) == 0 {
		return 0
	}

	covered := 0
	for clientID := range clients {
		for _, e := range entries {
			if e.TherapistID == therapistID || e.ClientID == nil || *e.ClientID != clientID {
				continue
			}
			if overlaps(start, end, e.StartMinute, e.EndMinute) {
				covered++
				break
			}
		}
	}
	return (float64(covered) / float64(len(clients))) * 30
}

// workloadSplitScore scores 0-40, highest when the therapist's billable
// minutes are evenly split between before and after the candidate slot.
func workloadSplitScore(therapistID domain.TherapistID, entries []domain.ScheduleEntry, start int) float64 {
	before, after := 0, 0
	for _, e := range entries {
		if e.TherapistID != therapistID || !isBillable(e.Kind) {
			continue
		}
		if e.EndMinute <= start {
			before += e.Duration()
		} else if e.StartMinute >= start {
			after += e.Duration()
		}
	}
	total := before + after
	if total == 0 {
		return 40
	}
	imbalance := abs(before-after)
	score := 40 * (1 - float64(imbalance)/float64(total))
	if score < 0 {
		return 0
	}
	return score
}

// teamLunchStaggered reports whether at least half of the therapist's
// teammates already have a lunch starting within 30 minutes of start.
func teamLunchStaggered(therapistID domain.TherapistID, entries []domain.ScheduleEntry, start int, l Lookup) bool {
	therapist := l.therapist(therapistID)
	if therapist == nil || therapist.TeamID == nil {
		return false
	}
	teammates, staggered := 0, 0
	for id, other := range l.Therapists {
		if id == therapistID || other.TeamID == nil || *other.TeamID != *therapist.TeamID {
			continue
		}
		teammates++
		for _, lunch := range lunchesFor(id, entries) {
			if abs(lunch.StartMinute-start) < 30 {
				staggered++
				break
			}
		}
	}
	if teammates == 0 {
		return false
	}
	return float64(staggered)/float64(teammates) >= 0.5
}

// inIdealWindow reports whether start falls in the middle half of the
// lunch window, trimming 15 minutes off each edge of the candidate range.
func inIdealWindow(start int, l Lookup) bool {
	lo := l.Cfg.LunchStart + 15
	hi := l.Cfg.LunchEnd - l.Cfg.LunchDuration - 15
	return start >= lo && start <= hi
}

// splitABAForLunch carves a 30-minute lunch hole out of a ≥90-minute ABA
// session when no free window exists, rather than evicting an entry
// outright. The split point is chosen so any remaining side of the session
// stays at or above the minimum ABA duration.
func splitABAForLunch(entries []domain.ScheduleEntry, therapistID domain.TherapistID, l Lookup) ([]domain.ScheduleEntry, bool) {
	for i, e := range entries {
		if e.TherapistID != therapistID || e.Kind != domain.SessionKindABA || e.Duration() < 90 {
			continue
		}

		lo := e.StartMinute
		if l.Cfg.LunchStart > lo {
			lo = l.Cfg.LunchStart
		}
		hi := e.EndMinute - l.Cfg.LunchDuration
		if l.Cfg.LunchEnd-l.Cfg.LunchDuration < hi {
			hi = l.Cfg.LunchEnd - l.Cfg.LunchDuration
		}

		for start := lo; start <= hi; start += l.Cfg.SlotMinutes {
			before := start - e.StartMinute
			after := e.EndMinute - (start + l.Cfg.LunchDuration)
			if before > 0 && before < l.Cfg.ABAMinDuration {
				continue
			}
			if after > 0 && after < l.Cfg.ABAMinDuration {
				continue
			}

			out := make([]domain.ScheduleEntry, 0, len(entries)+2)
			out = append(out, entries[:i]...)
			if before > 0 {
				head := e.Clone()
				head.EndMinute = start
				out = append(out, head)
			}
			out = append(out, newLunchEntry(therapistID, l.Weekday, start, l.Cfg.LunchDuration))
			if after > 0 {
				tail := e.Clone()
				tail.ID = domain.NewScheduleEntryID()
				tail.StartMinute = start + l.Cfg.LunchDuration
				out = append(out, tail)
			}
			out = append(out, entries[i+1:]...)
			return out, true
		}
	}
	return entries, false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
