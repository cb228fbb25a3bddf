package engine

import "github.com/claritycare/roster-engine/core/domain"

// repairBackToBack fixes entries that SameClientBackToBack flags: it takes
// the first flagged entry in list order and pushes it forward one slot, and
// drops that entry if the shift would run past the operating window or the
// shifted entry fails CanAdd. It repeats until no entry is flagged.
func repairBackToBack(entries []domain.ScheduleEntry, l Lookup) []domain.ScheduleEntry {
	current := entries

	for {
		idx, ok := firstBackToBackViolation(current, l)
		if !ok {
			break
		}

		fixed, changed := fixBackToBack(current, idx, l)
		if !changed {
			current = removeAt(current, idx)
			continue
		}
		current = fixed
	}
	return current
}

func firstBackToBackViolation(entries []domain.ScheduleEntry, l Lookup) (int, bool) {
	for i, e := range entries {
		if SameClientBackToBack(e, entries, &e.ID) {
			return i, true
		}
	}
	return 0, false
}

func fixBackToBack(entries []domain.ScheduleEntry, idx int, l Lookup) ([]domain.ScheduleEntry, bool) {
	e := entries[idx]
	shifted := e
	shifted.StartMinute += l.Cfg.SlotMinutes
	shifted.EndMinute += l.Cfg.SlotMinutes
	if shifted.EndMinute > l.Cfg.OpEnd {
		return nil, false
	}

	rest := withoutIndex(entries, idx)
	if len(CanAdd(shifted, rest, l, &shifted.ID)) > 0 {
		return nil, false
	}

	out := make([]domain.ScheduleEntry, len(entries))
	copy(out, entries)
	out[idx] = shifted
	return out, true
}

func removeAt(entries []domain.ScheduleEntry, idx int) []domain.ScheduleEntry {
	return withoutIndex(entries, idx)
}
