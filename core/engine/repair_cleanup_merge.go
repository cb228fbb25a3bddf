package engine

import "github.com/claritycare/roster-engine/core/domain"

// repairCleanupMerge drops degenerate entries (non-positive duration) and
// merges touching or overlapping entries that share a therapist, client,
// and kind into a single block, capped at Cfg.CleanupMergeMaxPasses passes
// so a pathological input can't loop forever.
func repairCleanupMerge(entries []domain.ScheduleEntry, l Lookup) []domain.ScheduleEntry {
	current := dropDegenerate(entries)

	for pass := 0; pass < l.Cfg.CleanupMergeMaxPasses; pass++ {
		merged, changed := mergeOnePass(current)
		current = merged
		if !changed {
			break
		}
	}
	return current
}

func dropDegenerate(entries []domain.ScheduleEntry) []domain.ScheduleEntry {
	out := make([]domain.ScheduleEntry, 0, len(entries))
	for _, e := range entries {
		if e.EndMinute > e.StartMinute {
			out = append(out, e)
		}
	}
	return out
}

func mergeOnePass(entries []domain.ScheduleEntry) ([]domain.ScheduleEntry, bool) {
	out := make([]domain.ScheduleEntry, 0, len(entries))
	used := make([]bool, len(entries))
	changed := false

	for i := range entries {
		if used[i] {
			continue
		}
		merged := entries[i]
		for j := i + 1; j < len(entries); j++ {
			if used[j] || !mergeableWith(merged, entries[j]) {
				continue
			}
			merged = mergeEntries(merged, entries[j])
			used[j] = true
			changed = true
		}
		out = append(out, merged)
	}
	return out, changed
}

func mergeableWith(a, b domain.ScheduleEntry) bool {
	if a.TherapistID != b.TherapistID || a.Kind != b.Kind || a.Weekday != b.Weekday {
		return false
	}
	if !a.SameClient(b) {
		return false
	}
	return touches(a.StartMinute, a.EndMinute, b.StartMinute, b.EndMinute) ||
		overlaps(a.StartMinute, a.EndMinute, b.StartMinute, b.EndMinute)
}

func mergeEntries(a, b domain.ScheduleEntry) domain.ScheduleEntry {
	out := a
	if b.StartMinute < out.StartMinute {
		out.StartMinute = b.StartMinute
	}
	if b.EndMinute > out.EndMinute {
		out.EndMinute = b.EndMinute
	}
	return out
}
