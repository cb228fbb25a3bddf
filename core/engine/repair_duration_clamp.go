package engine

import "github.com/claritycare/roster-engine/core/domain"

// repairDurationClamp snaps ABA entries back into
// [ABAMinDuration, ABAMaxDuration] by trimming or extending the end
// minute, and drops any entry that can't be clamped onto the slot grid
// without running past the operating window.
func repairDurationClamp(entries []domain.ScheduleEntry, l Lookup) []domain.ScheduleEntry {
	out := make([]domain.ScheduleEntry, 0, len(entries))
	for _, e := range entries {
		if e.Kind != domain.SessionKindABA {
			out = append(out, e)
			continue
		}

		duration := e.Duration()
		switch {
		case duration < l.Cfg.ABAMinDuration:
			e.EndMinute = e.StartMinute + l.Cfg.ABAMinDuration
		case duration > l.Cfg.ABAMaxDuration:
			e.EndMinute = e.StartMinute + l.Cfg.ABAMaxDuration
		}

		if e.EndMinute > l.Cfg.OpEnd {
			e.StartMinute = l.Cfg.OpEnd - (e.EndMinute - e.StartMinute)
			e.EndMinute = l.Cfg.OpEnd
		}
		if e.StartMinute < l.Cfg.OpStart {
			continue
		}
		out = append(out, e)
	}
	return out
}
