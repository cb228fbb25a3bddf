package engine

import (
	"time"

	"github.com/claritycare/roster-engine/core/domain"
)

// CoverageGaps computes, per client per weekday, the residual 15-minute
// intervals of [OpStart, OpEnd] not covered by a client-targeted callout and
// not covered by any of the client's scheduled entries (§4.4). Weekends are
// always gap-free by definition — ABA never runs on a weekend.
func CoverageGaps(clientID domain.ClientID, entries []domain.ScheduleEntry, callouts []domain.Callout, date time.Time, weekday domain.Weekday, cfg Config) []interval {
	if weekday.IsWeekend() {
		return nil
	}

	base := interval{Start: cfg.OpStart, End: cfg.OpEnd}
	var cuts []interval

	for _, c := range callouts {
		if c.EntityKind != domain.EntityKindClient || c.EntityID != string(clientID) {
			continue
		}
		if !c.CoversDate(date) {
			continue
		}
		start, end := c.TimeWindow.Start, c.TimeWindow.End
		if start < cfg.OpStart {
			start = cfg.OpStart
		}
		if end > cfg.OpEnd {
			end = cfg.OpEnd
		}
		if end > start {
			cuts = append(cuts, interval{Start: start, End: end})
		}
	}

	for _, e := range entries {
		if e.ClientID == nil || *e.ClientID != clientID || e.Weekday != weekday {
			continue
		}
		cuts = append(cuts, interval{Start: e.StartMinute, End: e.EndMinute})
	}

	return subtractAll(base, cuts)
}

// gapSlotCount returns the total number of 15-minute slots spanned by a set
// of gap intervals.
func gapSlotCount(gaps []interval, cfg Config) int {
	total := 0
	for _, g := range gaps {
		total += (g.End - g.Start) / cfg.SlotMinutes
	}
	return total
}
