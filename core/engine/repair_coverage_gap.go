package engine

import (
	"math/rand/v2"

	"github.com/claritycare/roster-engine/core/domain"
)

// repairCoverageGap runs the §4.4 gap scan per client and tries to fill
// each residual interval with a new ABA entry assigned to a random
// eligible, available therapist, clamped to [ABAMinDuration,
// ABAMaxDuration]. A gap that can't find a willing therapist is left for
// the validator to report.
func repairCoverageGap(rng *rand.Rand, entries []domain.ScheduleEntry, l Lookup) []domain.ScheduleEntry {
	current := entries

	for clientID := range l.Clients {
		gaps := CoverageGaps(clientID, current, l.Callouts, l.Date, l.Weekday, l.Cfg)
		for _, gap := range gaps {
			current = fillGap(rng, current, clientID, gap, l)
		}
	}
	return current
}

func fillGap(rng *rand.Rand, entries []domain.ScheduleEntry, clientID domain.ClientID, gap interval, l Lookup) []domain.ScheduleEntry {
	client := l.Clients[clientID]
	if client == nil {
		return entries
	}

	duration := gap.End - gap.Start
	if duration > l.Cfg.ABAMaxDuration {
		duration = l.Cfg.ABAMaxDuration
	}
	if duration < l.Cfg.ABAMinDuration {
		return entries
	}

	ids := make([]domain.TherapistID, 0, len(l.Therapists))
	for id, t := range l.Therapists {
		if t.MeetsRequirements(client.InsuranceRequirements) {
			ids = append(ids, id)
		}
	}
	shuffle(rng, ids)

	for _, id := range ids {
		candidate := domain.ScheduleEntry{
			ID:          domain.NewScheduleEntryID(),
			ClientID:    &clientID,
			TherapistID: id,
			Weekday:     l.Weekday,
			StartMinute: gap.Start,
			EndMinute:   gap.Start + duration,
			Kind:        domain.SessionKindABA,
		}
		if len(CanAdd(candidate, entries, l, nil)) > 0 {
			continue
		}
		return append(entries, candidate)
	}
	return entries
}
