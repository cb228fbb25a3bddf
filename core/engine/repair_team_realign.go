package engine

import (
	"math/rand/v2"

	"github.com/claritycare/roster-engine/core/domain"
)

// repairTeamRealign is the one purely cosmetic repair stage: it looks for
// cross-team entries (client and therapist on different teams) and swaps
// in a same-team, equally qualified, available therapist when one exists.
// It never drops an entry and never trades a valid placement for an
// invalid one — only a same-team swap that leaves the kernel satisfied
// is applied.
func repairTeamRealign(rng *rand.Rand, entries []domain.ScheduleEntry, l Lookup) []domain.ScheduleEntry {
	out := make([]domain.ScheduleEntry, len(entries))
	copy(out, entries)

	for i, e := range out {
		if e.ClientID == nil {
			continue
		}
		client := l.Clients[*e.ClientID]
		therapist := l.Therapists[e.TherapistID]
		if client == nil || therapist == nil || !crossTeam(client, therapist) {
			continue
		}

		rest := withoutIndex(out, i)
		if sameTeamID, ok := findSameTeamReplacement(rng, e, client, rest, l); ok {
			e.TherapistID = sameTeamID
			out[i] = e
		}
	}
	return out
}

func findSameTeamReplacement(rng *rand.Rand, e domain.ScheduleEntry, client *domain.Client, rest []domain.ScheduleEntry, l Lookup) (domain.TherapistID, bool) {
	ids := make([]domain.TherapistID, 0, len(l.Therapists))
	for id := range l.Therapists {
		ids = append(ids, id)
	}
	shuffle(rng, ids)

	for _, id := range ids {
		therapist := l.Therapists[id]
		if therapist.TeamID == nil || client.TeamID == nil || *therapist.TeamID != *client.TeamID {
			continue
		}
		if e.Kind.IsAlliedHealth() {
			if !therapist.CanDeliver(e.Kind.AlliedHealthKind()) {
				continue
			}
		} else if !therapist.MeetsRequirements(client.InsuranceRequirements) {
			continue
		}

		candidate := e
		candidate.TherapistID = id
		if len(CanAdd(candidate, rest, l, &candidate.ID)) == 0 {
			return id, true
		}
	}
	return "", false
}
