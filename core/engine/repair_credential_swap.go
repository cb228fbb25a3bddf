package engine

import (
	"math/rand/v2"

	"github.com/claritycare/roster-engine/core/domain"
)

// repairCredentialSwap fixes entries whose assigned therapist lacks the
// client's required qualifications or allied-health capability. It tries
// every other eligible, available therapist in random order before giving
// up and dropping the entry.
func repairCredentialSwap(rng *rand.Rand, entries []domain.ScheduleEntry, l Lookup) []domain.ScheduleEntry {
	out := make([]domain.ScheduleEntry, 0, len(entries))

	for i, e := range entries {
		if !CredentialMismatch(e, l) && !AHQualificationMissing(e, l) {
			out = append(out, e)
			continue
		}

		rest := withoutIndex(entries, i)
		replacement, ok := findEligibleReplacement(rng, e, rest, l)
		if !ok {
			continue
		}
		e.TherapistID = replacement
		out = append(out, e)
	}
	return out
}

func findEligibleReplacement(rng *rand.Rand, e domain.ScheduleEntry, rest []domain.ScheduleEntry, l Lookup) (domain.TherapistID, bool) {
	client := l.client(e.ClientID)
	ids := make([]domain.TherapistID, 0, len(l.Therapists))
	for id := range l.Therapists {
		ids = append(ids, id)
	}
	shuffle(rng, ids)

	for _, id := range ids {
		if id == e.TherapistID {
			continue
		}
		therapist := l.Therapists[id]
		if e.Kind.IsAlliedHealth() {
			if !therapist.CanDeliver(e.Kind.AlliedHealthKind()) {
				continue
			}
		} else if client == nil || !therapist.MeetsRequirements(client.InsuranceRequirements) {
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
