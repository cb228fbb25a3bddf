package engine

import (
	"math/rand/v2"

	"github.com/claritycare/roster-engine/core/domain"
)

// LocalSearch polishes the GA's best individual with up to
// Cfg.LocalSearchMaxIterations rounds of therapist-swap 2-opt (§4.12): pick
// two entries with different therapists, try swapping their therapist
// assignments, and keep the swap only if it's kernel-valid and strictly
// lowers fitness. Stops at the first iteration that finds no improving swap.
func LocalSearch(rng *rand.Rand, ind *Individual, l Lookup) *Individual {
	current := ind.Clone()
	current.Fitness = Evaluate(current, l)

	for iter := 0; iter < l.Cfg.LocalSearchMaxIterations; iter++ {
		improved, found := trySwap(rng, current, l)
		if !found {
			break
		}
		current = improved
	}
	return current
}

func trySwap(rng *rand.Rand, ind *Individual, l Lookup) (*Individual, bool) {
	n := len(ind.Entries)
	if n < 2 {
		return ind, false
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	shuffle(rng, order)

	for _, i := range order {
		for _, j := range order {
			if i == j || ind.Entries[i].TherapistID == ind.Entries[j].TherapistID {
				continue
			}
			candidate := swapTherapists(ind, i, j)
			if !eligibleForSwap(candidate.Entries[i], l) || !eligibleForSwap(candidate.Entries[j], l) {
				continue
			}
			if len(CanAdd(candidate.Entries[i], candidate.Entries, l, &candidate.Entries[i].ID)) > 0 {
				continue
			}
			if len(CanAdd(candidate.Entries[j], candidate.Entries, l, &candidate.Entries[j].ID)) > 0 {
				continue
			}
			candidate.Fitness = Evaluate(candidate, l)
			if candidate.Fitness < ind.Fitness {
				return candidate, true
			}
		}
	}
	return ind, false
}

func swapTherapists(ind *Individual, i, j int) *Individual {
	out := ind.Clone()
	out.Entries[i].TherapistID, out.Entries[j].TherapistID = out.Entries[j].TherapistID, out.Entries[i].TherapistID
	return out
}

func eligibleForSwap(e domain.ScheduleEntry, l Lookup) bool {
	therapist := l.Therapists[e.TherapistID]
	if therapist == nil {
		return false
	}
	if e.Kind.IsAlliedHealth() {
		return therapist.CanDeliver(e.Kind.AlliedHealthKind())
	}
	if e.ClientID == nil {
		return true
	}
	client := l.Clients[*e.ClientID]
	return client != nil && therapist.MeetsRequirements(client.InsuranceRequirements)
}
