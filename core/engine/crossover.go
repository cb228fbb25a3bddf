package engine

import (
	"math/rand/v2"
	"sort"

	"github.com/claritycare/roster-engine/core/domain"
)

// Crossover implements §4.8's therapist-partition crossover: with
// probability Cfg.CrossoverRate, split the therapist roster into two
// random halves, take each parent's entries for its half, and replay the
// union through an availability tracker in BCBA-first / ascending-start
// order so that whichever entry claims a slot first wins and anything
// left conflicting is simply dropped. Otherwise the first parent is
// cloned unchanged.
func Crossover(rng *rand.Rand, a, b *Individual, l Lookup) *Individual {
	if rng.Float64() > l.Cfg.CrossoverRate {
		return a.Clone()
	}

	therapistIDs := make([]domain.TherapistID, 0, len(l.Therapists))
	for id := range l.Therapists {
		therapistIDs = append(therapistIDs, id)
	}
	shuffle(rng, therapistIDs)
	half := len(therapistIDs) / 2
	inFirstHalf := make(map[domain.TherapistID]bool, half)
	for _, id := range therapistIDs[:half] {
		inFirstHalf[id] = true
	}

	var candidates []domain.ScheduleEntry
	for _, e := range a.Entries {
		if inFirstHalf[e.TherapistID] {
			candidates = append(candidates, e)
		}
	}
	for _, e := range b.Entries {
		if !inFirstHalf[e.TherapistID] {
			candidates = append(candidates, e)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		iBCBA, jBCBA := isBCBAEntry(candidates[i], l), isBCBAEntry(candidates[j], l)
		if iBCBA != jBCBA {
			return iBCBA
		}
		return candidates[i].StartMinute < candidates[j].StartMinute
	})

	tracker := NewAvailabilityTracker(l.Cfg)
	tracker.Rebuild(nil, l.Callouts, l.Date)

	var child []domain.ScheduleEntry
	for _, e := range candidates {
		entry := e
		entry.ID = domain.NewScheduleEntryID()
		if !tracker.Available(entry.TherapistID, entry.ClientID, entry.StartMinute, entry.EndMinute, nil) {
			continue
		}
		if len(CanAdd(entry, child, l, nil)) > 0 {
			continue
		}
		child = append(child, entry)
		tracker.Book(entry.TherapistID, entry.ClientID, entry.StartMinute, entry.EndMinute)
	}

	return NewIndividual(child)
}

func isBCBAEntry(e domain.ScheduleEntry, l Lookup) bool {
	t := l.Therapists[e.TherapistID]
	return t != nil && t.Role.IsBCBA()
}
