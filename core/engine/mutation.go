package engine

import (
	"math/rand/v2"

	"github.com/claritycare/roster-engine/core/domain"
)

// Mutate applies §4.7's per-individual mutation: with probability
// Cfg.MutationRate, perturb roughly Cfg.MutationEntryFraction of the
// entries with a slide or a resize, keeping only changes the kernel
// accepts. Mutation never touches lunch entries; those are repaired
// separately by repair_lunch_placement.
func Mutate(rng *rand.Rand, ind *Individual, l Lookup) *Individual {
	if rng.Float64() > l.Cfg.MutationRate {
		return ind
	}

	out := ind.Clone()
	count := int(float64(len(out.Entries))*l.Cfg.MutationEntryFraction + 0.5)
	if count == 0 && len(out.Entries) > 0 {
		count = 1
	}

	idxs := make([]int, len(out.Entries))
	for i := range idxs {
		idxs[i] = i
	}
	shuffle(rng, idxs)
	if count > len(idxs) {
		count = len(idxs)
	}

	for _, idx := range idxs[:count] {
		mutateOne(rng, out, idx, l)
	}
	return out
}

func mutateOne(rng *rand.Rand, ind *Individual, idx int, l Lookup) {
	e := ind.Entries[idx]
	if e.Kind == domain.SessionKindIndirect {
		return
	}

	if e.Kind == domain.SessionKindABA && rng.Float64() < 0.5 {
		resizeEntry(rng, ind, idx, l)
		return
	}
	slideEntry(rng, ind, idx, l)
}

// slideEntry shifts an entry's start by one slot in a random direction,
// keeping its duration. The mutation is discarded if the kernel rejects it.
func slideEntry(rng *rand.Rand, ind *Individual, idx int, l Lookup) {
	e := ind.Entries[idx]
	delta := l.Cfg.SlotMinutes
	if rng.Float64() < 0.5 {
		delta = -delta
	}

	candidate := e
	candidate.StartMinute += delta
	candidate.EndMinute += delta
	if candidate.StartMinute < l.Cfg.OpStart || candidate.EndMinute > l.Cfg.OpEnd {
		return
	}

	rest := withoutIndex(ind.Entries, idx)
	if len(CanAdd(candidate, rest, l, &candidate.ID)) > 0 {
		return
	}
	ind.Entries[idx] = candidate
}

// resizeEntry grows or shrinks an ABA entry by one slot, staying within
// [ABAMinDuration, ABAMaxDuration].
func resizeEntry(rng *rand.Rand, ind *Individual, idx int, l Lookup) {
	e := ind.Entries[idx]
	delta := l.Cfg.SlotMinutes
	if rng.Float64() < 0.5 {
		delta = -delta
	}

	candidate := e
	candidate.EndMinute += delta
	duration := candidate.EndMinute - candidate.StartMinute
	if duration < l.Cfg.ABAMinDuration || duration > l.Cfg.ABAMaxDuration || candidate.EndMinute > l.Cfg.OpEnd {
		return
	}

	rest := withoutIndex(ind.Entries, idx)
	if len(CanAdd(candidate, rest, l, &candidate.ID)) > 0 {
		return
	}
	ind.Entries[idx] = candidate
}

func withoutIndex(entries []domain.ScheduleEntry, idx int) []domain.ScheduleEntry {
	out := make([]domain.ScheduleEntry, 0, len(entries)-1)
	for i, e := range entries {
		if i != idx {
			out = append(out, e)
		}
	}
	return out
}
