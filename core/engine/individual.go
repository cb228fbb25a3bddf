package engine

import "github.com/claritycare/roster-engine/core/domain"

// Individual is one candidate schedule in the population. Each individual
// owns its entry list; mutation, crossover, and repair all produce new
// owned lists rather than mutating a shared one (§3's copy-on-write
// contract at individual granularity).
type Individual struct {
	Entries []domain.ScheduleEntry
	Fitness float64
}

// NewIndividual wraps an entry list as a fresh individual with no fitness
// computed yet.
func NewIndividual(entries []domain.ScheduleEntry) *Individual {
	return &Individual{Entries: entries}
}

// Clone deep-copies the entry list so the clone can be mutated freely
// without aliasing the original.
func (ind *Individual) Clone() *Individual {
	entries := make([]domain.ScheduleEntry, len(ind.Entries))
	for i, e := range ind.Entries {
		entries[i] = e.Clone()
	}
	return &Individual{Entries: entries, Fitness: ind.Fitness}
}
