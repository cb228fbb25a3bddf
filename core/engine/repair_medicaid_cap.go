package engine

import (
	"math/rand/v2"

	"github.com/claritycare/roster-engine/core/domain"
)

// repairMedicaidCap enforces invariant 9 by dropping entries for the
// excess therapists once a Medicaid-capped client has more than
// Cfg.MedicaidCapTherapists distinct ones assigned, keeping a random
// subset of Cfg.MedicaidCapTherapists therapists' entries intact.
func repairMedicaidCap(rng *rand.Rand, entries []domain.ScheduleEntry, l Lookup) []domain.ScheduleEntry {
	byClient := make(map[domain.ClientID]map[domain.TherapistID]struct{})
	for _, e := range entries {
		if e.ClientID == nil {
			continue
		}
		client := l.client(e.ClientID)
		if client == nil || !client.RequiresMedicaidCap() {
			continue
		}
		set, ok := byClient[*e.ClientID]
		if !ok {
			set = make(map[domain.TherapistID]struct{})
			byClient[*e.ClientID] = set
		}
		set[e.TherapistID] = struct{}{}
	}

	keep := make(map[domain.ClientID]map[domain.TherapistID]bool)
	for clientID, set := range byClient {
		if len(set) <= l.Cfg.MedicaidCapTherapists {
			continue
		}
		ids := make([]domain.TherapistID, 0, len(set))
		for id := range set {
			ids = append(ids, id)
		}
		shuffle(rng, ids)
		kept := make(map[domain.TherapistID]bool, l.Cfg.MedicaidCapTherapists)
		for _, id := range ids[:l.Cfg.MedicaidCapTherapists] {
			kept[id] = true
		}
		keep[clientID] = kept
	}

	out := make([]domain.ScheduleEntry, 0, len(entries))
	for _, e := range entries {
		if e.ClientID == nil {
			out = append(out, e)
			continue
		}
		kept, capped := keep[*e.ClientID]
		if capped && !kept[e.TherapistID] {
			continue
		}
		out = append(out, e)
	}
	return out
}
