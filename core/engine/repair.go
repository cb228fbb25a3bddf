package engine

import "math/rand/v2"

// Repair runs the fixed repair pipeline of §4.9 over an individual's entry
// list. Stages run in this exact order because later stages assume the
// invariants the earlier ones establish (merged blocks before duration
// clamping, a stable schedule before lunch placement). A stage can break a
// rule another stage targets: duration clamping lengthens or shifts
// entries without a conflict check.
func Repair(rng *rand.Rand, ind *Individual, l Lookup) *Individual {
	entries := ind.Entries

	entries = repairCleanupMerge(entries, l)
	entries = repairDurationClamp(entries, l)
	entries = repairCredentialSwap(rng, entries, l)
	entries = repairMedicaidCap(rng, entries, l)
	entries = repairBackToBack(entries, l)
	entries = repairCoverageGap(rng, entries, l)
	entries = repairLunchPlacement(entries, l)
	entries = repairTeamRealign(rng, entries, l)

	return NewIndividual(entries)
}
