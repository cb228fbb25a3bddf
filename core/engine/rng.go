package engine

import "math/rand/v2"

// newRNG builds the run's single random source. A caller-supplied seed makes
// a run fully reproducible, per §6: "callers wanting reproducibility supply
// a seed via an optional parameter." Without one, the source is seeded from
// the runtime's own entropy.
func newRNG(seed *uint64) *rand.Rand {
	if seed == nil {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(*seed, *seed^0x9e3779b97f4a7c15))
}

// shuffle permutes s in place using r (Fisher-Yates via rand.Shuffle).
func shuffle[T any](r *rand.Rand, s []T) {
	r.Shuffle(len(s), func(i, j int) { s[i], s[j] = s[j], s[i] })
}
