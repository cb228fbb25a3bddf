package engine

import "math/rand/v2"

// ProgressFunc is called once per generation with the best fitness seen so
// far; Run uses it to surface progress to a caller without coupling the
// engine to any particular transport.
type ProgressFunc func(generation int, bestFitness float64)

// runGA executes the population loop of §4.11: seed an initial population,
// then repeatedly select, crossover, repair, mutate, and repair again,
// keeping the top Cfg.ElitismFraction unconditionally, until either
// Cfg.MaxGenerations is reached or the best fitness hasn't improved for
// Cfg.PlateauGenerations generations. cancel is polled once per generation
// boundary so a caller can abort a long run.
func runGA(rng *rand.Rand, seeds []*Individual, l Lookup, progress ProgressFunc, cancel func() bool) (*Individual, int) {
	population := make([]*Individual, len(seeds))
	copy(population, seeds)
	for _, ind := range population {
		ind.Fitness = Evaluate(ind, l)
	}
	sortByFitnessAsc(population)

	best := population[0].Clone()
	bestGeneration := 0
	eliteCount := int(float64(len(population))*l.Cfg.ElitismFraction + 0.5)
	if eliteCount < 1 {
		eliteCount = 1
	}

	for gen := 1; gen <= l.Cfg.MaxGenerations; gen++ {
		if cancel != nil && cancel() {
			break
		}
		if best.Fitness == 0 {
			break
		}

		next := make([]*Individual, 0, len(population))
		next = append(next, population[:eliteCount]...)

		for len(next) < len(population) {
			parentA := selectParent(rng, population, l)
			parentB := selectParent(rng, population, l)

			child := Crossover(rng, parentA, parentB, l)
			child = Repair(rng, child, l)
			child = Mutate(rng, child, l)
			child = Repair(rng, child, l)
			child.Fitness = Evaluate(child, l)
			next = append(next, child)
		}

		population = next
		sortByFitnessAsc(population)

		if population[0].Fitness < best.Fitness {
			best = population[0].Clone()
			bestGeneration = gen
		}
		if progress != nil {
			progress(gen, best.Fitness)
		}
		if gen-bestGeneration >= l.Cfg.PlateauGenerations {
			return best, gen
		}
	}

	return best, l.Cfg.MaxGenerations
}

// selectParent implements the diversity-preserving selection of §4.11:
// uniform random pick with probability Cfg.DiversityUniformRate, else a
// Cfg.TournamentSize-way tournament with replacement.
func selectParent(rng *rand.Rand, population []*Individual, l Lookup) *Individual {
	if rng.Float64() < l.Cfg.DiversityUniformRate {
		return population[rng.IntN(len(population))]
	}

	best := population[rng.IntN(len(population))]
	for i := 1; i < l.Cfg.TournamentSize; i++ {
		candidate := population[rng.IntN(len(population))]
		if candidate.Fitness < best.Fitness {
			best = candidate
		}
	}
	return best
}

func sortByFitnessAsc(population []*Individual) {
	for i := 1; i < len(population); i++ {
		for j := i; j > 0 && population[j-1].Fitness > population[j].Fitness; j-- {
			population[j-1], population[j] = population[j], population[j-1]
		}
	}
}
