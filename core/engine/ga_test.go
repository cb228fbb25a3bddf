package engine

import (
	"testing"

	"github.com/claritycare/roster-engine/core/domain"
)

func TestRunGA_NeverReturnsWorseThanInitialBest(t *testing.T) {
	client := testClient("c1")
	therapist := testTherapist("t1", domain.RoleRBT)
	l := testLookup([]domain.Client{client}, []domain.Therapist{therapist}, nil, domain.Monday)
	l.Cfg.PopulationSize = 6
	l.Cfg.MaxGenerations = 10
	l.Cfg.PlateauGenerations = 5

	rng := newRNG(seedPtr(11))
	seeds := make([]*Individual, l.Cfg.PopulationSize)
	for i := range seeds {
		ind := ConstructiveSeed(rng, []domain.Client{client}, []domain.Therapist{therapist}, l, nil, nil)
		seeds[i] = Repair(rng, ind, l)
	}
	initialBest := Evaluate(seeds[0], l)
	for _, s := range seeds[1:] {
		if f := Evaluate(s, l); f < initialBest {
			initialBest = f
		}
	}

	best, generations := runGA(rng, seeds, l, nil, nil)

	if generations == 0 {
		t.Error("expected at least one generation to run")
	}
	if best.Fitness > initialBest {
		t.Errorf("GA result fitness %v is worse than the best seed %v", best.Fitness, initialBest)
	}
}

func TestSelectParent_UniformRateZeroReturnsPopulationMember(t *testing.T) {
	l := testLookup(nil, nil, nil, domain.Monday)
	l.Cfg.DiversityUniformRate = 0
	l.Cfg.TournamentSize = 3

	population := []*Individual{
		{Fitness: 1},
		{Fitness: 5},
		{Fitness: 10},
	}
	rng := newRNG(seedPtr(13))

	for i := 0; i < 20; i++ {
		selected := selectParent(rng, population, l)
		if selected.Fitness > 10 {
			t.Fatalf("selected parent has impossible fitness %v", selected.Fitness)
		}
	}
}

func TestSortByFitnessAsc(t *testing.T) {
	population := []*Individual{
		{Fitness: 3},
		{Fitness: 9},
		{Fitness: 1},
	}
	sortByFitnessAsc(population)

	for i := 1; i < len(population); i++ {
		if population[i-1].Fitness > population[i].Fitness {
			t.Fatalf("population not sorted ascending: %+v", population)
		}
	}
}
