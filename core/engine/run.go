package engine

import (
	"math/rand/v2"
	"time"

	"github.com/claritycare/roster-engine/core/domain"
	"github.com/claritycare/roster-engine/core/ports"
)

// RunInput bundles one day's snapshot and tuning knobs for Run (§2, §6).
type RunInput struct {
	Date         time.Time
	Clients      []domain.Client
	Therapists   []domain.Therapist
	Callouts     []domain.Callout
	BaseSchedule *domain.BaseSchedule
	Learning     ports.LearningServicePort
	Cfg          *Config
	Seed         *uint64
	Progress     ProgressFunc
	Cancel       func() bool
}

// Result is Run's single return value — no error, per §7: every failure
// mode is expressed as Status plus an empty or partial schedule.
type Result struct {
	Schedule    []domain.ScheduleEntry
	Violations  []Violation
	Generations int
	BestFitness float64
	Success     bool
	Status      string
}

// Run executes the full pipeline of §2 for one weekday: validate the
// input, build the lookup snapshot, seed a population, run the GA to a
// plateau, polish the winner with local search, merge it once more, and
// validate the final result. It never panics and never returns a Go
// error; a missing date or an unknown callout entity comes back as a
// Result with Status set and Success false, and an empty client or
// therapist list returns StatusMissingData with Success true.
func Run(input RunInput) Result {
	if input.Date.IsZero() {
		return Result{
			Status:     StatusMissingDate,
			Violations: []Violation{{RuleID: RuleMissingDate, Severity: SeverityHard, Message: "date is required"}},
		}
	}
	if len(input.Clients) == 0 || len(input.Therapists) == 0 {
		// §8's empty-input boundary: nothing to schedule is trivially
		// feasible, not an error — an empty roster is still a valid one.
		return Result{Status: StatusMissingData, Success: true, Violations: []Violation{}}
	}

	cfg := DefaultConfig()
	if input.Cfg != nil {
		cfg = *input.Cfg
	}

	clientsByID := make(map[domain.ClientID]*domain.Client, len(input.Clients))
	for i := range input.Clients {
		clientsByID[input.Clients[i].ID] = &input.Clients[i]
	}
	therapistsByID := make(map[domain.TherapistID]*domain.Therapist, len(input.Therapists))
	for i := range input.Therapists {
		therapistsByID[input.Therapists[i].ID] = &input.Therapists[i]
	}

	for _, c := range input.Callouts {
		if c.EntityKind == domain.EntityKindClient {
			if _, ok := clientsByID[domain.ClientID(c.EntityID)]; !ok {
				return Result{
					Status:     StatusUnknownEntity,
					Violations: []Violation{{RuleID: RuleUnknownEntity, Severity: SeverityHard, Message: "callout references an unknown client", Detail: c.EntityID}},
				}
			}
		}
		if c.EntityKind == domain.EntityKindTherapist {
			if _, ok := therapistsByID[domain.TherapistID(c.EntityID)]; !ok {
				return Result{
					Status:     StatusUnknownEntity,
					Violations: []Violation{{RuleID: RuleUnknownEntity, Severity: SeverityHard, Message: "callout references an unknown therapist", Detail: c.EntityID}},
				}
			}
		}
	}

	weekday := domain.WeekdayOf(input.Date)
	l := Lookup{
		Clients:    clientsByID,
		Therapists: therapistsByID,
		Callouts:   input.Callouts,
		Date:       input.Date,
		Weekday:    weekday,
		Cfg:        cfg,
	}

	rng := newRNG(input.Seed)
	lunchPrefs := lunchPreferences(input.Learning)
	seeds := buildInitialPopulation(rng, input, l, lunchPrefs)

	best, generations := runGA(rng, seeds, l, input.Progress, input.Cancel)
	best = LocalSearch(rng, best, l)
	best.Entries = repairCleanupMerge(best.Entries, l)
	best.Fitness = Evaluate(best, l)

	violations := Validate(best.Entries, l)
	success := best.Fitness < cfg.SuccessFitnessThreshold

	if input.Learning != nil {
		recordFeedback(input.Learning, best, violations)
	}

	return Result{
		Schedule:    best.Entries,
		Violations:  violations,
		Generations: generations,
		BestFitness: best.Fitness,
		Success:     success,
		Status:      StatusOK,
	}
}

func lunchPreferences(learning ports.LearningServicePort) map[domain.TherapistID]domain.TimeWindow {
	if learning == nil {
		return nil
	}
	prefs, err := learning.LunchPreferences()
	if err != nil {
		return nil
	}
	return prefs
}

// buildInitialPopulation implements §4.11's seeding mix: up to
// LearningSeedFraction of the population comes from learning-mined priors,
// the rest from repaired constructive seeds (each of which grafts the base
// schedule when one is given), so the GA starts from diverse
// but individually reasonable candidates rather than pure noise.
func buildInitialPopulation(rng *rand.Rand, input RunInput, l Lookup, lunchPrefs map[domain.TherapistID]domain.TimeWindow) []*Individual {
	population := make([]*Individual, 0, l.Cfg.PopulationSize)

	learningCount := int(float64(l.Cfg.PopulationSize) * l.Cfg.LearningSeedFraction)
	if input.Learning != nil {
		if priors, err := input.Learning.TopSchedules(l.Weekday, learningCount); err == nil {
			for _, prior := range priors {
				population = append(population, NewIndividual(cloneEntriesWithFreshIDs(prior.Entries)))
			}
		}
	}

	for len(population) < l.Cfg.PopulationSize {
		ind := ConstructiveSeed(rng, input.Clients, input.Therapists, l, input.BaseSchedule, lunchPrefs)
		ind.Entries = Repair(rng, ind, l).Entries
		population = append(population, ind)
	}
	return population[:l.Cfg.PopulationSize]
}

func cloneEntriesWithFreshIDs(entries []domain.ScheduleEntry) []domain.ScheduleEntry {
	out := make([]domain.ScheduleEntry, len(entries))
	for i, e := range entries {
		clone := e.Clone()
		clone.ID = domain.NewScheduleEntryID()
		out[i] = clone
	}
	return out
}

func recordFeedback(learning ports.LearningServicePort, best *Individual, violations []Violation) {
	ruleIDs := make([]string, 0, len(violations))
	for _, v := range violations {
		ruleIDs = append(ruleIDs, string(v.RuleID))
	}
	rating := 100 - len(violations)
	if rating < 0 {
		rating = 0
	}
	_ = learning.RecordFeedback(best.Entries, rating, ruleIDs)
}
