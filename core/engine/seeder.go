package engine

import (
	"math/rand/v2"

	"github.com/claritycare/roster-engine/core/domain"
)

// seedTask is one unit of work the constructive seeder tries to place:
// either a client's allied-health need for the day or its single ABA task
// (§4.6 step 2).
type seedTask struct {
	ClientID       domain.ClientID
	Kind           domain.SessionKind
	Priority       int
	MinDuration    int
	MaxDuration    int
	PreferredStart int // -1 if none
	PreferredEnd   int // -1 if none
}

// ConstructiveSeed produces one feasible-leaning schedule for weekday D,
// following §4.6: optional base-schedule graft, priority task list, greedy
// placement with a soft team-affinity filter, then lunch placement.
func ConstructiveSeed(
	rng *rand.Rand,
	clients []domain.Client,
	therapists []domain.Therapist,
	l Lookup,
	baseSchedule *domain.BaseSchedule,
	lunchPrefs map[domain.TherapistID]domain.TimeWindow,
) *Individual {
	var entries []domain.ScheduleEntry
	tracker := NewAvailabilityTracker(l.Cfg)
	tracker.Rebuild(nil, l.Callouts, l.Date)

	// Step 1: graft base-schedule entries for this weekday that don't
	// overlap a callout and are mutually consistent.
	if baseSchedule != nil && baseSchedule.AppliesTo(l.Weekday) {
		for _, template := range baseSchedule.Entries {
			if template.Weekday != l.Weekday {
				continue
			}
			candidate := template
			candidate.ID = domain.NewScheduleEntryID()
			if CalloutConflict(candidate, l) {
				continue
			}
			if len(CanAdd(candidate, entries, l, nil)) > 0 {
				continue
			}
			entries = append(entries, candidate)
			tracker.Book(candidate.TherapistID, candidate.ClientID, candidate.StartMinute, candidate.EndMinute)
		}
	}

	// Step 2-3: build and sort the task list, most constrained first.
	tasks := buildSeedTasks(clients, therapists, l.Weekday)

	// Step 4: greedy placement.
	for _, task := range tasks {
		placeTask(rng, task, &entries, tracker, l)
	}

	// Step 5: lunch placement for every therapist with enough billable work.
	placeConstructiveLunches(rng, therapists, &entries, tracker, l, lunchPrefs)

	return NewIndividual(entries)
}

func buildSeedTasks(clients []domain.Client, therapists []domain.Therapist, weekday domain.Weekday) []seedTask {
	var tasks []seedTask
	for _, client := range clients {
		for _, need := range client.AlliedHealthNeeds {
			if !need.PermitsWeekday(weekday) {
				continue
			}
			qualified := countQualifiedForAH(therapists, need.Kind)
			preferredStart, preferredEnd := -1, -1
			if need.PreferredWindow != nil {
				preferredStart, preferredEnd = need.PreferredWindow.Start, need.PreferredWindow.End
			}
			tasks = append(tasks, seedTask{
				ClientID:       client.ID,
				Kind:           ahSessionKind(need.Kind),
				Priority:       1000 - 10*qualified + need.DurationMinutes,
				MinDuration:    need.DurationMinutes,
				MaxDuration:    need.DurationMinutes,
				PreferredStart: preferredStart,
				PreferredEnd:   preferredEnd,
			})
		}

		qualified := countQualifiedForClient(therapists, client.InsuranceRequirements)
		tasks = append(tasks, seedTask{
			ClientID:       client.ID,
			Kind:           domain.SessionKindABA,
			Priority:       500 - 10*qualified + 180,
			MinDuration:    60,
			MaxDuration:    180,
			PreferredStart: -1,
			PreferredEnd:   -1,
		})
	}

	sortTasksByPriorityDesc(tasks)
	return tasks
}

func sortTasksByPriorityDesc(tasks []seedTask) {
	for i := 1; i < len(tasks); i++ {
		for j := i; j > 0 && tasks[j-1].Priority < tasks[j].Priority; j-- {
			tasks[j-1], tasks[j] = tasks[j], tasks[j-1]
		}
	}
}

func ahSessionKind(kind domain.AlliedHealthKind) domain.SessionKind {
	if kind == domain.AlliedHealthSLP {
		return domain.SessionKindAHSLP
	}
	return domain.SessionKindAHOT
}

func countQualifiedForAH(therapists []domain.Therapist, kind domain.AlliedHealthKind) int {
	n := 0
	for _, t := range therapists {
		if t.CanDeliver(kind) {
			n++
		}
	}
	return n
}

func countQualifiedForClient(therapists []domain.Therapist, required []domain.QualificationTag) int {
	n := 0
	for _, t := range therapists {
		if t.MeetsRequirements(required) {
			n++
		}
	}
	return n
}

// placeTask implements §4.6 step 4: shuffle eligible therapists, walk slots
// from the preferred window (or the full operating window), extend greedily
// once a feasible start is found, apply the team-affinity filter, and
// commit the first candidate that survives the kernel.
func placeTask(rng *rand.Rand, task seedTask, entries *[]domain.ScheduleEntry, tracker *AvailabilityTracker, l Lookup) {
	client := l.Clients[task.ClientID]
	if client == nil {
		return
	}
	eligible := eligibleTherapistsForTask(task, l)
	shuffle(rng, eligible)

	windowStart, windowEnd := l.Cfg.OpStart, l.Cfg.OpEnd
	if task.PreferredStart >= 0 {
		windowStart, windowEnd = task.PreferredStart, task.PreferredEnd
	}

	for _, therapistID := range eligible {
		therapist := l.Therapists[therapistID]
		if therapist != nil && crossTeam(client, therapist) && rng.Float64() < l.Cfg.TeamRejectCrossProbability {
			continue
		}

		for start := windowStart; start+task.MinDuration <= windowEnd; start += l.Cfg.SlotMinutes {
			end := start + task.MinDuration
			clientID := task.ClientID
			if !tracker.Available(therapistID, &clientID, start, end, nil) {
				continue
			}

			// Extend greedily up to the maximum while both stay free.
			for end < start+task.MaxDuration && end+l.Cfg.SlotMinutes <= l.Cfg.OpEnd {
				if !tracker.Available(therapistID, &clientID, end, end+l.Cfg.SlotMinutes, nil) {
					break
				}
				end += l.Cfg.SlotMinutes
			}

			candidate := domain.ScheduleEntry{
				ID:          domain.NewScheduleEntryID(),
				ClientID:    &clientID,
				TherapistID: therapistID,
				Weekday:     l.Weekday,
				StartMinute: start,
				EndMinute:   end,
				Kind:        task.Kind,
			}
			if len(CanAdd(candidate, *entries, l, nil)) > 0 {
				continue
			}

			*entries = append(*entries, candidate)
			tracker.Book(therapistID, &clientID, start, end)
			return
		}
	}
}

func crossTeam(client *domain.Client, therapist *domain.Therapist) bool {
	if client.TeamID == nil || therapist.TeamID == nil {
		return false
	}
	return *client.TeamID != *therapist.TeamID
}

func eligibleTherapistsForTask(task seedTask, l Lookup) []domain.TherapistID {
	client := l.Clients[task.ClientID]
	var eligible []domain.TherapistID
	for id, therapist := range l.Therapists {
		if task.Kind.IsAlliedHealth() {
			if therapist.CanDeliver(task.Kind.AlliedHealthKind()) {
				eligible = append(eligible, id)
			}
			continue
		}
		if client != nil && therapist.MeetsRequirements(client.InsuranceRequirements) {
			eligible = append(eligible, id)
		}
	}
	return eligible
}

// placeConstructiveLunches implements §4.6 step 5: for every therapist with
// enough billable minutes and no lunch, try the learned preference first,
// else scan the lunch window for the earliest free slot.
func placeConstructiveLunches(rng *rand.Rand, therapists []domain.Therapist, entries *[]domain.ScheduleEntry, tracker *AvailabilityTracker, l Lookup, lunchPrefs map[domain.TherapistID]domain.TimeWindow) {
	for _, therapist := range therapists {
		if billableMinutesFor(therapist.ID, *entries) < l.Cfg.LunchMinBillable {
			continue
		}
		if hasLunch(therapist.ID, *entries) {
			continue
		}

		placed := false
		if pref, ok := lunchPrefs[therapist.ID]; ok {
			if tracker.Available(therapist.ID, nil, pref.Start, pref.Start+l.Cfg.LunchDuration, nil) {
				addLunchEntry(entries, tracker, therapist.ID, l.Weekday, pref.Start, l.Cfg.LunchDuration)
				placed = true
			}
		}
		if !placed {
			for start := l.Cfg.LunchStart; start <= l.Cfg.LunchEnd-l.Cfg.LunchDuration; start += l.Cfg.SlotMinutes {
				if tracker.Available(therapist.ID, nil, start, start+l.Cfg.LunchDuration, nil) {
					addLunchEntry(entries, tracker, therapist.ID, l.Weekday, start, l.Cfg.LunchDuration)
					break
				}
			}
		}
	}
}

func addLunchEntry(entries *[]domain.ScheduleEntry, tracker *AvailabilityTracker, therapistID domain.TherapistID, weekday domain.Weekday, start, duration int) {
	entry := domain.ScheduleEntry{
		ID:          domain.NewScheduleEntryID(),
		ClientID:    nil,
		TherapistID: therapistID,
		Weekday:     weekday,
		StartMinute: start,
		EndMinute:   start + duration,
		Kind:        domain.SessionKindIndirect,
	}
	*entries = append(*entries, entry)
	tracker.Book(therapistID, nil, start, start+duration)
}

func billableMinutesFor(therapistID domain.TherapistID, entries []domain.ScheduleEntry) int {
	total := 0
	for _, e := range entries {
		if e.TherapistID == therapistID && isBillable(e.Kind) {
			total += e.Duration()
		}
	}
	return total
}

func hasLunch(therapistID domain.TherapistID, entries []domain.ScheduleEntry) bool {
	for _, e := range entries {
		if e.TherapistID == therapistID && e.Kind == domain.SessionKindIndirect && e.ClientID == nil {
			return true
		}
	}
	return false
}
