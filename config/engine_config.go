package config

import (
	"strconv"

	"github.com/claritycare/roster-engine/core/engine"
)

// GetEngineConfig resolves the operational constants and GA tunables of §6
// from environment variables, falling back to engine.DefaultConfig's values
// for anything unset.
func GetEngineConfig() engine.Config {
	cfg := engine.DefaultConfig()

	cfg.OpStart = getEnvInt("ROSTER_OP_START_MINUTE", cfg.OpStart)
	cfg.OpEnd = getEnvInt("ROSTER_OP_END_MINUTE", cfg.OpEnd)
	cfg.LunchStart = getEnvInt("ROSTER_LUNCH_START_MINUTE", cfg.LunchStart)
	cfg.LunchEnd = getEnvInt("ROSTER_LUNCH_END_MINUTE", cfg.LunchEnd)
	cfg.StaffStart = getEnvInt("ROSTER_STAFF_START_MINUTE", cfg.StaffStart)
	cfg.StaffEnd = getEnvInt("ROSTER_STAFF_END_MINUTE", cfg.StaffEnd)
	cfg.SlotMinutes = getEnvInt("ROSTER_SLOT_MINUTES", cfg.SlotMinutes)

	cfg.ABAMinDuration = getEnvInt("ROSTER_ABA_MIN_DURATION", cfg.ABAMinDuration)
	cfg.ABAMaxDuration = getEnvInt("ROSTER_ABA_MAX_DURATION", cfg.ABAMaxDuration)
	cfg.LunchDuration = getEnvInt("ROSTER_LUNCH_DURATION", cfg.LunchDuration)
	cfg.MedicaidCapTherapists = getEnvInt("ROSTER_MEDICAID_CAP_THERAPISTS", cfg.MedicaidCapTherapists)

	cfg.PopulationSize = getEnvInt("ROSTER_GA_POPULATION_SIZE", cfg.PopulationSize)
	cfg.MaxGenerations = getEnvInt("ROSTER_GA_MAX_GENERATIONS", cfg.MaxGenerations)
	cfg.PlateauGenerations = getEnvInt("ROSTER_GA_PLATEAU_GENERATIONS", cfg.PlateauGenerations)
	cfg.TournamentSize = getEnvInt("ROSTER_GA_TOURNAMENT_SIZE", cfg.TournamentSize)

	return cfg
}

func getEnvInt(key string, fallback int) int {
	raw := GetEnvOrDefault(key, "")
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
