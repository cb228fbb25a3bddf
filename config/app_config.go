package config

// IsDevelopment reports whether ROSTER_ENV is unset or "development", used
// to gate the dev-only CORS middleware in main.go.
func IsDevelopment() bool {
	env := GetEnvOrDefault("ROSTER_ENV", "development")
	return env == "development"
}
