package config

import (
	"path/filepath"

	"github.com/claritycare/roster-engine/adapters/db"
)

func GetDBConfig() db.DatabaseConfig {
	dbRootPath := MustGetEnv("ROSTER_DATABASE_PATH")
	// Join path with roster.db
	dbPath := filepath.Join(dbRootPath, "roster.db")
	schemaPath := filepath.Join(dbRootPath, "schema.sql")
	return db.DatabaseConfig{
		DBFilename: dbPath,
		SchemaFile: schemaPath,
	}
}
