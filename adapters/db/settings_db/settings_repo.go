package settings_db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/claritycare/roster-engine/core/domain"
	"github.com/claritycare/roster-engine/core/ports"
)

type SettingsRepository struct {
	db ports.SQLDatabase
}

var ErrFailedToGetSettings = errors.New("failed to get settings")

const insuranceQualificationsKey = "insurance_qualifications"

func NewSettingsRepository(db ports.SQLDatabase) ports.SettingsRepository {
	return &SettingsRepository{db: db}
}

// GetInsuranceQualifications decodes the settings.value JSON payload stored
// under the "insurance_qualifications" key, the same nested-JSON-column
// pattern the teacher uses to aggregate a client's bookings from a single
// row set.
func (r *SettingsRepository) GetInsuranceQualifications() ([]domain.QualificationTag, error) {
	query := `SELECT value FROM settings WHERE key = ?`
	row := r.db.QueryRow(query, insuranceQualificationsKey)

	var raw string
	err := row.Scan(&raw)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Error("error getting insurance qualifications setting", "error", err)
		return nil, ErrFailedToGetSettings
	}

	var tags []domain.QualificationTag
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		slog.Error("error decoding insurance qualifications setting", "error", err)
		return nil, ErrFailedToGetSettings
	}
	return tags, nil
}
