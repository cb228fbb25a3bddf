package ports

import "github.com/claritycare/roster-engine/core/domain"

// SettingsRepository reads the settings keyed collection. settings.value is
// an opaque JSON payload (§6); the only key the engine cares about is
// "insurance_qualifications", the full set of recognized insurance markers.
type SettingsRepository interface {
	GetInsuranceQualifications() ([]domain.QualificationTag, error)
}
