package ports

import "github.com/claritycare/roster-engine/core/domain"

type TherapistRepository interface {
	List() ([]*domain.Therapist, error)
	GetByID(id domain.TherapistID) (*domain.Therapist, error)
}
