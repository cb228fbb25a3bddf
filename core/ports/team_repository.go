package ports

import "github.com/claritycare/roster-engine/core/domain"

type TeamRepository interface {
	List() ([]*domain.Team, error)
	GetByID(id domain.TeamID) (*domain.Team, error)
}
