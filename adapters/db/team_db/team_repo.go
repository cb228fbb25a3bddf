package team_db

import (
	"database/sql"
	"errors"
	"log/slog"

	"github.com/claritycare/roster-engine/core/domain"
	"github.com/claritycare/roster-engine/core/ports"
)

type TeamRepository struct {
	db ports.SQLDatabase
}

var (
	ErrTeamNotFound     = errors.New("team not found")
	ErrFailedToGetTeams = errors.New("failed to get teams")
)

func NewTeamRepository(db ports.SQLDatabase) ports.TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) List() ([]*domain.Team, error) {
	query := `SELECT id, name, color, created_at, updated_at FROM teams ORDER BY name ASC`
	rows, err := r.db.Query(query)
	if err != nil {
		slog.Error("error listing teams", "error", err)
		return nil, ErrFailedToGetTeams
	}
	defer rows.Close()

	var teams []*domain.Team
	for rows.Next() {
		team := &domain.Team{}
		if err := rows.Scan(&team.ID, &team.Name, &team.Color, &team.CreatedAt, &team.UpdatedAt); err != nil {
			slog.Error("error scanning team", "error", err)
			return nil, ErrFailedToGetTeams
		}
		teams = append(teams, team)
	}
	return teams, nil
}

func (r *TeamRepository) GetByID(id domain.TeamID) (*domain.Team, error) {
	query := `SELECT id, name, color, created_at, updated_at FROM teams WHERE id = ?`
	row := r.db.QueryRow(query, id)

	team := &domain.Team{}
	err := row.Scan(&team.ID, &team.Name, &team.Color, &team.CreatedAt, &team.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrTeamNotFound
		}
		slog.Error("error getting team by id", "error", err, "id", id)
		return nil, ErrFailedToGetTeams
	}
	return team, nil
}
