package therapist_db

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/claritycare/roster-engine/core/domain"
	"github.com/claritycare/roster-engine/core/ports"
)

type TherapistRepository struct {
	db ports.SQLDatabase
}

var (
	ErrTherapistNotFound      = errors.New("therapist not found")
	ErrFailedToGetTherapists  = errors.New("failed to get therapists")
	ErrFailedToCreateTherapist = errors.New("failed to create therapist")
)

func NewTherapistRepository(db ports.SQLDatabase) ports.TherapistRepository {
	return &TherapistRepository{db: db}
}

func (r *TherapistRepository) List() ([]*domain.Therapist, error) {
	query := `
		SELECT id, name, email, phone_number, team_id, role, created_at, updated_at
		FROM therapists
		ORDER BY name ASC
	`
	rows, err := r.db.Query(query)
	if err != nil {
		slog.Error("error listing therapists", "error", err)
		return nil, ErrFailedToGetTherapists
	}
	defer rows.Close()

	var therapists []*domain.Therapist
	var ids []domain.TherapistID
	for rows.Next() {
		therapist, err := scanTherapist(rows)
		if err != nil {
			slog.Error("error scanning therapist", "error", err)
			return nil, ErrFailedToGetTherapists
		}
		therapists = append(therapists, therapist)
		ids = append(ids, therapist.ID)
	}

	if err := r.attachQualificationsAndCapabilities(therapists, ids); err != nil {
		return nil, err
	}
	return therapists, nil
}

func (r *TherapistRepository) GetByID(id domain.TherapistID) (*domain.Therapist, error) {
	query := `
		SELECT id, name, email, phone_number, team_id, role, created_at, updated_at
		FROM therapists
		WHERE id = ?
	`
	row := r.db.QueryRow(query, id)
	therapist, err := scanTherapist(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrTherapistNotFound
		}
		slog.Error("error getting therapist by id", "error", err, "id", id)
		return nil, ErrFailedToGetTherapists
	}

	if err := r.attachQualificationsAndCapabilities([]*domain.Therapist{therapist}, []domain.TherapistID{id}); err != nil {
		return nil, err
	}
	return therapist, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTherapist(row rowScanner) (*domain.Therapist, error) {
	therapist := &domain.Therapist{}
	var teamID sql.NullString
	if err := row.Scan(
		&therapist.ID, &therapist.Name, &therapist.Email, &therapist.PhoneNumber,
		&teamID, &therapist.Role, &therapist.CreatedAt, &therapist.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if teamID.Valid {
		id := domain.TeamID(teamID.String)
		therapist.TeamID = &id
	}
	return therapist, nil
}

// attachQualificationsAndCapabilities loads the join-table tags for a batch
// of therapists in two queries instead of looping per-therapist, matching
// the teacher's bulkGetTherapistSpecializations pattern.
func (r *TherapistRepository) attachQualificationsAndCapabilities(therapists []*domain.Therapist, ids []domain.TherapistID) error {
	if len(ids) == 0 {
		return nil
	}

	placeholders := make([]string, len(ids))
	values := make([]interface{}, len(ids))
	for i := range ids {
		placeholders[i] = "?"
		values[i] = ids[i]
	}
	in := strings.Join(placeholders, ", ")

	qualQuery := fmt.Sprintf(`SELECT therapist_id, tag FROM therapist_qualifications WHERE therapist_id IN (%s)`, in)
	qualRows, err := r.db.Query(qualQuery, values...)
	if err != nil {
		slog.Error("error loading therapist qualifications", "error", err)
		return ErrFailedToGetTherapists
	}
	defer qualRows.Close()

	qualifications := make(map[domain.TherapistID][]domain.QualificationTag)
	for qualRows.Next() {
		var therapistID domain.TherapistID
		var tag domain.QualificationTag
		if err := qualRows.Scan(&therapistID, &tag); err != nil {
			slog.Error("error scanning therapist qualification", "error", err)
			return ErrFailedToGetTherapists
		}
		qualifications[therapistID] = append(qualifications[therapistID], tag)
	}

	capQuery := fmt.Sprintf(`SELECT therapist_id, kind FROM therapist_allied_health_capabilities WHERE therapist_id IN (%s)`, in)
	capRows, err := r.db.Query(capQuery, values...)
	if err != nil {
		slog.Error("error loading therapist allied health capabilities", "error", err)
		return ErrFailedToGetTherapists
	}
	defer capRows.Close()

	capabilities := make(map[domain.TherapistID][]domain.AlliedHealthKind)
	for capRows.Next() {
		var therapistID domain.TherapistID
		var kind domain.AlliedHealthKind
		if err := capRows.Scan(&therapistID, &kind); err != nil {
			slog.Error("error scanning therapist allied health capability", "error", err)
			return ErrFailedToGetTherapists
		}
		capabilities[therapistID] = append(capabilities[therapistID], kind)
	}

	for _, therapist := range therapists {
		therapist.Qualifications = qualifications[therapist.ID]
		therapist.AlliedHealthCapabilities = capabilities[therapist.ID]
	}
	return nil
}

func (r *TherapistRepository) Create(therapist *domain.Therapist) error {
	tx, err := r.db.Begin()
	if err != nil {
		slog.Error("error beginning create therapist transaction", "error", err)
		return ErrFailedToCreateTherapist
	}

	query := `
		INSERT INTO therapists (id, name, email, phone_number, team_id, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = tx.Exec(query, therapist.ID, therapist.Name, therapist.Email, therapist.PhoneNumber,
		therapist.TeamID, therapist.Role, therapist.CreatedAt, therapist.UpdatedAt)
	if err != nil {
		tx.Rollback()
		slog.Error("error inserting therapist", "error", err)
		return ErrFailedToCreateTherapist
	}

	for _, tag := range therapist.Qualifications {
		if _, err := tx.Exec(`INSERT INTO therapist_qualifications (therapist_id, tag) VALUES (?, ?)`, therapist.ID, tag); err != nil {
			tx.Rollback()
			slog.Error("error inserting therapist qualification", "error", err)
			return ErrFailedToCreateTherapist
		}
	}

	for _, kind := range therapist.AlliedHealthCapabilities {
		if _, err := tx.Exec(`INSERT INTO therapist_allied_health_capabilities (therapist_id, kind) VALUES (?, ?)`, therapist.ID, kind); err != nil {
			tx.Rollback()
			slog.Error("error inserting therapist allied health capability", "error", err)
			return ErrFailedToCreateTherapist
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("error committing create therapist transaction", "error", err)
		return ErrFailedToCreateTherapist
	}
	return nil
}
