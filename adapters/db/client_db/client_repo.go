package client_db

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/claritycare/roster-engine/core/domain"
	"github.com/claritycare/roster-engine/core/ports"
)

type ClientRepository struct {
	db ports.SQLDatabase
}

var (
	ErrClientNotFound      = errors.New("client not found")
	ErrFailedToGetClients  = errors.New("failed to get clients")
	ErrFailedToCreateClient = errors.New("failed to create client")
)

func NewClientRepository(database ports.SQLDatabase) ports.ClientRepository {
	return &ClientRepository{db: database}
}

func (r *ClientRepository) List() ([]*domain.Client, error) {
	query := `
		SELECT id, name, team_id, created_at, updated_at
		FROM clients
		ORDER BY name ASC
	`
	rows, err := r.db.Query(query)
	if err != nil {
		slog.Error("error listing clients", "error", err)
		return nil, ErrFailedToGetClients
	}
	defer rows.Close()

	var clients []*domain.Client
	var ids []domain.ClientID
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			slog.Error("error scanning client", "error", err)
			return nil, ErrFailedToGetClients
		}
		clients = append(clients, client)
		ids = append(ids, client.ID)
	}

	if err := r.attachRequirementsAndNeeds(clients, ids); err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *ClientRepository) GetByID(id domain.ClientID) (*domain.Client, error) {
	query := `
		SELECT id, name, team_id, created_at, updated_at
		FROM clients
		WHERE id = ?
	`
	row := r.db.QueryRow(query, id)
	client, err := scanClient(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrClientNotFound
		}
		slog.Error("error getting client by id", "error", err, "id", id)
		return nil, ErrFailedToGetClients
	}

	if err := r.attachRequirementsAndNeeds([]*domain.Client{client}, []domain.ClientID{id}); err != nil {
		return nil, err
	}
	return client, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanClient(row rowScanner) (*domain.Client, error) {
	client := &domain.Client{}
	var teamID sql.NullString
	if err := row.Scan(&client.ID, &client.Name, &teamID, &client.CreatedAt, &client.UpdatedAt); err != nil {
		return nil, err
	}
	if teamID.Valid {
		id := domain.TeamID(teamID.String)
		client.TeamID = &id
	}
	return client, nil
}

// attachRequirementsAndNeeds loads insurance requirement tags and allied-health
// needs for a batch of clients, mirroring the teacher's fetch-once-then-loop
// pattern for avoiding N+1 queries.
func (r *ClientRepository) attachRequirementsAndNeeds(clients []*domain.Client, ids []domain.ClientID) error {
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

	reqQuery := fmt.Sprintf(`SELECT client_id, tag FROM client_insurance_requirements WHERE client_id IN (%s)`, in)
	reqRows, err := r.db.Query(reqQuery, values...)
	if err != nil {
		slog.Error("error loading client insurance requirements", "error", err)
		return ErrFailedToGetClients
	}
	defer reqRows.Close()

	requirements := make(map[domain.ClientID][]domain.QualificationTag)
	for reqRows.Next() {
		var clientID domain.ClientID
		var tag domain.QualificationTag
		if err := reqRows.Scan(&clientID, &tag); err != nil {
			slog.Error("error scanning client insurance requirement", "error", err)
			return ErrFailedToGetClients
		}
		requirements[clientID] = append(requirements[clientID], tag)
	}

	needQuery := fmt.Sprintf(`
		SELECT client_id, kind, frequency_per_week, duration_minutes,
		       preferred_window_start, preferred_window_end, permitted_weekdays
		FROM client_allied_health_needs
		WHERE client_id IN (%s)
	`, in)
	needRows, err := r.db.Query(needQuery, values...)
	if err != nil {
		slog.Error("error loading client allied health needs", "error", err)
		return ErrFailedToGetClients
	}
	defer needRows.Close()

	needs := make(map[domain.ClientID][]domain.AlliedHealthNeed)
	for needRows.Next() {
		var clientID domain.ClientID
		var need domain.AlliedHealthNeed
		var windowStart, windowEnd sql.NullInt64
		var permittedWeekdays string
		if err := needRows.Scan(&clientID, &need.Kind, &need.FrequencyPerWeek, &need.DurationMinutes,
			&windowStart, &windowEnd, &permittedWeekdays); err != nil {
			slog.Error("error scanning client allied health need", "error", err)
			return ErrFailedToGetClients
		}
		if windowStart.Valid && windowEnd.Valid {
			need.PreferredWindow = &domain.TimeWindow{Start: int(windowStart.Int64), End: int(windowEnd.Int64)}
		}
		need.PermittedWeekdays = parseWeekdays(permittedWeekdays)
		needs[clientID] = append(needs[clientID], need)
	}

	for _, client := range clients {
		client.InsuranceRequirements = requirements[client.ID]
		client.AlliedHealthNeeds = needs[client.ID]
	}
	return nil
}

func parseWeekdays(raw string) []domain.Weekday {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	weekdays := make([]domain.Weekday, 0, len(parts))
	for _, p := range parts {
		weekdays = append(weekdays, domain.Weekday(p))
	}
	return weekdays
}

func formatWeekdays(weekdays []domain.Weekday) string {
	parts := make([]string, len(weekdays))
	for i, w := range weekdays {
		parts[i] = string(w)
	}
	return strings.Join(parts, ",")
}

func (r *ClientRepository) Create(client *domain.Client) error {
	tx, err := r.db.Begin()
	if err != nil {
		slog.Error("error beginning create client transaction", "error", err)
		return ErrFailedToCreateClient
	}

	query := `
		INSERT INTO clients (id, name, team_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err = tx.Exec(query, client.ID, client.Name, client.TeamID, client.CreatedAt, client.UpdatedAt)
	if err != nil {
		tx.Rollback()
		slog.Error("error inserting client", "error", err)
		return ErrFailedToCreateClient
	}

	for _, tag := range client.InsuranceRequirements {
		if _, err := tx.Exec(`INSERT INTO client_insurance_requirements (client_id, tag) VALUES (?, ?)`, client.ID, tag); err != nil {
			tx.Rollback()
			slog.Error("error inserting client insurance requirement", "error", err)
			return ErrFailedToCreateClient
		}
	}

	for i, need := range client.AlliedHealthNeeds {
		id := fmt.Sprintf("%s_ahneed_%s", client.ID, strconv.Itoa(i))
		var windowStart, windowEnd any
		if need.PreferredWindow != nil {
			windowStart = need.PreferredWindow.Start
			windowEnd = need.PreferredWindow.End
		}
		_, err := tx.Exec(`
			INSERT INTO client_allied_health_needs
				(id, client_id, kind, frequency_per_week, duration_minutes, preferred_window_start, preferred_window_end, permitted_weekdays)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, id, client.ID, need.Kind, need.FrequencyPerWeek, need.DurationMinutes, windowStart, windowEnd, formatWeekdays(need.PermittedWeekdays))
		if err != nil {
			tx.Rollback()
			slog.Error("error inserting client allied health need", "error", err)
			return ErrFailedToCreateClient
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("error committing create client transaction", "error", err)
		return ErrFailedToCreateClient
	}
	return nil
}
