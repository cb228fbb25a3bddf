package base_schedule_db

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/claritycare/roster-engine/core/domain"
	"github.com/claritycare/roster-engine/core/ports"
)

type BaseScheduleRepository struct {
	db ports.SQLDatabase
}

var (
	ErrBaseScheduleNotFound     = errors.New("base schedule not found")
	ErrFailedToGetBaseSchedules = errors.New("failed to get base schedules")
)

func NewBaseScheduleRepository(db ports.SQLDatabase) ports.BaseScheduleRepository {
	return &BaseScheduleRepository{db: db}
}

func (r *BaseScheduleRepository) List() ([]*domain.BaseSchedule, error) {
	query := `SELECT id, name, weekdays, created_at, updated_at FROM base_schedules ORDER BY name ASC`
	rows, err := r.db.Query(query)
	if err != nil {
		slog.Error("error listing base schedules", "error", err)
		return nil, ErrFailedToGetBaseSchedules
	}
	defer rows.Close()

	var schedules []*domain.BaseSchedule
	var ids []domain.BaseScheduleID
	for rows.Next() {
		schedule, err := scanBaseSchedule(rows)
		if err != nil {
			slog.Error("error scanning base schedule", "error", err)
			return nil, ErrFailedToGetBaseSchedules
		}
		schedules = append(schedules, schedule)
		ids = append(ids, schedule.ID)
	}

	if err := r.attachEntries(schedules, ids); err != nil {
		return nil, err
	}
	return schedules, nil
}

// GetForWeekday returns the first base schedule whose Weekdays includes the
// given day, matching §4.6 step 1's "the" preset for the day rather than a
// list — callers with more than one preset per weekday get the first by
// name order.
func (r *BaseScheduleRepository) GetForWeekday(weekday domain.Weekday) (*domain.BaseSchedule, error) {
	schedules, err := r.List()
	if err != nil {
		return nil, err
	}
	for _, s := range schedules {
		if s.AppliesTo(weekday) {
			return s, nil
		}
	}
	return nil, ErrBaseScheduleNotFound
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBaseSchedule(row rowScanner) (*domain.BaseSchedule, error) {
	schedule := &domain.BaseSchedule{}
	var weekdays string
	if err := row.Scan(&schedule.ID, &schedule.Name, &weekdays, &schedule.CreatedAt, &schedule.UpdatedAt); err != nil {
		return nil, err
	}
	schedule.Weekdays = parseWeekdays(weekdays)
	return schedule, nil
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

func (r *BaseScheduleRepository) attachEntries(schedules []*domain.BaseSchedule, ids []domain.BaseScheduleID) error {
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

	query := fmt.Sprintf(`
		SELECT base_schedule_id, id, client_id, therapist_id, weekday, start_minute, end_minute, kind
		FROM base_schedule_entries
		WHERE base_schedule_id IN (%s)
		ORDER BY start_minute ASC
	`, in)
	rows, err := r.db.Query(query, values...)
	if err != nil {
		slog.Error("error loading base schedule entries", "error", err)
		return ErrFailedToGetBaseSchedules
	}
	defer rows.Close()

	entries := make(map[domain.BaseScheduleID][]domain.ScheduleEntry)
	for rows.Next() {
		var baseScheduleID domain.BaseScheduleID
		var entry domain.ScheduleEntry
		var clientID sql.NullString
		if err := rows.Scan(&baseScheduleID, &entry.ID, &clientID, &entry.TherapistID,
			&entry.Weekday, &entry.StartMinute, &entry.EndMinute, &entry.Kind); err != nil {
			slog.Error("error scanning base schedule entry", "error", err)
			return ErrFailedToGetBaseSchedules
		}
		if clientID.Valid {
			id := domain.ClientID(clientID.String)
			entry.ClientID = &id
		}
		entries[baseScheduleID] = append(entries[baseScheduleID], entry)
	}

	for _, schedule := range schedules {
		schedule.Entries = entries[schedule.ID]
	}
	return nil
}
