package callout_db

import (
	"errors"
	"log/slog"
	"time"

	"github.com/claritycare/roster-engine/core/domain"
	"github.com/claritycare/roster-engine/core/ports"
)

type CalloutRepository struct {
	db ports.SQLDatabase
}

var ErrFailedToGetCallouts = errors.New("failed to get callouts")

const dateLayout = "2006-01-02"

func NewCalloutRepository(db ports.SQLDatabase) ports.CalloutRepository {
	return &CalloutRepository{db: db}
}

func (r *CalloutRepository) List() ([]*domain.Callout, error) {
	query := `
		SELECT id, entity_kind, entity_id, date_start, date_end, window_start, window_end, reason, created_at, updated_at
		FROM callouts
		ORDER BY date_start ASC
	`
	rows, err := r.db.Query(query)
	if err != nil {
		slog.Error("error listing callouts", "error", err)
		return nil, ErrFailedToGetCallouts
	}
	defer rows.Close()
	return scanCallouts(rows)
}

// ListCoveringDate returns every callout whose inclusive date range spans
// the given calendar date. The engine re-checks the intra-day window and
// entity match itself (§4.2 callout_conflict) — this is a calendar-level
// pre-filter only.
func (r *CalloutRepository) ListCoveringDate(date time.Time) ([]*domain.Callout, error) {
	day := date.Format(dateLayout)
	query := `
		SELECT id, entity_kind, entity_id, date_start, date_end, window_start, window_end, reason, created_at, updated_at
		FROM callouts
		WHERE date_start <= ? AND date_end >= ?
	`
	rows, err := r.db.Query(query, day, day)
	if err != nil {
		slog.Error("error listing callouts covering date", "error", err, "date", day)
		return nil, ErrFailedToGetCallouts
	}
	defer rows.Close()
	return scanCallouts(rows)
}

type rowsScanner interface {
	Next() bool
	Scan(dest ...any) error
}

func scanCallouts(rows rowsScanner) ([]*domain.Callout, error) {
	var callouts []*domain.Callout
	for rows.Next() {
		callout := &domain.Callout{}
		var dateStart, dateEnd string
		if err := rows.Scan(
			&callout.ID, &callout.EntityKind, &callout.EntityID,
			&dateStart, &dateEnd,
			&callout.TimeWindow.Start, &callout.TimeWindow.End,
			&callout.Reason, &callout.CreatedAt, &callout.UpdatedAt,
		); err != nil {
			slog.Error("error scanning callout", "error", err)
			return nil, ErrFailedToGetCallouts
		}

		start, err := time.Parse(dateLayout, dateStart)
		if err != nil {
			slog.Error("error parsing callout date_start", "error", err)
			return nil, ErrFailedToGetCallouts
		}
		end, err := time.Parse(dateLayout, dateEnd)
		if err != nil {
			slog.Error("error parsing callout date_end", "error", err)
			return nil, ErrFailedToGetCallouts
		}
		callout.DateStart = start
		callout.DateEnd = end

		callouts = append(callouts, callout)
	}
	return callouts, nil
}
