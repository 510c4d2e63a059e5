package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/rollcall-app/rollcall/internal/core/storage"
)

// CalendarAdapter implements storage.HolidayStore and storage.PeriodStore
// for PostgreSQL. It shares the connection owned by Adapter.
type CalendarAdapter struct {
	db *sql.DB
}

// NewCalendarAdapter creates a calendar adapter on an existing connection.
func NewCalendarAdapter(db *sql.DB) *CalendarAdapter {
	return &CalendarAdapter{db: db}
}

// SaveHoliday inserts a declared holiday.
func (a *CalendarAdapter) SaveHoliday(ctx context.Context, holiday *storage.Holiday) error {
	_, err := a.db.ExecContext(ctx, querySaveHoliday,
		holiday.ID,
		holiday.Date,
		holiday.Reason,
		holiday.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save holiday: %w", err)
	}

	slog.Debug("[Postgres] Saved holiday", "id", holiday.ID, "date", holiday.Date)
	return nil
}

// DeleteHoliday soft-deletes a holiday by id. The row is flagged, not
// removed, and disappears from every read path.
func (a *CalendarAdapter) DeleteHoliday(ctx context.Context, id string) error {
	result, err := a.db.ExecContext(ctx, queryDeleteHoliday, id)
	if err != nil {
		return fmt.Errorf("failed to delete holiday: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}

	slog.Debug("[Postgres] Soft-deleted holiday", "id", id)
	return nil
}

// ListActiveHolidays returns all holidays not soft-deleted, ordered by date.
func (a *CalendarAdapter) ListActiveHolidays(ctx context.Context) ([]storage.Holiday, error) {
	rows, err := a.db.QueryContext(ctx, queryListActiveHolidays)
	if err != nil {
		return nil, fmt.Errorf("failed to query holidays: %w", err)
	}
	defer rows.Close()

	var holidays []storage.Holiday
	for rows.Next() {
		var h storage.Holiday
		if err := rows.Scan(&h.ID, &h.Date, &h.Reason, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan holiday row: %w", err)
		}
		holidays = append(holidays, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating holidays: %w", err)
	}

	return holidays, nil
}

// UpsertPeriod creates or replaces the attendance period for a class.
func (a *CalendarAdapter) UpsertPeriod(ctx context.Context, period *storage.Period) error {
	_, err := a.db.ExecContext(ctx, queryUpsertPeriod,
		period.ClassID,
		period.StartDate,
		period.EndDate,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert period: %w", err)
	}

	slog.Debug("[Postgres] Upserted period",
		"class_id", period.ClassID,
		"start_date", period.StartDate,
		"end_date", period.EndDate)
	return nil
}

// GetPeriod fetches the attendance period for a class.
func (a *CalendarAdapter) GetPeriod(ctx context.Context, classID string) (*storage.Period, error) {
	var p storage.Period
	err := a.db.QueryRowContext(ctx, queryGetPeriod, classID).
		Scan(&p.ClassID, &p.StartDate, &p.EndDate)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get period: %w", err)
	}

	return &p, nil
}
