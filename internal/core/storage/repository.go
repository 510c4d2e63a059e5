package storage

import (
	"context"
	"errors"
	"time"

	v1 "github.com/rollcall-app/rollcall/internal/api/v1"
)

// ErrNotFound is returned when a requested row does not exist or has been
// soft-deleted.
var ErrNotFound = errors.New("not found")

// Holiday is a declared institutional holiday. Soft-deleted rows never leave
// the store: every read path filters them out, so the working-day engine
// only ever sees currently-active holidays.
type Holiday struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

// HolidayDate satisfies the calendar resolver's Dated input form.
func (h Holiday) HolidayDate() string { return h.Date }

// Period is the per-class attendance period configuration: the date from
// which working days are counted. EndDate is empty for open periods.
type Period struct {
	ClassID   string `json:"class_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date,omitempty"`
}

// MarkStore persists attendance marks.
type MarkStore interface {
	// SaveMark upserts a mark on the (class_id, student_id, date) key with
	// last-write-wins semantics and populates mark.Seq from the database.
	SaveMark(ctx context.Context, mark *v1.Mark) error

	// ListMarks fetches a student's full history for a class, oldest first.
	ListMarks(ctx context.Context, classID, studentID string) ([]*v1.Mark, error)
}

// HolidayStore persists declared holidays with soft deletion.
type HolidayStore interface {
	SaveHoliday(ctx context.Context, holiday *Holiday) error

	// DeleteHoliday soft-deletes by id. Returns ErrNotFound when the row is
	// missing or already deleted.
	DeleteHoliday(ctx context.Context, id string) error

	// ListActiveHolidays returns all holidays that have not been deleted.
	ListActiveHolidays(ctx context.Context) ([]Holiday, error)
}

// PeriodStore persists per-class attendance periods.
type PeriodStore interface {
	UpsertPeriod(ctx context.Context, period *Period) error

	// GetPeriod returns ErrNotFound when no period is configured for the
	// class; callers fall back to the record-count denominator.
	GetPeriod(ctx context.Context, classID string) (*Period, error)
}
