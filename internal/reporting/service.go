package reporting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/rollcall-app/rollcall/internal/core/attendance"
	"github.com/rollcall-app/rollcall/internal/core/calendar"
	"github.com/rollcall-app/rollcall/internal/core/storage"
)

// ErrInvalidQuery marks request validation errors that should return HTTP 400.
var ErrInvalidQuery = errors.New("invalid summary query")

// Service implements the reporting/query layer. Each summary is recomputed
// on demand from the authoritative mark, holiday, and period rows; nothing
// derived is ever persisted.
type Service struct {
	marks    storage.MarkStore
	holidays storage.HolidayStore
	periods  storage.PeriodStore

	// summarizeGroup dedupes concurrent identical summary computations,
	// e.g. a class dashboard fanning out one request per widget.
	summarizeGroup singleflight.Group

	loc     *time.Location
	todayFn func() calendar.Date
}

// NewService creates a new reporting service. The institution's timezone
// decides what "today" means for open attendance periods.
func NewService(marks storage.MarkStore, holidays storage.HolidayStore, periods storage.PeriodStore, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		marks:    marks,
		holidays: holidays,
		periods:  periods,
		loc:      loc,
		todayFn:  func() calendar.Date { return calendar.Today(loc) },
	}
}

// Summarize computes the attendance summary for one student in one class.
func (s *Service) Summarize(ctx context.Context, req SummaryRequest) (*SummaryResponse, error) {
	if req.ClassID == "" {
		return nil, invalidQueryf("class_id is required")
	}
	if req.StudentID == "" {
		return nil, invalidQueryf("student_id is required")
	}

	key := req.ClassID + "|" + req.StudentID
	result, err, _ := s.summarizeGroup.Do(key, func() (interface{}, error) {
		return s.summarize(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	return result.(*SummaryResponse), nil
}

func (s *Service) summarize(ctx context.Context, req SummaryRequest) (*SummaryResponse, error) {
	history, err := s.loadHistory(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	tally, periodStart, periodEnd, err := s.computeTally(ctx, req.ClassID)
	if err != nil {
		return nil, err
	}

	summary := attendance.Summarize(history, &tally)

	return newSummaryResponse(req, history, tally, summary, periodStart, periodEnd), nil
}

func (s *Service) loadHistory(ctx context.Context, req SummaryRequest) ([]attendance.Record, error) {
	marks, err := s.marks.ListMarks(ctx, req.ClassID, req.StudentID)
	if err != nil {
		return nil, err
	}

	history := make([]attendance.Record, 0, len(marks))
	for _, mark := range marks {
		history = append(history, mark.Record())
	}
	return history, nil
}

// computeTally resolves the class period and active holidays, then runs the
// working-day walk. A missing period is not an error: the tally stays zero
// and the aggregator falls back to counting actual attendance records.
func (s *Service) computeTally(ctx context.Context, classID string) (calendar.Tally, string, string, error) {
	period, err := s.periods.GetPeriod(ctx, classID)
	if errors.Is(err, storage.ErrNotFound) {
		slog.Debug("No attendance period configured, falling back to record count", "class_id", classID)
		return calendar.Tally{}, "", "", nil
	}
	if err != nil {
		return calendar.Tally{}, "", "", fmt.Errorf("load period: %w", err)
	}

	holidaySet, err := s.resolveHolidays(ctx)
	if err != nil {
		return calendar.Tally{}, "", "", err
	}

	tally := calendar.CountWorkingDaysBetween(period.StartDate, period.EndDate, s.todayFn(), holidaySet)
	return tally, period.StartDate, period.EndDate, nil
}

func (s *Service) resolveHolidays(ctx context.Context) (calendar.HolidaySet, error) {
	holidays, err := s.holidays.ListActiveHolidays(ctx)
	if err != nil {
		return nil, fmt.Errorf("load holidays: %w", err)
	}

	raw := make([]any, 0, len(holidays))
	for _, h := range holidays {
		raw = append(raw, h)
	}
	return calendar.ResolveHolidaySet(raw), nil
}

// Tally computes only the working-day diagnostics for a class period,
// without touching any student's history.
func (s *Service) Tally(ctx context.Context, classID string) (*calendar.Tally, error) {
	if classID == "" {
		return nil, invalidQueryf("class_id is required")
	}

	tally, _, _, err := s.computeTally(ctx, classID)
	if err != nil {
		return nil, err
	}
	return &tally, nil
}

func invalidQueryf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidQuery, fmt.Sprintf(format, args...))
}
