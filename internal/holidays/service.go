package holidays

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	v1 "github.com/rollcall-app/rollcall/internal/api/v1"
	"github.com/rollcall-app/rollcall/internal/core/calendar"
	"github.com/rollcall-app/rollcall/internal/core/storage"
)

// Service handles holiday and attendance-period administration. Declaring or
// removing a holiday changes the working-day denominator for every student,
// so all writes go through the store and summaries pick them up on the next
// read; nothing is cached here.
type Service struct {
	store   storage.HolidayStore
	periods storage.PeriodStore
	nowFn   func() time.Time
}

func NewService(store storage.HolidayStore, periods storage.PeriodStore) *Service {
	if store == nil {
		panic("holidays: store must not be nil")
	}
	if periods == nil {
		panic("holidays: period store must not be nil")
	}
	return &Service{
		store:   store,
		periods: periods,
		nowFn:   func() time.Time { return time.Now().UTC() },
	}
}

// Declare records a new institutional holiday.
func (s *Service) Declare(ctx context.Context, decl v1.HolidayDeclaration) (*storage.Holiday, error) {
	if err := decl.Validate(); err != nil {
		return nil, err
	}

	holiday := &storage.Holiday{
		ID:        uuid.New().String(),
		Date:      decl.Date,
		Reason:    decl.Reason,
		CreatedAt: s.nowFn(),
	}
	if err := s.store.SaveHoliday(ctx, holiday); err != nil {
		return nil, fmt.Errorf("save holiday: %w", err)
	}

	slog.Info("Holiday declared", "id", holiday.ID, "date", holiday.Date, "reason", holiday.Reason)
	return holiday, nil
}

// Remove soft-deletes a holiday by id. Returns storage.ErrNotFound when the
// holiday does not exist or was already removed.
func (s *Service) Remove(ctx context.Context, id string) error {
	if err := s.store.DeleteHoliday(ctx, id); err != nil {
		return err
	}
	slog.Info("Holiday removed", "id", id)
	return nil
}

// List returns all currently active holidays.
func (s *Service) List(ctx context.Context) ([]storage.Holiday, error) {
	return s.store.ListActiveHolidays(ctx)
}

// ErrInvalidPeriod marks period validation failures that should return
// HTTP 400.
var ErrInvalidPeriod = errors.New("invalid period")

// SetPeriod upserts the attendance period for a class.
func (s *Service) SetPeriod(ctx context.Context, period *storage.Period) error {
	if period.ClassID == "" {
		return fmt.Errorf("%w: class_id is required", ErrInvalidPeriod)
	}
	start, err := calendar.ParseDate(period.StartDate)
	if err != nil {
		return fmt.Errorf("%w: start_date must be YYYY-MM-DD: %v", ErrInvalidPeriod, err)
	}
	if period.EndDate != "" {
		end, err := calendar.ParseDate(period.EndDate)
		if err != nil {
			return fmt.Errorf("%w: end_date must be YYYY-MM-DD: %v", ErrInvalidPeriod, err)
		}
		if end.Before(start) {
			return fmt.Errorf("%w: end_date %s precedes start_date %s", ErrInvalidPeriod, period.EndDate, period.StartDate)
		}
	}

	if err := s.periods.UpsertPeriod(ctx, period); err != nil {
		return fmt.Errorf("upsert period: %w", err)
	}
	slog.Info("Attendance period set", "class_id", period.ClassID, "start", period.StartDate, "end", period.EndDate)
	return nil
}

// Period returns the configured attendance period for a class.
func (s *Service) Period(ctx context.Context, classID string) (*storage.Period, error) {
	return s.periods.GetPeriod(ctx, classID)
}

// Seed loads startup holidays into the store, skipping dates already
// declared. It combines a YAML seed file and a national calendar, either of
// which may be absent.
func (s *Service) Seed(ctx context.Context, seedFile, nationalRegion string, year int) error {
	var declarations []v1.HolidayDeclaration

	if seedFile != "" {
		fromFile, err := LoadSeedFile(seedFile)
		if err != nil {
			return fmt.Errorf("load seed file: %w", err)
		}
		declarations = append(declarations, fromFile...)
	}

	if nationalRegion != "" {
		national, err := nationalDeclarations(nationalRegion, year)
		if err != nil {
			return err
		}
		declarations = append(declarations, national...)
	}

	if len(declarations) == 0 {
		return nil
	}

	existing, err := s.store.ListActiveHolidays(ctx)
	if err != nil {
		return fmt.Errorf("list holidays: %w", err)
	}
	declared := make(map[string]struct{}, len(existing))
	for _, h := range existing {
		declared[h.Date] = struct{}{}
	}

	seeded := 0
	for _, decl := range declarations {
		if _, ok := declared[decl.Date]; ok {
			continue
		}
		if _, err := s.Declare(ctx, decl); err != nil {
			slog.Warn("Skipping invalid seed holiday", "date", decl.Date, "error", err)
			continue
		}
		declared[decl.Date] = struct{}{}
		seeded++
	}

	slog.Info("Holiday seeding complete", "seeded", seeded, "skipped", len(declarations)-seeded)
	return nil
}

// nationalDeclarations expands a national calendar for one full year into
// holiday declarations.
func nationalDeclarations(region string, year int) ([]v1.HolidayDeclaration, error) {
	start := calendar.Date{Year: year, Month: time.January, Day: 1}
	end := calendar.Date{Year: year, Month: time.December, Day: 31}

	dates, err := calendar.NationalHolidayDates(region, start, end)
	if err != nil {
		return nil, fmt.Errorf("national calendar: %w", err)
	}

	declarations := make([]v1.HolidayDeclaration, 0, len(dates))
	for date, name := range dates {
		declarations = append(declarations, v1.HolidayDeclaration{Date: date, Reason: name})
	}
	return declarations, nil
}
