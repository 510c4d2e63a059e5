package calendar

import (
	"fmt"
	"time"
)

// canonicalLayout is the wire format for calendar dates everywhere in the system.
const canonicalLayout = "2006-01-02"

// Date is a timezone-free calendar date. All range iteration and comparison
// in the working-day engine happens on this type, never on instants, so a
// holiday declared near midnight can't shift by a day between layers.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses a canonical YYYY-MM-DD string into a Date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(canonicalLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid calendar date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// DateOf extracts the calendar components of t as displayed in t's location.
// This is deliberately not a UTC conversion: an instant late in the evening
// local time must map to the local calendar day, not the UTC one.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Today returns the current calendar date in the given location.
// Callers inject this into the working-day calculator so the calculator
// itself never reads the system clock.
func Today(loc *time.Location) Date {
	if loc == nil {
		loc = time.Local
	}
	return DateOf(time.Now().In(loc))
}

// String renders the date in canonical YYYY-MM-DD form.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Weekday returns the day of week for d.
func (d Date) Weekday() time.Weekday {
	return d.time().Weekday()
}

// Next returns the following calendar day, rolling over months and years.
func (d Date) Next() Date {
	return DateOf(d.time().AddDate(0, 0, 1))
}

// After reports whether d falls strictly after o.
func (d Date) After(o Date) bool {
	if d.Year != o.Year {
		return d.Year > o.Year
	}
	if d.Month != o.Month {
		return d.Month > o.Month
	}
	return d.Day > o.Day
}

// Before reports whether d falls strictly before o.
func (d Date) Before(o Date) bool {
	return o.After(d)
}

// time converts d to a UTC midnight instant for weekday and arithmetic only.
// The instant never leaves this package.
func (d Date) time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}
