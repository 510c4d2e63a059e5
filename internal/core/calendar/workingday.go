package calendar

import "time"

// Tally is the diagnostic breakdown of a date range into working days and
// excluded days. It is derived data, recomputed on demand and never persisted.
type Tally struct {
	WorkingDays      int `json:"working_days"`
	SkippedSaturdays int `json:"skipped_saturdays"`
	SkippedSundays   int `json:"skipped_sundays"`
	SkippedHolidays  int `json:"skipped_holidays"`
}

// CalendarDays returns the total number of calendar days the tally covers.
// For any walked range this equals the inclusive day count of the range.
func (t Tally) CalendarDays() int {
	return t.WorkingDays + t.SkippedSaturdays + t.SkippedSundays + t.SkippedHolidays
}

// CountWorkingDays walks [start, end] one day at a time and classifies each
// day as working, weekend, or holiday.
//
// A zero end means "through today". The effective end is clamped to today in
// all cases: attendance periods never count days that haven't happened yet.
// A zero start, or a start after the effective end, yields a zero tally —
// never a negative count — so callers can fall back to an alternate
// working-day source.
//
// Classification order matters: weekends are excluded unconditionally, and
// the holiday set is only consulted for weekdays. A holiday declared on a
// Saturday or Sunday therefore counts toward the weekend tally, not the
// holiday tally, keeping the partition of the range exact.
func CountWorkingDays(start, end, today Date, holidays HolidaySet) Tally {
	var tally Tally

	if start.IsZero() || today.IsZero() {
		return tally
	}

	effectiveEnd := today
	if !end.IsZero() && end.Before(today) {
		effectiveEnd = end
	}
	if start.After(effectiveEnd) {
		return tally
	}

	for d := start; !d.After(effectiveEnd); d = d.Next() {
		switch {
		case d.Weekday() == time.Sunday:
			tally.SkippedSundays++
		case d.Weekday() == time.Saturday:
			tally.SkippedSaturdays++
		case holidays.Contains(d):
			tally.SkippedHolidays++
		default:
			tally.WorkingDays++
		}
	}

	return tally
}

// CountWorkingDaysBetween is the string-boundary variant of CountWorkingDays.
// Unparsable start dates degrade to a zero tally; an unparsable end date is
// treated as absent. This is the entry point for period rows coming straight
// off the wire or out of storage.
func CountWorkingDaysBetween(start, end string, today Date, holidays HolidaySet) Tally {
	startDate, err := ParseDate(start)
	if err != nil {
		return Tally{}
	}

	var endDate Date
	if end != "" {
		if parsed, err := ParseDate(end); err == nil {
			endDate = parsed
		}
	}

	return CountWorkingDays(startDate, endDate, today, holidays)
}
