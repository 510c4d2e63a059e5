package calendar

import (
	"log/slog"
	"time"
)

// HolidaySet is a deduplicated set of canonical YYYY-MM-DD date strings.
type HolidaySet map[string]struct{}

// Contains reports whether d is a declared holiday.
func (s HolidaySet) Contains(d Date) bool {
	_, ok := s[d.String()]
	return ok
}

// Add inserts a canonical date string into the set.
func (s HolidaySet) Add(date string) {
	s[date] = struct{}{}
}

// Dated is implemented by values that carry a holiday date, such as storage
// rows. Only currently-active holidays may be handed to the resolver; soft
// deletion is filtered out by the caller.
type Dated interface {
	HolidayDate() string
}

// ResolveHolidaySet normalizes a mixed list of holiday-like values into a
// HolidaySet. Accepted forms: canonical date strings, time.Time values
// (normalized via local calendar components), Date values, and anything
// implementing Dated. Entries that cannot be normalized are dropped and
// logged rather than failing the whole set; a broken holiday row must not
// take down a dashboard percentage.
func ResolveHolidaySet(raw []any) HolidaySet {
	set := make(HolidaySet, len(raw))
	for _, entry := range raw {
		date, ok := normalizeHoliday(entry)
		if !ok {
			slog.Warn("Dropping unnormalizable holiday entry", "entry", entry)
			continue
		}
		set.Add(date)
	}
	return set
}

func normalizeHoliday(entry any) (string, bool) {
	switch v := entry.(type) {
	case Date:
		if v.IsZero() {
			return "", false
		}
		return v.String(), true
	case time.Time:
		if v.IsZero() {
			return "", false
		}
		return DateOf(v).String(), true
	case string:
		return normalizeDateString(v)
	case Dated:
		return normalizeDateString(v.HolidayDate())
	default:
		return "", false
	}
}

// normalizeDateString accepts a canonical date string or anything with a
// canonical 10-character date prefix (e.g. an RFC 3339 timestamp) and
// round-trips it through ParseDate to reject garbage.
func normalizeDateString(s string) (string, bool) {
	if len(s) < 10 {
		return "", false
	}
	d, err := ParseDate(s[:10])
	if err != nil {
		return "", false
	}
	return d.String(), true
}
