package calendar

import (
	"fmt"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"
)

// nationalCalendars maps a region code to the published holiday definitions
// for that region. Regions are added here as institutions need them.
var nationalCalendars = map[string][]*cal.Holiday{
	"us": us.Holidays,
}

// NationalHolidayDates computes the observed dates of a region's national
// holidays that fall within [start, end]. The result is a list of canonical
// date strings plus the holiday names, suitable for seeding the institution's
// declared-holiday table.
func NationalHolidayDates(region string, start, end Date) (map[string]string, error) {
	defs, ok := nationalCalendars[region]
	if !ok {
		return nil, fmt.Errorf("unknown national holiday region %q", region)
	}
	if start.IsZero() || end.IsZero() || start.After(end) {
		return nil, fmt.Errorf("invalid national holiday range %s..%s", start, end)
	}

	dates := make(map[string]string)
	for year := start.Year; year <= end.Year; year++ {
		for _, def := range defs {
			_, observed := def.Calc(year)
			if observed.IsZero() {
				continue
			}
			d := DateOf(observed)
			if d.Before(start) || d.After(end) {
				continue
			}
			dates[d.String()] = def.Name
		}
	}
	return dates, nil
}
