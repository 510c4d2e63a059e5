package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) Date { return Date{Year: y, Month: m, Day: d} }

func TestCountWorkingDays_FullWeek(t *testing.T) {
	// Mon 2024-01-01 through Sun 2024-01-07, no holidays.
	tally := CountWorkingDays(
		date(2024, time.January, 1),
		date(2024, time.January, 7),
		date(2024, time.June, 1),
		nil,
	)

	require.Equal(t, Tally{WorkingDays: 5, SkippedSaturdays: 1, SkippedSundays: 1}, tally)
	require.Equal(t, 7, tally.CalendarDays())
}

func TestCountWorkingDays_MidweekHoliday(t *testing.T) {
	holidays := ResolveHolidaySet([]any{"2024-01-03"}) // Wednesday

	tally := CountWorkingDays(
		date(2024, time.January, 1),
		date(2024, time.January, 7),
		date(2024, time.June, 1),
		holidays,
	)

	require.Equal(t, Tally{WorkingDays: 4, SkippedSaturdays: 1, SkippedSundays: 1, SkippedHolidays: 1}, tally)
	require.Equal(t, 7, tally.CalendarDays())
}

func TestCountWorkingDays_WeekendHolidayIsInert(t *testing.T) {
	// A holiday declared on Saturday must land in the weekend tally, not the
	// holiday tally, so the range partition stays exact.
	base := CountWorkingDays(
		date(2024, time.January, 1),
		date(2024, time.January, 7),
		date(2024, time.June, 1),
		nil,
	)
	withWeekendHoliday := CountWorkingDays(
		date(2024, time.January, 1),
		date(2024, time.January, 7),
		date(2024, time.June, 1),
		ResolveHolidaySet([]any{"2024-01-06", "2024-01-07"}), // Sat, Sun
	)

	require.Equal(t, base, withWeekendHoliday)
	require.Zero(t, withWeekendHoliday.SkippedHolidays)
}

func TestCountWorkingDays_EdgePolicy(t *testing.T) {
	today := date(2024, time.January, 10)

	tests := []struct {
		name  string
		start Date
		end   Date
		want  Tally
	}{
		{
			name: "zero start yields zero tally",
			end:  date(2024, time.January, 7),
		},
		{
			name:  "period not started yet",
			start: date(2024, time.February, 1),
			end:   date(2024, time.February, 7),
		},
		{
			name:  "end before start never negative",
			start: date(2024, time.January, 5),
			end:   date(2024, time.January, 2),
		},
		{
			name:  "future end clamped to today",
			start: date(2024, time.January, 8), // Monday
			end:   date(2024, time.December, 31),
			// Mon Jan 8 .. Wed Jan 10.
			want: Tally{WorkingDays: 3},
		},
		{
			name:  "zero end defaults to today",
			start: date(2024, time.January, 8),
			want:  Tally{WorkingDays: 3},
		},
		{
			name:  "single day range",
			start: today,
			end:   today,
			want:  Tally{WorkingDays: 1},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := CountWorkingDays(tc.start, tc.end, today, nil)
			require.Equal(t, tc.want, got)
			require.GreaterOrEqual(t, got.WorkingDays, 0)
		})
	}
}

func TestCountWorkingDays_PartitionHoldsAcrossMonths(t *testing.T) {
	// 2024-01-15 .. 2024-03-10 spans a leap February: 56 calendar days.
	start := date(2024, time.January, 15)
	end := date(2024, time.March, 10)
	holidays := ResolveHolidaySet([]any{"2024-01-26", "2024-02-14", "2024-03-09"}) // last one is a Saturday

	tally := CountWorkingDays(start, end, date(2024, time.June, 1), holidays)

	days := 0
	for d := start; !d.After(end); d = d.Next() {
		days++
	}
	require.Equal(t, days, tally.CalendarDays())
	require.Equal(t, 2, tally.SkippedHolidays)
}

func TestCountWorkingDaysBetween(t *testing.T) {
	today := date(2024, time.June, 1)

	t.Run("valid strings", func(t *testing.T) {
		tally := CountWorkingDaysBetween("2024-01-01", "2024-01-07", today, nil)
		require.Equal(t, 5, tally.WorkingDays)
	})

	t.Run("unparsable start degrades to zero", func(t *testing.T) {
		require.Zero(t, CountWorkingDaysBetween("garbage", "2024-01-07", today, nil))
		require.Zero(t, CountWorkingDaysBetween("", "2024-01-07", today, nil))
	})

	t.Run("unparsable end treated as open", func(t *testing.T) {
		tally := CountWorkingDaysBetween("2024-05-27", "garbage", today, nil)
		// Mon May 27 .. Sat Jun 1.
		require.Equal(t, Tally{WorkingDays: 5, SkippedSaturdays: 1}, tally)
	})
}

func TestNationalHolidayDates(t *testing.T) {
	dates, err := NationalHolidayDates("us", date(2024, time.January, 1), date(2024, time.December, 31))
	require.NoError(t, err)

	// New Year's Day 2024 fell on a Monday, observed same day.
	require.Contains(t, dates, "2024-01-01")
	require.Contains(t, dates, "2024-12-25")

	_, err = NationalHolidayDates("atlantis", date(2024, time.January, 1), date(2024, time.December, 31))
	require.Error(t, err)

	_, err = NationalHolidayDates("us", date(2024, time.December, 31), date(2024, time.January, 1))
	require.Error(t, err)
}
