package attendance

import (
	"github.com/shopspring/decimal"

	"github.com/rollcall-app/rollcall/internal/core/calendar"
)

// Summary is the aggregate view of an attendance history. It is derived
// data: recomputed on demand, never persisted, and never mutates the
// records it was computed from.
type Summary struct {
	PresentDays      int `json:"present_days"`
	ODDays           int `json:"od_days"`
	AbsentDays       int `json:"absent_days"`
	TotalWorkingDays int `json:"total_working_days"`

	// Percentage is only meaningful when Defined is true. Zero attendance
	// and "not enough data to compute" are different answers and callers
	// must be able to tell them apart.
	Percentage int  `json:"percentage"`
	Defined    bool `json:"defined"`
}

// Summarize folds an attendance history into a Summary.
//
// NotMarked records and unrecognized statuses contribute to no count: they
// are days without faculty action, not attendance days. The working-day
// denominator comes from the tally when one is available and positive;
// otherwise it falls back to the number of actual attendance records, which
// keeps the percentage sane when the period start date is unknown.
//
// The function is total: there is no input for which it fails.
func Summarize(history []Record, tally *calendar.Tally) Summary {
	var s Summary

	for _, rec := range history {
		switch rec.Status {
		case StatusPresent:
			s.PresentDays++
		case StatusOD:
			s.ODDays++
		case StatusAbsent:
			s.AbsentDays++
		}
	}

	if tally != nil && tally.WorkingDays > 0 {
		s.TotalWorkingDays = tally.WorkingDays
	} else {
		s.TotalWorkingDays = s.PresentDays + s.AbsentDays + s.ODDays
	}

	if s.TotalWorkingDays > 0 {
		attended := decimal.NewFromInt(int64(s.PresentDays + s.ODDays))
		total := decimal.NewFromInt(int64(s.TotalWorkingDays))
		pct := attended.Mul(decimal.NewFromInt(100)).Div(total).Round(0)
		s.Percentage = int(pct.IntPart())
		// Marks recorded on non-working days can push attended past the
		// tally's working days. The percentage still stays within [0, 100].
		if s.Percentage > 100 {
			s.Percentage = 100
		}
		s.Defined = true
	}

	return s
}
