package reporting

import (
	"github.com/rollcall-app/rollcall/internal/core/attendance"
	"github.com/rollcall-app/rollcall/internal/core/calendar"
)

// SummaryRequest identifies whose attendance to summarize.
type SummaryRequest struct {
	ClassID   string `form:"class_id" binding:"required"`
	StudentID string `uri:"student_id" binding:"required"`
}

// SummaryResponse is the full attendance picture for one student in one
// class: the aggregate summary, the working-day diagnostics behind its
// denominator, and the history it was computed from.
type SummaryResponse struct {
	ClassID   string `json:"class_id"`
	StudentID string `json:"student_id"`

	PresentDays      int `json:"present_days"`
	ODDays           int `json:"od_days"`
	AbsentDays       int `json:"absent_days"`
	TotalWorkingDays int `json:"total_working_days"`

	// AttendancePercentage is null, not 0, when there is no data to compute
	// from. Zero percent and no data are different answers.
	AttendancePercentage *int `json:"attendance_percentage"`

	Tally calendar.Tally `json:"tally"`

	PeriodStart string `json:"period_start,omitempty"`
	PeriodEnd   string `json:"period_end,omitempty"`

	History []attendance.Record `json:"history"`
}

func newSummaryResponse(req SummaryRequest, history []attendance.Record, tally calendar.Tally, summary attendance.Summary, periodStart, periodEnd string) *SummaryResponse {
	resp := &SummaryResponse{
		ClassID:          req.ClassID,
		StudentID:        req.StudentID,
		PresentDays:      summary.PresentDays,
		ODDays:           summary.ODDays,
		AbsentDays:       summary.AbsentDays,
		TotalWorkingDays: summary.TotalWorkingDays,
		Tally:            tally,
		PeriodStart:      periodStart,
		PeriodEnd:        periodEnd,
		History:          history,
	}
	if summary.Defined {
		pct := summary.Percentage
		resp.AttendancePercentage = &pct
	}
	if resp.History == nil {
		resp.History = []attendance.Record{}
	}
	return resp
}
