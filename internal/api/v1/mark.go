package v1

import (
	"fmt"
	"time"

	"github.com/rollcall-app/rollcall/internal/core/attendance"
	"github.com/rollcall-app/rollcall/internal/core/calendar"
)

// Mark is the atomic unit of attendance: one faculty action marking one
// student in one class on one day. A second mark for the same
// (class, student, date) is an edit and wins over the first.
type Mark struct {
	// ID is a client-supplied or server-generated identifier for the marking
	// action, used for audit logging only. Idempotency runs on the
	// (class_id, student_id, date) key, not on ID.
	ID string `json:"id"`

	ClassID   string `json:"class_id"`
	StudentID string `json:"student_id"`

	// Date is the attendance day in canonical YYYY-MM-DD form, in the
	// institution's calendar. Never a timestamp.
	Date string `json:"date"`

	// Status is one of Present, Absent, OD, NotMarked.
	Status string `json:"status"`

	// Reason is optional free text, normally present only for Absent or OD.
	Reason string `json:"reason,omitempty"`

	// MarkedBy identifies the faculty member performing the action.
	MarkedBy string `json:"marked_by"`

	// MarkedAt is when the service received the mark (server-side clock).
	MarkedAt time.Time `json:"marked_at"`

	// Seq is a monotonic sequence assigned by the database on write.
	// It orders stream replay and is not exposed in the public API.
	Seq int64 `json:"-"`
}

// Validate ensures the mark carries all required attributes and a
// well-formed date and status.
func (m *Mark) Validate() error {
	if m.ClassID == "" {
		return fmt.Errorf("class_id is required")
	}
	if m.StudentID == "" {
		return fmt.Errorf("student_id is required")
	}
	if _, err := calendar.ParseDate(m.Date); err != nil {
		return fmt.Errorf("date must be YYYY-MM-DD: %w", err)
	}
	if !attendance.Status(m.Status).Known() {
		return fmt.Errorf("unknown status %q", m.Status)
	}
	if m.MarkedBy == "" {
		return fmt.Errorf("marked_by is required")
	}
	return nil
}

// Record converts the mark to its core history representation.
func (m *Mark) Record() attendance.Record {
	return attendance.Record{
		Date:   m.Date,
		Status: attendance.Status(m.Status),
		Reason: m.Reason,
	}
}

// HolidayDeclaration is the request body for declaring an institutional
// holiday.
type HolidayDeclaration struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

// Validate checks the declaration for a well-formed date and a reason.
func (h *HolidayDeclaration) Validate() error {
	if _, err := calendar.ParseDate(h.Date); err != nil {
		return fmt.Errorf("date must be YYYY-MM-DD: %w", err)
	}
	if h.Reason == "" {
		return fmt.Errorf("reason is required")
	}
	return nil
}

// StreamUpdate is the push payload delivered to attendance stream
// subscribers after a mark lands. It carries exactly what the incremental
// session merge needs: the date key and the new status.
type StreamUpdate struct {
	StudentID string `json:"student_id"`
	ClassID   string `json:"class_id"`
	Date      string `json:"date"`
	Status    string `json:"status"`
	Reason    string `json:"reason,omitempty"`
}

// Record converts the update to its core history representation.
func (u StreamUpdate) Record() attendance.Record {
	return attendance.Record{
		Date:   u.Date,
		Status: attendance.Status(u.Status),
		Reason: u.Reason,
	}
}
