package attendance

// Status is a daily attendance status as recorded by faculty.
type Status string

const (
	StatusPresent   Status = "Present"
	StatusAbsent    Status = "Absent"
	StatusOD        Status = "OD"
	StatusNotMarked Status = "NotMarked"
)

// Known reports whether s is one of the fixed status values. Anything else
// is treated like NotMarked and excluded from every count; the vocabulary
// may grow over time and an unrecognized value must not be an error.
func (s Status) Known() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusOD, StatusNotMarked:
		return true
	}
	return false
}

// CountsAsPresent reports whether s contributes to the percentage numerator.
// OD (institutionally authorized absence) is not penalized: it counts as
// present for the percentage while staying separately reported.
func (s Status) CountsAsPresent() bool {
	return s == StatusPresent || s == StatusOD
}

// Record is one day of attendance history for a student in a class.
// Date is always a canonical YYYY-MM-DD string in the institution's calendar.
type Record struct {
	Date   string `json:"date"`
	Status Status `json:"status"`
	Reason string `json:"reason,omitempty"`
}
