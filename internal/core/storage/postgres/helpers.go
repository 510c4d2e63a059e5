package postgres

import (
	"fmt"

	v1 "github.com/rollcall-app/rollcall/internal/api/v1"
)

type scanner interface {
	Scan(dest ...interface{}) error
}

// scanMarkRow scans a database row into a Mark struct.
// Compatible with both sql.Row (single) and sql.Rows (multiple).
func scanMarkRow(row scanner) (*v1.Mark, error) {
	var mark v1.Mark

	err := row.Scan(
		&mark.ID,
		&mark.ClassID,
		&mark.StudentID,
		&mark.Date,
		&mark.Status,
		&mark.Reason,
		&mark.MarkedBy,
		&mark.MarkedAt,
		&mark.Seq,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan mark row: %w", err)
	}

	return &mark, nil
}
