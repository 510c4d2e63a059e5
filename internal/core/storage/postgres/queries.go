package postgres

// SQL queries for attendance storage. Calendar dates are stored as canonical
// YYYY-MM-DD text so nothing in the persistence layer ever shifts a day
// across a timezone boundary.

const (
	// querySaveMark upserts a mark on the (class_id, student_id, mark_date)
	// key. Edits are last-write-wins; an empty incoming reason keeps the
	// reason already on file. RETURNING retrieves the auto-generated
	// mark_seq used to order stream replay.
	querySaveMark = `
		INSERT INTO marks (
			id, class_id, student_id, mark_date,
			status, reason, marked_by, marked_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (class_id, student_id, mark_date) DO UPDATE SET
			status    = EXCLUDED.status,
			reason    = COALESCE(NULLIF(EXCLUDED.reason, ''), marks.reason),
			marked_by = EXCLUDED.marked_by,
			marked_at = EXCLUDED.marked_at
		RETURNING mark_seq
	`

	// queryListMarks fetches one student's full class history, oldest first.
	queryListMarks = `
		SELECT
			id, class_id, student_id, mark_date,
			status, reason, marked_by, marked_at, mark_seq
		FROM marks
		WHERE class_id = $1
		  AND student_id = $2
		ORDER BY mark_date ASC
	`

	querySaveHoliday = `
		INSERT INTO holidays (id, holiday_date, reason, created_at)
		VALUES ($1, $2, $3, $4)
	`

	// queryDeleteHoliday soft-deletes: the row stays for audit, every read
	// path filters on deleted_at IS NULL.
	queryDeleteHoliday = `
		UPDATE holidays
		SET deleted_at = NOW()
		WHERE id = $1
		  AND deleted_at IS NULL
	`

	queryListActiveHolidays = `
		SELECT id, holiday_date, reason, created_at
		FROM holidays
		WHERE deleted_at IS NULL
		ORDER BY holiday_date ASC
	`

	queryUpsertPeriod = `
		INSERT INTO periods (class_id, start_date, end_date)
		VALUES ($1, $2, NULLIF($3, ''))
		ON CONFLICT (class_id) DO UPDATE SET
			start_date = EXCLUDED.start_date,
			end_date   = EXCLUDED.end_date
	`

	queryGetPeriod = `
		SELECT class_id, start_date, COALESCE(end_date, '')
		FROM periods
		WHERE class_id = $1
	`
)
