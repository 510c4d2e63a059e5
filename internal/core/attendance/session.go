package attendance

import "github.com/rollcall-app/rollcall/internal/core/calendar"

// Session is an owned snapshot of one student's attendance state: the
// history, the working-day tally computed for the period, and the summary
// derived from both. Every operation returns a new Session value instead of
// mutating in place, so a consumer re-rendering mid-update never observes a
// half-applied state.
type Session struct {
	History []Record
	Tally   *calendar.Tally
	Summary Summary

	loaded  bool
	pending []Record
}

// NewSession returns a session that has not yet loaded its full history.
// Updates applied before the history arrives are buffered and replayed by
// WithHistory, so a push channel that outruns the initial fetch loses
// nothing and crashes nothing.
func NewSession() Session {
	return Session{}
}

// WithHistory installs the fully fetched history and tally, replays any
// buffered updates in arrival order, and computes the summary.
func (s Session) WithHistory(history []Record, tally *calendar.Tally) Session {
	next := Session{
		History: append([]Record(nil), history...),
		Tally:   tally,
		loaded:  true,
	}
	for _, rec := range s.pending {
		next.History = mergeRecord(next.History, rec)
	}
	next.Summary = Summarize(next.History, next.Tally)
	return next
}

// Apply folds a single attendance change into the session and recomputes
// the summary against the tally already held by the session: a single day's
// status flip changes the present/absent/OD counts, never the working-day
// denominator.
//
// Merging is last-write-wins on the date key and idempotent: applying the
// same record twice yields the same session as applying it once.
func (s Session) Apply(rec Record) Session {
	if !s.loaded {
		buffered := Session{pending: make([]Record, 0, len(s.pending)+1)}
		buffered.pending = append(buffered.pending, s.pending...)
		buffered.pending = append(buffered.pending, rec)
		return buffered
	}

	next := Session{
		History: mergeRecord(s.History, rec),
		Tally:   s.Tally,
		loaded:  true,
	}
	next.Summary = Summarize(next.History, next.Tally)
	return next
}

// mergeRecord returns a new history with rec applied. An existing record for
// the same date has its status replaced in place, keeping an already-recorded
// reason unless the update carries its own. A record for an unseen date is
// prepended; history order does not affect the summary, which counts by
// status only.
func mergeRecord(history []Record, rec Record) []Record {
	for i, existing := range history {
		if existing.Date != rec.Date {
			continue
		}
		merged := make([]Record, len(history))
		copy(merged, history)
		merged[i].Status = rec.Status
		if rec.Reason != "" {
			merged[i].Reason = rec.Reason
		}
		return merged
	}

	merged := make([]Record, 0, len(history)+1)
	merged = append(merged, rec)
	merged = append(merged, history...)
	return merged
}
