package maintenance

import "time"

// Fraction of the interval after which a task is flagged as due soon.
const soonThreshold = 0.75

// StatusResult is the outcome of evaluating one (type, last record) pair.
type StatusResult struct {
	Status Status
	// NextDate is the calendar date the task falls due, nil when not
	// computable (no history, or no interval configured).
	NextDate *time.Time
	// DaysLeft is days until due; negative means overdue by that many days.
	DaysLeft *int
}

// ComputeStatus evaluates one maintenance type against the most recent
// matching record:
//
//   - no record at all: "none" (a task with no history is not overdue)
//   - no interval configured: "ok" (the type is exempt from scheduling)
//   - otherwise the elapsed/interval ratio decides: >= 1 "overdue",
//     >= 0.75 "soon", else "ok"
//
// A future-dated record yields a negative elapsed count and therefore "ok".
func ComputeStatus(typ Type, last *Record, today time.Time) StatusResult {
	if last == nil {
		return StatusResult{Status: StatusNone}
	}
	if typ.DefaultIntervalDays == nil || *typ.DefaultIntervalDays == 0 {
		return StatusResult{Status: StatusOK}
	}

	interval := *typ.DefaultIntervalDays
	elapsed := daysBetween(last.PerformedAt, today)

	// AddDate is calendar-correct across month and year rollover.
	next := midnight(last.PerformedAt).AddDate(0, 0, interval)
	left := interval - elapsed

	res := StatusResult{
		Status:   StatusOK,
		NextDate: &next,
		DaysLeft: &left,
	}

	ratio := float64(elapsed) / float64(interval)
	switch {
	case ratio >= 1.0:
		res.Status = StatusOverdue
	case ratio >= soonThreshold:
		res.Status = StatusSoon
	}
	return res
}

// midnight drops the time component, keeping the calendar date. Normalised
// to UTC so day arithmetic never crosses a DST transition.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// daysBetween counts whole calendar days from one date to another. Negative
// when from is in the future.
func daysBetween(from, to time.Time) int {
	return int(midnight(to).Sub(midnight(from)).Hours() / 24)
}
