package generic

import "time"

// =============================================================================
// PERIOD - The month an evaluation is computed for
// =============================================================================

// Period defines the time boundary for an evaluation.
// Quotas are ALWAYS measured over a period, never at a single date.
//
// In practice the period is a calendar month:
//   - November 2025: Nov 1 - Nov 30
type Period struct {
	Start TimePoint
	End   TimePoint
}

// MonthPeriod returns the calendar month as a period.
func MonthPeriod(year int, month time.Month) (Period, error) {
	if month < time.January || month > time.December {
		return Period{}, &InvalidArgumentError{Field: "period_month", Value: int(month), Reason: "must be 1..12"}
	}
	if year < 1 || year > 9999 {
		return Period{}, &InvalidArgumentError{Field: "period_year", Value: year, Reason: "must be 1..9999"}
	}
	return Period{Start: StartOfMonth(year, month), End: EndOfMonth(year, month)}, nil
}

// Validate checks Start <= End.
func (p Period) Validate() error {
	if p.End.Before(p.Start) {
		return ErrInvalidPeriod
	}
	return nil
}

// Days returns all days in the period as a slice of TimePoints.
func (p Period) Days() []TimePoint {
	if p.End.Before(p.Start) {
		return nil
	}
	days := make([]TimePoint, 0, DaysBetween(p.Start, p.End)+1)
	current := p.Start
	for current.BeforeOrEqual(p.End) {
		days = append(days, current)
		current = current.AddDays(1)
	}
	return days
}

// Clamp pins t into [Start, End].
func (p Period) Clamp(t TimePoint) TimePoint {
	if t.Before(p.Start) {
		return p.Start
	}
	if t.After(p.End) {
		return p.End
	}
	return t
}

// String returns a string representation of the period.
func (p Period) String() string {
	return "[" + p.Start.String() + ", " + p.End.String() + "]"
}
