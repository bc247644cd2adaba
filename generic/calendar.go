package generic

// =============================================================================
// BUSINESS CALENDAR - Weekday counting with a holiday set
// =============================================================================

// BusinessDaysInclusive counts the business days in [start, end].
//
// A business day is Monday-Friday and not a holiday. Holidays that fall on a
// weekend or outside the range change nothing. A start after end yields 0.
func BusinessDaysInclusive(start, end TimePoint, holidays HolidayCalendar) int {
	if start.After(end) {
		return 0
	}
	count := 0
	for d := start; d.BeforeOrEqual(end); d = d.AddDays(1) {
		if d.IsWorkdayWithHolidays(holidays) {
			count++
		}
	}
	return count
}

// CalendarSnapshot is the business-day picture of a period as of one date.
// It is derived once per evaluation.
type CalendarSnapshot struct {
	Period    Period
	AsOf      TimePoint
	Total     int
	Elapsed   int
	Remaining int
}

// SnapshotFor derives the snapshot of period as of today.
//
// Elapsed counts from the period start through today, with today pinned to
// the period end once the month is over. A today before the period start
// leaves Elapsed at 0.
func SnapshotFor(period Period, today TimePoint, holidays HolidayCalendar) CalendarSnapshot {
	total := BusinessDaysInclusive(period.Start, period.End, holidays)

	elapsed := 0
	if !today.Before(period.Start) {
		elapsed = BusinessDaysInclusive(period.Start, period.Clamp(today), holidays)
	}

	remaining := total - elapsed
	if remaining < 0 {
		remaining = 0
	}

	return CalendarSnapshot{
		Period:    period,
		AsOf:      today,
		Total:     total,
		Elapsed:   elapsed,
		Remaining: remaining,
	}
}

// PaceDivisor is Elapsed floored at 1. It is the only value the projector
// may divide by; the reported Elapsed/Remaining/Total stay untouched.
func (s CalendarSnapshot) PaceDivisor() int {
	if s.Elapsed < 1 {
		return 1
	}
	return s.Elapsed
}

// IsClosed reports that no business days remain in the period.
func (s CalendarSnapshot) IsClosed() bool {
	return s.Remaining == 0
}
