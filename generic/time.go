package generic

import (
	"fmt"
	"sort"
	"time"
)

// DateLayout is the ISO date format used on every wire and storage boundary.
const DateLayout = "2006-01-02"

// =============================================================================
// TIME POINT - Calendar date, day granularity
// =============================================================================

type TimePoint struct {
	Time time.Time
}

// Constructors
func NewTimePoint(year int, month time.Month, day int) TimePoint {
	return TimePoint{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates any instant to its calendar date in the instant's own location.
func DateOf(t time.Time) TimePoint {
	return NewTimePoint(t.Year(), t.Month(), t.Day())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (TimePoint, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return TimePoint{}, &InvalidArgumentError{Field: "date", Value: s, Reason: "use YYYY-MM-DD"}
	}
	return DateOf(t), nil
}

// MustParseDate panics on malformed input. Tests and static tables only.
func MustParseDate(s string) TimePoint {
	tp, err := ParseDate(s)
	if err != nil {
		panic(fmt.Sprintf("generic: bad date %q: %v", s, err))
	}
	return tp
}

// Comparison
func (tp TimePoint) Before(other TimePoint) bool        { return tp.normalize().Before(other.normalize()) }
func (tp TimePoint) Equal(other TimePoint) bool         { return tp.normalize().Equal(other.normalize()) }
func (tp TimePoint) After(other TimePoint) bool         { return tp.normalize().After(other.normalize()) }
func (tp TimePoint) BeforeOrEqual(other TimePoint) bool { return !tp.After(other) }

func (tp TimePoint) normalize() time.Time {
	return time.Date(tp.Time.Year(), tp.Time.Month(), tp.Time.Day(), 0, 0, 0, 0, time.UTC)
}

// Arithmetic
func (tp TimePoint) AddDays(n int) TimePoint { return TimePoint{Time: tp.Time.AddDate(0, 0, n)} }

// Properties
func (tp TimePoint) Year() int             { return tp.Time.Year() }
func (tp TimePoint) Month() time.Month     { return tp.Time.Month() }
func (tp TimePoint) Day() int              { return tp.Time.Day() }
func (tp TimePoint) Weekday() time.Weekday { return tp.Time.Weekday() }
func (tp TimePoint) IsZero() bool          { return tp.Time.IsZero() }

func (tp TimePoint) IsWeekend() bool {
	wd := tp.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func (tp TimePoint) IsWorkday() bool { return !tp.IsWeekend() }

func (tp TimePoint) String() string { return tp.Time.Format(DateLayout) }

// key is the map key used by HolidaySet; it ignores time-of-day and location.
func (tp TimePoint) key() string { return tp.String() }

// =============================================================================
// HOLIDAY CALENDAR
// =============================================================================

// Holiday is a configured non-working date.
type Holiday struct {
	ID        string
	Date      TimePoint
	Name      string // e.g., "Consciência Negra"
	Recurring bool   // true = same month/day every year
}

// NewHoliday builds a holiday whose ID is derived from its date, so saving
// the same date twice replaces instead of duplicating.
func NewHoliday(date TimePoint, name string, recurring bool) Holiday {
	return Holiday{
		ID:        "holiday-" + date.Time.Format("20060102"),
		Date:      date,
		Name:      name,
		Recurring: recurring,
	}
}

// OccursOn reports whether the holiday falls on date, honouring Recurring.
func (h Holiday) OccursOn(date TimePoint) bool {
	if h.Recurring {
		return h.Date.Month() == date.Month() && h.Date.Day() == date.Day()
	}
	return h.Date.Equal(date)
}

// InYear returns the concrete date of the holiday in year.
// Non-recurring holidays report ok=false outside their own year, and a
// recurring Feb 29 reports ok=false in years without one.
func (h Holiday) InYear(year int) (TimePoint, bool) {
	if !h.Recurring {
		return h.Date, h.Date.Year() == year
	}
	d := NewTimePoint(year, h.Date.Month(), h.Date.Day())
	if d.Month() != h.Date.Month() {
		return TimePoint{}, false
	}
	return d, true
}

// HolidayCalendar answers whether a date is a holiday.
type HolidayCalendar interface {
	IsHoliday(date TimePoint) bool
}

// HolidaySet is the static set of holiday dates fed into an evaluation.
type HolidaySet map[string]struct{}

// NewHolidaySet builds a set from dates. Duplicates collapse.
func NewHolidaySet(dates ...TimePoint) HolidaySet {
	s := make(HolidaySet, len(dates))
	for _, d := range dates {
		s.Add(d)
	}
	return s
}

// ParseHolidaySet parses YYYY-MM-DD strings into a set.
func ParseHolidaySet(dates []string) (HolidaySet, error) {
	s := make(HolidaySet, len(dates))
	for _, raw := range dates {
		d, err := ParseDate(raw)
		if err != nil {
			return nil, fmt.Errorf("holiday %q: %w", raw, err)
		}
		s.Add(d)
	}
	return s, nil
}

// HolidaySetFor expands configured holidays into concrete dates within period.
func HolidaySetFor(holidays []Holiday, period Period) HolidaySet {
	s := make(HolidaySet)
	for _, d := range period.Days() {
		for _, h := range holidays {
			if h.OccursOn(d) {
				s.Add(d)
				break
			}
		}
	}
	return s
}

func (s HolidaySet) Add(d TimePoint) { s[d.key()] = struct{}{} }
func (s HolidaySet) Len() int       { return len(s) }

func (s HolidaySet) IsHoliday(date TimePoint) bool {
	_, ok := s[date.key()]
	return ok
}

// Merge returns a new set holding the dates of both sets.
func (s HolidaySet) Merge(other HolidaySet) HolidaySet {
	out := make(HolidaySet, len(s)+len(other))
	for k := range s {
		out[k] = struct{}{}
	}
	for k := range other {
		out[k] = struct{}{}
	}
	return out
}

// Dates returns the set's dates in ascending order.
func (s HolidaySet) Dates() []TimePoint {
	out := make([]TimePoint, 0, len(s))
	for k := range s {
		out = append(out, MustParseDate(k))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// IsWorkdayWithHolidays checks if a date is a working day, considering holidays.
func (tp TimePoint) IsWorkdayWithHolidays(calendar HolidayCalendar) bool {
	if !tp.IsWorkday() {
		return false
	}
	if calendar != nil && calendar.IsHoliday(tp) {
		return false
	}
	return true
}

// =============================================================================
// TIME UTILITIES
// =============================================================================

func DaysBetween(from, to TimePoint) int {
	return int(to.normalize().Sub(from.normalize()).Hours() / 24)
}

func StartOfMonth(year int, month time.Month) TimePoint { return NewTimePoint(year, month, 1) }

func EndOfMonth(year int, month time.Month) TimePoint {
	return DateOf(time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1))
}
