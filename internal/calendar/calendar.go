package calendar

import "time"

const dateLayout = "2006-01-02"

// Provider answers whether a calendar date is a public holiday. Holiday data
// is injected so the engine stays reusable across jurisdictions and years.
type Provider interface {
	IsHoliday(date time.Time) bool
}

// Table is a fixed holiday lookup keyed by YYYY-MM-DD. A date in a year the
// table does not cover simply reports no holidays; tables must be extended
// per year or counts drift for dates beyond the compiled range.
type Table map[string]struct{}

func NewTable(dates ...string) Table {
	t := make(Table, len(dates))
	for _, d := range dates {
		t[d] = struct{}{}
	}
	return t
}

func (t Table) IsHoliday(date time.Time) bool {
	_, ok := t[date.Format(dateLayout)]
	return ok
}

// IsWeekend reports whether date falls on Saturday or Sunday.
func IsWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// MonthsBetween returns the whole-month difference computed from year and
// month only. Day-of-month is deliberately ignored to stay compatible with
// historical accrual figures. Negative when end precedes start; callers must
// treat that as invalid input.
func MonthsBetween(start, end time.Time) int {
	years := end.Year() - start.Year()
	months := int(end.Month()) - int(start.Month())
	return years*12 + months
}

type Engine struct {
	holidays Provider
}

func NewEngine(holidays Provider) *Engine {
	return &Engine{holidays: holidays}
}

func (e *Engine) IsWorkingDay(date time.Time) bool {
	return !IsWeekend(date) && !e.holidays.IsHoliday(date)
}

// WorkingDays counts the days from start to end inclusive that are neither
// weekend nor public holiday. Returns 0 when start is after end.
func (e *Engine) WorkingDays(start, end time.Time) int {
	if start.After(end) {
		return 0
	}

	days := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if e.IsWorkingDay(d) {
			days++
		}
	}
	return days
}
