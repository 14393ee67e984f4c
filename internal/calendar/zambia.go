package calendar

// Zambian public holidays, per the government gazette. Extend per year; dates
// for movable feasts (Easter) and gazetted observances change annually.

var zambianHolidays2025 = []string{
	"2025-01-01", // New Year's Day
	"2025-03-08", // International Women's Day
	"2025-03-12", // Youth Day
	"2025-04-18", // Good Friday
	"2025-04-19", // Holy Saturday
	"2025-04-21", // Easter Monday
	"2025-04-28", // Kenneth Kaunda Birthday
	"2025-05-01", // Labour Day
	"2025-05-26", // Africa Day
	"2025-07-07", // Heroes Day
	"2025-07-08", // Unity Day
	"2025-08-04", // Zambia Farmers Day
	"2025-10-18", // National Day of Prayer
	"2025-10-24", // Independence Day
	"2025-12-25", // Christmas
}

var zambianHolidays2026 = []string{
	"2026-01-01", // New Year's Day
	"2026-03-08", // International Women's Day
	"2026-03-12", // Youth Day
	"2026-04-03", // Good Friday
	"2026-04-04", // Holy Saturday
	"2026-04-06", // Easter Monday
	"2026-04-28", // Kenneth Kaunda Birthday
	"2026-05-01", // Labour Day
	"2026-05-25", // Africa Day
	"2026-07-06", // Heroes Day
	"2026-07-07", // Unity Day
	"2026-08-03", // Zambia Farmers Day
	"2026-10-19", // National Day of Prayer
	"2026-10-24", // Independence Day
	"2026-12-25", // Christmas
}

// Zambia returns the shipped holiday table for the supported years.
func Zambia() Table {
	all := make([]string, 0, len(zambianHolidays2025)+len(zambianHolidays2026))
	all = append(all, zambianHolidays2025...)
	all = append(all, zambianHolidays2026...)
	return NewTable(all...)
}
