package calendar_test

import (
	"testing"
	"time"

	"github.com/businessregulatoryreviewagency/brra/internal/calendar"

	"github.com/stretchr/testify/assert"
)

func mustDate(t *testing.T, v string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", v)
	assert.NoError(t, err)
	return d
}

func TestTable_IsHoliday(t *testing.T) {
	table := calendar.NewTable("2025-04-18", "2025-12-25")

	assert.True(t, table.IsHoliday(mustDate(t, "2025-04-18")))
	assert.False(t, table.IsHoliday(mustDate(t, "2025-04-17")))

	t.Run("year outside table reports no holidays", func(t *testing.T) {
		assert.False(t, table.IsHoliday(mustDate(t, "2030-12-25")))
	})
}

func TestIsWeekend(t *testing.T) {
	assert.True(t, calendar.IsWeekend(mustDate(t, "2025-04-19")))  // Saturday
	assert.True(t, calendar.IsWeekend(mustDate(t, "2025-04-20")))  // Sunday
	assert.False(t, calendar.IsWeekend(mustDate(t, "2025-04-21"))) // Monday
}

func TestEngine_WorkingDays(t *testing.T) {
	engine := calendar.NewEngine(calendar.Zambia())

	tests := []struct {
		name  string
		start string
		end   string
		want  int
	}{
		{
			// Good Friday, Holy Saturday, the weekend, and Easter Monday all
			// fall inside the range; only the Thursday and Tuesday count.
			name:  "easter week counts two working days",
			start: "2025-04-17",
			end:   "2025-04-22",
			want:  2,
		},
		{
			name:  "plain business week",
			start: "2025-06-02",
			end:   "2025-06-06",
			want:  5,
		},
		{
			name:  "single saturday is zero",
			start: "2025-04-19",
			end:   "2025-04-19",
			want:  0,
		},
		{
			name:  "single holiday is zero",
			start: "2025-12-25",
			end:   "2025-12-25",
			want:  0,
		},
		{
			name:  "single working day",
			start: "2025-06-04",
			end:   "2025-06-04",
			want:  1,
		},
		{
			name:  "start after end is zero",
			start: "2025-06-06",
			end:   "2025-06-02",
			want:  0,
		},
		{
			name:  "heroes and unity days excluded",
			start: "2026-07-06",
			end:   "2026-07-10",
			want:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.WorkingDays(mustDate(t, tt.start), mustDate(t, tt.end))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEngine_WorkingDays_NeverExceedsSpan(t *testing.T) {
	engine := calendar.NewEngine(calendar.Zambia())
	start := mustDate(t, "2025-01-01")

	for span := 0; span < 60; span++ {
		end := start.AddDate(0, 0, span)
		got := engine.WorkingDays(start, end)
		assert.LessOrEqual(t, got, span+1)
		assert.GreaterOrEqual(t, got, 0)
	}
}

func TestMonthsBetween(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  int
	}{
		{"day of month ignored", "2025-01-15", "2025-03-01", 2},
		{"same month", "2025-03-01", "2025-03-31", 0},
		{"across year boundary", "2024-11-10", "2025-02-01", 3},
		{"full year", "2024-06-01", "2025-06-01", 12},
		{"negative when end precedes start", "2025-05-01", "2025-02-20", -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calendar.MonthsBetween(mustDate(t, tt.start), mustDate(t, tt.end))
			assert.Equal(t, tt.want, got)
		})
	}
}
