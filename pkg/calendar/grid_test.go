package calendar

import (
	"testing"
	"time"

	"github.com/hireflow/hireflow/pkg/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMonthDays_AlwaysProduces42Cells(t *testing.T) {
	testCases := []struct {
		name string
		ref  time.Time
	}{
		{"31-day month", date(2026, time.July, 15)},
		{"30-day month", date(2026, time.April, 1)},
		{"February", date(2026, time.February, 10)},
		{"February leap year", date(2024, time.February, 29)},
		{"December year boundary", date(2025, time.December, 31)},
		{"January year boundary", date(2026, time.January, 1)},
		{"month starting on Sunday", date(2026, time.February, 1)},
		{"month starting on Saturday", date(2026, time.August, 20)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			days := MonthDays(tc.ref)
			require.Len(t, days, 42)

			// Cells are consecutive and start on a Sunday.
			assert.Equal(t, time.Sunday, days[0].Date.Weekday())
			for i := 1; i < len(days); i++ {
				assert.Equal(t, days[i-1].Date.AddDate(0, 0, 1), days[i].Date)
			}
		})
	}
}

func TestMonthDays_July2026(t *testing.T) {
	// July 2026 has 31 days and starts on a Wednesday.
	days := MonthDays(date(2026, time.July, 10))
	require.Len(t, days, 42)

	for i := 0; i <= 2; i++ {
		assert.Equal(t, time.June, days[i].Date.Month(), "cell %d", i)
		assert.False(t, days[i].InMonth, "cell %d", i)
	}
	for i := 3; i <= 33; i++ {
		assert.Equal(t, time.July, days[i].Date.Month(), "cell %d", i)
		assert.True(t, days[i].InMonth, "cell %d", i)
	}
	for i := 34; i <= 41; i++ {
		assert.Equal(t, time.August, days[i].Date.Month(), "cell %d", i)
		assert.False(t, days[i].InMonth, "cell %d", i)
	}

	assert.Equal(t, date(2026, time.June, 28), days[0].Date)
	assert.Equal(t, date(2026, time.July, 1), days[3].Date)
	assert.Equal(t, date(2026, time.August, 8), days[41].Date)
}

func TestMonthDays_InMonthCountMatchesMonthLength(t *testing.T) {
	days := MonthDays(date(2024, time.February, 1))
	inMonth := 0
	for _, d := range days {
		if d.InMonth {
			inMonth++
		}
	}
	assert.Equal(t, 29, inMonth)
}

func TestWeekDays_SevenConsecutiveDaysFromSunday(t *testing.T) {
	for offset := 0; offset < 7; offset++ {
		ref := date(2026, time.March, 8+offset)
		days := WeekDays(ref)
		require.Len(t, days, 7)
		assert.Equal(t, time.Sunday, days[0].Date.Weekday())
		assert.Equal(t, date(2026, time.March, 8), days[0].Date)
		for i := 1; i < 7; i++ {
			assert.Equal(t, days[i-1].Date.AddDate(0, 0, 1), days[i].Date)
		}
	}
}

func TestYearMonths_TwelveFirstsOfMonth(t *testing.T) {
	months := YearMonths(date(2026, time.September, 14))
	require.Len(t, months, 12)
	for i, m := range months {
		assert.Equal(t, time.Month(i+1), m.Month())
		assert.Equal(t, 1, m.Day())
		assert.Equal(t, 2026, m.Year())
	}
}

func TestBucketByDay(t *testing.T) {
	days := WeekDays(date(2026, time.March, 10)) // week of March 8-14
	events := []event.Event{
		{
			ID:        "in-week",
			Title:     "Phone screen",
			StartTime: time.Date(2026, time.March, 9, 10, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2026, time.March, 9, 11, 0, 0, 0, time.UTC),
		},
		{
			ID:        "same-day",
			Title:     "Onsite",
			StartTime: time.Date(2026, time.March, 9, 14, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2026, time.March, 9, 16, 0, 0, 0, time.UTC),
		},
		{
			ID:        "outside-week",
			Title:     "Debrief",
			StartTime: time.Date(2026, time.March, 20, 9, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2026, time.March, 20, 10, 0, 0, 0, time.UTC),
		},
	}

	bucketed := BucketByDay(days, events)

	require.Len(t, bucketed, 7)
	assert.Empty(t, bucketed[0].Events) // Sunday March 8
	assert.Len(t, bucketed[1].Events, 2)
	for _, d := range bucketed {
		for _, e := range d.Events {
			assert.NotEqual(t, "outside-week", e.ID)
		}
	}
}

func TestSameDay(t *testing.T) {
	morning := time.Date(2026, time.May, 4, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2026, time.May, 4, 23, 59, 0, 0, time.UTC)
	nextDay := time.Date(2026, time.May, 5, 0, 0, 0, 0, time.UTC)

	assert.True(t, SameDay(morning, evening))
	assert.False(t, SameDay(evening, nextDay))
}
