// Package calendar holds the pure grid generators behind the day, week,
// month, year and agenda views. Every function here is deterministic in its
// inputs; "today" is always supplied by the caller.
package calendar

import (
	"time"

	"github.com/hireflow/hireflow/pkg/event"
)

// monthGridSize is the fixed number of cells in a month grid: 6 full weeks,
// regardless of how long the month actually is.
const monthGridSize = 42

// Day is a single cell of a month or week grid.
type Day struct {
	Date time.Time
	// InMonth is true when the cell belongs to the reference month rather
	// than being a leading or trailing filler day.
	InMonth bool
	Events  []event.Event
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns the Sunday on or before t, at midnight.
func StartOfWeek(t time.Time) time.Time {
	d := StartOfDay(t)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// StartOfMonth returns the first day of t's month, at midnight.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// SameDay reports calendar-day equality. Today highlighting uses this, never
// timestamp equality.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// MonthDays produces the 42-cell grid for the reference date's month: the
// first day of the month backed up to the Sunday of its week, then 42
// consecutive days. Cells outside the month are marked as fillers.
func MonthDays(ref time.Time) []Day {
	first := StartOfMonth(ref)
	cursor := StartOfWeek(first)

	days := make([]Day, 0, monthGridSize)
	for i := 0; i < monthGridSize; i++ {
		days = append(days, Day{
			Date:    cursor,
			InMonth: cursor.Month() == first.Month() && cursor.Year() == first.Year(),
		})
		cursor = cursor.AddDate(0, 0, 1)
	}
	return days
}

// WeekDays produces the 7 consecutive days of the reference date's week,
// starting on Sunday.
func WeekDays(ref time.Time) []Day {
	cursor := StartOfWeek(ref)
	days := make([]Day, 0, 7)
	for i := 0; i < 7; i++ {
		days = append(days, Day{Date: cursor, InMonth: true})
		cursor = cursor.AddDate(0, 0, 1)
	}
	return days
}

// YearMonths returns the 12 first-of-month dates of the reference date's
// year. Each can be handed back to MonthDays for a mini-month grid.
func YearMonths(ref time.Time) []time.Time {
	months := make([]time.Time, 0, 12)
	for m := time.January; m <= time.December; m++ {
		months = append(months, time.Date(ref.Year(), m, 1, 0, 0, 0, 0, ref.Location()))
	}
	return months
}

// BucketByDay attaches to every cell the events whose start falls on that
// calendar day. Events starting outside the grid's range are dropped rather
// than counted anywhere.
func BucketByDay(days []Day, events []event.Event) []Day {
	byDay := make(map[string][]event.Event)
	for _, e := range events {
		key := e.StartTime.Format(time.DateOnly)
		byDay[key] = append(byDay[key], e)
	}

	out := make([]Day, len(days))
	for i, d := range days {
		d.Events = byDay[d.Date.Format(time.DateOnly)]
		out[i] = d
	}
	return out
}
