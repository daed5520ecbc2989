package schedule

import (
	"errors"
	"time"
)

// View is the active calendar rendering mode.
type View string

const (
	ViewDay    View = "day"
	ViewWeek   View = "week"
	ViewMonth  View = "month"
	ViewYear   View = "year"
	ViewAgenda View = "agenda"
)

var ErrUnknownView = errors.New("unknown view")

// ParseView validates a view name.
func ParseView(s string) (View, error) {
	switch View(s) {
	case ViewDay, ViewWeek, ViewMonth, ViewYear, ViewAgenda:
		return View(s), nil
	}
	return "", ErrUnknownView
}

// ViewState anchors what the calendar currently displays.
type ViewState struct {
	View          View
	ReferenceDate time.Time
	// FilterAssigneeID narrows every generator and layout call to one
	// assignee; event.FilterAll keeps everything.
	FilterAssigneeID string
}

// step is the AddDate delta one previous/next action applies.
type step struct {
	years, months, days int
}

// navigationSteps replaces the per-toolbar switch statements: one table
// entry per view. Agenda deliberately shares the month entry.
var navigationSteps = map[View]step{
	ViewDay:    {days: 1},
	ViewWeek:   {days: 7},
	ViewMonth:  {months: 1},
	ViewAgenda: {months: 1},
	ViewYear:   {years: 1},
}

// Shift moves the reference date by direction (+1 next, -1 previous) units
// of the given view.
func Shift(view View, ref time.Time, direction int) time.Time {
	s, ok := navigationSteps[view]
	if !ok {
		return ref
	}
	return ref.AddDate(s.years*direction, s.months*direction, s.days*direction)
}
