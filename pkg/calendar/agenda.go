package calendar

import (
	"sort"
	"time"

	"github.com/hireflow/hireflow/pkg/event"
)

// AgendaGroup is one date-labeled section of the agenda view: a contiguous
// run of same-day events in chronological order.
type AgendaGroup struct {
	Date   time.Time
	Events []event.Event
}

// AgendaGroups filters events to those starting within the reference date's
// month, sorts them by start time and groups contiguous same-day runs. A run
// boundary occurs whenever the calendar day of the next sorted event differs
// from the current group's day.
func AgendaGroups(ref time.Time, events []event.Event) []AgendaGroup {
	monthStart := StartOfMonth(ref)
	monthEnd := monthStart.AddDate(0, 1, 0)

	inMonth := make([]event.Event, 0, len(events))
	for _, e := range events {
		if !e.StartTime.Before(monthStart) && e.StartTime.Before(monthEnd) {
			inMonth = append(inMonth, e)
		}
	}
	sort.SliceStable(inMonth, func(i, j int) bool {
		return inMonth[i].StartTime.Before(inMonth[j].StartTime)
	})

	groups := make([]AgendaGroup, 0)
	for _, e := range inMonth {
		if len(groups) > 0 && SameDay(groups[len(groups)-1].Date, e.StartTime) {
			last := &groups[len(groups)-1]
			last.Events = append(last.Events, e)
			continue
		}
		groups = append(groups, AgendaGroup{
			Date:   StartOfDay(e.StartTime),
			Events: []event.Event{e},
		})
	}
	return groups
}
