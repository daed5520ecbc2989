package event_bus

import "time"

const (
	CalendarEventCreatedType EventType = "calendar.event.created"
	CalendarEventUpdatedType EventType = "calendar.event.updated"
	CalendarEventDeletedType EventType = "calendar.event.deleted"
	AvailabilityChangedType  EventType = "availability.changed"
)

type CalendarEventCreated struct {
	ID         string
	Title      string
	StartTime  time.Time
	EndTime    time.Time
	AssigneeID string
}

type CalendarEventUpdated struct {
	ID string
}

type CalendarEventDeleted struct {
	ID string
}

// AvailabilityChanged is published when a user's working or visible hours
// are replaced, so cached grid layouts can be dropped.
type AvailabilityChanged struct {
	UserID string
}
