// Package feed publishes a user's interview schedule as an iCalendar
// document, so external calendar clients can subscribe to it.
package feed

import (
	"context"
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/hireflow/hireflow/pkg/calendar"
	"github.com/hireflow/hireflow/pkg/event"
)

const prodID = "-//hireflow//scheduling//EN"

type EventSource interface {
	GetEvents(ctx context.Context, from, to time.Time) ([]event.Event, error)
}

type Service struct {
	events EventSource
}

func NewService(events EventSource) *Service {
	return &Service{events: events}
}

// RenderMonth serializes every event of the reference date's month as a
// VCALENDAR document.
func (s *Service) RenderMonth(ctx context.Context, ref time.Time) (string, error) {
	from := calendar.StartOfMonth(ref)
	to := from.AddDate(0, 1, 0)

	events, err := s.events.GetEvents(ctx, from, to)
	if err != nil {
		return "", fmt.Errorf("failed to load events: %w", err)
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(prodID)

	for _, e := range events {
		ve := cal.AddEvent(e.ID)
		ve.SetSummary(e.Title)
		if e.Description != "" {
			ve.SetDescription(e.Description)
		}
		ve.SetStartAt(e.StartTime)
		ve.SetEndAt(e.EndTime)
		ve.SetDtStampTime(time.Now().UTC())
	}

	return cal.Serialize(), nil
}
