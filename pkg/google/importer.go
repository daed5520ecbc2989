package google

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hireflow/hireflow/pkg/event"
	"github.com/hireflow/hireflow/pkg/user"
	log "github.com/sirupsen/logrus"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// EventSink receives imported events; pkg/event.Service satisfies it.
type EventSink interface {
	AddEvent(ctx context.Context, e event.Event) (event.Event, error)
}

// Importer pulls a user's Google Calendar events into the local schedule.
type Importer struct {
	auth *Auth
	sink EventSink
}

func NewImporter(auth *Auth, sink EventSink) *Importer {
	return &Importer{auth: auth, sink: sink}
}

// ListCalendars returns the calendars visible to the authenticated user.
func (i *Importer) ListCalendars(ctx context.Context) ([]CalendarInfo, error) {
	service, err := i.calendarService(ctx)
	if err != nil {
		return nil, err
	}

	list, err := service.CalendarList.List().Do()
	if err != nil {
		return nil, fmt.Errorf("unable to list Google calendars: %v", err)
	}

	calendars := make([]CalendarInfo, 0, len(list.Items))
	for _, item := range list.Items {
		calendars = append(calendars, CalendarInfo{Id: item.Id, Summary: item.Summary})
	}
	return calendars, nil
}

type CalendarInfo struct {
	Id      string `json:"id"`
	Summary string `json:"summary"`
}

// Import copies the events of the given calendar and range into the local
// event store. All-day Google events carry only a date and are skipped:
// the schedule works on timed interview slots.
func (i *Importer) Import(ctx context.Context, calendarId string, from, to time.Time) (int, error) {
	service, err := i.calendarService(ctx)
	if err != nil {
		return 0, err
	}

	googleEvents, err := service.Events.List(calendarId).
		TimeMin(from.Format(time.RFC3339)).
		TimeMax(to.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Do()
	if err != nil {
		return 0, fmt.Errorf("unable to retrieve events from Google Calendar: %v", err)
	}

	imported := 0
	for _, item := range googleEvents.Items {
		e, ok := googleEventToEvent(item)
		if !ok {
			continue
		}
		if _, err := i.sink.AddEvent(ctx, e); err != nil {
			log.Errorf("failed to import event %q: %v", item.Summary, err)
			continue
		}
		imported++
	}
	return imported, nil
}

func (i *Importer) calendarService(ctx context.Context) (*gcal.Service, error) {
	userId, err := user.CurrentID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}

	client, err := i.auth.getClient(ctx, userId)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, ErrUnauthenticated
	}

	service, err := gcal.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create Google Calendar service: %v", err)
	}
	return service, nil
}

func googleEventToEvent(item *gcal.Event) (event.Event, bool) {
	if item.Start == nil || item.End == nil || item.Start.DateTime == "" || item.End.DateTime == "" {
		return event.Event{}, false
	}
	startTime, err := time.Parse(time.RFC3339, item.Start.DateTime)
	if err != nil {
		return event.Event{}, false
	}
	endTime, err := time.Parse(time.RFC3339, item.End.DateTime)
	if err != nil {
		return event.Event{}, false
	}
	return event.Event{
		ID:          uuid.NewString(),
		Title:       item.Summary,
		Description: item.Description,
		StartTime:   startTime,
		EndTime:     endTime,
		Color:       event.ColorBlue,
	}, true
}
