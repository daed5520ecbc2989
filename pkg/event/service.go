package event

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hireflow/hireflow/internal/event_bus"
	"github.com/hireflow/hireflow/pkg/user"
	log "github.com/sirupsen/logrus"
)

// Service persists events for the current user and announces every mutation
// on the bus so open calendar sessions can refresh.
type Service interface {
	AddEvent(ctx context.Context, event Event) (Event, error)
	GetEvents(ctx context.Context, from, to time.Time) ([]Event, error)
	GetAllEvents(ctx context.Context) ([]Event, error)
	ModifyEvent(ctx context.Context, id string, patch Patch) (Event, error)
	DeleteEvent(ctx context.Context, id string) error
}

type ServiceImpl struct {
	repo Repository
	bus  *event_bus.EventBus
}

func NewService(repo Repository, bus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, bus: bus}
}

func (s *ServiceImpl) AddEvent(ctx context.Context, event Event) (Event, error) {
	userId, err := user.CurrentID(ctx)
	if err != nil {
		return Event{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := event.Validate(); err != nil {
		return Event{}, err
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}

	if err := s.repo.StoreEvent(ctx, userId, event); err != nil {
		return Event{}, fmt.Errorf("failed to store event: %w", err)
	}

	s.publish(ctx, event_bus.CalendarEventCreatedType, event_bus.CalendarEventCreated{
		ID:         event.ID,
		Title:      event.Title,
		StartTime:  event.StartTime,
		EndTime:    event.EndTime,
		AssigneeID: event.AssigneeID,
	})
	return event, nil
}

func (s *ServiceImpl) GetEvents(ctx context.Context, from, to time.Time) ([]Event, error) {
	userId, err := user.CurrentID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetEvents(ctx, userId, from, to)
}

func (s *ServiceImpl) GetAllEvents(ctx context.Context) ([]Event, error) {
	userId, err := user.CurrentID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetAllEvents(ctx, userId)
}

func (s *ServiceImpl) ModifyEvent(ctx context.Context, id string, patch Patch) (Event, error) {
	userId, err := user.CurrentID(ctx)
	if err != nil {
		return Event{}, fmt.Errorf("failed to get current user: %w", err)
	}

	existing, err := s.repo.GetEvent(ctx, userId, id)
	if err != nil {
		return Event{}, fmt.Errorf("failed to load event: %w", err)
	}
	patched := patch.apply(existing)
	if err := patched.Validate(); err != nil {
		return Event{}, err
	}

	if err := s.repo.UpdateEvent(ctx, userId, patched); err != nil {
		return Event{}, fmt.Errorf("failed to update event: %w", err)
	}

	s.publish(ctx, event_bus.CalendarEventUpdatedType, event_bus.CalendarEventUpdated{ID: id})
	return patched, nil
}

func (s *ServiceImpl) DeleteEvent(ctx context.Context, id string) error {
	userId, err := user.CurrentID(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	if err := s.repo.DeleteEvent(ctx, userId, id); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	s.publish(ctx, event_bus.CalendarEventDeletedType, event_bus.CalendarEventDeleted{ID: id})
	return nil
}

func (s *ServiceImpl) publish(ctx context.Context, eventType event_bus.EventType, data any) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(event_bus.NewEvent(ctx, eventType, data)); err != nil {
		log.Errorf("failed to publish %s: %v", eventType, err)
	}
}
