package schedule

import (
	"context"
	"fmt"
	"sync"

	"github.com/hireflow/hireflow/internal/event_bus"
	"github.com/hireflow/hireflow/internal/utils"
	"github.com/hireflow/hireflow/pkg/event"
	"github.com/hireflow/hireflow/pkg/layout"
	"github.com/hireflow/hireflow/pkg/user"
)

// Service hands out one calendar session per user and keeps every open
// session fresh by listening to store and availability changes on the bus.
type Service struct {
	events    EventSource
	avail     AvailabilityProvider
	layoutCfg layout.Config
	clock     utils.Clock

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewService(events EventSource, avail AvailabilityProvider, cfg layout.Config, clock utils.Clock, bus *event_bus.EventBus) *Service {
	s := &Service{
		events:    events,
		avail:     avail,
		layoutCfg: cfg,
		clock:     clock,
		sessions:  make(map[string]*Session),
	}

	if bus != nil {
		invalidate := func(e event_bus.Event) error {
			userId, err := user.CurrentID(e.Context())
			if err != nil {
				// Without an owner there is no session to refresh.
				return nil
			}
			s.markStale(userId)
			return nil
		}
		bus.Subscribe(event_bus.CalendarEventCreatedType, invalidate)
		bus.Subscribe(event_bus.CalendarEventUpdatedType, invalidate)
		bus.Subscribe(event_bus.CalendarEventDeletedType, invalidate)
		bus.Subscribe(event_bus.AvailabilityChangedType, invalidate)
	}

	return s
}

// SessionFor returns the current user's session, creating and loading it on
// first use and refreshing it when a bus event invalidated it.
func (s *Service) SessionFor(ctx context.Context) (*Session, error) {
	userId, err := user.CurrentID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}

	s.mu.Lock()
	session, ok := s.sessions[userId]
	if !ok {
		settings, err := s.avail.GetSettings(ctx)
		if err != nil {
			s.mu.Unlock()
			return nil, fmt.Errorf("failed to load availability: %w", err)
		}
		session = NewSession(settings, s.layoutCfg, s.clock)
		session.MarkStale()
		s.sessions[userId] = session
	}
	s.mu.Unlock()

	if err := session.Refresh(ctx, s.events, s.avail); err != nil {
		return nil, err
	}
	return session, nil
}

// DropSession discards a user's session; the next access rebuilds it.
func (s *Service) DropSession(userId string) {
	s.mu.Lock()
	delete(s.sessions, userId)
	s.mu.Unlock()
}

func (s *Service) markStale(userId string) {
	s.mu.Lock()
	session, ok := s.sessions[userId]
	s.mu.Unlock()
	if ok {
		session.MarkStale()
	}
}

// FilterAll re-exports the store sentinel for callers of the session API.
const FilterAll = event.FilterAll
