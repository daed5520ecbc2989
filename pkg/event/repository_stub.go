package event

import (
	"context"
	"sort"
	"sync"
	"time"
)

type RepositoryStub struct {
	mu      sync.RWMutex
	items   map[string]Event // event id -> event
	userIds map[string]string // event id -> user id
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{
		items:   make(map[string]Event),
		userIds: make(map[string]string),
	}
}

func (r *RepositoryStub) StoreEvent(ctx context.Context, userId string, event Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[event.ID] = event
	r.userIds[event.ID] = userId
	return nil
}

func (r *RepositoryStub) GetEvent(ctx context.Context, userId string, eventId string) (Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	event, ok := r.items[eventId]
	if !ok || r.userIds[eventId] != userId {
		return Event{}, ErrEventNotFound
	}
	return event, nil
}

func (r *RepositoryStub) GetEvents(ctx context.Context, userId string, from, to time.Time) ([]Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	events := make([]Event, 0)
	for id, event := range r.items {
		if r.userIds[id] != userId {
			continue
		}
		if !event.StartTime.After(to) && !event.EndTime.Before(from) {
			events = append(events, event)
		}
	}
	sortByStart(events)
	return events, nil
}

func (r *RepositoryStub) GetAllEvents(ctx context.Context, userId string) ([]Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	events := make([]Event, 0)
	for id, event := range r.items {
		if r.userIds[id] == userId {
			events = append(events, event)
		}
	}
	sortByStart(events)
	return events, nil
}

func (r *RepositoryStub) UpdateEvent(ctx context.Context, userId string, event Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[event.ID]; !ok || r.userIds[event.ID] != userId {
		return nil
	}
	r.items[event.ID] = event
	return nil
}

func (r *RepositoryStub) DeleteEvent(ctx context.Context, userId string, eventId string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.userIds[eventId] != userId {
		return nil
	}
	delete(r.items, eventId)
	delete(r.userIds, eventId)
	return nil
}

func sortByStart(events []Event) {
	sort.Slice(events, func(i, j int) bool {
		return events[i].StartTime.Before(events[j].StartTime)
	})
}
