package event

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// FilterAll is the sentinel assignee filter that keeps every event.
const FilterAll = "all"

// Store is the ordered in-memory collection of events every calendar view
// reads from. It is not safe for concurrent use; the owning session
// serializes access to it.
type Store struct {
	events []Event
	byID   map[string]int
}

func NewStore() *Store {
	return &Store{
		byID: make(map[string]int),
	}
}

// Add validates and appends an event. An empty id gets a fresh uuid; a
// duplicate id is rejected so Update and Remove stay unambiguous.
func (s *Store) Add(e Event) (Event, error) {
	if err := e.Validate(); err != nil {
		return Event{}, err
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if _, exists := s.byID[e.ID]; exists {
		return Event{}, fmt.Errorf("%w: %s", ErrDuplicateID, e.ID)
	}
	s.byID[e.ID] = len(s.events)
	s.events = append(s.events, e)
	return e, nil
}

// Update merges the patch onto the stored event. Unknown ids are a no-op:
// callers frequently race UI state with store state. A patch that would leave
// the event with end before start is rejected and the stored event is kept
// unchanged.
func (s *Store) Update(id string, p Patch) (Event, error) {
	idx, ok := s.byID[id]
	if !ok {
		return Event{}, nil
	}
	patched := p.apply(s.events[idx])
	if err := patched.Validate(); err != nil {
		return Event{}, err
	}
	s.events[idx] = patched
	return patched, nil
}

// Remove deletes the event with the given id, preserving the order of the
// rest. Unknown ids are a no-op.
func (s *Store) Remove(id string) {
	idx, ok := s.byID[id]
	if !ok {
		return
	}
	s.events = append(s.events[:idx], s.events[idx+1:]...)
	delete(s.byID, id)
	for i := idx; i < len(s.events); i++ {
		s.byID[s.events[i].ID] = i
	}
}

// Get returns the event with the given id.
func (s *Store) Get(id string) (Event, bool) {
	idx, ok := s.byID[id]
	if !ok {
		return Event{}, false
	}
	return s.events[idx], true
}

// All returns a copy of every event in insertion order.
func (s *Store) All() []Event {
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}

// FilterByAssignee returns every event for FilterAll, otherwise only events
// whose assignee id equals assigneeID. Unassigned events are excluded from a
// specific-id filter.
func (s *Store) FilterByAssignee(assigneeID string) []Event {
	if assigneeID == FilterAll {
		return s.All()
	}
	out := make([]Event, 0, len(s.events))
	for _, e := range s.events {
		if e.AssigneeID != "" && e.AssigneeID == assigneeID {
			out = append(out, e)
		}
	}
	return out
}

// SortedByStart returns every event ordered by ascending start time.
func (s *Store) SortedByStart() []Event {
	out := s.All()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out
}

// Replace swaps the full contents of the store, used when loading a session
// from the repository or after an external import. Invalid events are
// skipped rather than failing the whole load.
func (s *Store) Replace(events []Event) {
	s.events = s.events[:0]
	s.byID = make(map[string]int, len(events))
	for _, e := range events {
		if e.Validate() != nil {
			continue
		}
		if _, exists := s.byID[e.ID]; exists {
			continue
		}
		s.byID[e.ID] = len(s.events)
		s.events = append(s.events, e)
	}
}

// Len returns the number of stored events.
func (s *Store) Len() int {
	return len(s.events)
}
