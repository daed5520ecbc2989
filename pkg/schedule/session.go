package schedule

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hireflow/hireflow/internal/utils"
	"github.com/hireflow/hireflow/pkg/availability"
	"github.com/hireflow/hireflow/pkg/calendar"
	"github.com/hireflow/hireflow/pkg/event"
	"github.com/hireflow/hireflow/pkg/layout"
)

// PositionedEvent is a timed event with its pixel box and its side-by-side
// column within the overlap cluster it belongs to.
type PositionedEvent struct {
	Event   event.Event
	Box     layout.Box
	Column  int
	Columns int
}

// DayTimeline is the full time-axis rendering of one day: banner events,
// positioned timed events, hour-row labels, and the optional current-time
// marker.
type DayTimeline struct {
	Date     time.Time
	HourRows []int
	AllDay   []event.Event
	Timed    []PositionedEvent
	// Indicator is the top offset of the current-time marker; nil when the
	// day is not today or the current hour is outside the visible window.
	Indicator *float64
}

// Session is the stateful wrapper around the pure grid and layout functions:
// it owns the event store and the view state, and memoizes query results on
// their full input tuple. One session is shared by every concurrent request
// of its user, so all state access goes through mu.
type Session struct {
	layoutCfg layout.Config
	clock     utils.Clock

	// mu guards store, state, settings, memo and stale.
	mu       sync.Mutex
	store    *event.Store
	state    ViewState
	settings availability.Settings
	stale    bool
	memo     map[memoKey]any
}

type memoKey struct {
	kind   string
	view   View
	ref    int64
	filter string
}

// NewSession creates a session showing the month view anchored on the
// clock's current time, with no assignee filter.
func NewSession(settings availability.Settings, cfg layout.Config, clock utils.Clock) *Session {
	return &Session{
		store: event.NewStore(),
		state: ViewState{
			View:             ViewMonth,
			ReferenceDate:    clock.Now(),
			FilterAssigneeID: event.FilterAll,
		},
		settings:  settings,
		layoutCfg: cfg,
		clock:     clock,
		memo:      make(map[memoKey]any),
	}
}

// State returns the current view state.
func (s *Session) State() ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Events returns a copy of every stored event in insertion order.
func (s *Session) Events() []event.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.All()
}

// Len returns the number of stored events.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Len()
}

// Settings returns the availability settings the session renders with.
func (s *Session) Settings() availability.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// SetView switches the rendering mode. The reference date is deliberately
// left untouched: jumping to a clicked day is a compound action the caller
// performs with an explicit SetReferenceDate.
func (s *Session) SetView(v View) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.View = v
}

func (s *Session) SetReferenceDate(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.ReferenceDate = t
}

func (s *Session) SetFilterAssigneeID(id string) {
	if id == "" {
		id = event.FilterAll
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.FilterAssigneeID = id
}

// Next shifts the reference date forward by one unit of the current view.
func (s *Session) Next() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.ReferenceDate = Shift(s.state.View, s.state.ReferenceDate, 1)
}

// Previous shifts the reference date backward by one unit of the current view.
func (s *Session) Previous() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.ReferenceDate = Shift(s.state.View, s.state.ReferenceDate, -1)
}

// Today resets the reference date to the current moment regardless of view.
func (s *Session) Today() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.ReferenceDate = s.clock.Now()
}

// AddEvent validates and adds an event to the session store.
func (s *Session) AddEvent(e event.Event) (event.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	added, err := s.store.Add(e)
	if err != nil {
		return event.Event{}, err
	}
	s.bump()
	return added, nil
}

// UpdateEvent merges a patch onto a stored event; unknown ids are a no-op.
func (s *Session) UpdateEvent(id string, p event.Patch) (event.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	updated, err := s.store.Update(id, p)
	if err != nil {
		return event.Event{}, err
	}
	s.bump()
	return updated, nil
}

// RemoveEvent deletes an event; unknown ids are a no-op.
func (s *Session) RemoveEvent(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Remove(id)
	s.bump()
}

// Load replaces the store contents, e.g. from the repository or an import.
func (s *Session) Load(events []event.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Replace(events)
	s.bump()
}

// SetSettings replaces the availability settings the session renders with.
func (s *Session) SetSettings(settings availability.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
	s.bump()
}

// MarkStale flags the session for a reload before its next query. Safe to
// call from bus handlers on other goroutines.
func (s *Session) MarkStale() {
	s.mu.Lock()
	s.stale = true
	s.mu.Unlock()
}

// TakeStale reports and clears the stale flag.
func (s *Session) TakeStale() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	was := s.stale
	s.stale = false
	return was
}

// bump drops every memoized grid after the store or settings changed. Memo
// entries only survive while the data they were computed from is current, so
// the map never outgrows the handful of view kinds. Callers hold mu.
func (s *Session) bump() {
	clear(s.memo)
}

func (s *Session) filtered() []event.Event {
	return s.store.FilterByAssignee(s.state.FilterAssigneeID)
}

func (s *Session) key(kind string) memoKey {
	return memoKey{
		kind:   kind,
		view:   s.state.View,
		ref:    s.state.ReferenceDate.UnixMilli(),
		filter: s.state.FilterAssigneeID,
	}
}

// MonthGrid returns the 42-cell grid for the reference month with the
// filtered events bucketed onto their start days.
func (s *Session) MonthGrid() []calendar.Day {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := s.key("month")
	if cached, ok := s.memo[key]; ok {
		return cached.([]calendar.Day)
	}
	grid := calendar.BucketByDay(calendar.MonthDays(s.state.ReferenceDate), s.filtered())
	s.memo[key] = grid
	return grid
}

// WeekGrid returns the 7-day grid for the reference week.
func (s *Session) WeekGrid() []calendar.Day {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := s.key("week")
	if cached, ok := s.memo[key]; ok {
		return cached.([]calendar.Day)
	}
	grid := calendar.BucketByDay(calendar.WeekDays(s.state.ReferenceDate), s.filtered())
	s.memo[key] = grid
	return grid
}

// YearGrid returns the 12 mini-month grids of the reference year.
func (s *Session) YearGrid() [][]calendar.Day {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := s.key("year")
	if cached, ok := s.memo[key]; ok {
		return cached.([][]calendar.Day)
	}
	months := calendar.YearMonths(s.state.ReferenceDate)
	grids := make([][]calendar.Day, 0, len(months))
	for _, first := range months {
		grids = append(grids, calendar.MonthDays(first))
	}
	s.memo[key] = grids
	return grids
}

// Agenda returns the date-grouped chronological sections of the reference
// month.
func (s *Session) Agenda() []calendar.AgendaGroup {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := s.key("agenda")
	if cached, ok := s.memo[key]; ok {
		return cached.([]calendar.AgendaGroup)
	}
	groups := calendar.AgendaGroups(s.state.ReferenceDate, s.filtered())
	s.memo[key] = groups
	return groups
}

// DayTimeline renders the reference day on the time axis.
func (s *Session) DayTimeline() DayTimeline {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := s.key("day")
	if cached, ok := s.memo[key]; ok {
		return cached.(DayTimeline)
	}
	timeline := s.timelineFor(s.state.ReferenceDate)
	s.memo[key] = timeline
	return timeline
}

// WeekTimeline renders all 7 days of the reference week on the time axis.
func (s *Session) WeekTimeline() []DayTimeline {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := s.key("weektimeline")
	if cached, ok := s.memo[key]; ok {
		return cached.([]DayTimeline)
	}
	days := calendar.WeekDays(s.state.ReferenceDate)
	timelines := make([]DayTimeline, 0, len(days))
	for _, d := range days {
		timelines = append(timelines, s.timelineFor(d.Date))
	}
	s.memo[key] = timelines
	return timelines
}

func (s *Session) timelineFor(date time.Time) DayTimeline {
	window := s.settings.VisibleHours
	timeline := DayTimeline{
		Date:     calendar.StartOfDay(date),
		HourRows: window.Hours(),
	}

	var dayEvents []event.Event
	for _, e := range s.filtered() {
		if calendar.SameDay(e.StartTime, date) {
			dayEvents = append(dayEvents, e)
		}
	}

	allDay, timed := layout.SplitAllDay(dayEvents)
	timeline.AllDay = allDay

	// An empty visible window renders zero rows and zero-length layouts.
	if len(timeline.HourRows) > 0 {
		for _, cluster := range layout.Clusters(timed) {
			for _, col := range layout.Arrange(cluster) {
				timeline.Timed = append(timeline.Timed, PositionedEvent{
					Event:   col.Event,
					Box:     layout.Position(col.Event, window, s.layoutCfg),
					Column:  col.Index,
					Columns: col.Count,
				})
			}
		}

		now := s.clock.Now()
		if calendar.SameDay(now, date) {
			if top, ok := layout.NowIndicator(now, window, s.layoutCfg); ok {
				timeline.Indicator = &top
			}
		}
	}

	return timeline
}

// Refresh reloads the session's events and settings when a bus event marked
// it stale since the last query.
func (s *Session) Refresh(ctx context.Context, events EventSource, avail AvailabilityProvider) error {
	if !s.TakeStale() {
		return nil
	}
	all, err := events.GetAllEvents(ctx)
	if err != nil {
		s.MarkStale()
		return fmt.Errorf("failed to reload events: %w", err)
	}
	settings, err := avail.GetSettings(ctx)
	if err != nil {
		s.MarkStale()
		return fmt.Errorf("failed to reload availability: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Replace(all)
	s.settings = settings
	s.bump()
	return nil
}

// EventSource supplies the persisted events of the current user.
type EventSource interface {
	GetAllEvents(ctx context.Context) ([]event.Event, error)
}

// AvailabilityProvider supplies the current user's working and visible hours.
type AvailabilityProvider interface {
	GetSettings(ctx context.Context) (availability.Settings, error)
}
