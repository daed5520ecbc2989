package schedule

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/hireflow/hireflow/internal/utils"
	"github.com/hireflow/hireflow/pkg/availability"
	"github.com/hireflow/hireflow/pkg/event"
	"github.com/hireflow/hireflow/pkg/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, time.July, 15, 10, 30, 0, 0, time.UTC)

func newTestSession() (*Session, *utils.MockClock) {
	clock := &utils.MockClock{FixedNow: testNow}
	settings := availability.DefaultSettings(availability.VisibleHours{From: 8, To: 19})
	return NewSession(settings, layout.DefaultConfig(), clock), clock
}

func sessionEvent(id string, day, startHour int, assignee string) event.Event {
	start := time.Date(2026, time.July, day, startHour, 0, 0, 0, time.UTC)
	return event.Event{
		ID:         id,
		Title:      "Interview " + id,
		StartTime:  start,
		EndTime:    start.Add(time.Hour),
		AssigneeID: assignee,
	}
}

func TestNewSession_Defaults(t *testing.T) {
	session, _ := newTestSession()

	state := session.State()
	assert.Equal(t, ViewMonth, state.View)
	assert.Equal(t, testNow, state.ReferenceDate)
	assert.Equal(t, event.FilterAll, state.FilterAssigneeID)
}

func TestSession_SetViewKeepsReferenceDate(t *testing.T) {
	session, _ := newTestSession()
	ref := session.State().ReferenceDate

	session.SetView(ViewDay)

	assert.Equal(t, ViewDay, session.State().View)
	assert.Equal(t, ref, session.State().ReferenceDate)
}

func TestSession_Navigation(t *testing.T) {
	session, clock := newTestSession()

	session.SetView(ViewWeek)
	session.Next()
	assert.Equal(t, testNow.AddDate(0, 0, 7), session.State().ReferenceDate)

	session.Previous()
	session.Previous()
	assert.Equal(t, testNow.AddDate(0, 0, -7), session.State().ReferenceDate)

	clock.SetNow(testNow.AddDate(0, 2, 0))
	session.Today()
	assert.Equal(t, testNow.AddDate(0, 2, 0), session.State().ReferenceDate)
}

func TestSession_SetFilterAssigneeID(t *testing.T) {
	session, _ := newTestSession()

	session.SetFilterAssigneeID("user-7")
	assert.Equal(t, "user-7", session.State().FilterAssigneeID)

	// Clearing the filter falls back to the keep-everything sentinel.
	session.SetFilterAssigneeID("")
	assert.Equal(t, event.FilterAll, session.State().FilterAssigneeID)
}

func TestSession_MonthGridReflectsFilter(t *testing.T) {
	session, _ := newTestSession()
	_, err := session.AddEvent(sessionEvent("mine", 15, 9, "user-1"))
	require.NoError(t, err)
	_, err = session.AddEvent(sessionEvent("theirs", 15, 11, "user-2"))
	require.NoError(t, err)
	_, err = session.AddEvent(sessionEvent("unassigned", 15, 13, ""))
	require.NoError(t, err)

	countEvents := func() int {
		total := 0
		for _, d := range session.MonthGrid() {
			total += len(d.Events)
		}
		return total
	}

	assert.Equal(t, 3, countEvents())

	session.SetFilterAssigneeID("user-1")
	assert.Equal(t, 1, countEvents(), "specific filter drops other and unassigned events")

	session.SetFilterAssigneeID("")
	assert.Equal(t, 3, countEvents())
}

func TestSession_MemoizationInvalidatedByMutation(t *testing.T) {
	session, _ := newTestSession()
	_, err := session.AddEvent(sessionEvent("e1", 15, 9, ""))
	require.NoError(t, err)

	first := session.MonthGrid()
	again := session.MonthGrid()
	assert.Equal(t, first, again)

	_, err = session.AddEvent(sessionEvent("e2", 15, 11, ""))
	require.NoError(t, err)

	total := 0
	for _, d := range session.MonthGrid() {
		total += len(d.Events)
	}
	assert.Equal(t, 2, total, "grid rebuilt after the store changed")
}

func TestSession_DayTimeline(t *testing.T) {
	session, _ := newTestSession()
	session.SetView(ViewDay)
	session.SetReferenceDate(testNow)

	_, err := session.AddEvent(sessionEvent("a", 15, 9, ""))
	require.NoError(t, err)
	_, err = session.AddEvent(sessionEvent("b", 15, 9, "")) // overlaps a
	require.NoError(t, err)
	banner := sessionEvent("banner", 15, 8, "")
	banner.EndTime = banner.StartTime.Add(13 * time.Hour)
	_, err = session.AddEvent(banner)
	require.NoError(t, err)
	_, err = session.AddEvent(sessionEvent("other-day", 16, 9, ""))
	require.NoError(t, err)

	timeline := session.DayTimeline()

	assert.Equal(t, time.Date(2026, time.July, 15, 0, 0, 0, 0, time.UTC), timeline.Date)
	assert.Len(t, timeline.HourRows, 12)

	require.Len(t, timeline.AllDay, 1)
	assert.Equal(t, "banner", timeline.AllDay[0].ID)

	require.Len(t, timeline.Timed, 2)
	for _, p := range timeline.Timed {
		assert.Equal(t, 2, p.Columns, "overlapping pair splits into two columns")
		assert.Equal(t, float64(60), p.Box.Top)
	}
	assert.NotEqual(t, timeline.Timed[0].Column, timeline.Timed[1].Column)

	// 10:30 against a window starting at 8.
	require.NotNil(t, timeline.Indicator)
	assert.Equal(t, float64(150), *timeline.Indicator)
}

func TestSession_DayTimeline_IndicatorOnlyOnToday(t *testing.T) {
	session, _ := newTestSession()
	session.SetView(ViewDay)
	session.SetReferenceDate(testNow.AddDate(0, 0, 1))

	timeline := session.DayTimeline()

	assert.Nil(t, timeline.Indicator)
}

func TestSession_DayTimeline_IndicatorOutsideWindow(t *testing.T) {
	clock := &utils.MockClock{FixedNow: time.Date(2026, time.July, 15, 23, 0, 0, 0, time.UTC)}
	settings := availability.DefaultSettings(availability.VisibleHours{From: 8, To: 19})
	session := NewSession(settings, layout.DefaultConfig(), clock)
	session.SetReferenceDate(clock.Now())

	timeline := session.DayTimeline()

	assert.Nil(t, timeline.Indicator)
}

func TestSession_DayTimeline_EmptyVisibleWindow(t *testing.T) {
	clock := &utils.MockClock{FixedNow: testNow}
	settings := availability.DefaultSettings(availability.VisibleHours{From: 19, To: 8})
	session := NewSession(settings, layout.DefaultConfig(), clock)
	_, err := session.AddEvent(sessionEvent("e1", 15, 9, ""))
	require.NoError(t, err)

	timeline := session.DayTimeline()

	assert.Empty(t, timeline.HourRows)
	assert.Empty(t, timeline.Timed)
	assert.Nil(t, timeline.Indicator)
}

func TestSession_WeekTimeline(t *testing.T) {
	session, _ := newTestSession()
	_, err := session.AddEvent(sessionEvent("mon", 13, 9, ""))
	require.NoError(t, err)
	_, err = session.AddEvent(sessionEvent("wed", 15, 14, ""))
	require.NoError(t, err)

	timelines := session.WeekTimeline()

	require.Len(t, timelines, 7)
	// Week of July 12-18, 2026: Monday is index 1, Wednesday index 3.
	require.Len(t, timelines[1].Timed, 1)
	assert.Equal(t, "mon", timelines[1].Timed[0].Event.ID)
	require.Len(t, timelines[3].Timed, 1)
	assert.NotNil(t, timelines[3].Indicator, "Wednesday is today")
	assert.Nil(t, timelines[1].Indicator)
}

func TestSession_Agenda(t *testing.T) {
	session, _ := newTestSession()
	_, err := session.AddEvent(sessionEvent("a", 3, 9, ""))
	require.NoError(t, err)
	_, err = session.AddEvent(sessionEvent("b", 3, 14, ""))
	require.NoError(t, err)
	_, err = session.AddEvent(sessionEvent("c", 20, 9, ""))
	require.NoError(t, err)

	groups := session.Agenda()

	require.Len(t, groups, 2)
	assert.Len(t, groups[0].Events, 2)
	assert.Len(t, groups[1].Events, 1)
}

func TestSession_YearGrid(t *testing.T) {
	session, _ := newTestSession()

	grids := session.YearGrid()

	require.Len(t, grids, 12)
	for i, grid := range grids {
		assert.Len(t, grid, 42, "month %d", i+1)
	}
}

func TestSession_Refresh(t *testing.T) {
	session, _ := newTestSession()

	source := &stubEventSource{events: []event.Event{sessionEvent("loaded", 15, 9, "")}}
	avail := &stubAvailability{settings: availability.DefaultSettings(availability.VisibleHours{From: 7, To: 22})}

	// Not stale: nothing is loaded.
	require.NoError(t, session.Refresh(context.Background(), source, avail))
	assert.Equal(t, 0, session.Len())

	session.MarkStale()
	require.NoError(t, session.Refresh(context.Background(), source, avail))
	assert.Equal(t, 1, session.Len())
	assert.Equal(t, 7, session.Settings().VisibleHours.From)

	// The flag is consumed by the successful refresh.
	source.events = nil
	require.NoError(t, session.Refresh(context.Background(), source, avail))
	assert.Equal(t, 1, session.Len())
}

func TestSession_RefreshFailureStaysStale(t *testing.T) {
	session, _ := newTestSession()
	source := &stubEventSource{err: errors.New("db down")}
	avail := &stubAvailability{settings: availability.DefaultSettings(availability.VisibleHours{From: 8, To: 19})}

	session.MarkStale()
	require.Error(t, session.Refresh(context.Background(), source, avail))
	assert.Equal(t, 0, session.Len())

	// A failed reload is retried once the source recovers.
	source.err = nil
	source.events = []event.Event{sessionEvent("loaded", 15, 9, "")}
	require.NoError(t, session.Refresh(context.Background(), source, avail))
	assert.Equal(t, 1, session.Len())
}

func TestSession_ConcurrentQueriesAndNavigation(t *testing.T) {
	session, _ := newTestSession()
	_, err := session.AddEvent(sessionEvent("seed", 15, 9, ""))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				switch n % 4 {
				case 0:
					session.MonthGrid()
				case 1:
					session.DayTimeline()
				case 2:
					session.Next()
					session.Previous()
				case 3:
					_, addErr := session.AddEvent(sessionEvent(fmt.Sprintf("g%d-%d", n, j), 16, 10, ""))
					assert.NoError(t, addErr)
				}
			}
		}(i)
	}
	wg.Wait()

	// Equal Next/Previous counts in month view cancel out.
	assert.Equal(t, testNow, session.State().ReferenceDate)
	assert.Equal(t, 201, session.Len())
}

func TestSession_MemoStaysBounded(t *testing.T) {
	session, _ := newTestSession()

	for i := 0; i < 50; i++ {
		_, err := session.AddEvent(sessionEvent(fmt.Sprintf("e%d", i), 15, 9, ""))
		require.NoError(t, err)
		session.MonthGrid()
		session.Agenda()
	}

	// Only the results computed since the last mutation are retained.
	assert.LessOrEqual(t, len(session.memo), 2)

	_, err := session.AddEvent(sessionEvent("last", 16, 9, ""))
	require.NoError(t, err)
	assert.Empty(t, session.memo)
}

type stubEventSource struct {
	events []event.Event
	err    error
}

func (s *stubEventSource) GetAllEvents(ctx context.Context) ([]event.Event, error) {
	return s.events, s.err
}

type stubAvailability struct {
	settings availability.Settings
}

func (s *stubAvailability) GetSettings(ctx context.Context) (availability.Settings, error) {
	return s.settings, nil
}
