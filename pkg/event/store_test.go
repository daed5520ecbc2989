package event

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEvent(id string, startHour int) Event {
	day := time.Date(2026, time.July, 15, 0, 0, 0, 0, time.UTC)
	return Event{
		ID:        id,
		Title:     "Interview " + id,
		StartTime: day.Add(time.Duration(startHour) * time.Hour),
		EndTime:   day.Add(time.Duration(startHour+1) * time.Hour),
		Color:     ColorBlue,
	}
}

func TestEventValidate(t *testing.T) {
	now := time.Date(2026, time.July, 15, 9, 0, 0, 0, time.UTC)

	testCases := []struct {
		name        string
		event       Event
		expectedErr error
	}{
		{"valid", Event{StartTime: now, EndTime: now.Add(time.Hour)}, nil},
		{"zero duration is allowed", Event{StartTime: now, EndTime: now}, nil},
		{"end before start", Event{StartTime: now, EndTime: now.Add(-time.Hour)}, ErrInvalidTimeRange},
		{"missing start", Event{EndTime: now}, ErrMissingTime},
		{"missing end", Event{StartTime: now}, ErrMissingTime},
		{"unknown color", Event{StartTime: now, EndTime: now.Add(time.Hour), Color: "magenta"}, ErrUnknownColor},
		{"empty color", Event{StartTime: now, EndTime: now.Add(time.Hour), Color: ""}, nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.event.Validate()
			if tc.expectedErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.expectedErr)
			}
		})
	}
}

func TestStoreAdd(t *testing.T) {
	store := NewStore()

	added, err := store.Add(testEvent("e1", 9))
	require.NoError(t, err)
	assert.Equal(t, "e1", added.ID)
	assert.Equal(t, 1, store.Len())

	t.Run("generates id when empty", func(t *testing.T) {
		e := testEvent("", 10)
		added, err := store.Add(e)
		require.NoError(t, err)
		assert.NotEmpty(t, added.ID)
	})

	t.Run("rejects duplicate id", func(t *testing.T) {
		_, err := store.Add(testEvent("e1", 11))
		assert.ErrorIs(t, err, ErrDuplicateID)
		assert.Equal(t, 2, store.Len())
	})

	t.Run("rejects invalid event", func(t *testing.T) {
		bad := testEvent("bad", 9)
		bad.EndTime = bad.StartTime.Add(-time.Hour)
		_, err := store.Add(bad)
		assert.ErrorIs(t, err, ErrInvalidTimeRange)
		_, found := store.Get("bad")
		assert.False(t, found)
	})
}

func TestStoreUpdate(t *testing.T) {
	store := NewStore()
	_, err := store.Add(testEvent("e1", 9))
	require.NoError(t, err)

	t.Run("patches only provided fields", func(t *testing.T) {
		title := "Final round"
		updated, err := store.Update("e1", Patch{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, "Final round", updated.Title)
		assert.Equal(t, ColorBlue, updated.Color)

		stored, found := store.Get("e1")
		require.True(t, found)
		assert.Equal(t, updated, stored)
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		title := "ignored"
		updated, err := store.Update("missing", Patch{Title: &title})
		assert.NoError(t, err)
		assert.Empty(t, updated.ID)
		assert.Equal(t, 1, store.Len())
	})

	t.Run("rejects patch producing inverted range", func(t *testing.T) {
		before, _ := store.Get("e1")
		badEnd := before.StartTime.Add(-time.Hour)
		_, err := store.Update("e1", Patch{EndTime: &badEnd})
		assert.ErrorIs(t, err, ErrInvalidTimeRange)

		after, _ := store.Get("e1")
		assert.Equal(t, before, after, "stored event must stay unchanged")
	})
}

func TestStoreRemove(t *testing.T) {
	store := NewStore()
	for _, id := range []string{"e1", "e2", "e3"} {
		_, err := store.Add(testEvent(id, 9))
		require.NoError(t, err)
	}

	store.Remove("e2")

	assert.Equal(t, 2, store.Len())
	_, found := store.Get("e2")
	assert.False(t, found)

	// The remaining events stay ordered and addressable after reindexing.
	all := store.All()
	require.Len(t, all, 2)
	assert.Equal(t, "e1", all[0].ID)
	assert.Equal(t, "e3", all[1].ID)
	e3, found := store.Get("e3")
	assert.True(t, found)
	assert.Equal(t, "e3", e3.ID)

	t.Run("unknown id is a no-op", func(t *testing.T) {
		store.Remove("missing")
		store.Remove("e2")
		assert.Equal(t, 2, store.Len())
	})
}

func TestStoreFilterByAssignee(t *testing.T) {
	store := NewStore()
	assigned := testEvent("assigned", 9)
	assigned.AssigneeID = "user-1"
	other := testEvent("other", 10)
	other.AssigneeID = "user-2"
	unassigned := testEvent("unassigned", 11)

	for _, e := range []Event{assigned, other, unassigned} {
		_, err := store.Add(e)
		require.NoError(t, err)
	}

	t.Run("all keeps everything", func(t *testing.T) {
		assert.Len(t, store.FilterByAssignee(FilterAll), 3)
	})

	t.Run("specific id excludes unassigned", func(t *testing.T) {
		filtered := store.FilterByAssignee("user-1")
		require.Len(t, filtered, 1)
		assert.Equal(t, "assigned", filtered[0].ID)
	})

	t.Run("unknown id matches nothing", func(t *testing.T) {
		assert.Empty(t, store.FilterByAssignee("user-99"))
	})

	t.Run("filtering does not mutate the store", func(t *testing.T) {
		store.FilterByAssignee("user-1")
		assert.Equal(t, 3, store.Len())
	})
}

func TestStoreSortedByStart(t *testing.T) {
	store := NewStore()
	for _, e := range []Event{testEvent("late", 15), testEvent("early", 8), testEvent("mid", 11)} {
		_, err := store.Add(e)
		require.NoError(t, err)
	}

	sorted := store.SortedByStart()

	require.Len(t, sorted, 3)
	assert.Equal(t, "early", sorted[0].ID)
	assert.Equal(t, "mid", sorted[1].ID)
	assert.Equal(t, "late", sorted[2].ID)

	// Insertion order is untouched.
	assert.Equal(t, "late", store.All()[0].ID)
}

func TestStoreReplace(t *testing.T) {
	store := NewStore()
	_, err := store.Add(testEvent("old", 9))
	require.NoError(t, err)

	invalid := testEvent("invalid", 9)
	invalid.EndTime = invalid.StartTime.Add(-time.Hour)

	store.Replace([]Event{testEvent("new1", 10), invalid, testEvent("new2", 11), testEvent("new1", 12)})

	assert.Equal(t, 2, store.Len())
	_, found := store.Get("old")
	assert.False(t, found)
	e, found := store.Get("new1")
	require.True(t, found)
	assert.Equal(t, 10, e.StartTime.Hour(), "first occurrence of a duplicate id wins")
}
