package availability

import (
	"context"
	"testing"
	"time"

	"github.com/hireflow/hireflow/internal/event_bus"
	"github.com/hireflow/hireflow/internal/test_utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServiceUnderTest(t *testing.T) (*ServiceImpl, *event_bus.EventBus) {
	db := test_utils.SetupTestDB(t)
	bus := event_bus.NewEventBus()
	defaults := DefaultSettings(VisibleHours{From: 8, To: 19})
	return NewService(NewRepository(db), defaults, bus), bus
}

func TestService_GetSettings_FallsBackToDefaults(t *testing.T) {
	service, _ := newServiceUnderTest(t)

	settings, err := service.GetSettings(test_utils.ContextWithTestUser())
	require.NoError(t, err)

	assert.Equal(t, VisibleHours{From: 8, To: 19}, settings.VisibleHours)
	assert.Equal(t, HourRange{From: 9, To: 17}, settings.WorkingHours[time.Monday])
}

func TestService_StoreAndGetSettings(t *testing.T) {
	service, bus := newServiceUnderTest(t)
	ctx := test_utils.ContextWithTestUser()

	changes := 0
	unsub := event_bus.SubscribeTyped(bus, event_bus.AvailabilityChangedType,
		func(e event_bus.EventT[event_bus.AvailabilityChanged]) error {
			changes++
			return nil
		})
	defer unsub()

	stored := Settings{
		VisibleHours: VisibleHours{From: 7, To: 21},
		WorkingHours: WorkingHours{time.Wednesday: {From: 10, To: 16}},
	}
	require.NoError(t, service.StoreSettings(ctx, stored))

	loaded, err := service.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, stored, loaded)
	assert.Equal(t, 1, changes)
}

func TestService_StoreSettings_RejectsOutOfRangeHours(t *testing.T) {
	service, _ := newServiceUnderTest(t)
	ctx := test_utils.ContextWithTestUser()

	testCases := []struct {
		name     string
		settings Settings
	}{
		{"negative visible hour", Settings{VisibleHours: VisibleHours{From: -1, To: 19}}},
		{"visible hour past 24", Settings{VisibleHours: VisibleHours{From: 8, To: 25}}},
		{
			"working hour past 24",
			Settings{
				VisibleHours: VisibleHours{From: 8, To: 19},
				WorkingHours: WorkingHours{time.Monday: {From: 9, To: 30}},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := service.StoreSettings(ctx, tc.settings)
			assert.ErrorIs(t, err, ErrInvalidHourRange)
		})
	}
}

func TestService_StoreSettings_RejectsInvertedWorkingHours(t *testing.T) {
	service, _ := newServiceUnderTest(t)
	ctx := test_utils.ContextWithTestUser()

	err := service.StoreSettings(ctx, Settings{
		VisibleHours: VisibleHours{From: 8, To: 19},
		WorkingHours: WorkingHours{time.Friday: {From: 17, To: 9}},
	})
	assert.ErrorIs(t, err, ErrInvertedHourRange)

	// Equal bounds mark a day off and stay valid.
	require.NoError(t, service.StoreSettings(ctx, Settings{
		VisibleHours: VisibleHours{From: 8, To: 19},
		WorkingHours: WorkingHours{time.Sunday: {From: 0, To: 0}},
	}))

	// An inverted visible window is the empty-timeline case, not an error.
	require.NoError(t, service.StoreSettings(ctx, Settings{
		VisibleHours: VisibleHours{From: 19, To: 8},
		WorkingHours: WorkingHours{time.Monday: {From: 9, To: 17}},
	}))
}

func TestService_RequiresUser(t *testing.T) {
	service, _ := newServiceUnderTest(t)

	_, err := service.GetSettings(context.Background())
	assert.Error(t, err)

	err = service.StoreSettings(context.Background(), DefaultSettings(VisibleHours{From: 8, To: 19}))
	assert.Error(t, err)
}
