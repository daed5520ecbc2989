package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/hireflow/hireflow/internal/event_bus"
	"github.com/hireflow/hireflow/pkg/user"
	log "github.com/sirupsen/logrus"
)

var (
	ErrInvalidHourRange  = errors.New("hours must be within 0-24")
	ErrInvertedHourRange = errors.New("working hours must not end before they start")
)

type Service interface {
	GetSettings(ctx context.Context) (Settings, error)
	StoreSettings(ctx context.Context, settings Settings) error
}

type ServiceImpl struct {
	repo     Repository
	defaults Settings
	bus      *event_bus.EventBus
}

func NewService(repo Repository, defaults Settings, bus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, defaults: defaults, bus: bus}
}

// GetSettings returns the current user's availability, falling back to the
// configured defaults for users who never stored any.
func (s *ServiceImpl) GetSettings(ctx context.Context) (Settings, error) {
	userId, err := user.CurrentID(ctx)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to get current user: %w", err)
	}

	settings, err := s.repo.GetSettings(ctx, userId)
	if errors.Is(err, ErrSettingsNotFound) {
		return s.defaults, nil
	} else if err != nil {
		return Settings{}, err
	}
	return settings, nil
}

func (s *ServiceImpl) StoreSettings(ctx context.Context, settings Settings) error {
	userId, err := user.CurrentID(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}

	if err := validate(settings); err != nil {
		return err
	}
	if err := s.repo.StoreSettings(ctx, userId, settings); err != nil {
		return err
	}

	if s.bus != nil {
		publishErr := s.bus.Publish(event_bus.NewEvent(ctx, event_bus.AvailabilityChangedType,
			event_bus.AvailabilityChanged{UserID: userId}))
		if publishErr != nil {
			log.Errorf("failed to publish availability change: %v", publishErr)
		}
	}
	return nil
}

func validate(settings Settings) error {
	ranges := []HourRange{HourRange(settings.VisibleHours)}
	for _, r := range settings.WorkingHours {
		ranges = append(ranges, r)
	}
	for _, r := range ranges {
		if r.From < 0 || r.From > 24 || r.To < 0 || r.To > 24 {
			return fmt.Errorf("%w: {%d, %d}", ErrInvalidHourRange, r.From, r.To)
		}
	}
	// An inverted visible window is legal and renders as an empty timeline,
	// but inverted working hours have no meaning. Equal bounds mark a day off.
	for _, r := range settings.WorkingHours {
		if r.From > r.To {
			return fmt.Errorf("%w: {%d, %d}", ErrInvertedHourRange, r.From, r.To)
		}
	}
	return nil
}
