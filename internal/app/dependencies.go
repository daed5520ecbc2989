package app

import (
	"database/sql"

	"github.com/hireflow/hireflow/internal/config"
	"github.com/hireflow/hireflow/internal/event_bus"
	"github.com/hireflow/hireflow/internal/utils"
	"github.com/hireflow/hireflow/pkg/availability"
	"github.com/hireflow/hireflow/pkg/event"
	"github.com/hireflow/hireflow/pkg/feed"
	"github.com/hireflow/hireflow/pkg/google"
	"github.com/hireflow/hireflow/pkg/layout"
	"github.com/hireflow/hireflow/pkg/schedule"
	"github.com/hireflow/hireflow/pkg/user"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Bus   *event_bus.EventBus
	Clock utils.Clock

	UserService user.Service
	UserHandler *user.Handler

	EventRepo    event.Repository
	EventService event.Service
	EventHandler *event.Handler

	AvailabilityRepo    availability.Repository
	AvailabilityService availability.Service
	AvailabilityHandler *availability.Handler

	ScheduleService *schedule.Service
	ScheduleHandler *schedule.Handler

	FeedService *feed.Service
	FeedHandler *feed.Handler

	GoogleAuth     *google.Auth
	GoogleImporter *google.Importer
	GoogleHandler  *google.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.Bus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}

	deps.UserService = user.NewService(user.NewRepository(db))
	deps.UserHandler = user.NewHandler(deps.UserService)

	deps.EventRepo = event.NewRepository(db)
	deps.EventService = event.NewService(deps.EventRepo, deps.Bus)
	deps.EventHandler = event.NewHandler(deps.EventService)

	defaults := availability.DefaultSettings(availability.VisibleHours{
		From: cfg.Calendar.VisibleFrom,
		To:   cfg.Calendar.VisibleTo,
	})
	deps.AvailabilityRepo = availability.NewRepository(db)
	deps.AvailabilityService = availability.NewService(deps.AvailabilityRepo, defaults, deps.Bus)
	deps.AvailabilityHandler = availability.NewHandler(deps.AvailabilityService)

	layoutCfg := layout.Config{HourHeight: cfg.Calendar.HourHeight}
	deps.ScheduleService = schedule.NewService(deps.EventService, deps.AvailabilityService, layoutCfg, deps.Clock, deps.Bus)
	deps.ScheduleHandler = schedule.NewHandler(deps.ScheduleService)

	deps.FeedService = feed.NewService(deps.EventService)
	deps.FeedHandler = feed.NewHandler(deps.FeedService)

	deps.GoogleAuth = google.NewAuth(db, cfg)
	deps.GoogleImporter = google.NewImporter(deps.GoogleAuth, deps.EventService)
	deps.GoogleHandler = google.NewHandler(deps.GoogleImporter)

	return deps
}
