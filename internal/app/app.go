package app

import (
	"context"
	"net/http"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/gorilla/mux"
	"github.com/hireflow/hireflow/internal/config"
	"github.com/hireflow/hireflow/internal/database"
	"github.com/hireflow/hireflow/internal/rest"
	"github.com/hireflow/hireflow/pkg/user"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// Application wires configuration, database, router, and server lifecycle.
type Application struct {
	cfg    config.Application
	router *mux.Router
	srv    *http.Server
	cron   *cron.Cron
}

// NewApplication constructs the full HTTP application, ready to Run().
func NewApplication() (*Application, error) {
	cfg, err := config.Load("./config/application.yaml")
	if err != nil {
		return nil, err
	}

	// DB + migrations
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, err
	}
	// db will be closed when server shuts down; defer not possible here, leave to process exit.
	if err := database.Migrate(cfg.Database); err != nil {
		return nil, err
	}

	r := mux.NewRouter()

	// Build dependencies (services, handlers...)
	deps := BuildDependencies(db, cfg)

	// Middleware chain
	SetupMiddleware(r, deps, cfg)

	// Routes
	RegisterRoutes(r, deps, cfg)

	// Frontend
	if cfg.Frontend.Enabled {
		frontend := rest.NewFrontendHandler("frontend", "index.html")
		r.PathPrefix("/").Handler(frontend)
	}

	app := &Application{
		cfg:    cfg,
		router: r,
		srv: &http.Server{
			Handler:      r,
			Addr:         ":8181",
			WriteTimeout: 15 * time.Second,
			ReadTimeout:  15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}

	if cfg.Google.SyncSchedule != "" {
		app.cron = cron.New()
		_, err := app.cron.AddFunc(cfg.Google.SyncSchedule, func() {
			syncGoogleCalendars(deps)
		})
		if err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Run starts the HTTP server and blocks.
func (a *Application) Run() error {
	if a.cron != nil {
		a.cron.Start()
	}

	// Tell systemd we are ready; a no-op outside a systemd unit.
	if _, err := daemon.SdNotify(false, daemon.SdNotifyReady); err != nil {
		log.Debugf("sd_notify not available: %v", err)
	}

	log.Infof("Starting server on %s", a.srv.Addr)
	return a.srv.ListenAndServe()
}

// syncGoogleCalendars imports the upcoming week of every connected user's
// primary calendar.
func syncGoogleCalendars(deps *Dependencies) {
	ctx := context.Background()
	users, err := deps.UserService.GetAllUsers(ctx)
	if err != nil {
		log.Errorf("google sync: failed to list users: %v", err)
		return
	}

	now := time.Now()
	for _, u := range users {
		userCtx := user.WithUser(ctx, u)
		imported, err := deps.GoogleImporter.Import(userCtx, "primary", now, now.AddDate(0, 0, 7))
		if err != nil {
			// Users without a connected account are expected here.
			log.Debugf("google sync skipped for user %s: %v", u.ID, err)
			continue
		}
		if imported > 0 {
			log.Infof("google sync: imported %d events for user %s", imported, u.ID)
		}
	}
}
