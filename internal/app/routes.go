package app

import (
	"github.com/gorilla/mux"
	"github.com/hireflow/hireflow/internal/config"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Events
	r.HandleFunc("/api/event", deps.EventHandler.GetEvents).Queries("from", "{from}", "to", "{to}").Methods("GET")
	r.HandleFunc("/api/event", deps.EventHandler.CreateEvent).Methods("POST")
	r.HandleFunc("/api/event/{eventId}", deps.EventHandler.UpdateEvent).Methods("PATCH")
	r.HandleFunc("/api/event/{eventId}", deps.EventHandler.DeleteEvent).Methods("DELETE")

	// Schedule (view state + grids)
	r.HandleFunc("/api/schedule", deps.ScheduleHandler.GetViewState).Methods("GET")
	r.HandleFunc("/api/schedule/view", deps.ScheduleHandler.SetView).Methods("PUT")
	r.HandleFunc("/api/schedule/reference-date", deps.ScheduleHandler.SetReferenceDate).Methods("PUT")
	r.HandleFunc("/api/schedule/filter", deps.ScheduleHandler.SetFilter).Methods("PUT")
	r.HandleFunc("/api/schedule/navigate", deps.ScheduleHandler.Navigate).Queries("action", "{action}").Methods("POST")
	r.HandleFunc("/api/schedule/month", deps.ScheduleHandler.GetMonthGrid).Methods("GET")
	r.HandleFunc("/api/schedule/week", deps.ScheduleHandler.GetWeekGrid).Methods("GET")
	r.HandleFunc("/api/schedule/year", deps.ScheduleHandler.GetYearGrid).Methods("GET")
	r.HandleFunc("/api/schedule/agenda", deps.ScheduleHandler.GetAgenda).Methods("GET")
	r.HandleFunc("/api/schedule/day", deps.ScheduleHandler.GetDayTimeline).Methods("GET")
	r.HandleFunc("/api/schedule/week-timeline", deps.ScheduleHandler.GetWeekTimeline).Methods("GET")

	// Availability (working hours / visible hours)
	r.HandleFunc("/api/availability", deps.AvailabilityHandler.GetSettings).Methods("GET")
	r.HandleFunc("/api/availability", deps.AvailabilityHandler.UpdateSettings).Methods("PUT")

	// User management
	r.HandleFunc("/api/user/current", deps.UserHandler.CurrentUser).Methods("GET")
	r.HandleFunc("/api/user/current", deps.UserHandler.UpdateUser).Methods("PUT")
	r.HandleFunc("/api/user/current/photo", deps.UserHandler.UploadPhoto).Methods("PUT")
	r.HandleFunc("/api/user/current/photo", deps.UserHandler.GetPhoto).Methods("GET")
	r.HandleFunc("/api/user/current/photo", deps.UserHandler.DeletePhoto).Methods("DELETE")
	r.HandleFunc("/api/user", deps.UserHandler.CreateUser).Methods("POST")
	r.HandleFunc("/api/user", deps.UserHandler.GetAvailableUsers).Methods("GET")
	r.HandleFunc("/api/user/{userId}", deps.UserHandler.DeleteUser).Methods("DELETE")
	r.HandleFunc("/api/user/{userId}/photo", deps.UserHandler.GetPhoto).Methods("GET")

	// Calendar feed
	r.HandleFunc("/api/calendar.ics", deps.FeedHandler.GetFeed).Methods("GET")

	// Google integration
	r.HandleFunc("/api/integrations/google/auth/login", deps.GoogleAuth.OAuthLogin).Methods("GET")
	r.HandleFunc("/api/integrations/google/auth/logout", deps.GoogleAuth.OAuthLogout).Methods("DELETE")
	r.HandleFunc("/api/integrations/google/auth/callback", deps.GoogleAuth.OAuthCallback).Methods("GET")
	r.HandleFunc("/api/integrations/google/calendars", deps.GoogleHandler.ListCalendars).Methods("GET")
	r.HandleFunc("/api/integrations/google/import", deps.GoogleHandler.Import).Methods("POST")
}
