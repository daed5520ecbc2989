package google

import (
	"errors"
	"net/http"
	"time"

	"github.com/hireflow/hireflow/internal/rest"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	importer *Importer
}

func NewHandler(importer *Importer) *Handler {
	return &Handler{importer: importer}
}

func (h *Handler) ListCalendars(w http.ResponseWriter, r *http.Request) {
	calendars, err := h.importer.ListCalendars(r.Context())
	if err != nil {
		if errors.Is(err, ErrUnauthenticated) {
			rest.WriteError(w, http.StatusUnauthorized, "Google account is not connected", "")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rest.WriteJSON(w, http.StatusOK, calendars)
}

// Import copies a date range from a Google calendar into the schedule.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	calendarId := r.URL.Query().Get("calendarId")
	if calendarId == "" {
		rest.WriteError(w, http.StatusBadRequest, "Missing calendarId", "")
		return
	}
	from, err := time.Parse(time.RFC3339, r.URL.Query().Get("from"))
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid from (date) format", "'from' must be in RFC3339 format")
		return
	}
	to, err := time.Parse(time.RFC3339, r.URL.Query().Get("to"))
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid to (date) format", "'to' must be in RFC3339 format")
		return
	}

	imported, err := h.importer.Import(r.Context(), calendarId, from, to)
	if err != nil {
		if errors.Is(err, ErrUnauthenticated) {
			rest.WriteError(w, http.StatusUnauthorized, "Google account is not connected", "")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	log.Infof("Imported %d events from Google calendar %s", imported, calendarId)
	rest.WriteJSON(w, http.StatusOK, map[string]int{"imported": imported})
}
