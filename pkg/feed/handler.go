package feed

import (
	"net/http"
	"time"

	"github.com/hireflow/hireflow/internal/rest"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetFeed serves the current user's month as text/calendar. The month
// defaults to the current one; an explicit RFC3339 "ref" query selects
// another.
func (h *Handler) GetFeed(w http.ResponseWriter, r *http.Request) {
	ref := time.Now()
	if refParam := r.URL.Query().Get("ref"); refParam != "" {
		parsed, err := time.Parse(time.RFC3339, refParam)
		if err != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid ref (date) format", "'ref' must be in RFC3339 format")
			return
		}
		ref = parsed
	}

	body, err := h.service.RenderMonth(r.Context(), ref)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="schedule.ics"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(body)); err != nil {
		log.Errorf("failed to write calendar feed: %v", err)
	}
}
