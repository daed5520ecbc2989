package event

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/hireflow/hireflow/internal/rest"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	events Service
}

type EventDTO struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Color       string `json:"color,omitempty"`
	AssigneeID  string `json:"assigneeId,omitempty"`
}

type EventPatchDTO struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	StartDate   *string `json:"startDate"`
	EndDate     *string `json:"endDate"`
	Color       *string `json:"color"`
	AssigneeID  *string `json:"assigneeId"`
}

func NewHandler(s Service) *Handler {
	return &Handler{s}
}

// GetEvents godoc
// @Summary List events overlapping a time range
// @Tags Event
// @Produce json
// @Param from query string true "Range start (RFC3339)"
// @Param to query string true "Range end (RFC3339)"
// @Success 200 {array} EventDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid date format"
// @Router /api/event [get]
func (h *Handler) GetEvents(w http.ResponseWriter, r *http.Request) {
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

	events, err := h.events.GetEvents(r.Context(), from, to)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]EventDTO, 0, len(events))
	for _, e := range events {
		dtos = append(dtos, ToDTO(e))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var dto EventDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", "")
		return
	}

	toAdd, err := dtoToEvent(dto)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid event date", "'startDate' and 'endDate' must be in RFC3339 format")
		return
	}

	added, err := h.events.AddEvent(r.Context(), toAdd)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, ToDTO(added))
}

func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventId := mux.Vars(r)["eventId"]

	var dto EventPatchDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", "")
		return
	}

	patch, err := dtoToPatch(dto)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid event date", "'startDate' and 'endDate' must be in RFC3339 format")
		return
	}

	modified, err := h.events.ModifyEvent(r.Context(), eventId, patch)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, ToDTO(modified))
}

func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventId := mux.Vars(r)["eventId"]
	log.Tracef("Deleting event %s", eventId)

	if err := h.events.DeleteEvent(r.Context(), eventId); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidTimeRange), errors.Is(err, ErrMissingTime):
		rest.WriteError(w, http.StatusBadRequest, "Invalid event time range", "'endDate' must not be before 'startDate'")
	case errors.Is(err, ErrUnknownColor):
		rest.WriteError(w, http.StatusBadRequest, "Unknown event color", "")
	case errors.Is(err, ErrEventNotFound):
		rest.WriteError(w, http.StatusNotFound, "Event not found", "")
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// ToDTO converts an event to its JSON representation.
func ToDTO(e Event) EventDTO {
	return EventDTO{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		StartDate:   e.StartTime.Format(time.RFC3339),
		EndDate:     e.EndTime.Format(time.RFC3339),
		Color:       string(e.Color),
		AssigneeID:  e.AssigneeID,
	}
}

func dtoToEvent(dto EventDTO) (Event, error) {
	start, err := time.Parse(time.RFC3339, dto.StartDate)
	if err != nil {
		return Event{}, err
	}
	end, err := time.Parse(time.RFC3339, dto.EndDate)
	if err != nil {
		return Event{}, err
	}
	return Event{
		ID:          dto.ID,
		Title:       dto.Title,
		Description: dto.Description,
		StartTime:   start,
		EndTime:     end,
		Color:       Color(dto.Color),
		AssigneeID:  dto.AssigneeID,
	}, nil
}

func dtoToPatch(dto EventPatchDTO) (Patch, error) {
	patch := Patch{
		Title:       dto.Title,
		Description: dto.Description,
		AssigneeID:  dto.AssigneeID,
	}
	if dto.Color != nil {
		color := Color(*dto.Color)
		patch.Color = &color
	}
	if dto.StartDate != nil {
		start, err := time.Parse(time.RFC3339, *dto.StartDate)
		if err != nil {
			return Patch{}, err
		}
		patch.StartTime = &start
	}
	if dto.EndDate != nil {
		end, err := time.Parse(time.RFC3339, *dto.EndDate)
		if err != nil {
			return Patch{}, err
		}
		patch.EndTime = &end
	}
	return patch, nil
}
