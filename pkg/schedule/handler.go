package schedule

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/hireflow/hireflow/internal/rest"
	"github.com/hireflow/hireflow/pkg/calendar"
	"github.com/hireflow/hireflow/pkg/event"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type ViewStateDTO struct {
	View             string    `json:"view"`
	ReferenceDate    time.Time `json:"referenceDate"`
	FilterAssigneeID string    `json:"filterAssigneeId"`
}

type DayDTO struct {
	Date    string           `json:"date"`
	InMonth bool             `json:"inMonth"`
	Today   bool             `json:"today"`
	Events  []event.EventDTO `json:"events,omitempty"`
}

type AgendaGroupDTO struct {
	Date   string           `json:"date"`
	Events []event.EventDTO `json:"events"`
}

type PositionedEventDTO struct {
	Event   event.EventDTO `json:"event"`
	Top     float64        `json:"top"`
	Height  float64        `json:"height"`
	Column  int            `json:"column"`
	Columns int            `json:"columns"`
}

type DayTimelineDTO struct {
	Date      string               `json:"date"`
	HourRows  []int                `json:"hourRows"`
	AllDay    []event.EventDTO     `json:"allDay,omitempty"`
	Timed     []PositionedEventDTO `json:"timed,omitempty"`
	Indicator *float64             `json:"indicator,omitempty"`
}

// GetViewState godoc
// @Summary Current view, reference date and assignee filter
// @Tags Schedule
// @Produce json
// @Success 200 {object} ViewStateDTO
// @Router /api/schedule [get]
func (h *Handler) GetViewState(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.SessionFor(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rest.WriteJSON(w, http.StatusOK, stateToDTO(session.State()))
}

func (h *Handler) SetView(w http.ResponseWriter, r *http.Request) {
	var body struct {
		View string `json:"view"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", "")
		return
	}
	view, err := ParseView(body.View)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Unknown view", "view must be one of day, week, month, year, agenda")
		return
	}

	session, err := h.service.SessionFor(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	session.SetView(view)
	rest.WriteJSON(w, http.StatusOK, stateToDTO(session.State()))
}

func (h *Handler) SetReferenceDate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ReferenceDate string `json:"referenceDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", "")
		return
	}
	ref, err := time.Parse(time.RFC3339, body.ReferenceDate)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid date format", "'referenceDate' must be in RFC3339 format")
		return
	}

	session, err := h.service.SessionFor(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	session.SetReferenceDate(ref)
	rest.WriteJSON(w, http.StatusOK, stateToDTO(session.State()))
}

func (h *Handler) SetFilter(w http.ResponseWriter, r *http.Request) {
	var body struct {
		AssigneeID string `json:"assigneeId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", "")
		return
	}

	session, err := h.service.SessionFor(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	session.SetFilterAssigneeID(body.AssigneeID)
	rest.WriteJSON(w, http.StatusOK, stateToDTO(session.State()))
}

// Navigate applies a toolbar action: "previous", "next" or "today".
func (h *Handler) Navigate(w http.ResponseWriter, r *http.Request) {
	action := r.URL.Query().Get("action")
	session, err := h.service.SessionFor(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	switch action {
	case "previous":
		session.Previous()
	case "next":
		session.Next()
	case "today":
		session.Today()
	default:
		rest.WriteError(w, http.StatusBadRequest, "Unknown navigation action", "action must be one of previous, next, today")
		return
	}
	log.Tracef("Navigated %s to %s", action, session.State().ReferenceDate)
	rest.WriteJSON(w, http.StatusOK, stateToDTO(session.State()))
}

func (h *Handler) GetMonthGrid(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(session *Session) any {
		return daysToDTO(session.MonthGrid(), h.now(session))
	})
}

func (h *Handler) GetWeekGrid(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(session *Session) any {
		return daysToDTO(session.WeekGrid(), h.now(session))
	})
}

func (h *Handler) GetYearGrid(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(session *Session) any {
		now := h.now(session)
		months := session.YearGrid()
		out := make([][]DayDTO, 0, len(months))
		for _, m := range months {
			out = append(out, daysToDTO(m, now))
		}
		return out
	})
}

func (h *Handler) GetAgenda(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(session *Session) any {
		groups := session.Agenda()
		out := make([]AgendaGroupDTO, 0, len(groups))
		for _, g := range groups {
			out = append(out, AgendaGroupDTO{
				Date:   g.Date.Format(time.DateOnly),
				Events: eventsToDTO(g.Events),
			})
		}
		return out
	})
}

func (h *Handler) GetDayTimeline(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(session *Session) any {
		return timelineToDTO(session.DayTimeline())
	})
}

func (h *Handler) GetWeekTimeline(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(session *Session) any {
		timelines := session.WeekTimeline()
		out := make([]DayTimelineDTO, 0, len(timelines))
		for _, t := range timelines {
			out = append(out, timelineToDTO(t))
		}
		return out
	})
}

func (h *Handler) withSession(w http.ResponseWriter, r *http.Request, query func(*Session) any) {
	session, err := h.service.SessionFor(r.Context())
	if err != nil {
		if errors.Is(err, ErrUnknownView) {
			rest.WriteError(w, http.StatusBadRequest, "Unknown view", "")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rest.WriteJSON(w, http.StatusOK, query(session))
}

func (h *Handler) now(session *Session) time.Time {
	return session.clock.Now()
}

func stateToDTO(state ViewState) ViewStateDTO {
	return ViewStateDTO{
		View:             string(state.View),
		ReferenceDate:    state.ReferenceDate,
		FilterAssigneeID: state.FilterAssigneeID,
	}
}

func daysToDTO(days []calendar.Day, now time.Time) []DayDTO {
	out := make([]DayDTO, 0, len(days))
	for _, d := range days {
		out = append(out, DayDTO{
			Date:    d.Date.Format(time.DateOnly),
			InMonth: d.InMonth,
			Today:   calendar.SameDay(d.Date, now),
			Events:  eventsToDTO(d.Events),
		})
	}
	return out
}

func eventsToDTO(events []event.Event) []event.EventDTO {
	if len(events) == 0 {
		return nil
	}
	out := make([]event.EventDTO, 0, len(events))
	for _, e := range events {
		out = append(out, event.ToDTO(e))
	}
	return out
}

func timelineToDTO(t DayTimeline) DayTimelineDTO {
	dto := DayTimelineDTO{
		Date:      t.Date.Format(time.DateOnly),
		HourRows:  t.HourRows,
		AllDay:    eventsToDTO(t.AllDay),
		Indicator: t.Indicator,
	}
	for _, p := range t.Timed {
		dto.Timed = append(dto.Timed, PositionedEventDTO{
			Event:   event.ToDTO(p.Event),
			Top:     p.Box.Top,
			Height:  p.Box.Height,
			Column:  p.Column,
			Columns: p.Columns,
		})
	}
	return dto
}
