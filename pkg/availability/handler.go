package availability

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/hireflow/hireflow/internal/rest"
)

type Handler struct {
	service Service
}

// SettingsDTO keys working hours by weekday index 0-6 (0 = Sunday).
// A missing weekday means the day is closed.
type SettingsDTO struct {
	WorkingHours map[string]HourRangeDTO `json:"workingHours"`
	VisibleHours HourRangeDTO            `json:"visibleHours"`
}

type HourRangeDTO struct {
	From int `json:"from"`
	To   int `json:"to"`
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.service.GetSettings(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rest.WriteJSON(w, http.StatusOK, settingsToDTO(settings))
}

func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var dto SettingsDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", "")
		return
	}

	settings, err := dtoToSettings(dto)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid weekday index", "weekday keys must be 0-6")
		return
	}

	if err := h.service.StoreSettings(r.Context(), settings); err != nil {
		if errors.Is(err, ErrInvalidHourRange) {
			rest.WriteError(w, http.StatusBadRequest, "Invalid hour range", "hours must be within 0-24")
			return
		}
		if errors.Is(err, ErrInvertedHourRange) {
			rest.WriteError(w, http.StatusBadRequest, "Invalid hour range", "working hours must not end before they start")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rest.WriteJSON(w, http.StatusOK, dto)
}

func settingsToDTO(s Settings) SettingsDTO {
	dto := SettingsDTO{
		WorkingHours: make(map[string]HourRangeDTO, len(s.WorkingHours)),
		VisibleHours: HourRangeDTO{From: s.VisibleHours.From, To: s.VisibleHours.To},
	}
	for weekday, hours := range s.WorkingHours {
		dto.WorkingHours[strconv.Itoa(int(weekday))] = HourRangeDTO{From: hours.From, To: hours.To}
	}
	return dto
}

func dtoToSettings(dto SettingsDTO) (Settings, error) {
	settings := Settings{
		WorkingHours: WorkingHours{},
		VisibleHours: VisibleHours{From: dto.VisibleHours.From, To: dto.VisibleHours.To},
	}
	for key, hours := range dto.WorkingHours {
		weekday, err := strconv.Atoi(key)
		if err != nil || weekday < 0 || weekday > 6 {
			return Settings{}, errors.New("invalid weekday index")
		}
		settings.WorkingHours[time.Weekday(weekday)] = HourRange{From: hours.From, To: hours.To}
	}
	return settings, nil
}
