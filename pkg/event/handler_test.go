package event

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/hireflow/hireflow/internal/test_utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*mux.Router, *ServiceImpl) {
	service, _ := newServiceUnderTest(t)
	handler := NewHandler(service)

	router := mux.NewRouter()
	router.HandleFunc("/api/event", handler.GetEvents).Methods(http.MethodGet)
	router.HandleFunc("/api/event", handler.CreateEvent).Methods(http.MethodPost)
	router.HandleFunc("/api/event/{eventId}", handler.UpdateEvent).Methods(http.MethodPatch)
	router.HandleFunc("/api/event/{eventId}", handler.DeleteEvent).Methods(http.MethodDelete)
	return router, service
}

func doRequest(router *mux.Router, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	req = req.WithContext(test_utils.ContextWithTestUser())
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestHandler_CreateEvent(t *testing.T) {
	router, _ := newTestRouter(t)

	body := `{
		"title": "Phone screen",
		"startDate": "2026-07-15T09:00:00Z",
		"endDate": "2026-07-15T10:00:00Z",
		"color": "green",
		"assigneeId": "user-2"
	}`
	response := doRequest(router, http.MethodPost, "/api/event", body)

	require.Equal(t, http.StatusCreated, response.Code)

	var dto EventDTO
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), &dto))
	assert.NotEmpty(t, dto.ID)
	assert.Equal(t, "Phone screen", dto.Title)
	assert.Equal(t, "2026-07-15T09:00:00Z", dto.StartDate)
	assert.Equal(t, "green", dto.Color)
}

func TestHandler_CreateEvent_Errors(t *testing.T) {
	router, _ := newTestRouter(t)

	testCases := []struct {
		name         string
		body         string
		expectedCode int
	}{
		{"malformed json", `{"title":`, http.StatusBadRequest},
		{
			"bad date format",
			`{"title": "t", "startDate": "tomorrow", "endDate": "2026-07-15T10:00:00Z"}`,
			http.StatusBadRequest,
		},
		{
			"end before start",
			`{"title": "t", "startDate": "2026-07-15T10:00:00Z", "endDate": "2026-07-15T09:00:00Z"}`,
			http.StatusBadRequest,
		},
		{
			"unknown color",
			`{"title": "t", "startDate": "2026-07-15T09:00:00Z", "endDate": "2026-07-15T10:00:00Z", "color": "magenta"}`,
			http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			response := doRequest(router, http.MethodPost, "/api/event", tc.body)
			assert.Equal(t, tc.expectedCode, response.Code)
		})
	}
}

func TestHandler_GetEvents(t *testing.T) {
	router, _ := newTestRouter(t)

	create := `{"title": "t", "startDate": "2026-07-15T09:00:00Z", "endDate": "2026-07-15T10:00:00Z"}`
	require.Equal(t, http.StatusCreated, doRequest(router, http.MethodPost, "/api/event", create).Code)

	response := doRequest(router, http.MethodGet,
		"/api/event?from=2026-07-01T00:00:00Z&to=2026-08-01T00:00:00Z", "")

	require.Equal(t, http.StatusOK, response.Code)
	var dtos []EventDTO
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), &dtos))
	assert.Len(t, dtos, 1)

	t.Run("missing range is rejected", func(t *testing.T) {
		response := doRequest(router, http.MethodGet, "/api/event", "")
		assert.Equal(t, http.StatusBadRequest, response.Code)
	})
}

func TestHandler_UpdateEvent(t *testing.T) {
	router, _ := newTestRouter(t)

	create := `{"title": "t", "startDate": "2026-07-15T09:00:00Z", "endDate": "2026-07-15T10:00:00Z"}`
	created := doRequest(router, http.MethodPost, "/api/event", create)
	require.Equal(t, http.StatusCreated, created.Code)
	var dto EventDTO
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &dto))

	response := doRequest(router, http.MethodPatch, "/api/event/"+dto.ID, `{"title": "Final round"}`)

	require.Equal(t, http.StatusOK, response.Code)
	var updated EventDTO
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), &updated))
	assert.Equal(t, "Final round", updated.Title)
	assert.Equal(t, dto.StartDate, updated.StartDate, "unpatched fields survive")

	t.Run("unknown event", func(t *testing.T) {
		response := doRequest(router, http.MethodPatch, "/api/event/missing", `{"title": "x"}`)
		assert.Equal(t, http.StatusNotFound, response.Code)
	})
}

func TestHandler_DeleteEvent(t *testing.T) {
	router, _ := newTestRouter(t)

	create := `{"title": "t", "startDate": "2026-07-15T09:00:00Z", "endDate": "2026-07-15T10:00:00Z"}`
	created := doRequest(router, http.MethodPost, "/api/event", create)
	require.Equal(t, http.StatusCreated, created.Code)
	var dto EventDTO
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &dto))

	response := doRequest(router, http.MethodDelete, "/api/event/"+dto.ID, "")
	assert.Equal(t, http.StatusNoContent, response.Code)

	list := doRequest(router, http.MethodGet,
		"/api/event?from=2026-07-01T00:00:00Z&to=2026-08-01T00:00:00Z", "")
	var dtos []EventDTO
	require.NoError(t, json.Unmarshal(list.Body.Bytes(), &dtos))
	assert.Empty(t, dtos)
}
