package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/itsmeERRORr/esportscalendar/internal/dto"
	"github.com/itsmeERRORr/esportscalendar/internal/middleware"
	"github.com/itsmeERRORr/esportscalendar/internal/models"
	"github.com/itsmeERRORr/esportscalendar/internal/service"
	"github.com/itsmeERRORr/esportscalendar/internal/session"
)

// --- Mock EventService ---

type mockEventService struct {
	createFn    func(ctx context.Context, event *models.Event) error
	getFn       func(ctx context.Context, userID, id uint) (*models.Event, error)
	updateFn    func(ctx context.Context, event *models.Event) error
	deleteFn    func(ctx context.Context, userID, id uint) error
	listFn      func(ctx context.Context, userID uint) ([]models.Event, error)
	dashboardFn func(ctx context.Context, userID uint) (*service.Dashboard, error)
}

func (m *mockEventService) CreateEvent(ctx context.Context, event *models.Event) error {
	return m.createFn(ctx, event)
}
func (m *mockEventService) GetEvent(ctx context.Context, userID, id uint) (*models.Event, error) {
	return m.getFn(ctx, userID, id)
}
func (m *mockEventService) UpdateEvent(ctx context.Context, event *models.Event) error {
	return m.updateFn(ctx, event)
}
func (m *mockEventService) DeleteEvent(ctx context.Context, userID, id uint) error {
	return m.deleteFn(ctx, userID, id)
}
func (m *mockEventService) ListEvents(ctx context.Context, userID uint) ([]models.Event, error) {
	return m.listFn(ctx, userID)
}
func (m *mockEventService) GetDashboard(ctx context.Context, userID uint) (*service.Dashboard, error) {
	return m.dashboardFn(ctx, userID)
}

// --- Helpers ---

func newContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = middleware.NewValidator()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	session.Set(c, session.Session{UserID: 7})
	return c, rec
}

const createBody = `{
	"name": "IEM Katowice",
	"client": "ESL",
	"game": "CS2",
	"city": "Katowice",
	"country": "Poland",
	"start_date": "2025-02-01",
	"end_date": "2025-02-05",
	"rate": 200,
	"travel_rate": 100,
	"currency": "EUR",
	"status": "Confirmed"
}`

// --- Tests ---

func TestCreateEvent_Handler_Success(t *testing.T) {
	svc := &mockEventService{
		createFn: func(ctx context.Context, event *models.Event) error {
			event.ID = 1
			event.NumberOfDays = 5
			event.Budgeted = 1200
			return nil
		},
	}

	c, rec := newContext(t, http.MethodPost, "/api/v1/events", createBody)

	h := NewEventHandler(svc)
	err := h.CreateEvent(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp dto.EventResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint(1), resp.ID)
	assert.Equal(t, uint(7), resp.UserID)
	assert.Equal(t, "IEM Katowice", resp.Name)
	assert.Equal(t, "2025-02-01", resp.StartDate)
	assert.Equal(t, 1200.0, resp.Budgeted)
}

func TestCreateEvent_Handler_MissingName(t *testing.T) {
	c, _ := newContext(t, http.MethodPost, "/api/v1/events",
		`{"name":"","start_date":"2025-02-01","end_date":"2025-02-05"}`)

	h := NewEventHandler(&mockEventService{})
	err := h.CreateEvent(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestCreateEvent_Handler_BadDate(t *testing.T) {
	c, _ := newContext(t, http.MethodPost, "/api/v1/events",
		`{"name":"Test","start_date":"01/02/2025","end_date":"2025-02-05"}`)

	h := NewEventHandler(&mockEventService{})
	err := h.CreateEvent(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestCreateEvent_Handler_InvalidStatus(t *testing.T) {
	c, _ := newContext(t, http.MethodPost, "/api/v1/events",
		`{"name":"Test","start_date":"2025-02-01","end_date":"2025-02-05","status":"Cancelled"}`)

	h := NewEventHandler(&mockEventService{})
	err := h.CreateEvent(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestGetEvent_Handler_Success(t *testing.T) {
	svc := &mockEventService{
		getFn: func(ctx context.Context, userID, id uint) (*models.Event, error) {
			assert.Equal(t, uint(7), userID)
			return &models.Event{ID: 1, UserID: 7, Name: "IEM Katowice"}, nil
		},
	}

	c, rec := newContext(t, http.MethodGet, "/api/v1/events/1", "")
	c.SetParamNames("id")
	c.SetParamValues("1")

	h := NewEventHandler(svc)
	err := h.GetEvent(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.EventResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "IEM Katowice", resp.Name)
}

func TestGetEvent_Handler_NotFound(t *testing.T) {
	svc := &mockEventService{
		getFn: func(ctx context.Context, userID, id uint) (*models.Event, error) {
			return nil, service.ErrEventNotFound
		},
	}

	c, _ := newContext(t, http.MethodGet, "/api/v1/events/999", "")
	c.SetParamNames("id")
	c.SetParamValues("999")

	h := NewEventHandler(svc)
	err := h.GetEvent(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Code)
}

func TestGetEvent_Handler_InvalidID(t *testing.T) {
	c, _ := newContext(t, http.MethodGet, "/api/v1/events/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")

	h := NewEventHandler(&mockEventService{})
	err := h.GetEvent(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestUpdateEvent_Handler_Success(t *testing.T) {
	var updated *models.Event
	svc := &mockEventService{
		updateFn: func(ctx context.Context, event *models.Event) error {
			updated = event
			return nil
		},
	}

	c, rec := newContext(t, http.MethodPut, "/api/v1/events/3", createBody)
	c.SetParamNames("id")
	c.SetParamValues("3")

	h := NewEventHandler(svc)
	err := h.UpdateEvent(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(3), updated.ID)
	assert.Equal(t, uint(7), updated.UserID)
}

func TestUpdateEvent_Handler_NotFound(t *testing.T) {
	svc := &mockEventService{
		updateFn: func(ctx context.Context, event *models.Event) error {
			return service.ErrEventNotFound
		},
	}

	c, _ := newContext(t, http.MethodPut, "/api/v1/events/999", createBody)
	c.SetParamNames("id")
	c.SetParamValues("999")

	h := NewEventHandler(svc)
	err := h.UpdateEvent(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Code)
}

func TestDeleteEvent_Handler_Success(t *testing.T) {
	svc := &mockEventService{
		deleteFn: func(ctx context.Context, userID, id uint) error {
			return nil
		},
	}

	c, rec := newContext(t, http.MethodDelete, "/api/v1/events/3", "")
	c.SetParamNames("id")
	c.SetParamValues("3")

	h := NewEventHandler(svc)
	err := h.DeleteEvent(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestListEvents_Handler_Success(t *testing.T) {
	svc := &mockEventService{
		listFn: func(ctx context.Context, userID uint) ([]models.Event, error) {
			return []models.Event{
				{ID: 1, Name: "Event A"},
				{ID: 2, Name: "Event B"},
			}, nil
		},
	}

	c, rec := newContext(t, http.MethodGet, "/api/v1/events", "")

	h := NewEventHandler(svc)
	err := h.ListEvents(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []dto.EventResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
}

func TestListEvents_Handler_Error(t *testing.T) {
	svc := &mockEventService{
		listFn: func(ctx context.Context, userID uint) ([]models.Event, error) {
			return nil, errors.New("db error")
		},
	}

	c, _ := newContext(t, http.MethodGet, "/api/v1/events", "")

	h := NewEventHandler(svc)
	err := h.ListEvents(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, he.Code)
}

func TestGetDashboard_Handler_Success(t *testing.T) {
	svc := &mockEventService{
		dashboardFn: func(ctx context.Context, userID uint) (*service.Dashboard, error) {
			return &service.Dashboard{
				PendingEvents: []models.Event{{ID: 3, Status: models.StatusUnpaid}},
				PaidEvents:    []models.Event{{ID: 1, Status: models.StatusPaid}},
			}, nil
		},
	}

	c, rec := newContext(t, http.MethodGet, "/api/v1/dashboard", "")

	h := NewEventHandler(svc)
	err := h.GetDashboard(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.DashboardResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.PendingEvents, 1)
	assert.Len(t, resp.PaidEvents, 1)
}

func TestHandlers_MissingSession(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/events", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewEventHandler(&mockEventService{})
	err := h.ListEvents(c)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}
