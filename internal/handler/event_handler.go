package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/itsmeERRORr/esportscalendar/internal/dto"
	"github.com/itsmeERRORr/esportscalendar/internal/models"
	"github.com/itsmeERRORr/esportscalendar/internal/service"
	"github.com/itsmeERRORr/esportscalendar/internal/session"
)

type EventHandler struct {
	svc service.EventService
}

func NewEventHandler(svc service.EventService) *EventHandler {
	return &EventHandler{svc: svc}
}

func (h *EventHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/events", h.CreateEvent)
	g.GET("/events", h.ListEvents)
	g.GET("/events/:id", h.GetEvent)
	g.PUT("/events/:id", h.UpdateEvent)
	g.DELETE("/events/:id", h.DeleteEvent)
	g.GET("/dashboard", h.GetDashboard)
}

func (h *EventHandler) CreateEvent(c echo.Context) error {
	sess, ok := session.Get(c)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "missing session")
	}

	event, err := h.bindEvent(c)
	if err != nil {
		return err
	}
	event.UserID = sess.UserID

	if err := h.svc.CreateEvent(c.Request().Context(), event); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, dto.ToEventResponse(event))
}

func (h *EventHandler) GetEvent(c echo.Context) error {
	sess, ok := session.Get(c)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "missing session")
	}

	id, err := parseID(c)
	if err != nil {
		return err
	}

	event, err := h.svc.GetEvent(c.Request().Context(), sess.UserID, id)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "event not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

func (h *EventHandler) UpdateEvent(c echo.Context) error {
	sess, ok := session.Get(c)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "missing session")
	}

	id, err := parseID(c)
	if err != nil {
		return err
	}

	event, err := h.bindEvent(c)
	if err != nil {
		return err
	}
	event.ID = id
	event.UserID = sess.UserID

	if err := h.svc.UpdateEvent(c.Request().Context(), event); err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "event not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

func (h *EventHandler) DeleteEvent(c echo.Context) error {
	sess, ok := session.Get(c)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "missing session")
	}

	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.svc.DeleteEvent(c.Request().Context(), sess.UserID, id); err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "event not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *EventHandler) ListEvents(c echo.Context) error {
	sess, ok := session.Get(c)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "missing session")
	}

	events, err := h.svc.ListEvents(c.Request().Context(), sess.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.ToEventResponses(events))
}

func (h *EventHandler) GetDashboard(c echo.Context) error {
	sess, ok := session.Get(c)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "missing session")
	}

	d, err := h.svc.GetDashboard(c.Request().Context(), sess.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.DashboardResponse{
		Summary:        d.Summary,
		MonthlyRevenue: d.MonthlyRevenue,
		NextEvents:     d.NextEvents,
		PendingEvents:  dto.ToEventResponses(d.PendingEvents),
		PaidEvents:     dto.ToEventResponses(d.PaidEvents),
	})
}

// bindEvent decodes and validates the shared create/update payload into
// a model. Derived fields are left for the service to fill.
func (h *EventHandler) bindEvent(c echo.Context) (*models.Event, error) {
	var req dto.EventRequest
	if err := c.Bind(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	start, err := dto.ParseDate(req.StartDate)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	end, err := dto.ParseDate(req.EndDate)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	status := models.EventStatus(req.Status)
	if req.Status == "" {
		status = models.StatusNothing
	}
	if !status.Valid() {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	return &models.Event{
		Name:            req.Name,
		Client:          req.Client,
		Game:            req.Game,
		City:            req.City,
		Country:         req.Country,
		Observations:    req.Observations,
		StartDate:       start,
		EndDate:         end,
		Rate:            req.Rate,
		TravelRate:      req.TravelRate,
		Budgeted:        req.Budgeted,
		FinalPaidAmount: req.FinalPaidAmount,
		Currency:        req.Currency,
		VAT:             req.VAT,
		Status:          status,
		Invoice:         req.Invoice,
		Receipt:         req.Receipt,
	}, nil
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}
	return uint(id), nil
}
