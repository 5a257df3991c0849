package dto

import (
	"time"

	"github.com/itsmeERRORr/esportscalendar/internal/models"
	"github.com/itsmeERRORr/esportscalendar/internal/stats"
)

type EventResponse struct {
	ID              uint      `json:"id"`
	UserID          uint      `json:"user_id"`
	Name            string    `json:"name"`
	Client          string    `json:"client"`
	Game            string    `json:"game"`
	City            string    `json:"city"`
	Country         string    `json:"country"`
	Observations    string    `json:"observations"`
	StartDate       string    `json:"start_date"`
	EndDate         string    `json:"end_date"`
	NumberOfDays    int       `json:"number_of_days"`
	Rate            float64   `json:"rate"`
	TravelRate      float64   `json:"travel_rate"`
	Budgeted        float64   `json:"budgeted"`
	FinalPaidAmount *float64  `json:"final_paid_amount"`
	Currency        string    `json:"currency"`
	Conver          float64   `json:"conver"`
	Totalp          float64   `json:"totalp"`
	VAT             float64   `json:"vat"`
	Status          string    `json:"status"`
	Invoice         bool      `json:"invoice"`
	Receipt         bool      `json:"receipt"`
	CreatedAt       time.Time `json:"created_at"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

// DashboardResponse bundles the business-overview figures with the
// tables the dashboard renders below them.
type DashboardResponse struct {
	Summary        stats.Summary        `json:"summary"`
	MonthlyRevenue []stats.MonthRevenue `json:"monthly_revenue"`
	NextEvents     stats.NextEvents     `json:"next_events"`
	PendingEvents  []EventResponse      `json:"pending_events"`
	PaidEvents     []EventResponse      `json:"paid_events"`
}

func ToEventResponse(e *models.Event) EventResponse {
	return EventResponse{
		ID:              e.ID,
		UserID:          e.UserID,
		Name:            e.Name,
		Client:          e.Client,
		Game:            e.Game,
		City:            e.City,
		Country:         e.Country,
		Observations:    e.Observations,
		StartDate:       e.StartDate.Format(time.DateOnly),
		EndDate:         e.EndDate.Format(time.DateOnly),
		NumberOfDays:    e.NumberOfDays,
		Rate:            e.Rate,
		TravelRate:      e.TravelRate,
		Budgeted:        e.Budgeted,
		FinalPaidAmount: e.FinalPaidAmount,
		Currency:        e.Currency,
		Conver:          e.Conver,
		Totalp:          e.Totalp,
		VAT:             e.VAT,
		Status:          string(e.Status),
		Invoice:         e.Invoice,
		Receipt:         e.Receipt,
		CreatedAt:       e.CreatedAt,
	}
}

func ToEventResponses(events []models.Event) []EventResponse {
	out := make([]EventResponse, len(events))
	for i := range events {
		out[i] = ToEventResponse(&events[i])
	}
	return out
}
