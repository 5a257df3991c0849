package dto

import (
	"fmt"
	"time"
)

// EventRequest is the payload for both create and full-replace update.
// Derived fields (number_of_days, conver, totalp) are never accepted
// from the client; budgeted is honored on update only, where a manual
// override of the derived quote is allowed.
type EventRequest struct {
	Name            string   `json:"name" validate:"required"`
	Client          string   `json:"client"`
	Game            string   `json:"game"`
	City            string   `json:"city"`
	Country         string   `json:"country"`
	Observations    string   `json:"observations"`
	StartDate       string   `json:"start_date" validate:"required"`
	EndDate         string   `json:"end_date" validate:"required"`
	Rate            float64  `json:"rate" validate:"gte=0"`
	TravelRate      float64  `json:"travel_rate" validate:"gte=0"`
	Budgeted        float64  `json:"budgeted" validate:"gte=0"`
	FinalPaidAmount *float64 `json:"final_paid_amount"`
	Currency        string   `json:"currency"`
	VAT             float64  `json:"vat" validate:"gte=0"`
	Status          string   `json:"status"`
	Invoice         bool     `json:"invoice"`
	Receipt         bool     `json:"receipt"`
}

// ParseDate accepts the date-only form used by the dashboard forms, or
// a full RFC 3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
}
