package models

import "time"

type EventStatus string

const (
	StatusNothing   EventStatus = "Nothing"
	StatusConfirmed EventStatus = "Confirmed"
	StatusInContact EventStatus = "In Contact"
	StatusUnpaid    EventStatus = "Unpaid"
	StatusPaid      EventStatus = "Paid"
)

func (s EventStatus) Valid() bool {
	switch s {
	case StatusNothing, StatusConfirmed, StatusInContact, StatusUnpaid, StatusPaid:
		return true
	}
	return false
}

// CountryOnline is the sentinel country value for remote events.
const CountryOnline = "Online"

type Event struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	UserID          uint        `gorm:"not null;index" json:"user_id"`
	Name            string      `gorm:"not null" json:"name"`
	Client          string      `json:"client"`
	Game            string      `json:"game"`
	City            string      `json:"city"`
	Country         string      `json:"country"`
	Observations    string      `json:"observations"`
	StartDate       time.Time   `gorm:"not null" json:"start_date"`
	EndDate         time.Time   `gorm:"not null" json:"end_date"`
	NumberOfDays    int         `json:"number_of_days"`
	Rate            float64     `json:"rate"`
	TravelRate      float64     `json:"travel_rate"`
	Budgeted        float64     `json:"budgeted"`
	FinalPaidAmount *float64    `json:"final_paid_amount"`
	Currency        string      `json:"currency"`
	Conver          float64     `json:"conver"`
	Totalp          float64     `json:"totalp"`
	VAT             float64     `json:"vat"`
	Status          EventStatus `gorm:"type:varchar(20);not null;default:'Nothing'" json:"status"`
	Invoice         bool        `json:"invoice"`
	Receipt         bool        `json:"receipt"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// InclusiveDays counts the calendar days between start and end with both
// endpoints included, so a one-day event spans 1 day.
func InclusiveDays(start, end time.Time) int {
	start = Midnight(start)
	end = Midnight(end)
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

// Midnight zeroes the time-of-day component, keeping the date.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Duration is the event's inclusive day span, always derived from the
// date pair rather than the stored NumberOfDays.
func (e *Event) Duration() int {
	return InclusiveDays(e.StartDate, e.EndDate)
}

// EndedBefore reports whether the event finished strictly before the
// given day.
func (e *Event) EndedBefore(today time.Time) bool {
	return Midnight(e.EndDate).Before(Midnight(today))
}
