// Package stats derives the dashboard figures from an event collection.
// Everything here is read-only and total: an empty collection yields
// zeroed results, never an error.
package stats

import (
	"sort"
	"time"

	"github.com/itsmeERRORr/esportscalendar/internal/finance"
	"github.com/itsmeERRORr/esportscalendar/internal/models"
)

// FeaturedEventCount is how many upcoming events get their own card;
// the rest are summarized behind a counter.
const FeaturedEventCount = 3

type Summary struct {
	PendingPayments float64 `json:"pending_payments"`
	TotalPaid       float64 `json:"total_paid"`
	MonthlyAverage  float64 `json:"monthly_average"`
	WorkDays        int     `json:"work_days"`
	TravelDays      int     `json:"travel_days"`
	UniqueCountries int     `json:"unique_countries"`
	LongestEvent    int     `json:"longest_event"`
}

type MonthRevenue struct {
	Month string  `json:"month"`
	Total float64 `json:"total"`
}

type UpcomingEvent struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	City      string    `json:"city"`
	Country   string    `json:"country"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Duration  int       `json:"duration"`
	DaysUntil int       `json:"days_until"`
}

type NextEvents struct {
	Featured        []UpcomingEvent `json:"featured"`
	AdditionalCount int             `json:"additional_count"`
	Additional      []UpcomingEvent `json:"additional"`
}

// Summarize folds the whole collection into the business-overview
// figures. Pending payments sum budgeted quotes of Unpaid events; paid
// totals use the euro-normalized totalp. The monthly average divides by
// a fixed 12 regardless of how many months the data spans. The day and
// country counters only look at Confirmed events that already ended.
func Summarize(events []models.Event, today time.Time) Summary {
	var s Summary

	for i := range events {
		e := &events[i]
		switch e.Status {
		case models.StatusUnpaid:
			s.PendingPayments += e.Budgeted
		case models.StatusPaid:
			s.TotalPaid += e.Totalp
		case models.StatusConfirmed:
			if !e.EndedBefore(today) {
				continue
			}
			d := e.Duration()
			s.WorkDays += d
			s.TravelDays += 2
			if d > s.LongestEvent {
				s.LongestEvent = d
			}
		}
	}

	s.PendingPayments = finance.Round2(s.PendingPayments)
	s.TotalPaid = finance.Round2(s.TotalPaid)
	s.MonthlyAverage = finance.Round2(s.TotalPaid / 12)
	s.UniqueCountries = uniqueCountries(events, today)
	return s
}

func uniqueCountries(events []models.Event, today time.Time) int {
	seen := make(map[string]struct{})
	for i := range events {
		e := &events[i]
		if e.Status == models.StatusConfirmed && e.EndedBefore(today) {
			seen[e.Country] = struct{}{}
		}
	}
	return len(seen)
}

// MonthlyRevenue buckets paid totals by the calendar month of the start
// date, aggregated across all years present. Always returns 12 entries,
// January through December.
func MonthlyRevenue(events []models.Event) []MonthRevenue {
	out := make([]MonthRevenue, 12)
	for m := time.January; m <= time.December; m++ {
		out[m-1].Month = m.String()
	}
	for i := range events {
		e := &events[i]
		if e.Status != models.StatusPaid {
			continue
		}
		out[e.StartDate.Month()-1].Total += e.Totalp
	}
	for i := range out {
		out[i].Total = finance.Round2(out[i].Total)
	}
	return out
}

// Upcoming returns the Confirmed events that have not ended yet, sorted
// ascending by start date. The first FeaturedEventCount get individual
// slots, the remainder is carried as a count plus the full detail list.
func Upcoming(events []models.Event, today time.Time) NextEvents {
	var upcoming []UpcomingEvent
	for i := range events {
		e := &events[i]
		if e.Status != models.StatusConfirmed || e.EndedBefore(today) {
			continue
		}
		upcoming = append(upcoming, UpcomingEvent{
			ID:        e.ID,
			Name:      e.Name,
			City:      e.City,
			Country:   e.Country,
			StartDate: e.StartDate,
			EndDate:   e.EndDate,
			Duration:  e.Duration(),
			DaysUntil: daysUntil(e.StartDate, today),
		})
	}
	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].StartDate.Before(upcoming[j].StartDate)
	})

	next := NextEvents{Featured: upcoming}
	if len(upcoming) > FeaturedEventCount {
		next.Featured = upcoming[:FeaturedEventCount]
		next.Additional = upcoming[FeaturedEventCount:]
		next.AdditionalCount = len(next.Additional)
	}
	return next
}

func daysUntil(start, today time.Time) int {
	d := int(models.Midnight(start).Sub(models.Midnight(today)).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}
