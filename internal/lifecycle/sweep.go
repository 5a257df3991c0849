// Package lifecycle applies the automatic status transitions that run on
// every dashboard load.
package lifecycle

import (
	"time"

	"github.com/itsmeERRORr/esportscalendar/internal/models"
)

// Sweep moves Confirmed events whose end date has fully elapsed (today
// is at least one day past the end date) to Unpaid. Events are mutated
// in place and the changed ones are returned so the caller can persist
// them individually. Re-running the sweep is a no-op for events already
// moved, since the Confirmed precondition no longer holds.
func Sweep(events []models.Event, today time.Time) []*models.Event {
	today = models.Midnight(today)

	var changed []*models.Event
	for i := range events {
		e := &events[i]
		if e.Status != models.StatusConfirmed {
			continue
		}
		oneDayAfterEnd := models.Midnight(e.EndDate).AddDate(0, 0, 1)
		if !today.Before(oneDayAfterEnd) {
			e.Status = models.StatusUnpaid
			changed = append(changed, e)
		}
	}
	return changed
}
