// Package finance holds the quote derivation and currency normalization
// rules for event records.
package finance

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/itsmeERRORr/esportscalendar/internal/models"
)

// HomeCurrency is the currency all normalized amounts are expressed in.
const HomeCurrency = "EUR"

// DeriveBudget computes the quote offered to the client: one round trip
// billed at the travel rate plus the daily rate over the event span.
func DeriveBudget(rate, travelRate float64, days int) float64 {
	return guard(travelRate*2 + rate*float64(days))
}

// Normalize converts amount from the given currency into euros using a
// table of "foreign units per 1 EUR" multipliers. Euro amounts pass
// through untouched. A missing or zero rate is treated as 1:1; the
// second return value reports that fallback so callers can surface it.
func Normalize(amount float64, currency string, rates map[string]float64) (float64, bool) {
	if currency == HomeCurrency || currency == "€" {
		return guard(amount), false
	}
	rate, ok := rates[currency]
	if !ok || rate == 0 {
		return guard(amount), true
	}
	return guard(amount / rate), false
}

// NormalizationSource picks the amount the conversion is based on: the
// final paid amount when it is set and exceeds the budgeted quote
// (the economically real transaction), otherwise the quote. A partial
// payment below budget deliberately does not switch the source.
func NormalizationSource(e *models.Event) float64 {
	if e.FinalPaidAmount != nil && *e.FinalPaidAmount > e.Budgeted {
		return *e.FinalPaidAmount
	}
	return e.Budgeted
}

// ApplyConversion recomputes the event's euro-normalized fields from the
// current amounts, currency and rate table, rounding to 2 decimals. It
// returns true when the missing-rate fallback was used.
func ApplyConversion(e *models.Event, rates map[string]float64) bool {
	normalized, fellBack := Normalize(NormalizationSource(e), e.Currency, rates)
	rounded := Round2(normalized)
	e.Conver = rounded
	e.Totalp = rounded
	return fellBack
}

// Round2 rounds to 2 decimal places, guarding non-finite input to 0.
func Round2(v float64) float64 {
	if v != v || math.IsInf(v, 0) {
		return 0
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

func guard(v float64) float64 {
	if v != v || math.IsInf(v, 0) {
		return 0
	}
	return v
}
