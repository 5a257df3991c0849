package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	rateFetchFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fx_rate_fetch_failures_total",
			Help: "Total failed exchange-rate provider fetches",
		},
	)

	missingRateFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fx_missing_rate_fallbacks_total",
			Help: "Total conversions that fell back to a 1:1 rate because the currency was missing from the rate table",
		},
		[]string{"currency"},
	)

	sweepTransitions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "status_sweep_transitions_total",
			Help: "Total Confirmed to Unpaid transitions applied by the status sweep",
		},
	)

	sweepPersistFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "status_sweep_persist_failures_total",
			Help: "Total sweep transitions that could not be written back",
		},
	)
)

func RecordRateFetchFailure() {
	rateFetchFailures.Inc()
}

func RecordMissingRateFallback(currency string) {
	missingRateFallbacks.WithLabelValues(currency).Inc()
}

func RecordSweepTransition() {
	sweepTransitions.Inc()
}

func RecordSweepPersistFailure() {
	sweepPersistFailures.Inc()
}
