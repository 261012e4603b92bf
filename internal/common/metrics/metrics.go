// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SummaryRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_summary_requests_total",
			Help: "Total number of executive summary requests",
		},
		[]string{"timeframe", "result"},
	)

	SummaryCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_summary_cache_hits_total",
			Help: "Executive summary responses served from the Redis cache",
		},
		[]string{"timeframe"},
	)

	CalculatorFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_calculator_failures_total",
			Help: "KPI calculations that fell back to the default record",
		},
		[]string{"metric"},
	)

	CalculatorDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "analytics_calculator_duration_seconds",
			Help: "Duration of individual KPI calculations in seconds",
		},
		[]string{"metric"},
	)

	EventsTracked = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_events_tracked_total",
			Help: "Analytics events accepted by the tracker",
		},
		[]string{"event_type", "result"},
	)
)
