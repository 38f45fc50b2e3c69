package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are registered on the default registry through promauto.

var (
	// HttpRequestsTotal counts requests by method, path and status code.
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kektorkv_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "path", "status"},
	)

	// HttpRequestDuration measures server response time.
	// Store operations are in-memory, so the buckets start well below a millisecond.
	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kektorkv_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.00005, 0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"method", "path"},
	)

	// StoreOperationsTotal counts store calls by operation and outcome.
	// Outcomes: "ok" for set/remove, "hit" or "miss" for get.
	StoreOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kektorkv_store_operations_total",
			Help: "Total number of store operations by outcome",
		},
		[]string{"op", "outcome"},
	)
)

// ObserveSet records a completed set.
func ObserveSet() {
	StoreOperationsTotal.WithLabelValues("set", "ok").Inc()
}

// ObserveGet records a lookup and whether it found the key.
func ObserveGet(found bool) {
	outcome := "miss"
	if found {
		outcome = "hit"
	}
	StoreOperationsTotal.WithLabelValues("get", outcome).Inc()
}

// ObserveRemove records a completed remove.
func ObserveRemove() {
	StoreOperationsTotal.WithLabelValues("remove", "ok").Inc()
}
