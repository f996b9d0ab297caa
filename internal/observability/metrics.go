package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeSucceeded = "succeeded"
	OutcomeFailed    = "failed"
)

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "installctl",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"node", "method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "installctl",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"node", "method", "path", "status"},
	)
	runsStarted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "installctl",
			Subsystem: "dispatch",
			Name:      "runs_started_total",
			Help:      "Module runs launched.",
		},
		[]string{"module"},
	)
	runsFinished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "installctl",
			Subsystem: "dispatch",
			Name:      "runs_finished_total",
			Help:      "Module runs finished by outcome.",
		},
		[]string{"module", "outcome"},
	)
	runDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "installctl",
			Subsystem: "dispatch",
			Name:      "run_duration_seconds",
			Help:      "Module run duration in seconds.",
			Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600, 1200, 3600},
		},
		[]string{"module", "outcome"},
	)
	runsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "installctl",
			Subsystem: "dispatch",
			Name:      "runs_in_flight",
			Help:      "Module runs currently executing.",
		},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, runsStarted, runsFinished, runDuration, runsInFlight)
	})
}

func RecordHTTPRequest(node, method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(node, method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(node, method, path, statusLabel).Observe(duration.Seconds())
}

func RecordRunStarted(module string) {
	RegisterMetrics()
	runsStarted.WithLabelValues(module).Inc()
	runsInFlight.Inc()
}

func RecordRunFinished(module string, ok bool, duration time.Duration) {
	RegisterMetrics()
	outcome := OutcomeSucceeded
	if !ok {
		outcome = OutcomeFailed
	}
	runsFinished.WithLabelValues(module, outcome).Inc()
	runDuration.WithLabelValues(module, outcome).Observe(duration.Seconds())
	runsInFlight.Dec()
}
