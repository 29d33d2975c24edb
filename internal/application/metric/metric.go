package metric

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request processing time in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status"},
	)

	httpErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_errors_total",
			Help: "Total number of HTTP error responses",
		},
		[]string{"method", "endpoint", "status"},
	)

	wsActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ws_active_connections",
			Help: "Number of active WebSocket connections",
		},
	)

	relayPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_messages_published_total",
			Help: "Relay messages published to the bus, by message type",
		},
		[]string{"type"},
	)

	relayFannedOutTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_messages_fanned_out_total",
			Help: "Relay messages delivered to local connections, by message type",
		},
		[]string{"type"},
	)

	eventsEmittedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "domain_events_emitted_total",
			Help: "Domain events written to the event stream, by topic",
		},
		[]string{"topic"},
	)

	eventsDroppedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "domain_events_dropped_total",
			Help: "Domain events dropped because the emitter queue was full",
		},
	)
)

func RecordHTTPMetrics(method, endpoint string, statusCode int, duration time.Duration) {
	status := strconv.Itoa(statusCode)

	httpRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	httpRequestDuration.WithLabelValues(method, endpoint, status).Observe(duration.Seconds())

	if statusCode >= 400 {
		httpErrorsTotal.WithLabelValues(method, endpoint, status).Inc()
	}
}

func IncrementWSActiveConnections() {
	wsActiveConnections.Inc()
}

func DecrementWSActiveConnections() {
	wsActiveConnections.Dec()
}

func SubtractWSActiveConnections(n int) {
	wsActiveConnections.Sub(float64(n))
}

func RecordRelayPublished(msgType string) {
	relayPublishedTotal.WithLabelValues(msgType).Inc()
}

func RecordRelayFannedOut(msgType string, n int) {
	relayFannedOutTotal.WithLabelValues(msgType).Add(float64(n))
}

func RecordEventEmitted(topic string) {
	eventsEmittedTotal.WithLabelValues(topic).Inc()
}

func RecordEventDropped() {
	eventsDroppedTotal.Inc()
}
