package httpclient

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/kbukum/restwire/resilience"
)

// MetricsCollector records transport metrics in Prometheus. A nil
// collector records nothing. It is safe for concurrent use.
type MetricsCollector struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	requestsInFlight    *prometheus.GaugeVec
	retriesTotal        *prometheus.CounterVec
	failuresTotal       *prometheus.CounterVec
	circuitBreakerState *prometheus.GaugeVec
}

// NewMetricsCollector registers the transport metrics on registerer.
func NewMetricsCollector(registerer prometheus.Registerer) *MetricsCollector {
	f := promauto.With(registerer)
	return &MetricsCollector{
		requestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "restwire_http_requests_total",
			Help: "HTTP exchanges that produced a response, by status code.",
		}, []string{"client", "method", "operation", "status_code"}),
		requestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "restwire_http_request_duration_seconds",
			Help:    "Time to response headers of HTTP exchanges.",
			Buckets: prometheus.DefBuckets,
		}, []string{"client", "method", "operation"}),
		requestsInFlight: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "restwire_http_requests_in_flight",
			Help: "HTTP exchanges waiting for response headers.",
		}, []string{"client"}),
		retriesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "restwire_http_retries_total",
			Help: "Retried HTTP attempts.",
		}, []string{"client", "operation"}),
		failuresTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "restwire_http_transport_failures_total",
			Help: "Exchanges that produced no response, by failure type.",
		}, []string{"client", "operation", "type"}),
		circuitBreakerState: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "restwire_http_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=open, 2=half-open).",
		}, []string{"name"}),
	}
}

func (m *MetricsCollector) recordResponse(client, method, operation string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(client, method, operation, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(client, method, operation).Observe(d.Seconds())
}

func (m *MetricsCollector) recordFailure(client, operation, kind string) {
	if m == nil {
		return
	}
	m.failuresTotal.WithLabelValues(client, operation, kind).Inc()
}

func (m *MetricsCollector) recordRetry(client, operation string) {
	if m == nil {
		return
	}
	m.retriesTotal.WithLabelValues(client, operation).Inc()
}

func (m *MetricsCollector) inFlight(client string, delta float64) {
	if m == nil {
		return
	}
	m.requestsInFlight.WithLabelValues(client).Add(delta)
}

func (m *MetricsCollector) recordBreakerState(name string, s resilience.State) {
	if m == nil {
		return
	}
	m.circuitBreakerState.WithLabelValues(name).Set(float64(s))
}
