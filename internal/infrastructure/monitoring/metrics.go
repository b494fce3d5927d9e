package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Relay exit reasons
const (
	RelayEOF   = "eof"
	RelayError = "error"
)

// Metrics holds all Prometheus metrics. Each instance owns its registry so
// several servers (or tests) can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Service metrics
	ServiceCalls    *prometheus.CounterVec
	ServiceDuration *prometheus.HistogramVec

	// Terminal metrics
	SessionsActive  prometheus.Gauge
	SessionsCreated prometheus.Counter
	SessionsFailed  *prometheus.CounterVec
	InputBytes      prometheus.Counter
	OutputBytes     prometheus.Counter
	OutputChunks    prometheus.Counter
	RelayExits      *prometheus.CounterVec
	ProcessExits    *prometheus.CounterVec

	// Event metrics
	EventsEmitted prometheus.Counter
	EventsDropped prometheus.Counter

	// WebSocket metrics
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec

	// System metrics
	Uptime    prometheus.GaugeFunc
	startTime time.Time
}

// NewMetrics creates a new metrics collector
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	m := &Metrics{
		registry:  reg,
		startTime: time.Now(),

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "termhost_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "termhost_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),

		ServiceCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "termhost_service_calls_total",
				Help: "Total number of service tool calls",
			},
			[]string{"service", "tool", "status"},
		),
		ServiceDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "termhost_service_duration_seconds",
				Help:    "Service tool call duration in seconds",
				Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"service", "tool"},
		),

		SessionsActive: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "termhost_sessions_active",
				Help: "Number of sessions in the session table",
			},
		),
		SessionsCreated: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "termhost_sessions_created_total",
				Help: "Total number of sessions created",
			},
		),
		SessionsFailed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "termhost_sessions_failed_total",
				Help: "Total number of failed session creations",
			},
			[]string{"reason"},
		),
		InputBytes: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "termhost_input_bytes_total",
				Help: "Bytes written to session inputs",
			},
		),
		OutputBytes: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "termhost_output_bytes_total",
				Help: "Bytes read from session outputs",
			},
		),
		OutputChunks: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "termhost_output_chunks_total",
				Help: "Output chunks pushed to the event sink",
			},
		),
		RelayExits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "termhost_relay_exits_total",
				Help: "Relay goroutine terminations by reason",
			},
			[]string{"reason"},
		),
		ProcessExits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "termhost_process_exits_total",
				Help: "Shell process exits by outcome",
			},
			[]string{"outcome"},
		),

		EventsEmitted: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "termhost_events_emitted_total",
				Help: "Events delivered to subscribers",
			},
		),
		EventsDropped: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "termhost_events_dropped_total",
				Help: "Events dropped because a subscriber buffer was full",
			},
		),

		WSConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "termhost_ws_connections",
				Help: "Number of active WebSocket connections",
			},
		),
		WSMessages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "termhost_ws_messages_total",
				Help: "Total number of WebSocket messages",
			},
			[]string{"direction", "type"},
		),
	}

	m.Uptime = factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "termhost_uptime_seconds",
			Help: "Uptime in seconds",
		},
		func() float64 { return time.Since(m.startTime).Seconds() },
	)

	return m
}

// Handler exposes the registry in Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordServiceCall records a service tool call
func (m *Metrics) RecordServiceCall(service, tool, status string, duration time.Duration) {
	m.ServiceCalls.WithLabelValues(service, tool, status).Inc()
	m.ServiceDuration.WithLabelValues(service, tool).Observe(duration.Seconds())
}

// SetSessionsActive sets the number of sessions in the table
func (m *Metrics) SetSessionsActive(count int) {
	m.SessionsActive.Set(float64(count))
}

// IncSessionsCreated increments the sessions created counter
func (m *Metrics) IncSessionsCreated() {
	m.SessionsCreated.Inc()
}

// IncSessionsFailed records a failed creation
func (m *Metrics) IncSessionsFailed(reason string) {
	m.SessionsFailed.WithLabelValues(reason).Inc()
}

// AddInputBytes records bytes written to a session
func (m *Metrics) AddInputBytes(n int) {
	m.InputBytes.Add(float64(n))
}

// RecordOutputChunk records one relayed chunk
func (m *Metrics) RecordOutputChunk(n int) {
	m.OutputBytes.Add(float64(n))
	m.OutputChunks.Inc()
}

// RecordRelayExit records why a relay stopped
func (m *Metrics) RecordRelayExit(reason string) {
	m.RelayExits.WithLabelValues(reason).Inc()
}

// RecordProcessExit records a reaped shell
func (m *Metrics) RecordProcessExit(outcome string) {
	m.ProcessExits.WithLabelValues(outcome).Inc()
}

// IncEventsEmitted increments delivered events
func (m *Metrics) IncEventsEmitted() {
	m.EventsEmitted.Inc()
}

// IncEventsDropped increments dropped events
func (m *Metrics) IncEventsDropped() {
	m.EventsDropped.Inc()
}

// RecordWSMessage records a WebSocket message
func (m *Metrics) RecordWSMessage(direction, msgType string) {
	m.WSMessages.WithLabelValues(direction, msgType).Inc()
}

// IncWSConnections increments WebSocket connections
func (m *Metrics) IncWSConnections() {
	m.WSConnections.Inc()
}

// DecWSConnections decrements WebSocket connections
func (m *Metrics) DecWSConnections() {
	m.WSConnections.Dec()
}
