package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type MetricsService interface {
	GetRegistry() *prometheus.Registry
	IncNumRequests(endpoint, method string, statusCode int)
	ObserveRequestDuration(endpoint, method string, duration float64)
	IncInFlightRequests()
	DecInFlightRequests()
	IncResponseWriteFailures(endpoint string)
}

// metricsService handles all metrics for the echo server
type metricsService struct {
	registry *prometheus.Registry

	// HTTP Request Metrics
	numRequestsTotal      *prometheus.CounterVec
	requestsDuration      *prometheus.SummaryVec
	inFlightRequests      prometheus.Gauge
	responseWriteFailures *prometheus.CounterVec
}

// NewMetricsService creates a new metrics service with all metrics registered
func NewMetricsService() MetricsService {
	m := &metricsService{
		registry: prometheus.NewRegistry(),
	}

	m.numRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"endpoint", "method", "status_code"},
	)
	m.requestsDuration = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "http_request_duration_seconds",
			Help:       "Duration of HTTP requests",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"endpoint", "method"},
	)
	m.inFlightRequests = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being served",
		},
	)
	m.responseWriteFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "response_write_failures_total",
			Help: "Number of responses that could not be written back to the client",
		},
		[]string{"endpoint"},
	)

	m.registerMetrics()
	return m
}

func (m *metricsService) registerMetrics() {
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.numRequestsTotal,
		m.requestsDuration,
		m.inFlightRequests,
		m.responseWriteFailures,
	)
}

// GetRegistry returns the prometheus registry
func (m *metricsService) GetRegistry() *prometheus.Registry {
	return m.registry
}

// HTTP Request Metrics
func (m *metricsService) IncNumRequests(endpoint, method string, statusCode int) {
	m.numRequestsTotal.WithLabelValues(endpoint, method, strconv.Itoa(statusCode)).Inc()
}

func (m *metricsService) ObserveRequestDuration(endpoint, method string, duration float64) {
	m.requestsDuration.WithLabelValues(endpoint, method).Observe(duration)
}

func (m *metricsService) IncInFlightRequests() {
	m.inFlightRequests.Inc()
}

func (m *metricsService) DecInFlightRequests() {
	m.inFlightRequests.Dec()
}

func (m *metricsService) IncResponseWriteFailures(endpoint string) {
	m.responseWriteFailures.WithLabelValues(endpoint).Inc()
}
