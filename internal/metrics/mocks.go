package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/mock"
)

// MockMetricsService is a mock implementation of MetricsService
type MockMetricsService struct {
	mock.Mock
}

var _ MetricsService = (*MockMetricsService)(nil)

// NewMockMetricsService creates a new mock metrics service
func NewMockMetricsService() *MockMetricsService {
	return &MockMetricsService{}
}

func (m *MockMetricsService) GetRegistry() *prometheus.Registry {
	args := m.Called()
	return args.Get(0).(*prometheus.Registry)
}

func (m *MockMetricsService) IncNumRequests(endpoint, method string, statusCode int) {
	m.Called(endpoint, method, statusCode)
}

func (m *MockMetricsService) ObserveRequestDuration(endpoint, method string, duration float64) {
	m.Called(endpoint, method, duration)
}

func (m *MockMetricsService) IncInFlightRequests() {
	m.Called()
}

func (m *MockMetricsService) DecInFlightRequests() {
	m.Called()
}

func (m *MockMetricsService) IncResponseWriteFailures(endpoint string) {
	m.Called(endpoint)
}
