package metrics

import (
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func labelsOf(metric *dto.Metric) map[string]string {
	labels := make(map[string]string)
	for _, label := range metric.GetLabel() {
		labels[label.GetName()] = label.GetValue()
	}
	return labels
}

func TestNewMetricsService(t *testing.T) {
	ms := NewMetricsService()
	assert.NotNil(t, ms)
	assert.NotNil(t, ms.GetRegistry())
}

func TestHTTPMetrics(t *testing.T) {
	ms := NewMetricsService()
	endpoint := "/*"
	method := "GET"
	statusCode := 200

	ms.IncNumRequests(endpoint, method, statusCode)
	ms.ObserveRequestDuration(endpoint, method, 0.05)

	metricFamilies, err := ms.GetRegistry().Gather()
	require.NoError(t, err)

	foundRequests := false
	foundDuration := false

	for _, mf := range metricFamilies {
		switch mf.GetName() {
		case "http_requests_total":
			foundRequests = true
			metric := mf.GetMetric()[0]
			assert.Equal(t, float64(1), metric.GetCounter().GetValue())
			labels := labelsOf(metric)
			assert.Equal(t, endpoint, labels["endpoint"])
			assert.Equal(t, method, labels["method"])
			assert.Equal(t, "200", labels["status_code"])
		case "http_request_duration_seconds":
			foundDuration = true
			metric := mf.GetMetric()[0]
			assert.Equal(t, uint64(1), metric.GetSummary().GetSampleCount())
			assert.Equal(t, 0.05, metric.GetSummary().GetSampleSum())
			labels := labelsOf(metric)
			assert.Equal(t, endpoint, labels["endpoint"])
			assert.Equal(t, method, labels["method"])
		}
	}

	assert.True(t, foundRequests)
	assert.True(t, foundDuration)
}

func TestInFlightRequests(t *testing.T) {
	ms := NewMetricsService()

	ms.IncInFlightRequests()
	ms.IncInFlightRequests()
	ms.DecInFlightRequests()

	metricFamilies, err := ms.GetRegistry().Gather()
	require.NoError(t, err)

	found := false
	for _, mf := range metricFamilies {
		if mf.GetName() == "http_requests_in_flight" {
			found = true
			assert.Equal(t, float64(1), mf.GetMetric()[0].GetGauge().GetValue())
		}
	}
	assert.True(t, found)
}

func TestResponseWriteFailures(t *testing.T) {
	ms := NewMetricsService()

	ms.IncResponseWriteFailures("/*")
	ms.IncResponseWriteFailures("/*")

	metricFamilies, err := ms.GetRegistry().Gather()
	require.NoError(t, err)

	found := false
	for _, mf := range metricFamilies {
		if mf.GetName() == "response_write_failures_total" {
			found = true
			metric := mf.GetMetric()[0]
			assert.Equal(t, float64(2), metric.GetCounter().GetValue())
			assert.Equal(t, "/*", labelsOf(metric)["endpoint"])
		}
	}
	assert.True(t, found)
}

func TestRuntimeCollectorsRegistered(t *testing.T) {
	ms := NewMetricsService()

	metricFamilies, err := ms.GetRegistry().Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(metricFamilies))
	for _, mf := range metricFamilies {
		names[mf.GetName()] = true
	}
	assert.True(t, names["go_goroutines"])
}
