package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/samm-evaluation/echo-server/internal/metrics"
)

// unmatchedEndpoint labels requests that never reached a registered route.
const unmatchedEndpoint = "unmatched"

// MetricsMiddleware creates a middleware that tracks HTTP request metrics. Requests are labeled with the
// chi route pattern instead of the raw path, so arbitrary client paths share one series.
func MetricsMiddleware(metricsService metrics.MetricsService) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			startTime := time.Now()
			metricsService.IncInFlightRequests()
			defer metricsService.DecInFlightRequests()

			// Create a response wrapper to capture the status code
			rw := &responseWriter{ResponseWriter: w}

			next.ServeHTTP(rw, r)

			endpoint := RoutePattern(r)
			duration := time.Since(startTime).Seconds()
			metricsService.ObserveRequestDuration(endpoint, r.Method, duration)
			metricsService.IncNumRequests(endpoint, r.Method, rw.Status())
		})
	}
}

// RoutePattern returns the chi route pattern that served r.
func RoutePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return unmatchedEndpoint
	}
	if pattern := rctx.RoutePattern(); pattern != "" {
		return pattern
	}
	return unmatchedEndpoint
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	if rw.statusCode == 0 {
		rw.statusCode = code
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	// If WriteHeader hasn't been called yet, we assume it's a 200
	if rw.statusCode == 0 {
		rw.statusCode = http.StatusOK
	}
	return rw.ResponseWriter.Write(b)
}

// Unwrap lets http.ResponseController reach the flusher of the underlying writer.
func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// Status reports the status code sent to the client, 200 when the handler wrote nothing.
func (rw *responseWriter) Status() int {
	if rw.statusCode == 0 {
		return http.StatusOK
	}
	return rw.statusCode
}
