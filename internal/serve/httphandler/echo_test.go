package httphandler

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stellar/go-stellar-sdk/support/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samm-evaluation/echo-server/internal/metrics"
)

var defaultResponse = ResponseConfig{Body: DefaultResponseBody, ContentType: DefaultContentType}

// failingResponseWriter behaves like a client that went away before the body was written.
type failingResponseWriter struct {
	*httptest.ResponseRecorder
}

func (f failingResponseWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

// unflushableResponseWriter accepts the body but fails when it is flushed to the connection.
type unflushableResponseWriter struct {
	*httptest.ResponseRecorder
}

func (u unflushableResponseWriter) FlushError() error {
	return errors.New("connection reset by peer")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestEchoHandler_GetEcho(t *testing.T) {
	testCases := []struct {
		name       string
		target     string
		remoteAddr string
		headers    map[string]string
		wantReport string
	}{
		{
			name:       "🟢path_with_query_and_custom_header",
			target:     "/foo?x=1",
			remoteAddr: "127.0.0.1:54321",
			headers:    map[string]string{"X-Test": "abc"},
			wantReport: "Received request from 127.0.0.1:54321\n" +
				"Path: /foo?x=1\n" +
				"Headers:\n" +
				"  Host: example.com\n" +
				"  X-Test: abc\n",
		},
		{
			name:       "🟢root_path_no_headers",
			target:     "/",
			remoteAddr: "192.168.1.20:40000",
			wantReport: "Received request from 192.168.1.20:40000\n" +
				"Path: /\n" +
				"Headers:\n" +
				"  Host: example.com\n",
		},
		{
			name:       "🟢encoded_path_kept_verbatim",
			target:     "/a%20b/c?y=%2F&z",
			remoteAddr: "[::1]:5555",
			headers:    map[string]string{"User-Agent": "curl/8.0", "Accept": "*/*"},
			wantReport: "Received request from ::1:5555\n" +
				"Path: /a%20b/c?y=%2F&z\n" +
				"Headers:\n" +
				"  Host: example.com\n" +
				"  Accept: */*\n" +
				"  User-Agent: curl/8.0\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var reports bytes.Buffer
			handler := EchoHandler{
				Response:       defaultResponse,
				ReportWriter:   &reports,
				MetricsService: metrics.NewMockMetricsService(),
			}

			req := httptest.NewRequest(http.MethodGet, tc.target, nil)
			req.RemoteAddr = tc.remoteAddr
			for name, value := range tc.headers {
				req.Header.Set(name, value)
			}
			rr := httptest.NewRecorder()

			handler.GetEcho(rr, req)

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, "text/plain", rr.Header().Get("Content-Type"))
			assert.Equal(t, "Hello, this is the server!", rr.Body.String())
			assert.Equal(t, tc.wantReport, reports.String())
		})
	}
}

func TestEchoHandler_GetEcho_customResponse(t *testing.T) {
	var reports bytes.Buffer
	handler := EchoHandler{
		Response:       ResponseConfig{Body: `{"hello":"world"}`, ContentType: "application/json"},
		ReportWriter:   &reports,
		MetricsService: metrics.NewMockMetricsService(),
	}

	rr := httptest.NewRecorder()
	handler.GetEcho(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.Equal(t, `{"hello":"world"}`, rr.Body.String())
}

func TestEchoHandler_GetEcho_clientGone(t *testing.T) {
	getEntries := log.DefaultLogger.StartTest(log.WarnLevel)

	mMetricsService := metrics.NewMockMetricsService()
	defer mMetricsService.AssertExpectations(t)
	mMetricsService.On("IncResponseWriteFailures", "/*").Once()

	var reports bytes.Buffer
	handler := EchoHandler{
		Response:       defaultResponse,
		ReportWriter:   &reports,
		MetricsService: mMetricsService,
	}

	r := chi.NewRouter()
	r.Get("/*", handler.GetEcho)

	req := httptest.NewRequest(http.MethodGet, "/gone", nil)
	req.RemoteAddr = "127.0.0.1:1000"
	require.NotPanics(t, func() {
		r.ServeHTTP(failingResponseWriter{httptest.NewRecorder()}, req)
	})

	assert.Contains(t, reports.String(), "Path: /gone\n", "the request is logged before the response is written")

	entries := getEntries()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Message, "writing response to 127.0.0.1:1000: broken pipe")
}

func TestEchoHandler_GetEcho_flushFailure(t *testing.T) {
	getEntries := log.DefaultLogger.StartTest(log.WarnLevel)

	mMetricsService := metrics.NewMockMetricsService()
	defer mMetricsService.AssertExpectations(t)
	mMetricsService.On("IncResponseWriteFailures", "/*").Once()

	handler := EchoHandler{
		Response:       defaultResponse,
		ReportWriter:   &bytes.Buffer{},
		MetricsService: mMetricsService,
	}

	r := chi.NewRouter()
	r.Get("/*", handler.GetEcho)

	req := httptest.NewRequest(http.MethodGet, "/reset", nil)
	req.RemoteAddr = "127.0.0.1:2000"
	r.ServeHTTP(unflushableResponseWriter{httptest.NewRecorder()}, req)

	entries := getEntries()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Message, "writing response to 127.0.0.1:2000: flushing: connection reset by peer")
}

func TestEchoHandler_GetEcho_flushesBody(t *testing.T) {
	handler := EchoHandler{
		Response:       defaultResponse,
		ReportWriter:   &bytes.Buffer{},
		MetricsService: metrics.NewMockMetricsService(),
	}

	rr := httptest.NewRecorder()
	handler.GetEcho(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.True(t, rr.Flushed)
	assert.Equal(t, DefaultResponseBody, rr.Body.String())
}

func TestEchoHandler_GetEcho_reportSinkFailure(t *testing.T) {
	getEntries := log.DefaultLogger.StartTest(log.WarnLevel)

	handler := EchoHandler{
		Response:       defaultResponse,
		ReportWriter:   failingWriter{},
		MetricsService: metrics.NewMockMetricsService(),
	}

	rr := httptest.NewRecorder()
	handler.GetEcho(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, DefaultResponseBody, rr.Body.String())

	entries := getEntries()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Message, "writing request report: disk full")
}
