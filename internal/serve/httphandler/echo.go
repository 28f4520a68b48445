package httphandler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/stellar/go-stellar-sdk/support/log"

	"github.com/samm-evaluation/echo-server/internal/entities"
	"github.com/samm-evaluation/echo-server/internal/metrics"
	"github.com/samm-evaluation/echo-server/internal/serve/middleware"
)

const (
	DefaultResponseBody = "Hello, this is the server!"
	DefaultContentType  = "text/plain"
)

// ResponseConfig is the fixed response written back to every request.
type ResponseConfig struct {
	Body        string
	ContentType string
}

// EchoHandler logs who asked for what and answers with the configured response. It keeps no state between
// requests; the same value serves every connection concurrently.
type EchoHandler struct {
	Response ResponseConfig
	// ReportWriter receives one RequestReport block per request, written with a single Write call.
	ReportWriter   io.Writer
	MetricsService metrics.MetricsService
}

func (h EchoHandler) GetEcho(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	report := entities.NewRequestReport(r)
	if _, err := io.WriteString(h.ReportWriter, report.String()); err != nil {
		log.Ctx(ctx).Warnf("writing request report: %s", err.Error())
	}

	w.Header().Set("Content-Type", h.Response.ContentType)
	w.WriteHeader(http.StatusOK)
	if err := h.writeBody(w); err != nil {
		log.Ctx(ctx).Warnf("writing response to %s: %s", report.PeerAddress(), err.Error())
		h.MetricsService.IncResponseWriteFailures(middleware.RoutePattern(r))
	}
}

// writeBody writes the body and flushes it. net/http buffers small bodies, so a client that went away
// is only noticed by the flush.
func (h EchoHandler) writeBody(w http.ResponseWriter) error {
	if _, err := w.Write([]byte(h.Response.Body)); err != nil {
		return err
	}
	if err := http.NewResponseController(w).Flush(); err != nil && !errors.Is(err, http.ErrNotSupported) {
		return fmt.Errorf("flushing: %w", err)
	}
	return nil
}
