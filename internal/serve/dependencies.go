package serve

import (
	"io"
	"sync/atomic"

	"github.com/samm-evaluation/echo-server/internal/apptracker"
	"github.com/samm-evaluation/echo-server/internal/metrics"
	"github.com/samm-evaluation/echo-server/internal/serve/httphandler"
)

// HandlerDependencies represents all dependencies needed by the responder's HTTP handlers
type HandlerDependencies struct {
	Response       httphandler.ResponseConfig
	ReportWriter   io.Writer
	MetricsService metrics.MetricsService
	AppTracker     apptracker.AppTracker
}

// AdminHandlerDependencies represents the dependencies of the admin listener
type AdminHandlerDependencies struct {
	MetricsService metrics.MetricsService
	AppTracker     apptracker.AppTracker
	ShuttingDown   *atomic.Bool
}
