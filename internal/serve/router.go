package serve

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/samm-evaluation/echo-server/internal/serve/httperror"
	"github.com/samm-evaluation/echo-server/internal/serve/httphandler"
	"github.com/samm-evaluation/echo-server/internal/serve/middleware"
)

// NewHandler creates the responder's HTTP handler. Every path answers GET; any other method gets a 405.
func NewHandler(deps HandlerDependencies) http.Handler {
	mux := chi.NewRouter()
	mux.MethodNotAllowed(httperror.ErrorHandler{Error: *httperror.MethodNotAllowed(http.MethodGet)}.ServeHTTP)

	setupMiddleware(mux, deps)
	setupEchoRoutes(mux, deps)

	return mux
}

func setupMiddleware(mux *chi.Mux, deps HandlerDependencies) {
	mux.Use(middleware.RequestIDMiddleware)
	mux.Use(middleware.MetricsMiddleware(deps.MetricsService))
	mux.Use(middleware.RecoverHandler(deps.AppTracker))
}

func setupEchoRoutes(mux *chi.Mux, deps HandlerDependencies) {
	handler := httphandler.EchoHandler{
		Response:       deps.Response,
		ReportWriter:   deps.ReportWriter,
		MetricsService: deps.MetricsService,
	}

	mux.Get("/*", handler.GetEcho)
}

// NewAdminHandler creates the handler of the admin listener, kept apart so the responder port answers every path.
func NewAdminHandler(deps AdminHandlerDependencies) http.Handler {
	mux := chi.NewRouter()
	mux.NotFound(httperror.ErrorHandler{Error: httperror.NotFound}.ServeHTTP)
	mux.MethodNotAllowed(httperror.ErrorHandler{Error: *httperror.MethodNotAllowed(http.MethodGet)}.ServeHTTP)
	mux.Use(middleware.RecoverHandler(deps.AppTracker))

	mux.Get("/health", httphandler.HealthHandler{ShuttingDown: deps.ShuttingDown}.GetHealth)
	mux.Get("/metrics", promhttp.HandlerFor(
		deps.MetricsService.GetRegistry(),
		promhttp.HandlerOpts{},
	).ServeHTTP)

	return mux
}
