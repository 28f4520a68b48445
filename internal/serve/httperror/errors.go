package httperror

import (
	"context"
	"net/http"
	"strings"

	"github.com/stellar/go-stellar-sdk/support/log"
	"github.com/stellar/go-stellar-sdk/support/render/httpjson"

	"github.com/samm-evaluation/echo-server/internal/apptracker"
)

type ErrorResponse struct {
	Status  int                    `json:"-"`
	Headers map[string]string      `json:"-"`
	Error   string                 `json:"error"`
	Extras  map[string]interface{} `json:"extras,omitempty"`
}

func (e ErrorResponse) Render(w http.ResponseWriter) {
	for name, value := range e.Headers {
		w.Header().Set(name, value)
	}
	httpjson.RenderStatus(w, e.Status, e, httpjson.JSON)
}

type ErrorHandler struct {
	Error ErrorResponse
}

func (h ErrorHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.Error.Render(w)
}

var NotFound = ErrorResponse{
	Status: http.StatusNotFound,
	Error:  "The resource at the url requested was not found.",
}

// MethodNotAllowed answers with 405 and advertises the allowed methods in the Allow header.
func MethodNotAllowed(allowed ...string) *ErrorResponse {
	resp := &ErrorResponse{
		Status: http.StatusMethodNotAllowed,
		Error:  "The method is not allowed for resource at the url requested.",
	}
	if len(allowed) > 0 {
		resp.Headers = map[string]string{"Allow": strings.Join(allowed, ", ")}
	}
	return resp
}

func InternalServerError(ctx context.Context, message string, err error, extras map[string]interface{}, appTracker apptracker.AppTracker) *ErrorResponse {
	log.Ctx(ctx).Error(err)
	if appTracker != nil {
		appTracker.CaptureException(err)
	} else {
		log.Ctx(ctx).Warn("App Tracker is nil")
	}

	if message == "" {
		message = "An error occurred while processing this request."
	}

	return &ErrorResponse{
		Status: http.StatusInternalServerError,
		Error:  message,
		Extras: extras,
	}
}
