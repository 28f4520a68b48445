package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/google/uuid"
	"github.com/stellar/go-stellar-sdk/support/log"

	"github.com/samm-evaluation/echo-server/internal/apptracker"
	"github.com/samm-evaluation/echo-server/internal/serve/httperror"
)

const RequestIDHeader = "X-Request-Id"

// RequestIDMiddleware tags every request with a fresh id. The id is echoed in the X-Request-Id response
// header and carried by the request-scoped logger returned from log.Ctx.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		id := uuid.NewString()
		rw.Header().Set(RequestIDHeader, id)

		ctx := req.Context()
		ctx = log.Set(ctx, log.Ctx(ctx).WithField("req", id))
		next.ServeHTTP(rw, req.WithContext(ctx))
	})
}

// RecoverHandler turns a panicking handler into a 500 response and reports the panic to the app tracker.
func RecoverHandler(appTracker apptracker.AppTracker) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				// http.ErrAbortHandler is how net/http aborts a response on purpose.
				if r == http.ErrAbortHandler { //nolint:errorlint
					panic(r)
				}

				ctx := req.Context()
				err := fmt.Errorf("panic: %v", r)
				log.Ctx(ctx).Errorf("%s\n%s", err, debug.Stack())
				httperror.InternalServerError(ctx, "", err, nil, appTracker).Render(rw)
			}()

			next.ServeHTTP(rw, req)
		})
	}
}
