package httphandler

import (
	"net/http"
	"sync/atomic"

	"github.com/stellar/go-stellar-sdk/support/render/httpjson"

	"github.com/samm-evaluation/echo-server/internal/entities"
)

type HealthHandler struct {
	// ShuttingDown flips to true once the server starts draining connections.
	ShuttingDown *atomic.Bool
}

func (h HealthHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	if h.ShuttingDown != nil && h.ShuttingDown.Load() {
		httpjson.RenderStatus(w, http.StatusServiceUnavailable, entities.HealthResponse{Status: entities.ShuttingDown}, httpjson.JSON)
		return
	}

	httpjson.Render(w, entities.HealthResponse{Status: entities.Healthy}, httpjson.JSON)
}
