package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"dummygen/pkg/platform/httputil"
)

const serviceName = "dummygen-api"

// HealthChecker reports whether a dependency is reachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// HealthResponse is the GET /api/health body.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Redis   string `json:"redis,omitempty"`
}

// HealthHandler serves liveness. A failing Redis only degrades the status
// because rate limiting falls back to memory.
type HealthHandler struct {
	redis   HealthChecker
	logger  *slog.Logger
	timeout time.Duration
}

// NewHealthHandler builds the handler. redis may be nil when not configured.
func NewHealthHandler(redis HealthChecker, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{redis: redis, logger: logger, timeout: 2 * time.Second}
}

func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "healthy", Service: serviceName}
	if h.redis != nil {
		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()
		resp.Redis = "ok"
		if err := h.redis.Health(ctx); err != nil {
			h.logger.WarnContext(ctx, "redis health check failed", "error", err)
			resp.Status = "degraded"
			resp.Redis = "unavailable"
		}
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}
