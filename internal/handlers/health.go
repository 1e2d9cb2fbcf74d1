package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/sbilibin2017/gw-feed/internal/logger"
)

//go:generate mockgen -source=health.go -destination=mock_health.go -package=handlers

const healthTimeout = 2 * time.Second

// Pinger checks that a backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthResponse represents the service health
// swagger:model HealthResponse
type HealthResponse struct {
	// default: ok
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// NewHealthHandler returns an HTTP handler reporting whether the database is
// reachable.
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} handlers.HealthResponse "Healthy"
// @Failure 503 {object} handlers.HealthResponse "Database unreachable"
// @Router /health [get]
func NewHealthHandler(db Pinger, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		resp := HealthResponse{
			Status:    "ok",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Version:   version,
		}

		status := http.StatusOK
		if err := db.PingContext(ctx); err != nil {
			logger.Log.Warnw("health check failed", "err", err)
			resp.Status = "unavailable"
			status = http.StatusServiceUnavailable
		}

		writeJSON(w, status, resp)
	}
}
