package controllers

import (
	"context"
	"log/slog"
	"net/http"

	"roombooking/internal/delivery/http/helpers"
)

// Pinger reports whether a backing store is reachable. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthResponse is the body of a healthy GET /health.
type HealthResponse struct {
	Status  string `json:"status" example:"ok"`
	Storage string `json:"storage" example:"postgres"`
}

type HealthController struct {
	Logger  *slog.Logger
	DB      Pinger
	Storage string
}

func NewHealthController(logger *slog.Logger, db Pinger, storage string) *HealthController {
	return &HealthController{Logger: logger, DB: db, Storage: storage}
}

// Health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains status and storage driver"
// @Failure 503 {object} helpers.APIResponse "error.code: service_unavailable"
// @Router /health [get]
func (c *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if err := c.DB.PingContext(r.Context()); err != nil {
		c.Logger.WarnContext(r.Context(), "health check failed", "storage", c.Storage, "err", err)
		helpers.WriteJSONError(w, http.StatusServiceUnavailable, helpers.ErrCodeUnavailable, "storage unreachable")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, HealthResponse{Status: "ok", Storage: c.Storage})
}
