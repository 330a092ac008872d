package handler

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"account-opening-api/logger"
)

const healthPingTimeout = 2 * time.Second

type HealthHandler struct {
	db *sql.DB
}

// NewHealthHandler reports on db when it is non-nil.
func NewHealthHandler(db *sql.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// HealthCheck godoc
// @Summary      Show the status of server
// @Description  Reports whether the server can reach its database.
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /health [get]
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			logger.Log.WithError(err).Error("Health check failed to reach the database")
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status":   "API is running but the database is unreachable",
				"database": "down",
			})
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "API is healthy and running",
		"database": "up",
	})
}
