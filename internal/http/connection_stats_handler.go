package http

import (
	"database/sql"
	"net/http"

	"github.com/luxor-creek/Personalized-App/internal/http/middleware"
	"github.com/luxor-creek/Personalized-App/pkg/logger"
)

type connectionStats struct {
	MaxOpenConnections int   `json:"max_open_connections"`
	OpenConnections    int   `json:"open_connections"`
	InUse              int   `json:"in_use"`
	Idle               int   `json:"idle"`
	WaitCount          int64 `json:"wait_count"`
	WaitDurationMs     int64 `json:"wait_duration_ms"`
}

type ConnectionStatsHandler struct {
	logger logger.Logger
	stats  func() sql.DBStats
}

// NewConnectionStatsHandler reports the pool stats returned by stats, usually db.Stats
func NewConnectionStatsHandler(logger logger.Logger, stats func() sql.DBStats) *ConnectionStatsHandler {
	return &ConnectionStatsHandler{
		logger: logger,
		stats:  stats,
	}
}

// RegisterRoutes registers all connection stats routes
func (h *ConnectionStatsHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("/api/admin.connectionStats", middleware.RequireOwner(http.HandlerFunc(h.getConnectionStats)))
}

func (h *ConnectionStatsHandler) getConnectionStats(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	s := h.stats()
	writeJSON(w, http.StatusOK, connectionStats{
		MaxOpenConnections: s.MaxOpenConnections,
		OpenConnections:    s.OpenConnections,
		InUse:              s.InUse,
		Idle:               s.Idle,
		WaitCount:          s.WaitCount,
		WaitDurationMs:     s.WaitDuration.Milliseconds(),
	})
}
