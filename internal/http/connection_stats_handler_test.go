package http

import (
	"database/sql"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/luxor-creek/Personalized-App/pkg/logger"
)

func TestConnectionStatsHandler(t *testing.T) {
	h := NewConnectionStatsHandler(logger.NewTestLogger(t), func() sql.DBStats {
		return sql.DBStats{
			MaxOpenConnections: 25,
			OpenConnections:    3,
			InUse:              1,
			Idle:               2,
			WaitCount:          4,
			WaitDuration:       1500 * time.Millisecond,
		}
	})

	w := serve(t, h, ownerRequest(t, http.MethodGet, "/api/admin.connectionStats", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(25), body["max_open_connections"])
	assert.Equal(t, float64(1), body["in_use"])
	assert.Equal(t, float64(1500), body["wait_duration_ms"])
}
