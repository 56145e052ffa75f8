package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDB struct {
	err   error
	stats sql.DBStats
	ctx   context.Context
}

func (d *stubDB) Ping(ctx context.Context) error {
	d.ctx = ctx
	return d.err
}

func (d *stubDB) Stats() (sql.DBStats, error) { return d.stats, nil }

func serveSystem(h gin.HandlerFunc, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, path, nil)
	h(c)
	return w
}

func TestSystemHandler_Health(t *testing.T) {
	tests := []struct {
		name       string
		db         Pinger
		wantStatus int
		want       HealthResponse
	}{
		{"database up", &stubDB{}, http.StatusOK, HealthResponse{Status: "ok", Database: "connected"}},
		{"database down", &stubDB{err: errors.New("dial tcp 10.0.0.5:5432: connect: connection refused")},
			http.StatusServiceUnavailable, HealthResponse{Status: "unhealthy", Database: "disconnected"}},
		{"no database", nil, http.StatusOK, HealthResponse{Status: "ok", Database: "unknown"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serveSystem(NewSystemHandler(tt.db, "SITINFRA API", "1.0.0").Health, "/health")

			assert.Equal(t, tt.wantStatus, w.Code)
			var got HealthResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSystemHandler_HealthPingHasDeadline(t *testing.T) {
	db := &stubDB{}
	serveSystem(NewSystemHandler(db, "SITINFRA API", "1.0.0").Health, "/health")

	require.NotNil(t, db.ctx)
	_, ok := db.ctx.Deadline()
	assert.True(t, ok)
}

func TestSystemHandler_GetSystemInfo(t *testing.T) {
	db := &stubDB{stats: sql.DBStats{MaxOpenConnections: 25, OpenConnections: 3, InUse: 1, Idle: 2}}
	w := serveSystem(NewSystemHandler(db, "SITINFRA API", "1.0.0").GetSystemInfo, "/system/info")

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Success bool               `json:"success"`
		Data    SystemInfoResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "SITINFRA API", resp.Data.Name)
	assert.Equal(t, "1.0.0", resp.Data.Version)
	assert.NotEmpty(t, resp.Data.GoVersion)
	require.NotNil(t, resp.Data.Database)
	assert.Equal(t, PoolInfo{Open: 3, InUse: 1, Idle: 2, MaxOpen: 25}, *resp.Data.Database)
}

func TestSystemHandler_Ping(t *testing.T) {
	w := serveSystem(NewSystemHandler(nil, "SITINFRA API", "1.0.0").Ping, "/system/ping")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"message":"pong"`)
}
