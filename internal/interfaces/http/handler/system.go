package handler

import (
	"context"
	"database/sql"
	"net/http"
	"runtime"
	"time"

	"github.com/KRaymonne/appli-sitinfra-sub004/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

const healthPingTimeout = 2 * time.Second

// Pinger reports whether the database answers
type Pinger interface {
	Ping(ctx context.Context) error
}

// poolStater is implemented by databases that expose pool counters
type poolStater interface {
	Stats() (sql.DBStats, error)
}

// SystemHandler serves /health and the /system endpoints
type SystemHandler struct {
	BaseHandler
	db      Pinger
	name    string
	version string
	started time.Time
}

func NewSystemHandler(db Pinger, name, version string) *SystemHandler {
	return &SystemHandler{db: db, name: name, version: version, started: time.Now()}
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// Health handles GET /health. It answers 503 when the database ping fails
// or takes longer than two seconds.
func (h *SystemHandler) Health(c *gin.Context) {
	if h.db == nil {
		c.JSON(http.StatusOK, HealthResponse{Status: "ok", Database: "unknown"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
	defer cancel()
	if err := h.db.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, HealthResponse{Status: "unhealthy", Database: "disconnected"})
		return
	}
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Database: "connected"})
}

// PoolInfo summarises the database connection pool
type PoolInfo struct {
	Open    int   `json:"open"`
	InUse   int   `json:"inUse"`
	Idle    int   `json:"idle"`
	MaxOpen int   `json:"maxOpen"`
	Waits   int64 `json:"waits"`
}

type SystemInfoResponse struct {
	Name      string    `json:"name"`
	Version   string    `json:"version"`
	GoVersion string    `json:"goVersion"`
	Uptime    string    `json:"uptime"`
	Database  *PoolInfo `json:"database,omitempty"`
}

// GetSystemInfo handles GET /system/info
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	info := SystemInfoResponse{
		Name:      h.name,
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.started).Round(time.Second).String(),
	}
	if ps, ok := h.db.(poolStater); ok {
		if st, err := ps.Stats(); err == nil {
			info.Database = &PoolInfo{
				Open:    st.OpenConnections,
				InUse:   st.InUse,
				Idle:    st.Idle,
				MaxOpen: st.MaxOpenConnections,
				Waits:   st.WaitCount,
			}
		}
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(info))
}

type PingResponse struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// Ping handles GET /system/ping
func (h *SystemHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(PingResponse{
		Message:   "pong",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}))
}
