package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/greenclub/backend/internal/interfaces/http/dto"
)

// DBPinger reports database connectivity for readiness checks.
type DBPinger interface {
	Ping() error
}

// SystemHandler serves health and service information endpoints.
type SystemHandler struct {
	BaseHandler
	db        DBPinger
	version   string
	startTime time.Time
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler(db DBPinger, version string) *SystemHandler {
	return &SystemHandler{
		db:        db,
		version:   version,
		startTime: time.Now(),
	}
}

// HealthResponse reports liveness of the service.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// ReadyResponse reports readiness including dependency checks.
type ReadyResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// SystemInfoResponse reports version and uptime information.
type SystemInfoResponse struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
}

// Health handles GET /health. It always returns 200 while the process
// is serving requests.
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}))
}

// Ready handles GET /ready. It verifies the database connection and
// returns 503 when a dependency is unavailable.
func (h *SystemHandler) Ready(c *gin.Context) {
	resp := ReadyResponse{Status: "ready", Database: "ok"}
	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			resp.Status = "not_ready"
			resp.Database = "unavailable"
			c.JSON(http.StatusServiceUnavailable, dto.NewSuccessResponse(resp))
			return
		}
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// Info handles GET /api/v1/system/info.
func (h *SystemHandler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(SystemInfoResponse{
		Name:      "Club Backend API",
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	}))
}
