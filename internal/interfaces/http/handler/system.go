package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/platebooks/backend/internal/infrastructure/persistence"
	"github.com/platebooks/backend/internal/interfaces/http/dto"
)

// SystemHandler handles health and system info endpoints.
type SystemHandler struct {
	BaseHandler
	db        *persistence.Database
	redis     *redis.Client
	startTime time.Time
}

// NewSystemHandler creates a new SystemHandler. The redis client may be
// nil when report caching is disabled.
func NewSystemHandler(db *persistence.Database, redisClient *redis.Client) *SystemHandler {
	return &SystemHandler{
		db:        db,
		redis:     redisClient,
		startTime: time.Now(),
	}
}

// RegisterRoutes registers system routes on the given group.
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	system := rg.Group("/system")
	{
		system.GET("/ping", h.Ping)
		system.GET("/health", h.Health)
		system.GET("/info", h.Info)
	}
}

type pingResponse struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// Ping reports that the API is responsive.
func (h *SystemHandler) Ping(c *gin.Context) {
	h.Success(c, pingResponse{
		Message:   "pong",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

type healthResponse struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components"`
}

// Health checks database and cache connectivity.
func (h *SystemHandler) Health(c *gin.Context) {
	components := map[string]string{}
	healthy := true

	if err := h.db.Ping(); err != nil {
		components["database"] = "down"
		healthy = false
	} else {
		components["database"] = "up"
	}

	if h.redis != nil {
		if err := h.redis.Ping(c.Request.Context()).Err(); err != nil {
			components["cache"] = "down"
			healthy = false
		} else {
			components["cache"] = "up"
		}
	}

	status := "healthy"
	statusCode := http.StatusOK
	if !healthy {
		status = "degraded"
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, dto.NewSuccessResponse(healthResponse{
		Status:     status,
		Components: components,
	}))
}

type systemInfoResponse struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
}

// Info returns basic build and uptime information.
func (h *SystemHandler) Info(c *gin.Context) {
	h.Success(c, systemInfoResponse{
		Name:      "Platebooks API",
		Version:   "1.0.0",
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	})
}
