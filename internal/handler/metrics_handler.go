package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/academic-console/internal/service"
)

// MetricsHandler exposes the console's observability endpoints.
type MetricsHandler struct {
	metrics *service.MetricsService
}

// NewMetricsHandler constructs a metrics handler.
func NewMetricsHandler(metrics *service.MetricsService) *MetricsHandler {
	return &MetricsHandler{metrics: metrics}
}

// Prometheus serves the Prometheus exposition format.
func (h *MetricsHandler) Prometheus(c *gin.Context) {
	if h.metrics == nil {
		c.AbortWithStatus(http.StatusServiceUnavailable)
		return
	}
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

// Health reports liveness together with the session counters of this run.
func (h *MetricsHandler) Health(c *gin.Context) {
	snapshot := h.metrics.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"status":            "ok",
		"logins":            snapshot.LoginsSucceeded,
		"grades_recorded":   snapshot.GradesRecorded,
		"attendance_marked": snapshot.AttendanceMarked,
		"reports_exported":  snapshot.ReportsExported,
	})
}

// NewMetricsRouter builds the engine served on METRICS_ADDR.
func NewMetricsRouter(h *MetricsHandler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/metrics", h.Prometheus)
	r.GET("/healthz", h.Health)
	return r
}
