package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"resume-optimizer/internal/shared/metrics"
	"resume-optimizer/internal/shared/telemetry"
)

// Logging emits a structured log per request and counts it in metrics.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		metrics.ObserveRequest(c.Request.Method, c.FullPath(), status)

		resumeID, _ := c.Get("resumeId")
		analysisID, _ := c.Get("analysisId")

		telemetry.Info("request.complete", map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      status,
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"user_id":     UserIDFromContext(c),
			"resume_id":   resumeID,
			"analysis_id": analysisID,
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		})
	}
}
