package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/swasthya/subcenter-api/pkg/logger"
)

// Logger logs one line per request. Request bodies are never logged;
// they carry passwords and patient data.
func Logger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		status := c.Writer.Status()
		entry := log.WithFields(map[string]interface{}{
			"request_id": c.GetString(ContextRequestID),
			"client_ip":  c.ClientIP(),
			"method":     c.Request.Method,
			"path":       path,
			"status":     status,
			"latency":    time.Since(start).String(),
		})

		switch {
		case status >= 500:
			entry.Error(nil, "server error")
		case status >= 400:
			entry.Warn("client error")
		default:
			entry.Info("request processed")
		}
	}
}
