package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/echoplay/server/pkg/httputil"
	"github.com/echoplay/server/pkg/logger"
)

// Logging logs every HTTP request with structured fields, leveled by
// response status.
func Logging(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		fields := []logger.Field{
			logger.String("request_id", httputil.GetRequestID(c)),
			logger.String("method", c.Request.Method),
			logger.String("path", path),
			logger.String("query", query),
			logger.Int("status", status),
			logger.String("ip", c.ClientIP()),
			logger.Int64("latency_ms", latency.Milliseconds()),
		}

		if userID := c.GetString("user_id"); userID != "" {
			fields = append(fields, logger.String("user_id", userID))
		}

		switch {
		case status >= 500:
			if len(c.Errors) > 0 {
				fields = append(fields, logger.String("error", c.Errors.String()))
			}
			log.Error("request failed with server error", fields...)
		case status >= 400:
			log.Warn("request failed with client error", fields...)
		default:
			log.Info("request completed", fields...)
		}
	}
}
