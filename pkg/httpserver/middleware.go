// Package httpserver holds gin middleware shared by all three services.
package httpserver

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Yahya-git/To-Do-List-MS/pkg/metrics"
	"github.com/Yahya-git/To-Do-List-MS/pkg/trace"
)

// RequestLogger assigns a request id (propagated via X-Request-ID), logs every
// request and records its duration.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		requestID := c.GetHeader(trace.HeaderName)
		if requestID == "" {
			requestID = trace.NewRequestID()
		}
		c.Request = c.Request.WithContext(trace.WithContext(c.Request.Context(), requestID))
		c.Header(trace.HeaderName, requestID)

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		metrics.RecordHTTPRequestDuration(c.Request.Method, c.FullPath(), strconv.Itoa(status), latency)

		logger.Info("HTTP Request",
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", status),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}
