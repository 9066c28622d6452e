package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dnc-ph/clinic-backend/pkg/logger"
	"github.com/dnc-ph/clinic-backend/pkg/metrics"
)

// CtxRequestIDKey carries the per-request correlation id.
const CtxRequestIDKey = "requestID"

// RequestID assigns a correlation id to every request, honouring an inbound
// X-Request-ID header when present.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(CtxRequestIDKey, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// GetRequestID returns the correlation id placed by RequestID.
func GetRequestID(c *gin.Context) string {
	v, ok := c.Get(CtxRequestIDKey)
	if !ok {
		return ""
	}
	id, _ := v.(string)
	return id
}

// Logger writes a concise structured access log for each request and feeds
// the latency histogram.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()

		metrics.APILatency.WithLabelValues(method, c.FullPath(), strconv.Itoa(status)).Observe(duration.Seconds())

		logger.WithModule("http").Info("request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("client_ip", c.ClientIP()),
			zap.String("request_id", GetRequestID(c)),
		)
	}
}
