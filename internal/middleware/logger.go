package middleware

import (
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/playmo/smartdns-api/internal/metrics"
)

// LoggerMiddleware writes one access log line per request and, when m is not
// nil, records request count and latency by route template.
func LoggerMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		if m != nil {
			m.Requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
			m.RequestDuration.WithLabelValues(route).Observe(latency.Seconds())
		}

		log.Info("request",
			"method", method,
			"path", path,
			"status", status,
			"latency", latency,
			"request_id", RequestID(c),
		)
	}
}
