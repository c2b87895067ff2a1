package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"hydroshare-viewer-service/internal/observability"
)

const unmatchedRoute = "unmatched"

// Metrics records request counts and latencies by route template. The
// metrics endpoint itself is not counted.
func Metrics(m *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		method := c.Request.Method

		m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}
