package middlewares

import (
	"strconv"
	"time"

	"github.com/calo-work-stack/Calo-sub001/metrics"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware records request counts, durations and in-flight
// gauges. The route template (not the raw URL) is used as the path
// label to keep cardinality bounded.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		metrics.HTTPInFlightInc()
		defer metrics.HTTPInFlightDec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.ObserveHTTP(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start).Seconds(),
		)
	}
}
