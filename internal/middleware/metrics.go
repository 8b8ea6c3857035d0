package middleware

import (
	"strconv"

	"collabhub/internal/metrics"

	"github.com/gin-gonic/gin"
)

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		metrics.RequestsTotal.
			WithLabelValues(c.Request.Method, strconv.Itoa(c.Writer.Status())).
			Inc()
	}
}
