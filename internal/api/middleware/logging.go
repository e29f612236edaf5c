package middleware

import (
	"time"

	"teamloft/internal/logging"
	"teamloft/internal/utils"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs every request with status, latency and client IP.
func RequestLogger(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		logger.Info("%3d | %13v | %15s | %-7s %s",
			c.Writer.Status(),
			time.Since(start),
			utils.GetRealIP(c),
			method,
			path,
		)
	}
}
