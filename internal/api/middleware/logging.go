package middleware

import (
	"time"

	"github.com/osa911/contactform/internal/api/constants"
	"github.com/osa911/contactform/internal/logging"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs one line per request when enabled (LOG_REQUESTS)
func RequestLogger(enabled bool, logger *logging.Logger) gin.HandlerFunc {
	// If logging is disabled, return a no-op middleware
	if !enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		logger.LogHTTPRequest(
			method,
			path,
			c.ClientIP(),
			c.GetString(constants.ContextKeyRequestID),
			c.Writer.Status(),
			c.Writer.Size(),
			time.Since(start).String(),
		)
	}
}
