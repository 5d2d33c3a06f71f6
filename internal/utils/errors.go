package utils

import (
	"github.com/osa911/contactform/internal/api/dto/common"
	"github.com/osa911/contactform/internal/logging"

	"github.com/gin-gonic/gin"
)

// HandleAPIError logs err with the request line and sends a generic error
// body. err never reaches the client.
func HandleAPIError(c *gin.Context, err error, status int, message string) {
	logger := logging.GetGlobalLogger()
	logger.LogHTTPError(
		c.Request.Method,
		c.Request.URL.Path,
		c.ClientIP(),
		status,
		message,
		err,
	)

	c.AbortWithStatusJSON(status, common.NewErrorResponse(message, nil))
}
