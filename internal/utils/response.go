package utils

import (
	"net/http"
	"strconv"

	"github.com/osa911/contactform/internal/api/dto/common"

	"github.com/gin-gonic/gin"
)

// HandleSuccess sends {success: true}
func HandleSuccess(c *gin.Context) {
	c.JSON(http.StatusOK, common.NewSuccessResponse(""))
}

// HandleMessage sends {success: true, message}
func HandleMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, common.NewSuccessResponse(message))
}

// HandleError sends {error, details?} with status
func HandleError(c *gin.Context, status int, message string, details []string) {
	c.JSON(status, common.NewErrorResponse(message, details))
}

// HandleRateLimited sends a 429 with a Retry-After header matching the body
func HandleRateLimited(c *gin.Context, message string, retryAfter int) {
	c.Header("Retry-After", strconv.Itoa(retryAfter))
	c.JSON(http.StatusTooManyRequests, common.NewRateLimitResponse(message, retryAfter))
}
