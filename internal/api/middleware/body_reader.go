package middleware

import (
	"errors"
	"io"
	"net/http"

	"github.com/osa911/contactform/internal/api/constants"
	"github.com/osa911/contactform/internal/api/dto/common"

	"github.com/gin-gonic/gin"
)

// DefaultMaxBodySize caps request bodies when no limit is configured
const DefaultMaxBodySize int64 = 64 * 1024

// PreserveRequestBody reads the body once, capped at maxBodySize, and stores
// the bytes in the context for the decoders that follow.
func PreserveRequestBody(maxBodySize int64) gin.HandlerFunc {
	if maxBodySize <= 0 {
		maxBodySize = DefaultMaxBodySize
	}

	return func(c *gin.Context) {
		if c.Request.Body == nil || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		bodyBytes, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodySize))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, common.NewErrorResponse("Request body too large", nil))
				return
			}
			c.AbortWithStatusJSON(http.StatusBadRequest, common.NewErrorResponse("Invalid request body", nil))
			return
		}

		c.Set(constants.ContextKeyRawBody, bodyBytes)
		c.Next()
	}
}
