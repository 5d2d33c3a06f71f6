package routes

import (
	"net/http"

	"github.com/osa911/contactform/internal/api/handlers"
	"github.com/osa911/contactform/internal/api/middleware"

	"github.com/gin-gonic/gin"
)

// SetupContactRoutes configures contact form routes. Per-client limits are
// applied inside the pipeline so they run before validation.
func SetupContactRoutes(router *gin.RouterGroup, contact *handlers.ContactHandler) {
	router.POST("/contact", middleware.DecodeContactBody(), contact.Submit)

	// Preflight is answered by the CORS middleware; this keeps the route known
	router.OPTIONS("/contact", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
}
