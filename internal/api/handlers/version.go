package handlers

import (
	"net/http"

	"github.com/osa911/contactform/internal/version"

	"github.com/gin-gonic/gin"
)

type VersionHandler struct{}

func NewVersionHandler() *VersionHandler {
	return &VersionHandler{}
}

// GetVersion returns the build information of the running binary
func (h *VersionHandler) GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, version.GetBuildInfo())
}
