package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/osa911/contactform/internal/utils"

	"github.com/gin-gonic/gin"
)

// Pinger is implemented by stores with a remote backend
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	store Pinger
}

// NewHealthHandler creates a health handler. store may be nil when rate
// limit state lives in process memory.
func NewHealthHandler(store Pinger) *HealthHandler {
	return &HealthHandler{store: store}
}

func (h *HealthHandler) Check(c *gin.Context) {
	if h.store != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := h.store.Ping(ctx); err != nil {
			utils.HandleAPIError(c, err, http.StatusServiceUnavailable, "Rate limit store unavailable")
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
