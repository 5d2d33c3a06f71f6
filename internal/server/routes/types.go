package routes

import (
	"github.com/osa911/contactform/internal/api/handlers"
)

// Handlers contains all the route handlers
type Handlers struct {
	Contact *handlers.ContactHandler
	Health  *handlers.HealthHandler
	Version *handlers.VersionHandler
}

// GlobalConfig configures the middleware applied to every route
type GlobalConfig struct {
	AllowedOrigins []string
	Development    bool
	LogRequests    bool
	MaxBodyBytes   int64
	GlobalRPS      float64
	GlobalBurst    int
}
