package routes

import (
	"github.com/osa911/contactform/internal/api/middleware"
	"github.com/osa911/contactform/internal/logging"
	"github.com/osa911/contactform/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Setup configures all route groups
func Setup(router *gin.Engine, h *Handlers, gatherer prometheus.Gatherer) {
	logger := logging.GetGlobalLogger()

	SetupHealthRoutes(router, h.Health, h.Version, gatherer)

	api := router.Group("/api")
	SetupContactRoutes(api, h.Contact)

	logger.Info("All routes have been set up successfully")
}

// SetupGlobalMiddleware configures middleware that applies to all routes
func SetupGlobalMiddleware(router *gin.Engine, cfg GlobalConfig, logger *logging.Logger, m *metrics.Metrics) {
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogger(cfg.LogRequests, logger))
	router.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins: cfg.AllowedOrigins,
		Development:    cfg.Development,
	}))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.PreserveRequestBody(cfg.MaxBodyBytes))
	router.Use(middleware.RateLimitMiddleware(middleware.RateLimitConfig{
		RPS:   cfg.GlobalRPS,
		Burst: cfg.GlobalBurst,
	}, m))
}
