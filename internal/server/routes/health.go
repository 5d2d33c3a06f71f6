package routes

import (
	"github.com/osa911/contactform/internal/api/handlers"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupHealthRoutes configures health, version and metrics endpoints
func SetupHealthRoutes(router *gin.Engine, health *handlers.HealthHandler, version *handlers.VersionHandler, gatherer prometheus.Gatherer) {
	router.GET("/health", health.Check)
	router.GET("/version", version.GetVersion)

	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
}
