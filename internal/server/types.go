package server

import (
	"net/http"

	"github.com/osa911/contactform/internal/config"
	"github.com/osa911/contactform/internal/logging"
	"github.com/osa911/contactform/internal/metrics"
	"github.com/osa911/contactform/internal/ratelimit"
	"github.com/osa911/contactform/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	cfg    *config.Config
	http   *http.Server
	logger *logging.Logger
}

// Dependencies are the components the server wires into its routes
type Dependencies struct {
	Contact *service.ContactService
	Metrics *metrics.Metrics
	// Gatherer backs /metrics
	Gatherer prometheus.Gatherer
	// Store is pinged by /health when it supports it
	Store ratelimit.Store
}
